// Copyright 2026 The OpenTrusty Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command report_gen merges `go test -json` output with the annotation
// comments on each test (TestPurpose, Scope, Security, Expected, Test Case
// ID) into JSON and Markdown reports.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

type reportOptions struct {
	input      string
	root       string
	outJSON    string
	outMD      string
	title      string
	categories []string
}

func main() {
	if err := newReportCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newReportCmd() *cobra.Command {
	opts := &reportOptions{}
	cmd := &cobra.Command{
		Use:          "report_gen",
		Short:        "Build annotated test reports from go test -json output",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReport(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.input, "input", "", "path to go test -json output")
	cmd.Flags().StringVar(&opts.root, "root", ".", "module root to scan for annotations")
	cmd.Flags().StringVar(&opts.outJSON, "out-json", "", "path for the JSON report")
	cmd.Flags().StringVar(&opts.outMD, "out-md", "", "path for the Markdown report")
	cmd.Flags().StringVar(&opts.title, "title", "Test Report", "report title")
	cmd.Flags().StringSliceVar(&opts.categories, "categories", nil, "only include these categories")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func runReport(cmd *cobra.Command, opts *reportOptions) error {
	module, err := modulePath(opts.root)
	if err != nil {
		return err
	}
	meta, err := scanAnnotations(opts.root, module)
	if err != nil {
		return err
	}

	f, err := os.Open(opts.input)
	if err != nil {
		return fmt.Errorf("open test output: %w", err)
	}
	defer f.Close()

	results, err := mergeResults(f, meta)
	if err != nil {
		return err
	}
	if len(opts.categories) > 0 {
		results = filterCategories(results, opts.categories)
	}
	summary := summarize(results)

	if opts.outJSON != "" {
		if err := writeJSON(summary, opts.outJSON); err != nil {
			return err
		}
	}
	if opts.outMD != "" {
		if err := writeFile(opts.outMD, []byte(renderMarkdown(summary, opts.title))); err != nil {
			return err
		}
	}

	cmd.Printf("%d tests: %d passed, %d failed, %d skipped\n", summary.Total, summary.Passed, summary.Failed, summary.Skipped)
	if summary.Failed > 0 {
		return fmt.Errorf("%d tests failed: %s", summary.Failed, strings.Join(summary.failedNames(), ", "))
	}
	return nil
}
