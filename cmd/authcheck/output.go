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

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// checkResult is the outcome of one check.
type checkResult struct {
	Check      string `json:"check"`
	Input      string `json:"input,omitempty"`
	Valid      bool   `json:"valid"`
	Normalized string `json:"normalized,omitempty"`
	Code       string `json:"code,omitempty"`
	Message    string `json:"message,omitempty"`
	Details    any    `json:"details,omitempty"`
}

func writeResult(w io.Writer, res checkResult, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "CHECK\t%s\n", res.Check)
	if res.Input != "" {
		fmt.Fprintf(tw, "INPUT\t%s\n", res.Input)
	}
	fmt.Fprintf(tw, "VALID\t%t\n", res.Valid)
	if res.Normalized != "" {
		fmt.Fprintf(tw, "NORMALIZED\t%s\n", res.Normalized)
	}
	if res.Code != "" {
		fmt.Fprintf(tw, "CODE\t%s\n", res.Code)
		fmt.Fprintf(tw, "MESSAGE\t%s\n", res.Message)
	}
	if d, ok := res.Details.(passwordDetails); ok {
		fmt.Fprintf(tw, "STRENGTH\t%d (%s)\n", d.Strength.Score, d.Strength.Level)
		for _, v := range d.Violations {
			fmt.Fprintf(tw, "VIOLATION\t%s\n", v)
		}
		for _, s := range d.Strength.Suggestions {
			fmt.Fprintf(tw, "SUGGESTION\t%s\n", s)
		}
	}
	return tw.Flush()
}

// writeMetrics prints g in the Prometheus text exposition format.
func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	if g == nil {
		return nil
	}
	families, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
