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
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// Annotation holds the metadata parsed from a test's doc comment.
type Annotation struct {
	Name       string `json:"name"`
	Package    string `json:"package"`
	Category   string `json:"category"`
	Purpose    string `json:"purpose,omitempty"`
	Scope      string `json:"scope,omitempty"`
	Security   string `json:"security,omitempty"`
	Expected   string `json:"expected,omitempty"`
	TestCaseID string `json:"test_case_id,omitempty"`
}

// testEvent is one line of `go test -json`.
type testEvent struct {
	Action  string  `json:"Action"`
	Package string  `json:"Package"`
	Test    string  `json:"Test"`
	Elapsed float64 `json:"Elapsed"`
	Output  string  `json:"Output"`
}

// Result is the merged outcome of one test.
type Result struct {
	Name        string     `json:"name"`
	Package     string     `json:"package"`
	Status      string     `json:"status"`
	Elapsed     float64    `json:"elapsed_seconds"`
	Failure     string     `json:"failure_reason,omitempty"`
	Annotations Annotation `json:"annotations"`
}

// Summary holds top-level stats
type Summary struct {
	GeneratedAt time.Time `json:"generated_at"`
	Total       int       `json:"total"`
	Passed      int       `json:"passed"`
	Failed      int       `json:"failed"`
	Skipped     int       `json:"skipped"`
	Results     []Result  `json:"results"`
}

func (s Summary) failedNames() []string {
	var out []string
	for _, r := range s.Results {
		if r.Status == "fail" {
			out = append(out, r.Name)
		}
	}
	return out
}

// categoryOrder is the report's section order; the key is the package's
// directory under internal/ or cmd/.
var categoryOrder = []struct{ dir, name string }{
	{"validate", "Primitives"},
	{"password", "Password Policy"},
	{"autherr", "Errors"},
	{"identity", "AuthN Forms"},
	{"mfa", "MFA"},
	{"oauth2", "OAuth2"},
	{"tenant", "Tenant"},
	{"limits", "Limits"},
	{"session", "Session"},
	{"event", "Events"},
	{"audit", "Audit"},
	{"guard", "Guard"},
	{"config", "Config"},
	{"observability", "Observability"},
	{"cmd", "CLI"},
}

const otherCategory = "Other"

func categoryOf(relDir string) string {
	for _, c := range categoryOrder {
		if relDir == c.dir || strings.HasPrefix(relDir, c.dir+"/") ||
			strings.HasPrefix(relDir, "internal/"+c.dir) {
			return c.name
		}
	}
	return otherCategory
}

// modulePath reads the module path from root/go.mod.
func modulePath(root string) (string, error) {
	f, err := os.Open(filepath.Join(root, "go.mod"))
	if err != nil {
		return "", fmt.Errorf("open go.mod: %w", err)
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if rest, ok := strings.CutPrefix(strings.TrimSpace(sc.Text()), "module "); ok {
			return strings.TrimSpace(rest), nil
		}
	}
	return "", errors.New("go.mod has no module directive")
}

// scanAnnotations parses every _test.go file under root and indexes test
// annotations by "<import path>.<TestName>".
func scanAnnotations(root, module string) (map[string]Annotation, error) {
	out := make(map[string]Annotation)
	fset := token.NewFileSet()

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if name := d.Name(); path != root && (strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".") || name == "vendor") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, "_test.go") {
			return nil
		}

		file, err := parser.ParseFile(fset, path, nil, parser.ParseComments)
		if err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		rel, err := filepath.Rel(root, filepath.Dir(path))
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		pkg := module
		if rel != "." {
			pkg = module + "/" + rel
		}

		for _, decl := range file.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if !ok || fn.Recv != nil || !strings.HasPrefix(fn.Name.Name, "Test") || fn.Name.Name == "TestMain" {
				continue
			}
			a := parseDoc(fn.Doc)
			a.Name = fn.Name.Name
			a.Package = pkg
			a.Category = categoryOf(rel)
			out[pkg+"."+a.Name] = a
		}
		return nil
	})
	return out, err
}

func parseDoc(doc *ast.CommentGroup) Annotation {
	var a Annotation
	if doc == nil {
		return a
	}
	fields := map[string]*string{
		"TestPurpose:":  &a.Purpose,
		"Scope:":        &a.Scope,
		"Security:":     &a.Security,
		"Expected:":     &a.Expected,
		"Test Case ID:": &a.TestCaseID,
	}
	for _, c := range doc.List {
		text := strings.TrimSpace(strings.TrimPrefix(c.Text, "//"))
		for prefix, dst := range fields {
			if v, ok := strings.CutPrefix(text, prefix); ok {
				*dst = strings.TrimSpace(v)
			}
		}
	}
	return a
}

// mergeResults folds go test -json events into per-test results. Annotated
// tests that never ran are reported as "not run"; subtests inherit their
// parent's annotations.
func mergeResults(r io.Reader, meta map[string]Annotation) ([]Result, error) {
	states := make(map[string]*Result, len(meta))
	for key, a := range meta {
		states[key] = &Result{Name: a.Name, Package: a.Package, Status: "not run", Annotations: a}
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		var ev testEvent
		if err := json.Unmarshal(sc.Bytes(), &ev); err != nil || ev.Test == "" {
			continue
		}
		key := ev.Package + "." + ev.Test
		res, ok := states[key]
		if !ok {
			parent, _, _ := strings.Cut(ev.Test, "/")
			a, found := meta[ev.Package+"."+parent]
			if !found {
				a = Annotation{Category: otherCategory, Package: ev.Package}
			}
			a.Name = ev.Test
			res = &Result{Name: ev.Test, Package: ev.Package, Annotations: a}
			states[key] = res
		}

		switch ev.Action {
		case "pass", "fail":
			res.Status = ev.Action
			res.Elapsed = ev.Elapsed
		case "skip":
			res.Status = "skip"
		case "output":
			if res.Status != "pass" {
				res.Failure += ev.Output
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read test output: %w", err)
	}

	list := make([]Result, 0, len(states))
	for _, r := range states {
		if r.Status != "fail" {
			r.Failure = ""
		}
		list = append(list, *r)
	}
	slices.SortFunc(list, func(a, b Result) int {
		if c := strings.Compare(a.Package, b.Package); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return list, nil
}

func filterCategories(results []Result, categories []string) []Result {
	var out []Result
	for _, r := range results {
		if slices.ContainsFunc(categories, func(c string) bool { return strings.EqualFold(strings.TrimSpace(c), r.Annotations.Category) }) {
			out = append(out, r)
		}
	}
	return out
}

func summarize(results []Result) Summary {
	s := Summary{GeneratedAt: time.Now().UTC(), Results: results}
	for _, r := range results {
		s.Total++
		switch r.Status {
		case "pass":
			s.Passed++
		case "fail":
			s.Failed++
		case "skip":
			s.Skipped++
		}
	}
	return s
}

func writeJSON(s Summary, path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return writeFile(path, data)
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

var statusIcons = map[string]string{"pass": "✅", "fail": "❌", "skip": "⏭️", "not run": "⚪"}

func renderMarkdown(s Summary, title string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", title)
	fmt.Fprintf(&sb, "**Generated:** %s  \n", s.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	status := "✅ PASSED"
	if s.Failed > 0 {
		status = "❌ FAILED"
	}
	fmt.Fprintf(&sb, "**Status:** %s\n\n", status)

	rate := 0.0
	if s.Total > 0 {
		rate = float64(s.Passed) / float64(s.Total) * 100
	}
	sb.WriteString("## Summary\n\n| Total | Passed | Failed | Skipped | Pass Rate |\n|-------|--------|--------|---------|-----------|\n")
	fmt.Fprintf(&sb, "| %d | %d | %d | %d | %.1f%% |\n\n", s.Total, s.Passed, s.Failed, s.Skipped, rate)

	byCategory := make(map[string][]Result)
	for _, r := range s.Results {
		byCategory[r.Annotations.Category] = append(byCategory[r.Annotations.Category], r)
	}
	order := make([]string, 0, len(categoryOrder)+1)
	for _, c := range categoryOrder {
		order = append(order, c.name)
	}
	order = append(order, otherCategory)

	sb.WriteString("## Results by Category\n\n")
	for _, cat := range order {
		tests := byCategory[cat]
		if len(tests) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "### %s\n\n| ID | Test | Status | Purpose | Security |\n|----|------|--------|---------|----------|\n", cat)
		for _, t := range tests {
			sec := t.Annotations.Security
			if sec != "" {
				sec = "**" + sec + "**"
			}
			fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s |\n",
				t.Annotations.TestCaseID, t.Name, statusIcons[t.Status], t.Annotations.Purpose, sec)
		}
		sb.WriteString("\n")
	}

	if s.Failed > 0 {
		sb.WriteString("## Failure Details\n\n")
		for _, t := range s.Results {
			if t.Status == "fail" {
				fmt.Fprintf(&sb, "### %s (%s)\n```\n%s\n```\n\n", t.Name, t.Package, t.Failure)
			}
		}
	}
	return sb.String()
}
