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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTest = `package validate_test

import "testing"

// TestPurpose: Checks emails.
// Scope: Unit Test
// Security: Input validation
// Expected: Valid addresses pass.
// Test Case ID: VAL-01
func TestEmail(t *testing.T) {}

func TestMain(m *testing.M) {}
`

const sampleOutput = `{"Action":"run","Package":"example.com/auth/internal/validate","Test":"TestEmail"}
{"Action":"run","Package":"example.com/auth/internal/validate","Test":"TestEmail/upper"}
{"Action":"output","Package":"example.com/auth/internal/validate","Test":"TestEmail/upper","Output":"boom\n"}
{"Action":"fail","Package":"example.com/auth/internal/validate","Test":"TestEmail/upper","Elapsed":0.01}
{"Action":"fail","Package":"example.com/auth/internal/validate","Test":"TestEmail","Elapsed":0.02}
{"Action":"pass","Package":"example.com/auth/internal/other","Test":"TestLoose","Elapsed":0}
`

// TestPurpose: Validates that annotations are parsed and merged with go test -json events.
// Scope: Unit Test
// Expected: Subtests inherit their parent's annotations; failures keep their output; unannotated tests fall into Other.
// Test Case ID: RPT-01
func TestReport_MergeAnnotations(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("module example.com/auth\n\ngo 1.25\n"), 0o644))
	dir := filepath.Join(root, "internal", "validate")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "email_test.go"), []byte(sampleTest), 0o644))

	module, err := modulePath(root)
	require.NoError(t, err)
	meta, err := scanAnnotations(root, module)
	require.NoError(t, err)
	require.Len(t, meta, 1)
	a := meta["example.com/auth/internal/validate.TestEmail"]
	assert.Equal(t, "VAL-01", a.TestCaseID)
	assert.Equal(t, "Primitives", a.Category)

	results, err := mergeResults(strings.NewReader(sampleOutput), meta)
	require.NoError(t, err)
	require.Len(t, results, 3)

	byName := map[string]Result{}
	for _, r := range results {
		byName[r.Name] = r
	}
	sub := byName["TestEmail/upper"]
	assert.Equal(t, "fail", sub.Status)
	assert.Equal(t, "VAL-01", sub.Annotations.TestCaseID)
	assert.Contains(t, sub.Failure, "boom")
	assert.Equal(t, otherCategory, byName["TestLoose"].Annotations.Category)

	s := summarize(results)
	assert.Equal(t, 2, s.Failed)
	assert.Equal(t, 1, s.Passed)
	md := renderMarkdown(s, "Auth Engine")
	assert.Contains(t, md, "### Primitives")
	assert.Contains(t, md, "## Failure Details")

	assert.Len(t, filterCategories(results, []string{"primitives"}), 2)
}
