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

package id

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPurpose: Verifies that generated identifiers are unique, parseable, time-ordered UUIDv7 values.
// Scope: Unit Test
// Security: Identifier uniqueness (never reused)
// Expected: Two calls return distinct version-7 UUIDs.
// Test Case ID: ID-01
func TestID_NewUUIDv7(t *testing.T) {
	a := NewUUIDv7()
	b := NewUUIDv7()
	assert.NotEqual(t, a, b)

	u, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), u.Version())
}

// TestPurpose: Verifies UUID-v4 shape detection used by tenant-switch validation.
// Scope: Unit Test
// Expected: Only canonical v4 UUIDs are accepted.
// Test Case ID: ID-02
func TestID_IsUUIDv4(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"random v4", uuid.NewString(), true},
		{"upper-case v4", strings.ToUpper("3b241101-e2bb-4255-8caf-4136c566a962"), true},
		{"v7", NewUUIDv7(), false},
		{"v1 shape", "6ba7b810-9dad-11d1-80b4-00c04fd430c8", false},
		{"no hyphens", "3b241101e2bb42558caf4136c566a962", false},
		{"braced", "{3b241101-e2bb-4255-8caf-4136c566a962}", false},
		{"empty", "", false},
		{"garbage", "not-a-uuid", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsUUIDv4(tt.input))
		})
	}
}
