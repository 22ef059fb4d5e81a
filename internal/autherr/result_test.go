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

package autherr_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vishwanth-dev/prephired-main-sub000/internal/autherr"
)

// TestPurpose: Verifies the tagged ValidationResult: valid results have no errors, invalid results keep insertion order.
// Scope: Unit Test
// Expected: IsValid, Errors, FirstError, HasCode and Fields reflect the collected errors.
// Test Case ID: ERR-10
func TestAuthErr_ValidationResult(t *testing.T) {
	ok := autherr.Valid()
	assert.True(t, ok.IsValid())
	assert.Empty(t, ok.Errors())
	assert.NoError(t, ok.FirstError())

	var c autherr.Collector
	c.Add(nil)
	c.Add(autherr.Required("firstName"))
	c.Add(autherr.InvalidEmail(autherr.FieldEmail))
	c.Add(autherr.Required("firstName").WithField("lastName"))
	res := c.Result()

	assert.False(t, res.IsValid())
	assert.Len(t, res.Errors(), 3)
	assert.ErrorIs(t, res.FirstError(), autherr.Required("firstName"))
	assert.True(t, res.HasCode(autherr.CodeInvalidEmail))
	assert.False(t, res.HasCode(autherr.CodeWeakPassword))
	assert.Equal(t, []string{"firstName", "email", "lastName"}, res.Fields())
	assert.Len(t, res.FieldMessages()["email"], 1)
}

// TestPurpose: Verifies that errors outside the taxonomy are never dropped by the collector.
// Scope: Unit Test
// Expected: A plain error is recorded as a form-level validation error.
// Test Case ID: ERR-11
func TestAuthErr_CollectorWrapsForeignErrors(t *testing.T) {
	var c autherr.Collector
	c.Add(errors.New("boom"))
	res := c.Result()
	errs := res.Errors()
	if assert.Len(t, errs, 1) {
		assert.Equal(t, autherr.FieldForm, errs[0].Field)
		assert.Equal(t, "boom", errs[0].Message)
	}
}

// TestPurpose: Verifies that Invalid drops nil entries and Merge concatenates in order.
// Scope: Unit Test
// Expected: Merge keeps r's errors first.
// Test Case ID: ERR-12
func TestAuthErr_InvalidAndMerge(t *testing.T) {
	a := autherr.Invalid(nil, autherr.TermsNotAccepted())
	b := autherr.Invalid(autherr.PrivacyNotAccepted())
	merged := a.Merge(b).Merge(autherr.Valid())

	errs := merged.Errors()
	if assert.Len(t, errs, 2) {
		assert.Equal(t, autherr.CodeTermsNotAccepted, errs[0].Code)
		assert.Equal(t, autherr.CodePrivacyNotAccepted, errs[1].Code)
	}
	assert.Len(t, a.Errors(), 1, "merge must not mutate the receiver")
}
