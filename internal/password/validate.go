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

package password

import (
	"crypto/subtle"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/vishwanth-dev/prephired-main-sub000/internal/autherr"
)

// minPersonalTokenLength is the shortest name or email fragment that is
// matched against the password.
const minPersonalTokenLength = 3

// Context carries optional caller-supplied facts used by Validate.
type Context struct {
	Email     string
	FirstName string
	LastName  string
	// PreviousPasswords are ordered most recent first. They may be hashes
	// when Matches is set.
	PreviousPasswords []string
	// Matches reports whether password corresponds to a stored previous
	// entry, typically a hash verifier. Nil means constant-time equality.
	Matches func(password, previous string) bool
}

// Validate enforces policy on pw. Every violated requirement is collected
// into a single WeakPassword error scoped to the password field. A password
// that satisfies the policy but matches one of the last HistoryCount entries
// of ctx.PreviousPasswords fails with PasswordReused.
func Validate(pw string, policy Policy, ctx *Context) error {
	return ValidateField(pw, policy, ctx, autherr.FieldPassword)
}

// ValidateField is Validate with the weak-password error scoped to field.
func ValidateField(pw string, policy Policy, ctx *Context, field string) error {
	if reqs := Violations(pw, policy, ctx); len(reqs) > 0 {
		return autherr.WeakPassword(field, reqs)
	}
	if ctx != nil && reused(pw, policy.HistoryCount, ctx) {
		return autherr.PasswordReused(policy.HistoryCount)
	}
	return nil
}

// Violations returns the requirements pw does not meet, in policy order.
func Violations(pw string, policy Policy, ctx *Context) []string {
	var reqs []string
	n := utf8.RuneCountInString(pw)
	if n < policy.MinLength {
		reqs = append(reqs, fmt.Sprintf(reqMinLength, policy.MinLength))
	}
	if policy.MaxLength > 0 && n > policy.MaxLength {
		reqs = append(reqs, fmt.Sprintf(reqMaxLength, policy.MaxLength))
	}

	c := classify(pw)
	if policy.RequireUppercase && !c.upper {
		reqs = append(reqs, reqUppercase)
	}
	if policy.RequireLowercase && !c.lower {
		reqs = append(reqs, reqLowercase)
	}
	if policy.RequireNumbers && !c.digit {
		reqs = append(reqs, reqNumber)
	}
	if policy.RequireSymbols && !c.symbol {
		reqs = append(reqs, reqSymbol)
	}
	if policy.MaxRepeatedChars > 0 && longestRun(pw) > policy.MaxRepeatedChars {
		reqs = append(reqs, fmt.Sprintf(reqRepeated, policy.MaxRepeatedChars))
	}
	if policy.PreventCommonPasswords && IsCommon(pw) {
		reqs = append(reqs, reqNotCommon)
	}
	if policy.PreventPersonalInfo && ctx != nil && containsPersonalInfo(pw, ctx) {
		reqs = append(reqs, reqNotPersonal)
	}
	return reqs
}

func containsPersonalInfo(pw string, ctx *Context) bool {
	lower := strings.ToLower(pw)
	local, _, _ := strings.Cut(strings.TrimSpace(ctx.Email), "@")
	for _, token := range []string{local, ctx.FirstName, ctx.LastName} {
		token = strings.ToLower(strings.TrimSpace(token))
		if utf8.RuneCountInString(token) < minPersonalTokenLength {
			continue
		}
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}

func reused(pw string, historyCount int, ctx *Context) bool {
	if historyCount <= 0 || len(ctx.PreviousPasswords) == 0 {
		return false
	}
	matches := ctx.Matches
	if matches == nil {
		matches = constantTimeEqual
	}
	recent := ctx.PreviousPasswords[:min(historyCount, len(ctx.PreviousPasswords))]
	found := false
	// Every entry is checked so timing does not reveal the position of a match.
	for _, prev := range recent {
		if matches(pw, prev) {
			found = true
		}
	}
	return found
}

func constantTimeEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
