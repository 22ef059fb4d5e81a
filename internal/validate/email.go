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

package validate

import (
	"regexp"
	"strings"

	"github.com/vishwanth-dev/prephired-main-sub000/internal/autherr"
)

// Email length limits (RFC 5321).
const (
	MaxEmailLength     = 254
	MaxEmailLocalPart  = 64
	MaxEmailDomainPart = 253
)

// Email is a syntactically valid, lower-cased email address.
type Email string

func (e Email) String() string { return string(e) }

// LocalPart returns the part before the "@".
func (e Email) LocalPart() string {
	local, _, _ := strings.Cut(string(e), "@")
	return local
}

// Domain returns the part after the "@".
func (e Email) Domain() string {
	_, domain, _ := strings.Cut(string(e), "@")
	return domain
}

// emailRegex accepts the RFC 5321 dot-atom subset: an atext local part and a
// dotted hostname with at least two labels.
var emailRegex = regexp.MustCompile(
	"^[a-zA-Z0-9!#$%&'*+/=?^_`{|}~.-]+" +
		"@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?" +
		"(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)+$",
)

// IsValidEmail reports whether email is a syntactically valid address.
// It does not trim or lower-case; use NormalizeEmail for user input.
func IsValidEmail(email string) bool {
	if email == "" || len(email) > MaxEmailLength {
		return false
	}
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" || domain == "" {
		return false
	}
	if len(local) > MaxEmailLocalPart || len(domain) > MaxEmailDomainPart {
		return false
	}
	if strings.HasPrefix(local, ".") || strings.HasSuffix(local, ".") {
		return false
	}
	if strings.Contains(email, "..") {
		return false
	}
	return emailRegex.MatchString(email)
}

// NormalizeEmail trims and lower-cases raw and validates the result.
func NormalizeEmail(raw string) (Email, error) {
	return normalizeEmailField(raw, autherr.FieldEmail)
}

// NormalizeEmailField is NormalizeEmail with errors scoped to field.
func NormalizeEmailField(raw, field string) (Email, error) {
	return normalizeEmailField(raw, field)
}

func normalizeEmailField(raw, field string) (Email, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", autherr.Required(field)
	}
	if !IsValidEmail(email) {
		return "", autherr.InvalidEmail(field)
	}
	return Email(email), nil
}
