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
	"unicode"

	"github.com/vishwanth-dev/prephired-main-sub000/internal/autherr"
)

// PhoneNumber is a phone number in E.164 form.
type PhoneNumber string

func (p PhoneNumber) String() string { return string(p) }

var (
	e164Regex        = regexp.MustCompile(`^\+[1-9][0-9]{1,14}$`)
	countryCodeRegex = regexp.MustCompile(`^[1-9][0-9]{0,2}$`)
)

// IsValidPhoneE164 reports whether phone is already in E.164 form.
func IsValidPhoneE164(phone string) bool {
	return e164Regex.MatchString(phone)
}

// NormalizePhoneToE164 converts a user-entered number to E.164.
//
// Formatting characters are dropped and only digits plus a leading "+" are
// kept. A "00" international prefix becomes "+". Otherwise one leading local
// "0" is dropped and defaultCountryCode (with or without "+") is prefixed.
// Input containing letters, or with no digits left after the trunk "0", is
// rejected rather than collapsed to the bare country code.
// Normalising an already-normalised number returns it unchanged.
func NormalizePhoneToE164(raw, defaultCountryCode string) (PhoneNumber, error) {
	return normalizePhoneField(raw, defaultCountryCode, autherr.FieldPhone)
}

// NormalizePhoneField is NormalizePhoneToE164 with errors scoped to field.
func NormalizePhoneField(raw, defaultCountryCode, field string) (PhoneNumber, error) {
	return normalizePhoneField(raw, defaultCountryCode, field)
}

func normalizePhoneField(raw, defaultCountryCode, field string) (PhoneNumber, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", autherr.Required(field)
	}

	if strings.IndexFunc(trimmed, unicode.IsLetter) >= 0 {
		return "", autherr.InvalidPhone(field).WithMetadata("reason", "invalid_characters")
	}

	international := strings.HasPrefix(trimmed, "+")
	digits := onlyDigits(trimmed)

	if !international && strings.HasPrefix(digits, "00") {
		international = true
		digits = digits[2:]
	}

	if !international {
		cc := onlyDigits(defaultCountryCode)
		if !countryCodeRegex.MatchString(cc) {
			return "", autherr.InvalidPhone(field).WithMetadata("reason", "missing_country_code")
		}
		national := strings.TrimPrefix(digits, "0")
		if national == "" {
			return "", autherr.InvalidPhone(field).WithMetadata("reason", "missing_number")
		}
		digits = cc + national
	}

	phone := "+" + digits
	if !IsValidPhoneE164(phone) {
		return "", autherr.InvalidPhone(field)
	}
	return PhoneNumber(phone), nil
}

func onlyDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
