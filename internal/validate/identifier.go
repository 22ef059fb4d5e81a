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
)

// IdentifierType classifies a unified login identifier.
type IdentifierType string

const (
	IdentifierEmail   IdentifierType = "email"
	IdentifierPhone   IdentifierType = "phone"
	IdentifierInvalid IdentifierType = "invalid"
)

// forbiddenIdentifierChars are never part of an email address or phone
// number a user would type; they usually indicate injection attempts.
const forbiddenIdentifierChars = "<>{}|\\^~[]`"

var (
	phoneFormatting = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "")
	looseIntlPhone  = regexp.MustCompile(`^\+[1-9][0-9]{6,14}$`)
	looseLocalPhone = regexp.MustCompile(`^0?[1-9][0-9]{6,14}$`)
)

// IdentifyEmailOrPhone decides whether input is an email address, a phone
// number (E.164 or a plausible national number), or neither.
func IdentifyEmailOrPhone(input string) IdentifierType {
	s := strings.TrimSpace(input)
	if s == "" || len(s) > MaxEmailLength {
		return IdentifierInvalid
	}
	if strings.ContainsAny(s, forbiddenIdentifierChars) {
		return IdentifierInvalid
	}

	if strings.Contains(s, "@") {
		if IsValidEmail(strings.ToLower(s)) {
			return IdentifierEmail
		}
		return IdentifierInvalid
	}

	compact := phoneFormatting.Replace(s)
	if looseIntlPhone.MatchString(compact) || looseLocalPhone.MatchString(compact) {
		return IdentifierPhone
	}
	return IdentifierInvalid
}
