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
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/vishwanth-dev/prephired-main-sub000/internal/autherr"
)

// Profile field limits, in characters.
const (
	MaxNameLength       = 50
	MaxJobTitleLength   = 100
	MaxDepartmentLength = 100
	MaxLocationLength   = 100
	MaxBioLength        = 500
	MinBioWords         = 3

	MinOrganizationNameLength = 2
	MaxOrganizationNameLength = 100
)

// profanity is matched as a case-insensitive substring. This is a courtesy
// filter for display fields, not a security control: it has false positives
// and is trivially bypassed.
var profanity = []string{
	"fuck", "shit", "bitch", "cunt", "asshole", "bastard",
	"whore", "slut", "wanker", "bollocks", "motherfucker",
}

// ContainsProfanity reports whether s contains a filtered word.
func ContainsProfanity(s string) bool {
	lower := strings.ToLower(s)
	for _, w := range profanity {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// canonical trims and NFC-normalises s so composed and decomposed input
// ("é" vs "é") is measured and stored identically.
func canonical(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// IsValidName reports whether name is a plausible personal name: 1-50
// characters of letters, combining marks, spaces, hyphens, apostrophes and
// periods, starting with a letter.
func IsValidName(name string) bool {
	n := canonical(name)
	if n == "" || utf8.RuneCountInString(n) > MaxNameLength {
		return false
	}
	first, _ := utf8.DecodeRuneInString(n)
	if !unicode.IsLetter(first) {
		return false
	}
	for _, r := range n {
		switch {
		case unicode.IsLetter(r), unicode.Is(unicode.Mn, r):
		case r == ' ', r == '-', r == '\'', r == '’', r == '.':
		default:
			return false
		}
	}
	return !ContainsProfanity(n)
}

// IsValidJobTitle reports whether title fits the job-title character set.
func IsValidJobTitle(title string) bool {
	return isValidFreeText(title, MaxJobTitleLength, "-,.&/()'+#")
}

// IsValidDepartment reports whether dept fits the department character set.
func IsValidDepartment(dept string) bool {
	return isValidFreeText(dept, MaxDepartmentLength, "-,.&/()'")
}

// IsValidLocation reports whether loc fits the location character set.
func IsValidLocation(loc string) bool {
	return isValidFreeText(loc, MaxLocationLength, "-,.'()")
}

// IsValidOrganizationName reports whether name is a usable tenant display name.
func IsValidOrganizationName(name string) bool {
	if utf8.RuneCountInString(canonical(name)) < MinOrganizationNameLength {
		return false
	}
	return isValidFreeText(name, MaxOrganizationNameLength, "-,.&'()!@+")
}

// IsValidBio reports whether bio is within length, has at least MinBioWords
// words and no control characters other than newlines. An empty bio is valid.
func IsValidBio(bio string) bool {
	b := canonical(bio)
	if b == "" {
		return true
	}
	if utf8.RuneCountInString(b) > MaxBioLength {
		return false
	}
	for _, r := range b {
		if unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t' {
			return false
		}
	}
	if len(strings.Fields(b)) < MinBioWords {
		return false
	}
	return !ContainsProfanity(b)
}

func isValidFreeText(s string, maxLen int, punctuation string) bool {
	t := canonical(s)
	if t == "" || utf8.RuneCountInString(t) > maxLen {
		return false
	}
	for _, r := range t {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), unicode.Is(unicode.Mn, r), r == ' ':
		case strings.ContainsRune(punctuation, r):
		default:
			return false
		}
	}
	return !ContainsProfanity(t)
}

// ValidateName returns the canonical form of a name field or a field-scoped error.
func ValidateName(raw, field string) (string, error) {
	n := canonical(raw)
	if n == "" {
		return "", autherr.Required(field)
	}
	if utf8.RuneCountInString(n) > MaxNameLength {
		return "", autherr.InvalidName(field, fmt.Sprintf("Must be at most %d characters", MaxNameLength))
	}
	if !IsValidName(n) {
		return "", autherr.InvalidName(field, "Contains characters that are not allowed")
	}
	return n, nil
}

// ValidateJobTitle validates an optional job title.
func ValidateJobTitle(raw, field string) (string, error) {
	return validateFreeText(raw, field, IsValidJobTitle, MaxJobTitleLength)
}

// ValidateDepartment validates an optional department.
func ValidateDepartment(raw, field string) (string, error) {
	return validateFreeText(raw, field, IsValidDepartment, MaxDepartmentLength)
}

// ValidateLocation validates an optional location.
func ValidateLocation(raw, field string) (string, error) {
	return validateFreeText(raw, field, IsValidLocation, MaxLocationLength)
}

// ValidateOrganizationName validates a tenant display name.
func ValidateOrganizationName(raw, field string) (string, error) {
	n := canonical(raw)
	if n == "" {
		return "", autherr.Required(field)
	}
	if !IsValidOrganizationName(n) {
		return "", autherr.InvalidName(field, fmt.Sprintf("Must be %d-%d letters, numbers or common punctuation",
			MinOrganizationNameLength, MaxOrganizationNameLength))
	}
	return n, nil
}

// ValidateBio validates an optional biography.
func ValidateBio(raw, field string) (string, error) {
	b := canonical(raw)
	if IsValidBio(b) {
		return b, nil
	}
	if utf8.RuneCountInString(b) > MaxBioLength {
		return "", autherr.NewValidationError(field, fmt.Sprintf("Must be at most %d characters", MaxBioLength))
	}
	if len(strings.Fields(b)) < MinBioWords {
		return "", autherr.NewValidationError(field, fmt.Sprintf("Must contain at least %d words", MinBioWords))
	}
	return "", autherr.NewValidationError(field, "Contains content that is not allowed")
}

func validateFreeText(raw, field string, valid func(string) bool, maxLen int) (string, error) {
	t := canonical(raw)
	if t == "" {
		return "", autherr.Required(field)
	}
	if utf8.RuneCountInString(t) > maxLen {
		return "", autherr.NewValidationError(field, fmt.Sprintf("Must be at most %d characters", maxLen))
	}
	if !valid(t) {
		return "", autherr.NewValidationError(field, "Contains characters that are not allowed")
	}
	return t, nil
}
