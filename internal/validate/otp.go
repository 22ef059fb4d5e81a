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
	"slices"
	"strings"

	"github.com/vishwanth-dev/prephired-main-sub000/internal/autherr"
)

// DefaultOTPLengths is used when no allowed lengths are supplied.
var DefaultOTPLengths = []int{6}

// IsValidOTP reports whether code has one of allowedLengths and only digits,
// or only ASCII letters and digits when allowAlphanumeric is set.
func IsValidOTP(code string, allowedLengths []int, allowAlphanumeric bool) bool {
	if len(allowedLengths) == 0 {
		allowedLengths = DefaultOTPLengths
	}
	if !slices.Contains(allowedLengths, len(code)) {
		return false
	}
	for i := 0; i < len(code); i++ {
		c := code[i]
		switch {
		case c >= '0' && c <= '9':
		case allowAlphanumeric && (c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'):
		default:
			return false
		}
	}
	return true
}

// NormalizeOTP trims whitespace and inner spaces or hyphens users paste from
// messages ("123 456", "ABCD-EFGH") and validates the result.
func NormalizeOTP(raw string, allowedLengths []int, allowAlphanumeric bool, field string) (string, error) {
	code := strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(raw))
	if code == "" {
		return "", autherr.Required(field)
	}
	if allowAlphanumeric {
		code = strings.ToUpper(code)
	}
	if !IsValidOTP(code, allowedLengths, allowAlphanumeric) {
		return "", autherr.InvalidOTP(field)
	}
	return code, nil
}
