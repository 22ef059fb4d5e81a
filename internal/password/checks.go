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
	"strings"
	"unicode"
)

// classes records which character classes occur in a password.
type classes struct {
	lower, upper, digit, symbol bool
}

func classify(pw string) classes {
	var c classes
	for _, r := range pw {
		switch {
		case unicode.IsLower(r):
			c.lower = true
		case unicode.IsUpper(r):
			c.upper = true
		case unicode.IsDigit(r):
			c.digit = true
		case unicode.IsSpace(r):
		default:
			c.symbol = true
		}
	}
	return c
}

// longestRun returns the length of the longest run of one repeated rune.
func longestRun(pw string) int {
	longest, run := 0, 0
	var prev rune = -1
	for _, r := range pw {
		if r == prev {
			run++
		} else {
			run = 1
			prev = r
		}
		longest = max(longest, run)
	}
	return longest
}

// hasSequence reports whether pw contains three consecutive ascending or
// descending digits or letters ("123", "cba"), ignoring case.
func hasSequence(pw string) bool {
	rs := []rune(strings.ToLower(pw))
	for i := 0; i+2 < len(rs); i++ {
		a, b, c := rs[i], rs[i+1], rs[i+2]
		if !sameSequenceClass(a, b, c) {
			continue
		}
		if (b == a+1 && c == b+1) || (b == a-1 && c == b-1) {
			return true
		}
	}
	return false
}

func sameSequenceClass(rs ...rune) bool {
	digits, letters := true, true
	for _, r := range rs {
		digits = digits && r >= '0' && r <= '9'
		letters = letters && r >= 'a' && r <= 'z'
	}
	return digits || letters
}

func uniqueRunes(pw string) int {
	seen := make(map[rune]struct{}, len(pw))
	for _, r := range pw {
		seen[r] = struct{}{}
	}
	return len(seen)
}
