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

// Package password implements the configurable password policy: strength
// scoring for feedback and hard validation for registration and resets.
package password

import (
	"errors"
	"fmt"
)

// ErrInvalidPolicy is returned by Policy.Validate.
var ErrInvalidPolicy = errors.New("invalid password policy")

// Policy is a password policy. It is supplied by the caller, may differ per
// tenant, and is never mutated by this package.
type Policy struct {
	MinLength              int  `yaml:"min_length" env:"MIN_LENGTH" env-default:"8"`
	MaxLength              int  `yaml:"max_length" env:"MAX_LENGTH" env-default:"128"`
	RequireUppercase       bool `yaml:"require_uppercase" env:"REQUIRE_UPPERCASE" env-default:"true"`
	RequireLowercase       bool `yaml:"require_lowercase" env:"REQUIRE_LOWERCASE" env-default:"true"`
	RequireNumbers         bool `yaml:"require_numbers" env:"REQUIRE_NUMBERS" env-default:"true"`
	RequireSymbols         bool `yaml:"require_symbols" env:"REQUIRE_SYMBOLS" env-default:"true"`
	PreventCommonPasswords bool `yaml:"prevent_common" env:"PREVENT_COMMON" env-default:"true"`
	PreventPersonalInfo    bool `yaml:"prevent_personal_info" env:"PREVENT_PERSONAL_INFO" env-default:"true"`
	// MaxRepeatedChars is the longest allowed run of one character. Zero disables the check.
	MaxRepeatedChars int `yaml:"max_repeated_chars" env:"MAX_REPEATED_CHARS" env-default:"2"`
	// HistoryCount is how many previous passwords may not be reused. Zero disables the check.
	HistoryCount int `yaml:"history_count" env:"HISTORY_COUNT" env-default:"5"`
}

// DefaultPolicy returns the platform default policy.
func DefaultPolicy() Policy {
	return Policy{
		MinLength:              8,
		MaxLength:              128,
		RequireUppercase:       true,
		RequireLowercase:       true,
		RequireNumbers:         true,
		RequireSymbols:         true,
		PreventCommonPasswords: true,
		PreventPersonalInfo:    true,
		MaxRepeatedChars:       2,
		HistoryCount:           5,
	}
}

// Validate checks the policy's own invariants.
func (p Policy) Validate() error {
	if p.MinLength < 1 {
		return fmt.Errorf("%w: min length must be at least 1, got %d", ErrInvalidPolicy, p.MinLength)
	}
	if p.MaxLength < p.MinLength {
		return fmt.Errorf("%w: max length %d is below min length %d", ErrInvalidPolicy, p.MaxLength, p.MinLength)
	}
	if p.MaxRepeatedChars < 0 {
		return fmt.Errorf("%w: max repeated chars must not be negative", ErrInvalidPolicy)
	}
	if p.HistoryCount < 0 {
		return fmt.Errorf("%w: history count must not be negative", ErrInvalidPolicy)
	}
	return nil
}

// Requirements lists the human-readable rules of the policy, in the order
// Validate reports violations. Useful for rendering hints before input.
func (p Policy) Requirements() []string {
	reqs := []string{fmt.Sprintf(reqMinLength, p.MinLength)}
	if p.RequireUppercase {
		reqs = append(reqs, reqUppercase)
	}
	if p.RequireLowercase {
		reqs = append(reqs, reqLowercase)
	}
	if p.RequireNumbers {
		reqs = append(reqs, reqNumber)
	}
	if p.RequireSymbols {
		reqs = append(reqs, reqSymbol)
	}
	if p.MaxRepeatedChars > 0 {
		reqs = append(reqs, fmt.Sprintf(reqRepeated, p.MaxRepeatedChars))
	}
	return reqs
}

const (
	reqMinLength   = "At least %d characters"
	reqMaxLength   = "At most %d characters"
	reqUppercase   = "At least one uppercase letter"
	reqLowercase   = "At least one lowercase letter"
	reqNumber      = "At least one number"
	reqSymbol      = "At least one special character"
	reqRepeated    = "No more than %d identical characters in a row"
	reqNotCommon   = "Must not be a commonly used password"
	reqNotPersonal = "Must not contain your name or email"
)
