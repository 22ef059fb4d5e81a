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

// Package mfa validates multi-factor setup and verification and models the
// lifecycle of a verification challenge.
package mfa

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/vishwanth-dev/prephired-main-sub000/internal/autherr"
	"github.com/vishwanth-dev/prephired-main-sub000/internal/validate"
)

// Method is a second-factor method.
type Method string

const (
	MethodTOTP       Method = "totp"
	MethodSMS        Method = "sms"
	MethodEmail      Method = "email"
	MethodBackupCode Method = "backup_code"
)

// Methods lists every supported method.
var Methods = []Method{MethodTOTP, MethodSMS, MethodEmail, MethodBackupCode}

// Valid reports whether m is a supported method.
func (m Method) Valid() bool {
	return slices.Contains(Methods, m)
}

// CodeLengths returns the accepted code lengths for m and whether codes
// may contain letters.
func (m Method) CodeLengths() ([]int, bool) {
	switch m {
	case MethodEmail:
		return []int{6, 8}, false
	case MethodBackupCode:
		return []int{8, 10}, true
	default:
		return []int{6}, false
	}
}

// Challenge defaults.
const (
	DefaultChallengeTTL = 5 * time.Minute
	DefaultMaxAttempts  = 5
)

// ErrInvalidChallenge is returned by NewChallenge for inconsistent input.
var ErrInvalidChallenge = errors.New("invalid mfa challenge")

// Challenge is an issued verification challenge. It is a value: methods
// return updated copies. Once Attempts reaches MaxAttempts the challenge is
// terminal and a new one must be issued.
type Challenge struct {
	ID          string
	UserID      string
	Method      Method
	Attempts    int
	MaxAttempts int
	CreatedAt   time.Time
	ExpiresAt   time.Time
}

// NewChallenge builds a challenge expiring ttl after createdAt.
func NewChallenge(id, userID string, method Method, createdAt time.Time, ttl time.Duration, maxAttempts int) (Challenge, error) {
	switch {
	case id == "" || userID == "":
		return Challenge{}, fmt.Errorf("%w: id and user id are required", ErrInvalidChallenge)
	case !method.Valid():
		return Challenge{}, fmt.Errorf("%w: unsupported method %q", ErrInvalidChallenge, method)
	case ttl <= 0:
		return Challenge{}, fmt.Errorf("%w: ttl must be positive", ErrInvalidChallenge)
	case maxAttempts < 1:
		return Challenge{}, fmt.Errorf("%w: max attempts must be at least 1", ErrInvalidChallenge)
	}
	return Challenge{
		ID:          id,
		UserID:      userID,
		Method:      method,
		MaxAttempts: maxAttempts,
		CreatedAt:   createdAt,
		ExpiresAt:   createdAt.Add(ttl),
	}, nil
}

// IsExpiredAt reports whether the challenge has expired at now.
func (c Challenge) IsExpiredAt(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

// IsExhausted reports whether no attempts remain.
func (c Challenge) IsExhausted() bool {
	return c.Attempts >= c.MaxAttempts
}

// RemainingAttempts returns how many verification attempts remain.
func (c Challenge) RemainingAttempts() int {
	return max(c.MaxAttempts-c.Attempts, 0)
}

// RecordAttempt returns c with one more attempt counted. An exhausted
// challenge cannot record further attempts.
func (c Challenge) RecordAttempt() (Challenge, error) {
	if c.IsExhausted() {
		return c, autherr.MfaTooManyAttempts(c.ID, c.MaxAttempts)
	}
	c.Attempts++
	return c, nil
}

// ValidateChallenge decides whether ch may still be answered at now.
func ValidateChallenge(ch Challenge, now time.Time) error {
	if ch.IsExpiredAt(now) {
		return autherr.MfaChallengeExpired(ch.ID)
	}
	if ch.IsExhausted() {
		return autherr.MfaTooManyAttempts(ch.ID, ch.MaxAttempts)
	}
	return nil
}

// SetupForm enrols a new second factor.
type SetupForm struct {
	Method Method
	// Phone is required for SMS.
	Phone string
	// Email is required for email codes.
	Email string
	// Code confirms a TOTP secret was stored by the authenticator app.
	Code string
}

// ValidateSetup checks form against the methods enabled for the tenant.
// An empty enabled list allows every supported method.
func ValidateSetup(form SetupForm, enabled []Method, defaultCountryCode string) autherr.ValidationResult {
	var c autherr.Collector
	m := Method(strings.ToLower(strings.TrimSpace(string(form.Method))))
	switch {
	case m == "":
		c.Add(autherr.Required("method"))
		return c.Result()
	case !m.Valid(), m == MethodBackupCode, len(enabled) > 0 && !slices.Contains(enabled, m):
		c.Add(autherr.UnsupportedMfaMethod(string(m)))
		return c.Result()
	}

	switch m {
	case MethodSMS:
		_, err := validate.NormalizePhoneField(form.Phone, defaultCountryCode, autherr.FieldPhone)
		c.Add(err)
	case MethodEmail:
		_, err := validate.NormalizeEmail(form.Email)
		c.Add(err)
	case MethodTOTP:
		lengths, alnum := m.CodeLengths()
		_, err := validate.NormalizeOTP(form.Code, lengths, alnum, autherr.FieldCode)
		c.Add(err)
	}
	return c.Result()
}

// VerifyForm answers a challenge.
type VerifyForm struct {
	ChallengeID string
	Method      Method
	Code        string
}

// ValidateVerify checks the shape of a verification attempt. The code itself
// is checked by the caller's verifier.
func ValidateVerify(form VerifyForm) autherr.ValidationResult {
	var c autherr.Collector
	if strings.TrimSpace(form.ChallengeID) == "" {
		c.Add(autherr.Required("challengeId"))
	}
	if !form.Method.Valid() {
		c.Add(autherr.UnsupportedMfaMethod(string(form.Method)))
		return c.Result()
	}
	lengths, alnum := form.Method.CodeLengths()
	_, err := validate.NormalizeOTP(form.Code, lengths, alnum, autherr.FieldCode)
	c.Add(err)
	return c.Result()
}
