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

// Package session holds the session value type and its time-based rules.
// Issuing and storing sessions happens outside this module.
package session

import (
	"errors"
	"strings"
	"time"

	"github.com/vishwanth-dev/prephired-main-sub000/internal/autherr"
)

// Domain errors
var (
	ErrSessionInvalid = errors.New("session invalid")
)

// DefaultIdleTimeout is how long a session may go unused.
const DefaultIdleTimeout = 30 * time.Minute

// Device describes the client a session was opened from.
type Device struct {
	UserAgent string `json:"userAgent,omitempty"`
	// Country is the ISO 3166-1 alpha-2 code resolved from the client
	// address, if any.
	Country string `json:"country,omitempty"`
}

// Session is an authenticated user's session. TenantID is nil for sessions
// not bound to a tenant.
type Session struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	TenantID     *string   `json:"tenantId,omitempty"`
	ExpiresAt    time.Time `json:"expiresAt"`
	Device       Device    `json:"device"`
	IPAddress    string    `json:"ipAddress,omitempty"`
	RememberMe   bool      `json:"rememberMe"`
	CreatedAt    time.Time `json:"createdAt"`
	LastActivity time.Time `json:"lastActivity"`
}

// HasTenant reports whether s is bound to a tenant.
func (s Session) HasTenant() bool {
	return s.TenantID != nil && *s.TenantID != ""
}

// New checks the identifiers and timestamps of s and returns it with
// LastActivity defaulted to CreatedAt.
func New(s Session) (Session, error) {
	if strings.TrimSpace(s.ID) == "" || strings.TrimSpace(s.UserID) == "" {
		return Session{}, errors.Join(ErrSessionInvalid, errors.New("session and user id are required"))
	}
	if s.TenantID != nil && strings.TrimSpace(*s.TenantID) == "" {
		return Session{}, errors.Join(ErrSessionInvalid, errors.New("tenant id is empty"))
	}
	if s.CreatedAt.IsZero() || !s.ExpiresAt.After(s.CreatedAt) {
		return Session{}, errors.Join(ErrSessionInvalid, errors.New("expiry must be after creation"))
	}
	if s.TenantID != nil {
		tenant := *s.TenantID
		s.TenantID = &tenant
	}
	if s.LastActivity.IsZero() {
		s.LastActivity = s.CreatedAt
	}
	if s.LastActivity.Before(s.CreatedAt) {
		return Session{}, errors.Join(ErrSessionInvalid, errors.New("last activity before creation"))
	}
	return s, nil
}

// IsExpiredAt reports whether the session has expired at now.
func (s Session) IsExpiredAt(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// IsIdleAt reports whether the session has gone unused for longer than
// idleTimeout at now. A non-positive timeout disables the idle check.
func (s Session) IsIdleAt(now time.Time, idleTimeout time.Duration) bool {
	return idleTimeout > 0 && now.Sub(s.LastActivity) > idleTimeout
}

// Touch returns a copy of s with its last activity at now.
func (s Session) Touch(now time.Time) Session {
	if now.After(s.LastActivity) {
		s.LastActivity = now
	}
	return s
}

// Check fails with SessionExpired when s is expired or idle at now.
func (s Session) Check(now time.Time, idleTimeout time.Duration) error {
	if s.IsExpiredAt(now) {
		return autherr.SessionExpired(s.ID)
	}
	if s.IsIdleAt(now, idleTimeout) {
		return autherr.SessionExpired(s.ID).WithMetadata("reason", "idle")
	}
	return nil
}

// CountActive returns how many of sessions are usable at now.
func CountActive(sessions []Session, now time.Time, idleTimeout time.Duration) int {
	n := 0
	for _, s := range sessions {
		if s.Check(now, idleTimeout) == nil {
			n++
		}
	}
	return n
}
