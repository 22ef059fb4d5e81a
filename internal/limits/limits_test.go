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

package limits_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vishwanth-dev/prephired-main-sub000/internal/autherr"
	"github.com/vishwanth-dev/prephired-main-sub000/internal/limits"
)

// TestPurpose: Verifies quota checks fail exactly at the boundary.
// Scope: Unit Test
// Expected: current == max is rejected, current == max-1 passes, negative max is unlimited.
// Test Case ID: LIM-01
func TestLimits_UsageBoundary(t *testing.T) {
	err := limits.ValidateUsageLimit("interviews", 100, 100)
	require.ErrorIs(t, err, autherr.ErrSubscriptionLimitExceeded)
	ae, ok := autherr.As(err)
	require.True(t, ok)
	assert.Equal(t, 100, ae.Metadata["limit"])

	assert.NoError(t, limits.ValidateUsageLimit("interviews", 99, 100))
	assert.NoError(t, limits.ValidateUsageLimit("interviews", 5000, limits.Unlimited))

	assert.ErrorIs(t, limits.ValidateSessionLimits(3, 3), autherr.ErrSessionLimitExceeded)
	assert.NoError(t, limits.ValidateSessionLimits(2, 3))
}

// TestPurpose: Verifies plan feature gating.
// Scope: Unit Test
// Expected: Features outside the plan fail with FEATURE_NOT_AVAILABLE.
// Test Case ID: LIM-02
func TestLimits_FeatureAccess(t *testing.T) {
	enabled := []string{"sso", "audit_log"}
	assert.NoError(t, limits.ValidateFeatureAccess(enabled, "sso", "professional"))

	err := limits.ValidateFeatureAccess(enabled, "scim", "professional")
	require.ErrorIs(t, err, autherr.ErrFeatureNotAvailable)
	assert.True(t, autherr.IsBusinessRule(err))
}

// TestPurpose: Verifies rate-limit, lockout and geographic checks.
// Scope: Unit Test
// Security: Brute force and restricted regions are refused before credentials are checked.
// Expected: Each check fails only while its condition holds at now.
// Test Case ID: LIM-03
func TestLimits_SecurityChecks(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	w := limits.RateWindow{Action: "login", Attempts: 5, Max: 5, ResetAt: now.Add(90 * time.Second)}
	err := limits.ValidateRateLimit(w, now)
	require.ErrorIs(t, err, autherr.ErrRateLimitExceeded)
	assert.True(t, autherr.IsSecurityViolation(err))
	ae, ok := autherr.As(err)
	require.True(t, ok)
	assert.Equal(t, int64(90), ae.Metadata["retry_after_seconds"])
	assert.NoError(t, limits.ValidateRateLimit(w, w.ResetAt))
	w.Attempts = 4
	assert.NoError(t, limits.ValidateRateLimit(w, now))

	until := now.Add(time.Minute)
	assert.ErrorIs(t, limits.ValidateAccountLock(&until, now), autherr.ErrAccountLocked)
	assert.NoError(t, limits.ValidateAccountLock(&until, until))
	assert.NoError(t, limits.ValidateAccountLock(nil, now))

	geo := limits.GeoPolicy{Allowed: []string{"US", "DE"}, Blocked: []string{"DE"}}
	assert.NoError(t, limits.ValidateGeographicAccess("us", geo))
	assert.ErrorIs(t, limits.ValidateGeographicAccess("DE", geo), autherr.ErrGeographicRestriction)
	assert.ErrorIs(t, limits.ValidateGeographicAccess("FR", geo), autherr.ErrGeographicRestriction)
	assert.ErrorIs(t, limits.ValidateGeographicAccess("", geo), autherr.ErrGeographicRestriction)
	assert.NoError(t, limits.ValidateGeographicAccess("", limits.GeoPolicy{Blocked: []string{"KP"}}))
}
