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

// Package limits decides subscription, session, rate and access limits.
// Every check is given the current counters by the caller and returns nil
// when the operation may proceed.
package limits

import (
	"slices"
	"strings"
	"time"

	"github.com/vishwanth-dev/prephired-main-sub000/internal/autherr"
)

// Unlimited marks a quota with no upper bound.
const Unlimited = -1

// ValidateFeatureAccess fails with FeatureNotAvailable when feature is not
// among the features enabled for the tenant's plan.
func ValidateFeatureAccess(enabled []string, feature, plan string) error {
	if slices.Contains(enabled, feature) {
		return nil
	}
	return autherr.FeatureNotAvailable(feature, plan)
}

// ValidateUsageLimit fails once current has reached limit. A negative limit
// is unlimited.
func ValidateUsageLimit(resource string, current, limit int) error {
	if limit < 0 || current < limit {
		return nil
	}
	return autherr.SubscriptionLimitExceeded(resource, current, limit)
}

// ValidateSessionLimits fails when active sessions have reached limit, so
// one more cannot be opened. A negative limit is unlimited.
func ValidateSessionLimits(active, limit int) error {
	if limit < 0 || active < limit {
		return nil
	}
	return autherr.SessionLimitExceeded(active, limit)
}

// RateWindow is the caller's counter for one action.
type RateWindow struct {
	Action   string
	Attempts int
	Max      int
	ResetAt  time.Time
}

// ValidateRateLimit fails when the window's attempts have reached Max and
// the window has not yet reset at now. The error carries the remaining wait.
func ValidateRateLimit(w RateWindow, now time.Time) error {
	if w.Max < 0 || w.Attempts < w.Max || !now.Before(w.ResetAt) {
		return nil
	}
	return autherr.RateLimitExceeded(w.Action, w.ResetAt.Sub(now))
}

// ValidateAccountLock fails while lockedUntil is in the future.
func ValidateAccountLock(lockedUntil *time.Time, now time.Time) error {
	if lockedUntil == nil || !now.Before(*lockedUntil) {
		return nil
	}
	return autherr.AccountLocked(*lockedUntil)
}

// GeoPolicy restricts access by ISO 3166-1 alpha-2 country code. A non-empty
// Allowed list admits only those countries; Blocked is applied after it.
type GeoPolicy struct {
	Allowed []string `yaml:"allowed" env:"ALLOWED" env-separator:","`
	Blocked []string `yaml:"blocked" env:"BLOCKED" env-separator:","`
}

// ValidateGeographicAccess fails when country is not admitted by p. An empty
// country is only rejected when an allow list is configured.
func ValidateGeographicAccess(country string, p GeoPolicy) error {
	cc := strings.ToUpper(strings.TrimSpace(country))
	if len(p.Allowed) > 0 && !containsFold(p.Allowed, cc) {
		return autherr.GeographicRestriction(cc)
	}
	if cc != "" && containsFold(p.Blocked, cc) {
		return autherr.GeographicRestriction(cc)
	}
	return nil
}

func containsFold(list []string, s string) bool {
	return slices.ContainsFunc(list, func(v string) bool { return strings.EqualFold(v, s) })
}
