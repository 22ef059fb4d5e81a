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

package tenant

import (
	"slices"
	"time"

	"github.com/vishwanth-dev/prephired-main-sub000/internal/autherr"
)

// Status is the lifecycle state of a tenant.
type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusSuspended Status = "suspended"
	StatusTrial     Status = "trial"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// IsUsable reports whether members can sign in to a tenant in status s.
func (s Status) IsUsable() bool {
	return s == StatusActive || s == StatusTrial
}

// Plan is a subscription plan.
type Plan string

const (
	PlanFree         Plan = "free"
	PlanStarter      Plan = "starter"
	PlanProfessional Plan = "professional"
	PlanEnterprise   Plan = "enterprise"
)

// Plans lists plans from cheapest to most expensive.
var Plans = []Plan{PlanFree, PlanStarter, PlanProfessional, PlanEnterprise}

// Valid reports whether p is a known plan.
func (p Plan) Valid() bool {
	return slices.Contains(Plans, p)
}

// Tenant is an organization on the platform.
type Tenant struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Slug      string         `json:"slug"`
	Status    Status         `json:"status"`
	Plan      Plan           `json:"plan"`
	Features  []string       `json:"features"`
	Limits    map[string]int `json:"limits"`
	Country   string         `json:"country,omitempty"`
	Timezone  string         `json:"timezone,omitempty"`
	Language  string         `json:"language,omitempty"`
	Currency  string         `json:"currency,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// HasFeature reports whether feature is enabled for t.
func (t Tenant) HasFeature(feature string) bool {
	return slices.Contains(t.Features, feature)
}

// Limit returns the quota for resource and whether one is set.
func (t Tenant) Limit(resource string) (int, bool) {
	v, ok := t.Limits[resource]
	return v, ok
}

// transitions lists the statuses reachable from each status. Status changes
// are performed elsewhere; this package only validates them.
var transitions = map[Status][]Status{
	StatusTrial:     {StatusActive, StatusSuspended, StatusInactive},
	StatusActive:    {StatusSuspended, StatusInactive},
	StatusSuspended: {StatusActive, StatusInactive},
	StatusInactive:  {StatusActive},
}

// ValidateStatusTransition reports whether a tenant may move from one status
// to another. No-op transitions are rejected.
func ValidateStatusTransition(from, to Status) error {
	if !from.Valid() || !to.Valid() || !slices.Contains(transitions[from], to) {
		return autherr.InvalidStatusTransition(string(from), string(to))
	}
	return nil
}
