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
	"strings"

	"github.com/vishwanth-dev/prephired-main-sub000/internal/autherr"
	"github.com/vishwanth-dev/prephired-main-sub000/internal/id"
)

// SwitchRequest moves a signed-in user from one tenant to another.
type SwitchRequest struct {
	// SourceTenantID is the current tenant; empty when none is selected.
	SourceTenantID string
	TargetTenantID string
	Memberships    []Membership
}

// ValidateSwitch checks a tenant switch and returns the target membership.
// A malformed target id aborts before any other check. Switching to the
// current tenant is flagged rather than silently accepted.
func ValidateSwitch(req SwitchRequest) (Membership, error) {
	target := strings.TrimSpace(req.TargetTenantID)
	if !id.IsUUIDv4(target) {
		return Membership{}, autherr.InvalidTenantID(autherr.FieldTenantID)
	}
	if strings.EqualFold(target, strings.TrimSpace(req.SourceTenantID)) {
		return Membership{}, autherr.SameTenantSwitch()
	}
	m, ok := FindMembership(req.Memberships, target)
	if !ok {
		return Membership{}, autherr.TenantAccessDenied(target)
	}
	if !m.TenantStatus.IsUsable() {
		return Membership{}, autherr.TenantSuspended(target).WithMetadata("status", string(m.TenantStatus))
	}
	return m, nil
}
