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

import "slices"

// Role is a member's role within a tenant.
type Role string

// Tenant roles, most to least privileged.
const (
	RoleOwner  Role = "tenant_owner"
	RoleAdmin  Role = "tenant_admin"
	RoleMember Role = "tenant_member"
	RoleViewer Role = "tenant_viewer"
)

// Roles lists roles from most to least privileged.
var Roles = []Role{RoleOwner, RoleAdmin, RoleMember, RoleViewer}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return slices.Contains(Roles, r)
}

// rank is 0 for the owner and grows with decreasing privilege.
func (r Role) rank() int {
	return slices.Index(Roles, r)
}

// CanGrant reports whether a member with role r may invite or promote
// someone to target. Owners grant any role except owner; admins grant
// member and viewer. Ownership changes go through a separate transfer.
func (r Role) CanGrant(target Role) bool {
	if !r.Valid() || !target.Valid() || target == RoleOwner {
		return false
	}
	switch r {
	case RoleOwner:
		return true
	case RoleAdmin:
		return target.rank() > RoleAdmin.rank()
	default:
		return false
	}
}

// Membership is a user's role in one tenant, with the tenant's status as
// known to the caller.
type Membership struct {
	TenantID     string `json:"tenantId"`
	Role         Role   `json:"role"`
	TenantStatus Status `json:"tenantStatus"`
}

// FindMembership returns the membership for tenantID.
func FindMembership(memberships []Membership, tenantID string) (Membership, bool) {
	i := slices.IndexFunc(memberships, func(m Membership) bool { return m.TenantID == tenantID })
	if i < 0 {
		return Membership{}, false
	}
	return memberships[i], true
}
