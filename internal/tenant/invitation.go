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
	"time"

	"github.com/vishwanth-dev/prephired-main-sub000/internal/autherr"
	"github.com/vishwanth-dev/prephired-main-sub000/internal/validate"
)

// DefaultInvitationTTL is how long an invitation stays valid.
const DefaultInvitationTTL = 7 * 24 * time.Hour

// FieldRole is the invite form's role field.
const FieldRole = "role"

// Invitation asks someone to join a tenant.
type Invitation struct {
	ID         string     `json:"id"`
	TenantID   string     `json:"tenantId"`
	Email      string     `json:"email"`
	Role       Role       `json:"role"`
	InvitedBy  string     `json:"invitedBy"`
	ExpiresAt  time.Time  `json:"expiresAt"`
	AcceptedAt *time.Time `json:"acceptedAt,omitempty"`
}

// IsExpiredAt reports whether the invitation has expired at now.
func (i Invitation) IsExpiredAt(now time.Time) bool {
	return !now.Before(i.ExpiresAt)
}

// InviteForm is the raw input for inviting a member.
type InviteForm struct {
	Email string
	Role  string
	// InviterRole is the role of the member sending the invitation.
	InviterRole Role
	// ExistingEmails are the current members' emails, lower-cased.
	ExistingEmails []string
}

// ValidateInvite checks the invitee email and that the inviter may grant the
// requested role.
func ValidateInvite(form InviteForm) autherr.ValidationResult {
	var c autherr.Collector

	email, err := validate.NormalizeEmail(form.Email)
	c.Add(err)
	if err == nil {
		for _, existing := range form.ExistingEmails {
			if strings.EqualFold(existing, string(email)) {
				c.Add(autherr.UserAlreadyExists(string(email)).WithField(autherr.FieldEmail))
				break
			}
		}
	}

	role := Role(strings.ToLower(strings.TrimSpace(form.Role)))
	switch {
	case role == "":
		c.Add(autherr.Required(FieldRole))
	case !role.Valid():
		c.Add(autherr.NewValidationError(FieldRole, "Unknown role"))
	case !form.InviterRole.CanGrant(role):
		c.Add(autherr.NewValidationError(FieldRole, "You cannot invite members with this role"))
	}
	return c.Result()
}

// ValidateInvitationAcceptance decides whether email may accept inv at now.
func ValidateInvitationAcceptance(inv Invitation, email string, now time.Time) error {
	if inv.AcceptedAt != nil {
		return autherr.InvitationAlreadyAccepted(inv.ID)
	}
	if inv.IsExpiredAt(now) {
		return autherr.InvitationExpired(inv.ID)
	}
	if !strings.EqualFold(strings.TrimSpace(email), inv.Email) {
		return autherr.InvitationEmailMismatch(inv.ID)
	}
	return nil
}
