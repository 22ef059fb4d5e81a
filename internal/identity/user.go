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

package identity

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Form field names reported in validation errors.
const (
	FieldFirstName       = "firstName"
	FieldLastName        = "lastName"
	FieldCurrentPassword = "currentPassword"
	FieldToken           = "token"
	FieldTenantName      = "tenantName"
	FieldInvitationToken = "invitationToken"
	FieldJobTitle        = "jobTitle"
	FieldDepartment      = "department"
	FieldLocation        = "location"
	FieldBio             = "bio"
	FieldAvatarURL       = "avatarUrl"
	FieldTimezone        = "timezone"
	FieldLanguage        = "language"
)

// User is the full user record as held by the identity store.
// Roles and permissions are tenant-scoped elsewhere and opaque here.
type User struct {
	ID            string
	Email         string
	EmailVerified bool
	Phone         *string
	PhoneVerified bool
	FirstName     string
	LastName      string
	AvatarURL     *string
	JobTitle      *string
	Department    *string
	Location      *string
	Bio           *string
	Timezone      string
	Language      string
	Roles         []string
	Permissions   []string
	MfaEnabled    bool
	MfaMethods    []string
	LastLoginAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Sensitive fields. Never exposed through UserProfile.
	PasswordHash        string
	MfaBackupCodes      []string
	FailedLoginAttempts int
	LockedUntil         *time.Time
}

// IsLockedAt reports whether the account is locked at now.
func (u User) IsLockedAt(now time.Time) bool {
	return u.LockedUntil != nil && now.Before(*u.LockedUntil)
}

// UserProfile is the client-safe view of a User.
type UserProfile struct {
	ID            string     `json:"id"`
	Email         string     `json:"email"`
	EmailVerified bool       `json:"emailVerified"`
	Phone         *string    `json:"phone,omitempty"`
	PhoneVerified bool       `json:"phoneVerified"`
	FirstName     string     `json:"firstName"`
	LastName      string     `json:"lastName"`
	DisplayName   string     `json:"displayName"`
	Initials      string     `json:"initials"`
	AvatarURL     *string    `json:"avatarUrl,omitempty"`
	JobTitle      *string    `json:"jobTitle,omitempty"`
	Department    *string    `json:"department,omitempty"`
	Location      *string    `json:"location,omitempty"`
	Bio           *string    `json:"bio,omitempty"`
	Timezone      string     `json:"timezone,omitempty"`
	Language      string     `json:"language,omitempty"`
	Roles         []string   `json:"roles"`
	Permissions   []string   `json:"permissions"`
	MfaEnabled    bool       `json:"mfaEnabled"`
	MfaMethods    []string   `json:"mfaMethods,omitempty"`
	LastLoginAt   *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// ToProfile strips sensitive fields from u and computes display fields.
// Slices are copied so the profile does not alias the user.
func ToProfile(u User) UserProfile {
	return UserProfile{
		ID:            u.ID,
		Email:         u.Email,
		EmailVerified: u.EmailVerified,
		Phone:         u.Phone,
		PhoneVerified: u.PhoneVerified,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		DisplayName:   DisplayName(u.FirstName, u.LastName, u.Email),
		Initials:      Initials(u.FirstName, u.LastName, u.Email),
		AvatarURL:     u.AvatarURL,
		JobTitle:      u.JobTitle,
		Department:    u.Department,
		Location:      u.Location,
		Bio:           u.Bio,
		Timezone:      u.Timezone,
		Language:      u.Language,
		Roles:         append([]string{}, u.Roles...),
		Permissions:   append([]string{}, u.Permissions...),
		MfaEnabled:    u.MfaEnabled,
		MfaMethods:    append([]string(nil), u.MfaMethods...),
		LastLoginAt:   u.LastLoginAt,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

// DisplayName is "First Last", falling back to the email local part.
func DisplayName(firstName, lastName, email string) string {
	name := strings.TrimSpace(strings.TrimSpace(firstName) + " " + strings.TrimSpace(lastName))
	if name != "" {
		return name
	}
	local, _, _ := strings.Cut(email, "@")
	return local
}

// Initials are the upper-cased first letters of the first and last name,
// or of the email when both are empty.
func Initials(firstName, lastName, email string) string {
	var b strings.Builder
	for _, s := range []string{firstName, lastName} {
		if r, ok := firstRune(s); ok {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	if b.Len() == 0 {
		if r, ok := firstRune(email); ok {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	return b.String()
}

func firstRune(s string) (rune, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, true
}
