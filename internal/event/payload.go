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

package event

import "time"

// Payload is the closed set of event bodies. Only types in this package
// implement it.
type Payload interface {
	EventType() Type
	sealed()
}

// UserRef identifies the user an event is about.
type UserRef struct {
	UserID string `json:"userId"`
}

// EventUserID returns the referenced user id.
func (r UserRef) EventUserID() string { return r.UserID }

// TenantRef identifies the tenant an event happened in.
type TenantRef struct {
	TenantID string `json:"tenantId,omitempty"`
}

// EventTenantID returns the referenced tenant id.
func (r TenantRef) EventTenantID() string { return r.TenantID }

// Registration.

type UserRegistered struct {
	UserRef
	TenantRef
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Method       string `json:"method,omitempty"`
	InvitationID string `json:"invitationId,omitempty"`
}

type RegistrationFailed struct {
	Identifier string   `json:"identifier,omitempty"`
	Codes      []string `json:"codes"`
}

// Verification.

type EmailVerificationSent struct {
	UserRef
	Email string `json:"email"`
}

type EmailVerified struct {
	UserRef
	Email string `json:"email"`
}

type PhoneVerificationSent struct {
	UserRef
	Phone string `json:"phone"`
}

type PhoneVerified struct {
	UserRef
	Phone string `json:"phone"`
}

// Login.

type LoginSucceeded struct {
	UserRef
	TenantRef
	SessionID string `json:"sessionId,omitempty"`
	Method    string `json:"method,omitempty"`
	IPAddress string `json:"ipAddress,omitempty"`
	UserAgent string `json:"userAgent,omitempty"`
}

type LoginFailed struct {
	Identifier string `json:"identifier"`
	Reason     string `json:"reason"`
	IPAddress  string `json:"ipAddress,omitempty"`
	Attempts   int    `json:"attempts,omitempty"`
}

type LoggedOut struct {
	UserRef
	SessionID string `json:"sessionId,omitempty"`
}

// Password.

type PasswordResetRequested struct {
	Email     string `json:"email"`
	IPAddress string `json:"ipAddress,omitempty"`
}

type PasswordResetCompleted struct {
	UserRef
}

type PasswordChanged struct {
	UserRef
	SessionsRevoked bool `json:"sessionsRevoked"`
}

// Session.

type SessionCreated struct {
	UserRef
	TenantRef
	SessionID string    `json:"sessionId"`
	ExpiresAt time.Time `json:"expiresAt"`
	IPAddress string    `json:"ipAddress,omitempty"`
}

type SessionRefreshed struct {
	UserRef
	SessionID string    `json:"sessionId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type SessionExpired struct {
	UserRef
	SessionID string `json:"sessionId"`
}

type SessionRevoked struct {
	UserRef
	SessionID string `json:"sessionId"`
	Reason    string `json:"reason,omitempty"`
}

// MFA.

type MfaEnabled struct {
	UserRef
	Method string `json:"method"`
}

type MfaDisabled struct {
	UserRef
	Method string `json:"method"`
}

type MfaChallengeIssued struct {
	UserRef
	ChallengeID string    `json:"challengeId"`
	Method      string    `json:"method"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

type MfaVerified struct {
	UserRef
	ChallengeID string `json:"challengeId"`
	Method      string `json:"method"`
}

type MfaFailed struct {
	UserRef
	ChallengeID string `json:"challengeId"`
	Attempts    int    `json:"attempts"`
	MaxAttempts int    `json:"maxAttempts"`
}

// OAuth.

type OAuthLoginInitiated struct {
	Provider    string `json:"provider"`
	RedirectURI string `json:"redirectUri"`
}

type OAuthAccountLinked struct {
	UserRef
	Provider       string `json:"provider"`
	ProviderUserID string `json:"providerUserId"`
}

type OAuthAccountUnlinked struct {
	UserRef
	Provider string `json:"provider"`
}

// Tenant.

type TenantCreated struct {
	TenantRef
	OwnerID string `json:"ownerId"`
	Name    string `json:"name"`
	Slug    string `json:"slug"`
	Plan    string `json:"plan"`
}

// TenantSwitched records a user moving to the tenant in TenantRef.
type TenantSwitched struct {
	UserRef
	TenantRef
	FromTenantID string `json:"fromTenantId,omitempty"`
}

type TenantStatusChanged struct {
	TenantRef
	From      string `json:"from"`
	To        string `json:"to"`
	ChangedBy string `json:"changedBy,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

type MemberInvited struct {
	TenantRef
	InvitationID string `json:"invitationId"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	InvitedBy    string `json:"invitedBy"`
}

type InvitationAccepted struct {
	UserRef
	TenantRef
	InvitationID string `json:"invitationId"`
	Role         string `json:"role"`
}

type MemberRemoved struct {
	UserRef
	TenantRef
	RemovedBy string `json:"removedBy,omitempty"`
}

type MemberRoleChanged struct {
	UserRef
	TenantRef
	From      string `json:"from"`
	To        string `json:"to"`
	ChangedBy string `json:"changedBy,omitempty"`
}

// Security.

type AccountLocked struct {
	UserRef
	Until  time.Time `json:"until"`
	Reason string    `json:"reason,omitempty"`
}

type AccountUnlocked struct {
	UserRef
	UnlockedBy string `json:"unlockedBy,omitempty"`
}

type RateLimitExceeded struct {
	Action     string `json:"action"`
	Identifier string `json:"identifier,omitempty"`
	IPAddress  string `json:"ipAddress,omitempty"`
	Attempts   int    `json:"attempts"`
}

// SuspiciousActivityDetected may be raised before a user is known, in which
// case UserID is empty.
type SuspiciousActivityDetected struct {
	UserRef
	Reason    string `json:"reason"`
	IPAddress string `json:"ipAddress,omitempty"`
	UserAgent string `json:"userAgent,omitempty"`
}

type GeographicAccessBlocked struct {
	UserRef
	Country   string `json:"country"`
	IPAddress string `json:"ipAddress,omitempty"`
}

// Profile.

type ProfileUpdated struct {
	UserRef
	TenantRef
	Fields []string `json:"fields"`
}

type EmailChanged struct {
	UserRef
	OldEmail string `json:"oldEmail"`
	NewEmail string `json:"newEmail"`
}

func (UserRegistered) EventType() Type             { return TypeUserRegistered }
func (RegistrationFailed) EventType() Type         { return TypeRegistrationFailed }
func (EmailVerificationSent) EventType() Type      { return TypeEmailVerificationSent }
func (EmailVerified) EventType() Type              { return TypeEmailVerified }
func (PhoneVerificationSent) EventType() Type      { return TypePhoneVerificationSent }
func (PhoneVerified) EventType() Type              { return TypePhoneVerified }
func (LoginSucceeded) EventType() Type             { return TypeLoginSucceeded }
func (LoginFailed) EventType() Type                { return TypeLoginFailed }
func (LoggedOut) EventType() Type                  { return TypeLoggedOut }
func (PasswordResetRequested) EventType() Type     { return TypePasswordResetRequested }
func (PasswordResetCompleted) EventType() Type     { return TypePasswordResetCompleted }
func (PasswordChanged) EventType() Type            { return TypePasswordChanged }
func (SessionCreated) EventType() Type             { return TypeSessionCreated }
func (SessionRefreshed) EventType() Type           { return TypeSessionRefreshed }
func (SessionExpired) EventType() Type             { return TypeSessionExpired }
func (SessionRevoked) EventType() Type             { return TypeSessionRevoked }
func (MfaEnabled) EventType() Type                 { return TypeMfaEnabled }
func (MfaDisabled) EventType() Type                { return TypeMfaDisabled }
func (MfaChallengeIssued) EventType() Type         { return TypeMfaChallengeIssued }
func (MfaVerified) EventType() Type                { return TypeMfaVerified }
func (MfaFailed) EventType() Type                  { return TypeMfaFailed }
func (OAuthLoginInitiated) EventType() Type        { return TypeOAuthLoginInitiated }
func (OAuthAccountLinked) EventType() Type         { return TypeOAuthAccountLinked }
func (OAuthAccountUnlinked) EventType() Type       { return TypeOAuthAccountUnlinked }
func (TenantCreated) EventType() Type              { return TypeTenantCreated }
func (TenantSwitched) EventType() Type             { return TypeTenantSwitched }
func (TenantStatusChanged) EventType() Type        { return TypeTenantStatusChanged }
func (MemberInvited) EventType() Type              { return TypeMemberInvited }
func (InvitationAccepted) EventType() Type         { return TypeInvitationAccepted }
func (MemberRemoved) EventType() Type              { return TypeMemberRemoved }
func (MemberRoleChanged) EventType() Type          { return TypeMemberRoleChanged }
func (AccountLocked) EventType() Type              { return TypeAccountLocked }
func (AccountUnlocked) EventType() Type            { return TypeAccountUnlocked }
func (RateLimitExceeded) EventType() Type          { return TypeRateLimitExceeded }
func (SuspiciousActivityDetected) EventType() Type { return TypeSuspiciousActivityDetected }
func (GeographicAccessBlocked) EventType() Type    { return TypeGeographicAccessBlocked }
func (ProfileUpdated) EventType() Type             { return TypeProfileUpdated }
func (EmailChanged) EventType() Type               { return TypeEmailChanged }

func (UserRegistered) sealed()             {}
func (RegistrationFailed) sealed()         {}
func (EmailVerificationSent) sealed()      {}
func (EmailVerified) sealed()              {}
func (PhoneVerificationSent) sealed()      {}
func (PhoneVerified) sealed()              {}
func (LoginSucceeded) sealed()             {}
func (LoginFailed) sealed()                {}
func (LoggedOut) sealed()                  {}
func (PasswordResetRequested) sealed()     {}
func (PasswordResetCompleted) sealed()     {}
func (PasswordChanged) sealed()            {}
func (SessionCreated) sealed()             {}
func (SessionRefreshed) sealed()           {}
func (SessionExpired) sealed()             {}
func (SessionRevoked) sealed()             {}
func (MfaEnabled) sealed()                 {}
func (MfaDisabled) sealed()                {}
func (MfaChallengeIssued) sealed()         {}
func (MfaVerified) sealed()                {}
func (MfaFailed) sealed()                  {}
func (OAuthLoginInitiated) sealed()        {}
func (OAuthAccountLinked) sealed()         {}
func (OAuthAccountUnlinked) sealed()       {}
func (TenantCreated) sealed()              {}
func (TenantSwitched) sealed()             {}
func (TenantStatusChanged) sealed()        {}
func (MemberInvited) sealed()              {}
func (InvitationAccepted) sealed()         {}
func (MemberRemoved) sealed()              {}
func (MemberRoleChanged) sealed()          {}
func (AccountLocked) sealed()              {}
func (AccountUnlocked) sealed()            {}
func (RateLimitExceeded) sealed()          {}
func (SuspiciousActivityDetected) sealed() {}
func (GeographicAccessBlocked) sealed()    {}
func (ProfileUpdated) sealed()             {}
func (EmailChanged) sealed()               {}
