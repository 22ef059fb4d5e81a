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

import "slices"

// Type names an event. Values are stable identifiers shared with analytics
// and audit consumers.
type Type string

// Category groups event types for routing and retention.
type Category string

const (
	CategoryRegistration Category = "registration"
	CategoryVerification Category = "verification"
	CategoryLogin        Category = "login"
	CategoryPassword     Category = "password"
	CategorySession      Category = "session"
	CategoryMFA          Category = "mfa"
	CategoryOAuth        Category = "oauth"
	CategoryTenant       Category = "tenant"
	CategorySecurity     Category = "security"
	CategoryProfile      Category = "profile"
)

const (
	TypeUserRegistered     Type = "UserRegistered"
	TypeRegistrationFailed Type = "RegistrationFailed"

	TypeEmailVerificationSent Type = "EmailVerificationSent"
	TypeEmailVerified         Type = "EmailVerified"
	TypePhoneVerificationSent Type = "PhoneVerificationSent"
	TypePhoneVerified         Type = "PhoneVerified"

	TypeLoginSucceeded Type = "LoginSucceeded"
	TypeLoginFailed    Type = "LoginFailed"
	TypeLoggedOut      Type = "LoggedOut"

	TypePasswordResetRequested Type = "PasswordResetRequested"
	TypePasswordResetCompleted Type = "PasswordResetCompleted"
	TypePasswordChanged        Type = "PasswordChanged"

	TypeSessionCreated   Type = "SessionCreated"
	TypeSessionRefreshed Type = "SessionRefreshed"
	TypeSessionExpired   Type = "SessionExpired"
	TypeSessionRevoked   Type = "SessionRevoked"

	TypeMfaEnabled         Type = "MfaEnabled"
	TypeMfaDisabled        Type = "MfaDisabled"
	TypeMfaChallengeIssued Type = "MfaChallengeIssued"
	TypeMfaVerified        Type = "MfaVerified"
	TypeMfaFailed          Type = "MfaFailed"

	TypeOAuthLoginInitiated  Type = "OAuthLoginInitiated"
	TypeOAuthAccountLinked   Type = "OAuthAccountLinked"
	TypeOAuthAccountUnlinked Type = "OAuthAccountUnlinked"

	TypeTenantCreated       Type = "TenantCreated"
	TypeTenantSwitched      Type = "TenantSwitched"
	TypeTenantStatusChanged Type = "TenantStatusChanged"
	TypeMemberInvited       Type = "MemberInvited"
	TypeInvitationAccepted  Type = "InvitationAccepted"
	TypeMemberRemoved       Type = "MemberRemoved"
	TypeMemberRoleChanged   Type = "MemberRoleChanged"

	TypeAccountLocked              Type = "AccountLocked"
	TypeAccountUnlocked            Type = "AccountUnlocked"
	TypeRateLimitExceeded          Type = "RateLimitExceeded"
	TypeSuspiciousActivityDetected Type = "SuspiciousActivityDetected"
	TypeGeographicAccessBlocked    Type = "GeographicAccessBlocked"

	TypeProfileUpdated Type = "ProfileUpdated"
	TypeEmailChanged   Type = "EmailChanged"
)

var categories = map[Type]Category{
	TypeUserRegistered:     CategoryRegistration,
	TypeRegistrationFailed: CategoryRegistration,

	TypeEmailVerificationSent: CategoryVerification,
	TypeEmailVerified:         CategoryVerification,
	TypePhoneVerificationSent: CategoryVerification,
	TypePhoneVerified:         CategoryVerification,

	TypeLoginSucceeded: CategoryLogin,
	TypeLoginFailed:    CategoryLogin,
	TypeLoggedOut:      CategoryLogin,

	TypePasswordResetRequested: CategoryPassword,
	TypePasswordResetCompleted: CategoryPassword,
	TypePasswordChanged:        CategoryPassword,

	TypeSessionCreated:   CategorySession,
	TypeSessionRefreshed: CategorySession,
	TypeSessionExpired:   CategorySession,
	TypeSessionRevoked:   CategorySession,

	TypeMfaEnabled:         CategoryMFA,
	TypeMfaDisabled:        CategoryMFA,
	TypeMfaChallengeIssued: CategoryMFA,
	TypeMfaVerified:        CategoryMFA,
	TypeMfaFailed:          CategoryMFA,

	TypeOAuthLoginInitiated:  CategoryOAuth,
	TypeOAuthAccountLinked:   CategoryOAuth,
	TypeOAuthAccountUnlinked: CategoryOAuth,

	TypeTenantCreated:       CategoryTenant,
	TypeTenantSwitched:      CategoryTenant,
	TypeTenantStatusChanged: CategoryTenant,
	TypeMemberInvited:       CategoryTenant,
	TypeInvitationAccepted:  CategoryTenant,
	TypeMemberRemoved:       CategoryTenant,
	TypeMemberRoleChanged:   CategoryTenant,

	TypeAccountLocked:              CategorySecurity,
	TypeAccountUnlocked:            CategorySecurity,
	TypeRateLimitExceeded:          CategorySecurity,
	TypeSuspiciousActivityDetected: CategorySecurity,
	TypeGeographicAccessBlocked:    CategorySecurity,

	TypeProfileUpdated: CategoryProfile,
	TypeEmailChanged:   CategoryProfile,
}

// AllTypes returns every known event type in lexical order.
func AllTypes() []Type {
	types := make([]Type, 0, len(categories))
	for t := range categories {
		types = append(types, t)
	}
	slices.Sort(types)
	return types
}

// CategoryOf returns the category of t and whether t is known.
func CategoryOf(t Type) (Category, bool) {
	c, ok := categories[t]
	return c, ok
}
