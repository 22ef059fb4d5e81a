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

package autherr

import (
	"fmt"
	"time"
)

// Sentinels for errors.Is. They carry no field, so they match by code only.
var (
	ErrInvalidEmail              = sentinel(InvalidEmail(FieldEmail))
	ErrInvalidPhone              = sentinel(InvalidPhone(FieldPhone))
	ErrInvalidIdentifier         = sentinel(InvalidIdentifier())
	ErrInvalidOTP                = sentinel(InvalidOTP(FieldCode))
	ErrInvalidTenantSlug         = sentinel(InvalidTenantSlug(FieldTenantSlug))
	ErrInvalidTenantID           = sentinel(InvalidTenantID(FieldTenantID))
	ErrSameTenantSwitch          = sentinel(SameTenantSwitch())
	ErrWeakPassword              = sentinel(WeakPassword(FieldPassword, nil))
	ErrPasswordMismatch          = sentinel(PasswordMismatch(FieldConfirmPassword))
	ErrPasswordUnchanged         = sentinel(PasswordUnchanged())
	ErrTermsNotAccepted          = sentinel(TermsNotAccepted())
	ErrPrivacyNotAccepted        = sentinel(PrivacyNotAccepted())
	ErrPasswordReused            = sentinel(PasswordReused(0))
	ErrUserAlreadyExists         = sentinel(UserAlreadyExists(""))
	ErrTenantSlugTaken           = sentinel(TenantSlugTaken(""))
	ErrTenantNotFound            = sentinel(TenantNotFound(""))
	ErrTenantSuspended           = sentinel(TenantSuspended(""))
	ErrTenantAccessDenied        = sentinel(TenantAccessDenied(""))
	ErrMfaChallengeExpired       = sentinel(MfaChallengeExpired(""))
	ErrFeatureNotAvailable       = sentinel(FeatureNotAvailable("", ""))
	ErrSubscriptionLimitExceeded = sentinel(SubscriptionLimitExceeded("", 0, 0))
	ErrSessionLimitExceeded      = sentinel(SessionLimitExceeded(0, 0))
	ErrInvitationExpired         = sentinel(InvitationExpired(""))
	ErrAccountLocked             = sentinel(AccountLocked(time.Time{}))
	ErrRateLimitExceeded         = sentinel(RateLimitExceeded("", 0))
	ErrGeographicRestriction     = sentinel(GeographicRestriction(""))
	ErrMfaTooManyAttempts        = sentinel(MfaTooManyAttempts("", 0))
	ErrRequired                  = sentinel(Required(""))
	ErrInvalidName               = sentinel(InvalidName("", ""))
	ErrInvalidURL                = sentinel(InvalidURL(""))
	ErrUnsupportedMfaMethod      = sentinel(UnsupportedMfaMethod(""))
	ErrUnsupportedProvider       = sentinel(UnsupportedOAuthProvider(""))
	ErrRedirectNotAllowed        = sentinel(RedirectNotAllowed(""))
	ErrInvalidOAuthState         = sentinel(InvalidOAuthState())
	ErrInvalidPKCE               = sentinel(InvalidPKCE(""))
	ErrInvalidScope              = sentinel(InvalidScope(""))
	ErrInvalidStatusTransition   = sentinel(InvalidStatusTransition("", ""))
	ErrSessionExpired            = sentinel(SessionExpired(""))
	ErrInvitationAccepted        = sentinel(InvitationAlreadyAccepted(""))
	ErrInvitationEmailMismatch   = sentinel(InvitationEmailMismatch(""))
	ErrSuspiciousActivity        = sentinel(SuspiciousActivity(""))
)

func sentinel(e *Error) *Error { return e.WithField("") }

// Required reports a missing mandatory field.
func Required(field string) *Error {
	return newError(KindValidation, CodeRequired, field, fmt.Sprintf("%s is required", field), nil)
}

// InvalidEmail reports a malformed email address.
func InvalidEmail(field string) *Error {
	return newError(KindValidation, CodeInvalidEmail, field, "Please enter a valid email address", nil)
}

// InvalidPhone reports a phone number that cannot be expressed in E.164.
func InvalidPhone(field string) *Error {
	return newError(KindValidation, CodeInvalidPhone, field, "Please enter a valid phone number", nil)
}

// InvalidIdentifier reports a login identifier that is neither an email nor a phone number.
func InvalidIdentifier() *Error {
	return newError(KindValidation, CodeInvalidIdentifier, FieldIdentifier,
		"Please enter a valid email address or phone number", nil)
}

// InvalidName reports a malformed personal or organisation name.
func InvalidName(field, reason string) *Error {
	return newError(KindValidation, CodeInvalidName, field, reason, nil)
}

// InvalidURL reports a URL that is not an acceptable http(s) address.
func InvalidURL(field string) *Error {
	return newError(KindValidation, CodeInvalidURL, field, "Please enter a valid http or https URL", nil)
}

// InvalidOTP reports a one-time code with the wrong length or character class.
func InvalidOTP(field string) *Error {
	return newError(KindValidation, CodeInvalidOTP, field, "Please enter a valid verification code", nil)
}

// InvalidTenantSlug reports a slug that is malformed or reserved.
func InvalidTenantSlug(field string) *Error {
	return newError(KindValidation, CodeInvalidTenantSlug, field,
		"Organization URL must be 3-50 lowercase letters, numbers or hyphens and not a reserved word", nil)
}

// InvalidTenantID reports a tenant identifier that is not a UUID v4.
func InvalidTenantID(field string) *Error {
	return newError(KindValidation, CodeInvalidTenantID, field, "Invalid organization identifier", nil)
}

// SameTenantSwitch flags a switch whose source and target are the same tenant.
func SameTenantSwitch() *Error {
	return newError(KindValidation, CodeSameTenantSwitch, FieldTenantID, "You are already in this organization", nil)
}

// UnsupportedMfaMethod reports an MFA method that is unknown or not enabled.
func UnsupportedMfaMethod(method string) *Error {
	return newError(KindValidation, CodeUnsupportedMfaMethod, "method",
		"This verification method is not available", map[string]any{"method": method})
}

// UnsupportedOAuthProvider reports a provider outside the configured allow-list.
func UnsupportedOAuthProvider(provider string) *Error {
	return newError(KindValidation, CodeUnsupportedProvider, "provider",
		"This sign-in provider is not supported", map[string]any{"provider": provider})
}

// RedirectNotAllowed reports a redirect URI that is malformed or not allow-listed.
func RedirectNotAllowed(redirectURI string) *Error {
	return newError(KindValidation, CodeRedirectNotAllowed, "redirectUri",
		"Redirect URI is not allowed", map[string]any{"redirect_uri": redirectURI, "oauth_error": "invalid_request"})
}

// InvalidOAuthState reports a missing or low-entropy OAuth state parameter.
func InvalidOAuthState() *Error {
	return newError(KindValidation, CodeInvalidOAuthState, "state",
		"State parameter is missing or too short", map[string]any{"oauth_error": "invalid_request"})
}

// InvalidPKCE reports a PKCE challenge that is missing or malformed.
func InvalidPKCE(reason string) *Error {
	return newError(KindValidation, CodeInvalidPKCE, "codeChallenge",
		"Code challenge is invalid", map[string]any{"reason": reason, "oauth_error": "invalid_request"})
}

// InvalidScope reports a scope token that violates RFC 6749 section 3.3.
func InvalidScope(scope string) *Error {
	return newError(KindValidation, CodeInvalidScope, "scope",
		"Requested scope is invalid", map[string]any{"scope": scope, "oauth_error": "invalid_scope"})
}

// WeakPassword reports every password requirement that was not met.
func WeakPassword(field string, requirements []string) *Error {
	reqs := append([]string(nil), requirements...)
	return newError(KindValidation, CodeWeakPassword, field,
		"Password does not meet security requirements",
		map[string]any{"requirements": reqs})
}

// PasswordMismatch reports a confirmation that differs from the password.
func PasswordMismatch(field string) *Error {
	return newError(KindValidation, CodePasswordMismatch, field, "Passwords do not match", nil)
}

// PasswordUnchanged reports a new password equal to the current one.
func PasswordUnchanged() *Error {
	return newError(KindValidation, CodePasswordUnchanged, FieldNewPassword,
		"New password must be different from the current password", nil)
}

// TermsNotAccepted reports missing consent to the terms of service.
func TermsNotAccepted() *Error {
	return newError(KindValidation, CodeTermsNotAccepted, FieldAcceptTerms,
		"You must accept the terms of service", nil)
}

// PrivacyNotAccepted reports missing consent to the privacy policy.
func PrivacyNotAccepted() *Error {
	return newError(KindValidation, CodePrivacyNotAccepted, FieldAcceptPrivacy,
		"You must accept the privacy policy", nil)
}

// PasswordReused reports a password found in the caller-supplied history.
func PasswordReused(historyCount int) *Error {
	return newError(KindBusinessRule, CodePasswordReused, FieldPassword,
		fmt.Sprintf("Password was used recently; choose one not among your last %d passwords", historyCount),
		map[string]any{"history_count": historyCount})
}

// UserAlreadyExists reports an account that already owns the identifier.
func UserAlreadyExists(identifier string) *Error {
	return NewBusinessRuleError(CodeUserAlreadyExists,
		"An account with this email already exists",
		map[string]any{"identifier": identifier})
}

// TenantSlugTaken reports a slug already owned by another tenant.
func TenantSlugTaken(slug string) *Error {
	return newError(KindBusinessRule, CodeTenantSlugTaken, FieldTenantSlug,
		fmt.Sprintf("Organization URL %q is already taken", slug),
		map[string]any{"slug": slug})
}

// TenantNotFound reports an unknown tenant.
func TenantNotFound(tenantID string) *Error {
	return NewBusinessRuleError(CodeTenantNotFound, "Organization not found",
		map[string]any{"tenant_id": tenantID})
}

// TenantSuspended reports a tenant whose status forbids the operation.
func TenantSuspended(tenantID string) *Error {
	return NewBusinessRuleError(CodeTenantSuspended, "Organization is suspended",
		map[string]any{"tenant_id": tenantID})
}

// TenantAccessDenied reports a user who is not a member of the tenant.
func TenantAccessDenied(tenantID string) *Error {
	return newError(KindBusinessRule, CodeTenantAccessDenied, FieldTenantID,
		"You do not have access to this organization",
		map[string]any{"tenant_id": tenantID})
}

// InvalidStatusTransition reports a tenant status change that is not allowed.
func InvalidStatusTransition(from, to string) *Error {
	return NewBusinessRuleError(CodeInvalidStatusTransition,
		fmt.Sprintf("Cannot change organization status from %s to %s", from, to),
		map[string]any{"from": from, "to": to})
}

// MfaChallengeExpired reports a challenge past its expiry.
func MfaChallengeExpired(challengeID string) *Error {
	return NewBusinessRuleError(CodeMfaChallengeExpired,
		"Verification code has expired; request a new one",
		map[string]any{"challenge_id": challengeID})
}

// FeatureNotAvailable reports a feature outside the tenant's plan.
func FeatureNotAvailable(feature, plan string) *Error {
	return NewBusinessRuleError(CodeFeatureNotAvailable,
		fmt.Sprintf("Feature %q is not available on the current plan", feature),
		map[string]any{"feature": feature, "plan": plan})
}

// SubscriptionLimitExceeded reports a resource quota that is used up.
func SubscriptionLimitExceeded(resource string, current, limit int) *Error {
	return NewBusinessRuleError(CodeSubscriptionLimitExceeded,
		fmt.Sprintf("Limit for %s reached (%d of %d)", resource, current, limit),
		map[string]any{"resource": resource, "current": current, "limit": limit})
}

// SessionLimitExceeded reports too many concurrent sessions.
func SessionLimitExceeded(active, limit int) *Error {
	return NewBusinessRuleError(CodeSessionLimitExceeded,
		fmt.Sprintf("Maximum of %d active sessions reached", limit),
		map[string]any{"active": active, "limit": limit})
}

// SessionExpired reports a session evaluated after its expiry.
func SessionExpired(sessionID string) *Error {
	return NewBusinessRuleError(CodeSessionExpired, "Session has expired",
		map[string]any{"session_id": sessionID})
}

// InvitationExpired reports an invitation past its expiry.
func InvitationExpired(invitationID string) *Error {
	return NewBusinessRuleError(CodeInvitationExpired, "Invitation has expired",
		map[string]any{"invitation_id": invitationID})
}

// InvitationAlreadyAccepted reports an invitation that was already used.
func InvitationAlreadyAccepted(invitationID string) *Error {
	return NewBusinessRuleError(CodeInvitationAccepted, "Invitation has already been accepted",
		map[string]any{"invitation_id": invitationID})
}

// InvitationEmailMismatch reports an invitation accepted by a different address.
func InvitationEmailMismatch(invitationID string) *Error {
	return newError(KindBusinessRule, CodeInvitationEmailMismatch, FieldEmail,
		"This invitation was sent to a different email address",
		map[string]any{"invitation_id": invitationID})
}

// AccountLocked reports an account that is temporarily locked.
func AccountLocked(until time.Time) *Error {
	md := map[string]any{}
	if !until.IsZero() {
		md["locked_until"] = until.UTC().Format(time.RFC3339)
	}
	return NewSecurityViolationError(CodeAccountLocked,
		"Account is temporarily locked due to too many failed attempts", md)
}

// RateLimitExceeded reports an action attempted too often.
func RateLimitExceeded(action string, retryAfter time.Duration) *Error {
	return NewSecurityViolationError(CodeRateLimitExceeded,
		"Too many attempts; please try again later",
		map[string]any{"action": action, "retry_after_seconds": int64(retryAfter.Seconds())})
}

// GeographicRestriction reports access from a disallowed country.
func GeographicRestriction(country string) *Error {
	return NewSecurityViolationError(CodeGeographicRestriction,
		"Access from your location is not permitted",
		map[string]any{"country": country})
}

// MfaTooManyAttempts reports a challenge whose attempts are exhausted.
func MfaTooManyAttempts(challengeID string, maxAttempts int) *Error {
	return NewSecurityViolationError(CodeMfaTooManyAttempts,
		"Too many incorrect verification attempts; request a new code",
		map[string]any{"challenge_id": challengeID, "max_attempts": maxAttempts})
}

// SuspiciousActivity reports an operation refused by a risk signal.
func SuspiciousActivity(reason string) *Error {
	return NewSecurityViolationError(CodeSuspiciousActivity,
		"Suspicious activity detected", map[string]any{"reason": reason})
}
