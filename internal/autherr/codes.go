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

// Code is a stable machine-readable error code.
type Code string

// Generic codes.
const (
	CodeValidation Code = "VALIDATION_ERROR"
	CodeRequired   Code = "REQUIRED_FIELD"
)

// Validation codes.
const (
	CodeInvalidEmail         Code = "INVALID_EMAIL"
	CodeInvalidPhone         Code = "INVALID_PHONE"
	CodeInvalidIdentifier    Code = "INVALID_IDENTIFIER"
	CodeInvalidName          Code = "INVALID_NAME"
	CodeInvalidURL           Code = "INVALID_URL"
	CodeInvalidOTP           Code = "INVALID_OTP"
	CodeInvalidTenantSlug    Code = "INVALID_TENANT_SLUG"
	CodeInvalidTenantID      Code = "INVALID_TENANT_ID"
	CodeSameTenantSwitch     Code = "SAME_TENANT_SWITCH"
	CodeWeakPassword         Code = "WEAK_PASSWORD"
	CodePasswordMismatch     Code = "PASSWORD_MISMATCH"
	CodePasswordUnchanged    Code = "PASSWORD_UNCHANGED"
	CodeTermsNotAccepted     Code = "TERMS_NOT_ACCEPTED"
	CodePrivacyNotAccepted   Code = "PRIVACY_NOT_ACCEPTED"
	CodeUnsupportedMfaMethod Code = "UNSUPPORTED_MFA_METHOD"
	CodeUnsupportedProvider  Code = "UNSUPPORTED_OAUTH_PROVIDER"
	CodeRedirectNotAllowed   Code = "REDIRECT_URI_NOT_ALLOWED"
	CodeInvalidOAuthState    Code = "INVALID_OAUTH_STATE"
	CodeInvalidPKCE          Code = "INVALID_PKCE_CHALLENGE"
	CodeInvalidScope         Code = "INVALID_SCOPE"
)

// Business-rule codes.
const (
	CodeUserAlreadyExists         Code = "USER_ALREADY_EXISTS"
	CodePasswordReused            Code = "PASSWORD_REUSED"
	CodeTenantSlugTaken           Code = "TENANT_SLUG_TAKEN"
	CodeTenantNotFound            Code = "TENANT_NOT_FOUND"
	CodeTenantSuspended           Code = "TENANT_SUSPENDED"
	CodeTenantAccessDenied        Code = "TENANT_ACCESS_DENIED"
	CodeInvalidStatusTransition   Code = "INVALID_STATUS_TRANSITION"
	CodeMfaChallengeExpired       Code = "MFA_CHALLENGE_EXPIRED"
	CodeFeatureNotAvailable       Code = "FEATURE_NOT_AVAILABLE"
	CodeSubscriptionLimitExceeded Code = "SUBSCRIPTION_LIMIT_EXCEEDED"
	CodeSessionLimitExceeded      Code = "SESSION_LIMIT_EXCEEDED"
	CodeSessionExpired            Code = "SESSION_EXPIRED"
	CodeInvitationExpired         Code = "INVITATION_EXPIRED"
	CodeInvitationAccepted        Code = "INVITATION_ALREADY_ACCEPTED"
	CodeInvitationEmailMismatch   Code = "INVITATION_EMAIL_MISMATCH"
)

// Security codes.
const (
	CodeAccountLocked         Code = "ACCOUNT_LOCKED"
	CodeRateLimitExceeded     Code = "RATE_LIMIT_EXCEEDED"
	CodeGeographicRestriction Code = "GEOGRAPHIC_RESTRICTION"
	CodeMfaTooManyAttempts    Code = "MFA_TOO_MANY_ATTEMPTS"
	CodeSuspiciousActivity    Code = "SUSPICIOUS_ACTIVITY"
)

// Form field names shared by validators and error constructors. They match
// the JSON field names of the forms.
const (
	FieldForm            = "form"
	FieldEmail           = "email"
	FieldPhone           = "phone"
	FieldIdentifier      = "identifier"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
	FieldNewPassword     = "newPassword"
	FieldAcceptTerms     = "acceptTerms"
	FieldAcceptPrivacy   = "acceptPrivacy"
	FieldTenantSlug      = "tenantSlug"
	FieldTenantID        = "targetTenantId"
	FieldCode            = "code"
)
