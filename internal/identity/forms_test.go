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

package identity_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vishwanth-dev/prephired-main-sub000/internal/autherr"
	"github.com/vishwanth-dev/prephired-main-sub000/internal/identity"
	"github.com/vishwanth-dev/prephired-main-sub000/internal/password"
	"github.com/vishwanth-dev/prephired-main-sub000/internal/validate"
)

const strongPassword = "Qm7!xR2#vL"

func validRegistration() identity.RegistrationForm {
	return identity.RegistrationForm{
		FirstName:       "Ada",
		LastName:        "Lovelace",
		Email:           "  Ada.Lovelace@Example.COM ",
		Phone:           "(415) 555-0100",
		Password:        strongPassword,
		ConfirmPassword: strongPassword,
		AcceptTerms:     true,
		AcceptPrivacy:   true,
	}
}

// TestPurpose: Verifies the registration round trip from a mismatched confirmation to a normalised command.
// Scope: Unit Test
// Expected: Mismatch is reported; the corrected form yields a lower-cased email and no confirmation field.
// Test Case ID: IDN-01
func TestIdentity_RegistrationRoundTrip(t *testing.T) {
	opts := &identity.RegistrationOptions{DefaultCountryCode: "1"}
	form := validRegistration()
	form.ConfirmPassword = strongPassword + "x"

	res := identity.ValidateRegistrationForm(form, nil, opts)
	require.False(t, res.IsValid())
	assert.ErrorIs(t, res.FirstError(), autherr.ErrPasswordMismatch)

	_, err := identity.ToRegisterUserCommand(form, nil, opts)
	assert.ErrorIs(t, err, autherr.ErrPasswordMismatch)

	form.ConfirmPassword = strongPassword
	require.True(t, identity.ValidateRegistrationForm(form, nil, opts).IsValid())

	cmd, err := identity.ToRegisterUserCommand(form, nil, opts)
	require.NoError(t, err)
	assert.Equal(t, validate.Email("ada.lovelace@example.com"), cmd.Email)
	require.NotNil(t, cmd.Phone)
	assert.Equal(t, validate.PhoneNumber("+14155550100"), *cmd.Phone)
	assert.Equal(t, "Ada", cmd.FirstName)
	assert.Nil(t, cmd.TenantSlug)

	_, hasConfirm := reflect.TypeOf(cmd).FieldByName("ConfirmPassword")
	assert.False(t, hasConfirm)
}

// TestPurpose: Verifies that a non-numeric phone entry blocks registration.
// Scope: Unit Test
// Security: Free text must not be normalised into a bare country code.
// Expected: ToRegisterUserCommand fails with InvalidPhone on the phone field.
// Test Case ID: IDN-01b
func TestIdentity_RegistrationRejectsTextPhone(t *testing.T) {
	opts := &identity.RegistrationOptions{DefaultCountryCode: "44"}
	form := validRegistration()
	form.Phone = "not a phone"

	cmd, err := identity.ToRegisterUserCommand(form, nil, opts)
	require.ErrorIs(t, err, autherr.ErrInvalidPhone)
	assert.Nil(t, cmd.Phone)

	res := identity.ValidateRegistrationForm(form, nil, opts)
	assert.Equal(t, []string{autherr.FieldPhone}, res.Fields())
}

// TestPurpose: Verifies that a single registration pass yields both the result and the command.
// Scope: Unit Test
// Expected: An invalid form gives a zero command and the same errors as ValidateRegistrationForm; a valid one gives the normalised command.
// Test Case ID: IDN-01c
func TestIdentity_PrepareRegistration(t *testing.T) {
	opts := &identity.RegistrationOptions{DefaultCountryCode: "1"}
	form := validRegistration()
	form.ConfirmPassword = "different"
	form.AcceptTerms = false

	cmd, res := identity.PrepareRegistration(form, nil, opts)
	require.False(t, res.IsValid())
	assert.Equal(t, identity.RegisterUserCommand{}, cmd)
	assert.Equal(t, identity.ValidateRegistrationForm(form, nil, opts).Fields(), res.Fields())
	assert.True(t, res.HasCode(autherr.CodePasswordMismatch))
	assert.True(t, res.HasCode(autherr.CodeTermsNotAccepted))

	cmd, res = identity.PrepareRegistration(validRegistration(), nil, opts)
	require.True(t, res.IsValid())
	assert.Equal(t, validate.Email("ada.lovelace@example.com"), cmd.Email)
}

// TestPurpose: Verifies that all errors are collected in deterministic field order.
// Scope: Unit Test
// Expected: names, contact, password, confirmation, consent, tenant, invitation.
// Test Case ID: IDN-02
func TestIdentity_RegistrationFieldOrder(t *testing.T) {
	form := identity.RegistrationForm{
		Email:           "bad@@example",
		Password:        "short",
		ConfirmPassword: "other",
		TenantName:      "Acme",
		TenantSlug:      "admin",
		InvitationToken: "abc",
	}
	res := identity.ValidateRegistrationForm(form, nil, nil)
	assert.Equal(t, []string{
		identity.FieldFirstName,
		identity.FieldLastName,
		autherr.FieldEmail,
		autherr.FieldPassword,
		autherr.FieldConfirmPassword,
		autherr.FieldAcceptTerms,
		autherr.FieldAcceptPrivacy,
		autherr.FieldTenantSlug,
		identity.FieldInvitationToken,
	}, res.Fields())
	assert.True(t, res.HasCode(autherr.CodeWeakPassword))
	assert.True(t, res.HasCode(autherr.CodeInvalidTenantSlug))
}

// TestPurpose: Verifies registration options and personal-information checks.
// Scope: Unit Test
// Security: Passwords containing the user's own name are rejected.
// Expected: Required phone and tenant are enforced; name in password is weak.
// Test Case ID: IDN-03
func TestIdentity_RegistrationOptions(t *testing.T) {
	form := validRegistration()
	form.Phone = ""
	res := identity.ValidateRegistrationForm(form, nil, &identity.RegistrationOptions{RequirePhone: true, RequireTenant: true})
	assert.Equal(t, []string{autherr.FieldPhone, identity.FieldTenantName}, res.Fields())

	form.InvitationToken = "inv_0123456789abcdef"
	res = identity.ValidateRegistrationForm(form, nil, &identity.RegistrationOptions{RequireTenant: true})
	assert.True(t, res.IsValid())

	form = validRegistration()
	form.Password = "Lovelace#42"
	form.ConfirmPassword = form.Password
	res = identity.ValidateRegistrationForm(form, nil, &identity.RegistrationOptions{DefaultCountryCode: "1"})
	require.False(t, res.IsValid())
	assert.ErrorIs(t, res.FirstError(), autherr.ErrWeakPassword)

	relaxed := password.Policy{MinLength: 4, MaxLength: 64}
	form.Password, form.ConfirmPassword = "abcd", "abcd"
	assert.True(t, identity.ValidateRegistrationForm(form, &relaxed, &identity.RegistrationOptions{DefaultCountryCode: "1"}).IsValid())
}

// TestPurpose: Verifies login form validation and credential normalisation.
// Scope: Unit Test
// Expected: Emails are lower-cased, phones converted to E.164, bad identifiers rejected.
// Test Case ID: IDN-04
func TestIdentity_Login(t *testing.T) {
	creds, err := identity.ToLoginCredentials(identity.LoginForm{Identifier: " USER@Example.com ", Password: "x"}, "1")
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", creds.Identifier)
	assert.Equal(t, validate.IdentifierEmail, creds.IdentifierType)

	creds, err = identity.ToLoginCredentials(identity.LoginForm{Identifier: "+1 (555) 123-4567", Password: "x", TenantSlug: "Acme"}, "1")
	require.NoError(t, err)
	assert.Equal(t, "+15551234567", creds.Identifier)
	assert.Equal(t, validate.IdentifierPhone, creds.IdentifierType)
	require.NotNil(t, creds.TenantSlug)
	assert.Equal(t, "acme", *creds.TenantSlug)

	res := identity.ValidateLoginForm(identity.LoginForm{Identifier: "<script>"}, "1")
	assert.Equal(t, []string{autherr.FieldIdentifier, autherr.FieldPassword}, res.Fields())
	assert.True(t, res.HasCode(autherr.CodeInvalidIdentifier))

	_, err = identity.ToLoginCredentials(identity.LoginForm{}, "1")
	assert.Equal(t, autherr.CodeRequired, autherr.CodeOf(err))
}

// TestPurpose: Verifies the password reset and change flows.
// Scope: Unit Test
// Security: Reset tokens must be well-formed; history and unchanged passwords are rejected.
// Expected: Errors carry the right codes and fields.
// Test Case ID: IDN-05
func TestIdentity_PasswordFlows(t *testing.T) {
	assert.True(t, identity.ValidatePasswordResetRequest(identity.PasswordResetRequestForm{Email: "a@b.co"}).IsValid())
	assert.False(t, identity.ValidatePasswordResetRequest(identity.PasswordResetRequestForm{Email: "nope"}).IsValid())

	res := identity.ValidatePasswordReset(identity.PasswordResetForm{
		Token:           "tok_abcdefghijklmnop",
		Password:        strongPassword,
		ConfirmPassword: strongPassword,
	}, nil, &password.Context{PreviousPasswords: []string{strongPassword}})
	require.False(t, res.IsValid())
	assert.ErrorIs(t, res.FirstError(), autherr.ErrPasswordReused)

	res = identity.ValidatePasswordReset(identity.PasswordResetForm{Token: "bad token", Password: strongPassword, ConfirmPassword: strongPassword}, nil, nil)
	assert.Equal(t, []string{identity.FieldToken}, res.Fields())

	res = identity.ValidateChangePassword(identity.ChangePasswordForm{
		CurrentPassword: strongPassword,
		NewPassword:     strongPassword,
		ConfirmPassword: strongPassword,
	}, nil, nil)
	assert.ErrorIs(t, res.FirstError(), autherr.ErrPasswordUnchanged)

	res = identity.ValidateChangePassword(identity.ChangePasswordForm{NewPassword: "weak", ConfirmPassword: "weak"}, nil, nil)
	assert.Equal(t, []string{identity.FieldCurrentPassword, autherr.FieldNewPassword}, res.Fields())

	res = identity.ValidateChangePassword(identity.ChangePasswordForm{
		CurrentPassword: "old-Passw0rd!",
		NewPassword:     strongPassword,
		ConfirmPassword: strongPassword,
	}, nil, nil)
	assert.True(t, res.IsValid())
}

// TestPurpose: Verifies that profile updates only check provided fields.
// Scope: Unit Test
// Expected: Absent fields are ignored; clearing optional fields is allowed; names cannot be cleared.
// Test Case ID: IDN-06
func TestIdentity_ValidateProfileUpdate(t *testing.T) {
	str := func(s string) *string { return &s }

	res := identity.ValidateProfileUpdate(identity.ProfileUpdate{JobTitle: str("Staff Engineer")}, "1")
	assert.True(t, res.IsValid())

	res = identity.ValidateProfileUpdate(identity.ProfileUpdate{Bio: str(""), AvatarURL: str("")}, "1")
	assert.True(t, res.IsValid())

	res = identity.ValidateProfileUpdate(identity.ProfileUpdate{
		FirstName: str(""),
		AvatarURL: str("http://localhost/avatar.png"),
		Timezone:  str("Europe/Paris"),
		Language:  str("!!"),
	}, "1")
	assert.Equal(t, []string{identity.FieldFirstName, identity.FieldAvatarURL, identity.FieldLanguage}, res.Fields())

	res = identity.ValidateProfileUpdate(identity.ProfileUpdate{}, "1")
	assert.Equal(t, []string{autherr.FieldForm}, res.Fields())
}

// TestPurpose: Verifies that the client profile excludes sensitive fields and computes display fields.
// Scope: Unit Test
// Security: Password hash, backup codes and lockout state must not leak to clients.
// Expected: Display name and initials are derived; slices are copied.
// Test Case ID: IDN-07
func TestIdentity_ToProfile(t *testing.T) {
	until := time.Now().Add(time.Hour)
	u := identity.User{
		ID:                  "u1",
		Email:               "ada@example.com",
		FirstName:           "ada",
		LastName:            "lovelace",
		Roles:               []string{"tenant_admin"},
		PasswordHash:        "$argon2id$...",
		MfaBackupCodes:      []string{"1111"},
		FailedLoginAttempts: 3,
		LockedUntil:         &until,
	}
	p := identity.ToProfile(u)
	assert.Equal(t, "ada lovelace", p.DisplayName)
	assert.Equal(t, "AL", p.Initials)

	u.Roles[0] = "mutated"
	assert.Equal(t, []string{"tenant_admin"}, p.Roles)

	_, leaked := reflect.TypeOf(p).FieldByName("PasswordHash")
	assert.False(t, leaked)
	_, leaked = reflect.TypeOf(p).FieldByName("MfaBackupCodes")
	assert.False(t, leaked)

	assert.Equal(t, "bob", identity.DisplayName("", "", "bob@example.com"))
	assert.Equal(t, "B", identity.Initials("", "", "bob@example.com"))
	assert.True(t, u.IsLockedAt(time.Now()))
	assert.False(t, u.IsLockedAt(until.Add(time.Second)))
}
