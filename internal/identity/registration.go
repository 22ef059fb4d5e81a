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
	"regexp"
	"strings"

	"github.com/vishwanth-dev/prephired-main-sub000/internal/autherr"
	"github.com/vishwanth-dev/prephired-main-sub000/internal/password"
	"github.com/vishwanth-dev/prephired-main-sub000/internal/validate"
)

// tokenRegex matches opaque URL-safe tokens from emailed links.
var tokenRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{16,512}$`)

// RegistrationForm is the raw sign-up input.
type RegistrationForm struct {
	FirstName       string
	LastName        string
	Email           string
	Phone           string
	Password        string
	ConfirmPassword string
	AcceptTerms     bool
	AcceptPrivacy   bool
	MarketingOptIn  bool
	// TenantName and TenantSlug create a new organization owned by the user.
	TenantName string
	TenantSlug string
	// InvitationToken joins an existing organization instead.
	InvitationToken string
}

// RegistrationOptions tunes registration for a deployment or tenant.
type RegistrationOptions struct {
	// DefaultCountryCode is applied to phone numbers entered without one.
	DefaultCountryCode string
	RequirePhone       bool
	// RequireTenant makes sign-up without an organization or invitation invalid.
	RequireTenant bool
}

// RegisterUserCommand is the normalised registration request handed to the
// account service. It never carries the password confirmation.
type RegisterUserCommand struct {
	FirstName       string
	LastName        string
	Email           validate.Email
	Phone           *validate.PhoneNumber
	Password        string
	MarketingOptIn  bool
	TenantName      *string
	TenantSlug      *string
	InvitationToken *string
}

// ValidateRegistrationForm checks every field of form and collects all
// errors in the order names, contact, password, confirmation, consent,
// tenant, invitation. A nil policy means password.DefaultPolicy.
func ValidateRegistrationForm(form RegistrationForm, policy *password.Policy, opts *RegistrationOptions) autherr.ValidationResult {
	_, res := buildRegistration(form, policy, opts)
	return res
}

// ToRegisterUserCommand validates form and returns the normalised command.
// When the form is invalid the first collected error is returned.
func ToRegisterUserCommand(form RegistrationForm, policy *password.Policy, opts *RegistrationOptions) (RegisterUserCommand, error) {
	cmd, res := PrepareRegistration(form, policy, opts)
	if !res.IsValid() {
		return RegisterUserCommand{}, res.FirstError()
	}
	return cmd, nil
}

// PrepareRegistration validates form once and returns both the full result
// and, when it is valid, the normalised command. The command is zero when
// the result is invalid.
func PrepareRegistration(form RegistrationForm, policy *password.Policy, opts *RegistrationOptions) (RegisterUserCommand, autherr.ValidationResult) {
	cmd, res := buildRegistration(form, policy, opts)
	if !res.IsValid() {
		return RegisterUserCommand{}, res
	}
	return cmd, res
}

func buildRegistration(form RegistrationForm, policy *password.Policy, opts *RegistrationOptions) (RegisterUserCommand, autherr.ValidationResult) {
	p := policyOrDefault(policy)
	if opts == nil {
		opts = &RegistrationOptions{}
	}
	var c autherr.Collector
	var cmd RegisterUserCommand

	first, err := validate.ValidateName(form.FirstName, FieldFirstName)
	c.Add(err)
	last, err := validate.ValidateName(form.LastName, FieldLastName)
	c.Add(err)
	cmd.FirstName, cmd.LastName = first, last

	email, err := validate.NormalizeEmail(form.Email)
	c.Add(err)
	cmd.Email = email
	switch {
	case strings.TrimSpace(form.Phone) != "":
		phone, err := validate.NormalizePhoneField(form.Phone, opts.DefaultCountryCode, autherr.FieldPhone)
		c.Add(err)
		if err == nil {
			cmd.Phone = &phone
		}
	case opts.RequirePhone:
		c.Add(autherr.Required(autherr.FieldPhone))
	}

	if form.Password == "" {
		c.Add(autherr.Required(autherr.FieldPassword))
	} else {
		c.Add(password.Validate(form.Password, p, &password.Context{
			Email:     form.Email,
			FirstName: form.FirstName,
			LastName:  form.LastName,
		}))
	}
	cmd.Password = form.Password

	c.Add(checkConfirmation(form.Password, form.ConfirmPassword))

	if !form.AcceptTerms {
		c.Add(autherr.TermsNotAccepted())
	}
	if !form.AcceptPrivacy {
		c.Add(autherr.PrivacyNotAccepted())
	}
	cmd.MarketingOptIn = form.MarketingOptIn

	creating := strings.TrimSpace(form.TenantName) != "" || strings.TrimSpace(form.TenantSlug) != ""
	joining := strings.TrimSpace(form.InvitationToken) != ""
	if creating {
		name, err := validate.ValidateOrganizationName(form.TenantName, FieldTenantName)
		c.Add(err)
		slug, err := validate.NormalizeTenantSlug(form.TenantSlug, autherr.FieldTenantSlug)
		c.Add(err)
		cmd.TenantName, cmd.TenantSlug = &name, &slug
	} else if opts.RequireTenant && !joining {
		c.Add(autherr.Required(FieldTenantName))
	}

	if joining {
		token := strings.TrimSpace(form.InvitationToken)
		if creating {
			c.Add(autherr.NewValidationError(FieldInvitationToken,
				"Cannot create an organization while accepting an invitation"))
		} else if !tokenRegex.MatchString(token) {
			c.Add(autherr.NewValidationError(FieldInvitationToken, "Invitation link is invalid"))
		}
		cmd.InvitationToken = &token
	}

	return cmd, c.Result()
}

func checkConfirmation(pw, confirm string) error {
	if confirm == "" {
		return autherr.Required(autherr.FieldConfirmPassword)
	}
	if pw != confirm {
		return autherr.PasswordMismatch(autherr.FieldConfirmPassword)
	}
	return nil
}

func policyOrDefault(p *password.Policy) password.Policy {
	if p == nil {
		return password.DefaultPolicy()
	}
	return *p
}
