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

	"github.com/vishwanth-dev/prephired-main-sub000/internal/autherr"
	"github.com/vishwanth-dev/prephired-main-sub000/internal/validate"
)

// maxLoginPasswordLength bounds the password accepted at login so oversized
// input never reaches the hash verifier.
const maxLoginPasswordLength = 1024

// LoginForm is the raw sign-in input. Identifier is an email or a phone number.
type LoginForm struct {
	Identifier string
	Password   string
	RememberMe bool
	TenantSlug string
}

// LoginCredentials is the normalised sign-in request.
type LoginCredentials struct {
	Identifier     string
	IdentifierType validate.IdentifierType
	Password       string
	RememberMe     bool
	TenantSlug     *string
}

// ValidateLoginForm checks form without applying the password policy;
// existing passwords predating a policy change must still be accepted.
func ValidateLoginForm(form LoginForm, defaultCountryCode string) autherr.ValidationResult {
	_, res := buildLogin(form, defaultCountryCode)
	return res
}

// ToLoginCredentials validates form and returns normalised credentials, or
// the first collected error.
func ToLoginCredentials(form LoginForm, defaultCountryCode string) (LoginCredentials, error) {
	creds, res := buildLogin(form, defaultCountryCode)
	if !res.IsValid() {
		return LoginCredentials{}, res.FirstError()
	}
	return creds, nil
}

func buildLogin(form LoginForm, defaultCountryCode string) (LoginCredentials, autherr.ValidationResult) {
	var c autherr.Collector
	var creds LoginCredentials

	ident := strings.TrimSpace(form.Identifier)
	switch kind := validate.IdentifyEmailOrPhone(ident); {
	case ident == "":
		c.Add(autherr.Required(autherr.FieldIdentifier))
	case kind == validate.IdentifierEmail:
		email, err := validate.NormalizeEmailField(ident, autherr.FieldIdentifier)
		c.Add(err)
		creds.Identifier, creds.IdentifierType = string(email), kind
	case kind == validate.IdentifierPhone:
		phone, err := validate.NormalizePhoneField(ident, defaultCountryCode, autherr.FieldIdentifier)
		c.Add(err)
		creds.Identifier, creds.IdentifierType = string(phone), kind
	default:
		c.Add(autherr.InvalidIdentifier())
	}

	switch {
	case form.Password == "":
		c.Add(autherr.Required(autherr.FieldPassword))
	case len(form.Password) > maxLoginPasswordLength:
		c.Add(autherr.NewValidationError(autherr.FieldPassword, "Password is too long"))
	}
	creds.Password = form.Password
	creds.RememberMe = form.RememberMe

	if strings.TrimSpace(form.TenantSlug) != "" {
		slug, err := validate.NormalizeTenantSlug(form.TenantSlug, autherr.FieldTenantSlug)
		c.Add(err)
		creds.TenantSlug = &slug
	}
	return creds, c.Result()
}
