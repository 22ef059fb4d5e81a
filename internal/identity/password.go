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
	"github.com/vishwanth-dev/prephired-main-sub000/internal/password"
	"github.com/vishwanth-dev/prephired-main-sub000/internal/validate"
)

// PasswordResetRequestForm starts the forgotten-password flow.
type PasswordResetRequestForm struct {
	Email string
}

// PasswordResetForm completes the flow with the emailed token.
type PasswordResetForm struct {
	Token           string
	Password        string
	ConfirmPassword string
}

// ChangePasswordForm changes the password of a signed-in user.
type ChangePasswordForm struct {
	CurrentPassword string
	NewPassword     string
	ConfirmPassword string
}

// ValidatePasswordResetRequest checks the email of a reset request.
func ValidatePasswordResetRequest(form PasswordResetRequestForm) autherr.ValidationResult {
	var c autherr.Collector
	_, err := validate.NormalizeEmail(form.Email)
	c.Add(err)
	return c.Result()
}

// ValidatePasswordReset checks the token, the new password against policy
// and history, and the confirmation. A nil policy means password.DefaultPolicy.
func ValidatePasswordReset(form PasswordResetForm, policy *password.Policy, pctx *password.Context) autherr.ValidationResult {
	var c autherr.Collector
	c.Add(checkToken(form.Token, FieldToken, "Reset link is invalid or has been altered"))
	if form.Password == "" {
		c.Add(autherr.Required(autherr.FieldPassword))
	} else {
		c.Add(password.Validate(form.Password, policyOrDefault(policy), pctx))
	}
	c.Add(checkConfirmation(form.Password, form.ConfirmPassword))
	return c.Result()
}

// ValidateChangePassword checks a password change. The new password must
// satisfy the policy and differ from the current one.
func ValidateChangePassword(form ChangePasswordForm, policy *password.Policy, pctx *password.Context) autherr.ValidationResult {
	var c autherr.Collector
	if form.CurrentPassword == "" {
		c.Add(autherr.Required(FieldCurrentPassword))
	}
	switch {
	case form.NewPassword == "":
		c.Add(autherr.Required(autherr.FieldNewPassword))
	case form.CurrentPassword != "" && form.NewPassword == form.CurrentPassword:
		c.Add(autherr.PasswordUnchanged())
	default:
		c.Add(password.ValidateField(form.NewPassword, policyOrDefault(policy), pctx, autherr.FieldNewPassword))
	}
	c.Add(checkConfirmation(form.NewPassword, form.ConfirmPassword))
	return c.Result()
}

func checkToken(raw, field, msg string) error {
	token := strings.TrimSpace(raw)
	if token == "" {
		return autherr.Required(field)
	}
	if !tokenRegex.MatchString(token) {
		return autherr.NewValidationError(field, msg)
	}
	return nil
}
