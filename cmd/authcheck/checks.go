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

package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vishwanth-dev/prephired-main-sub000/internal/autherr"
	"github.com/vishwanth-dev/prephired-main-sub000/internal/password"
	"github.com/vishwanth-dev/prephired-main-sub000/internal/validate"
)

// fromError fills a result from a validator's error.
func fromError(input, normalized string, err error) checkResult {
	res := checkResult{Input: input, Valid: err == nil}
	if err != nil {
		res.Code = string(autherr.CodeOf(err))
		res.Message = err.Error()
		return res
	}
	res.Normalized = normalized
	return res
}

func newEmailCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "email <address>",
		Short: "Validate and normalise an email address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "email", func() checkResult {
				email, err := validate.NormalizeEmail(args[0])
				return fromError(args[0], string(email), err)
			})
		},
	}
}

func newPhoneCmd(a *app) *cobra.Command {
	var country string
	cmd := &cobra.Command{
		Use:   "phone <number>",
		Short: "Normalise a phone number to E.164",
		Long: `Normalise a phone number to E.164. National numbers are prefixed with
--country, or with the configured registration default.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if country == "" {
				country = a.cfg.Registration.DefaultCountryCode
			}
			return a.run(cmd, "phone", func() checkResult {
				phone, err := validate.NormalizePhoneToE164(args[0], country)
				return fromError(args[0], string(phone), err)
			})
		},
	}
	cmd.Flags().StringVar(&country, "country", "", "calling code for national numbers, e.g. +1")
	return cmd
}

func newIdentifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "identify <identifier>",
		Short: "Classify a sign-in identifier as email or phone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "identify", func() checkResult {
				kind := validate.IdentifyEmailOrPhone(args[0])
				if kind == validate.IdentifierInvalid {
					return fromError(args[0], "", autherr.InvalidIdentifier())
				}
				return checkResult{Input: args[0], Valid: true, Normalized: string(kind)}
			})
		},
	}
}

func newSlugCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "slug <slug>",
		Short: "Check a tenant slug's syntax and reserved words",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "slug", func() checkResult {
				slug, err := validate.NormalizeTenantSlug(args[0], autherr.FieldTenantSlug)
				return fromError(args[0], slug, err)
			})
		},
	}
}

func newURLCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "url <url>",
		Short: "Check that a URL is a public http(s) address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "url", func() checkResult {
				err := validate.ValidateURL(args[0], "url")
				return fromError(args[0], strings.TrimSpace(args[0]), err)
			})
		},
	}
}

// passwordDetails is the password check's extra output.
type passwordDetails struct {
	Strength   password.Strength `json:"strength"`
	Violations []string          `json:"violations,omitempty"`
}

func newPasswordCmd(a *app) *cobra.Command {
	var pctx password.Context
	cmd := &cobra.Command{
		Use:   "password [password|-]",
		Short: "Check a password against the configured policy",
		Long: `Check a password against the configured policy and score its strength.
With no argument or "-", the password is read from the first line of stdin.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pw := ""
			if len(args) == 1 && args[0] != "-" {
				pw = args[0]
			} else {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("failed to read password: %w", err)
				}
				pw = strings.TrimRight(line, "\r\n")
			}

			policy := a.cfg.Password
			return a.run(cmd, "password", func() checkResult {
				err := password.Validate(pw, policy, &pctx)
				res := fromError("", "", err)
				res.Details = passwordDetails{
					Strength:   password.AssessStrength(pw, &policy),
					Violations: password.Violations(pw, policy, &pctx),
				}
				return res
			})
		},
	}
	cmd.Flags().StringVar(&pctx.Email, "email", "", "account email, rejected as part of the password")
	cmd.Flags().StringVar(&pctx.FirstName, "first", "", "first name, rejected as part of the password")
	cmd.Flags().StringVar(&pctx.LastName, "last", "", "last name, rejected as part of the password")
	return cmd
}
