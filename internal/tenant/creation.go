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

package tenant

import (
	"context"
	"fmt"
	"strings"

	"github.com/vishwanth-dev/prephired-main-sub000/internal/autherr"
	"github.com/vishwanth-dev/prephired-main-sub000/internal/validate"
)

// Creation form field names.
const (
	FieldName     = "name"
	FieldCountry  = "country"
	FieldTimezone = "timezone"
	FieldLanguage = "language"
	FieldCurrency = "currency"
	FieldPlan     = "plan"
)

// CreationForm is the raw input for a new tenant. Locale fields and plan
// are optional.
type CreationForm struct {
	Name     string
	Slug     string
	Country  string
	Timezone string
	Language string
	Currency string
	Plan     string
}

// CreateTenantCommand is the normalised creation request.
type CreateTenantCommand struct {
	Name     string
	Slug     string
	Plan     Plan
	Country  string
	Timezone string
	Language string
	Currency string
}

// ValidateCreation checks every field of form.
func ValidateCreation(form CreationForm) autherr.ValidationResult {
	_, res := buildCreation(form)
	return res
}

// ToCreateTenantCommand validates form and returns the normalised command,
// or the first collected error. The plan defaults to free.
func ToCreateTenantCommand(form CreationForm) (CreateTenantCommand, error) {
	cmd, res := buildCreation(form)
	if !res.IsValid() {
		return CreateTenantCommand{}, res.FirstError()
	}
	return cmd, nil
}

func buildCreation(form CreationForm) (CreateTenantCommand, autherr.ValidationResult) {
	var c autherr.Collector
	var cmd CreateTenantCommand

	name, err := validate.ValidateOrganizationName(form.Name, FieldName)
	c.Add(err)
	cmd.Name = name

	slug, err := validate.NormalizeTenantSlug(form.Slug, autherr.FieldTenantSlug)
	c.Add(err)
	cmd.Slug = slug

	if v := strings.TrimSpace(form.Country); v != "" {
		if !validate.IsValidCountryCode(v) {
			c.Add(autherr.NewValidationError(FieldCountry, "Unknown country"))
		}
		cmd.Country = strings.ToUpper(v)
	}
	if v := strings.TrimSpace(form.Timezone); v != "" {
		if !validate.IsValidTimezone(v) {
			c.Add(autherr.NewValidationError(FieldTimezone, "Unknown time zone"))
		}
		cmd.Timezone = v
	}
	if v := strings.TrimSpace(form.Language); v != "" {
		if !validate.IsValidLanguageTag(v) {
			c.Add(autherr.NewValidationError(FieldLanguage, "Unknown language"))
		}
		cmd.Language = v
	}
	if v := strings.TrimSpace(form.Currency); v != "" {
		if !validate.IsValidCurrencyCode(v) {
			c.Add(autherr.NewValidationError(FieldCurrency, "Unknown currency"))
		}
		cmd.Currency = strings.ToUpper(v)
	}

	cmd.Plan = PlanFree
	if v := strings.TrimSpace(form.Plan); v != "" {
		p := Plan(strings.ToLower(v))
		if !p.Valid() {
			c.Add(autherr.NewValidationError(FieldPlan, fmt.Sprintf("Unknown plan %q", v)))
		}
		cmd.Plan = p
	}
	return cmd, c.Result()
}

// EnsureSlugAvailable fails with TenantSlugTaken when lookup reports slug as
// claimed. Lookup failures are returned wrapped.
func EnsureSlugAvailable(ctx context.Context, slug string, lookup SlugLookup) error {
	exists, err := lookup.SlugExists(ctx, slug)
	if err != nil {
		return fmt.Errorf("check tenant slug: %w", err)
	}
	if exists {
		return autherr.TenantSlugTaken(slug)
	}
	return nil
}
