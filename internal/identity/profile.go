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

// ProfileUpdate is a partial profile change. Nil fields are left untouched;
// a pointer to "" clears an optional field.
type ProfileUpdate struct {
	FirstName  *string
	LastName   *string
	Phone      *string
	JobTitle   *string
	Department *string
	Location   *string
	Bio        *string
	AvatarURL  *string
	Timezone   *string
	Language   *string
}

// Fields lists the names of the fields present in u, in form order.
func (u ProfileUpdate) Fields() []string {
	var fields []string
	for _, f := range u.fields() {
		if f.value != nil {
			fields = append(fields, f.name)
		}
	}
	return fields
}

type profileField struct {
	name  string
	value *string
}

func (u ProfileUpdate) fields() []profileField {
	return []profileField{
		{FieldFirstName, u.FirstName},
		{FieldLastName, u.LastName},
		{autherr.FieldPhone, u.Phone},
		{FieldJobTitle, u.JobTitle},
		{FieldDepartment, u.Department},
		{FieldLocation, u.Location},
		{FieldBio, u.Bio},
		{FieldAvatarURL, u.AvatarURL},
		{FieldTimezone, u.Timezone},
		{FieldLanguage, u.Language},
	}
}

// ValidateProfileUpdate checks only the fields present in u. Names cannot
// be cleared; every other field may be set to "".
func ValidateProfileUpdate(u ProfileUpdate, defaultCountryCode string) autherr.ValidationResult {
	var c autherr.Collector
	if len(u.Fields()) == 0 {
		c.Add(autherr.NewValidationError(autherr.FieldForm, "No changes to save"))
		return c.Result()
	}

	if u.FirstName != nil {
		_, err := validate.ValidateName(*u.FirstName, FieldFirstName)
		c.Add(err)
	}
	if u.LastName != nil {
		_, err := validate.ValidateName(*u.LastName, FieldLastName)
		c.Add(err)
	}
	if v, ok := present(u.Phone); ok {
		_, err := validate.NormalizePhoneField(v, defaultCountryCode, autherr.FieldPhone)
		c.Add(err)
	}
	if v, ok := present(u.JobTitle); ok {
		_, err := validate.ValidateJobTitle(v, FieldJobTitle)
		c.Add(err)
	}
	if v, ok := present(u.Department); ok {
		_, err := validate.ValidateDepartment(v, FieldDepartment)
		c.Add(err)
	}
	if v, ok := present(u.Location); ok {
		_, err := validate.ValidateLocation(v, FieldLocation)
		c.Add(err)
	}
	if v, ok := present(u.Bio); ok {
		_, err := validate.ValidateBio(v, FieldBio)
		c.Add(err)
	}
	if v, ok := present(u.AvatarURL); ok {
		c.Add(validate.ValidateURL(v, FieldAvatarURL))
	}
	if v, ok := present(u.Timezone); ok && !validate.IsValidTimezone(v) {
		c.Add(autherr.NewValidationError(FieldTimezone, "Unknown time zone"))
	}
	if v, ok := present(u.Language); ok && !validate.IsValidLanguageTag(v) {
		c.Add(autherr.NewValidationError(FieldLanguage, "Unknown language"))
	}
	return c.Result()
}

// present returns the trimmed value when p is set and non-blank.
func present(p *string) (string, bool) {
	if p == nil {
		return "", false
	}
	v := strings.TrimSpace(*p)
	return v, v != ""
}
