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

package validate

import (
	"regexp"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

var (
	alpha2Regex   = regexp.MustCompile(`^[A-Za-z]{2}$`)
	alpha3Regex   = regexp.MustCompile(`^[A-Za-z]{3}$`)
	timezoneRegex = regexp.MustCompile(`^[A-Z][A-Za-z_+\-]*(/[A-Za-z0-9_+\-]+){1,2}$`)
)

// IsValidLanguageTag reports whether tag is a well-formed BCP 47 tag.
func IsValidLanguageTag(tag string) bool {
	if strings.TrimSpace(tag) == "" {
		return false
	}
	t, err := language.Parse(tag)
	return err == nil && t != language.Und
}

// IsValidCountryCode reports whether code is an ISO 3166-1 alpha-2 country.
func IsValidCountryCode(code string) bool {
	if !alpha2Regex.MatchString(code) {
		return false
	}
	r, err := language.ParseRegion(strings.ToUpper(code))
	if err != nil {
		return false
	}
	return r.IsCountry()
}

// IsValidCurrencyCode reports whether code is a recognised ISO 4217 currency.
func IsValidCurrencyCode(code string) bool {
	if !alpha3Regex.MatchString(code) {
		return false
	}
	_, err := currency.ParseISO(strings.ToUpper(code))
	return err == nil
}

// IsValidTimezone reports whether tz has the shape of an IANA zone name
// ("Europe/Berlin", "America/Argentina/Buenos_Aires") or is "UTC".
// The zone database is not consulted.
func IsValidTimezone(tz string) bool {
	if tz == "UTC" || tz == "Etc/UTC" {
		return true
	}
	return timezoneRegex.MatchString(tz)
}
