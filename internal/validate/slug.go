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

	"github.com/vishwanth-dev/prephired-main-sub000/internal/autherr"
)

// Tenant slug length limits.
const (
	MinTenantSlugLength = 3
	MaxTenantSlugLength = 50
)

var tenantSlugRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*[a-z0-9]$`)

// reservedSlugs cannot be claimed by a tenant because they collide with
// product routes, infrastructure hostnames or confusing names.
var reservedSlugs = map[string]struct{}{
	"api": {}, "admin": {}, "www": {}, "app": {}, "apps": {}, "mail": {},
	"email": {}, "ftp": {}, "smtp": {}, "root": {}, "support": {}, "help": {},
	"blog": {}, "docs": {}, "status": {}, "dashboard": {}, "login": {},
	"logout": {}, "register": {}, "signup": {}, "signin": {}, "auth": {},
	"oauth": {}, "sso": {}, "account": {}, "accounts": {}, "billing": {},
	"settings": {}, "static": {}, "assets": {}, "cdn": {}, "dev": {},
	"staging": {}, "test": {}, "system": {}, "internal": {}, "public": {},
	"private": {}, "security": {}, "null": {}, "undefined": {}, "tenant": {},
	"tenants": {}, "default": {}, "platform": {},
}

// IsReservedSlug reports whether slug is on the reserved list.
func IsReservedSlug(slug string) bool {
	_, ok := reservedSlugs[slug]
	return ok
}

// IsValidTenantSlug reports whether slug is a usable, non-reserved tenant slug.
func IsValidTenantSlug(slug string) bool {
	if len(slug) < MinTenantSlugLength || len(slug) > MaxTenantSlugLength {
		return false
	}
	if !tenantSlugRegex.MatchString(slug) {
		return false
	}
	return !IsReservedSlug(slug)
}

// NormalizeTenantSlug trims and lower-cases raw and validates the result.
func NormalizeTenantSlug(raw, field string) (string, error) {
	slug := strings.ToLower(strings.TrimSpace(raw))
	if slug == "" {
		return "", autherr.Required(field)
	}
	if !IsValidTenantSlug(slug) {
		return "", autherr.InvalidTenantSlug(field)
	}
	return slug, nil
}
