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
	"net/netip"
	"net/url"
	"strings"

	"github.com/vishwanth-dev/prephired-main-sub000/internal/autherr"
)

// IsValidURL reports whether raw is an absolute http or https URL with a
// public-looking host: no empty host, no ".." in the host, and no localhost,
// loopback or unspecified address.
func IsValidURL(raw string) bool {
	if strings.TrimSpace(raw) != raw || raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	host := strings.ToLower(u.Hostname())
	if host == "" || strings.Contains(host, "..") {
		return false
	}
	if host == "localhost" || strings.HasSuffix(host, ".localhost") {
		return false
	}
	if addr, err := netip.ParseAddr(host); err == nil {
		if addr.IsLoopback() || addr.IsUnspecified() {
			return false
		}
	}
	return true
}

// ValidateURL returns a field-scoped error when raw is not a valid URL.
func ValidateURL(raw, field string) error {
	if raw == "" {
		return autherr.Required(field)
	}
	if !IsValidURL(raw) {
		return autherr.InvalidURL(field)
	}
	return nil
}
