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
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/vishwanth-dev/prephired-main-sub000/internal/autherr"
)

// MaxUserAgentLength bounds the User-Agent header value accepted in events.
const MaxUserAgentLength = 512

// IsValidTimestamp reports whether ts parses as RFC 3339.
func IsValidTimestamp(ts string) bool {
	_, err := time.Parse(time.RFC3339Nano, ts)
	return err == nil
}

// ValidateTimestampAt parses ts and rejects values further than maxSkew from
// now in either direction. A zero maxSkew disables the skew check.
func ValidateTimestampAt(ts string, now time.Time, maxSkew time.Duration, field string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(ts))
	if err != nil {
		return time.Time{}, autherr.NewValidationError(field, "Must be an RFC 3339 timestamp")
	}
	if maxSkew > 0 {
		d := t.Sub(now)
		if d < 0 {
			d = -d
		}
		if d > maxSkew {
			return time.Time{}, autherr.NewValidationError(field, "Timestamp is outside the accepted window").
				WithMetadata("max_skew", maxSkew.String())
		}
	}
	return t.UTC(), nil
}

// IsValidIPAddress reports whether ip is a literal IPv4 or IPv6 address.
// Zoned IPv6 addresses are rejected.
func IsValidIPAddress(ip string) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	return addr.Zone() == ""
}

// IsValidUserAgent reports whether ua is non-empty, printable and within
// MaxUserAgentLength bytes.
func IsValidUserAgent(ua string) bool {
	if strings.TrimSpace(ua) == "" || len(ua) > MaxUserAgentLength || !utf8.ValidString(ua) {
		return false
	}
	for _, r := range ua {
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}
