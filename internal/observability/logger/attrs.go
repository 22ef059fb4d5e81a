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

package logger

import (
	"log/slog"

	"github.com/vishwanth-dev/prephired-main-sub000/internal/autherr"
)

// Common attribute keys for consistent logging across the application

// Identity attributes
func UserID(id string) slog.Attr {
	return slog.String("user_id", id)
}

func TenantID(id string) slog.Attr {
	return slog.String("tenant_id", id)
}

func SessionID(id string) slog.Attr {
	return slog.String("session_id", id)
}

// Email logs only the domain part of an address.
func Email(email string) slog.Attr {
	for i := len(email) - 1; i >= 0; i-- {
		if email[i] == '@' {
			return slog.String("email_domain", email[i+1:])
		}
	}
	return slog.String("email_domain", "")
}

func IPAddress(ip string) slog.Attr {
	return slog.String("ip_address", ip)
}

// OAuth attributes
func Provider(name string) slog.Attr {
	return slog.String("provider", name)
}

func Scope(scope string) slog.Attr {
	return slog.String("scope", scope)
}

func RedirectURI(uri string) slog.Attr {
	return slog.String("redirect_uri", uri)
}

// Event attributes
func EventType(t string) slog.Attr {
	return slog.String("event_type", t)
}

func EventID(id string) slog.Attr {
	return slog.String("event_id", id)
}

// Error attributes
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}

// Code logs the domain error code of err, or "" for foreign errors.
func Code(err error) slog.Attr {
	return slog.String("code", string(autherr.CodeOf(err)))
}

func Field(name string) slog.Attr {
	return slog.String("field", name)
}

func Kind(k autherr.Kind) slog.Attr {
	return slog.String("kind", k.String())
}

// Component attributes
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

func Operation(op string) slog.Attr {
	return slog.String("operation", op)
}

func Duration(ms int64) slog.Attr {
	return slog.Int64("duration_ms", ms)
}
