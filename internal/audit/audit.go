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

// Package audit records domain events and security violations to a
// structured log.
package audit

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/samber/oops"

	"github.com/vishwanth-dev/prephired-main-sub000/internal/autherr"
	"github.com/vishwanth-dev/prephired-main-sub000/internal/event"
)

// Logger defines the interface for audit logging
type Logger interface {
	// LogEvent records a domain event.
	LogEvent(ctx context.Context, e event.Event)
	// LogViolation records a rejected operation. Attributes describe the
	// subject (user, tenant, action).
	LogViolation(ctx context.Context, err error, attrs ...slog.Attr)
}

// SlogLogger implements Logger using slog
type SlogLogger struct {
	log *slog.Logger
}

// NewSlogLogger creates a new audit logger. A nil logger uses slog.Default.
func NewSlogLogger(l *slog.Logger) *SlogLogger {
	if l == nil {
		l = slog.Default()
	}
	return &SlogLogger{log: l.With(slog.String("component", "audit"))}
}

// LogEvent records a domain event. Security events are logged at WARN.
func (l *SlogLogger) LogEvent(ctx context.Context, e event.Event) {
	attrs := []slog.Attr{
		slog.String("audit_type", string(e.Type)),
		slog.String("category", string(e.Category())),
		slog.String("event_id", e.ID),
		slog.Time("timestamp", e.Timestamp),
	}
	if uid := e.UserID(); uid != "" {
		attrs = append(attrs, slog.String("user_id", uid))
	}
	if tid := e.TenantID(); tid != "" {
		attrs = append(attrs, slog.String("tenant_id", tid))
	}
	if len(e.Metadata) > 0 {
		attrs = append(attrs, redactedGroup("metadata", e.Metadata))
	}

	level := slog.LevelInfo
	if event.IsSecurityEvent(e) {
		level = slog.LevelWarn
	}
	l.log.LogAttrs(ctx, level, "AUDIT_EVENT", attrs...)
}

// LogViolation records a rejected operation. The error's code and oops
// context are flattened into the record.
func (l *SlogLogger) LogViolation(ctx context.Context, err error, attrs ...slog.Attr) {
	if err == nil {
		return
	}
	all := make([]slog.Attr, 0, len(attrs)+4)
	all = append(all, slog.String("error", err.Error()))

	kind := "unknown"
	if ae, ok := autherr.As(err); ok {
		kind = ae.Kind.String()
	}
	all = append(all, slog.String("kind", kind))

	if oe, ok := oops.AsOops(err); ok {
		all = append(all, slog.String("code", fmt.Sprint(oe.Code())))
		if ctxMap := oe.Context(); len(ctxMap) > 0 {
			all = append(all, redactedGroup("context", ctxMap))
		}
	}
	all = append(all, attrs...)

	level := slog.LevelInfo
	if kind == autherr.KindSecurity.String() {
		level = slog.LevelWarn
	}
	l.log.LogAttrs(ctx, level, "AUDIT_VIOLATION", all...)
}

func redactedGroup(name string, m map[string]any) slog.Attr {
	group := make([]any, 0, len(m))
	for _, k := range slices.Sorted(maps.Keys(m)) {
		v := m[k]
		if isSecret(k) {
			v = "[REDACTED]"
		}
		group = append(group, slog.Any(k, v))
	}
	return slog.Group(name, group...)
}

var secretMarkers = []string{"password", "secret", "token", "key", "authorization", "hash", "credential", "otp", "verifier"}

// isSecret checks if a key likely contains a secret
func isSecret(key string) bool {
	k := strings.ToLower(key)
	for _, s := range secretMarkers {
		if strings.Contains(k, s) {
			return true
		}
	}
	return false
}

// Nop discards everything.
type Nop struct{}

func (Nop) LogEvent(context.Context, event.Event)              {}
func (Nop) LogViolation(context.Context, error, ...slog.Attr) {}
