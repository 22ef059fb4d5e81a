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

package guard_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/goleak"

	"github.com/vishwanth-dev/prephired-main-sub000/internal/autherr"
	"github.com/vishwanth-dev/prephired-main-sub000/internal/config"
	"github.com/vishwanth-dev/prephired-main-sub000/internal/event"
	"github.com/vishwanth-dev/prephired-main-sub000/internal/guard"
	"github.com/vishwanth-dev/prephired-main-sub000/internal/identity"
	"github.com/vishwanth-dev/prephired-main-sub000/internal/limits"
	"github.com/vishwanth-dev/prephired-main-sub000/internal/session"
	"github.com/vishwanth-dev/prephired-main-sub000/internal/tenant"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const strongPassword = "Qm7!xR2#vL"

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type mockAudit struct {
	mock.Mock
}

func (m *mockAudit) LogEvent(ctx context.Context, e event.Event) {
	m.Called(ctx, e)
}

func (m *mockAudit) LogViolation(ctx context.Context, err error, attrs ...slog.Attr) {
	m.Called(ctx, err)
}

type harness struct {
	svc    *guard.Service
	audit  *mockAudit
	events *event.Recorder
	spans  *tracetest.SpanRecorder
	reader *sdkmetric.ManualReader
}

func newHarness(t *testing.T, opts guard.Options) *harness {
	t.Helper()
	h := &harness{
		audit:  &mockAudit{},
		events: &event.Recorder{},
		spans:  tracetest.NewSpanRecorder(),
		reader: sdkmetric.NewManualReader(),
	}
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(h.spans))
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(h.reader))
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		_ = mp.Shutdown(context.Background())
	})

	opts.Clock = func() time.Time { return now }
	h.audit.On("LogEvent", mock.Anything, mock.Anything).Return().Maybe()

	svc, err := guard.NewService(opts, h.audit, h.events, tp.Tracer("guard"), mp.Meter("guard"))
	require.NoError(t, err)
	h.svc = svc
	return h
}

func (h *harness) counter(t *testing.T, name string, attrs ...attribute.KeyValue) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, h.reader.Collect(context.Background(), &rm))
	want := attribute.NewSet(attrs...)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				if dp.Attributes.Equals(&want) {
					return dp.Value
				}
			}
		}
	}
	return 0
}

func (h *harness) eventTypes() []event.Type {
	var out []event.Type
	for _, e := range h.events.Events() {
		out = append(out, e.Type)
	}
	return out
}

// TestPurpose: Validates that registration is traced, counted and reported as an event when rejected.
// Scope: Unit Test
// Expected: A valid form yields a command; an invalid one yields every error, a RegistrationFailed event and per-code failure counts.
// Test Case ID: GRD-01
func TestGuard_Register(t *testing.T) {
	h := newHarness(t, guard.DefaultOptions())
	ctx := context.Background()

	form := identity.RegistrationForm{
		FirstName:       "Ada",
		LastName:        "Lovelace",
		Email:           "Ada@Example.com",
		Password:        strongPassword,
		ConfirmPassword: strongPassword,
		AcceptTerms:     true,
		AcceptPrivacy:   true,
	}
	cmd, res := h.svc.Register(ctx, form)
	require.True(t, res.IsValid())
	assert.Equal(t, "ada@example.com", string(cmd.Email))

	form.ConfirmPassword = "different"
	form.AcceptTerms = false
	_, res = h.svc.Register(ctx, form)
	require.False(t, res.IsValid())
	assert.True(t, res.HasCode(autherr.CodePasswordMismatch))
	assert.True(t, res.HasCode(autherr.CodeTermsNotAccepted))

	assert.Equal(t, []event.Type{event.TypeRegistrationFailed}, h.eventTypes())
	assert.Equal(t, int64(2), h.counter(t, guard.MetricValidations, attribute.String("operation", "Register")))
	assert.Equal(t, int64(1), h.counter(t, guard.MetricValidationErrors,
		attribute.String("operation", "Register"), attribute.String("code", string(autherr.CodePasswordMismatch))))

	ended := h.spans.Ended()
	require.Len(t, ended, 2)
	assert.Equal(t, "guard.Register", ended[1].Name())
	h.audit.AssertNotCalled(t, "LogViolation", mock.Anything, mock.Anything)
}

// TestPurpose: Validates the order and side effects of sign-in security checks.
// Scope: Unit Test
// Security: Rate limits, locks and geographic policy are enforced and audited (OWASP ASVS V2.2).
// Expected: Each refused login returns its specific error, is audited once and counted as a violation.
// Test Case ID: GRD-02
func TestGuard_LoginSecurityChecks(t *testing.T) {
	opts := guard.DefaultOptions()
	opts.Geo = limits.GeoPolicy{Blocked: []string{"KP"}}
	opts.MaxActiveSessions = 1
	h := newHarness(t, opts)
	h.audit.On("LogViolation", mock.Anything, mock.Anything).Return()
	ctx := context.Background()

	base := guard.LoginAttempt{
		Form: identity.LoginForm{Identifier: "ada@example.com", Password: "anything"},
		Rate: limits.RateWindow{Attempts: 1, Max: 5, ResetAt: now.Add(time.Minute)},
		Now:  now,
	}

	creds, err := h.svc.Login(ctx, base)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", creds.Identifier)

	limited := base
	limited.Rate.Attempts = 5
	_, err = h.svc.Login(ctx, limited)
	assert.ErrorIs(t, err, autherr.ErrRateLimitExceeded)

	blocked := base
	blocked.Device = session.Device{Country: "KP"}
	blocked.IPAddress = "203.0.113.9"
	_, err = h.svc.Login(ctx, blocked)
	assert.ErrorIs(t, err, autherr.ErrGeographicRestriction)

	locked := base
	until := now.Add(10 * time.Minute)
	locked.LockedUntil = &until
	_, err = h.svc.Login(ctx, locked)
	assert.ErrorIs(t, err, autherr.ErrAccountLocked)

	full := base
	full.ActiveSessions = []session.Session{{ID: "s1", UserID: "u1", CreatedAt: now, ExpiresAt: now.Add(time.Hour), LastActivity: now}}
	_, err = h.svc.Login(ctx, full)
	assert.ErrorIs(t, err, autherr.ErrSessionLimitExceeded)

	assert.Equal(t, []event.Type{
		event.TypeRateLimitExceeded,
		event.TypeGeographicAccessBlocked,
		event.TypeLoginFailed,
	}, h.eventTypes())
	h.audit.AssertNumberOfCalls(t, "LogViolation", 3)
	assert.Equal(t, int64(1), h.counter(t, guard.MetricSecurityViolations,
		attribute.String("code", string(autherr.CodeAccountLocked))))

	_, err = h.svc.Login(ctx, guard.LoginAttempt{Form: identity.LoginForm{Identifier: "not an id"}, Now: now})
	assert.True(t, autherr.IsValidation(err))
}

// TestPurpose: Validates tenant switching through the service.
// Scope: Unit Test
// Security: Cross-tenant access requires membership (CWE-639).
// Expected: A member switch publishes TenantSwitched; a non-member switch is rejected without events.
// Test Case ID: GRD-03
func TestGuard_SwitchTenant(t *testing.T) {
	h := newHarness(t, guard.DefaultOptions())
	ctx := context.Background()
	from, to := uuid.NewString(), uuid.NewString()
	req := tenant.SwitchRequest{
		SourceTenantID: from,
		TargetTenantID: to,
		Memberships:    []tenant.Membership{{TenantID: to, Role: tenant.RoleMember, TenantStatus: tenant.StatusActive}},
	}

	m, err := h.svc.SwitchTenant(ctx, "u1", req)
	require.NoError(t, err)
	assert.Equal(t, to, m.TenantID)

	events := h.events.Events()
	require.Len(t, events, 1)
	assert.Equal(t, event.TypeTenantSwitched, events[0].Type)
	assert.Equal(t, to, events[0].TenantID())
	assert.Equal(t, now, events[0].Timestamp)

	req.Memberships = nil
	_, err = h.svc.SwitchTenant(ctx, "u1", req)
	assert.ErrorIs(t, err, autherr.ErrTenantAccessDenied)
	assert.Len(t, h.events.Events(), 1)
}

// TestPurpose: Validates that loaded configuration maps onto service options.
// Scope: Unit Test
// Expected: Defaults produce a working service with PKCE required.
// Test Case ID: GRD-04
func TestGuard_OptionsFromConfig(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	opts, err := guard.OptionsFromConfig(cfg)
	require.NoError(t, err)
	assert.True(t, opts.OAuth.RequirePKCE)
	assert.Equal(t, cfg.Session.MaxActive, opts.MaxActiveSessions)

	svc, err := guard.NewService(opts, nil, nil, nil, nil)
	require.NoError(t, err)
	assert.NoError(t, svc.CheckRateLimit(context.Background(), limits.RateWindow{Action: "otp", Attempts: 0, Max: 3}, now))
}
