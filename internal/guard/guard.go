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

// Package guard runs the authentication checks behind one instrumented
// entry point. Every operation is traced and counted; rejected security
// checks are audited and emitted as domain events.
package guard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/vishwanth-dev/prephired-main-sub000/internal/audit"
	"github.com/vishwanth-dev/prephired-main-sub000/internal/autherr"
	"github.com/vishwanth-dev/prephired-main-sub000/internal/config"
	"github.com/vishwanth-dev/prephired-main-sub000/internal/event"
	"github.com/vishwanth-dev/prephired-main-sub000/internal/identity"
	"github.com/vishwanth-dev/prephired-main-sub000/internal/limits"
	"github.com/vishwanth-dev/prephired-main-sub000/internal/oauth2"
	"github.com/vishwanth-dev/prephired-main-sub000/internal/observability/logger"
	"github.com/vishwanth-dev/prephired-main-sub000/internal/observability/tracing"
	"github.com/vishwanth-dev/prephired-main-sub000/internal/password"
	"github.com/vishwanth-dev/prephired-main-sub000/internal/session"
	"github.com/vishwanth-dev/prephired-main-sub000/internal/tenant"
)

// Instrument names. The Prometheus exporter appends _total to counters.
const (
	MetricValidations        = "auth_validations"
	MetricValidationErrors   = "auth_validation_errors"
	MetricSecurityViolations = "auth_security_violations"
)

// Options are the policies the service enforces.
type Options struct {
	Password     password.Policy
	Registration identity.RegistrationOptions
	OAuth        oauth2.Policy

	// MaxActiveSessions is the per-user session limit; negative is unlimited.
	MaxActiveSessions int
	IdleTimeout       time.Duration
	Geo               limits.GeoPolicy

	// Clock stamps published events. Defaults to time.Now.
	Clock func() time.Time
}

// DefaultOptions returns the platform default policies.
func DefaultOptions() Options {
	return Options{
		Password:          password.DefaultPolicy(),
		OAuth:             oauth2.DefaultPolicy(),
		MaxActiveSessions: 5,
		IdleTimeout:       session.DefaultIdleTimeout,
	}
}

// OptionsFromConfig maps loaded configuration onto Options.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	oauthPolicy, err := cfg.OAuthPolicy()
	if err != nil {
		return Options{}, fmt.Errorf("oauth policy: %w", err)
	}
	return Options{
		Password:          cfg.Password,
		Registration:      *cfg.RegistrationOptions(),
		OAuth:             oauthPolicy,
		MaxActiveSessions: cfg.Session.MaxActive,
		IdleTimeout:       cfg.Session.IdleTimeout,
		Geo:               cfg.Security.Geo,
	}, nil
}

// Service is safe for concurrent use; it holds no mutable state.
type Service struct {
	opts   Options
	audit  audit.Logger
	sink   event.Sink
	tracer trace.Tracer

	validations metric.Int64Counter
	failures    metric.Int64Counter
	violations  metric.Int64Counter
}

// NewService creates the service. Nil collaborators are replaced with
// no-op implementations.
func NewService(opts Options, auditLogger audit.Logger, sink event.Sink, tracer trace.Tracer, meter metric.Meter) (*Service, error) {
	if err := opts.Password.Validate(); err != nil {
		return nil, err
	}
	if tracer == nil {
		tracer = tracenoop.NewTracerProvider().Tracer("guard")
	}
	if meter == nil {
		meter = metricnoop.NewMeterProvider().Meter("guard")
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if auditLogger == nil {
		auditLogger = audit.Nop{}
	}
	if sink == nil {
		sink = event.SinkFunc(func(context.Context, event.Event) error { return nil })
	}

	s := &Service{opts: opts, audit: auditLogger, sink: sink, tracer: tracer}
	var err error
	if s.validations, err = meter.Int64Counter(MetricValidations,
		metric.WithDescription("Authentication checks run, by operation")); err != nil {
		return nil, fmt.Errorf("failed to create counter %s: %w", MetricValidations, err)
	}
	if s.failures, err = meter.Int64Counter(MetricValidationErrors,
		metric.WithDescription("Authentication checks rejected, by operation and code")); err != nil {
		return nil, fmt.Errorf("failed to create counter %s: %w", MetricValidationErrors, err)
	}
	if s.violations, err = meter.Int64Counter(MetricSecurityViolations,
		metric.WithDescription("Security violations, by code")); err != nil {
		return nil, fmt.Errorf("failed to create counter %s: %w", MetricSecurityViolations, err)
	}
	return s, nil
}

// Register validates a sign-up form and returns the normalised command.
func (s *Service) Register(ctx context.Context, form identity.RegistrationForm) (identity.RegisterUserCommand, autherr.ValidationResult) {
	ctx, span := s.start(ctx, "Register")
	defer span.End()

	cmd, res := identity.PrepareRegistration(form, &s.opts.Password, &s.opts.Registration)
	if res.IsValid() {
		return cmd, res
	}

	failed := make([]error, 0, len(res.Errors()))
	reasons := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		failed = append(failed, e)
		reasons = append(reasons, string(e.Code))
	}
	s.reject(ctx, span, "Register", failed...)
	s.emit(ctx, event.RegistrationFailed{Identifier: form.Email, Codes: reasons}, nil)
	return identity.RegisterUserCommand{}, res
}

// LoginAttempt is a sign-in request together with the state the caller has
// loaded for it.
type LoginAttempt struct {
	Form identity.LoginForm
	// LockedUntil is the account's lock expiry, if the account is known.
	LockedUntil    *time.Time
	UserID         string
	ActiveSessions []session.Session
	Rate           limits.RateWindow
	IPAddress      string
	Device         session.Device
	Now            time.Time
}

// Login validates the form and then applies, in order, the rate limit,
// geographic policy, account lock and session limit.
func (s *Service) Login(ctx context.Context, a LoginAttempt) (identity.LoginCredentials, error) {
	ctx, span := s.start(ctx, "Login")
	defer span.End()

	creds, err := identity.ToLoginCredentials(a.Form, s.opts.Registration.DefaultCountryCode)
	if err != nil {
		s.reject(ctx, span, "Login", err)
		return identity.LoginCredentials{}, err
	}

	if a.Rate.Action == "" {
		a.Rate.Action = "login"
	}
	if err := limits.ValidateRateLimit(a.Rate, a.Now); err != nil {
		s.reject(ctx, span, "Login", err)
		s.emit(ctx, event.RateLimitExceeded{
			Action:     a.Rate.Action,
			Identifier: creds.Identifier,
			IPAddress:  a.IPAddress,
			Attempts:   a.Rate.Attempts,
		}, nil)
		return identity.LoginCredentials{}, err
	}
	if err := limits.ValidateGeographicAccess(a.Device.Country, s.opts.Geo); err != nil {
		s.reject(ctx, span, "Login", err)
		s.emit(ctx, event.GeographicAccessBlocked{
			UserRef:   event.UserRef{UserID: a.UserID},
			Country:   a.Device.Country,
			IPAddress: a.IPAddress,
		}, nil)
		return identity.LoginCredentials{}, err
	}
	if err := limits.ValidateAccountLock(a.LockedUntil, a.Now); err != nil {
		s.reject(ctx, span, "Login", err)
		s.emit(ctx, event.LoginFailed{
			Identifier: creds.Identifier,
			Reason:     "account_locked",
			IPAddress:  a.IPAddress,
		}, nil)
		return identity.LoginCredentials{}, err
	}
	active := session.CountActive(a.ActiveSessions, a.Now, s.opts.IdleTimeout)
	if err := limits.ValidateSessionLimits(active, s.opts.MaxActiveSessions); err != nil {
		s.reject(ctx, span, "Login", err)
		return identity.LoginCredentials{}, err
	}
	return creds, nil
}

// SwitchTenant validates a tenant switch for userID and publishes
// TenantSwitched on success.
func (s *Service) SwitchTenant(ctx context.Context, userID string, req tenant.SwitchRequest) (tenant.Membership, error) {
	ctx, span := s.start(ctx, "SwitchTenant")
	defer span.End()
	span.SetAttributes(attribute.String("tenant.target", req.TargetTenantID))

	m, err := tenant.ValidateSwitch(req)
	if err != nil {
		s.reject(ctx, span, "SwitchTenant", err)
		return tenant.Membership{}, err
	}
	s.emit(ctx, event.TenantSwitched{
		UserRef:      event.UserRef{UserID: userID},
		TenantRef:    event.TenantRef{TenantID: m.TenantID},
		FromTenantID: req.SourceTenantID,
	}, nil)
	return m, nil
}

// InitiateOAuth validates a social sign-in request.
func (s *Service) InitiateOAuth(ctx context.Context, form oauth2.InitiationForm) (oauth2.Initiation, error) {
	ctx, span := s.start(ctx, "InitiateOAuth")
	defer span.End()

	in, err := oauth2.ToInitiation(form, s.opts.OAuth)
	if err != nil {
		s.reject(ctx, span, "InitiateOAuth", err)
		return oauth2.Initiation{}, err
	}
	s.emit(ctx, event.OAuthLoginInitiated{Provider: string(in.Provider), RedirectURI: in.RedirectURI}, nil)
	return in, nil
}

// CheckRateLimit applies w at now.
func (s *Service) CheckRateLimit(ctx context.Context, w limits.RateWindow, now time.Time) error {
	ctx, span := s.start(ctx, "CheckRateLimit")
	defer span.End()

	if err := limits.ValidateRateLimit(w, now); err != nil {
		s.reject(ctx, span, "CheckRateLimit", err)
		return err
	}
	return nil
}

// Publish builds an event from p, audits it and hands it to the sink.
func (s *Service) Publish(ctx context.Context, p event.Payload, metadata map[string]any) (event.Event, error) {
	e, err := event.CreateAt(s.opts.Clock(), p, metadata)
	if err != nil {
		return event.Event{}, err
	}
	s.audit.LogEvent(ctx, e)
	if err := s.sink.Publish(ctx, e); err != nil {
		return e, fmt.Errorf("publish %s: %w", e.Type, err)
	}
	return e, nil
}

func (s *Service) emit(ctx context.Context, p event.Payload, metadata map[string]any) {
	if _, err := s.Publish(ctx, p, metadata); err != nil {
		slog.WarnContext(ctx, "failed to publish event", logger.Component("guard"), logger.Error(err))
	}
}

func (s *Service) start(ctx context.Context, op string) (context.Context, trace.Span) {
	ctx, span := s.tracer.Start(ctx, "guard."+op)
	s.validations.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", op)))
	return ctx, span
}

// reject records errs against op. Security violations are also audited.
func (s *Service) reject(ctx context.Context, span trace.Span, op string, errs ...error) {
	if len(errs) == 0 {
		return
	}
	tracing.RecordRejection(span, errs[0])

	for _, err := range errs {
		code := string(autherr.CodeOf(err))
		s.failures.Add(ctx, 1, metric.WithAttributes(
			attribute.String("operation", op),
			attribute.String("code", code),
		))
		if autherr.IsSecurityViolation(err) {
			s.violations.Add(ctx, 1, metric.WithAttributes(attribute.String("code", code)))
			s.audit.LogViolation(ctx, err, logger.Operation(op))
		}
	}
}
