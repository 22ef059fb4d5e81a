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

// Package config loads the engine's policies and observability settings
// from an optional YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"go.opentelemetry.io/otel/attribute"

	"github.com/vishwanth-dev/prephired-main-sub000/internal/identity"
	"github.com/vishwanth-dev/prephired-main-sub000/internal/limits"
	"github.com/vishwanth-dev/prephired-main-sub000/internal/oauth2"
	"github.com/vishwanth-dev/prephired-main-sub000/internal/observability/logger"
	"github.com/vishwanth-dev/prephired-main-sub000/internal/observability/metrics"
	"github.com/vishwanth-dev/prephired-main-sub000/internal/observability/tracing"
	"github.com/vishwanth-dev/prephired-main-sub000/internal/password"
)

// Config holds all application configuration
type Config struct {
	Password      password.Policy     `yaml:"password" env-prefix:"PASSWORD_"`
	Registration  RegistrationConfig  `yaml:"registration"`
	OAuth         OAuthConfig         `yaml:"oauth"`
	MFA           MFAConfig           `yaml:"mfa"`
	Session       SessionConfig       `yaml:"session"`
	Security      SecurityConfig      `yaml:"security"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// RegistrationConfig holds sign-up options
type RegistrationConfig struct {
	// DefaultCountryCode is the calling code applied to local phone numbers, e.g. "+1".
	DefaultCountryCode string `yaml:"default_country_code" env:"REGISTRATION_DEFAULT_COUNTRY_CODE"`
	RequirePhone       bool   `yaml:"require_phone" env:"REGISTRATION_REQUIRE_PHONE" env-default:"false"`
	RequireTenant      bool   `yaml:"require_tenant" env:"REGISTRATION_REQUIRE_TENANT" env-default:"false"`
}

// OAuthConfig holds social sign-in constraints
type OAuthConfig struct {
	Providers      []string `yaml:"providers" env:"OAUTH_PROVIDERS" env-separator:"," env-default:"google,github,microsoft"`
	RedirectURIs   []string `yaml:"redirect_uris" env:"OAUTH_REDIRECT_URIS" env-separator:","`
	RequirePKCE    bool     `yaml:"require_pkce" env:"OAUTH_REQUIRE_PKCE" env-default:"true"`
	AllowedScopes  []string `yaml:"allowed_scopes" env:"OAUTH_ALLOWED_SCOPES" env-separator:","`
	MinStateLength int      `yaml:"min_state_length" env:"OAUTH_MIN_STATE_LENGTH" env-default:"32"`
}

// MFAConfig holds challenge settings
type MFAConfig struct {
	ChallengeTTL time.Duration `yaml:"challenge_ttl" env:"MFA_CHALLENGE_TTL" env-default:"5m"`
	MaxAttempts  int           `yaml:"max_attempts" env:"MFA_MAX_ATTEMPTS" env-default:"5"`
}

// SessionConfig holds session limits
type SessionConfig struct {
	Lifetime    time.Duration `yaml:"lifetime" env:"SESSION_LIFETIME" env-default:"24h"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"SESSION_IDLE_TIMEOUT" env-default:"30m"`
	// MaxActive is the concurrent session limit per user. Negative is unlimited.
	MaxActive int `yaml:"max_active" env:"SESSION_MAX_ACTIVE" env-default:"5"`
}

// SecurityConfig holds lockout, rate-limit and geographic settings
type SecurityConfig struct {
	LockoutMaxAttempts int              `yaml:"lockout_max_attempts" env:"SECURITY_LOCKOUT_MAX_ATTEMPTS" env-default:"5"`
	LockoutDuration    time.Duration    `yaml:"lockout_duration" env:"SECURITY_LOCKOUT_DURATION" env-default:"15m"`
	LoginRateLimit     int              `yaml:"login_rate_limit" env:"SECURITY_LOGIN_RATE_LIMIT" env-default:"10"`
	LoginRateWindow    time.Duration    `yaml:"login_rate_window" env:"SECURITY_LOGIN_RATE_WINDOW" env-default:"15m"`
	Geo                limits.GeoPolicy `yaml:"geo" env-prefix:"SECURITY_GEO_"`
}

// ObservabilityConfig holds logging, metrics and tracing configuration
type ObservabilityConfig struct {
	Log     logger.Config  `yaml:"log"`
	Metrics metrics.Config `yaml:"metrics"`
	Tracing tracing.Config `yaml:"tracing"`
}

// Load reads path, when given, and then the environment. Environment
// variables override file values.
func Load(path string) (*Config, error) {
	var cfg Config
	var err error
	if path == "" {
		err = cleanenv.ReadEnv(&cfg)
	} else {
		err = cleanenv.ReadConfig(path, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	var errs []error
	if err := c.Password.Validate(); err != nil {
		errs = append(errs, err)
	}
	for _, p := range c.OAuth.Providers {
		if !slices.Contains(oauth2.KnownProviders, oauth2.Provider(strings.ToLower(strings.TrimSpace(p)))) {
			errs = append(errs, fmt.Errorf("oauth: unknown provider %q", p))
		}
	}
	if _, err := oauth2.NewRedirectAllowlist(c.OAuth.RedirectURIs...); err != nil {
		errs = append(errs, fmt.Errorf("oauth: %w", err))
	}
	if c.MFA.ChallengeTTL <= 0 || c.MFA.MaxAttempts < 1 {
		errs = append(errs, errors.New("mfa: challenge ttl and max attempts must be positive"))
	}
	if c.Session.Lifetime <= 0 {
		errs = append(errs, errors.New("session: lifetime must be positive"))
	}
	if c.Security.LockoutMaxAttempts < 1 || c.Security.LockoutDuration <= 0 {
		errs = append(errs, errors.New("security: lockout attempts and duration must be positive"))
	}
	return errors.Join(errs...)
}

// RegistrationOptions returns the sign-up options for identity forms.
func (c *Config) RegistrationOptions() *identity.RegistrationOptions {
	return &identity.RegistrationOptions{
		DefaultCountryCode: c.Registration.DefaultCountryCode,
		RequirePhone:       c.Registration.RequirePhone,
		RequireTenant:      c.Registration.RequireTenant,
	}
}

// TracingIdentity names the traced process after the log service name and
// version, and records the active policy limits as resource attributes.
func (c *Config) TracingIdentity(version string) tracing.Identity {
	return tracing.Identity{
		Name:    c.Observability.Log.ServiceName,
		Version: version,
		Attributes: []attribute.KeyValue{
			attribute.Int("auth.password.min_length", c.Password.MinLength),
			attribute.Int("auth.password.history_count", c.Password.HistoryCount),
			attribute.Bool("auth.oauth.require_pkce", c.OAuth.RequirePKCE),
			attribute.StringSlice("auth.oauth.providers", c.OAuth.Providers),
			attribute.Int("auth.session.max_active", c.Session.MaxActive),
			attribute.Int("auth.lockout.max_attempts", c.Security.LockoutMaxAttempts),
		},
	}
}

// OAuthPolicy builds the initiation policy. Without redirect patterns only
// URL validity is enforced.
func (c *Config) OAuthPolicy() (oauth2.Policy, error) {
	p := oauth2.Policy{
		RequirePKCE:    c.OAuth.RequirePKCE,
		AllowedScopes:  c.OAuth.AllowedScopes,
		MinStateLength: c.OAuth.MinStateLength,
	}
	for _, name := range c.OAuth.Providers {
		p.Providers = append(p.Providers, oauth2.Provider(strings.ToLower(strings.TrimSpace(name))))
	}
	if len(c.OAuth.RedirectURIs) > 0 {
		a, err := oauth2.NewRedirectAllowlist(c.OAuth.RedirectURIs...)
		if err != nil {
			return oauth2.Policy{}, err
		}
		p.Redirects = a
	}
	return p, nil
}
