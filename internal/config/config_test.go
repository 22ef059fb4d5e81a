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

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"

	"github.com/vishwanth-dev/prephired-main-sub000/internal/oauth2"
	"github.com/vishwanth-dev/prephired-main-sub000/internal/password"
)

// TestPurpose: Validates that defaults apply when no file or variables are set.
// Scope: Unit Test
// Expected: The password policy equals the platform default; OAuth requires PKCE.
// Test Case ID: CFG-01
func TestConfig_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, password.DefaultPolicy(), cfg.Password)
	assert.Equal(t, 30*time.Minute, cfg.Session.IdleTimeout)
	assert.Equal(t, "info", cfg.Observability.Log.Level)

	p, err := cfg.OAuthPolicy()
	require.NoError(t, err)
	assert.True(t, p.RequirePKCE)
	assert.Nil(t, p.Redirects)
	assert.Equal(t, []oauth2.Provider{oauth2.ProviderGoogle, oauth2.ProviderGitHub, oauth2.ProviderMicrosoft}, p.Providers)
}

// TestPurpose: Validates that YAML values load and environment variables override them.
// Scope: Unit Test
// Expected: File values are read; PASSWORD_MIN_LENGTH wins over the file.
// Test Case ID: CFG-02
func TestConfig_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
password:
  min_length: 10
  history_count: 3
oauth:
  providers: [github]
  redirect_uris:
    - "https://*.acme.io/oauth/callback"
registration:
  default_country_code: "+44"
`), 0o600))
	t.Setenv("PASSWORD_MIN_LENGTH", "12")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Password.MinLength)
	assert.Equal(t, 3, cfg.Password.HistoryCount)
	assert.Equal(t, "+44", cfg.RegistrationOptions().DefaultCountryCode)

	p, err := cfg.OAuthPolicy()
	require.NoError(t, err)
	assert.True(t, p.Redirects.Allows("https://app.acme.io/oauth/callback"))
	assert.False(t, p.Redirects.Allows("https://evil.io/oauth/callback"))
}

// TestPurpose: Validates that inconsistent settings are rejected at load time.
// Scope: Unit Test
// Expected: A max length below the min length and an unknown provider both fail.
// Test Case ID: CFG-03
func TestConfig_Invalid(t *testing.T) {
	t.Setenv("PASSWORD_MIN_LENGTH", "20")
	t.Setenv("PASSWORD_MAX_LENGTH", "10")
	t.Setenv("OAUTH_PROVIDERS", "google,myspace")

	_, err := Load("")
	require.Error(t, err)
	assert.ErrorIs(t, err, password.ErrInvalidPolicy)
	assert.Contains(t, err.Error(), "myspace")
}

// TestPurpose: Validates that the tracing identity is derived from the loaded configuration.
// Scope: Unit Test
// Expected: The log service name and supplied version name the process; policy limits become attributes.
// Test Case ID: CFG-04
func TestConfig_TracingIdentity(t *testing.T) {
	t.Setenv("SERVICE_NAME", "auth-edge")
	t.Setenv("SESSION_MAX_ACTIVE", "3")
	cfg, err := Load("")
	require.NoError(t, err)

	id := cfg.TracingIdentity("1.4.2")
	assert.Equal(t, "auth-edge", id.Name)
	assert.Equal(t, "1.4.2", id.Version)

	attrs := attribute.NewSet(id.Attributes...)
	v, ok := attrs.Value("auth.session.max_active")
	require.True(t, ok)
	assert.Equal(t, int64(3), v.AsInt64())
	v, ok = attrs.Value("auth.password.min_length")
	require.True(t, ok)
	assert.Equal(t, int64(password.DefaultPolicy().MinLength), v.AsInt64())
	v, ok = attrs.Value("auth.oauth.providers")
	require.True(t, ok)
	assert.Equal(t, []string{"google", "github", "microsoft"}, v.AsStringSlice())
}
