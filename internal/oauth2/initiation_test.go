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

package oauth2_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vishwanth-dev/prephired-main-sub000/internal/autherr"
	"github.com/vishwanth-dev/prephired-main-sub000/internal/oauth2"
)

const (
	// RFC 7636 appendix B.
	verifier  = "dBjftJeZ4CVP-mB92K27uhbUJU1p1r_wW1gFWFOEjXk"
	challenge = "E9Melhoa2OwvFrEMTJguCHaoeK1t8URWbuGJSstw-cM"
	state     = "x7Kp2Qm9Vt4Lr8Zs1Nc6Bh3Jf5Gd0Wy-"
)

func validForm() oauth2.InitiationForm {
	return oauth2.InitiationForm{
		Provider:            "Google",
		RedirectURI:         "https://app.example.com/auth/callback",
		State:               state,
		CodeChallenge:       challenge,
		CodeChallengeMethod: oauth2.PKCEMethodS256,
		Scope:               "openid email profile",
	}
}

func policy(t *testing.T) oauth2.Policy {
	t.Helper()
	allow, err := oauth2.NewRedirectAllowlist("https://*.example.com/auth/callback")
	require.NoError(t, err)
	p := oauth2.DefaultPolicy()
	p.Redirects = allow
	return p
}

// TestPurpose: Verifies the PKCE helpers against the RFC 7636 test vector.
// Scope: Unit Test
// Expected: The derived challenge matches; wrong verifiers fail.
// Test Case ID: OAU-01
func TestOAuth2_PKCE(t *testing.T) {
	assert.Equal(t, challenge, oauth2.S256Challenge(verifier))
	assert.True(t, oauth2.VerifyPKCE(challenge, verifier))
	assert.False(t, oauth2.VerifyPKCE(challenge, strings.Replace(verifier, "d", "e", 1)))
	assert.False(t, oauth2.VerifyPKCE(challenge, "short"))
	assert.False(t, oauth2.IsValidCodeVerifier(strings.Repeat("a", 129)))
}

// TestPurpose: Verifies a well-formed initiation is accepted and normalised.
// Scope: Unit Test
// Expected: Provider is lower-cased and scopes split.
// Test Case ID: OAU-02
func TestOAuth2_ToInitiation(t *testing.T) {
	in, err := oauth2.ToInitiation(validForm(), policy(t))
	require.NoError(t, err)
	assert.Equal(t, oauth2.ProviderGoogle, in.Provider)
	assert.Equal(t, []string{"openid", "email", "profile"}, in.Scopes)
}

// TestPurpose: Verifies each initiation check reports its own error.
// Scope: Unit Test
// Security: Open redirects, CSRF via weak state and PKCE downgrade are rejected.
// Expected: The listed code is present for each broken field.
// Test Case ID: OAU-03
func TestOAuth2_ValidateInitiation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*oauth2.InitiationForm)
		code   autherr.Code
	}{
		{"disabled provider", func(f *oauth2.InitiationForm) { f.Provider = "apple" }, autherr.CodeUnsupportedProvider},
		{"unknown provider", func(f *oauth2.InitiationForm) { f.Provider = "myspace" }, autherr.CodeUnsupportedProvider},
		{"missing provider", func(f *oauth2.InitiationForm) { f.Provider = "" }, autherr.CodeRequired},
		{"foreign redirect", func(f *oauth2.InitiationForm) { f.RedirectURI = "https://evil.com/auth/callback" }, autherr.CodeRedirectNotAllowed},
		{"wildcard does not cross labels", func(f *oauth2.InitiationForm) {
			f.RedirectURI = "https://evil.com.example.com/auth/callback"
		}, autherr.CodeRedirectNotAllowed},
		{"loopback redirect", func(f *oauth2.InitiationForm) { f.RedirectURI = "http://localhost/auth/callback" }, autherr.CodeRedirectNotAllowed},
		{"short state", func(f *oauth2.InitiationForm) { f.State = "abc" }, autherr.CodeInvalidOAuthState},
		{"low entropy state", func(f *oauth2.InitiationForm) { f.State = strings.Repeat("ab", 20) }, autherr.CodeInvalidOAuthState},
		{"plain pkce", func(f *oauth2.InitiationForm) { f.CodeChallengeMethod = "plain" }, autherr.CodeInvalidPKCE},
		{"missing pkce", func(f *oauth2.InitiationForm) { f.CodeChallenge = "" }, autherr.CodeInvalidPKCE},
		{"malformed pkce", func(f *oauth2.InitiationForm) { f.CodeChallenge = "not-a-digest" }, autherr.CodeInvalidPKCE},
		{"bad scope token", func(f *oauth2.InitiationForm) { f.Scope = `openid "quoted"` }, autherr.CodeInvalidScope},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)
			res := oauth2.ValidateInitiation(form, policy(t))
			require.False(t, res.IsValid())
			assert.True(t, res.HasCode(tt.code), "codes: %v", res.Fields())
		})
	}
}

// TestPurpose: Verifies optional PKCE, scope allow-lists and protocol error mapping.
// Scope: Unit Test
// Expected: Without RequirePKCE a missing challenge passes; disallowed scopes map to invalid_scope.
// Test Case ID: OAU-04
func TestOAuth2_PolicyOptions(t *testing.T) {
	p := oauth2.Policy{Providers: []oauth2.Provider{oauth2.ProviderGitHub}, AllowedScopes: []string{"read:user"}}
	form := oauth2.InitiationForm{
		Provider:    "github",
		RedirectURI: "https://app.example.com/cb",
		State:       state,
		Scope:       "read:user",
	}
	assert.True(t, oauth2.ValidateInitiation(form, p).IsValid())

	form.Scope = "repo"
	res := oauth2.ValidateInitiation(form, p)
	perr := oauth2.ProtocolError(res)
	require.NotNil(t, perr)
	assert.Equal(t, oauth2.ErrInvalidScope, perr.Code)
	assert.Equal(t, "s1", perr.WithState("s1").State)
	assert.Empty(t, perr.State)

	assert.Nil(t, oauth2.ProtocolError(autherr.Valid()))

	_, err := oauth2.NewRedirectAllowlist("https://[unclosed")
	assert.Error(t, err)
	_, err = oauth2.NewRedirectAllowlist(" ")
	assert.Error(t, err)

	var nilList *oauth2.RedirectAllowlist
	assert.False(t, nilList.Allows("https://app.example.com"))
}

// TestPurpose: Verifies that redirect allow-list patterns match the parsed host and path, not the raw string.
// Scope: Unit Test
// Security: Prevents open redirects that hide the real host before a query or fragment (RFC 6749 section 3.1.2).
// Expected: Smuggled hosts, userinfo, fragments, scheme and port changes are refused; genuine subdomains and queries pass.
// Test Case ID: OAU-05
func TestOAuth2_RedirectAllowlistComponents(t *testing.T) {
	allow, err := oauth2.NewRedirectAllowlist("https://*.example.com/auth/callback", "https://app.example.com:8443/**")
	require.NoError(t, err)

	tests := []struct {
		name    string
		uri     string
		allowed bool
	}{
		{"subdomain", "https://tenant.example.com/auth/callback", true},
		{"upper-case host", "https://Tenant.Example.COM/auth/callback", true},
		{"query is not matched", "https://tenant.example.com/auth/callback?next=%2Fhome", true},
		{"any path on port", "https://app.example.com:8443/a/b/c", true},
		{"host hidden before fragment", "https://evil#.example.com/auth/callback", false},
		{"host hidden before query", "https://3232235777?.example.com/auth/callback", false},
		{"ip literal hidden before query", "https://[2001:db8::1]?.example.com/auth/callback", false},
		{"userinfo", "https://tenant.example.com@evil.com/auth/callback", false},
		{"userinfo on allowed host", "https://user@tenant.example.com/auth/callback", false},
		{"fragment on allowed uri", "https://tenant.example.com/auth/callback#frag", false},
		{"scheme downgrade", "http://tenant.example.com/auth/callback", false},
		{"unexpected port", "https://tenant.example.com:444/auth/callback", false},
		{"missing port", "https://app.example.com/a", false},
		{"extra path segment", "https://tenant.example.com/auth/callback/x", false},
		{"bare apex", "https://example.com/auth/callback", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, allow.Allows(tt.uri))
		})
	}

	for _, uri := range []string{
		"https://evil#.example.com/auth/callback",
		"https://3232235777?.example.com/auth/callback",
		"https://[2001:db8::1]?.example.com/auth/callback",
	} {
		form := validForm()
		form.RedirectURI = uri
		res := oauth2.ValidateInitiation(form, policy(t))
		assert.False(t, res.IsValid(), uri)
		assert.True(t, res.HasCode(autherr.CodeRedirectNotAllowed), uri)
	}

	form := validForm()
	form.RedirectURI = "https://app.example.com/cb#token"
	res := oauth2.ValidateInitiation(form, oauth2.DefaultPolicy())
	assert.True(t, res.HasCode(autherr.CodeRedirectNotAllowed))

	for _, bad := range []string{"app.example.com/cb", "https:///cb", "https://user@app.example.com/cb"} {
		_, err := oauth2.NewRedirectAllowlist(bad)
		assert.Error(t, err, bad)
	}
}
