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

package oauth2

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"slices"
	"strings"

	"github.com/vishwanth-dev/prephired-main-sub000/internal/autherr"
	"github.com/vishwanth-dev/prephired-main-sub000/internal/validate"
)

// InitiationForm is the request to start a social sign-in.
type InitiationForm struct {
	Provider            string
	RedirectURI         string
	State               string
	CodeChallenge       string
	CodeChallengeMethod string
	Scope               string
}

// Initiation is a validated, normalised sign-in request.
type Initiation struct {
	Provider      Provider
	RedirectURI   string
	State         string
	CodeChallenge string
	Scopes        []string
}

// ValidateInitiation checks provider, redirect URI, state, PKCE and scope
// in that order, collecting every error.
func ValidateInitiation(form InitiationForm, policy Policy) autherr.ValidationResult {
	_, res := buildInitiation(form, policy)
	return res
}

// ToInitiation validates form and returns the normalised request, or the
// first collected error.
func ToInitiation(form InitiationForm, policy Policy) (Initiation, error) {
	in, res := buildInitiation(form, policy)
	if !res.IsValid() {
		return Initiation{}, res.FirstError()
	}
	return in, nil
}

func buildInitiation(form InitiationForm, policy Policy) (Initiation, autherr.ValidationResult) {
	var c autherr.Collector
	var in Initiation

	provider := Provider(strings.ToLower(strings.TrimSpace(form.Provider)))
	switch {
	case provider == "":
		c.Add(autherr.Required("provider"))
	case !policy.allowsProvider(provider):
		c.Add(autherr.UnsupportedOAuthProvider(string(provider)))
	}
	in.Provider = provider

	redirect := strings.TrimSpace(form.RedirectURI)
	switch {
	case redirect == "":
		c.Add(autherr.Required("redirectUri"))
	case !validate.IsValidURL(redirect):
		c.Add(autherr.RedirectNotAllowed(redirect))
	case !isRedirectTarget(redirect):
		c.Add(autherr.RedirectNotAllowed(redirect))
	case policy.Redirects != nil && !policy.Redirects.Allows(redirect):
		c.Add(autherr.RedirectNotAllowed(redirect))
	}
	in.RedirectURI = redirect

	if !IsValidState(form.State, policy.minState()) {
		c.Add(autherr.InvalidOAuthState())
	}
	in.State = form.State

	if policy.RequirePKCE || form.CodeChallenge != "" {
		if reason := checkPKCE(form.CodeChallenge, form.CodeChallengeMethod); reason != "" {
			c.Add(autherr.InvalidPKCE(reason))
		}
	}
	in.CodeChallenge = form.CodeChallenge

	scopes := strings.Fields(form.Scope)
	for _, s := range scopes {
		if !IsValidScopeToken(s) || (len(policy.AllowedScopes) > 0 && !slices.Contains(policy.AllowedScopes, s)) {
			c.Add(autherr.InvalidScope(s))
		}
	}
	in.Scopes = scopes

	return in, c.Result()
}

func checkPKCE(challenge, method string) string {
	switch {
	case challenge == "":
		return "missing"
	case method != PKCEMethodS256:
		return "unsupported_method"
	}
	raw, err := base64.RawURLEncoding.DecodeString(challenge)
	if err != nil || len(raw) != sha256.Size {
		return "malformed"
	}
	return ""
}

// IsValidState reports whether state is long, URL-safe and varied enough to
// resist guessing.
func IsValidState(state string, minLength int) bool {
	if len(state) < minLength || len(state) > maxStateLength {
		return false
	}
	seen := make(map[byte]struct{}, 64)
	for i := 0; i < len(state); i++ {
		if !isUnreserved(state[i]) {
			return false
		}
		seen[state[i]] = struct{}{}
	}
	return len(seen) >= minStateDistinctChars
}

// IsValidScopeToken reports whether s is a scope-token per RFC 6749 section 3.3.
func IsValidScopeToken(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b < 0x21 || b > 0x7e || b == '"' || b == '\\' {
			return false
		}
	}
	return true
}

// IsValidCodeVerifier reports whether v is a PKCE code verifier (RFC 7636
// section 4.1): 43 to 128 unreserved characters.
func IsValidCodeVerifier(v string) bool {
	if len(v) < 43 || len(v) > 128 {
		return false
	}
	for i := 0; i < len(v); i++ {
		if !isUnreserved(v[i]) {
			return false
		}
	}
	return true
}

// S256Challenge derives the S256 code challenge for verifier.
func S256Challenge(verifier string) string {
	sum := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// VerifyPKCE reports whether verifier matches an S256 challenge.
func VerifyPKCE(challenge, verifier string) bool {
	if !IsValidCodeVerifier(verifier) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(S256Challenge(verifier)), []byte(challenge)) == 1
}

func isUnreserved(b byte) bool {
	return b >= 'A' && b <= 'Z' || b >= 'a' && b <= 'z' || b >= '0' && b <= '9' ||
		b == '-' || b == '.' || b == '_' || b == '~'
}
