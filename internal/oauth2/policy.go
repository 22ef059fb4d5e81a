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
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/gobwas/glob"
)

// Provider is an external identity provider.
type Provider string

const (
	ProviderGoogle    Provider = "google"
	ProviderGitHub    Provider = "github"
	ProviderMicrosoft Provider = "microsoft"
	ProviderApple     Provider = "apple"
	ProviderLinkedIn  Provider = "linkedin"
)

// KnownProviders lists the providers the platform can integrate with.
var KnownProviders = []Provider{ProviderGoogle, ProviderGitHub, ProviderMicrosoft, ProviderApple, ProviderLinkedIn}

// PKCE and state constraints.
const (
	PKCEMethodS256        = "S256"
	DefaultMinStateLength = 32
	maxStateLength        = 512
	minStateDistinctChars = 10
)

// RedirectAllowlist matches redirect URIs against glob patterns of the form
// scheme://host[:port][/path]. The URI is parsed first and each component is
// matched on its own: the scheme and port exactly, the host with "." as the
// separator and the path with "/". "*" stays within one host label or path
// segment; "**" spans any number of them. The query string is not matched.
//
//	https://*.example.com/auth/callback
//	https://app.example.com/**
type RedirectAllowlist struct {
	patterns []string
	rules    []redirectRule
}

type redirectRule struct {
	scheme string
	port   string
	host   glob.Glob
	path   glob.Glob
}

// NewRedirectAllowlist compiles patterns. Empty patterns are rejected.
func NewRedirectAllowlist(patterns ...string) (*RedirectAllowlist, error) {
	a := &RedirectAllowlist{}
	for i, p := range patterns {
		if strings.TrimSpace(p) == "" {
			return nil, fmt.Errorf("redirect pattern %d: empty pattern", i)
		}
		r, err := compileRedirectRule(p)
		if err != nil {
			return nil, fmt.Errorf("redirect pattern %d (%q): %w", i, p, err)
		}
		a.patterns = append(a.patterns, p)
		a.rules = append(a.rules, r)
	}
	return a, nil
}

func compileRedirectRule(pattern string) (redirectRule, error) {
	scheme, rest, ok := strings.Cut(strings.TrimSpace(pattern), "://")
	if !ok || scheme == "" {
		return redirectRule{}, errors.New("missing scheme")
	}
	authority, path := rest, "/"
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		authority, path = rest[:i], rest[i:]
	}
	if strings.ContainsAny(authority, "@#") || strings.Contains(path, "#") {
		return redirectRule{}, errors.New("userinfo and fragments are not allowed")
	}
	host, port := authority, ""
	if i := strings.LastIndexByte(authority, ':'); i >= 0 && !strings.Contains(authority[i:], "]") {
		host, port = authority[:i], authority[i+1:]
	}
	if host == "" {
		return redirectRule{}, errors.New("missing host")
	}

	hg, err := glob.Compile(strings.ToLower(host), '.')
	if err != nil {
		return redirectRule{}, fmt.Errorf("host: %w", err)
	}
	pg, err := glob.Compile(path, '/')
	if err != nil {
		return redirectRule{}, fmt.Errorf("path: %w", err)
	}
	return redirectRule{scheme: strings.ToLower(scheme), port: port, host: hg, path: pg}, nil
}

func (r redirectRule) match(u *url.URL) bool {
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	return u.Scheme == r.scheme &&
		u.Port() == r.port &&
		r.host.Match(strings.ToLower(u.Hostname())) &&
		r.path.Match(path)
}

// parseRedirect parses uri as an absolute redirect target. URIs carrying
// userinfo or a fragment are refused (RFC 6749 section 3.1.2).
func parseRedirect(uri string) (*url.URL, bool) {
	if strings.Contains(uri, "#") {
		return nil, false
	}
	u, err := url.Parse(uri)
	if err != nil || u.Opaque != "" || u.User != nil || u.Host == "" {
		return nil, false
	}
	u.Scheme = strings.ToLower(u.Scheme)
	return u, true
}

func isRedirectTarget(uri string) bool {
	_, ok := parseRedirect(uri)
	return ok
}

// Allows reports whether uri matches any pattern. A nil or empty allow-list
// allows nothing.
func (a *RedirectAllowlist) Allows(uri string) bool {
	if a == nil {
		return false
	}
	u, ok := parseRedirect(uri)
	if !ok {
		return false
	}
	for _, r := range a.rules {
		if r.match(u) {
			return true
		}
	}
	return false
}

// Patterns returns the source patterns.
func (a *RedirectAllowlist) Patterns() []string {
	if a == nil {
		return nil
	}
	return slices.Clone(a.patterns)
}

// Policy configures which OAuth initiations are acceptable.
type Policy struct {
	Providers []Provider
	// Redirects, when set, restricts redirect URIs. Nil only requires a
	// valid public http(s) URL.
	Redirects *RedirectAllowlist
	// RequirePKCE makes a S256 code challenge mandatory.
	RequirePKCE bool
	// AllowedScopes restricts requested scopes. Empty allows any well-formed scope.
	AllowedScopes []string
	// MinStateLength defaults to DefaultMinStateLength when zero.
	MinStateLength int
}

// DefaultPolicy enables the common providers and requires PKCE.
func DefaultPolicy() Policy {
	return Policy{
		Providers:   []Provider{ProviderGoogle, ProviderGitHub, ProviderMicrosoft},
		RequirePKCE: true,
	}
}

func (p Policy) allowsProvider(provider Provider) bool {
	return slices.Contains(p.Providers, provider)
}

func (p Policy) minState() int {
	if p.MinStateLength > 0 {
		return p.MinStateLength
	}
	return DefaultMinStateLength
}
