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
	"fmt"

	"github.com/vishwanth-dev/prephired-main-sub000/internal/autherr"
)

// Error is a protocol-level OAuth2 error (RFC 6749 section 4.1.2.1), as
// returned to a redirect URI or rendered on the callback page.
type Error struct {
	Code        string `json:"error"`
	Description string `json:"error_description,omitempty"`
	URI         string `json:"error_uri,omitempty"`
	State       string `json:"state,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("oauth2 error: %s (%s)", e.Code, e.Description)
}

// OAuth2 standard error codes.
const (
	ErrInvalidRequest          = "invalid_request"
	ErrUnauthorizedClient      = "unauthorized_client"
	ErrAccessDenied            = "access_denied"
	ErrUnsupportedResponseType = "unsupported_response_type"
	ErrInvalidScope            = "invalid_scope"
	ErrServerError             = "server_error"
	ErrTemporarilyUnavailable  = "temporarily_unavailable"
)

// NewError creates a new protocol error.
func NewError(code, description string) *Error {
	return &Error{
		Code:        code,
		Description: description,
	}
}

// WithState returns a copy of e carrying the state parameter.
func (e *Error) WithState(state string) *Error {
	cp := *e
	cp.State = state
	return &cp
}

// ProtocolError maps the first error of an invalid initiation to its
// protocol form. It returns nil for a valid result.
func ProtocolError(res autherr.ValidationResult) *Error {
	first, ok := autherr.As(res.FirstError())
	if !ok {
		return nil
	}
	code := ErrInvalidRequest
	if c, ok := first.Metadata["oauth_error"].(string); ok && c != "" {
		code = c
	}
	return NewError(code, first.Message)
}
