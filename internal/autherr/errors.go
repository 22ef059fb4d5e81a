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

// Package autherr defines the typed error taxonomy of the authentication
// domain.
//
// Every failure is an *Error of one of three kinds:
//   - KindValidation: user input is syntactically or semantically wrong and is
//     always scoped to a form field. Safe to show to the end user verbatim.
//   - KindBusinessRule: input is well-formed but violates a stateful rule
//     (an existing account, a suspended tenant, an exhausted quota).
//   - KindSecurity: the operation is refused for security reasons. These must
//     be surfaced to the caller and audited independently; never retried
//     silently.
//
// Each error carries a stable machine-readable Code so callers branch on the
// code (or on an exported sentinel via errors.Is) instead of on messages.
package autherr

import (
	"errors"
	"log/slog"
	"maps"
	"slices"

	"github.com/samber/oops"
)

// Kind classifies an error within the taxonomy.
type Kind uint8

const (
	KindValidation Kind = iota + 1
	KindBusinessRule
	KindSecurity
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindBusinessRule:
		return "business_rule"
	case KindSecurity:
		return "security"
	default:
		return "unknown"
	}
}

// Error is a domain error. Instances are immutable once constructed.
type Error struct {
	Kind     Kind
	Code     Code
	Field    string
	Message  string
	Metadata map[string]any

	// cause is the oops error carrying domain, code, context and stack trace.
	cause error
}

func newError(kind Kind, code Code, field, message string, metadata map[string]any) *Error {
	md := make(map[string]any, len(metadata))
	maps.Copy(md, metadata)

	b := oops.In(kind.String()).Code(string(code))
	if field != "" {
		b = b.With("field", field)
	}
	for _, k := range slices.Sorted(maps.Keys(md)) {
		b = b.With(k, md[k])
	}

	return &Error{
		Kind:     kind,
		Code:     code,
		Field:    field,
		Message:  message,
		Metadata: md,
		cause:    b.Errorf("%s", message),
	}
}

// NewValidationError returns a field-scoped validation error with code
// VALIDATION_ERROR.
func NewValidationError(field, message string) *Error {
	if field == "" {
		field = FieldForm
	}
	return newError(KindValidation, CodeValidation, field, message, nil)
}

// NewBusinessRuleError returns a business-rule violation with a caller-chosen code.
func NewBusinessRuleError(code Code, message string, metadata map[string]any) *Error {
	return newError(KindBusinessRule, code, "", message, metadata)
}

// NewSecurityViolationError returns a security violation with a caller-chosen code.
func NewSecurityViolationError(code Code, message string, metadata map[string]any) *Error {
	return newError(KindSecurity, code, "", message, metadata)
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the oops cause so oops.AsOops and structured loggers can
// reach the code, context and stack trace.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches another *Error by code, and by field when the target sets one.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t == nil {
		return false
	}
	if e.Code != t.Code {
		return false
	}
	return t.Field == "" || t.Field == e.Field
}

// WithField returns a copy of e scoped to another form field.
func (e *Error) WithField(field string) *Error {
	return newError(e.Kind, e.Code, field, e.Message, e.Metadata)
}

// WithMetadata returns a copy of e with key set in its metadata.
func (e *Error) WithMetadata(key string, value any) *Error {
	md := make(map[string]any, len(e.Metadata)+1)
	maps.Copy(md, e.Metadata)
	md[key] = value
	return newError(e.Kind, e.Code, e.Field, e.Message, md)
}

// LogValue implements slog.LogValuer.
func (e *Error) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("kind", e.Kind.String()),
		slog.String("code", string(e.Code)),
		slog.String("message", e.Message),
	}
	if e.Field != "" {
		attrs = append(attrs, slog.String("field", e.Field))
	}
	return slog.GroupValue(attrs...)
}

// As returns the *Error in err's chain, if any.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// CodeOf returns the code of the *Error in err's chain, or "" when err is not
// a domain error.
func CodeOf(err error) Code {
	if e, ok := As(err); ok {
		return e.Code
	}
	return ""
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	return isKind(err, KindValidation)
}

// IsBusinessRule reports whether err is a business-rule violation.
func IsBusinessRule(err error) bool {
	return isKind(err, KindBusinessRule)
}

// IsSecurityViolation reports whether err is a security violation.
func IsSecurityViolation(err error) bool {
	return isKind(err, KindSecurity)
}

func isKind(err error, kind Kind) bool {
	e, ok := As(err)
	return ok && e.Kind == kind
}
