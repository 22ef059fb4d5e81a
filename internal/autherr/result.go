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

package autherr

import "slices"

// ValidationResult is the outcome of a whole-form validation: either valid,
// or invalid with every collected error in deterministic field order.
type ValidationResult struct {
	errs []*Error
}

// Valid returns a successful result.
func Valid() ValidationResult {
	return ValidationResult{}
}

// Invalid returns a failed result holding errs. Nil entries are dropped.
func Invalid(errs ...*Error) ValidationResult {
	var c Collector
	for _, e := range errs {
		c.Add(e)
	}
	return c.Result()
}

// IsValid reports whether no rule was violated.
func (r ValidationResult) IsValid() bool {
	return len(r.errs) == 0
}

// Errors returns a copy of the collected errors.
func (r ValidationResult) Errors() []*Error {
	return slices.Clone(r.errs)
}

// FirstError returns the first collected error, or nil for a valid result.
func (r ValidationResult) FirstError() error {
	if len(r.errs) == 0 {
		return nil
	}
	return r.errs[0]
}

// HasCode reports whether any collected error carries code.
func (r ValidationResult) HasCode(code Code) bool {
	return slices.ContainsFunc(r.errs, func(e *Error) bool { return e.Code == code })
}

// Fields returns the fields with errors in first-seen order.
func (r ValidationResult) Fields() []string {
	var fields []string
	for _, e := range r.errs {
		if e.Field != "" && !slices.Contains(fields, e.Field) {
			fields = append(fields, e.Field)
		}
	}
	return fields
}

// FieldMessages groups error messages by field for form rendering.
func (r ValidationResult) FieldMessages() map[string][]string {
	out := make(map[string][]string, len(r.errs))
	for _, e := range r.errs {
		out[e.Field] = append(out[e.Field], e.Message)
	}
	return out
}

// Merge returns a result holding r's errors followed by other's.
func (r ValidationResult) Merge(other ValidationResult) ValidationResult {
	if other.IsValid() {
		return r
	}
	return ValidationResult{errs: append(slices.Clone(r.errs), other.errs...)}
}

// Collector accumulates errors in the order they are added.
// The zero value is ready to use.
type Collector struct {
	errs []*Error
}

// Add records err. Nil is ignored; errors outside the taxonomy are recorded as
// form-level validation errors so nothing is dropped.
func (c *Collector) Add(err error) {
	if err == nil {
		return
	}
	if e, ok := As(err); ok {
		if e != nil {
			c.errs = append(c.errs, e)
		}
		return
	}
	c.errs = append(c.errs, NewValidationError(FieldForm, err.Error()))
}

// Len returns the number of collected errors.
func (c *Collector) Len() int {
	return len(c.errs)
}

// Result returns the collected outcome.
func (c *Collector) Result() ValidationResult {
	return ValidationResult{errs: slices.Clone(c.errs)}
}
