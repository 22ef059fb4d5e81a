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

// Package event defines the immutable authentication domain events and the
// single factory that builds them. Events are handed to a Sink; this package
// never transports or stores them.
package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/vishwanth-dev/prephired-main-sub000/internal/id"
)

// ErrNilPayload is returned by Create and CreateAt when no payload is given.
var ErrNilPayload = errors.New("event payload is nil")

// Event is an immutable domain event record. On the wire the timestamp and
// metadata travel inside the payload object:
//
//	{"id":"...","type":"UserRegistered","payload":{"userId":"u1","timestamp":"...","metadata":{}}}
type Event struct {
	ID        string
	Type      Type
	Payload   Payload
	Timestamp time.Time
	Metadata  map[string]any
}

// MarshalJSON encodes e with timestamp and metadata merged into the payload.
func (e Event) MarshalJSON() ([]byte, error) {
	fields := map[string]json.RawMessage{}
	if e.Payload != nil {
		raw, err := json.Marshal(e.Payload)
		if err != nil {
			return nil, fmt.Errorf("marshal %s payload: %w", e.Type, err)
		}
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, fmt.Errorf("%s payload is not an object: %w", e.Type, err)
		}
	}
	ts, err := json.Marshal(e.Timestamp)
	if err != nil {
		return nil, err
	}
	md := e.Metadata
	if md == nil {
		md = map[string]any{}
	}
	mdRaw, err := json.Marshal(md)
	if err != nil {
		return nil, fmt.Errorf("marshal %s metadata: %w", e.Type, err)
	}
	fields["timestamp"] = ts
	fields["metadata"] = mdRaw

	return json.Marshal(struct {
		ID      string                     `json:"id"`
		Type    Type                       `json:"type"`
		Payload map[string]json.RawMessage `json:"payload"`
	}{e.ID, e.Type, fields})
}

// Create builds an event stamped with the current UTC time.
func Create(p Payload, metadata map[string]any) (Event, error) {
	return CreateAt(time.Now(), p, metadata)
}

// CreateAt builds an event stamped with at. The type is derived from the
// payload, the id is a fresh UUIDv7, and metadata is copied, defaulting to
// an empty map.
func CreateAt(at time.Time, p Payload, metadata map[string]any) (Event, error) {
	if p == nil {
		return Event{}, ErrNilPayload
	}
	md := make(map[string]any, len(metadata))
	maps.Copy(md, metadata)
	return Event{
		ID:        id.NewUUIDv7(),
		Type:      p.EventType(),
		Payload:   p,
		Timestamp: at.UTC(),
		Metadata:  md,
	}, nil
}

// Category returns the category of the event's type.
func (e Event) Category() Category {
	c, _ := CategoryOf(e.Type)
	return c
}

// UserID returns the user the event is about, or "".
func (e Event) UserID() string {
	if u, ok := e.Payload.(interface{ EventUserID() string }); ok {
		return u.EventUserID()
	}
	return ""
}

// TenantID returns the tenant the event happened in, or "".
func (e Event) TenantID() string {
	if t, ok := e.Payload.(interface{ EventTenantID() string }); ok {
		return t.EventTenantID()
	}
	return ""
}

// IsSecurityEvent reports whether e belongs to the security category.
func IsSecurityEvent(e Event) bool {
	return e.Category() == CategorySecurity
}

// IsTenantEvent reports whether e carries a tenant id.
func IsTenantEvent(e Event) bool {
	return e.TenantID() != ""
}

// IsUserEvent reports whether e carries a user id.
func IsUserEvent(e Event) bool {
	return e.UserID() != ""
}

// Sink receives events for forwarding to analytics or audit pipelines.
type Sink interface {
	Publish(ctx context.Context, e Event) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, e Event) error

// Publish calls f.
func (f SinkFunc) Publish(ctx context.Context, e Event) error { return f(ctx, e) }

// Recorder is an in-memory Sink, safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Publish appends e.
func (r *Recorder) Publish(_ context.Context, e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

// Events returns a copy of everything published so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}
