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

package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/vishwanth-dev/prephired-main-sub000/internal/autherr"
)

// Config holds tracing configuration
type Config struct {
	Enabled      bool    `yaml:"enabled" env:"TRACING_ENABLED" env-default:"false"`
	SamplingRate float64 `yaml:"sampling_rate" env:"TRACING_SAMPLING_RATE" env-default:"1"`
	// Endpoint overrides OTEL_EXPORTER_OTLP_TRACES_ENDPOINT when set.
	Endpoint string `yaml:"endpoint" env:"TRACING_ENDPOINT"`
}

// Identity describes the process whose checks are traced. Attributes land
// on the resource, so every span carries the policy it was evaluated under.
type Identity struct {
	Name       string
	Version    string
	Attributes []attribute.KeyValue
}

// Option customises New.
type Option func(*options)

type options struct {
	exporter sdktrace.SpanExporter
}

// WithExporter replaces the OTLP exporter. Spans are exported synchronously.
func WithExporter(e sdktrace.SpanExporter) Option {
	return func(o *options) { o.exporter = e }
}

// Tracer wraps OpenTelemetry tracer
type Tracer struct {
	tracer   trace.Tracer
	provider *sdktrace.TracerProvider
}

// New creates a new tracer instance
func New(ctx context.Context, cfg Config, id Identity, opts ...Option) (*Tracer, error) {
	if !cfg.Enabled {
		return &Tracer{
			tracer: otel.Tracer("noop"),
		}, nil
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var export sdktrace.TracerProviderOption
	if o.exporter != nil {
		export = sdktrace.WithSyncer(o.exporter)
	} else {
		var httpOpts []otlptracehttp.Option
		if cfg.Endpoint != "" {
			httpOpts = append(httpOpts, otlptracehttp.WithEndpointURL(cfg.Endpoint))
		}
		exporter, err := otlptracehttp.New(ctx, httpOpts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
		}
		export = sdktrace.WithBatcher(exporter)
	}

	res, err := Resource(ctx, id)
	if err != nil {
		return nil, err
	}

	samplingRate := cfg.SamplingRate
	if samplingRate <= 0 || samplingRate > 1 {
		samplingRate = 1.0
	}

	provider := sdktrace.NewTracerProvider(
		export,
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(samplingRate)),
	)

	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return &Tracer{
		tracer:   provider.Tracer(id.Name),
		provider: provider,
	}, nil
}

// Resource builds the span resource for id.
func Resource(ctx context.Context, id Identity) (*resource.Resource, error) {
	attrs := append([]attribute.KeyValue{
		semconv.ServiceName(id.Name),
		semconv.ServiceVersion(id.Version),
	}, id.Attributes...)
	res, err := resource.New(ctx, resource.WithAttributes(attrs...))
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	return res, nil
}

// RecordRejection marks span as failed with err's code, kind and field.
// A nil err leaves the span untouched.
func RecordRejection(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.SetStatus(codes.Error, err.Error())
	attrs := []attribute.KeyValue{attribute.String("auth.code", string(autherr.CodeOf(err)))}
	if e, ok := autherr.As(err); ok {
		attrs = append(attrs, attribute.String("auth.kind", e.Kind.String()))
		if e.Field != "" {
			attrs = append(attrs, attribute.String("auth.field", e.Field))
		}
	}
	span.SetAttributes(attrs...)
}

// Shutdown gracefully shuts down the tracer
func (t *Tracer) Shutdown(ctx context.Context) error {
	if t.provider != nil {
		return t.provider.Shutdown(ctx)
	}
	return nil
}

// Start starts a new span
func (t *Tracer) Start(ctx context.Context, spanName string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, spanName, opts...)
}

// GetTracer returns the underlying tracer
func (t *Tracer) GetTracer() trace.Tracer {
	return t.tracer
}
