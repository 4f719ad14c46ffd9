// Copyright 2026 The Seqmux Authors
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

package seqmux

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name for dispatch spans.
const defaultTracerName = "seqmux"

// OTelRecorder is an ObservabilityRecorder that opens an OpenTelemetry
// span around each dispatch and closes it with the outcome and status.
type OTelRecorder struct {
	tracer trace.Tracer
	filter func(*Request) bool
}

// OTelOption configures an OTelRecorder.
type OTelOption func(*OTelRecorder)

// WithTracer sets the tracer. The default comes from the global tracer
// provider under the name "seqmux".
func WithTracer(tracer trace.Tracer) OTelOption {
	return func(r *OTelRecorder) {
		r.tracer = tracer
	}
}

// WithTraceFilter sets a predicate deciding which requests to trace.
// Rejected requests get no span and no context enrichment.
func WithTraceFilter(filter func(*Request) bool) OTelOption {
	return func(r *OTelRecorder) {
		r.filter = filter
	}
}

// NewOTelRecorder creates a tracing recorder.
func NewOTelRecorder(opts ...OTelOption) *OTelRecorder {
	r := &OTelRecorder{
		tracer: otel.Tracer(defaultTracerName),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// OnDispatchStart opens a span for the request. Filtered requests
// return a nil state so OnDispatchEnd is skipped.
func (r *OTelRecorder) OnDispatchStart(ctx context.Context, req *Request) (context.Context, any) {
	if r.filter != nil && !r.filter(req) {
		return ctx, nil
	}
	ctx, span := r.tracer.Start(ctx, "dispatch "+req.Method(),
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("http.request.method", req.Method()),
			attribute.String("url.path", req.Path()),
		),
	)
	return ctx, span
}

// OnDispatchEnd records the outcome and status on the span and ends
// it.
func (r *OTelRecorder) OnDispatchEnd(_ context.Context, state any, outcome string, status int) {
	span, ok := state.(trace.Span)
	if !ok {
		return
	}
	span.SetAttributes(
		attribute.String("seqmux.outcome", outcome),
		attribute.Int("http.response.status_code", status),
	)
	if outcome == OutcomeUnhandled || status >= 500 {
		span.SetStatus(codes.Error, outcome)
	}
	span.End()
}
