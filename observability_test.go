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
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

type stubRecorder struct {
	starts   int
	outcomes []string
	statuses []int
}

func (s *stubRecorder) OnDispatchStart(ctx context.Context, req *Request) (context.Context, any) {
	s.starts++
	return ctx, s
}

func (s *stubRecorder) OnDispatchEnd(_ context.Context, _ any, outcome string, status int) {
	s.outcomes = append(s.outcomes, outcome)
	s.statuses = append(s.statuses, status)
}

// TestObservabilityLifecycle tests the recorder hooks fire with the
// dispatch outcome
func TestObservabilityLifecycle(t *testing.T) {
	t.Parallel()
	rec := &stubRecorder{}
	r := MustNew(WithObservability(rec))
	r.GET("/x", func(c *Context) any { return nil })

	_, _, err := testDispatch(t, r, http.MethodGet, "/x", CaptureReturn)
	require.NoError(t, err)
	_, _, err = testDispatch(t, r, http.MethodGet, "/missing", CaptureReturn)
	require.NoError(t, err)
	_, _, err = testDispatch(t, r, http.MethodPost, "/x", CaptureReturn)
	require.NoError(t, err)

	assert.Equal(t, 3, rec.starts)
	assert.Equal(t, []string{OutcomeSuccess, OutcomeNotFound, OutcomeMethodNotAllowed}, rec.outcomes)
	assert.Equal(t, []int{http.StatusOK, http.StatusNotFound, http.StatusMethodNotAllowed}, rec.statuses)
}

// TestOTelRecorder tests span creation around dispatch
func TestOTelRecorder(t *testing.T) {
	t.Parallel()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	r := MustNew(WithObservability(NewOTelRecorder(WithTracer(tp.Tracer("test")))))
	r.GET("/traced", func(c *Context) any { return nil })

	_, _, err := testDispatch(t, r, http.MethodGet, "/traced", CaptureReturn)
	require.NoError(t, err)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "dispatch GET", spans[0].Name())
}

// TestOTelRecorderFilter tests span exclusion
func TestOTelRecorderFilter(t *testing.T) {
	t.Parallel()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	rec := NewOTelRecorder(
		WithTracer(tp.Tracer("test")),
		WithTraceFilter(func(req *Request) bool { return req.Path() != "/health" }),
	)
	r := MustNew(WithObservability(rec))
	r.GET("/health", func(c *Context) any { return nil })

	_, _, err := testDispatch(t, r, http.MethodGet, "/health", CaptureReturn)
	require.NoError(t, err)
	assert.Empty(t, sr.Ended())
}

// TestPrometheusRecorder tests dispatch counters
func TestPrometheusRecorder(t *testing.T) {
	t.Parallel()
	reg := prometheus.NewRegistry()
	rec := NewPrometheusRecorder(MetricsConfig{Registry: reg})

	r := MustNew(WithObservability(rec))
	r.GET("/x", func(c *Context) any { return nil })

	_, _, err := testDispatch(t, r, http.MethodGet, "/x", CaptureReturn)
	require.NoError(t, err)
	_, _, err = testDispatch(t, r, http.MethodGet, "/missing", CaptureReturn)
	require.NoError(t, err)

	assert.Equal(t, float64(1),
		testutil.ToFloat64(rec.dispatches.WithLabelValues("GET", OutcomeSuccess, "200")))
	assert.Equal(t, float64(1),
		testutil.ToFloat64(rec.dispatches.WithLabelValues("GET", OutcomeNotFound, "404")))
}

// TestCompilerStatsCollector tests the compile-cache metrics
func TestCompilerStatsCollector(t *testing.T) {
	t.Parallel()
	r := MustNew()
	r.GET("/posts/[i:id]", func(c *Context) any { return nil })

	_, _, err := testDispatch(t, r, http.MethodGet, "/posts/1", CaptureReturn)
	require.NoError(t, err)
	_, _, err = testDispatch(t, r, http.MethodGet, "/posts/2", CaptureReturn)
	require.NoError(t, err)

	collector := NewCompilerStatsCollector(r.Compiler())
	assert.Equal(t, 2, testutil.CollectAndCount(collector))

	stats := r.Compiler().Stats()
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, uint64(1), stats.Misses)
}
