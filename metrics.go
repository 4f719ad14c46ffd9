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
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/seqmux/seqmux/compiler"
)

// MetricsConfig configures the Prometheus dispatch recorder.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "seqmux").
	Namespace string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for dispatch duration.
	// Default: prometheus.DefBuckets.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

// PrometheusRecorder is an ObservabilityRecorder that counts
// dispatches by outcome and status and observes their duration.
type PrometheusRecorder struct {
	dispatches *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewPrometheusRecorder creates a metrics recorder registered with the
// configured registry. A zero MetricsConfig uses the defaults.
func NewPrometheusRecorder(cfg MetricsConfig) *PrometheusRecorder {
	if cfg.Namespace == "" {
		cfg.Namespace = "seqmux"
	}
	if cfg.Buckets == nil {
		cfg.Buckets = prometheus.DefBuckets
	}
	if cfg.Registry == nil {
		cfg.Registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(cfg.Registry)

	return &PrometheusRecorder{
		dispatches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Name:        "dispatches_total",
			Help:        "Total number of dispatches by method, outcome, and status",
			ConstLabels: cfg.ConstLabels,
		}, []string{"method", "outcome", "status"}),

		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   cfg.Namespace,
			Name:        "dispatch_duration_seconds",
			Help:        "Dispatch duration in seconds",
			ConstLabels: cfg.ConstLabels,
			Buckets:     cfg.Buckets,
		}, []string{"method"}),
	}
}

type dispatchSample struct {
	method string
	start  time.Time
}

// OnDispatchStart records the dispatch start time.
func (r *PrometheusRecorder) OnDispatchStart(ctx context.Context, req *Request) (context.Context, any) {
	return ctx, &dispatchSample{method: req.Method(), start: time.Now()}
}

// OnDispatchEnd records the dispatch counter and duration.
func (r *PrometheusRecorder) OnDispatchEnd(_ context.Context, state any, outcome string, status int) {
	s, ok := state.(*dispatchSample)
	if !ok {
		return
	}
	r.dispatches.WithLabelValues(s.method, outcome, strconv.Itoa(status)).Inc()
	r.duration.WithLabelValues(s.method).Observe(time.Since(s.start).Seconds())
}

// CompilerStatsCollector exposes a pattern compiler's cache hit and
// miss counters as Prometheus metrics.
type CompilerStatsCollector struct {
	c      *compiler.Compiler
	hits   *prometheus.Desc
	misses *prometheus.Desc
}

// NewCompilerStatsCollector creates a collector for c. Register it
// with a prometheus.Registerer to scrape compile-cache statistics.
func NewCompilerStatsCollector(c *compiler.Compiler) *CompilerStatsCollector {
	return &CompilerStatsCollector{
		c: c,
		hits: prometheus.NewDesc("seqmux_compile_cache_hits_total",
			"Pattern compilations answered from cache", nil, nil),
		misses: prometheus.NewDesc("seqmux_compile_cache_misses_total",
			"Pattern compilations that required translation", nil, nil),
	}
}

func (c *CompilerStatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.hits
	ch <- c.misses
}

func (c *CompilerStatsCollector) Collect(ch chan<- prometheus.Metric) {
	stats := c.c.Stats()
	ch <- prometheus.MustNewConstMetric(c.hits, prometheus.CounterValue, float64(stats.Hits))
	ch <- prometheus.MustNewConstMetric(c.misses, prometheus.CounterValue, float64(stats.Misses))
}
