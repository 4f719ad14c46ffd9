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
	"errors"
	"log/slog"
	"time"

	"github.com/seqmux/seqmux/compiler"
)

// Option configures a Router during construction.
type Option func(*Router) error

// WithLogger sets the router's structured logger. The default logger
// discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) error {
		if logger == nil {
			return errors.New("logger must not be nil")
		}
		r.logger = logger
		return nil
	}
}

// WithCompileCache replaces the pattern translation cache. The cache
// stores translated regular expression text keyed by pattern, so
// external stores such as Redis work; see the rediscache package.
func WithCompileCache(cache compiler.Cache) Option {
	return func(r *Router) error {
		if cache == nil {
			return errors.New("compile cache must not be nil")
		}
		r.compiler = compiler.New(cache)
		return nil
	}
}

// WithObservability installs a dispatch lifecycle recorder, such as
// the OpenTelemetry or Prometheus recorders in this package.
func WithObservability(rec ObservabilityRecorder) Option {
	return func(r *Router) error {
		if rec == nil {
			return errors.New("observability recorder must not be nil")
		}
		r.observability = rec
		return nil
	}
}

// WithDiagnostics installs a handler for router diagnostic events,
// such as deprecated registration forms.
func WithDiagnostics(h DiagnosticHandler) Option {
	return func(r *Router) error {
		if h == nil {
			return errors.New("diagnostic handler must not be nil")
		}
		r.diagnostics = h
		return nil
	}
}

// WithFlashRecorder sets the sink that receives error messages when a
// redirect entry on the error chain consumes an error.
func WithFlashRecorder(rec FlashRecorder) Option {
	return func(r *Router) error {
		if rec == nil {
			return errors.New("flash recorder must not be nil")
		}
		r.flash = rec
		return nil
	}
}

// WithH2C enables cleartext HTTP/2 on Serve.
func WithH2C() Option {
	return func(r *Router) error {
		r.h2c = true
		return nil
	}
}

// WithServerTimeouts sets the read, write, and idle timeouts used by
// Serve and ServeTLS.
func WithServerTimeouts(read, write, idle time.Duration) Option {
	return func(r *Router) error {
		if read < 0 || write < 0 || idle < 0 {
			return errors.New("server timeouts must not be negative")
		}
		r.readTimeout = read
		r.writeTimeout = write
		r.idleTimeout = idle
		return nil
	}
}
