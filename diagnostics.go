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

// DiagnosticEvent represents a router diagnostic or anomaly. These are
// informational events that may indicate configuration issues or use of
// deprecated registration forms.
//
// Diagnostic events are optional - the router functions correctly
// whether they are collected or not.
type DiagnosticEvent struct {
	Kind    DiagnosticKind
	Message string
	Fields  map[string]any // Structured context
}

// DiagnosticKind categorizes diagnostic events.
type DiagnosticKind string

const (
	// DiagDeprecatedErrorRoute fires when a route registered under the
	// legacy "404"/"405" literal path triggers its HTTP-error side
	// effect during dispatch. Register through OnHTTPError instead.
	DiagDeprecatedErrorRoute DiagnosticKind = "deprecated_error_route"

	// DiagH2CEnabled fires when Serve starts with cleartext HTTP/2.
	DiagH2CEnabled DiagnosticKind = "h2c_enabled"

	// DiagLockedWriteSuppressed fires when post-processing swallows a
	// mutation attempt on a locked response.
	DiagLockedWriteSuppressed DiagnosticKind = "locked_write_suppressed"
)

// DiagnosticHandler receives diagnostic events from the router.
// Implementations may log, emit metrics, trace events, or ignore them.
//
// This interface is optional - if not provided, diagnostics are
// silently dropped.
//
// Example with logging:
//
//	handler := seqmux.DiagnosticHandlerFunc(func(e seqmux.DiagnosticEvent) {
//	    slog.Warn(e.Message, "kind", e.Kind, "fields", e.Fields)
//	})
//	r := seqmux.MustNew(seqmux.WithDiagnostics(handler))
type DiagnosticHandler interface {
	OnDiagnostic(DiagnosticEvent)
}

// DiagnosticHandlerFunc is a function adapter for DiagnosticHandler.
type DiagnosticHandlerFunc func(DiagnosticEvent)

func (f DiagnosticHandlerFunc) OnDiagnostic(e DiagnosticEvent) {
	f(e)
}

func (r *Router) diagnostic(kind DiagnosticKind, message string, fields map[string]any) {
	if r.diagnostics == nil {
		return
	}
	r.diagnostics.OnDiagnostic(DiagnosticEvent{Kind: kind, Message: message, Fields: fields})
}
