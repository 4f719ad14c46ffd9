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
)

// Dispatch outcomes reported to ObservabilityRecorder implementations.
const (
	// OutcomeSuccess means at least one countable route matched and ran.
	OutcomeSuccess = "success"

	// OutcomeNotFound means no route path-matched the request.
	OutcomeNotFound = "not_found"

	// OutcomeMethodNotAllowed means routes path-matched but none
	// accepted the request method.
	OutcomeMethodNotAllowed = "method_not_allowed"

	// OutcomeUnhandled means a failure reached the caller with no error
	// handler claiming it.
	OutcomeUnhandled = "unhandled"
)

// ObservabilityRecorder provides lifecycle hooks around dispatch.
// Implementations typically combine metrics collection, distributed
// tracing, and access logging; OTelRecorder and PrometheusRecorder in
// this package cover the tracing and metrics pillars.
//
// Lifecycle:
//  1. Router calls OnDispatchStart(ctx, req) -> (enrichedCtx, state)
//     before route iteration begins. The enriched context replaces the
//     request context for the rest of the dispatch. Return a nil state
//     to exclude the request; OnDispatchEnd is then skipped but the
//     context enrichment still applies.
//  2. Handlers execute.
//  3. Router calls OnDispatchEnd(ctx, state, outcome, status) after
//     post-loop resolution, with one of the Outcome constants and the
//     final response status code.
//
// Thread safety: all methods must be safe for concurrent use.
type ObservabilityRecorder interface {
	OnDispatchStart(ctx context.Context, req *Request) (context.Context, any)
	OnDispatchEnd(ctx context.Context, state any, outcome string, status int)
}
