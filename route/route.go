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

package route

import (
	"github.com/google/uuid"

	"github.com/seqmux/seqmux/compiler"
)

// Handler is the route callback, stored opaquely. The dispatch engine
// owns the invocation semantics; keeping the type loose here avoids an
// import cycle with the root package.
type Handler any

// Route is a registered (pattern, method filter, handler, metadata)
// tuple. Routes are built once at startup and read-only during
// dispatch; SetName is the only mutation and must happen before
// concurrent dispatching begins.
type Route struct {
	handler    Handler
	path       string
	methods    []string // nil means match any method
	countMatch bool
	name       string
	id         string
}

// New creates a route. An empty path is normalized to the wildcard
// token, so a route's path is never empty at rest. countMatch records
// whether a successful match should count toward 404/405 bookkeeping.
func New(handler Handler, path string, methods []string, countMatch bool) *Route {
	if path == "" {
		path = compiler.WildcardToken
	}
	return &Route{
		handler:    handler,
		path:       path,
		methods:    methods,
		countMatch: countMatch,
		id:         uuid.NewString(),
	}
}

// Handler returns the route callback.
func (r *Route) Handler() Handler { return r.handler }

// Path returns the route's pattern string.
func (r *Route) Path() string { return r.path }

// Methods returns the route's method filter. A nil or empty slice means
// the route matches any method.
func (r *Route) Methods() []string { return r.methods }

// CountMatch reports whether a match on this route counts toward
// "something matched" bookkeeping. False only for bare wildcard routes.
func (r *Route) CountMatch() bool { return r.countMatch }

// Name returns the declared route name, or "" when unnamed.
func (r *Route) Name() string { return r.name }

// SetName declares a name for reverse path lookup. Returns the route
// for chaining. Declare names before dispatching begins; the table
// re-keys named entries at the start of each dispatch.
func (r *Route) SetName(name string) *Route {
	r.name = name
	return r
}

// ID returns the route's stable identity key, unique per Route value.
func (r *Route) ID() string { return r.id }
