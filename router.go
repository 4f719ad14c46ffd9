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
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/seqmux/seqmux/compiler"
	"github.com/seqmux/seqmux/route"
)

// ErrorHandlerFunc handles a generic dispatch failure. The first
// registered callable to run claims the error.
type ErrorHandlerFunc func(c *Context, err error)

// HTTPErrorHandlerFunc handles an HTTP-level error outcome such as a
// 404 or 405. Every registered handler runs, in registration order.
type HTTPErrorHandlerFunc func(c *Context, code int, herr *HTTPError)

// FlashRecorder receives the message of an error consumed by a
// redirect entry on the error chain.
type FlashRecorder interface {
	Flash(message string)
}

// Router matches requests against an ordered route table and runs the
// handlers of every route that matches, in registration order. It is
// the root object of the package; create one with New or MustNew,
// register routes, then dispatch through Dispatch or ServeHTTP.
//
// Registration is not safe for use concurrently with dispatching.
type Router struct {
	routes   *route.Table
	factory  *route.Factory
	compiler *compiler.Compiler

	errorChain     []any // ErrorHandlerFunc or string redirect targets
	httpErrorChain []any // HTTPErrorHandlerFunc or *route.Route
	afterDispatch  []func(*Context)

	logger        *slog.Logger
	diagnostics   DiagnosticHandler
	observability ObservabilityRecorder
	flash         FlashRecorder

	h2c          bool
	readTimeout  time.Duration
	writeTimeout time.Duration
	idleTimeout  time.Duration

	serverMu sync.Mutex
	server   *http.Server
}

// New creates a Router with the given options applied.
func New(opts ...Option) (*Router, error) {
	r := &Router{
		routes:   route.NewTable(),
		factory:  route.NewFactory(),
		compiler: compiler.New(compiler.NewMemoryCache()),
		logger:   noopLogger(),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// MustNew is like New but panics on option failure. Intended for
// package-level router construction.
func MustNew(opts ...Option) *Router {
	r, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return r
}

func noopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Handle registers a route for the given path and methods and returns
// it for further configuration, such as naming. An empty method list
// matches every method.
//
// An empty path matches every request path. A path of "*" does the
// same but keeps the route out of 404/405 accounting. A path starting
// with "@" is a raw regular expression; "!@" negates it.
func (r *Router) Handle(path string, handler HandlerFunc, methods ...string) *route.Route {
	rt := r.factory.Build(handler, path, methods, "")
	r.routes.Add(rt)
	return rt
}

// GET registers a route for GET requests. HEAD requests also reach it
// through the implicit HEAD to GET fallback.
func (r *Router) GET(path string, handler HandlerFunc) *route.Route {
	return r.Handle(path, handler, http.MethodGet)
}

// POST registers a route for POST requests.
func (r *Router) POST(path string, handler HandlerFunc) *route.Route {
	return r.Handle(path, handler, http.MethodPost)
}

// PUT registers a route for PUT requests.
func (r *Router) PUT(path string, handler HandlerFunc) *route.Route {
	return r.Handle(path, handler, http.MethodPut)
}

// DELETE registers a route for DELETE requests.
func (r *Router) DELETE(path string, handler HandlerFunc) *route.Route {
	return r.Handle(path, handler, http.MethodDelete)
}

// PATCH registers a route for PATCH requests.
func (r *Router) PATCH(path string, handler HandlerFunc) *route.Route {
	return r.Handle(path, handler, http.MethodPatch)
}

// HEAD registers a route for HEAD requests.
func (r *Router) HEAD(path string, handler HandlerFunc) *route.Route {
	return r.Handle(path, handler, http.MethodHead)
}

// OPTIONS registers a route for OPTIONS requests.
func (r *Router) OPTIONS(path string, handler HandlerFunc) *route.Route {
	return r.Handle(path, handler, http.MethodOptions)
}

// Any registers a route for the given path under every method.
func (r *Router) Any(path string, handler HandlerFunc) *route.Route {
	return r.Handle(path, handler)
}

// Filter registers a handler that runs for every request without
// counting toward 404/405 accounting, the usual shape for middleware
// style pre-processing in an ordered table.
func (r *Router) Filter(handler HandlerFunc) *route.Route {
	return r.Handle(compiler.WildcardToken, handler)
}

// WithNamespace runs fn with the given prefix appended to the route
// factory namespace. Registrations inside fn get the prefix applied;
// nesting composes prefixes.
func (r *Router) WithNamespace(prefix string, fn func(*Router)) {
	previous := r.factory.Namespace()
	r.factory.AppendNamespace(prefix)
	defer r.factory.SetNamespace(previous)
	fn(r)
}

// OnError pushes a handler onto the generic error chain. Handlers run
// most recent first; the first callable claims the error.
func (r *Router) OnError(handler ErrorHandlerFunc) {
	r.errorChain = append(r.errorChain, handler)
}

// OnErrorRedirect pushes a redirect entry onto the generic error
// chain. When reached, the error message is flashed to the configured
// FlashRecorder, the response redirects to target, and the chain
// continues to older entries.
func (r *Router) OnErrorRedirect(target string) {
	r.errorChain = append(r.errorChain, target)
}

// OnHTTPError pushes a handler onto the HTTP-error chain. Unlike the
// generic chain, every registered entry runs.
func (r *Router) OnHTTPError(handler HTTPErrorHandlerFunc) {
	r.httpErrorChain = append(r.httpErrorChain, handler)
}

// OnHTTPErrorRoute pushes a route onto the HTTP-error chain. Its
// handler runs like a matched route's when an HTTP error occurs.
func (r *Router) OnHTTPErrorRoute(rt *route.Route) {
	r.httpErrorChain = append(r.httpErrorChain, rt)
}

// AfterDispatch registers a callback that runs after every dispatch,
// in registration order. Callback panics route through the generic
// error chain.
func (r *Router) AfterDispatch(fn func(*Context)) {
	r.afterDispatch = append(r.afterDispatch, fn)
}

// Routes returns the route table in registration order.
func (r *Router) Routes() *route.Table { return r.routes }

// Compiler returns the pattern compiler, exposing cache statistics.
func (r *Router) Compiler() *compiler.Compiler { return r.compiler }

// Logger returns the router's logger.
func (r *Router) Logger() *slog.Logger { return r.logger }

// PathFor reverses the named route into a concrete path using the
// given parameter values. Returns ErrRouteNotFound when no route
// carries the name; when several do, the most recently registered
// wins.
func (r *Router) PathFor(name string, params map[string]any) (string, error) {
	rt, ok := r.routes.FinalizeNames().Get(name)
	if !ok {
		return "", ErrRouteNotFound
	}
	return route.ReversePath(rt.Path(), params, true), nil
}
