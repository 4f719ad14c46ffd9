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
	"fmt"
	"io"
	"log/slog"

	"github.com/seqmux/seqmux/route"
)

// HandlerFunc is the callable a route runs when it matches. A non-nil
// return value is rendered into the dispatch output: strings verbatim,
// everything else through fmt.Sprint.
type HandlerFunc func(*Context) any

// Context is the per-route invocation surface handed to handlers. It
// bundles the request, the response, the shared data bag, and the
// dispatch bookkeeping a handler may inspect, plus the control-flow
// verbs that steer route iteration.
//
// A Context is bound to a single handler invocation and is not safe
// for concurrent use.
type Context struct {
	req     *Request
	res     *Response
	router  *Router
	app     *DataBag
	matched *route.Table
	methods []string

	out    io.Writer
	logger *slog.Logger
}

// Request returns the dispatched request.
func (c *Context) Request() *Request { return c.req }

// Response returns the response under composition.
func (c *Context) Response() *Response { return c.res }

// Router returns the dispatching router.
func (c *Context) Router() *Router { return c.router }

// App returns the per-dispatch shared data bag.
func (c *Context) App() *DataBag { return c.app }

// Matched returns the routes matched so far in this dispatch. The table
// grows as the loop proceeds; handlers observe a snapshot-in-progress.
func (c *Context) Matched() *route.Table { return c.matched }

// MethodsMatched returns the methods that have path-matched so far,
// deduplicated, in first-seen order.
func (c *Context) MethodsMatched() []string { return c.methods }

// Param looks up a request parameter. See Request.Param for the
// precedence across sources.
func (c *Context) Param(key string) string { return c.req.Param(key) }

// Logger returns the dispatch logger.
func (c *Context) Logger() *slog.Logger { return c.logger }

// Write streams bytes into the dispatch output sink.
func (c *Context) Write(p []byte) (int, error) {
	return c.out.Write(p)
}

// WriteString streams a string into the dispatch output sink.
func (c *Context) WriteString(s string) (int, error) {
	return io.WriteString(c.out, s)
}

// Printf formats into the dispatch output sink.
func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

// PathFor reverses a named route into a concrete path. See
// Router.PathFor.
func (c *Context) PathFor(name string, params map[string]any) (string, error) {
	return c.router.PathFor(name, params)
}

// SkipThis abandons the rest of the current route and moves on to the
// next one. The current route still counts as matched.
func (c *Context) SkipThis() {
	panic(&DispatchHalted{Kind: HaltSkipThis})
}

// Skip bypasses the next n routes entirely. They are not matched
// against and do not appear in the matched table.
func (c *Context) Skip(n int) {
	panic(&DispatchHalted{Kind: HaltSkipNext, N: n})
}

// Stop ends route iteration and proceeds straight to post-loop
// resolution.
func (c *Context) Stop() {
	panic(&DispatchHalted{Kind: HaltSkipRemaining})
}

// Abort raises an HTTP error with the given status code, ending the
// current handler and routing control to the HTTP-error chain.
func (c *Context) Abort(code int) {
	panic(NewHTTPError(code))
}

// AbortError raises err as a dispatch failure. An *HTTPError value is
// routed through the HTTP-error chain; anything else goes through the
// generic error chain.
func (c *Context) AbortError(err error) {
	panic(err)
}
