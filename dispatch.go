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
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/seqmux/seqmux/compiler"
	"github.com/seqmux/seqmux/route"
)

// CaptureMode controls how output written by handlers becomes the
// response body.
type CaptureMode int

const (
	// CaptureNone streams handler output straight to the transport as
	// it is written.
	CaptureNone CaptureMode = iota

	// CaptureReturn buffers handler output and returns it as the
	// Dispatch result instead of sending it.
	CaptureReturn

	// CaptureReplace buffers handler output and overwrites the
	// response body with it.
	CaptureReplace

	// CapturePrepend buffers handler output and prepends it to the
	// response body.
	CapturePrepend

	// CaptureAppend buffers handler output and appends it to the
	// response body.
	CaptureAppend
)

// Method match states for one route against one request.
const (
	methodUnknown = iota // route declares no method filter
	methodYes
	methodNo
)

// Dispatch runs one full pass of matching req against the route table,
// invoking the handlers of every matching route in registration order
// and resolving the response. The returned string is the captured
// handler output when capture is CaptureReturn, empty otherwise.
//
// Route names are finalized before iteration, so names declared since
// the previous dispatch are picked up. When send is true and nothing
// has sent the response yet, Dispatch sends it before returning.
//
// A non-nil error means the dispatch failed with no error handler
// claiming the failure. The response status has been forced to 500 and
// buffered output discarded; callers must not assume a partial body
// survived.
func (r *Router) Dispatch(req *Request, res *Response, send bool, capture CaptureMode) (string, error) {
	if req == nil {
		return "", errors.New("request must not be nil")
	}
	if res == nil {
		res = NewResponse(nil)
	}

	ctx := req.raw.Context()
	var obsState any
	if r.observability != nil {
		ctx, obsState = r.observability.OnDispatchStart(ctx, req)
		req.raw = req.raw.WithContext(ctx)
	}
	outcome := OutcomeSuccess
	defer func() {
		if r.observability != nil && obsState != nil {
			r.observability.OnDispatchEnd(ctx, obsState, outcome, res.Status())
		}
	}()

	var buf bytes.Buffer
	sink := io.Writer(&buf)
	if capture == CaptureNone {
		sink = res.transport()
	}

	c := &Context{
		req:     req,
		res:     res,
		router:  r,
		app:     NewDataBag(),
		matched: r.routes.CloneEmpty(),
		out:     sink,
		logger:  r.logger,
	}

	loopErr := r.matchLoop(c)

	if loopErr == nil {
		if c.matched.IsEmpty() && len(c.methods) > 0 {
			r.suppressLocked(res.SetHeader("Allow", strings.Join(c.methods, ", ")))
			// OPTIONS requests never 405; the Allow header is answer
			// enough.
			if !strings.EqualFold(req.Method(), http.MethodOptions) {
				loopErr = NewHTTPError(http.StatusMethodNotAllowed)
			}
		} else if c.matched.IsEmpty() {
			loopErr = NewHTTPError(http.StatusNotFound)
		}
	}

	if loopErr != nil {
		var herr *HTTPError
		if errors.As(loopErr, &herr) {
			switch herr.Code {
			case http.StatusNotFound:
				outcome = OutcomeNotFound
			case http.StatusMethodNotAllowed:
				outcome = OutcomeMethodNotAllowed
			}
			if cerr := r.handleHTTPError(c, herr); cerr != nil {
				outcome = OutcomeUnhandled
				res.forceStatus(http.StatusInternalServerError)
				buf.Reset()
				return "", cerr
			}
		} else if uerr := r.handleError(c, loopErr); uerr != nil {
			outcome = OutcomeUnhandled
			res.forceStatus(http.StatusInternalServerError)
			buf.Reset()
			return "", uerr
		}
	}

	var captured string
	switch capture {
	case CaptureReturn:
		captured = buf.String()
	case CaptureReplace:
		r.suppressLocked(res.SetBody(buf.String()))
	case CapturePrepend:
		r.suppressLocked(res.Prepend(buf.String()))
	case CaptureAppend:
		r.suppressLocked(res.Append(buf.String()))
	}

	// HEAD responses carry no body whatever the capture mode produced.
	if strings.EqualFold(req.Method(), http.MethodHead) {
		r.suppressLocked(res.SetBody(""))
	}

	if aerr := r.runAfterDispatch(c); aerr != nil {
		if uerr := r.handleError(c, aerr); uerr != nil {
			outcome = OutcomeUnhandled
			res.forceStatus(http.StatusInternalServerError)
			buf.Reset()
			return "", uerr
		}
	}

	if send && !res.Sent() {
		if serr := res.Send(); serr != nil {
			return captured, serr
		}
	}
	return captured, nil
}

// matchLoop iterates the route table in order, matching and invoking.
// Returns nil on normal completion (including a SkipRemaining halt), an
// *HTTPError raised by a handler, or a fatal failure such as a pattern
// compilation error.
func (r *Router) matchLoop(c *Context) error {
	reqMethod := c.req.Method()
	reqPath := c.req.Path()
	skip := 0

	for _, rt := range r.routes.FinalizeNames().All() {
		if skip > 0 {
			skip--
			continue
		}

		methodState := matchMethod(reqMethod, rt.Methods())
		possible := methodState != methodNo

		rawPath := rt.Path()
		if rawPath == "404" || rawPath == "405" {
			if r.legacyErrorRoute(c, rt, rawPath) {
				continue
			}
			// Condition not met: falls through and literal-matches,
			// which a real request path essentially never satisfies.
		}

		pat := rawPath
		negate := strings.HasPrefix(pat, "!")
		if negate {
			pat = pat[1:]
		}

		var params map[string]string
		var rawMatch bool
		switch {
		case pat == compiler.WildcardToken:
			rawMatch = true
		case strings.HasPrefix(pat, compiler.CustomRegexPrefix):
			m, err := r.compiler.CompileRegex(pat)
			if err != nil {
				return err
			}
			params, rawMatch = m.Match(reqPath)
		default:
			b := literalBoundary(pat)
			if b < 0 {
				rawMatch = pat == reqPath
			} else if len(reqPath) >= b && reqPath[:b] == pat[:b] {
				m, err := r.compiler.Compile(pat)
				if err != nil {
					return err
				}
				params, rawMatch = m.Match(reqPath)
			}
		}

		if rawMatch == negate {
			continue
		}

		if possible {
			if len(params) > 0 {
				c.req.MergeParams(decodeParams(params))
			}
			halt, err := r.runHandler(c, rt)
			if err != nil {
				return err
			}
			if halt != nil {
				switch halt.Kind {
				case HaltSkipThis:
					continue
				case HaltSkipNext:
					skip = halt.N
				case HaltSkipRemaining:
					return nil
				default:
					return halt
				}
			}
			if pat != compiler.WildcardToken && rt.CountMatch() {
				c.matched.Add(rt)
			}
		}
		if rt.CountMatch() {
			c.methods = mergeMethods(c.methods, rt.Methods())
		}
	}
	return nil
}

// legacyErrorRoute handles the deprecated "404"/"405" literal path
// form: when the corresponding error condition already holds, the
// route is pushed onto the HTTP-error chain so it runs during
// post-loop resolution, and the loop iteration is consumed. Reports
// whether the form fired.
func (r *Router) legacyErrorRoute(c *Context, rt *route.Route, rawPath string) bool {
	fired := (rawPath == "404" && c.matched.IsEmpty() && len(c.methods) == 0) ||
		(rawPath == "405" && c.matched.IsEmpty() && len(c.methods) > 0)
	if !fired {
		return false
	}
	r.logger.Warn("deprecated error-route literal path; register the handler through OnHTTPError instead",
		"path", rawPath)
	r.diagnostic(DiagDeprecatedErrorRoute,
		"route registered under a legacy 404/405 literal path",
		map[string]any{"path": rawPath})
	r.httpErrorChain = append(r.httpErrorChain, rt)
	return true
}

// runHandler invokes a route handler, converting control-flow panics
// into halt signals and everything else into errors.
func (r *Router) runHandler(c *Context, rt *route.Route) (halt *DispatchHalted, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			if h, ok := rec.(*DispatchHalted); ok {
				halt = h
				return
			}
			err = recoveredError(rec)
		}
	}()

	fn, ok := rt.Handler().(HandlerFunc)
	if !ok {
		raw, okRaw := rt.Handler().(func(*Context) any)
		if !okRaw {
			return nil, fmt.Errorf("route %q has unsupported handler type %T", rt.Path(), rt.Handler())
		}
		fn = raw
	}
	if ret := fn(c); ret != nil {
		r.appendReturned(c.res, ret)
	}
	return nil, nil
}

// appendReturned renders a handler return value into the response
// body; a returned *Response replaces the composed state wholesale.
// Locked responses swallow the write; that is expected when an error
// chain has already sealed the response.
func (r *Router) appendReturned(res *Response, ret any) {
	if other, ok := ret.(*Response); ok {
		if err := res.Adopt(other); errors.Is(err, ErrResponseLocked) {
			r.diagnostic(DiagLockedWriteSuppressed,
				"handler response replacement dropped on locked response", nil)
		}
		return
	}
	s, ok := ret.(string)
	if !ok {
		s = fmt.Sprint(ret)
	}
	if err := res.Append(s); errors.Is(err, ErrResponseLocked) {
		r.diagnostic(DiagLockedWriteSuppressed,
			"handler return value dropped on locked response", nil)
	}
}

// handleHTTPError resolves an HTTP-level outcome: sets the status
// unless the response is locked, runs every HTTP-error chain entry in
// registration order, then locks the response. An error raised by the
// chain itself supersedes the HTTP outcome and is returned.
func (r *Router) handleHTTPError(c *Context, herr *HTTPError) error {
	if !c.res.Locked() {
		_ = c.res.SetStatus(herr.Code)
	}
	for _, entry := range r.httpErrorChain {
		switch h := entry.(type) {
		case HTTPErrorHandlerFunc:
			if err := r.runHTTPErrorFunc(c, h, herr); err != nil {
				return err
			}
		case func(*Context, int, *HTTPError):
			if err := r.runHTTPErrorFunc(c, h, herr); err != nil {
				return err
			}
		case *route.Route:
			if _, err := r.runHandler(c, h); err != nil {
				return err
			}
		}
	}
	c.res.Lock()
	return nil
}

func (r *Router) runHTTPErrorFunc(c *Context, fn func(*Context, int, *HTTPError), herr *HTTPError) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = recoveredError(rec)
		}
	}()
	fn(c, herr.Code, herr)
	return nil
}

// handleError walks the generic error chain, most recent entry first.
// The first callable entry claims the error and handling stops.
// Redirect entries flash the error message, redirect the response, and
// let the walk continue. An empty chain makes the failure unhandled:
// the caller gets an *UnhandledError wrapping the original.
func (r *Router) handleError(c *Context, dispatchErr error) error {
	if len(r.errorChain) == 0 {
		return &UnhandledError{Err: dispatchErr}
	}
	for i := len(r.errorChain) - 1; i >= 0; i-- {
		switch h := r.errorChain[i].(type) {
		case ErrorHandlerFunc:
			h(c, dispatchErr)
			return nil
		case func(*Context, error):
			h(c, dispatchErr)
			return nil
		case string:
			if r.flash != nil {
				r.flash.Flash(dispatchErr.Error())
			}
			r.suppressLocked(c.res.Redirect(h, http.StatusFound))
		}
	}
	return nil
}

func (r *Router) runAfterDispatch(c *Context) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = recoveredError(rec)
		}
	}()
	for _, fn := range r.afterDispatch {
		fn(c)
	}
	return nil
}

// suppressLocked drops an ErrResponseLocked from the engine's own
// post-processing writes. Lock contention there is an expected
// ordering artifact, not a failure.
func (r *Router) suppressLocked(err error) {
	if errors.Is(err, ErrResponseLocked) {
		r.diagnostic(DiagLockedWriteSuppressed,
			"response mutation suppressed after lock", nil)
	}
}

// ServeHTTP adapts the router to net/http. Handler output is appended
// to the response body and the response is always sent.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	res := NewResponse(w)
	if _, err := r.Dispatch(NewRequest(req), res, true, CaptureAppend); err != nil {
		r.logger.Error("dispatch failed",
			"error", err, "method", req.Method, "path", req.URL.Path)
		if !res.Sent() {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	}
}

// matchMethod compares the request method against a route's declared
// methods, case-insensitively. A HEAD request additionally matches a
// declared GET. Returns methodUnknown when the route has no filter.
func matchMethod(reqMethod string, declared []string) int {
	if len(declared) == 0 {
		return methodUnknown
	}
	isHead := strings.EqualFold(reqMethod, http.MethodHead)
	for _, m := range declared {
		if strings.EqualFold(reqMethod, m) {
			return methodYes
		}
		if isHead && strings.EqualFold(m, http.MethodGet) {
			return methodYes
		}
	}
	return methodNo
}

// literalBoundary returns the index where a pattern stops being plain
// literal text: a placeholder bracket, a group, a dot, or a character
// about to be quantified. Returns -1 for a fully literal pattern.
func literalBoundary(pattern string) int {
	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '[', '(', '.':
			return i
		}
		if i+1 < len(pattern) {
			switch pattern[i+1] {
			case '?', '+', '*', '{':
				return i
			}
		}
	}
	return -1
}

// decodeParams percent-decodes captured values. Decoding happens
// strictly after matching so patterns always see the encoded path; a
// value that fails to decode is kept raw.
func decodeParams(params map[string]string) map[string]string {
	out := make(map[string]string, len(params))
	for k, v := range params {
		if d, err := url.PathUnescape(v); err == nil {
			out[k] = d
		} else {
			out[k] = v
		}
	}
	return out
}

// mergeMethods merges declared methods into the matched-method set,
// dropping empties and duplicates, preserving first-seen order.
func mergeMethods(have, add []string) []string {
	for _, m := range add {
		if m == "" {
			continue
		}
		dup := false
		for _, h := range have {
			if strings.EqualFold(h, m) {
				dup = true
				break
			}
		}
		if !dup {
			have = append(have, m)
		}
	}
	return have
}

// recoveredError normalizes a recovered panic value into an error.
func recoveredError(rec any) error {
	if err, ok := rec.(error); ok {
		return err
	}
	return fmt.Errorf("handler panic: %v", rec)
}
