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
	"net/http"
)

// Request is the router's view of an incoming HTTP request: the method,
// the query-stripped path, and a mutable named-parameter sink populated
// by pattern captures during dispatch.
//
// A Request is bound to a single dispatch call and is not safe for
// concurrent use.
type Request struct {
	raw   *http.Request
	named map[string]string
}

// NewRequest wraps an *http.Request for dispatching.
func NewRequest(r *http.Request) *Request {
	return &Request{raw: r}
}

// HTTP returns the underlying *http.Request.
func (r *Request) HTTP() *http.Request { return r.raw }

// Method returns the HTTP request method.
func (r *Request) Method() string { return r.raw.Method }

// Path returns the request path with the query string stripped, in
// its raw encoded form. Matching operates on the encoded path;
// captured parameters are percent-decoded only after a route matches.
func (r *Request) Path() string { return r.raw.URL.EscapedPath() }

// ParamsNamed returns the named parameters captured by route matching.
// The map is live; mutations are visible to later routes in the same
// dispatch.
func (r *Request) ParamsNamed() map[string]string {
	if r.named == nil {
		r.named = make(map[string]string)
	}
	return r.named
}

// MergeParams merges captured parameters into the named-parameter sink,
// overwriting existing keys.
func (r *Request) MergeParams(params map[string]string) {
	if len(params) == 0 {
		return
	}
	sink := r.ParamsNamed()
	for k, v := range params {
		sink[k] = v
	}
}

// Param looks up a request parameter across the underlying sources.
// Precedence on conflict: named captures, then cookies, then form body,
// then query string.
func (r *Request) Param(key string) string {
	if v, ok := r.named[key]; ok {
		return v
	}
	if ck, err := r.raw.Cookie(key); err == nil && ck.Value != "" {
		return ck.Value
	}
	if r.raw.PostForm == nil {
		// ParseForm is idempotent and tolerates bodyless requests.
		_ = r.raw.ParseForm()
	}
	if v := r.raw.PostForm.Get(key); v != "" {
		return v
	}
	return r.raw.URL.Query().Get(key)
}

// ParamDefault looks up a request parameter, falling back to def when
// no source provides a value.
func (r *Request) ParamDefault(key, def string) string {
	if v := r.Param(key); v != "" {
		return v
	}
	return def
}
