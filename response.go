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
	"net/http"
)

// Response accumulates status, headers, and a buffered body until Send
// writes them to the transport. After Lock, every mutation attempt
// returns ErrResponseLocked; the dispatch engine locks the response
// once the error chain has run so downstream code cannot mutate it
// accidentally.
//
// A Response is bound to a single dispatch call and is not safe for
// concurrent use.
type Response struct {
	w      http.ResponseWriter
	status int
	body   []byte
	locked bool
	sent   bool
}

// NewResponse wraps an http.ResponseWriter. The writer may be nil for
// responses that are composed but never sent (tests, capture-only
// dispatches).
func NewResponse(w http.ResponseWriter) *Response {
	return &Response{w: w, status: http.StatusOK}
}

// Status returns the response status code.
func (r *Response) Status() int { return r.status }

// SetStatus sets the response status code.
func (r *Response) SetStatus(code int) error {
	if r.locked {
		return ErrResponseLocked
	}
	r.status = code
	return nil
}

// Header returns the response header map. Mutating headers on a locked
// response is tolerated by the map itself; use SetHeader for the
// lock-checked path.
func (r *Response) Header() http.Header {
	if r.w != nil {
		return r.w.Header()
	}
	return http.Header{}
}

// SetHeader sets a response header.
func (r *Response) SetHeader(name, value string) error {
	if r.locked {
		return ErrResponseLocked
	}
	if r.w != nil {
		r.w.Header().Set(name, value)
	}
	return nil
}

// Body returns the buffered response body.
func (r *Response) Body() string { return string(r.body) }

// SetBody replaces the buffered response body.
func (r *Response) SetBody(s string) error {
	if r.locked {
		return ErrResponseLocked
	}
	r.body = []byte(s)
	return nil
}

// Append appends to the buffered response body.
func (r *Response) Append(s string) error {
	if r.locked {
		return ErrResponseLocked
	}
	r.body = append(r.body, s...)
	return nil
}

// Prepend prepends to the buffered response body.
func (r *Response) Prepend(s string) error {
	if r.locked {
		return ErrResponseLocked
	}
	r.body = append([]byte(s), r.body...)
	return nil
}

// Redirect sets the Location header and a redirect status code.
func (r *Response) Redirect(target string, code int) error {
	if err := r.SetHeader("Location", target); err != nil {
		return err
	}
	return r.SetStatus(code)
}

// Lock freezes the response against further mutation.
func (r *Response) Lock() { r.locked = true }

// Unlock lifts the mutation freeze.
func (r *Response) Unlock() { r.locked = false }

// Locked reports whether the response is frozen.
func (r *Response) Locked() bool { return r.locked }

// Sent reports whether Send has already run.
func (r *Response) Sent() bool { return r.sent }

// Send writes status, headers, and the buffered body to the transport,
// then locks the response. Sending twice returns
// ErrResponseAlreadySent.
func (r *Response) Send() error {
	if r.sent {
		return ErrResponseAlreadySent
	}
	r.sent = true
	r.locked = true
	if r.w == nil {
		return nil
	}
	r.w.WriteHeader(r.status)
	if len(r.body) > 0 {
		if _, err := r.w.Write(r.body); err != nil {
			return err
		}
	}
	return nil
}

// Adopt copies the composed state of another response, keeping this
// response's transport binding. Dispatch uses it when a handler
// returns a *Response it built itself.
func (r *Response) Adopt(other *Response) error {
	if r.locked {
		return ErrResponseLocked
	}
	r.status = other.status
	r.body = append(r.body[:0], other.body...)
	return nil
}

// forceStatus sets the status regardless of lock state. Dispatch uses
// it when sealing an unhandled failure as a 500.
func (r *Response) forceStatus(code int) { r.status = code }

// transport returns the raw writer for streamed (uncaptured) handler
// output, or a discard sink when the response has no transport.
func (r *Response) transport() io.Writer {
	if r.w == nil {
		return io.Discard
	}
	return r.w
}
