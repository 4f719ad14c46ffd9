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
	"fmt"
	"net/http"
)

var (
	// ErrRouteNotFound indicates that no route carries the requested
	// name. Raised only by reverse path resolution.
	ErrRouteNotFound = errors.New("route not found")

	// ErrResponseLocked indicates that a mutation was attempted on a
	// locked response.
	ErrResponseLocked = errors.New("response is locked")

	// ErrResponseAlreadySent indicates that Send was called on a
	// response that has already gone out.
	ErrResponseAlreadySent = errors.New("response already sent")
)

// HTTPError is an expected, policy-level HTTP outcome: a 404, a 405, or
// an explicit abort raised by a handler. HTTP errors are routed through
// the HTTP-error chain rather than propagating to the dispatch caller.
type HTTPError struct {
	Code    int
	Message string
	Err     error
}

// NewHTTPError creates an HTTP error for a status code, using the
// standard status text as the message.
func NewHTTPError(code int) *HTTPError {
	return &HTTPError{Code: code, Message: http.StatusText(code)}
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%d %s", e.Code, e.Message)
	}
	return fmt.Sprintf("HTTP %d", e.Code)
}

func (e *HTTPError) Unwrap() error { return e.Err }

// UnhandledError wraps an error that reached the end of dispatch with
// no registered error handler to claim it. It is always fatal: the
// response status has been forced to 500 and buffered output discarded
// before this error reaches the caller.
type UnhandledError struct {
	Err error
}

func (e *UnhandledError) Error() string {
	return fmt.Sprintf("unhandled dispatch failure: %v", e.Err)
}

func (e *UnhandledError) Unwrap() error { return e.Err }
