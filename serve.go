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
	"net/http"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

const (
	defaultReadTimeout  = 10 * time.Second
	defaultWriteTimeout = 30 * time.Second
	defaultIdleTimeout  = 120 * time.Second
)

// Serve starts an HTTP server on addr, dispatching every request
// through the router. Cleartext HTTP/2 is enabled when the router was
// built with WithH2C.
//
// This method follows the stdlib pattern: it blocks until the server
// exits. For graceful shutdown, call Shutdown from another goroutine.
//
// The server carries read, write, and idle timeouts so a slow client
// cannot pin a connection forever; WithServerTimeouts overrides the
// defaults.
func (r *Router) Serve(addr string) error {
	h := http.Handler(r)
	if r.h2c {
		h = h2c.NewHandler(h, &http2.Server{})
		r.diagnostic(DiagH2CEnabled,
			"h2c enabled; use only in dev or behind a trusted LB", nil)
	}

	srv := r.newServer(addr, h)
	r.serverMu.Lock()
	r.server = srv
	r.serverMu.Unlock()

	return srv.ListenAndServe()
}

// ServeTLS starts an HTTPS server on addr. HTTP/2 is enabled
// automatically over TLS via ALPN.
func (r *Router) ServeTLS(addr, certFile, keyFile string) error {
	srv := r.newServer(addr, r)
	r.serverMu.Lock()
	r.server = srv
	r.serverMu.Unlock()

	return srv.ListenAndServeTLS(certFile, keyFile)
}

// Shutdown gracefully shuts down the running server without
// interrupting active connections. No-op when no server is running.
func (r *Router) Shutdown(ctx context.Context) error {
	r.serverMu.Lock()
	srv := r.server
	r.serverMu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

func (r *Router) newServer(addr string, h http.Handler) *http.Server {
	read, write, idle := r.readTimeout, r.writeTimeout, r.idleTimeout
	if read == 0 {
		read = defaultReadTimeout
	}
	if write == 0 {
		write = defaultWriteTimeout
	}
	if idle == 0 {
		idle = defaultIdleTimeout
	}
	return &http.Server{
		Addr:         addr,
		Handler:      h,
		ReadTimeout:  read,
		WriteTimeout: write,
		IdleTimeout:  idle,
	}
}
