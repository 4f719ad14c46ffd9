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

// Package seqmux is an ordered-dispatch HTTP router. Routes are
// matched in registration order and every matching route runs, so a
// table reads top to bottom like a request pipeline: filters first,
// then endpoints, then fallbacks.
//
// Patterns mix literal text with typed placeholders:
//
//	r := seqmux.MustNew()
//	r.GET("/posts/[i:id]", func(c *seqmux.Context) any {
//	    return "post " + c.Param("id")
//	})
//	r.Serve(":8080")
//
// Placeholder types: i (digits), a (alphanumeric), h (hex), s (slug),
// * (lazy wildcard), ** (greedy wildcard), and a default of one path
// segment. A trailing ? makes a placeholder optional together with
// its delimiter, so "/file.[:ext]?" matches both "/file.txt" and
// "/file". Paths starting with "@" are raw regular expressions, "!"
// negates a match, and "*" matches everything.
//
// Handlers steer iteration through the Context: SkipThis, Skip, and
// Stop move the dispatch loop, Abort raises an HTTP error into the
// error chains registered with OnError and OnHTTPError. Requests that
// match no route resolve to 404, or 405 with an Allow header when
// only the method was wrong.
//
// Named routes reverse into concrete paths:
//
//	r.GET("/dogs/[i:dog_id]/collars", collars).SetName("collars")
//	p, _ := r.PathFor("collars", map[string]any{"dog_id": 7})
//
// Dispatch can run standalone through ServeHTTP or Serve, or embedded
// via Dispatch with a capture mode that returns, replaces, prepends,
// or appends handler output.
package seqmux
