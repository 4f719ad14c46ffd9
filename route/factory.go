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
	"strings"

	"github.com/seqmux/seqmux/compiler"
)

// Factory builds Route records, applying the current namespace prefix
// to each path. The namespace is a plain path prefix for literal and
// placeholder paths; custom-regex paths are rewritten so the namespace
// stays anchored in front of the expression.
//
// A Factory is not safe for concurrent use; routes are expected to be
// registered from one goroutine at startup.
type Factory struct {
	namespace string
}

// NewFactory creates a factory with an empty namespace.
func NewFactory() *Factory {
	return &Factory{}
}

// Namespace returns the current namespace prefix.
func (f *Factory) Namespace() string { return f.namespace }

// SetNamespace replaces the namespace prefix. Used to restore the
// previous namespace when a grouping scope ends.
func (f *Factory) SetNamespace(ns string) { f.namespace = ns }

// AppendNamespace extends the current namespace with another prefix.
func (f *Factory) AppendNamespace(ns string) { f.namespace += ns }

// Build constructs a route from a loose argument set. The path may be
// empty (wildcard), a placeholder pattern, an @-prefixed custom regex,
// or a !-negated form of either.
//
// Whether the route counts toward 404/405 bookkeeping is derived from
// the raw path alone: only the bare wildcard (or absent) path does not
// count. Callers cannot override this.
func (f *Factory) Build(handler Handler, path string, methods []string, name string) *Route {
	countMatch := !pathIsWildcard(path)
	rt := New(handler, f.preprocessPath(path), methods, countMatch)
	if name != "" {
		rt.SetName(name)
	}
	return rt
}

// preprocessPath applies the namespace prefix to a raw path.
func (f *Factory) preprocessPath(path string) string {
	if path == "" {
		path = compiler.WildcardToken
	}
	if f.namespace == "" {
		return path
	}

	switch {
	case strings.HasPrefix(path, compiler.CustomRegexPrefix), strings.HasPrefix(path, "!"+compiler.CustomRegexPrefix):
		negate := path[0] == '!'
		if negate {
			path = path[2:]
		} else {
			path = path[1:]
		}

		// An expression without a start anchor is a "search anywhere"
		// match; make that explicit before re-anchoring behind the
		// namespace.
		if strings.HasPrefix(path, "^") {
			path = path[1:]
		} else {
			path = ".*" + path
		}

		if negate {
			return compiler.CustomRegexPrefix + "^" + f.namespace + "(?!" + path + ")"
		}
		return compiler.CustomRegexPrefix + "^" + f.namespace + path

	case path == compiler.WildcardToken:
		// Wildcard under a namespace matches the namespace root and
		// everything below it, but nothing outside the namespace.
		return compiler.CustomRegexPrefix + "^" + f.namespace + "(/|$)"

	default:
		return f.namespace + path
	}
}

// pathIsWildcard reports whether the raw path is absent or the bare
// wildcard token.
func pathIsWildcard(path string) bool {
	return path == "" || path == compiler.WildcardToken
}
