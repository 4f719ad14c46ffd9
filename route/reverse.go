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
	"fmt"
	"strings"

	"github.com/seqmux/seqmux/compiler"
)

// ReversePath reconstructs a concrete path from an uncompiled pattern
// string by substituting placeholder blocks with parameter values.
//
// Each placeholder is replaced by the value under its name in params,
// keeping the delimiter prefix. An optional placeholder with no value
// drops out entirely, delimiter included. Anything else is left as the
// raw placeholder text. Values substitute as strings for scalar types
// only; non-scalar values substitute as empty.
//
// When the result is unchanged from the original, the original is a
// custom-regex path, and flattenRegex is true, the result collapses to
// "/", since a regular expression cannot generally be rendered back
// into a concrete path.
func ReversePath(pattern string, params map[string]any, flattenRegex bool) string {
	path := pattern
	if params != nil {
		path = compiler.EachPlaceholder(pattern, func(raw, pre, _, name string, optional bool) string {
			if name != "" {
				if v, ok := params[name]; ok {
					return pre + scalarString(v)
				}
			}
			if optional {
				return ""
			}
			return raw
		})
	}

	if flattenRegex && path == pattern && strings.HasPrefix(pattern, compiler.CustomRegexPrefix) {
		return "/"
	}
	return path
}

// scalarString renders scalar values for path substitution. Non-scalar
// values render as empty.
func scalarString(v any) string {
	switch v.(type) {
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return fmt.Sprint(v)
	default:
		return ""
	}
}
