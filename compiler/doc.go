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

// Package compiler translates route patterns into regular-expression
// matchers.
//
// A pattern mixes literal text with typed placeholder blocks:
//
//	/users/[i:id]
//	/posts/[:title]
//	/file.[:ext]?
//	/archive/[a]/[h:digest]
//
// Placeholder types select a character class: i (digits), a
// (alphanumeric), h (hex), s (slug characters), * (lazy wildcard),
// ** (greedy wildcard), and the default [^/]+? when the type is empty.
// An unrecognized type is treated as an inline character class and used
// verbatim. A trailing ? makes the block optional together with its
// delimiter, so /file.[:ext]? matches both /file.txt and /file.
//
// Two path forms bypass translation: the * wildcard token, which
// matches unconditionally, and @-prefixed paths, which are compiled as
// verbatim regular expressions.
//
// Compiled matchers are memoized per Compiler. An optional Cache
// collaborator shares the translated regex text across processes;
// package rediscache provides a Redis-backed implementation.
package compiler
