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

package compiler

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

// WildcardToken is the path value that matches every request
// unconditionally. Wildcard paths never reach the compiler.
const WildcardToken = "*"

// CustomRegexPrefix marks a path as a verbatim regular expression.
// The remainder after the marker is compiled as-is, unanchored, so a
// custom expression searches anywhere in the path unless it carries
// its own anchors.
const CustomRegexPrefix = "@"

// placeholderRegex splits a route pattern into literal runs and typed
// placeholder blocks of the form prefix[type:name]?. The prefix is a
// literal delimiter (slash or dot) immediately preceding the block.
var placeholderRegex = regexp.MustCompile(`(/|\.|)\[([^:\]]*)(?::([^:\]]*))?\](\?|)`)

// matchTypes maps placeholder type identifiers to character classes.
// RE2 has no possessive quantifiers, so the historically possessive
// classes compile to plain greedy quantifiers; under a non-backtracking
// engine the matched language is the same.
var matchTypes = map[string]string{
	"i":  `[0-9]+`,
	"a":  `[0-9A-Za-z]+`,
	"h":  `[0-9A-Fa-f]+`,
	"s":  `[0-9A-Za-z_-]+`,
	"*":  `.+?`,
	"**": `.+`,
	"":   `[^/]+?`,
}

// PatternError reports a route pattern that could not become a valid
// matcher. It carries the original pattern text and wraps the regexp
// engine's diagnostic.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("route pattern %q failed to compile: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }

// Cache is an optional external collaborator that stores translated
// regex text keyed by the original pattern literal. A cache may be
// shared across processes; its absence changes only compilation cost,
// never match results.
type Cache interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

// Matcher is a compiled route pattern: a regular expression plus the
// capture groups it extracts. Placeholder patterns are anchored at both
// ends; custom expressions keep whatever anchoring they declare.
//
// A matcher may carry a negated continuation expression. RE2 rejects
// lookaheads, but the one lookahead form namespaced negated routes
// produce, ^prefix(?!rest), decomposes into a positive prefix match
// and a continuation match that must fail.
type Matcher struct {
	re  *regexp.Regexp
	not *regexp.Regexp
}

// Match runs the matcher against a request path. On success it returns
// the captured parameters: named groups under their names, positional
// groups under their decimal index. Values are returned exactly as they
// appear in the path; percent-decoding is the caller's concern.
func (m *Matcher) Match(path string) (map[string]string, bool) {
	sub := m.re.FindStringSubmatch(path)
	if sub == nil {
		return nil, false
	}
	if m.not != nil && m.not.MatchString(path) {
		return nil, false
	}
	names := m.re.SubexpNames()
	var params map[string]string
	for i := 1; i < len(sub); i++ {
		if sub[i] == "" {
			continue
		}
		if params == nil {
			params = make(map[string]string, len(sub)-1)
		}
		if names[i] != "" {
			params[names[i]] = sub[i]
		} else {
			params[strconv.Itoa(i)] = sub[i]
		}
	}
	return params, true
}

// String returns the regex text the matcher was compiled from.
func (m *Matcher) String() string { return m.re.String() }

// Stats reports how often the compiler answered from its caches.
type Stats struct {
	Hits   uint64
	Misses uint64
}

// Compiler turns route patterns into matchers. Compiled matchers are
// memoized per compiler instance, keyed by the literal pattern text.
// The optional external Cache additionally shares the translated regex
// text, skipping re-translation in other processes.
//
// The memo is a sync.Map: concurrent dispatches may race to compile the
// same pattern and both store their result. That duplication is safe;
// last write wins and every stored matcher is equivalent.
type Compiler struct {
	cache  Cache
	memo   sync.Map // pattern literal -> *Matcher
	hits   atomic.Uint64
	misses atomic.Uint64
}

// New creates a compiler. The cache collaborator may be nil.
func New(cache Cache) *Compiler {
	return &Compiler{cache: cache}
}

// Compile translates a placeholder pattern into an anchored matcher.
// Returns a *PatternError when the produced expression is rejected by
// the regexp engine.
func (c *Compiler) Compile(pattern string) (*Matcher, error) {
	if m, ok := c.memo.Load(pattern); ok {
		c.hits.Add(1)
		return m.(*Matcher), nil
	}
	c.misses.Add(1)

	text, cached := c.translated(pattern)
	re, err := regexp.Compile(text)
	if err != nil {
		return nil, &PatternError{Pattern: pattern, Err: err}
	}
	if !cached && c.cache != nil {
		c.cache.Set(pattern, text)
	}

	m := &Matcher{re: re}
	c.memo.Store(pattern, m)
	return m, nil
}

// CompileRegex compiles a custom @-prefixed path. The marker is
// stripped and the remainder used verbatim, unanchored.
func (c *Compiler) CompileRegex(path string) (*Matcher, error) {
	if m, ok := c.memo.Load(path); ok {
		c.hits.Add(1)
		return m.(*Matcher), nil
	}
	c.misses.Add(1)

	expr := strings.TrimPrefix(path, CustomRegexPrefix)
	m, err := compileExpr(expr)
	if err != nil {
		return nil, &PatternError{Pattern: path, Err: err}
	}
	c.memo.Store(path, m)
	return m, nil
}

// compileExpr compiles a custom expression, decomposing the anchored
// negative-lookahead form ^prefix(?!rest) that RE2 cannot express
// directly. Lookaheads in any other position are rejected by the
// engine and surface as a compilation failure.
func compileExpr(expr string) (*Matcher, error) {
	if i := strings.Index(expr, "(?!"); i >= 0 && strings.HasSuffix(expr, ")") {
		head, rest := expr[:i], expr[i+3:len(expr)-1]
		re, err := regexp.Compile(head)
		if err != nil {
			return nil, err
		}
		not, err := regexp.Compile(head + "(?:" + rest + ")")
		if err != nil {
			return nil, err
		}
		return &Matcher{re: re, not: not}, nil
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &Matcher{re: re}, nil
}

// Stats returns cache hit/miss counters for the compiler.
func (c *Compiler) Stats() Stats {
	return Stats{Hits: c.hits.Load(), Misses: c.misses.Load()}
}

// translated returns the regex text for a placeholder pattern,
// consulting the external cache first.
func (c *Compiler) translated(pattern string) (text string, fromCache bool) {
	if c.cache != nil {
		if v, ok := c.cache.Get(pattern); ok {
			return v, true
		}
	}
	return Translate(pattern), false
}

// Translate converts a placeholder pattern into anchored regex text
// without compiling it. Literal runs are escaped for metacharacters;
// each placeholder becomes a capture group wrapped together with its
// delimiter prefix, so optional groups drop the delimiter when absent.
func Translate(pattern string) string {
	var b strings.Builder
	b.WriteByte('^')

	last := 0
	for _, idx := range placeholderRegex.FindAllStringSubmatchIndex(pattern, -1) {
		b.WriteString(regexp.QuoteMeta(pattern[last:idx[0]]))
		last = idx[1]

		pre := submatch(pattern, idx, 1)
		typ := submatch(pattern, idx, 2)
		name := submatch(pattern, idx, 3)
		optional := submatch(pattern, idx, 4) == "?"

		class, ok := matchTypes[typ]
		if !ok {
			// Unknown types are inline character classes used verbatim.
			class = typ
		}

		b.WriteString("(?:")
		b.WriteString(regexp.QuoteMeta(pre))
		b.WriteByte('(')
		if name != "" {
			b.WriteString("?P<")
			b.WriteString(name)
			b.WriteByte('>')
		}
		b.WriteString(class)
		b.WriteString("))")
		if optional {
			b.WriteByte('?')
		}
	}

	b.WriteString(regexp.QuoteMeta(pattern[last:]))
	b.WriteByte('$')
	return b.String()
}

// EachPlaceholder walks the placeholder blocks of a pattern in order,
// invoking fn with each block's raw text and parsed parts. Used by
// reverse path resolution to substitute parameter values.
func EachPlaceholder(pattern string, fn func(raw, pre, typ, name string, optional bool) string) string {
	var b strings.Builder
	last := 0
	for _, idx := range placeholderRegex.FindAllStringSubmatchIndex(pattern, -1) {
		b.WriteString(pattern[last:idx[0]])
		b.WriteString(fn(
			pattern[idx[0]:idx[1]],
			submatch(pattern, idx, 1),
			submatch(pattern, idx, 2),
			submatch(pattern, idx, 3),
			submatch(pattern, idx, 4) == "?",
		))
		last = idx[1]
	}
	b.WriteString(pattern[last:])
	return b.String()
}

// submatch extracts capture group n from a FindAllStringSubmatchIndex
// entry, or "" when the group did not participate.
func submatch(s string, idx []int, n int) string {
	lo, hi := idx[2*n], idx[2*n+1]
	if lo < 0 {
		return ""
	}
	return s[lo:hi]
}
