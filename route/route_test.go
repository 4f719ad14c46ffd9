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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewNormalizesEmptyPath tests that an absent path becomes the
// wildcard token
func TestNewNormalizesEmptyPath(t *testing.T) {
	t.Parallel()
	rt := New(nil, "", nil, false)
	assert.Equal(t, "*", rt.Path())
}

// TestRouteIDsAreUnique tests identity key stability
func TestRouteIDsAreUnique(t *testing.T) {
	t.Parallel()
	a := New(nil, "/a", nil, true)
	b := New(nil, "/a", nil, true)
	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
}

// TestFactoryCountMatch tests that countMatch derives from the raw
// path alone
func TestFactoryCountMatch(t *testing.T) {
	t.Parallel()
	f := NewFactory()

	assert.False(t, f.Build(nil, "", nil, "").CountMatch())
	assert.False(t, f.Build(nil, "*", nil, "").CountMatch())
	assert.True(t, f.Build(nil, "/real", nil, "").CountMatch())
	assert.True(t, f.Build(nil, "@^/rx", nil, "").CountMatch())
}

// TestFactoryNamespacePlain tests plain concatenation under a
// namespace
func TestFactoryNamespacePlain(t *testing.T) {
	t.Parallel()
	f := NewFactory()
	f.AppendNamespace("/api")

	rt := f.Build(nil, "/users/[i:id]", nil, "")
	assert.Equal(t, "/api/users/[i:id]", rt.Path())
}

// TestFactoryNamespaceWildcard tests that a wildcard under a namespace
// becomes a namespace-root regex
func TestFactoryNamespaceWildcard(t *testing.T) {
	t.Parallel()
	f := NewFactory()
	f.AppendNamespace("/api")

	rt := f.Build(nil, "*", nil, "")
	assert.Equal(t, "@^/api(/|$)", rt.Path())

	rt = f.Build(nil, "", nil, "")
	assert.Equal(t, "@^/api(/|$)", rt.Path())
}

// TestFactoryNamespaceCustomRegex tests custom-regex rewriting under a
// namespace
func TestFactoryNamespaceCustomRegex(t *testing.T) {
	t.Parallel()
	f := NewFactory()
	f.AppendNamespace("/api")

	// Anchored expressions re-anchor behind the namespace.
	rt := f.Build(nil, "@^/v1/.*", nil, "")
	assert.Equal(t, "@^/api/v1/.*", rt.Path())

	// Unanchored expressions search anywhere below the namespace.
	rt = f.Build(nil, "@/v1", nil, "")
	assert.Equal(t, "@^/api.*/v1", rt.Path())

	// Negated expressions wrap in a lookahead behind the namespace.
	rt = f.Build(nil, "!@^/login", nil, "")
	assert.Equal(t, "@^/api(?!/login)", rt.Path())
}

// TestFactoryNamespaceNesting tests save and restore of the namespace
func TestFactoryNamespaceNesting(t *testing.T) {
	t.Parallel()
	f := NewFactory()
	f.AppendNamespace("/api")
	outer := f.Namespace()
	f.AppendNamespace("/v2")

	assert.Equal(t, "/api/v2/x", f.Build(nil, "/x", nil, "").Path())

	f.SetNamespace(outer)
	assert.Equal(t, "/api/x", f.Build(nil, "/x", nil, "").Path())
}

// TestTableOrderPreservation tests that finalizing names never
// disturbs iteration order
func TestTableOrderPreservation(t *testing.T) {
	t.Parallel()
	tbl := NewTable()

	r1 := New(nil, "/1", nil, true)
	r2 := New(nil, "/2", nil, true).SetName("two")
	r3 := New(nil, "/3", nil, true)
	r4 := New(nil, "/4", nil, true).SetName("four")
	for _, rt := range []*Route{r1, r2, r3, r4} {
		tbl.Add(rt)
	}

	final := tbl.FinalizeNames()
	assert.Equal(t, []*Route{r1, r2, r3, r4}, final.All())

	// Idempotent: a second pass changes nothing.
	again := final.FinalizeNames()
	assert.Equal(t, final.All(), again.All())

	got, ok := final.Get("two")
	require.True(t, ok)
	assert.Same(t, r2, got)

	// Renamed entries stay reachable through their identity keys.
	got, ok = final.Get(r2.ID())
	require.True(t, ok)
	assert.Same(t, r2, got)
}

// TestTableNameCollision tests last-write-wins on the name slot while
// both routes stay present
func TestTableNameCollision(t *testing.T) {
	t.Parallel()
	tbl := NewTable()

	first := New(nil, "/first", nil, true).SetName("dup")
	second := New(nil, "/second", nil, true).SetName("dup")
	tbl.Add(first)
	tbl.Add(second)

	final := tbl.FinalizeNames()
	got, ok := final.Get("dup")
	require.True(t, ok)
	assert.Same(t, second, got)

	assert.Equal(t, []*Route{first, second}, final.All())
	assert.Equal(t, 2, final.Len())
}

// TestCloneEmpty tests matched-route accumulation tables start empty
func TestCloneEmpty(t *testing.T) {
	t.Parallel()
	tbl := NewTable()
	tbl.Add(New(nil, "/x", nil, true))

	clone := tbl.CloneEmpty()
	assert.True(t, clone.IsEmpty())
	assert.Equal(t, 1, tbl.Len())
}
