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

// Table is an ordered, keyed collection of routes. Insertion order is
// the dispatch order and survives re-keying. A Table follows a
// single-writer-before-many-readers discipline: populate it at startup,
// then treat it as read-only while dispatching.
type Table struct {
	entries []tableEntry
	index   map[string]int
}

type tableEntry struct {
	key string
	rt  *Route
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{index: make(map[string]int)}
}

// Set inserts a route under an explicit key. Re-using a key replaces
// the lookup target but keeps both routes in iteration order.
func (t *Table) Set(key string, rt *Route) {
	t.entries = append(t.entries, tableEntry{key: key, rt: rt})
	t.index[key] = len(t.entries) - 1
}

// Add inserts a route keyed by its stable identity.
func (t *Table) Add(rt *Route) {
	t.Set(rt.ID(), rt)
}

// Get returns the route stored under key.
func (t *Table) Get(key string) (*Route, bool) {
	i, ok := t.index[key]
	if !ok {
		return nil, false
	}
	return t.entries[i].rt, true
}

// Len returns the number of routes in the table.
func (t *Table) Len() int { return len(t.entries) }

// IsEmpty reports whether the table holds no routes.
func (t *Table) IsEmpty() bool { return len(t.entries) == 0 }

// All returns the routes in insertion order.
func (t *Table) All() []*Route {
	out := make([]*Route, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.rt
	}
	return out
}

// FinalizeNames returns a table where every entry whose route declares
// a name is re-keyed to that name; all other entries keep their
// original key. Relative order is unchanged no matter how many entries
// are renamed, and the pass is idempotent, so it is safe to run once
// per dispatch to pick up names declared since the last call.
//
// When two routes declare the same name, the later one in iteration
// order wins the name slot. Both stay in the table and remain
// reachable through their identity keys; only the name-keyed lookup
// reflects the winner.
func (t *Table) FinalizeNames() *Table {
	out := NewTable()
	for _, e := range t.entries {
		key := e.key
		if n := e.rt.Name(); n != "" {
			key = n
		}
		out.Set(key, e.rt)
		if id := e.rt.ID(); id != key {
			// Identity alias; points at the slot just added without
			// occupying one of its own.
			out.index[id] = len(out.entries) - 1
		}
	}
	return out
}

// CloneEmpty returns a new empty table of the same type. Dispatch uses
// it to accumulate matched routes without aliasing the live route set.
func (t *Table) CloneEmpty() *Table {
	return NewTable()
}
