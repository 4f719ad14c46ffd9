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

// DataBag is the per-dispatch shared key/value store handlers use to
// pass values to later routes in the same dispatch. Access goes through
// explicit getters and setters; absent keys read as the zero value.
//
// A DataBag is bound to a single dispatch call and is not safe for
// concurrent use.
type DataBag struct {
	values map[string]any
}

// NewDataBag creates an empty data bag.
func NewDataBag() *DataBag {
	return &DataBag{values: make(map[string]any)}
}

// Set stores a value under key, overwriting any previous value.
func (b *DataBag) Set(key string, value any) {
	b.values[key] = value
}

// Get returns the value stored under key, or nil when absent.
func (b *DataBag) Get(key string) any {
	return b.values[key]
}

// Lookup returns the value stored under key and whether it exists.
func (b *DataBag) Lookup(key string) (any, bool) {
	v, ok := b.values[key]
	return v, ok
}

// Has reports whether key exists in the bag.
func (b *DataBag) Has(key string) bool {
	_, ok := b.values[key]
	return ok
}

// Delete removes key from the bag.
func (b *DataBag) Delete(key string) {
	delete(b.values, key)
}

// Keys returns the keys currently stored, in unspecified order.
func (b *DataBag) Keys() []string {
	keys := make([]string, 0, len(b.values))
	for k := range b.values {
		keys = append(keys, k)
	}
	return keys
}

// Len returns the number of stored keys.
func (b *DataBag) Len() int { return len(b.values) }
