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

import "sync"

// MemoryCache is an in-process Cache backed by a sync.Map. It is safe
// for concurrent use; racing writers for the same key are harmless
// because every stored value for a pattern is identical.
type MemoryCache struct {
	m sync.Map
}

// NewMemoryCache creates an empty in-process cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{}
}

// Get returns the translated regex text stored for key.
func (c *MemoryCache) Get(key string) (string, bool) {
	v, ok := c.m.Load(key)
	if !ok {
		return "", false
	}
	return v.(string), true
}

// Set stores translated regex text under key.
func (c *MemoryCache) Set(key, value string) {
	c.m.Store(key, value)
}
