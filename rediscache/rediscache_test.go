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

package rediscache

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seqmux/seqmux/compiler"
)

func newTestCache(t *testing.T, opts ...Option) *Cache {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return New(client, opts...)
}

// TestCacheRoundTrip tests set and get through Redis
func TestCacheRoundTrip(t *testing.T) {
	t.Parallel()
	cache := newTestCache(t)

	_, ok := cache.Get("/posts/[i:id]")
	assert.False(t, ok)

	cache.Set("/posts/[i:id]", "^/posts/(?:/(?P<id>[0-9]+))$")
	v, ok := cache.Get("/posts/[i:id]")
	require.True(t, ok)
	assert.Equal(t, "^/posts/(?:/(?P<id>[0-9]+))$", v)
}

// TestCacheKeyPrefix tests key namespacing
func TestCacheKeyPrefix(t *testing.T) {
	t.Parallel()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cache := New(client, WithKeyPrefix("routes:"))
	cache.Set("/a", "^/a$")

	assert.True(t, srv.Exists("routes:/a"))
	assert.False(t, srv.Exists("/a"))
}

// TestCacheTTL tests expiry on stored translations
func TestCacheTTL(t *testing.T) {
	t.Parallel()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cache := New(client, WithTTL(time.Minute))
	cache.Set("/a", "^/a$")

	_, ok := cache.Get("/a")
	require.True(t, ok)

	srv.FastForward(2 * time.Minute)
	_, ok = cache.Get("/a")
	assert.False(t, ok)
}

// TestCacheFailureIsAMiss tests that a dead Redis only costs a miss
func TestCacheFailureIsAMiss(t *testing.T) {
	t.Parallel()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cache := New(client)
	srv.Close()

	cache.Set("/a", "^/a$")
	_, ok := cache.Get("/a")
	assert.False(t, ok)
}

// TestCompilerWithRedisCache tests the cache end to end behind the
// pattern compiler
func TestCompilerWithRedisCache(t *testing.T) {
	t.Parallel()
	cache := newTestCache(t)

	first := compiler.New(cache)
	m1, err := first.Compile("/dogs/[i:dog_id]")
	require.NoError(t, err)

	// A fresh compiler sharing the store reuses the translation and
	// matches identically.
	second := compiler.New(cache)
	m2, err := second.Compile("/dogs/[i:dog_id]")
	require.NoError(t, err)
	assert.Equal(t, m1.String(), m2.String())

	params, ok := m2.Match("/dogs/12")
	require.True(t, ok)
	assert.Equal(t, "12", params["dog_id"])
}
