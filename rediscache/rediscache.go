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

// Package rediscache backs the pattern compiler's translation cache
// with Redis, so a fleet of processes shares one set of translated
// route expressions. The cache stores plain regex text, never compiled
// state; a miss or a Redis failure only costs a local re-translation.
package rediscache

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "seqmux:pattern:"

// Cache adapts a Redis client to the compiler's cache contract. All
// operations are best-effort: failures are logged and reported as
// misses, never surfaced to dispatch.
type Cache struct {
	client  redis.UniversalClient
	prefix  string
	ttl     time.Duration
	timeout time.Duration
	logger  *slog.Logger
}

// Option configures a Cache.
type Option func(*Cache)

// WithKeyPrefix sets the Redis key prefix. Default "seqmux:pattern:".
func WithKeyPrefix(prefix string) Option {
	return func(c *Cache) {
		c.prefix = prefix
	}
}

// WithTTL sets an expiry on stored translations. Zero, the default,
// stores them without expiry; translations are pure functions of the
// pattern, so expiry is only useful to bound keyspace growth.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

// WithTimeout bounds each Redis round trip. Default one second.
func WithTimeout(d time.Duration) Option {
	return func(c *Cache) {
		c.timeout = d
	}
}

// WithLogger sets the logger for Redis failures. The default discards
// everything.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) {
		c.logger = logger
	}
}

// New creates a cache over client.
func New(client redis.UniversalClient, opts ...Option) *Cache {
	c := &Cache{
		client:  client,
		prefix:  defaultKeyPrefix,
		timeout: time.Second,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get fetches the translated expression stored for a pattern.
func (c *Cache) Get(key string) (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	v, err := c.client.Get(ctx, c.prefix+key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Debug("redis get failed", "key", key, "error", err)
		}
		return "", false
	}
	return v, true
}

// Set stores a translated expression for a pattern.
func (c *Cache) Set(key, value string) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	if err := c.client.Set(ctx, c.prefix+key, value, c.ttl).Err(); err != nil {
		c.logger.Debug("redis set failed", "key", key, "error", err)
	}
}
