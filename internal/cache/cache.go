// Package cache provides a small injected query cache. An explicit object
// is handed to call sites rather than package-global state, so tests never
// share hidden state.
package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Cache is a bounded TTL cache. Entries are evicted LRU-style once the
// size limit is reached, and expire after the configured TTL regardless.
type Cache[V any] struct {
	lru *expirable.LRU[string, V]
}

// New creates a cache holding at most size entries with the given TTL.
func New[V any](size int, ttl time.Duration) *Cache[V] {
	return &Cache[V]{lru: expirable.NewLRU[string, V](size, nil, ttl)}
}

// Get returns a cached value when present and not expired.
func (c *Cache[V]) Get(key string) (V, bool) {
	return c.lru.Get(key)
}

// Set stores a value under the key.
func (c *Cache[V]) Set(key string, value V) {
	c.lru.Add(key, value)
}

// Invalidate removes a single key.
func (c *Cache[V]) Invalidate(key string) {
	c.lru.Remove(key)
}

// Purge removes everything. Used on writes that can affect many keys.
func (c *Cache[V]) Purge() {
	c.lru.Purge()
}

// Len reports the number of live entries.
func (c *Cache[V]) Len() int {
	return c.lru.Len()
}
