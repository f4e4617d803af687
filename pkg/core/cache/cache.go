// ============================================================================
// mCALC - Arithmetic Expression Calculator
// ============================================================================
//
// Package:     cache
// Description: Size-bounded LRU cache with hit/miss accounting
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package cache

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru"
)

// Cache is a thread-safe LRU cache. A cache created with MaxItems 0 stores
// nothing and reports every lookup as a miss.
type Cache struct {
	items *lru.Cache

	// Metrics
	hits   int64
	misses int64
}

// Config holds cache configuration
type Config struct {
	MaxItems int
}

// DefaultConfig returns default cache configuration
func DefaultConfig() Config {
	return Config{MaxItems: 256}
}

// New creates a new cache instance
func New(cfg Config) (*Cache, error) {
	c := &Cache{}
	if cfg.MaxItems <= 0 {
		return c, nil
	}

	items, err := lru.New(cfg.MaxItems)
	if err != nil {
		return nil, err
	}
	c.items = items
	return c, nil
}

// Enabled reports whether the cache stores anything
func (c *Cache) Enabled() bool {
	return c.items != nil
}

// Get retrieves a value from the cache and marks it recently used
func (c *Cache) Get(key string) (interface{}, bool) {
	if c.items == nil {
		atomic.AddInt64(&c.misses, 1)
		return nil, false
	}

	value, ok := c.items.Get(key)
	if ok {
		atomic.AddInt64(&c.hits, 1)
	} else {
		atomic.AddInt64(&c.misses, 1)
	}
	return value, ok
}

// Set stores a value, evicting the least recently used entry when full.
// It reports whether an eviction happened.
func (c *Cache) Set(key string, value interface{}) bool {
	if c.items == nil {
		return false
	}
	return c.items.Add(key, value)
}

// Size returns the number of cached values
func (c *Cache) Size() int {
	if c.items == nil {
		return 0
	}
	return c.items.Len()
}

// Stats returns cache statistics
func (c *Cache) Stats() (hits, misses int64, hitRate float64) {
	hits = atomic.LoadInt64(&c.hits)
	misses = atomic.LoadInt64(&c.misses)
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}
	return hits, misses, hitRate
}
