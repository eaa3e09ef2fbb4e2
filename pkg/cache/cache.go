// Package cache wraps go-cache for the in-process TTL caches this service
// uses: the AI relevance cache and the AI enrichment cache. The tender
// cache is kept in the database only, not in this wrapper.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// TTL wraps go-cache behind a narrow, typed interface so callers don't reach
// for go-cache's broader API surface (Items, Flush, persistence) that this
// system never uses.
type TTL struct {
	inner *gocache.Cache
}

// New builds a TTL cache with defaultTTL applied to Set and an expired-entry
// sweep every cleanupInterval.
func New(defaultTTL, cleanupInterval time.Duration) *TTL {
	return &TTL{inner: gocache.New(defaultTTL, cleanupInterval)}
}

func (c *TTL) Get(key string) (any, bool) {
	return c.inner.Get(key)
}

func (c *TTL) Set(key string, value any, ttl time.Duration) {
	c.inner.Set(key, value, ttl)
}

// SetDefault stores value under the cache's default TTL.
func (c *TTL) SetDefault(key string, value any) {
	c.inner.SetDefault(key, value)
}

func (c *TTL) Delete(key string) {
	c.inner.Delete(key)
}

func (c *TTL) ItemCount() int {
	return c.inner.ItemCount()
}
