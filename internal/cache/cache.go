// Package cache implements the per-node content cache: a bounded mapping
// from content id to presence, with LRU eviction reused from the generic
// store container.
package cache

import (
	"github.com/icnsim/icnsim/internal/ids"
	"github.com/icnsim/icnsim/internal/store"
)

// Cache is a bounded-capacity presence set for one node.
type Cache struct {
	lru *store.LRU[ids.Cid, struct{}]
}

// New creates a Cache with the given capacity (coerced to at least 1).
func New(capacity int) *Cache {
	return &Cache{lru: store.New[ids.Cid, struct{}](capacity)}
}

// Has reports presence without updating recency and without telemetry — the
// caller (typically warmup) decides whether to emit anything.
func (c *Cache) Has(id ids.Cid) bool {
	return c.lru.Has(id)
}

// Get reports presence, refreshing recency on a hit. The caller is
// responsible for emitting hit/miss telemetry.
func (c *Cache) Get(id ids.Cid) bool {
	_, ok := c.lru.Get(id)
	return ok
}

// Put inserts id, refreshing recency if already present. It returns the
// evicted content id, if any.
func (c *Cache) Put(id ids.Cid) (evicted ids.Cid, didEvict bool) {
	ek, _, didEvict := c.lru.Put(id, struct{}{})
	return ek, didEvict
}

// Remove deletes id if present.
func (c *Cache) Remove(id ids.Cid) bool {
	return c.lru.Remove(id)
}

// Dump returns a snapshot of all cached ids, for diagnostics and tests.
func (c *Cache) Dump() []ids.Cid {
	return c.lru.Dump()
}

// Len returns the number of cached items.
func (c *Cache) Len() int { return c.lru.Len() }

// Capacity returns the cache's (possibly coerced) capacity.
func (c *Cache) Capacity() int { return c.lru.Capacity() }
