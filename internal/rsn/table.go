package rsn

import (
	"github.com/icnsim/icnsim/internal/ids"
	"github.com/icnsim/icnsim/internal/store"
)

// Table is one node's RSN table: a bounded mapping from content id to an
// Entry, evicted by the same LRU policy as Cache.
type Table struct {
	lru *store.LRU[ids.Cid, *Entry]
}

// NewTable creates an RSN table with the given capacity (number of distinct
// content ids tracked; coerced to at least 1).
func NewTable(capacity int) *Table {
	return &Table{lru: store.New[ids.Cid, *Entry](capacity)}
}

// Get returns the entry for cid, refreshing table-level recency on a hit.
func (t *Table) Get(cid ids.Cid) (*Entry, bool) {
	return t.lru.Get(cid)
}

// Put stores entry for cid, refreshing recency. It returns the evicted
// content id, if any.
func (t *Table) Put(cid ids.Cid, entry *Entry) (evicted ids.Cid, didEvict bool) {
	ek, _, didEvict := t.lru.Put(cid, entry)
	return ek, didEvict
}

// Remove deletes the entry for cid, if present.
func (t *Table) Remove(cid ids.Cid) bool {
	return t.lru.Remove(cid)
}

// Dump returns a snapshot of all tracked content ids, for diagnostics.
func (t *Table) Dump() []ids.Cid {
	return t.lru.Dump()
}

// Len returns the number of content ids currently tracked.
func (t *Table) Len() int { return t.lru.Len() }

// GetOrCreate returns the entry for cid, creating (but not storing) an empty
// one if absent. Callers that mutate the returned entry must call Put to
// persist it and refresh recency.
func (t *Table) GetOrCreate(cid ids.Cid) *Entry {
	if e, ok := t.lru.Get(cid); ok {
		return e
	}
	return NewEntry()
}
