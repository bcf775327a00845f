package rsn

import (
	"testing"

	"github.com/icnsim/icnsim/internal/ids"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fresh = 5.0
const expiration = 10.0

func TestEntry_InsertIsUpsertByNextHop(t *testing.T) {
	e := NewEntry()
	e.Insert(0, expiration, 4, "h1", "dest", 3, false)
	e.Insert(1, expiration, 4, "h1", "dest2", 5, true)
	assert.Equal(t, 1, e.Len())
	r, ok := e.GetNexthop(1, expiration, "h1")
	require.True(t, ok)
	assert.Equal(t, ids.NodeID("dest2"), r.Destination)
	assert.EqualValues(t, 5, r.Distance)
	assert.True(t, r.UsedBefore)
}

func TestEntry_LazyExpirationOnAccess(t *testing.T) {
	e := NewEntry()
	e.Insert(0, expiration, 4, "h1", "d", 1, false)
	r, ok := e.GetNexthop(20, expiration, "h1")
	assert.False(t, ok)
	assert.Zero(t, r)
	assert.True(t, e.Empty())
}

func TestEntry_DeleteNextHopRemovesExactlyThatRecord(t *testing.T) {
	e := NewEntry()
	e.Insert(0, expiration, 4, "a", "d", 1, false)
	e.Insert(0, expiration, 4, "b", "d", 1, false)
	e.DeleteNextHop("a")
	assert.Equal(t, 1, e.Len())
	_, ok := e.GetNexthop(0, expiration, "a")
	assert.False(t, ok)
	_, ok = e.GetNexthop(0, expiration, "b")
	assert.True(t, ok)
}

func TestEntry_GetFreshestExceptExcludesNextHop(t *testing.T) {
	e := NewEntry()
	e.Insert(0, expiration, 4, "a", "d", 1, false)
	e.Insert(1, expiration, 4, "b", "d", 1, false)
	r, ok := e.GetFreshestExcept(2, expiration, "b")
	require.True(t, ok)
	assert.Equal(t, ids.NodeID("a"), r.NextHop)
}

func TestEntry_GetTopKFreshestExceptSortsDescending(t *testing.T) {
	e := NewEntry()
	e.Insert(0, expiration, 4, "a", "d", 1, false)
	e.Insert(2, expiration, 4, "b", "d", 1, false)
	e.Insert(1, expiration, 4, "c", "d", 1, false)
	top := e.GetTopKFreshestExcept(3, expiration, "", 2)
	require.Len(t, top, 2)
	assert.Equal(t, ids.NodeID("b"), top[0].NextHop)
	assert.Equal(t, ids.NodeID("c"), top[1].NextHop)
}

func TestEntry_GetBestKPrefersUsedAndFresh(t *testing.T) {
	e := NewEntry()
	e.Insert(0, expiration, 4, "stale-used", "d", 1, true) // used but will be stale at now=6 (age 6 > fresh 5)
	e.Insert(5, expiration, 4, "fresh-unused", "d", 1, false)
	e.Insert(4, expiration, 4, "fresh-used", "d", 1, true)
	best := e.GetBestK(6, fresh, expiration, "self", 2)
	require.Len(t, best, 2)
	assert.Equal(t, ids.NodeID("fresh-used"), best[0].NextHop) // used-and-fresh first
	assert.Equal(t, ids.NodeID("fresh-unused"), best[1].NextHop)
}

func TestEntry_GetBestKExcludesSelfNode(t *testing.T) {
	e := NewEntry()
	e.Insert(0, expiration, 4, "self", "d", 1, false)
	e.Insert(0, expiration, 4, "other", "d", 1, false)
	best := e.GetBestK(0, fresh, expiration, "self", 5)
	require.Len(t, best, 1)
	assert.Equal(t, ids.NodeID("other"), best[0].NextHop)
}

func TestEntry_MaxRecordsEvictsOldest(t *testing.T) {
	e := NewEntry()
	e.Insert(0, expiration, 2, "a", "d", 1, false)
	e.Insert(1, expiration, 2, "b", "d", 1, false)
	e.Insert(2, expiration, 2, "c", "d", 1, false)
	assert.Equal(t, 2, e.Len())
	_, ok := e.GetNexthop(2, expiration, "a")
	assert.False(t, ok, "oldest record should have been evicted")
}

// TestTable_InvalidateTrailRoundTrip covers the trail-invalidation property: invalidating a
// trail and then re-inserting the same hint restores RSN state.
func TestTable_InvalidateTrailRoundTrip(t *testing.T) {
	table := NewTable(8)
	cid := ids.Cid(42)

	entry := table.GetOrCreate(cid)
	entry.Insert(0, expiration, 4, "next", "dest", 2, false)
	table.Put(cid, entry)

	// simulate trail invalidation: delete the nexthop
	got, _ := table.Get(cid)
	got.DeleteNextHop("next")
	if got.Empty() {
		table.Remove(cid)
	} else {
		table.Put(cid, got)
	}
	assert.False(t, table.lru.Has(cid))

	// re-insert the same hint
	entry2 := table.GetOrCreate(cid)
	entry2.Insert(0, expiration, 4, "next", "dest", 2, false)
	table.Put(cid, entry2)

	restored, ok := table.Get(cid)
	require.True(t, ok)
	r, ok := restored.GetNexthop(0, expiration, "next")
	require.True(t, ok)
	assert.Equal(t, ids.NodeID("dest"), r.Destination)
	assert.EqualValues(t, 2, r.Distance)
}
