package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLRU_PutGetEviction(t *testing.T) {
	l := New[int, string](2)

	_, _, evicted := l.Put(1, "a")
	assert.False(t, evicted)
	_, _, evicted = l.Put(2, "b")
	assert.False(t, evicted)

	// access 1 so it becomes most-recent, making 2 the eviction victim
	v, ok := l.Get(1)
	require.True(t, ok)
	assert.Equal(t, "a", v)

	evKey, evVal, evicted := l.Put(3, "c")
	require.True(t, evicted)
	assert.Equal(t, 2, evKey)
	assert.Equal(t, "b", evVal)

	assert.True(t, l.Has(1))
	assert.False(t, l.Has(2))
	assert.True(t, l.Has(3))
}

func TestLRU_PutExistingRefreshesRecencyOnly(t *testing.T) {
	l := New[int, string](2)
	l.Put(1, "a")
	l.Put(2, "b")
	_, _, evicted := l.Put(1, "a-updated")
	assert.False(t, evicted)
	v, ok := l.Get(1)
	require.True(t, ok)
	assert.Equal(t, "a-updated", v)
}

func TestLRU_HasDoesNotAffectRecency(t *testing.T) {
	l := New[int, string](2)
	l.Put(1, "a")
	l.Put(2, "b")
	assert.True(t, l.Has(1)) // must not refresh recency
	l.Put(3, "c")
	// 1 should still be the LRU victim since Has did not touch order
	assert.True(t, l.Has(3))
	assert.False(t, l.Has(1))
	assert.True(t, l.Has(2))
}

func TestLRU_Remove(t *testing.T) {
	l := New[int, string](2)
	l.Put(1, "a")
	assert.True(t, l.Remove(1))
	assert.False(t, l.Remove(1))
	assert.False(t, l.Has(1))
}

func TestLRU_ZeroCapacityCoercedToOne(t *testing.T) {
	l := New[int, string](0)
	assert.Equal(t, 1, l.Capacity())
}

func TestLRU_DumpOrderMostRecentFirst(t *testing.T) {
	l := New[int, string](3)
	l.Put(1, "a")
	l.Put(2, "b")
	l.Put(3, "c")
	l.Get(1)
	assert.Equal(t, []int{1, 3, 2}, l.Dump())
}
