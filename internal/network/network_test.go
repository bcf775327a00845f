package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildLine builds a 5-node line topology:
// 0—1—2—3—4, caches at {1,2,3}, source at 4, receiver at 0.
func buildLine(t *testing.T, cacheSize int) *Model {
	t.Helper()
	b := NewTopologyBuilder()
	require.NoError(t, b.AddNode("0", NodeAttrs{Stack: Receiver}))
	require.NoError(t, b.AddNode("1", NodeAttrs{Stack: Router, CacheSize: cacheSize}))
	require.NoError(t, b.AddNode("2", NodeAttrs{Stack: Router, CacheSize: cacheSize}))
	require.NoError(t, b.AddNode("3", NodeAttrs{Stack: Router, CacheSize: cacheSize}))
	require.NoError(t, b.AddNode("4", NodeAttrs{Stack: Source, Contents: map[Cid]bool{2: true}}))
	require.NoError(t, b.AddEdge("0", "1", 1, Internal))
	require.NoError(t, b.AddEdge("1", "2", 1, Internal))
	require.NoError(t, b.AddEdge("2", "3", 1, Internal))
	require.NoError(t, b.AddEdge("3", "4", 1, Internal))
	topo, err := b.Build()
	require.NoError(t, err)
	m, err := NewModel(topo)
	require.NoError(t, err)
	return m
}

func TestModel_ShortestPathOnLine(t *testing.T) {
	m := buildLine(t, 1)
	path, ok := m.ShortestPath("0", "4")
	require.True(t, ok)
	assert.Equal(t, []NodeID{"0", "1", "2", "3", "4"}, path)
}

func TestModel_ContentSourceIndex(t *testing.T) {
	m := buildLine(t, 1)
	src, ok := m.ContentSource(2)
	require.True(t, ok)
	assert.Equal(t, NodeID("4"), src)
}

func TestModel_DuplicateOriginIsConfigError(t *testing.T) {
	b := NewTopologyBuilder()
	require.NoError(t, b.AddNode("a", NodeAttrs{Stack: Source, Contents: map[Cid]bool{1: true}}))
	require.NoError(t, b.AddNode("b", NodeAttrs{Stack: Source, Contents: map[Cid]bool{1: true}}))
	require.NoError(t, b.AddEdge("a", "b", 1, Internal))
	topo, err := b.Build()
	require.NoError(t, err)
	_, err = NewModel(topo)
	assert.Error(t, err)
}

func TestBetweennessCentrality_LineMiddleHighest(t *testing.T) {
	m := buildLine(t, 1)
	// on a 5-node line, node 2 lies on the most shortest paths
	assert.Greater(t, m.Centrality("2"), m.Centrality("1"))
	assert.Greater(t, m.Centrality("2"), m.Centrality("3"))
	assert.Zero(t, m.Centrality("0"))
}

func TestView_ContentLocationsIncludesOrigin(t *testing.T) {
	m := buildLine(t, 1)
	v := NewView(m)
	locs := v.ContentLocations(2)
	assert.Contains(t, locs, NodeID("4"))
}

func TestTopologyBuilder_RejectsUnknownEdgeEndpoint(t *testing.T) {
	b := NewTopologyBuilder()
	require.NoError(t, b.AddNode("a", NodeAttrs{Stack: Router}))
	err := b.AddEdge("a", "ghost", 1, Internal)
	assert.Error(t, err)
}

func TestModel_DiameterOnLine(t *testing.T) {
	m := buildLine(t, 1)
	// The longest shortest path on a 5-node line is the two endpoints, 4 hops.
	assert.Equal(t, 4, m.Diameter())
	assert.Equal(t, 4, NewView(m).Diameter())
}

func TestModel_DiameterSingleNode(t *testing.T) {
	b := NewTopologyBuilder()
	require.NoError(t, b.AddNode("a", NodeAttrs{Stack: Router}))
	topo, err := b.Build()
	require.NoError(t, err)
	m, err := NewModel(topo)
	require.NoError(t, err)
	assert.Zero(t, m.Diameter())
}
