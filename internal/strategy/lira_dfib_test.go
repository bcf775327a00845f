package strategy

import (
	"testing"

	"github.com/icnsim/icnsim/internal/engine"
	"github.com/icnsim/icnsim/internal/network"
	"github.com/icnsim/icnsim/internal/workload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildFork builds a topology with two independent off-path caches reachable
// from the same on-path node "1": 0(receiver)-1-2-3-4(source, content 7),
// plus branches 1-5 and 1-6 where nodes 5 and 6 each independently hold a
// cached copy of content 7, with node 1 carrying fresh RSN hints toward both.
func buildFork(t *testing.T) *network.Model {
	t.Helper()
	b := network.NewTopologyBuilder()
	require.NoError(t, b.AddNode("0", network.NodeAttrs{Stack: network.Receiver}))
	require.NoError(t, b.AddNode("1", network.NodeAttrs{Stack: network.Router, RsnSize: 4}))
	require.NoError(t, b.AddNode("2", network.NodeAttrs{Stack: network.Router}))
	require.NoError(t, b.AddNode("3", network.NodeAttrs{Stack: network.Router}))
	require.NoError(t, b.AddNode("4", network.NodeAttrs{Stack: network.Source, Contents: map[network.Cid]bool{7: true}}))
	require.NoError(t, b.AddNode("5", network.NodeAttrs{Stack: network.Router, CacheSize: 2}))
	require.NoError(t, b.AddNode("6", network.NodeAttrs{Stack: network.Router, CacheSize: 2}))
	require.NoError(t, b.AddEdge("0", "1", 1, network.Internal))
	require.NoError(t, b.AddEdge("1", "2", 1, network.Internal))
	require.NoError(t, b.AddEdge("2", "3", 1, network.Internal))
	require.NoError(t, b.AddEdge("3", "4", 1, network.Internal))
	require.NoError(t, b.AddEdge("1", "5", 1, network.Internal))
	require.NoError(t, b.AddEdge("1", "6", 1, network.Internal))
	topo, err := b.Build()
	require.NoError(t, err)
	m, err := network.NewModel(topo)
	require.NoError(t, err)
	return m
}

func TestLiraDFIB_FanOutFollowsMultipleTrailsAndDeliversShortestFirst(t *testing.T) {
	model := buildFork(t)
	v := network.NewView(model)
	rec := &contentHopRecorder{}
	bus := engine.NewBus(rec)
	c := engine.NewController(model, bus)

	// Warm both off-path caches and node 1's RSN hints out of band.
	c.StartSession(0, "0", 7, false, nil)
	c.PutContent("5")
	c.PutContent("6")
	entry, ok := c.GetOrCreateRSN("1", nil)
	require.True(t, ok)
	entry.Insert(0, 1000, 4, "5", "5", 1, false)
	entry.Insert(0, 1000, 4, "6", "6", 1, false)
	c.PutRSN("1", entry, nil)
	c.EndSession(true)

	c.StartSession(1, "0", 7, true, nil)
	sess := c.Session()
	strat := NewLiraDFIB(Config{Fresh: 1000, Expiration: 1000, MaxDetour: 5, ExtraQuota: 5, FanOut: 2})
	strat.Process(v, c, workload.Event{Receiver: "0", Content: 7})
	c.EndSession(true)

	// Both off-path branches were followed (hop 0-1, then one hop each to 5
	// and 6). The trail via 5 comes first and is delivered; the trail via 6
	// stops at node 1, which already received the content (PIT dedup). Node 2
	// (the on-path continuation toward the source) was never touched since
	// both detours hit.
	assert.Equal(t, 3, sess.QuotaUsed())
	assert.Contains(t, rec.hops, [2]network.NodeID{"5", "1"})
	assert.NotContains(t, rec.hops, [2]network.NodeID{"6", "1"})
	assert.Contains(t, rec.hops, [2]network.NodeID{"1", "0"})
	for _, h := range rec.hops {
		assert.NotEqual(t, network.NodeID("2"), h[0])
		assert.NotEqual(t, network.NodeID("2"), h[1])
	}
}

func TestLiraDFIB_FanOutOfOneMatchesSingleTrailBehavior(t *testing.T) {
	model := buildBranch(t)
	v := network.NewView(model)
	rec := &contentHopRecorder{}
	bus := engine.NewBus(rec)
	c := engine.NewController(model, bus)

	c.StartSession(0, "0", 7, false, nil)
	c.PutContent("5")
	entry, ok := c.GetOrCreateRSN("1", nil)
	require.True(t, ok)
	entry.Insert(0, 1000, 4, "5", "5", 1, false)
	c.PutRSN("1", entry, nil)
	c.EndSession(true)

	c.StartSession(1, "0", 7, true, nil)
	strat := NewLiraDFIB(Config{Fresh: 1000, Expiration: 1000, MaxDetour: 5, ExtraQuota: 5})
	strat.Process(v, c, workload.Event{Receiver: "0", Content: 7})
	c.EndSession(true)

	assert.Contains(t, rec.hops, [2]network.NodeID{"5", "1"})
	assert.Contains(t, rec.hops, [2]network.NodeID{"1", "0"})
}
