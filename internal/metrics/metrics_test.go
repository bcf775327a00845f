package metrics

import (
	"testing"

	"github.com/icnsim/icnsim/internal/engine"
	"github.com/icnsim/icnsim/internal/network"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildLineModel(t *testing.T, cacheSize int) *network.Model {
	t.Helper()
	b := network.NewTopologyBuilder()
	require.NoError(t, b.AddNode("0", network.NodeAttrs{Stack: network.Receiver}))
	require.NoError(t, b.AddNode("1", network.NodeAttrs{Stack: network.Router, CacheSize: cacheSize}))
	require.NoError(t, b.AddNode("2", network.NodeAttrs{Stack: network.Source, Contents: map[network.Cid]bool{2: true}}))
	require.NoError(t, b.AddEdge("0", "1", 1, network.Internal))
	require.NoError(t, b.AddEdge("1", "2", 1, network.Internal))
	topo, err := b.Build()
	require.NoError(t, err)
	m, err := network.NewModel(topo)
	require.NoError(t, err)
	return m
}

func TestAbsorptionCollector_CountsWhenLastCopyEvicted(t *testing.T) {
	m := buildLineModel(t, 1)
	col := NewAbsorptionCollector()
	c := engine.NewController(m, engine.NewBus(col))

	c.StartSession(5, "0", 2, true, nil)
	c.PutContent("1")
	c.EvictContentAtNode(2, "1")
	c.EndSession(true)

	res := col.Results()
	assert.Equal(t, 1, res["num_absorbed"])
	assert.Equal(t, 5.0, res["mean_abs_time"])
}

func TestAbsorptionCollector_NoAbsorptionWhileCopyStillLive(t *testing.T) {
	m := buildLineModel(t, 2)
	col := NewAbsorptionCollector()
	c := engine.NewController(m, engine.NewBus(col))

	c.StartSession(0, "0", 2, true, nil)
	c.PutContent("1")
	c.EndSession(true)

	assert.Equal(t, 0, col.Results()["num_absorbed"])
}

func TestSatisfactionRateCollector_CountsFirstHitPerSessionOnly(t *testing.T) {
	m := buildLineModel(t, 1)
	col := NewSatisfactionRateCollector()
	c := engine.NewController(m, engine.NewBus(col))

	c.StartSession(0, "0", 2, true, nil)
	assert.False(t, c.GetContent("1")) // cache miss
	assert.True(t, c.GetContent("2"))  // server hit
	c.EndSession(true)

	res := col.Results()
	assert.Equal(t, 1.0, res["mean"])
	assert.Equal(t, 1.0, res["mean_server_hit"])
	assert.Equal(t, 0.0, res["mean_cache_hit"])
}

func TestSatisfactionRateCollector_ZeroSessionsReportsZero(t *testing.T) {
	col := NewSatisfactionRateCollector()
	res := col.Results()
	assert.Equal(t, 0.0, res["mean"])
}
