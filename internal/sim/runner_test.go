package sim

import (
	"testing"

	"github.com/icnsim/icnsim/internal/engine"
	"github.com/icnsim/icnsim/internal/network"
	"github.com/icnsim/icnsim/internal/workload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildLineModel mirrors the strategy package's line topology: a 5-node
// line 0—1—2—3—4 with a receiver-carried cache at node 0, routers at 1-3,
// and a source at 4 serving content 2.
func buildLineModel(t *testing.T, receiverCacheSize int) *network.Model {
	t.Helper()
	b := network.NewTopologyBuilder()
	require.NoError(t, b.AddNode("0", network.NodeAttrs{Stack: network.Receiver, CacheSize: receiverCacheSize}))
	require.NoError(t, b.AddNode("1", network.NodeAttrs{Stack: network.Router}))
	require.NoError(t, b.AddNode("2", network.NodeAttrs{Stack: network.Router}))
	require.NoError(t, b.AddNode("3", network.NodeAttrs{Stack: network.Router}))
	require.NoError(t, b.AddNode("4", network.NodeAttrs{Stack: network.Source, Contents: map[network.Cid]bool{2: true}}))
	require.NoError(t, b.AddEdge("0", "1", 1, network.Internal))
	require.NoError(t, b.AddEdge("1", "2", 1, network.Internal))
	require.NoError(t, b.AddEdge("2", "3", 1, network.Internal))
	require.NoError(t, b.AddEdge("3", "4", 1, network.Internal))
	topo, err := b.Build()
	require.NoError(t, err)
	m, err := network.NewModel(topo)
	require.NoError(t, err)
	return m
}

// recordingStrategy records every event it is asked to process, always
// terminating the session by fetching content from the source so the
// session always counts as satisfied.
type recordingStrategy struct {
	name string
	n    int
}

func (s *recordingStrategy) Name() string { return s.name }
func (s *recordingStrategy) Process(v *network.View, c *engine.Controller, ev workload.Event) {
	s.n++
	sess := c.Session()
	c.GetContent(sess.Source)
}

// sliceIterator replays a fixed slice of TimedEvents.
type sliceIterator struct {
	events []workload.TimedEvent
	i      int
}

func (it *sliceIterator) Next() (workload.TimedEvent, bool) {
	if it.i >= len(it.events) {
		return workload.TimedEvent{}, false
	}
	te := it.events[it.i]
	it.i++
	return te, true
}

func TestRunner_WithWarmupStrategyDispatchesByLogFlag(t *testing.T) {
	model := buildLineModel(t, 0)
	measured := &recordingStrategy{name: "measured"}
	warmup := &recordingStrategy{name: "warmup"}

	events := &sliceIterator{events: []workload.TimedEvent{
		{T: 0, Event: workload.Event{Receiver: "0", Content: 2, Log: false}},
		{T: 1, Event: workload.Event{Receiver: "0", Content: 2, Log: false}},
		{T: 2, Event: workload.Event{Receiver: "0", Content: 2, Log: true}},
	}}

	runner := New(model, engine.NewBus(), measured, events)
	runner.WithWarmupStrategy(warmup)
	runner.Run()

	assert.Equal(t, 2, warmup.n, "both warmup (log=false) events should dispatch to the warmup strategy")
	assert.Equal(t, 1, measured.n, "only the log=true event should dispatch to the measured strategy")
}

func TestRunner_NoWarmupStrategyUsesMeasuredForEverything(t *testing.T) {
	model := buildLineModel(t, 0)
	measured := &recordingStrategy{name: "measured"}

	events := &sliceIterator{events: []workload.TimedEvent{
		{T: 0, Event: workload.Event{Receiver: "0", Content: 2, Log: false}},
		{T: 1, Event: workload.Event{Receiver: "0", Content: 2, Log: true}},
	}}

	runner := New(model, engine.NewBus(), measured, events)
	runner.Run()

	assert.Equal(t, 2, measured.n)
}

func TestRunner_DisconnectionEvictsContentOnceConnectionsDrain(t *testing.T) {
	model := buildLineModel(t, 1)
	strat := &recordingStrategy{name: "measured"}
	view := network.NewView(model)

	disconnect := workload.Event{
		Receiver:    "0",
		Content:     DisconnectionCid,
		Log:         true,
		Connections: map[network.NodeID]int{"0": 1},
	}
	events := &sliceIterator{events: []workload.TimedEvent{
		{T: 0, Event: workload.Event{Receiver: "0", Content: 2, Log: true}},
		{T: 1, Event: workload.Event{Receiver: "0", Content: 2, Log: true}},
		{T: 2, Event: disconnect},
	}}

	runner := New(model, engine.NewBus(), strat, events)
	runner.Run()

	// Two successful deliveries leave two outstanding connections for
	// content 2 at the receiver; one disconnection decrement brings it to
	// one (no eviction yet, the map entry survives).
	byContent, ok := runner.outstanding["0"]
	require.True(t, ok)
	assert.Equal(t, 1, byContent[2])
	_ = view

	// A second disconnection drains the last outstanding connection,
	// evicting the entry from the bookkeeping map entirely.
	runner.handleDisconnection(3, disconnect, map[string]any{"request_id": "x"})
	byContent, ok = runner.outstanding["0"]
	if ok {
		_, stillPresent := byContent[2]
		assert.False(t, stillPresent)
	}
}
