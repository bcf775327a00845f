package workload

import (
	"testing"

	"github.com/icnsim/icnsim/internal/ids"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStationary_NonDecreasingTimestampsAndWarmupLogFlag(t *testing.T) {
	cfg := StationaryConfig{Alpha: 0.8, NContents: 10, NWarmup: 3, NMeasured: 5, Rate: 10}
	w := NewStationary(cfg, []ids.NodeID{"0", "1"}, 42)

	var last float64
	count := 0
	for {
		te, ok := w.Next()
		if !ok {
			break
		}
		assert.GreaterOrEqual(t, te.T, last)
		last = te.T
		if count < cfg.NWarmup {
			assert.False(t, te.Event.Log)
		} else {
			assert.True(t, te.Event.Log)
		}
		assert.False(t, te.Event.IsDisconnection())
		count++
	}
	assert.Equal(t, cfg.NWarmup+cfg.NMeasured, count)
}

func TestStationary_Deterministic(t *testing.T) {
	cfg := StationaryConfig{Alpha: 0.8, NContents: 20, NWarmup: 2, NMeasured: 10, Rate: 1}
	receivers := []ids.NodeID{"a", "b", "c"}

	collect := func(seed int64) []TimedEvent {
		w := NewStationary(cfg, receivers, seed)
		var out []TimedEvent
		for {
			te, ok := w.Next()
			if !ok {
				break
			}
			out = append(out, te)
		}
		return out
	}

	a := collect(7)
	b := collect(7)
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i], b[i])
	}
}

func TestStationarySit_DisconnectionDecrementsCounters(t *testing.T) {
	cfg := StationaryConfig{Alpha: 0.5, NContents: 5, NWarmup: 0, NMeasured: 50, Rate: 1, DisconnectionRate: 1.0}
	w := NewStationarySit(cfg, []ids.NodeID{"0"}, 1)

	var sawDisconnection bool
	for i := 0; i < 50; i++ {
		te, ok := w.Next()
		if !ok {
			break
		}
		if te.Event.IsDisconnection() {
			sawDisconnection = true
			assert.NotEmpty(t, te.Event.Connections)
			break
		}
	}
	assert.True(t, sawDisconnection, "expected at least one disconnection with DisconnectionRate=1.0")
}
