package metrics

import "github.com/icnsim/icnsim/internal/network"

// LatencyCollector tracks, as a hop-count proxy for request latency, the
// total number of request hops charged per session (the on-path walk plus
// any off-path detours actually taken). It reports the mean, min, and max
// over every session it observed, plus the raw sample count.
type LatencyCollector struct {
	BaseCollector
	hops    int
	samples []int
}

func NewLatencyCollector() *LatencyCollector {
	return &LatencyCollector{}
}

func (c *LatencyCollector) Name() string { return "latency" }

func (c *LatencyCollector) StartSession(float64, network.NodeID, network.Cid) {
	c.hops = 0
}

func (c *LatencyCollector) RequestHop(network.NodeID, network.NodeID, bool) {
	c.hops++
}

func (c *LatencyCollector) EndSession(bool) {
	c.samples = append(c.samples, c.hops)
}

func (c *LatencyCollector) Results() map[string]any {
	if len(c.samples) == 0 {
		return map[string]any{"count": 0}
	}
	sum, min, max := 0, c.samples[0], c.samples[0]
	for _, h := range c.samples {
		sum += h
		if h < min {
			min = h
		}
		if h > max {
			max = h
		}
	}
	return map[string]any{
		"count":    len(c.samples),
		"mean_hop": float64(sum) / float64(len(c.samples)),
		"min_hop":  min,
		"max_hop":  max,
	}
}
