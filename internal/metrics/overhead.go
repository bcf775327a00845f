package metrics

import "github.com/icnsim/icnsim/internal/network"

// OverheadCollector tracks signaling overhead: the total request hops
// charged per session, separating hops of satisfied sessions (any hit event
// fired) from hops of sessions with no hit event. isSat is a plain
// boolean assignment, set true the moment any hit event fires during the
// session — not an identity comparison, resolving the
// ambiguous `self.is_sat is True` idiom.
type OverheadCollector struct {
	BaseCollector
	hops        int
	isSat       bool
	totalHops   int
	satHops     int
	unsatHops   int
	sessions    int
	satSessions int
}

func NewOverheadCollector() *OverheadCollector {
	return &OverheadCollector{}
}

func (c *OverheadCollector) Name() string { return "overhead" }

func (c *OverheadCollector) StartSession(float64, network.NodeID, network.Cid) {
	c.hops = 0
	c.isSat = false
}

func (c *OverheadCollector) RequestHop(network.NodeID, network.NodeID, bool) {
	c.hops++
}

func (c *OverheadCollector) CacheHit(network.NodeID)   { c.isSat = true }
func (c *OverheadCollector) ServerHit(network.NodeID)  { c.isSat = true }
func (c *OverheadCollector) OffPathHit(network.NodeID) { c.isSat = true }

func (c *OverheadCollector) EndSession(bool) {
	c.sessions++
	c.totalHops += c.hops
	if c.isSat {
		c.satSessions++
		c.satHops += c.hops
	} else {
		c.unsatHops += c.hops
	}
}

func (c *OverheadCollector) Results() map[string]any {
	return map[string]any{
		"sessions":         c.sessions,
		"satisfied":        c.satSessions,
		"total_hops":       c.totalHops,
		"satisfied_hops":   c.satHops,
		"unsatisfied_hops": c.unsatHops,
	}
}
