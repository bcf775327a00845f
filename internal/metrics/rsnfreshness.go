package metrics

import "github.com/icnsim/icnsim/internal/network"

// RsnFreshnessCollector measures how often a followed RSN hint actually paid
// off: the fraction of sessions resolved via an off-path detour (rather than
// a plain on-path cache or server hit). The bus surface only exposes the
// moment a followed trail resolves (OffPathHit), not individual record ages,
// so "hint-hit rate" is the freshness signal this collector reports rather
// than a literal age-in-seconds distribution.
type RsnFreshnessCollector struct {
	BaseCollector
	sawOffPathHit bool
	offPathHits   int
	sessions      int
}

func NewRsnFreshnessCollector() *RsnFreshnessCollector {
	return &RsnFreshnessCollector{}
}

func (c *RsnFreshnessCollector) Name() string { return "rsn_freshness" }

func (c *RsnFreshnessCollector) StartSession(float64, network.NodeID, network.Cid) {
	c.sawOffPathHit = false
}

func (c *RsnFreshnessCollector) OffPathHit(network.NodeID) {
	c.sawOffPathHit = true
}

func (c *RsnFreshnessCollector) EndSession(bool) {
	c.sessions++
	if c.sawOffPathHit {
		c.offPathHits++
	}
}

func (c *RsnFreshnessCollector) Results() map[string]any {
	rate := 0.0
	if c.sessions > 0 {
		rate = float64(c.offPathHits) / float64(c.sessions)
	}
	return map[string]any{
		"sessions":      c.sessions,
		"off_path_hits": c.offPathHits,
		"hint_hit_rate": rate,
	}
}
