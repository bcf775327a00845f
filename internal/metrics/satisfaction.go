package metrics

import "github.com/icnsim/icnsim/internal/network"

// SatisfactionRateCollector tracks the fraction of sessions satisfied by a
// cache hit or a server hit (at most one counted per session, the first one
// observed), plus the split between the two.
type SatisfactionRateCollector struct {
	BaseCollector
	sawHit     bool
	sessions   int
	satisfied  int
	cacheHits  int
	serverHits int
}

// NewSatisfactionRateCollector constructs an empty collector.
func NewSatisfactionRateCollector() *SatisfactionRateCollector {
	return &SatisfactionRateCollector{}
}

func (c *SatisfactionRateCollector) Name() string { return "satisfaction_rate" }

func (c *SatisfactionRateCollector) StartSession(float64, network.NodeID, network.Cid) {
	c.sawHit = false
	c.sessions++
}

func (c *SatisfactionRateCollector) CacheHit(network.NodeID) {
	if !c.sawHit {
		c.sawHit = true
		c.satisfied++
		c.cacheHits++
	}
}

func (c *SatisfactionRateCollector) ServerHit(network.NodeID) {
	if !c.sawHit {
		c.sawHit = true
		c.satisfied++
		c.serverHits++
	}
}

func (c *SatisfactionRateCollector) Results() map[string]any {
	if c.sessions == 0 {
		return map[string]any{"mean": 0.0, "mean_server_hit": 0.0, "mean_cache_hit": 0.0}
	}
	return map[string]any{
		"mean":            float64(c.satisfied) / float64(c.sessions),
		"mean_server_hit": float64(c.serverHits) / float64(c.sessions),
		"mean_cache_hit":  float64(c.cacheHits) / float64(c.sessions),
	}
}
