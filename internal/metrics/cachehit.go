// Package metrics implements the concrete telemetry collectors that plug
// into an engine.Bus: per-content cache hit ratios, hop-count latency,
// link load, RSN freshness, and overhead accounting, plus an optional
// Prometheus exporter and a concurrency-safe named registry for ad hoc
// collector lookup from the CLI.
package metrics

import "github.com/icnsim/icnsim/internal/network"

// CacheHitRatioCollector tracks, per content id, the fraction of sessions
// that were satisfied by a cache hit (on-path or off-path) rather than a
// server hit. This resolves the "collapsed scalar vs per-content map" open
// ambiguity in favor of the per-content map: Results() reports an actual
// ratio per content id, not a single aggregate number.
type CacheHitRatioCollector struct {
	BaseCollector
	content network.Cid
	hits    map[network.Cid]int
	misses  map[network.Cid]int
}

// NewCacheHitRatioCollector constructs an empty collector.
func NewCacheHitRatioCollector() *CacheHitRatioCollector {
	return &CacheHitRatioCollector{
		hits:   make(map[network.Cid]int),
		misses: make(map[network.Cid]int),
	}
}

func (c *CacheHitRatioCollector) Name() string { return "cache_hit_ratio" }

func (c *CacheHitRatioCollector) StartSession(_ float64, _ network.NodeID, content network.Cid) {
	c.content = content
}

func (c *CacheHitRatioCollector) CacheHit(network.NodeID) {
	c.hits[c.content]++
}

func (c *CacheHitRatioCollector) ServerHit(network.NodeID) {
	c.misses[c.content]++
}

// Results reports, per content id, hits / (hits + misses).
func (c *CacheHitRatioCollector) Results() map[string]any {
	out := make(map[string]any, len(c.hits)+len(c.misses))
	seen := make(map[network.Cid]bool)
	for cid := range c.hits {
		seen[cid] = true
	}
	for cid := range c.misses {
		seen[cid] = true
	}
	for cid := range seen {
		total := c.hits[cid] + c.misses[cid]
		ratio := 0.0
		if total > 0 {
			ratio = float64(c.hits[cid]) / float64(total)
		}
		out[cidKey(cid)] = ratio
	}
	return out
}
