package metrics

import "github.com/icnsim/icnsim/internal/network"

// LinkLoadCollector counts, per directed edge, how many request_hop and
// content_hop events it carried across the whole run — a simple proxy for
// link utilization that a placement strategy's caching choices can shift
// around.
type LinkLoadCollector struct {
	BaseCollector
	requestHops map[string]int
	contentHops map[string]int
}

func NewLinkLoadCollector() *LinkLoadCollector {
	return &LinkLoadCollector{
		requestHops: make(map[string]int),
		contentHops: make(map[string]int),
	}
}

func (c *LinkLoadCollector) Name() string { return "link_load" }

func (c *LinkLoadCollector) RequestHop(u, v network.NodeID, _ bool) {
	c.requestHops[nodeKey(u, v)]++
}

func (c *LinkLoadCollector) ContentHop(u, v network.NodeID, _ bool) {
	c.contentHops[nodeKey(u, v)]++
}

func (c *LinkLoadCollector) Results() map[string]any {
	out := make(map[string]any, 2)
	out["request_hops"] = copyIntMap(c.requestHops)
	out["content_hops"] = copyIntMap(c.contentHops)
	return out
}

func copyIntMap(m map[string]int) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
