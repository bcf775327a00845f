package engine

import "github.com/icnsim/icnsim/internal/network"

// Collector is the full event surface the Controller can emit. Embed
// BaseCollector to implement only the events a concrete collector cares
// about — the rest are dropped as cheap no-ops, matching the "unregistered
// events are dropped cheaply" contract.
type Collector interface {
	Name() string
	StartSession(t float64, receiver network.NodeID, content network.Cid)
	CacheHit(node network.NodeID)
	CacheMiss(node network.NodeID)
	ServerHit(node network.NodeID)
	OffPathHit(node network.NodeID)
	RequestHop(u, v network.NodeID, mainPath bool)
	ContentHop(u, v network.NodeID, mainPath bool)
	PutItem(cid network.Cid)
	EvictItem(cid network.Cid)
	EndSession(success bool)
	Results() map[string]any
}

// BaseCollector is a no-op implementation of Collector. Concrete collectors
// embed it and override only the methods they need.
type BaseCollector struct{}

func (BaseCollector) StartSession(float64, network.NodeID, network.Cid)    {}
func (BaseCollector) CacheHit(network.NodeID)                              {}
func (BaseCollector) CacheMiss(network.NodeID)                             {}
func (BaseCollector) ServerHit(network.NodeID)                             {}
func (BaseCollector) OffPathHit(network.NodeID)                            {}
func (BaseCollector) RequestHop(network.NodeID, network.NodeID, bool)      {}
func (BaseCollector) ContentHop(network.NodeID, network.NodeID, bool)      {}
func (BaseCollector) PutItem(network.Cid)                                  {}
func (BaseCollector) EvictItem(network.Cid)                                {}
func (BaseCollector) EndSession(bool)                                      {}
func (BaseCollector) Results() map[string]any                              { return map[string]any{} }

// Bus fans telemetry out to every registered collector.
type Bus struct {
	collectors []Collector
}

// NewBus creates a collector bus from zero or more collectors.
func NewBus(collectors ...Collector) *Bus {
	return &Bus{collectors: collectors}
}

// Register adds a collector to the bus.
func (b *Bus) Register(c Collector) { b.collectors = append(b.collectors, c) }

func (b *Bus) startSession(t float64, receiver network.NodeID, content network.Cid) {
	for _, c := range b.collectors {
		c.StartSession(t, receiver, content)
	}
}
func (b *Bus) cacheHit(node network.NodeID) {
	for _, c := range b.collectors {
		c.CacheHit(node)
	}
}
func (b *Bus) cacheMiss(node network.NodeID) {
	for _, c := range b.collectors {
		c.CacheMiss(node)
	}
}
func (b *Bus) serverHit(node network.NodeID) {
	for _, c := range b.collectors {
		c.ServerHit(node)
	}
}
func (b *Bus) offPathHit(node network.NodeID) {
	for _, c := range b.collectors {
		c.OffPathHit(node)
	}
}
func (b *Bus) requestHop(u, v network.NodeID, mainPath bool) {
	for _, c := range b.collectors {
		c.RequestHop(u, v, mainPath)
	}
}
func (b *Bus) contentHop(u, v network.NodeID, mainPath bool) {
	for _, c := range b.collectors {
		c.ContentHop(u, v, mainPath)
	}
}
func (b *Bus) putItem(cid network.Cid) {
	for _, c := range b.collectors {
		c.PutItem(cid)
	}
}
func (b *Bus) evictItem(cid network.Cid) {
	for _, c := range b.collectors {
		c.EvictItem(cid)
	}
}
func (b *Bus) endSession(success bool) {
	for _, c := range b.collectors {
		c.EndSession(success)
	}
}

// Results assembles the persisted-result layout: one nested map keyed
// by collector name, then metric name, then value.
func (b *Bus) Results() map[string]map[string]any {
	out := make(map[string]map[string]any, len(b.collectors))
	for _, c := range b.collectors {
		out[c.Name()] = c.Results()
	}
	return out
}
