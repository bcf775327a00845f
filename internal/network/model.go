package network

import (
	"fmt"

	"github.com/icnsim/icnsim/internal/cache"
	"github.com/icnsim/icnsim/internal/rsn"
)

// Model owns the topology plus every node's mutable Cache and RSN state for
// one simulation run. Strategies never touch a Model directly — they borrow
// a View (reads) and an engine.Controller (mutation + telemetry), both of
// which close over a Model.
type Model struct {
	topology      *Topology
	shortestPaths map[NodeID]map[NodeID][]NodeID
	centrality    map[NodeID]float64
	diameter      int
	caches        map[NodeID]*cache.Cache
	rsnTables     map[NodeID]*rsn.Table
	contentSource map[Cid]NodeID
}

// NewModel builds a Model from a finalized Topology: it precomputes
// all-pairs shortest paths and betweenness centrality, builds the
// content-origin index from Source nodes' Contents sets, and allocates a
// Cache for every node that declares a nonzero cache size and an RSN table
// for every Router node that declares a nonzero RSN size.
func NewModel(t *Topology) (*Model, error) {
	m := &Model{
		topology:      t,
		shortestPaths: AllPairsShortestPaths(t),
		centrality:    BetweennessCentrality(t),
		caches:        make(map[NodeID]*cache.Cache),
		rsnTables:     make(map[NodeID]*rsn.Table),
		contentSource: make(map[Cid]NodeID),
	}
	m.diameter = hopDiameter(m.shortestPaths)

	for _, n := range t.Nodes() {
		attrs, _ := t.Attrs(n)
		if attrs.CacheSize > 0 {
			m.caches[n] = cache.New(attrs.CacheSize)
		}
		if attrs.Stack == Router && attrs.RsnSize > 0 {
			m.rsnTables[n] = rsn.NewTable(attrs.RsnSize)
		}
		if attrs.Stack == Source {
			for cid := range attrs.Contents {
				if existing, ok := m.contentSource[cid]; ok {
					return nil, fmt.Errorf("network: content %d has multiple origins (%s and %s)", cid, existing, n)
				}
				m.contentSource[cid] = n
			}
		}
	}
	return m, nil
}

// Topology returns the underlying static topology.
func (m *Model) Topology() *Topology { return m.topology }

// Cache returns the cache instance at v, if it has one.
func (m *Model) Cache(v NodeID) (*cache.Cache, bool) {
	c, ok := m.caches[v]
	return c, ok
}

// RSNTable returns the RSN table at v, if it has one.
func (m *Model) RSNTable(v NodeID) (*rsn.Table, bool) {
	tb, ok := m.rsnTables[v]
	return tb, ok
}

// ContentSource returns the origin node of cid.
func (m *Model) ContentSource(cid Cid) (NodeID, bool) {
	n, ok := m.contentSource[cid]
	return n, ok
}

// ShortestPath returns the precomputed shortest path from u to v, inclusive
// of both endpoints.
func (m *Model) ShortestPath(u, v NodeID) ([]NodeID, bool) {
	byDst, ok := m.shortestPaths[u]
	if !ok {
		return nil, false
	}
	path, ok := byDst[v]
	return path, ok
}

// Centrality returns the precomputed betweenness centrality of v.
func (m *Model) Centrality(v NodeID) float64 {
	return m.centrality[v]
}

// Diameter returns the topology's hop-count diameter: the longest shortest
// path, measured in hops, between any two nodes. Hashrouting-HybridAM uses
// it to scale the stretch budget it will tolerate before preferring
// multicast over the asymmetric path.
func (m *Model) Diameter() int { return m.diameter }

// hopDiameter derives the hop-count diameter from the precomputed
// all-pairs shortest-path table.
func hopDiameter(paths map[NodeID]map[NodeID][]NodeID) int {
	max := 0
	for _, byDst := range paths {
		for _, p := range byDst {
			if hops := len(p) - 1; hops > max {
				max = hops
			}
		}
	}
	return max
}

// CacheNodes returns every node id that owns a cache.
func (m *Model) CacheNodes() []NodeID {
	out := make([]NodeID, 0, len(m.caches))
	for _, n := range m.topology.Nodes() {
		if _, ok := m.caches[n]; ok {
			out = append(out, n)
		}
	}
	return out
}

// RSNNodes returns every node id that owns an RSN table.
func (m *Model) RSNNodes() []NodeID {
	out := make([]NodeID, 0, len(m.rsnTables))
	for _, n := range m.topology.Nodes() {
		if _, ok := m.rsnTables[n]; ok {
			out = append(out, n)
		}
	}
	return out
}

// ContentLocations returns every node currently storing cid, including the
// origin.
func (m *Model) ContentLocations(cid Cid) []NodeID {
	var out []NodeID
	if origin, ok := m.contentSource[cid]; ok {
		out = append(out, origin)
	}
	for _, n := range m.topology.Nodes() {
		if c, ok := m.caches[n]; ok && c.Has(cid) {
			if origin, hasOrigin := m.contentSource[cid]; !hasOrigin || origin != n {
				out = append(out, n)
			}
		}
	}
	return out
}
