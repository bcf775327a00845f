package network

import "github.com/icnsim/icnsim/internal/rsn"

// View is a read-only facade over a Model. Strategies hold a borrowed View
// and never obtain a *Model directly, so they cannot mutate Cache/RSN state
// except through an engine.Controller.
type View struct {
	model *Model
}

// NewView wraps a Model in a read-only facade.
func NewView(m *Model) *View {
	return &View{model: m}
}

// ContentSource returns the origin node of cid.
func (v *View) ContentSource(cid Cid) (NodeID, bool) {
	return v.model.ContentSource(cid)
}

// ShortestPath returns the precomputed shortest path from u to v.
func (v *View) ShortestPath(u, d NodeID) ([]NodeID, bool) {
	return v.model.ShortestPath(u, d)
}

// LinkDelay looks up the delay of the edge between u and v.
func (v *View) LinkDelay(u, d NodeID) (float64, bool) {
	return v.model.topology.LinkDelay(u, d)
}

// LinkType looks up the edge type between u and v.
func (v *View) LinkType(u, d NodeID) (EdgeType, bool) {
	return v.model.topology.LinkType(u, d)
}

// HasCache reports whether v owns a cache.
func (v *View) HasCache(node NodeID) bool {
	_, ok := v.model.Cache(node)
	return ok
}

// HasRSNTable reports whether node owns an RSN table.
func (v *View) HasRSNTable(node NodeID) bool {
	_, ok := v.model.RSNTable(node)
	return ok
}

// CacheLookup is a non-mutating presence check against node's cache: it does
// not refresh recency and never emits telemetry. Used by warmup and
// diagnostics, not by the request-forwarding hot path.
func (v *View) CacheLookup(node NodeID, cid Cid) bool {
	c, ok := v.model.Cache(node)
	if !ok {
		return false
	}
	return c.Has(cid)
}

// RSNLookup is a non-mutating snapshot of the hint records held at node for
// cid (no lazy-expiration purge, no recency update). Used for diagnostics and
// tests; the forwarding algorithm reads RSN state through the Controller
// instead, where purge-on-access is the defined behavior.
func (v *View) RSNLookup(node NodeID, cid Cid) []rsn.Record {
	tb, ok := v.model.RSNTable(node)
	if !ok {
		return nil
	}
	entry, ok := tb.Get(cid)
	if !ok {
		return nil
	}
	out := make([]rsn.Record, entry.Len())
	copy(out, entry.Snapshot())
	return out
}

// CacheNodes returns every node id that owns a cache.
func (v *View) CacheNodes() []NodeID { return v.model.CacheNodes() }

// RSNNodes returns every node id that owns an RSN table.
func (v *View) RSNNodes() []NodeID { return v.model.RSNNodes() }

// Topology returns the underlying static topology.
func (v *View) Topology() *Topology { return v.model.topology }

// ContentLocations returns every node currently storing cid, including the
// origin.
func (v *View) ContentLocations(cid Cid) []NodeID { return v.model.ContentLocations(cid) }

// Centrality returns the precomputed betweenness centrality of a node, for
// the CL4M caching policy.
func (v *View) Centrality(node NodeID) float64 { return v.model.Centrality(node) }

// Diameter returns the topology's hop-count diameter.
func (v *View) Diameter() int { return v.model.Diameter() }

// Attrs returns a node's static attributes.
func (v *View) Attrs(node NodeID) (NodeAttrs, bool) { return v.model.topology.Attrs(node) }

// Model exposes the underlying Model for the engine.Controller constructor
// only; strategies should never call this.
func (v *View) Model() *Model { return v.model }
