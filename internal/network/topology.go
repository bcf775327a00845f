package network

import (
	"fmt"
	"sort"
)

// Topology is the immutable graph for one simulation run: nodes, edges,
// per-node stack/attributes. Built once via TopologyBuilder and never
// mutated afterward.
type Topology struct {
	nodes map[NodeID]NodeAttrs
	adj   map[NodeID][]Edge
	order []NodeID // insertion order, for deterministic iteration
}

// TopologyBuilder assembles a Topology incrementally (from a file loader or
// tests) before it is frozen into a Model.
type TopologyBuilder struct {
	t *Topology
}

// NewTopologyBuilder creates an empty builder.
func NewTopologyBuilder() *TopologyBuilder {
	return &TopologyBuilder{
		t: &Topology{
			nodes: make(map[NodeID]NodeAttrs),
			adj:   make(map[NodeID][]Edge),
		},
	}
}

// AddNode registers a node with its static attributes. Re-adding an existing
// node id is a configuration error.
func (b *TopologyBuilder) AddNode(id NodeID, attrs NodeAttrs) error {
	if _, exists := b.t.nodes[id]; exists {
		return fmt.Errorf("network: duplicate node %q", id)
	}
	b.t.nodes[id] = attrs
	b.t.order = append(b.t.order, id)
	return nil
}

// AddEdge adds an undirected link between u and v with the given delay and
// type. Both endpoints must already exist.
func (b *TopologyBuilder) AddEdge(u, v NodeID, delay float64, typ EdgeType) error {
	if _, ok := b.t.nodes[u]; !ok {
		return fmt.Errorf("network: edge references unknown node %q", u)
	}
	if _, ok := b.t.nodes[v]; !ok {
		return fmt.Errorf("network: edge references unknown node %q", v)
	}
	if delay <= 0 {
		delay = 1.0
	}
	b.t.adj[u] = append(b.t.adj[u], Edge{To: v, Delay: delay, Type: typ})
	b.t.adj[v] = append(b.t.adj[v], Edge{To: u, Delay: delay, Type: typ})
	return nil
}

// Build finalizes the topology. Neighbor lists are sorted by target id so
// later graph algorithms (shortest path, centrality) tie-break
// deterministically.
func (b *TopologyBuilder) Build() (*Topology, error) {
	for _, edges := range b.t.adj {
		sort.Slice(edges, func(i, j int) bool { return edges[i].To < edges[j].To })
	}
	if len(b.t.nodes) == 0 {
		return nil, fmt.Errorf("network: topology has no nodes")
	}
	return b.t, nil
}

// Nodes returns all node ids in insertion order.
func (t *Topology) Nodes() []NodeID {
	out := make([]NodeID, len(t.order))
	copy(out, t.order)
	return out
}

// Attrs returns a node's static attributes.
func (t *Topology) Attrs(id NodeID) (NodeAttrs, bool) {
	a, ok := t.nodes[id]
	return a, ok
}

// Neighbors returns the edges out of a node, sorted by destination id.
func (t *Topology) Neighbors(id NodeID) []Edge {
	return t.adj[id]
}

// Degree returns the number of neighbors of a node.
func (t *Topology) Degree(id NodeID) int {
	return len(t.adj[id])
}

// LinkDelay looks up the delay of the edge between u and v, in either
// direction, since edges are undirected.
func (t *Topology) LinkDelay(u, v NodeID) (float64, bool) {
	for _, e := range t.adj[u] {
		if e.To == v {
			return e.Delay, true
		}
	}
	return 0, false
}

// LinkType looks up the edge type between u and v, in either direction.
func (t *Topology) LinkType(u, v NodeID) (EdgeType, bool) {
	for _, e := range t.adj[u] {
		if e.To == v {
			return e.Type, true
		}
	}
	return 0, false
}
