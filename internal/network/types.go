// Package network holds the static topology, the derived all-pairs shortest
// paths and betweenness centrality, and the per-node mutable Cache/RSN state
// (Model), plus the read-only query facade (View) that strategies use.
package network

import (
	"fmt"

	"github.com/icnsim/icnsim/internal/ids"
)

// Cid and NodeID are re-exported from the ids package so existing callers in
// this package can keep writing network.Cid / network.NodeID.
type Cid = ids.Cid
type NodeID = ids.NodeID

// StackKind classifies the role a node plays in the topology.
type StackKind int

const (
	Receiver StackKind = iota
	Router
	Source
)

func (k StackKind) String() string {
	switch k {
	case Receiver:
		return "receiver"
	case Router:
		return "router"
	case Source:
		return "source"
	default:
		return fmt.Sprintf("StackKind(%d)", int(k))
	}
}

// EdgeType distinguishes internal (intra-domain) from external (inter-domain,
// typically higher-delay) links.
type EdgeType int

const (
	Internal EdgeType = iota
	External
)

// NodeAttrs describes a node's static configuration.
type NodeAttrs struct {
	Stack     StackKind
	CacheSize int          // routers and (for SIT-family strategies) receivers
	RsnSize   int          // routers only
	Contents  map[Cid]bool // sources only: ground-truth content set
}

// Edge is one direction of a (conceptually undirected) link.
type Edge struct {
	To    NodeID
	Delay float64
	Type  EdgeType
}
