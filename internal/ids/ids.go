// Package ids holds the two identifier types shared across the whole engine
// (topology, cache, RSN, strategies, workload) so that none of those
// packages need to import each other just to agree on a key type.
package ids

// Cid is an opaque, hashable content identifier drawn from a finite universe
// known at setup.
type Cid int64

// NodeID is an opaque, hashable node identifier.
type NodeID string
