package strategy

import (
	"github.com/icnsim/icnsim/internal/engine"
	"github.com/icnsim/icnsim/internal/network"
)

// OnPathWalk walks the precomputed shortest path from the session's receiver
// to its source, emitting a request_hop at every edge and a cache lookup at
// every hop with a cache. It stops at the first hit — on-path cache or the
// source's unconditional server_hit — and returns the walked prefix.
//
// Strategies that compose this helper differ only in what they do with
// servingNode afterward (caching decisions on the return trail); the
// RSN-guided strategies run their own on-path loop so they can detour at
// each hop.
func OnPathWalk(v *network.View, c *engine.Controller) (path []network.NodeID, servingNode network.NodeID, cacheHit bool) {
	s := c.Session()
	full, ok := v.ShortestPath(s.Receiver, s.Source)
	if !ok {
		panic("strategy: no shortest path from receiver to source")
	}
	if len(full) == 1 {
		c.GetContent(full[0])
		return full, full[0], false
	}
	for i := 0; i+1 < len(full); i++ {
		u, w := full[i], full[i+1]
		c.ForwardRequestHop(u, w, true)
		s.ChargeHop()
		if c.GetContent(w) {
			return full[:i+2], w, w != s.Source
		}
	}
	last := full[len(full)-1]
	return full, last, false
}

// OffPathTrail is the outcome of one explored off-path detour.
type OffPathTrail struct {
	// Nodes is the full node sequence from the on-path jump-off point through
	// the off-path hops, inclusive of the serving node. Empty on a failed
	// detour (loop, dead end, or quota/detour-limit exhaustion).
	Nodes []network.NodeID
	Hit   bool
}

// FollowOffPathTrail explores a single off-path detour starting at
// onPathNode via firstHop, following the off-path trail-follow algorithm:
//
//  1. Loop check: if the next candidate node is already in the explored
//     trail, the trail is invalidated and abandoned.
//  2. At each new node, check for content (cache or source); a hit commits
//     the trail.
//  3. Otherwise consult the node's RSN entry for a fresh record whose next
//     hop isn't where we came from, and step there; if none exists, the
//     trail is a dead end and is invalidated.
//
// maxHops bounds the number of off-path hops (0 = unbounded, i.e. governed
// only by quota charged via Session.ChargeHop by the caller's quota check,
// which FollowOffPathTrail does not itself enforce beyond charging hops).
func FollowOffPathTrail(v *network.View, c *engine.Controller, onPathNode, firstHop network.NodeID, maxHops int, fresh, expiration float64) OffPathTrail {
	s := c.Session()
	explored := []network.NodeID{onPathNode}
	cur := firstHop

	for {
		looped := false
		for _, n := range explored {
			if n == cur {
				looped = true
				break
			}
		}
		if looped {
			c.InvalidateTrail(append(append([]network.NodeID{}, explored...), cur), nil)
			return OffPathTrail{}
		}

		prev := explored[len(explored)-1]
		c.ForwardRequestHop(prev, cur, false)
		s.ChargeHop()
		explored = append(explored, cur)

		if maxHops > 0 && len(explored)-1 > maxHops {
			c.InvalidateTrail(explored, nil)
			return OffPathTrail{}
		}

		if cur == s.Source || v.HasCache(cur) {
			if c.GetContent(cur) {
				c.OffPathHit(cur)
				return OffPathTrail{Nodes: explored, Hit: true}
			}
		}

		entry, ok := c.GetRSN(cur, nil)
		if !ok || entry.Empty() {
			c.InvalidateTrail(explored, nil)
			return OffPathTrail{}
		}
		rec, found := entry.GetFreshestExcept(s.Timestamp, expiration, prev)
		if !found || !rec.Fresh(s.Timestamp, fresh) {
			c.InvalidateTrail(explored, nil)
			return OffPathTrail{}
		}
		cur = rec.NextHop
	}
}

// CachingDecision carries what a CachingPolicy needs to decide whether to
// cache at one node of a content-delivery trail.
type CachingDecision struct {
	View        *network.View
	Trail       []network.NodeID
	Idx         int // index of the candidate node within Trail
	ServingIdx  int // index of the node that actually served the content
	OffPathHit  bool
}

// CachingPolicy decides whether to cache content at Trail[d.Idx] during
// return-path delivery.
type CachingPolicy func(d CachingDecision) bool

// DeliverContent walks trail in reverse — from the serving node back to the
// receiver — applying PIT-style per-node dedup (at most one
// content-packet delivery per node per session), RSN breadcrumb maintenance,
// and the strategy's caching policy. mainPath marks every content_hop emitted
// this call as belonging (or not) to the overall primary trail, for
// multi-path scenarios where several trails return concurrently.
//
// trail must run receiver..servingNode inclusive (the shape OnPathWalk and
// FollowOffPathTrail both produce, concatenated for off-path hits). fresh and
// expiration are the strategy's configured RSN freshness parameters.
func DeliverContent(v *network.View, c *engine.Controller, trail []network.NodeID, mainPath, offPathHit bool, policy CachingPolicy, fresh, expiration float64) {
	s := c.Session()
	n := len(trail)
	if n == 0 {
		return
	}
	servingIdx := n - 1
	for idx := servingIdx; idx >= 1; idx-- {
		from, to := trail[idx], trail[idx-1]

		first := s.MarkVisited(to)
		if !first {
			break
		}
		c.ForwardContentHop(from, to, mainPath)

		// Breadcrumb: the upstream node (from) remembers it forwarded content
		// downstream to `to`.
		if tb, ok := c.GetOrCreateRSN(from, nil); ok {
			tb.Insert(s.Timestamp, expiration, rsnMaxRecords(v, from), to, trail[servingIdx], uint32(servingIdx-idx), false)
			c.PutRSN(from, tb, nil)
		}

		// Off-path-hit trails additionally confirm the hint that was
		// followed to find content: the downstream node (to) records a
		// used-before pointer back upstream toward `from`.
		if offPathHit {
			if tb, ok := c.GetOrCreateRSN(to, nil); ok {
				tb.Insert(s.Timestamp, expiration, rsnMaxRecords(v, to), from, trail[servingIdx], uint32(servingIdx-idx+1), true)
				c.PutRSN(to, tb, nil)
			}
		}

		if policy != nil && v.HasCache(to) {
			if policy(CachingDecision{View: v, Trail: trail, Idx: idx - 1, ServingIdx: servingIdx, OffPathHit: offPathHit}) {
				c.PutContent(to)
			}
		}
	}
}

// effectiveBound combines a strategy's static max-detour bound with however
// much of the session's quota remains, picking whichever is tighter. A
// non-positive maxDetour means "no static bound"; a negative remaining is
// clamped to zero. FollowOffPathTrail reads a bound of 0 as unbounded, so
// every caller checks that quota is left before following a trail.
func effectiveBound(maxDetour, remaining int) int {
	if remaining < 0 {
		remaining = 0
	}
	if maxDetour <= 0 || remaining < maxDetour {
		return remaining
	}
	return maxDetour
}

// rsnMaxRecords bounds an RSN entry's record count by the owning node's
// degree ("an RSN entry never holds more records than the node has
// neighbors").
func rsnMaxRecords(v *network.View, node network.NodeID) int {
	return v.Topology().Degree(node)
}
