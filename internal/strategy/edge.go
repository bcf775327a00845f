package strategy

import (
	"github.com/icnsim/icnsim/internal/engine"
	"github.com/icnsim/icnsim/internal/network"
	"github.com/icnsim/icnsim/internal/workload"
)

// edge implements Edge caching: only the first on-path cache encountered
// walking from the receiver (the PoP-local "edge" cache) is ever consulted.
// A miss there goes straight to the source without probing any further
// on-path cache; a request that never reaches a cache at all behaves like
// NoCache. Only that edge cache is ever a candidate for insertion on return.
type edge struct{}

// NewEdge constructs the Edge strategy.
func NewEdge(Config) Strategy { return &edge{} }

func init() { Register("edge", NewEdge) }

func (edge) Name() string { return "edge" }

func (edge) Process(v *network.View, c *engine.Controller, _ workload.Event) {
	sess := c.Session()
	full, ok := v.ShortestPath(sess.Receiver, sess.Source)
	if !ok {
		panic("strategy: no shortest path from receiver to source")
	}

	path := []network.NodeID{full[0]}
	if len(full) == 1 {
		c.GetContent(full[0])
		DeliverContent(v, c, path, true, false, PolicyNoCache, 0, 0)
		return
	}

	edgeCacheIdx := -1
	hit := false
	next := 0
	for i := 0; i+1 < len(full); i++ {
		u, w := full[i], full[i+1]
		c.ForwardRequestHop(u, w, true)
		sess.ChargeHop()
		path = append(path, w)
		next = i + 1
		if v.HasCache(w) {
			edgeCacheIdx = len(path) - 1
			hit = c.GetContent(w)
			break
		}
	}

	if edgeCacheIdx < 0 || !hit {
		// No cache on the path at all, or the edge cache missed: continue
		// straight to the source without consulting any other cache.
		for i := next; i+1 < len(full); i++ {
			u, w := full[i], full[i+1]
			c.ForwardRequestHop(u, w, true)
			sess.ChargeHop()
			path = append(path, w)
		}
		c.GetContent(sess.Source)
	}

	// If no cache exists anywhere on the path there is nothing to insert
	// into; the policy below simply never fires.
	policy := func(d CachingDecision) bool { return edgeCacheIdx >= 0 && d.Idx == edgeCacheIdx }
	DeliverContent(v, c, path, true, false, policy, 0, 0)
}
