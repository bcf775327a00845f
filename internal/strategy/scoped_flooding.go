package strategy

import (
	"sort"

	"github.com/icnsim/icnsim/internal/detrng"
	"github.com/icnsim/icnsim/internal/engine"
	"github.com/icnsim/icnsim/internal/network"
	"github.com/icnsim/icnsim/internal/workload"
)

// bfsWithinScope returns every node reachable from src within scope hops
// (excluding src itself), ordered by hop count ascending then node id, for
// deterministic flood ordering. scope <= 0 means unbounded (flood the whole
// graph).
func bfsWithinScope(v *network.View, src network.NodeID, scope int) []network.NodeID {
	type entry struct {
		node network.NodeID
		hops int
	}
	visited := map[network.NodeID]int{src: 0}
	queue := []network.NodeID{src}
	var order []entry

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		hops := visited[cur]
		if scope > 0 && hops >= scope {
			continue
		}
		for _, e := range v.Topology().Neighbors(cur) {
			if _, seen := visited[e.To]; seen {
				continue
			}
			visited[e.To] = hops + 1
			order = append(order, entry{node: e.To, hops: hops + 1})
			queue = append(queue, e.To)
		}
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i].hops != order[j].hops {
			return order[i].hops < order[j].hops
		}
		return order[i].node < order[j].node
	})
	out := make([]network.NodeID, len(order))
	for i, e := range order {
		out[i] = e.node
	}
	return out
}

// scopedFlooding fans a request out to every node within a hop-bounded
// scope, probing each one's cache; every node that answers delivers content
// back along its own shortest path to the receiver, with Session's
// per-node visited-set collapsing duplicate deliveries where those return
// paths converge. If nothing inside the scope has the content, it falls
// back to an ordinary on-path walk to guarantee a hit at the source.
type scopedFlooding struct {
	name       string
	scope      int
	policy     CachingPolicy
	useRSN     bool
	fresh      float64
	expiration float64
}

// scopeOrDefault falls back to a 2-hop radius when the config leaves Scope
// unset, so the strategy is still exercisable without a fully-populated
// strategy config.
func scopeOrDefault(cfg Config) int {
	if cfg.Scope > 0 {
		return cfg.Scope
	}
	return 2
}

// NewScopedFlooding constructs SCOPED_FLOODING with Bernoulli(p) caching on
// return, distinguishing it from SIT-SCOPED-FLOODING's LCE.
func NewScopedFlooding(cfg Config) Strategy {
	p := cfg.BernoulliP
	if p <= 0 {
		p = 0.5
	}
	rng := detrng.NewPartitioned(cfg.MasterSeed).ForSubsystem(detrng.SubsystemStrategyRand)
	policy := func(CachingDecision) bool { return rng.Float64() < p }
	return &scopedFlooding{name: "scoped_flooding", scope: scopeOrDefault(cfg), policy: policy, fresh: cfg.Fresh, expiration: cfg.Expiration}
}

// NewSitScopedFlooding constructs SIT-with-Scoped-Flooding: the same
// bounded flood, but each probed node also consults its RSN entry and the
// flood additionally covers nodes reachable via a fresh breadcrumb, not just
// topological hop count. Caching on return is LCE, matching SIT-ONLY.
func NewSitScopedFlooding(cfg Config) Strategy {
	return &scopedFlooding{name: "sit_scoped_flooding", scope: scopeOrDefault(cfg), policy: PolicyLCE, useRSN: true, fresh: cfg.Fresh, expiration: cfg.Expiration}
}

func init() {
	Register("scoped_flooding", NewScopedFlooding)
	Register("sit_scoped_flooding", NewSitScopedFlooding)
}

func (s *scopedFlooding) Name() string { return s.name }

func (s *scopedFlooding) Process(v *network.View, c *engine.Controller, _ workload.Event) {
	sess := c.Session()
	candidates := bfsWithinScope(v, sess.Receiver, s.scope)

	var hitTrails [][]network.NodeID
	for _, node := range candidates {
		path, ok := v.ShortestPath(sess.Receiver, node)
		if !ok {
			continue
		}
		for i := 0; i+1 < len(path); i++ {
			c.ForwardRequestHop(path[i], path[i+1], false)
			sess.ChargeHop()
		}

		hit := c.GetContent(node)
		if !hit && s.useRSN && v.HasRSNTable(node) {
			if entry, ok := c.GetRSN(node, nil); ok && !entry.Empty() {
				if rec, found := entry.GetFreshestExcept(sess.Timestamp, s.expiration, path[len(path)-2]); found && rec.Fresh(sess.Timestamp, s.fresh) {
					trail := FollowOffPathTrail(v, c, node, rec.NextHop, 0, s.fresh, s.expiration)
					if trail.Hit {
						full := append(append([]network.NodeID{}, path...), trail.Nodes[1:]...)
						hitTrails = append(hitTrails, full)
						continue
					}
				}
			}
		}
		if hit {
			hitTrails = append(hitTrails, path)
		}
	}

	if len(hitTrails) == 0 {
		path, _, _ := OnPathWalk(v, c)
		hitTrails = [][]network.NodeID{path}
	}

	for i, trail := range hitTrails {
		DeliverContent(v, c, trail, i == 0, false, s.policy, s.fresh, s.expiration)
	}
}
