package strategy

import (
	"github.com/icnsim/icnsim/internal/engine"
	"github.com/icnsim/icnsim/internal/network"
	"github.com/icnsim/icnsim/internal/workload"
)

// liraBC is LIRA-BC (Breadcrumbs): RSN-guided detour exactly like the shared
// driver, but the caching decision on the return trail considers the whole
// realized trail (on-path prefix plus any off-path hops), caching at the
// single node of highest betweenness centrality among cache-capable nodes
// actually visited — rather than picking that node from the static
// shortest path alone, as plain CL4M does.
type liraBC struct {
	name       string
	fresh      float64
	expiration float64
	maxDetour  int
	extraQuota int
	hybrid     bool // LIRA-BC-HYBRID also falls back to LCD at the serving node's downstream neighbor
}

// NewLiraBC constructs LIRA-BC.
func NewLiraBC(cfg Config) Strategy {
	return &liraBC{name: "lira_bc", fresh: cfg.Fresh, expiration: cfg.Expiration, maxDetour: cfg.MaxDetour, extraQuota: cfg.ExtraQuota}
}

// NewLiraBCHybrid constructs LIRA-BC-HYBRID: LIRA-BC's centrality-weighted
// placement, plus an unconditional LCD copy one hop downstream of wherever
// content was actually served, so a cold-centrality trail still leaves at
// least one copy behind.
func NewLiraBCHybrid(cfg Config) Strategy {
	return &liraBC{name: "lira_bc_hybrid", fresh: cfg.Fresh, expiration: cfg.Expiration, maxDetour: cfg.MaxDetour, extraQuota: cfg.ExtraQuota, hybrid: true}
}

func init() {
	Register("lira_bc", NewLiraBC)
	Register("lira_bc_hybrid", NewLiraBCHybrid)
}

func (l *liraBC) Name() string { return l.name }

func (l *liraBC) Process(v *network.View, c *engine.Controller, _ workload.Event) {
	sess := c.Session()
	full, ok := v.ShortestPath(sess.Receiver, sess.Source)
	if !ok {
		panic("strategy: no shortest path from receiver to source")
	}

	onPath := []network.NodeID{full[0]}
	var finalTrail []network.NodeID
	offPathHit := false

	if len(full) == 1 {
		c.GetContent(full[0])
		finalTrail = onPath
	} else {
		quota := len(full) - 1 + l.extraQuota
		for i := 0; i+1 < len(full); i++ {
			u, w := full[i], full[i+1]
			c.ForwardRequestHop(u, w, true)
			sess.ChargeHop()
			onPath = append(onPath, w)

			if c.GetContent(w) {
				finalTrail = onPath
				break
			}

			if v.HasRSNTable(w) && sess.QuotaUsed() < quota {
				if entry, ok := c.GetRSN(w, nil); ok && !entry.Empty() {
					if rec, found := entry.GetFreshestExcept(sess.Timestamp, l.expiration, u); found && rec.Fresh(sess.Timestamp, l.fresh) {
						bound := effectiveBound(l.maxDetour, quota-sess.QuotaUsed())
						trail := FollowOffPathTrail(v, c, w, rec.NextHop, bound, l.fresh, l.expiration)
						if trail.Hit {
							finalTrail = append(append([]network.NodeID{}, onPath...), trail.Nodes[1:]...)
							offPathHit = true
							break
						}
					}
				}
			}
		}
	}

	if finalTrail == nil {
		// The on-path walk above always ends in a hit at the source
		// (GetContent is unconditional there), so this is unreachable in
		// practice; kept defensive for a malformed topology.
		finalTrail = onPath
	}

	servingIdx := len(finalTrail) - 1
	best := -1
	bestCentrality := -1.0
	for i, node := range finalTrail {
		if !v.HasCache(node) {
			continue
		}
		cv := v.Centrality(node)
		if cv > bestCentrality {
			bestCentrality = cv
			best = i
		}
	}

	policy := func(d CachingDecision) bool {
		if d.Idx == best {
			return true
		}
		if l.hybrid && d.Idx == servingIdx-1 {
			return true
		}
		return false
	}
	DeliverContent(v, c, finalTrail, true, offPathHit, policy, l.fresh, l.expiration)
}
