package strategy

import (
	"sort"

	"github.com/icnsim/icnsim/internal/engine"
	"github.com/icnsim/icnsim/internal/network"
	"github.com/icnsim/icnsim/internal/workload"
)

// liraDFIB is LIRA-DFIB: like the shared RSN-guided driver, but at each
// on-path node it fans out up to fanOut concurrent off-path trails (the
// freshest RSN hints toward distinct next hops) rather than following a
// single detour, per a fan-out parameter k. oph (off-path hops
// counted) controls whether a failed detour's hop charges remain against
// the session quota or are refunded — some deployments of DFIB exclude
// failed probes from the budget entirely ("optimistic" probing), which this
// flag models.
type liraDFIB struct {
	policy     CachingPolicy
	fresh      float64
	expiration float64
	maxDetour  int
	extraQuota int
	fanOut     int
	oph        bool
}

// fanOutOrDefault falls back to a single trail when the config leaves
// FanOut unset.
func fanOutOrDefault(cfg Config) int {
	if cfg.FanOut > 0 {
		return cfg.FanOut
	}
	return 1
}

// NewLiraDFIB constructs LIRA-DFIB with LCE return-path caching.
func NewLiraDFIB(cfg Config) Strategy {
	return &liraDFIB{policy: PolicyLCE, fresh: cfg.Fresh, expiration: cfg.Expiration, maxDetour: cfg.MaxDetour, extraQuota: cfg.ExtraQuota, fanOut: fanOutOrDefault(cfg), oph: true}
}

// NewLiraDFIBNoOPH constructs LIRA-DFIB with failed-probe hops excluded from
// the session quota.
func NewLiraDFIBNoOPH(cfg Config) Strategy {
	return &liraDFIB{policy: PolicyLCE, fresh: cfg.Fresh, expiration: cfg.Expiration, maxDetour: cfg.MaxDetour, extraQuota: cfg.ExtraQuota, fanOut: fanOutOrDefault(cfg), oph: false}
}

func init() {
	Register("lira_dfib", NewLiraDFIB)
	Register("lira_dfib_no_oph", NewLiraDFIBNoOPH)
}

func (l *liraDFIB) Name() string {
	if l.oph {
		return "lira_dfib"
	}
	return "lira_dfib_no_oph"
}

func (l *liraDFIB) Process(v *network.View, c *engine.Controller, _ workload.Event) {
	sess := c.Session()
	full, ok := v.ShortestPath(sess.Receiver, sess.Source)
	if !ok {
		panic("strategy: no shortest path from receiver to source")
	}

	onPath := []network.NodeID{full[0]}
	if len(full) == 1 {
		c.GetContent(full[0])
		DeliverContent(v, c, onPath, true, false, l.policy, l.fresh, l.expiration)
		return
	}

	quota := len(full) - 1 + l.extraQuota

	for i := 0; i+1 < len(full); i++ {
		u, w := full[i], full[i+1]
		c.ForwardRequestHop(u, w, true)
		sess.ChargeHop()
		onPath = append(onPath, w)

		if c.GetContent(w) {
			DeliverContent(v, c, onPath, true, false, l.policy, l.fresh, l.expiration)
			return
		}

		if v.HasRSNTable(w) && sess.QuotaUsed() < quota {
			entry, ok := c.GetRSN(w, nil)
			if !ok || entry.Empty() {
				continue
			}
			candidates := entry.GetTopKFreshestExcept(sess.Timestamp, l.expiration, u, l.fanOut)
			var hitTrails [][]network.NodeID
			for _, rec := range candidates {
				if sess.QuotaUsed() >= quota || !rec.Fresh(sess.Timestamp, l.fresh) {
					continue
				}
				before := sess.QuotaUsed()
				bound := effectiveBound(l.maxDetour, quota-before)
				trail := FollowOffPathTrail(v, c, w, rec.NextHop, bound, l.fresh, l.expiration)
				if trail.Hit {
					hitTrails = append(hitTrails, trail.Nodes)
					continue
				}
				if !l.oph {
					sess.RefundHops(sess.QuotaUsed() - before)
				}
			}
			if len(hitTrails) > 0 {
				// Return-path processing: sort discovered trails
				// shortest-first, forward the Interest only along the
				// shortest, walk every trail in reverse to deliver content
				// (Session.MarkVisited dedups the PIT-aggregated overlap).
				sort.Slice(hitTrails, func(a, b int) bool { return len(hitTrails[a]) < len(hitTrails[b]) })
				for idx, t := range hitTrails {
					full := append(append([]network.NodeID{}, onPath...), t[1:]...)
					DeliverContent(v, c, full, idx == 0, true, l.policy, l.fresh, l.expiration)
				}
				return
			}
		}
	}
}
