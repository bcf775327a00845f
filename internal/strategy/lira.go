package strategy

import (
	"github.com/icnsim/icnsim/internal/engine"
	"github.com/icnsim/icnsim/internal/network"
	"github.com/icnsim/icnsim/internal/workload"
)

// rsnGuided is the shared driver behind the single-trail RSN-hint-guided
// strategies (LIRA-LCE, LIRA-Choice, LIRA-ProbCache, SIT-ONLY, NDN-SIT):
// walk on-path, and at every hop that
// doesn't hit, consult the node's RSN entry for a fresh hint and, if found,
// take one off-path detour via FollowOffPathTrail before continuing on-path.
// The first detour that hits wins; a failed detour (loop/dead-end/quota) or
// no hint at all just continues the on-path walk. Named strategies differ
// only in their caching policy and RSN freshness/detour-bound configuration.
type rsnGuided struct {
	name       string
	policy     CachingPolicy
	fresh      float64
	expiration float64
	maxDetour  int
	extraQuota int
}

func (s *rsnGuided) Name() string { return s.name }

func (s *rsnGuided) Process(v *network.View, c *engine.Controller, _ workload.Event) {
	sess := c.Session()
	full, ok := v.ShortestPath(sess.Receiver, sess.Source)
	if !ok {
		panic("strategy: no shortest path from receiver to source")
	}

	onPath := []network.NodeID{full[0]}
	if len(full) == 1 {
		c.GetContent(full[0])
		DeliverContent(v, c, onPath, true, false, s.policy, s.fresh, s.expiration)
		return
	}

	quota := len(full) - 1 + s.extraQuota

	for i := 0; i+1 < len(full); i++ {
		u, w := full[i], full[i+1]
		c.ForwardRequestHop(u, w, true)
		sess.ChargeHop()
		onPath = append(onPath, w)

		if c.GetContent(w) {
			DeliverContent(v, c, onPath, true, false, s.policy, s.fresh, s.expiration)
			return
		}

		if v.HasRSNTable(w) && sess.QuotaUsed() < quota {
			if entry, ok := c.GetRSN(w, nil); ok && !entry.Empty() {
				if rec, found := entry.GetFreshestExcept(sess.Timestamp, s.expiration, u); found && rec.Fresh(sess.Timestamp, s.fresh) {
					bound := effectiveBound(s.maxDetour, quota-sess.QuotaUsed())
					trail := FollowOffPathTrail(v, c, w, rec.NextHop, bound, s.fresh, s.expiration)
					if trail.Hit {
						full := append(append([]network.NodeID{}, onPath...), trail.Nodes[1:]...)
						DeliverContent(v, c, full, true, true, s.policy, s.fresh, s.expiration)
						return
					}
				}
			}
		}
	}
}

// nrr implements Nearest Replica Routing: rather than walking the
// receiver-to-source shortest path and hoping for an on-path hit, it first
// asks the Model which nodes currently hold the content (including the
// origin) and routes directly to whichever is fewest hops away, then
// delivers back with the configured metacaching policy (LCE by default, LCD
// when so configured).
type nrr struct {
	policy CachingPolicy
}

// NewNRR constructs Nearest Replica Routing.
func NewNRR(cfg Config) Strategy {
	policy := PolicyLCE
	if cfg.Metacaching == "lcd" {
		policy = PolicyLCD
	}
	return &nrr{policy: policy}
}

func (s *nrr) Name() string { return "nrr" }

func (s *nrr) Process(v *network.View, c *engine.Controller, _ workload.Event) {
	sess := c.Session()
	target, ok := nearestReplica(v, sess.Content, sess.Receiver)
	if !ok {
		target = sess.Source
	}

	full, ok := v.ShortestPath(sess.Receiver, target)
	if !ok {
		panic("strategy: no shortest path from receiver to nearest replica")
	}

	path := []network.NodeID{full[0]}
	if len(full) == 1 {
		c.GetContent(full[0])
		DeliverContent(v, c, path, true, false, s.policy, 0, 0)
		return
	}
	for i := 0; i+1 < len(full); i++ {
		u, w := full[i], full[i+1]
		c.ForwardRequestHop(u, w, true)
		sess.ChargeHop()
		path = append(path, w)
		if c.GetContent(w) {
			break
		}
	}
	DeliverContent(v, c, path, true, false, s.policy, 0, 0)
}

// nearestReplica picks the content location (cache copy or origin) with the
// fewest hops from receiver, breaking ties by NodeID for determinism.
func nearestReplica(v *network.View, cid network.Cid, receiver network.NodeID) (network.NodeID, bool) {
	locs := v.ContentLocations(cid)
	best := network.NodeID("")
	bestLen := -1
	found := false
	for _, loc := range locs {
		path, ok := v.ShortestPath(receiver, loc)
		if !ok {
			continue
		}
		n := len(path)
		if !found || n < bestLen || (n == bestLen && loc < best) {
			best, bestLen, found = loc, n, true
		}
	}
	return best, found
}

// NewLiraLCE constructs LIRA-LCE: RSN-guided detour, LCE caching on return.
func NewLiraLCE(cfg Config) Strategy {
	return &rsnGuided{name: "lira_lce", policy: PolicyLCE, fresh: cfg.Fresh, expiration: cfg.Expiration, maxDetour: cfg.MaxDetour, extraQuota: cfg.ExtraQuota}
}

// NewLiraChoice constructs LIRA-Choice: RSN-guided detour, RandomChoice
// caching on return (one uniformly chosen on-path/off-path cache node).
func NewLiraChoice(cfg Config) Strategy {
	rc := NewRandomChoice(cfg).(*randomChoice)
	return &rsnGuided{
		name:       "lira_choice",
		fresh:      cfg.Fresh,
		expiration: cfg.Expiration,
		maxDetour:  cfg.MaxDetour,
		extraQuota: cfg.ExtraQuota,
		policy: func(d CachingDecision) bool {
			var cacheIdxs []int
			for i, node := range d.Trail {
				if d.View.HasCache(node) {
					cacheIdxs = append(cacheIdxs, i)
				}
			}
			if len(cacheIdxs) == 0 {
				return false
			}
			chosen := cacheIdxs[rc.rng.Intn(len(cacheIdxs))]
			return d.Idx == chosen
		},
	}
}

// NewLiraProbCache constructs LIRA-ProbCache: RSN-guided detour, ProbCache
// caching on return.
func NewLiraProbCache(cfg Config) Strategy {
	pc := NewProbCache(cfg).(*probCache)
	return &rsnGuided{
		name:       "lira_prob_cache",
		fresh:      cfg.Fresh,
		expiration: cfg.Expiration,
		maxDetour:  cfg.MaxDetour,
		extraQuota: cfg.ExtraQuota,
		policy: func(d CachingDecision) bool {
			servingIdx := len(d.Trail) - 1
			if servingIdx == 0 {
				return false
			}
			prob := float64(servingIdx-d.Idx) / float64(servingIdx)
			return pc.rng.Float64() < prob
		},
	}
}

// NewSitOnly constructs SIT-ONLY: RSN-guided detour using the
// Served-Interest Table hints, with LCE caching on return.
func NewSitOnly(cfg Config) Strategy {
	return &rsnGuided{name: "sit_only", policy: PolicyLCE, fresh: cfg.Fresh, expiration: cfg.Expiration, maxDetour: cfg.MaxDetour, extraQuota: cfg.ExtraQuota}
}

// NewNdnSit constructs NDN-SIT: RSN-guided detour with LCE caching, modeling
// plain NDN forwarding augmented with a SIT hint table.
func NewNdnSit(cfg Config) Strategy {
	return &rsnGuided{name: "ndn_sit", policy: PolicyLCE, fresh: cfg.Fresh, expiration: cfg.Expiration, maxDetour: cfg.MaxDetour, extraQuota: cfg.ExtraQuota}
}

func init() {
	Register("nrr", NewNRR)
	Register("lira_lce", NewLiraLCE)
	Register("lira_choice", NewLiraChoice)
	Register("lira_prob_cache", NewLiraProbCache)
	Register("sit_only", NewSitOnly)
	Register("ndn_sit", NewNdnSit)
}
