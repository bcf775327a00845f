package strategy

import (
	"math/rand"

	"github.com/icnsim/icnsim/internal/detrng"
	"github.com/icnsim/icnsim/internal/engine"
	"github.com/icnsim/icnsim/internal/network"
	"github.com/icnsim/icnsim/internal/workload"
)

// probCache implements a ProbCache-style placement policy: content is cached
// at a return-trail node v with probability x/c, where x is the number of
// hops content has travelled from the serving node when it reaches v and c
// is the trail's total hop count. The probability therefore rises toward the
// receiver (1 at the receiver itself). Cache capacities, a time-window
// factor and an exponent are not part of the probability.
type probCache struct {
	rng *rand.Rand
}

// NewProbCache constructs the ProbCache strategy, seeded from the
// strategy-rand deterministic stream.
func NewProbCache(cfg Config) Strategy {
	return &probCache{rng: detrng.NewPartitioned(cfg.MasterSeed).ForSubsystem(detrng.SubsystemStrategyRand)}
}

func init() { Register("prob_cache", NewProbCache) }

func (p *probCache) Name() string { return "prob_cache" }

func (p *probCache) Process(v *network.View, c *engine.Controller, _ workload.Event) {
	path, _, _ := OnPathWalk(v, c)
	servingIdx := len(path) - 1

	policy := func(d CachingDecision) bool {
		if servingIdx == 0 {
			return false
		}
		prob := float64(servingIdx-d.Idx) / float64(servingIdx)
		return p.rng.Float64() < prob
	}
	DeliverContent(v, c, path, true, false, policy, 0, 0)
}
