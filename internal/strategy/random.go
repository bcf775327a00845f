package strategy

import (
	"math/rand"

	"github.com/icnsim/icnsim/internal/detrng"
	"github.com/icnsim/icnsim/internal/engine"
	"github.com/icnsim/icnsim/internal/network"
	"github.com/icnsim/icnsim/internal/workload"
)

// randomBernoulli caches at every on-path cache node independently with
// probability p.
type randomBernoulli struct {
	p   float64
	rng *rand.Rand
}

// NewRandomBernoulli constructs the RandomBernoulli strategy using
// cfg.BernoulliP (defaulting to 0.5 if unset).
func NewRandomBernoulli(cfg Config) Strategy {
	p := cfg.BernoulliP
	if p <= 0 {
		p = 0.5
	}
	return &randomBernoulli{p: p, rng: detrng.NewPartitioned(cfg.MasterSeed).ForSubsystem(detrng.SubsystemStrategyRand)}
}

func init() { Register("random_bernoulli", NewRandomBernoulli) }

func (r *randomBernoulli) Name() string { return "random_bernoulli" }

func (r *randomBernoulli) Process(v *network.View, c *engine.Controller, _ workload.Event) {
	path, _, _ := OnPathWalk(v, c)
	policy := func(d CachingDecision) bool { return r.rng.Float64() < r.p }
	DeliverContent(v, c, path, true, false, policy, 0, 0)
}

// randomChoice caches at exactly one on-path cache node, chosen uniformly at
// random per request.
type randomChoice struct {
	rng *rand.Rand
}

// NewRandomChoice constructs the RandomChoice strategy.
func NewRandomChoice(cfg Config) Strategy {
	return &randomChoice{rng: detrng.NewPartitioned(cfg.MasterSeed).ForSubsystem(detrng.SubsystemStrategyRand)}
}

func init() { Register("random_choice", NewRandomChoice) }

func (r *randomChoice) Name() string { return "random_choice" }

func (r *randomChoice) Process(v *network.View, c *engine.Controller, _ workload.Event) {
	path, _, _ := OnPathWalk(v, c)

	var cacheIdxs []int
	for i, node := range path {
		if v.HasCache(node) {
			cacheIdxs = append(cacheIdxs, i)
		}
	}
	chosen := -1
	if len(cacheIdxs) > 0 {
		chosen = cacheIdxs[r.rng.Intn(len(cacheIdxs))]
	}
	policy := func(d CachingDecision) bool { return d.Idx == chosen }
	DeliverContent(v, c, path, true, false, policy, 0, 0)
}
