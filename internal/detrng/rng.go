// Package detrng provides per-subsystem deterministic RNG streams derived
// from one master seed, so a given (topology, placement, seed, event stream)
// always reproduces the same collector output
// regardless of which subsystems happen to consume randomness in which
// order.
package detrng

import (
	"hash/fnv"
	"math/rand"
)

// Partitioned hands out one *rand.Rand per named subsystem (workload
// generation, a randomized strategy's coin flips, hashrouting tie-breaks),
// lazily created and cached so repeat calls for the same name return the
// same stream.
type Partitioned struct {
	masterSeed int64
	streams    map[string]*rand.Rand
}

// NewPartitioned creates a Partitioned RNG source from a master seed.
func NewPartitioned(masterSeed int64) *Partitioned {
	return &Partitioned{masterSeed: masterSeed, streams: make(map[string]*rand.Rand)}
}

// ForSubsystem returns the RNG stream for name, deriving its seed
// order-independently from the master seed.
func (p *Partitioned) ForSubsystem(name string) *rand.Rand {
	if r, ok := p.streams[name]; ok {
		return r
	}
	r := rand.New(rand.NewSource(p.deriveSeed(name)))
	p.streams[name] = r
	return r
}

// deriveSeed XORs the master seed with an FNV-1a hash of the subsystem name,
// so the derivation does not depend on the order subsystems are first used.
func (p *Partitioned) deriveSeed(name string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	return p.masterSeed ^ int64(h.Sum64())
}

// Subsystem name constants shared across packages that need a named stream.
const (
	SubsystemWorkload     = "workload"
	SubsystemStrategyRand = "strategy-rand"
	SubsystemHashTiebreak = "hash-tiebreak"
)
