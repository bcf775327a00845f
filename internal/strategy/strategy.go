// Package strategy implements the Forwarding Strategy Engine: the family of
// request/response algorithms that, for each workload event, walk the
// shortest path, consult caches and RSN tables, opportunistically detour
// onto off-path trails, and drive content return. Every strategy is a pure
// function of (View, Controller, Config, Event) — it holds no state beyond
// its own read-only configuration, all mutable state lives in the Model the
// View/Controller close over.
package strategy

import (
	"fmt"

	"github.com/icnsim/icnsim/internal/engine"
	"github.com/icnsim/icnsim/internal/network"
	"github.com/icnsim/icnsim/internal/workload"
)

// Strategy dispatches once per workload event — never per hop — to the
// strategy-specific request/response state machine.
type Strategy interface {
	Name() string
	Process(v *network.View, c *engine.Controller, ev workload.Event)
}

// Config carries the run-level parameters a strategy constructor may need:
// the RSN freshness window, the off-path detour bound, the master RNG seed
// for any randomized decisions, and per-family knobs. Strategies that don't
// need a field simply ignore it; this keeps Factory's signature uniform
// instead of growing a type switch per strategy family.
type Config struct {
	MasterSeed  int64
	Fresh       float64 // F: RSN record freshness window
	Expiration  float64 // X: RSN record expiration window
	MaxDetour   int     // off-path hop bound (0 = unbounded)
	ExtraQuota  int     // additional hop budget beyond the on-path length
	BernoulliP  float64 // RandomBernoulli / SCOPED_FLOODING caching probability
	FanOut      int     // k: concurrent off-path trails per on-path node (LIRA-DFIB)
	Scope       int     // breadth-first flood radius (SCOPED_FLOODING family)
	MaxStretch  float64 // Hashrouting-HybridAM multicast stretch tolerance, as a fraction of diameter
	Metacaching string  // NRR's return-caching policy: "lce" (default) or "lcd"
}

// Factory constructs a Strategy from a Config. Each concrete strategy's own
// package-level New* constructor is the expected call site; Factory exists
// so the CLI/config loader can dispatch by name without a type switch living
// outside this package.
type Factory func(Config) Strategy

var registry = map[string]Factory{}

// Register adds a strategy constructor under name. Intended to be called
// from each strategy file's init(), mirroring the "explicit builder/factory
// keyed by typed config" design note (no decorated global registry, just one
// plain map built up at package init).
func Register(name string, f Factory) {
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("strategy: %q already registered", name))
	}
	registry[name] = f
}

// New constructs the strategy registered under name, or an error if name is
// unknown — a configuration error.
func New(name string, cfg Config) (Strategy, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("strategy: unknown strategy %q", name)
	}
	return f(cfg), nil
}

// Names returns every registered strategy name, for CLI help and validation
// error messages.
func Names() []string {
	out := make([]string, 0, len(registry))
	for n := range registry {
		out = append(out, n)
	}
	return out
}
