package strategy

import (
	"github.com/icnsim/icnsim/internal/engine"
	"github.com/icnsim/icnsim/internal/network"
	"github.com/icnsim/icnsim/internal/workload"
)

// baseline implements the on-path-only strategies that never touch an RSN
// table: a single OnPathWalk to find content, then DeliverContent back to
// the receiver applying one caching policy. NoCache, LCE and LCD are all
// this shape; they differ only in which policy they compose.
type baseline struct {
	name   string
	policy CachingPolicy
}

// NewNoCache never caches returned content anywhere on path.
func NewNoCache(Config) Strategy { return &baseline{name: "no_cache", policy: PolicyNoCache} }

// NewLCE caches at every on-path node with a cache (Leave Copy Everywhere).
func NewLCE(Config) Strategy { return &baseline{name: "lce", policy: PolicyLCE} }

// NewLCD caches only one hop downstream of the serving node (Leave Copy
// Down).
func NewLCD(Config) Strategy { return &baseline{name: "lcd", policy: PolicyLCD} }

// NewNDN constructs plain NDN/CCN forwarding: on-path walk, Leave Copy
// Everywhere, no RSN table consulted at all.
func NewNDN(Config) Strategy { return &baseline{name: "ndn", policy: PolicyLCE} }

func init() {
	Register("no_cache", NewNoCache)
	Register("lce", NewLCE)
	Register("lcd", NewLCD)
	Register("ndn", NewNDN)
}

func (b *baseline) Name() string { return b.name }

func (b *baseline) Process(v *network.View, c *engine.Controller, _ workload.Event) {
	path, _, _ := OnPathWalk(v, c)
	DeliverContent(v, c, path, true, false, b.policy, 0, 0)
}
