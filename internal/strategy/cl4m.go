package strategy

import (
	"github.com/icnsim/icnsim/internal/engine"
	"github.com/icnsim/icnsim/internal/network"
	"github.com/icnsim/icnsim/internal/workload"
)

// cl4m (Cache "Less for More") caches at the single on-path node with the
// highest precomputed betweenness centrality, ties broken toward the node
// closest to the receiver.
type cl4m struct{}

// NewCL4M constructs the CL4M placement strategy.
func NewCL4M(Config) Strategy { return &cl4m{} }

func init() { Register("cl4m", NewCL4M) }

func (cl4m) Name() string { return "cl4m" }

func (cl4m) Process(v *network.View, c *engine.Controller, _ workload.Event) {
	path, _, _ := OnPathWalk(v, c)

	best := -1
	bestCentrality := -1.0
	for i, node := range path {
		if !v.HasCache(node) {
			continue
		}
		cv := v.Centrality(node)
		if cv > bestCentrality {
			bestCentrality = cv
			best = i
		}
	}

	policy := func(d CachingDecision) bool { return d.Idx == best }
	DeliverContent(v, c, path, true, false, policy, 0, 0)
}
