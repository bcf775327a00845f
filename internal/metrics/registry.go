package metrics

import (
	"fmt"

	"github.com/icnsim/icnsim/internal/engine"
	"github.com/puzpuzpuz/xsync/v4"
)

// Factory builds a fresh collector instance for one run.
type Factory func() engine.Collector

var registry = xsync.NewMap[string, Factory]()

func init() {
	Register("cache_hit_ratio", func() engine.Collector { return NewCacheHitRatioCollector() })
	Register("latency", func() engine.Collector { return NewLatencyCollector() })
	Register("link_load", func() engine.Collector { return NewLinkLoadCollector() })
	Register("rsn_freshness", func() engine.Collector { return NewRsnFreshnessCollector() })
	Register("overhead", func() engine.Collector { return NewOverheadCollector() })
	Register("prometheus", func() engine.Collector { return NewPrometheusCollector() })
	Register("absorption", func() engine.Collector { return NewAbsorptionCollector() })
	Register("satisfaction_rate", func() engine.Collector { return NewSatisfactionRateCollector() })
}

// Register adds a named collector factory to the registry. Safe for
// concurrent use; a named sweep driver may register collectors from
// multiple goroutines before fan-out.
func Register(name string, f Factory) {
	registry.Store(name, f)
}

// New constructs a fresh collector instance by name.
func New(name string) (engine.Collector, error) {
	f, ok := registry.Load(name)
	if !ok {
		return nil, fmt.Errorf("metrics: unknown collector %q", name)
	}
	return f(), nil
}

// Names lists every registered collector name.
func Names() []string {
	out := make([]string, 0, registry.Size())
	registry.Range(func(name string, _ Factory) bool {
		out = append(out, name)
		return true
	})
	return out
}
