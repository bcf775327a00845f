package config

import (
	"fmt"

	"github.com/icnsim/icnsim/internal/engine"
	"github.com/icnsim/icnsim/internal/ids"
	"github.com/icnsim/icnsim/internal/metrics"
	"github.com/icnsim/icnsim/internal/strategy"
	"github.com/icnsim/icnsim/internal/workload"
)

// StrategyConfig converts the YAML strategy group into strategy.Config.
func (c *Config) strategyConfig(masterSeed int64) strategy.Config {
	return strategy.Config{
		MasterSeed:  masterSeed,
		Fresh:       c.Strategy.Fresh,
		Expiration:  c.Strategy.Expiration,
		MaxDetour:   c.Strategy.MaxDetour,
		ExtraQuota:  c.Strategy.ExtraQuota,
		BernoulliP:  c.Strategy.BernoulliP,
		FanOut:      c.Strategy.FanOut,
		Scope:       c.Strategy.Scope,
		MaxStretch:  c.Strategy.MaxStretch,
		Metacaching: c.Strategy.Metacaching,
	}
}

// BuildStrategy constructs the named Strategy from the config's strategy
// group, keyed by the typed variant rather than a free-form registry lookup
// — an explicit builder/factory in place of a
// decorated global registries.
func (c *Config) BuildStrategy(masterSeed int64) (strategy.Strategy, error) {
	return strategy.New(c.Strategy.Name, c.strategyConfig(masterSeed))
}

// WarmupStrategyConfig converts the YAML warmup_strategy group into
// strategy.Config, for the optional distinct warmup-phase strategy
// describes.
func (c *Config) WarmupStrategyConfig(masterSeed int64) strategy.Config {
	return strategy.Config{
		MasterSeed:  masterSeed,
		Fresh:       c.WarmupStrategy.Fresh,
		Expiration:  c.WarmupStrategy.Expiration,
		MaxDetour:   c.WarmupStrategy.MaxDetour,
		ExtraQuota:  c.WarmupStrategy.ExtraQuota,
		BernoulliP:  c.WarmupStrategy.BernoulliP,
		FanOut:      c.WarmupStrategy.FanOut,
		Scope:       c.WarmupStrategy.Scope,
		MaxStretch:  c.WarmupStrategy.MaxStretch,
		Metacaching: c.WarmupStrategy.Metacaching,
	}
}

// BuildWorkload constructs the configured workload iterator over receivers.
func (c *Config) BuildWorkload(receivers []ids.NodeID, masterSeed int64) (workload.Iterator, error) {
	wc := workload.StationaryConfig{
		Alpha:             c.Workload.Alpha,
		NContents:         c.Workload.NContents,
		NWarmup:           c.Workload.NWarmup,
		NMeasured:         c.Workload.NMeasured,
		Rate:              c.Workload.Rate,
		Beta:              c.Workload.Beta,
		DisconnectionRate: c.Workload.DisconnectionRate,
	}
	switch c.Workload.Name {
	case "stationary":
		return workload.NewStationary(wc, receivers, masterSeed), nil
	case "stationary_sit":
		return workload.NewStationarySit(wc, receivers, masterSeed), nil
	default:
		return nil, fmt.Errorf("config: unknown workload %q", c.Workload.Name)
	}
}

// BuildCollectors constructs every collector named in the config's
// collectors group and fans them into one Bus.
func (c *Config) BuildCollectors() (*engine.Bus, error) {
	bus := engine.NewBus()
	for _, name := range c.Collectors.Names {
		col, err := metrics.New(name)
		if err != nil {
			return nil, err
		}
		bus.Register(col)
	}
	return bus, nil
}
