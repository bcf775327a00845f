// Package config loads a simulation run's typed configuration from a
// strict YAML document, the way sim.LoadPolicyBundle loads
// PolicyBundle: per-group typed structs rather than one free-form nested
// map, with unknown keys rejected outright.
package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// StrategyConfig configures which forwarding strategy runs and its tunables
// — the YAML form of strategy.Config.
type StrategyConfig struct {
	Name        string  `yaml:"name"`
	Fresh       float64 `yaml:"fresh"`
	Expiration  float64 `yaml:"expiration"`
	MaxDetour   int     `yaml:"max_detour"`
	ExtraQuota  int     `yaml:"extra_quota"`
	BernoulliP  float64 `yaml:"bernoulli_p,omitempty"`
	FanOut      int     `yaml:"fan_out,omitempty"`
	Scope       int     `yaml:"scope,omitempty"`
	MaxStretch  float64 `yaml:"max_stretch,omitempty"`
	Metacaching string  `yaml:"metacaching,omitempty"`
}

// WorkloadConfig configures the request-arrival process — the YAML form of
// workload.StationaryConfig, plus a name selecting Stationary vs
// StationarySit.
type WorkloadConfig struct {
	Name              string  `yaml:"name"` // "stationary" | "stationary_sit"
	Alpha             float64 `yaml:"alpha"`
	NContents         int     `yaml:"n_contents"`
	NWarmup           int     `yaml:"n_warmup"`
	NMeasured         int     `yaml:"n_measured"`
	Rate              float64 `yaml:"rate"`
	Beta              float64 `yaml:"beta,omitempty"`
	DisconnectionRate float64 `yaml:"disconnection_rate,omitempty"`
}

// CollectorsConfig lists which named metrics collectors to attach to the run.
type CollectorsConfig struct {
	Names []string `yaml:"names"`
}

// Config is the top-level run configuration: everything except the
// topology (loaded separately via topofile, per --topology) and the seed
// (passed separately via --seed, since sweeps vary it per run without
// touching the rest of the config).
type Config struct {
	Strategy       StrategyConfig   `yaml:"strategy"`
	Workload       WorkloadConfig   `yaml:"workload"`
	Collectors     CollectorsConfig `yaml:"collectors"`
	WarmupStrategy StrategyConfig   `yaml:"warmup_strategy,omitempty"`
}

// Load reads and strictly parses a run configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	return Parse(data)
}

// Parse strictly decodes a run configuration from raw YAML bytes.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("config: parsing: %w", err)
	}
	if cfg.Strategy.Name == "" {
		return nil, fmt.Errorf("config: strategy.name is required")
	}
	if cfg.Workload.Name == "" {
		cfg.Workload.Name = "stationary"
	}
	if cfg.Workload.NContents <= 0 {
		return nil, fmt.Errorf("config: workload.n_contents must be positive")
	}
	return &cfg, nil
}
