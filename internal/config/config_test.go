package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `
strategy:
  name: lira_lce
  fresh: 10
  expiration: 20
  max_detour: 3
workload:
  name: stationary
  alpha: 0.8
  n_contents: 100
  n_warmup: 50
  n_measured: 200
  rate: 10
collectors:
  names: [cache_hit_ratio, latency]
`

func TestParse_ValidConfig(t *testing.T) {
	cfg, err := Parse([]byte(validYAML))
	require.NoError(t, err)
	assert.Equal(t, "lira_lce", cfg.Strategy.Name)
	assert.Equal(t, 100, cfg.Workload.NContents)
	assert.Equal(t, []string{"cache_hit_ratio", "latency"}, cfg.Collectors.Names)
}

func TestParse_RejectsUnknownField(t *testing.T) {
	_, err := Parse([]byte(`
strategy:
  name: lce
  bogus: 1
workload:
  n_contents: 10
`))
	assert.Error(t, err)
}

func TestParse_RequiresStrategyName(t *testing.T) {
	_, err := Parse([]byte(`
workload:
  n_contents: 10
`))
	assert.Error(t, err)
}

func TestBuildStrategy_ConstructsRegisteredStrategy(t *testing.T) {
	cfg, err := Parse([]byte(validYAML))
	require.NoError(t, err)
	s, err := cfg.BuildStrategy(42)
	require.NoError(t, err)
	assert.Equal(t, "lira_lce", s.Name())
}

func TestParse_WarmupStrategyIsOptional(t *testing.T) {
	cfg, err := Parse([]byte(validYAML))
	require.NoError(t, err)
	assert.Empty(t, cfg.WarmupStrategy.Name)
}

func TestWarmupStrategyConfig_BuildsDistinctStrategy(t *testing.T) {
	cfg, err := Parse([]byte(validYAML + "\nwarmup_strategy:\n  name: lce\n  fresh: 1\n  expiration: 1\n"))
	require.NoError(t, err)
	assert.Equal(t, "lce", cfg.WarmupStrategy.Name)

	wc := cfg.WarmupStrategyConfig(7)
	assert.Equal(t, int64(7), wc.MasterSeed)
	assert.Equal(t, 1.0, wc.Fresh)
}

func TestStrategyConfig_PassesMetacachingThrough(t *testing.T) {
	cfg, err := Parse([]byte(`
strategy:
  name: nrr
  metacaching: lcd
workload:
  n_contents: 10
`))
	require.NoError(t, err)
	sc := cfg.strategyConfig(1)
	assert.Equal(t, "lcd", sc.Metacaching)
}

func TestBuildCollectors_ConstructsNamedCollectors(t *testing.T) {
	cfg, err := Parse([]byte(validYAML))
	require.NoError(t, err)
	bus, err := cfg.BuildCollectors()
	require.NoError(t, err)
	assert.NotNil(t, bus)
}
