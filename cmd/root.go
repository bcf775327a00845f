// Package cmd implements the icnsim CLI: a Cobra root command wrapping a
// single "run" subcommand that drives one simulation run end-to-end — load
// topology, load run configuration, build Model/Strategy/Workload/
// Collectors, run the event loop, print results.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/icnsim/icnsim/internal/config"
	"github.com/icnsim/icnsim/internal/network"
	"github.com/icnsim/icnsim/internal/obslog"
	"github.com/icnsim/icnsim/internal/sim"
	"github.com/icnsim/icnsim/internal/strategy"
	"github.com/icnsim/icnsim/internal/topofile"
)

var (
	topologyPath string
	configPath   string
	seed         int64
	logLevel     string
	traceFile    string
)

var rootCmd = &cobra.Command{
	Use:   "icnsim",
	Short: "Discrete-event simulator for Information-Centric Networking forwarding strategies",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one ICN forwarding simulation and print collector results",
	RunE:  runSimulation,
}

// Execute runs the root command, exiting the process with status 1 on error
// — the CLI boundary's fatal-abort behavior ("any fatal error aborts
// the single run with a diagnostic").
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	runCmd.Flags().StringVar(&topologyPath, "topology", "", "Path to the topology YAML file (required)")
	runCmd.Flags().StringVar(&configPath, "config", "", "Path to the run configuration YAML file (required)")
	runCmd.Flags().Int64Var(&seed, "seed", 1, "Master RNG seed for this run")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (debug, info, warn, error)")
	runCmd.Flags().StringVar(&traceFile, "trace-file", "", "Optional rotating trace log file, in addition to stderr")
	_ = runCmd.MarkFlagRequired("topology")
	_ = runCmd.MarkFlagRequired("config")

	rootCmd.AddCommand(runCmd)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	if err := obslog.SetLevel(logLevel); err != nil {
		return fmt.Errorf("icnsim: invalid log level %q: %w", logLevel, err)
	}
	if traceFile != "" {
		obslog.EnableTraceFile(traceFile, 50, 3, 7)
	}

	topo, err := topofile.Load(topologyPath)
	if err != nil {
		return err
	}
	model, err := network.NewModel(topo)
	if err != nil {
		return fmt.Errorf("icnsim: building model: %w", err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	strat, err := cfg.BuildStrategy(seed)
	if err != nil {
		return err
	}

	receivers := topofile.ReceiverIDs(topo)
	events, err := cfg.BuildWorkload(receivers, seed)
	if err != nil {
		return err
	}

	bus, err := cfg.BuildCollectors()
	if err != nil {
		return err
	}

	runner := sim.New(model, bus, strat, events)
	if cfg.WarmupStrategy.Name != "" {
		warmupStrat, err := strategy.New(cfg.WarmupStrategy.Name, cfg.WarmupStrategyConfig(seed))
		if err != nil {
			return fmt.Errorf("icnsim: warmup_strategy: %w", err)
		}
		runner.WithWarmupStrategy(warmupStrat)
	}

	obslog.Log.Infof("icnsim: running %q over %q with strategy %q, seed %d", configPath, topologyPath, strat.Name(), seed)
	runner.Run()
	obslog.Log.Info("icnsim: run complete")

	out, err := yaml.Marshal(bus.Results())
	if err != nil {
		return fmt.Errorf("icnsim: marshaling results: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
