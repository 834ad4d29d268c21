package main

import (
	"log/slog"

	"gitlab.com/tinyland/lab/hostpulse/config"
	"gitlab.com/tinyland/lab/hostpulse/display/tui"
	"gitlab.com/tinyland/lab/hostpulse/journal"
	"gitlab.com/tinyland/lab/hostpulse/metrics"
	"gitlab.com/tinyland/lab/hostpulse/procs"
	"gitlab.com/tinyland/lab/hostpulse/sensors"
)

// buildEngine assembles the metrics pipeline from the loaded
// configuration: sampler, sensor discovery, aggregator, and the engine
// that drives them per tick.
func buildEngine(cfg *config.Config, logger *slog.Logger) *metrics.Engine {
	discovery := sensors.NewDiscoveryRoots(cfg.Sensors.HwmonRoot, cfg.Sensors.ThermalRoot, logger)
	sampler := metrics.NewSampler(logger)
	agg := metrics.NewAggregator(metrics.AggregatorOptions{
		MaxHistory: cfg.HistorySize,
		Discovery:  discovery,
		Logger:     logger,
	})
	return metrics.NewEngine(sampler, agg, 0)
}

// buildTUIOptions wires every data source the dashboard reads: the
// metrics engine, the process table manager with its initial sort
// order, and the journal cache.
func buildTUIOptions(cfg *config.Config, logger *slog.Logger) tui.Options {
	manager := procs.NewManager(logger)
	manager.SetSortMode(parseSortMode(cfg.ProcessSort))

	return tui.Options{
		Metrics:         buildEngine(cfg, logger),
		Processes:       manager,
		Logs:            journal.NewCache(logger),
		UpdateInterval:  cfg.UpdateInterval.Duration,
		ProcessInterval: cfg.ProcessRefreshInterval.Duration,
		JournalInterval: cfg.JournalRefreshInterval.Duration,
		Logger:          logger,
	}
}

// parseSortMode maps a config sort name to a procs.SortMode. Unknown
// names fall back to CPU ordering.
func parseSortMode(name string) procs.SortMode {
	if name == "memory" {
		return procs.SortMemory
	}
	return procs.SortCPU
}
