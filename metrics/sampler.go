package metrics

import (
	"context"
	"io"
	"log/slog"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"
)

// HostSnapshot is one tick's immutable view of the host OS metrics
// source. The Aggregator consumes it without re-querying anything.
type HostSnapshot struct {
	// CPUPct is global CPU usage in percent.
	CPUPct float64
	// PerCorePct is per-logical-core usage in percent.
	PerCorePct []float64
	// MemUsedBytes and MemTotalBytes describe physical memory.
	MemUsedBytes  uint64
	MemTotalBytes uint64
	// RootDiskPct is the root filesystem usage in percent, 0 when no
	// root-mounted filesystem was found.
	RootDiskPct float64
	// NetRxBytes and NetTxBytes are cumulative byte counters summed
	// over counted (non-virtual) interfaces.
	NetRxBytes uint64
	NetTxBytes uint64
}

// Sampler builds HostSnapshots from the host OS. Each probe degrades
// to a zero value on failure; a snapshot is always produced.
type Sampler struct {
	logger *slog.Logger

	// Injectable probes for tests.
	cpuPercent func(ctx context.Context, percpu bool) ([]float64, error)
	virtualMem func(ctx context.Context) (*mem.VirtualMemoryStat, error)
	partitions func(ctx context.Context) ([]disk.PartitionStat, error)
	diskUsage  func(ctx context.Context, path string) (*disk.UsageStat, error)
	ioCounters func(ctx context.Context) ([]net.IOCountersStat, error)
}

// NewSampler creates a Sampler over gopsutil. If logger is nil, a
// no-op logger is used.
func NewSampler(logger *slog.Logger) *Sampler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Sampler{
		logger: logger,
		cpuPercent: func(ctx context.Context, percpu bool) ([]float64, error) {
			// Interval 0 measures since the previous call, which maps
			// one-to-one onto the sampling tick.
			return cpu.PercentWithContext(ctx, 0, percpu)
		},
		virtualMem: mem.VirtualMemoryWithContext,
		partitions: func(ctx context.Context) ([]disk.PartitionStat, error) {
			return disk.PartitionsWithContext(ctx, false)
		},
		diskUsage: disk.UsageWithContext,
		ioCounters: func(ctx context.Context) ([]net.IOCountersStat, error) {
			return net.IOCountersWithContext(ctx, true)
		},
	}
}

// Snapshot probes the host and assembles one tick's snapshot.
func (s *Sampler) Snapshot(ctx context.Context) HostSnapshot {
	var snap HostSnapshot

	if pct, err := s.cpuPercent(ctx, false); err == nil && len(pct) > 0 {
		snap.CPUPct = pct[0]
	} else if err != nil {
		s.logger.Debug("cpu sample failed", "error", err)
	}

	if perCore, err := s.cpuPercent(ctx, true); err == nil {
		snap.PerCorePct = perCore
	}

	if vm, err := s.virtualMem(ctx); err == nil && vm != nil {
		snap.MemUsedBytes = vm.Used
		snap.MemTotalBytes = vm.Total
	} else if err != nil {
		s.logger.Debug("memory sample failed", "error", err)
	}

	snap.RootDiskPct = s.rootDiskPct(ctx)
	snap.NetRxBytes, snap.NetTxBytes = s.netCounters(ctx)

	return snap
}

// rootDiskPct computes usage of the filesystem mounted at "/".
// Enumeration failure or a missing root mount yields 0.
func (s *Sampler) rootDiskPct(ctx context.Context) float64 {
	parts, err := s.partitions(ctx)
	if err != nil {
		s.logger.Debug("disk enumeration failed", "error", err)
		return 0
	}

	for _, p := range parts {
		if p.Mountpoint != "/" {
			continue
		}
		usage, err := s.diskUsage(ctx, "/")
		if err != nil || usage == nil || usage.Total == 0 {
			return 0
		}
		return float64(usage.Total-usage.Free) / float64(usage.Total) * 100.0
	}
	return 0
}

// netCounters sums cumulative rx/tx bytes over counted interfaces.
func (s *Sampler) netCounters(ctx context.Context) (rx, tx uint64) {
	counters, err := s.ioCounters(ctx)
	if err != nil {
		s.logger.Debug("network counters failed", "error", err)
		return 0, 0
	}

	for _, c := range counters {
		if !countedInterface(c.Name) {
			continue
		}
		rx += c.BytesRecv
		tx += c.BytesSent
	}
	return rx, tx
}
