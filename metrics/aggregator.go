package metrics

import (
	"context"
	"io"
	"log/slog"
	"time"

	"gitlab.com/tinyland/lab/hostpulse/gpu"
	"gitlab.com/tinyland/lab/hostpulse/sensors"
)

// GPUSource provides GPU telemetry to the aggregator. *gpu.Adapter is
// the production implementation.
type GPUSource interface {
	Snapshot(ctx context.Context) gpu.Snapshot
	Processes(ctx context.Context) []gpu.ProcessRecord
}

// Aggregator orchestrates per-tick sampling: it owns every metric
// series, the network tracker, and the latest per-core and GPU state.
// All of it is mutated only by Update, which the application loop
// calls from a single goroutine; rendering reads between ticks.
type Aggregator struct {
	history   *History
	net       *networkTracker
	discovery *sensors.Discovery
	gpuAdp    GPUSource
	logger    *slog.Logger

	perCoreUsage []float32
	coreTemps    []float32
	packageTemp  float32
	havePackage  bool
	gpuSnap      gpu.Snapshot
	gpuProcs     []gpu.ProcessRecord
	lastHost     HostSnapshot
}

// AggregatorOptions configures a new Aggregator. Zero-value fields
// fall back to defaults.
type AggregatorOptions struct {
	// MaxHistory is the per-metric sample capacity (default 60).
	MaxHistory int
	// Discovery locates CPU temperatures (default: standard roots).
	Discovery *sensors.Discovery
	// GPU queries GPU telemetry (default: nvidia-smi adapter).
	GPU GPUSource
	// Logger receives debug output (default: no-op).
	Logger *slog.Logger

	// now is the clock used by the network tracker; tests override it.
	now func() time.Time
}

// NewAggregator creates an Aggregator.
func NewAggregator(opts AggregatorOptions) *Aggregator {
	if opts.MaxHistory <= 0 {
		opts.MaxHistory = 60
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Discovery == nil {
		opts.Discovery = sensors.NewDiscovery(opts.Logger)
	}
	if opts.GPU == nil {
		opts.GPU = gpu.NewAdapter(opts.Logger)
	}

	return &Aggregator{
		history:   NewHistory(opts.MaxHistory),
		net:       newNetworkTracker(opts.now),
		discovery: opts.Discovery,
		gpuAdp:    opts.GPU,
		logger:    opts.Logger,
	}
}

// Update runs one sampling tick over the given host snapshot. Every
// metric's push is independent: one source going absent never blocks
// the others, and there is no partial-tick rollback.
func (a *Aggregator) Update(ctx context.Context, snap HostSnapshot) {
	a.lastHost = snap
	a.history.Push(MetricCPU, float32(snap.CPUPct))

	a.perCoreUsage = a.perCoreUsage[:0]
	for _, pct := range snap.PerCorePct {
		a.perCoreUsage = append(a.perCoreUsage, float32(pct))
	}

	a.coreTemps = a.discovery.CoreTemps(len(snap.PerCorePct))
	a.packageTemp, a.havePackage = a.discovery.PackageTemp()

	var memPct float32
	if snap.MemTotalBytes > 0 {
		memPct = float32(snap.MemUsedBytes) / float32(snap.MemTotalBytes) * 100.0
	}
	a.history.Push(MetricMemory, memPct)

	a.history.Push(MetricDisk, float32(snap.RootDiskPct))

	rxKbps, txKbps := a.net.observe(snap.NetRxBytes, snap.NetTxBytes)
	a.history.Push(MetricNetRx, rxKbps)
	a.history.Push(MetricNetTx, txKbps)

	a.updateGPU(ctx)
}

// updateGPU refreshes the GPU snapshot and appends usage and VRAM
// percentages, defaulting to 0 so the series never gap on missing-GPU
// ticks.
func (a *Aggregator) updateGPU(ctx context.Context) {
	a.gpuSnap = a.gpuAdp.Snapshot(ctx)

	var usage float32
	if a.gpuSnap.UsagePct != nil {
		usage = float32(*a.gpuSnap.UsagePct)
	}
	a.history.Push(MetricGPU, usage)

	var vram float32
	if pct, ok := a.gpuSnap.VRAMPct(); ok {
		vram = float32(pct)
	}
	a.history.Push(MetricGPUVRAM, vram)
}

// RefreshGPUProcesses rebuilds the merged GPU process table. It runs
// on the process-table cadence, not the metrics tick.
func (a *Aggregator) RefreshGPUProcesses(ctx context.Context) {
	a.gpuProcs = a.gpuAdp.Processes(ctx)
}

// ---------------------------------------------------------------
// Read surface consumed by rendering
// ---------------------------------------------------------------

// History exposes the bounded metric series store.
func (a *Aggregator) History() *History {
	return a.history
}

// CPUUsage returns the latest global CPU usage percent.
func (a *Aggregator) CPUUsage() float32 { return a.history.Latest(MetricCPU) }

// MemoryUsage returns the latest memory usage percent.
func (a *Aggregator) MemoryUsage() float32 { return a.history.Latest(MetricMemory) }

// DiskUsage returns the latest root filesystem usage percent.
func (a *Aggregator) DiskUsage() float32 { return a.history.Latest(MetricDisk) }

// NetworkDownloadRate returns the latest download rate in Kbps.
func (a *Aggregator) NetworkDownloadRate() float32 { return a.history.Latest(MetricNetRx) }

// NetworkUploadRate returns the latest upload rate in Kbps.
func (a *Aggregator) NetworkUploadRate() float32 { return a.history.Latest(MetricNetTx) }

// TotalNetworkBytes returns session-relative rx/tx byte totals.
func (a *Aggregator) TotalNetworkBytes() (rx, tx uint64) {
	return a.net.sessionTotals()
}

// PerCoreUsage returns per-logical-core usage percentages for the
// current tick. The returned slice is shared; callers must not mutate
// it.
func (a *Aggregator) PerCoreUsage() []float32 { return a.perCoreUsage }

// PerCoreTemps returns per-logical-core temperatures for the current
// tick, empty when no sensor yielded data.
func (a *Aggregator) PerCoreTemps() []float32 { return a.coreTemps }

// PackageTemp returns the CPU package temperature for the current
// tick; false when no plausible reading exists.
func (a *Aggregator) PackageTemp() (float32, bool) {
	return a.packageTemp, a.havePackage
}

// GPU returns the current GPU snapshot; fields are independently
// optional.
func (a *Aggregator) GPU() gpu.Snapshot { return a.gpuSnap }

// GPUProcesses returns the merged GPU process table from the last
// RefreshGPUProcesses call. The returned slice is shared; callers must
// not mutate it.
func (a *Aggregator) GPUProcesses() []gpu.ProcessRecord { return a.gpuProcs }
