package metrics

import (
	"gitlab.com/tinyland/lab/hostpulse/gpu"
)

// Frame is a self-contained render snapshot of the aggregator state.
// Every slice is a copy, so a Frame stays valid while the aggregator
// keeps ticking on another goroutine.
type Frame struct {
	CPUPct  float32
	PerCore []float32

	MemPct        float32
	MemUsedBytes  uint64
	MemTotalBytes uint64

	DiskPct float32

	DownloadKbps float32
	UploadKbps   float32
	TotalRxBytes uint64
	TotalTxBytes uint64

	CoreTemps       []float32
	PackageTemp     float32
	HavePackageTemp bool

	GPU      gpu.Snapshot
	GPUProcs []gpu.ProcessRecord

	CPUHistory   []float32
	MemHistory   []float32
	NetRxHistory []float32
	NetTxHistory []float32
	GPUHistory   []float32
}

// Frame captures the current aggregator state into an independent
// snapshot for rendering.
func (a *Aggregator) Frame() Frame {
	rx, tx := a.net.sessionTotals()
	pkg, havePkg := a.packageTemp, a.havePackage

	f := Frame{
		CPUPct:  a.CPUUsage(),
		PerCore: append([]float32(nil), a.perCoreUsage...),

		MemPct:        a.MemoryUsage(),
		MemUsedBytes:  a.lastHost.MemUsedBytes,
		MemTotalBytes: a.lastHost.MemTotalBytes,

		DiskPct: a.DiskUsage(),

		DownloadKbps: a.NetworkDownloadRate(),
		UploadKbps:   a.NetworkUploadRate(),
		TotalRxBytes: rx,
		TotalTxBytes: tx,

		CoreTemps:       append([]float32(nil), a.coreTemps...),
		PackageTemp:     pkg,
		HavePackageTemp: havePkg,

		GPU:      a.gpuSnap,
		GPUProcs: append([]gpu.ProcessRecord(nil), a.gpuProcs...),

		CPUHistory:   a.history.Series(MetricCPU),
		MemHistory:   a.history.Series(MetricMemory),
		NetRxHistory: a.history.Series(MetricNetRx),
		NetTxHistory: a.history.Series(MetricNetTx),
		GPUHistory:   a.history.Series(MetricGPU),
	}
	return f
}
