// Package metrics implements the hostpulse acquisition engine: bounded
// per-metric time series, the network rate tracker, and the per-tick
// aggregator that feeds the display layer.
package metrics

// MetricID identifies one tracked time series.
type MetricID string

const (
	MetricCPU     MetricID = "cpu"
	MetricMemory  MetricID = "memory"
	MetricDisk    MetricID = "disk"
	MetricNetRx   MetricID = "net-rx"
	MetricNetTx   MetricID = "net-tx"
	MetricGPU     MetricID = "gpu"
	MetricGPUVRAM MetricID = "gpu-vram"
)

// History holds fixed-capacity FIFO sample series, one per metric.
// Capacity is set at construction and never changes; pushing past
// capacity evicts the oldest sample.
type History struct {
	max    int
	series map[MetricID][]float32
}

// NewHistory creates a History retaining at most maxHistory samples
// per metric. A non-positive maxHistory falls back to 1.
func NewHistory(maxHistory int) *History {
	if maxHistory < 1 {
		maxHistory = 1
	}
	return &History{
		max:    maxHistory,
		series: make(map[MetricID][]float32),
	}
}

// Max returns the per-metric sample capacity.
func (h *History) Max() int {
	return h.max
}

// Push appends a sample to the given metric's series, evicting the
// oldest sample when the series is at capacity.
func (h *History) Push(id MetricID, v float32) {
	s := h.series[id]
	if len(s) >= h.max {
		s = s[1:]
	}
	// Re-slice into a fresh array occasionally so evicted elements
	// don't pin the backing array forever.
	if cap(s) > 2*h.max {
		trimmed := make([]float32, len(s), h.max+1)
		copy(trimmed, s)
		s = trimmed
	}
	h.series[id] = append(s, v)
}

// Series returns the full retained history for a metric in
// chronological order (oldest first). The returned slice is a copy.
func (h *History) Series(id MetricID) []float32 {
	s := h.series[id]
	out := make([]float32, len(s))
	copy(out, s)
	return out
}

// Latest returns the most recent sample for a metric, or 0 when the
// series is empty.
func (h *History) Latest(id MetricID) float32 {
	s := h.series[id]
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1]
}

// Len returns the number of retained samples for a metric.
func (h *History) Len(id MetricID) int {
	return len(h.series[id])
}
