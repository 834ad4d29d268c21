package metrics

import (
	"context"
	"time"
)

// defaultGPUProcInterval is the GPU process table refresh cadence.
const defaultGPUProcInterval = 2 * time.Second

// Engine drives one collection pass end to end: host sampling,
// aggregation, and the slower GPU process table on its own cadence.
// Collect calls must not overlap; the display loop serializes them.
type Engine struct {
	sampler *Sampler
	agg     *Aggregator

	gpuProcInterval time.Duration
	lastGPUProcs    time.Time
	now             func() time.Time
}

// NewEngine creates an Engine around an existing sampler and
// aggregator. A non-positive gpuProcInterval falls back to 2s.
func NewEngine(sampler *Sampler, agg *Aggregator, gpuProcInterval time.Duration) *Engine {
	if gpuProcInterval <= 0 {
		gpuProcInterval = defaultGPUProcInterval
	}
	return &Engine{
		sampler:         sampler,
		agg:             agg,
		gpuProcInterval: gpuProcInterval,
		now:             time.Now,
	}
}

// Collect runs one sampling tick and returns a render frame. The GPU
// process table is refreshed only when its interval has elapsed; the
// returned frame always carries the most recent table.
func (e *Engine) Collect(ctx context.Context) Frame {
	snap := e.sampler.Snapshot(ctx)
	e.agg.Update(ctx, snap)

	if e.lastGPUProcs.IsZero() || e.now().Sub(e.lastGPUProcs) >= e.gpuProcInterval {
		e.agg.RefreshGPUProcesses(ctx)
		e.lastGPUProcs = e.now()
	}

	return e.agg.Frame()
}

// Aggregator exposes the underlying aggregator for direct reads.
func (e *Engine) Aggregator() *Aggregator {
	return e.agg
}
