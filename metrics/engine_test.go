package metrics

import (
	"context"
	"testing"
	"time"

	"gitlab.com/tinyland/lab/hostpulse/gpu"
)

func newTestEngine(t *testing.T, g GPUSource, interval time.Duration) (*Engine, *fakeClock) {
	t.Helper()
	agg, clock := newTestAggregator(t, 10, g)
	e := NewEngine(newTestSampler(), agg, interval)
	e.now = clock.now
	return e, clock
}

func TestEngineCollectProducesFrame(t *testing.T) {
	e, _ := newTestEngine(t, nil, 2*time.Second)

	f := e.Collect(context.Background())

	// newTestSampler reports 15% overall CPU and 8/32 GiB memory.
	if f.CPUPct != 15 {
		t.Errorf("CPUPct = %v, want 15", f.CPUPct)
	}
	if f.MemPct != 25 {
		t.Errorf("MemPct = %v, want 25", f.MemPct)
	}
	if f.MemTotalBytes != 32<<30 {
		t.Errorf("MemTotalBytes = %d, want %d", f.MemTotalBytes, uint64(32)<<30)
	}
	if len(f.PerCore) != 2 {
		t.Errorf("PerCore length = %d, want 2", len(f.PerCore))
	}
	if f.DiskPct != 75 {
		t.Errorf("DiskPct = %v, want 75", f.DiskPct)
	}
	if len(f.CPUHistory) != 1 {
		t.Errorf("CPUHistory length = %d, want 1", len(f.CPUHistory))
	}
}

func TestEngineGPUProcessCadence(t *testing.T) {
	g := &fakeGPU{procs: []gpu.ProcessRecord{{PID: 1, Name: "render", MemoryMB: 100}}}
	e, clock := newTestEngine(t, g, 2*time.Second)
	ctx := context.Background()

	// First collect always refreshes the process table.
	f := e.Collect(ctx)
	if len(f.GPUProcs) != 1 {
		t.Fatalf("first collect: GPUProcs length = %d, want 1", len(f.GPUProcs))
	}

	// Within the interval the stale table is carried forward.
	g.procs = append(g.procs, gpu.ProcessRecord{PID: 2, Name: "encode", MemoryMB: 50})
	clock.advance(1 * time.Second)
	f = e.Collect(ctx)
	if len(f.GPUProcs) != 1 {
		t.Errorf("within interval: GPUProcs length = %d, want 1", len(f.GPUProcs))
	}

	// Past the interval the table refreshes.
	clock.advance(1 * time.Second)
	f = e.Collect(ctx)
	if len(f.GPUProcs) != 2 {
		t.Errorf("past interval: GPUProcs length = %d, want 2", len(f.GPUProcs))
	}
}

func TestFrameIsIndependentCopy(t *testing.T) {
	e, clock := newTestEngine(t, nil, 2*time.Second)
	ctx := context.Background()

	f := e.Collect(ctx)
	cpuBefore := append([]float32(nil), f.CPUHistory...)
	perCoreBefore := append([]float32(nil), f.PerCore...)

	// Another tick must not mutate the previously returned frame.
	clock.advance(1 * time.Second)
	e.Collect(ctx)

	if len(f.CPUHistory) != len(cpuBefore) {
		t.Fatalf("frame CPUHistory length changed from %d to %d", len(cpuBefore), len(f.CPUHistory))
	}
	for i := range cpuBefore {
		if f.CPUHistory[i] != cpuBefore[i] {
			t.Errorf("frame CPUHistory[%d] changed from %v to %v", i, cpuBefore[i], f.CPUHistory[i])
		}
	}
	for i := range perCoreBefore {
		if f.PerCore[i] != perCoreBefore[i] {
			t.Errorf("frame PerCore[%d] changed from %v to %v", i, perCoreBefore[i], f.PerCore[i])
		}
	}
}
