package procs

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

// newTestManager returns a Manager with an injected process list and
// a counter tracking refreshes.
func newTestManager(records []Record) (*Manager, *int) {
	refreshes := 0
	m := NewManager(nil)
	m.listProcesses = func(context.Context) ([]Record, error) {
		refreshes++
		out := make([]Record, len(records))
		copy(out, records)
		return out, nil
	}
	m.runKill = func(context.Context, int32) error { return nil }
	return m, &refreshes
}

func TestRefreshFiltersNoise(t *testing.T) {
	m, _ := newTestManager([]Record{
		{PID: 1, Name: "init", MemoryBytes: 4096},
		{PID: 2, Name: "", MemoryBytes: 8192},        // empty name
		{PID: 3, Name: "kthreadd", MemoryBytes: 512}, // <= 1024 bytes
		{PID: 4, Name: "edge", MemoryBytes: 1024},    // exactly 1024: still filtered
		{PID: 5, Name: "sshd", MemoryBytes: 1025},
	})

	m.Refresh(context.Background())

	table := m.Table()
	if len(table) != 2 {
		t.Fatalf("table has %d rows, want 2", len(table))
	}
	for _, r := range table {
		if r.PID == 2 || r.PID == 3 || r.PID == 4 {
			t.Errorf("pid %d should have been filtered", r.PID)
		}
	}
}

func TestRefreshSortsByCPUThenMemory(t *testing.T) {
	m, _ := newTestManager([]Record{
		{PID: 1, Name: "a", CPUPct: 10, MemoryBytes: 5000},
		{PID: 2, Name: "b", CPUPct: 90, MemoryBytes: 2000},
		{PID: 3, Name: "c", CPUPct: 10, MemoryBytes: 9000},
	})

	m.Refresh(context.Background())

	got := []int32{m.Table()[0].PID, m.Table()[1].PID, m.Table()[2].PID}
	want := []int32{2, 3, 1} // CPU desc, memory breaks the 10% tie
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

// TestSetSortModeReordersWithoutRefresh verifies switching the sort key
// re-orders the existing (possibly stale) table with no enumeration.
func TestSetSortModeReordersWithoutRefresh(t *testing.T) {
	m, refreshes := newTestManager([]Record{
		{PID: 1, Name: "a", CPUPct: 90, MemoryBytes: 2000},
		{PID: 2, Name: "b", CPUPct: 10, MemoryBytes: 9000},
	})

	m.Refresh(context.Background())
	if *refreshes != 1 {
		t.Fatalf("refreshes = %d, want 1", *refreshes)
	}

	m.SetSortMode(SortMemory)

	if *refreshes != 1 {
		t.Errorf("SetSortMode triggered an enumeration")
	}
	if m.Table()[0].PID != 2 {
		t.Errorf("top row pid = %d, want 2 after memory sort", m.Table()[0].PID)
	}
	if m.SortMode() != SortMemory {
		t.Errorf("SortMode = %v, want SortMemory", m.SortMode())
	}
}

func TestRefreshTruncatesTo500(t *testing.T) {
	var records []Record
	for i := 0; i < 600; i++ {
		records = append(records, Record{
			PID:         int32(i + 1),
			Name:        fmt.Sprintf("proc%d", i),
			CPUPct:      float64(i),
			MemoryBytes: 1_000_000,
		})
	}
	m, _ := newTestManager(records)

	m.Refresh(context.Background())

	if m.Len() != 500 {
		t.Fatalf("table has %d rows, want 500", m.Len())
	}
	// The retained rows are the top of the sort order, not the first
	// 500 enumerated.
	if m.Table()[0].CPUPct != 599 {
		t.Errorf("top row CPU = %v, want 599", m.Table()[0].CPUPct)
	}
}

func TestClampCursor(t *testing.T) {
	m, _ := newTestManager([]Record{
		{PID: 1, Name: "a", MemoryBytes: 2048},
		{PID: 2, Name: "b", MemoryBytes: 2048},
	})
	m.Refresh(context.Background())

	tests := []struct {
		cursor, want int
	}{
		{-5, 0},
		{0, 0},
		{1, 1},
		{2, 1},
		{100, 1},
	}
	for _, tt := range tests {
		if got := m.ClampCursor(tt.cursor); got != tt.want {
			t.Errorf("ClampCursor(%d) = %d, want %d", tt.cursor, got, tt.want)
		}
	}
}

func TestClampCursorEmptyTable(t *testing.T) {
	m := NewManager(nil)
	if got := m.ClampCursor(3); got != 0 {
		t.Errorf("ClampCursor on empty table = %d, want 0", got)
	}
}

// TestKillAlwaysRefreshes verifies the table is rebuilt whether or not
// the kill command succeeds.
func TestKillAlwaysRefreshes(t *testing.T) {
	m, refreshes := newTestManager([]Record{
		{PID: 7, Name: "victim", MemoryBytes: 4096},
	})

	m.Kill(context.Background(), 7)
	if *refreshes != 1 {
		t.Errorf("refreshes after successful kill = %d, want 1", *refreshes)
	}

	m.runKill = func(context.Context, int32) error {
		return errors.New("operation not permitted")
	}
	m.Kill(context.Background(), 7)
	if *refreshes != 2 {
		t.Errorf("refreshes after failed kill = %d, want 2", *refreshes)
	}
}

// TestRefreshFailureKeepsPreviousTable verifies enumeration errors do
// not clear the existing snapshot.
func TestRefreshFailureKeepsPreviousTable(t *testing.T) {
	m, _ := newTestManager([]Record{
		{PID: 1, Name: "a", MemoryBytes: 4096},
	})
	m.Refresh(context.Background())

	m.listProcesses = func(context.Context) ([]Record, error) {
		return nil, errors.New("proc unavailable")
	}
	m.Refresh(context.Background())

	if m.Len() != 1 {
		t.Errorf("table has %d rows after failed refresh, want 1", m.Len())
	}
}
