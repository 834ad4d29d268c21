// Package procs maintains the host process table for display: it
// enumerates live processes, filters noise, sorts by the active key,
// and bounds the table size so rendering and scrolling stay cheap.
package procs

import (
	"context"
	"io"
	"log/slog"
	"os/exec"
	"sort"
	"strconv"
	"sync"

	"github.com/shirou/gopsutil/v3/process"
)

const (
	// maxTableRows bounds the snapshot size.
	maxTableRows = 500

	// minMemoryBytes filters out kernel threads and other tiny
	// entries that only add noise to the table.
	minMemoryBytes = 1024
)

// SortMode selects the primary process table sort key.
type SortMode int

const (
	// SortCPU orders by CPU percent, memory as tie-break.
	SortCPU SortMode = iota
	// SortMemory orders by memory, CPU percent as tie-break.
	SortMemory
)

// Record is one row of the process table.
type Record struct {
	PID         int32
	Name        string
	CPUPct      float64
	MemoryBytes uint64
	User        string
}

// Manager owns the current process snapshot. The table is rebuilt
// wholesale on every Refresh; rows are never diffed or merged against
// the previous table, so a held scroll cursor must be re-clamped via
// ClampCursor after each refresh. Manager is safe for concurrent use.
type Manager struct {
	logger *slog.Logger

	mu       sync.Mutex
	sortMode SortMode
	table    []Record

	// listProcesses enumerates live processes. Overridable in tests.
	listProcesses func(ctx context.Context) ([]Record, error)

	// runKill sends a forceful termination signal. Overridable in
	// tests. Its error is advisory only.
	runKill func(ctx context.Context, pid int32) error
}

// NewManager creates a Manager sorting by CPU percent. If logger is
// nil, a no-op logger is used.
func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Manager{
		logger:        logger,
		sortMode:      SortCPU,
		listProcesses: listHostProcesses,
		runKill:       runKillCommand,
	}
}

// Refresh re-enumerates live processes and rebuilds the table:
// filter, map, sort, truncate. Enumeration failure leaves the previous
// table in place.
func (m *Manager) Refresh(ctx context.Context) {
	records, err := m.listProcesses(ctx)
	if err != nil {
		m.logger.Debug("process enumeration failed", "error", err)
		return
	}

	filtered := records[:0]
	for _, r := range records {
		if r.Name == "" || r.MemoryBytes <= minMemoryBytes {
			continue
		}
		filtered = append(filtered, r)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	sortRecords(filtered, m.sortMode)
	if len(filtered) > maxTableRows {
		filtered = filtered[:maxTableRows]
	}

	m.table = filtered
	m.logger.Debug("process table refreshed", "rows", len(filtered))
}

// SortMode returns the active sort key.
func (m *Manager) SortMode() SortMode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sortMode
}

// SetSortMode switches the sort key and re-orders the current table in
// place. The rows themselves may be stale by up to one refresh
// interval; callers wanting fresh data follow up with Refresh.
func (m *Manager) SetSortMode(mode SortMode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sortMode = mode
	sortRecords(m.table, mode)
}

// Table returns a copy of the current snapshot.
func (m *Manager) Table() []Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Record, len(m.table))
	copy(out, m.table)
	return out
}

// Len returns the number of rows in the current snapshot.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.table)
}

// ClampCursor clamps an externally-held scroll cursor into the current
// table bounds.
func (m *Manager) ClampCursor(cursor int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cursor < 0 {
		return 0
	}
	if cursor >= len(m.table) {
		if len(m.table) == 0 {
			return 0
		}
		return len(m.table) - 1
	}
	return cursor
}

// Kill sends SIGKILL to the given pid via the kill command and then
// refreshes the table so it reflects current reality. The kill
// command's own exit status is advisory: a failed kill is not
// surfaced, the refreshed table is the feedback channel.
func (m *Manager) Kill(ctx context.Context, pid int32) {
	if err := m.runKill(ctx, pid); err != nil {
		m.logger.Debug("kill command failed", "pid", pid, "error", err)
	}
	m.Refresh(ctx)
}

// sortRecords orders descending by the primary key with the secondary
// key as tie-break.
func sortRecords(records []Record, mode SortMode) {
	switch mode {
	case SortMemory:
		sort.SliceStable(records, func(i, j int) bool {
			if records[i].MemoryBytes != records[j].MemoryBytes {
				return records[i].MemoryBytes > records[j].MemoryBytes
			}
			return records[i].CPUPct > records[j].CPUPct
		})
	default:
		sort.SliceStable(records, func(i, j int) bool {
			if records[i].CPUPct != records[j].CPUPct {
				return records[i].CPUPct > records[j].CPUPct
			}
			return records[i].MemoryBytes > records[j].MemoryBytes
		})
	}
}

// listHostProcesses enumerates live processes via gopsutil. Per-field
// read failures degrade to zero values rather than dropping the row;
// the filter in Refresh removes rows that end up empty.
func listHostProcesses(ctx context.Context) ([]Record, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(procs))
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil {
			continue // process likely exited mid-enumeration
		}

		cpuPct, _ := p.CPUPercentWithContext(ctx)

		var memBytes uint64
		if info, err := p.MemoryInfoWithContext(ctx); err == nil && info != nil {
			memBytes = info.RSS
		}

		user, err := p.UsernameWithContext(ctx)
		if err != nil || user == "" {
			user = "unknown"
		}

		records = append(records, Record{
			PID:         p.Pid,
			Name:        name,
			CPUPct:      cpuPct,
			MemoryBytes: memBytes,
			User:        user,
		})
	}
	return records, nil
}

// runKillCommand shells out to kill -9.
func runKillCommand(ctx context.Context, pid int32) error {
	return exec.CommandContext(ctx, "kill", "-9", strconv.Itoa(int(pid))).Run()
}
