package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/hostpulse/metrics"
	"gitlab.com/tinyland/lab/hostpulse/procs"
)

// tickMsg schedules the next metrics collection.
type tickMsg time.Time

// frameMsg carries a freshly collected render frame.
type frameMsg struct {
	frame metrics.Frame
	at    time.Time
}

// processTableMsg carries a refreshed process table snapshot.
type processTableMsg struct {
	rows []procs.Record
	at   time.Time
}

// journalMsg carries refreshed journal lines.
type journalMsg struct {
	lines []string
	at    time.Time
}

// collectCmd runs one metrics collection pass off the render
// goroutine. The next collection is only scheduled once its frame
// arrives, so passes never overlap.
func (m Model) collectCmd() tea.Cmd {
	src := m.opts.Metrics
	return func() tea.Msg {
		return frameMsg{frame: src.Collect(context.Background()), at: time.Now()}
	}
}

// nextTickCmd schedules the next metrics tick.
func (m Model) nextTickCmd() tea.Cmd {
	return tea.Tick(m.opts.UpdateInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// refreshProcessesCmd re-enumerates the process table.
func (m Model) refreshProcessesCmd() tea.Cmd {
	src := m.opts.Processes
	return func() tea.Msg {
		src.Refresh(context.Background())
		return processTableMsg{rows: src.Table(), at: time.Now()}
	}
}

// killProcessCmd kills the given pid and returns the refreshed table.
func (m Model) killProcessCmd(pid int32) tea.Cmd {
	src := m.opts.Processes
	logger := m.logger
	return func() tea.Msg {
		logger.Info("killing process", "pid", pid)
		src.Kill(context.Background(), pid)
		return processTableMsg{rows: src.Table(), at: time.Now()}
	}
}

// refreshJournalCmd fetches the journal tail.
func (m Model) refreshJournalCmd() tea.Cmd {
	src := m.opts.Logs
	return func() tea.Msg {
		src.Refresh(context.Background())
		return journalMsg{lines: src.Lines(), at: time.Now()}
	}
}
