// Package tui implements the interactive dashboard: an Overview tab
// with gauges and sparklines, a Processes tab with a sortable,
// killable table, and a Logs tab showing the journal tail. Data
// collection runs in commands off the render goroutine; the model
// only ever renders immutable snapshots handed back in messages.
package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"gitlab.com/tinyland/lab/hostpulse/journal"
	"gitlab.com/tinyland/lab/hostpulse/metrics"
	"gitlab.com/tinyland/lab/hostpulse/procs"
)

// Tab identifies which tab is currently active.
type Tab int

const (
	TabOverview Tab = iota
	TabProcesses
	TabLogs
	tabCount // sentinel for wrapping
)

// tabNames maps each Tab value to its display label.
var tabNames = map[Tab]string{
	TabOverview:  "Overview",
	TabProcesses: "Processes",
	TabLogs:      "Logs",
}

// pageStep is how many rows PageUp and PageDown move the cursor.
const pageStep = 10

// MetricsSource produces render frames. *metrics.Engine is the
// production implementation.
type MetricsSource interface {
	Collect(ctx context.Context) metrics.Frame
}

// ProcessSource is the process table backend. *procs.Manager is the
// production implementation.
type ProcessSource interface {
	Refresh(ctx context.Context)
	Table() []procs.Record
	SetSortMode(mode procs.SortMode)
	Kill(ctx context.Context, pid int32)
}

// LogSource is the journal tail backend. *journal.Cache is the
// production implementation.
type LogSource interface {
	Refresh(ctx context.Context)
	Lines() []string
}

var (
	_ MetricsSource = (*metrics.Engine)(nil)
	_ ProcessSource = (*procs.Manager)(nil)
	_ LogSource     = (*journal.Cache)(nil)
)

// Options configures the TUI model. Zero-value intervals fall back to
// defaults.
type Options struct {
	Metrics   MetricsSource
	Processes ProcessSource
	Logs      LogSource

	// UpdateInterval is the metrics tick cadence (default 1s).
	UpdateInterval time.Duration
	// ProcessInterval is the process table refresh cadence while the
	// Processes tab is visible (default 2s).
	ProcessInterval time.Duration
	// JournalInterval is the journal refresh cadence while the Logs
	// tab is visible (default 5s).
	JournalInterval time.Duration

	Logger *slog.Logger
}

// Model is the top-level Bubbletea model for the hostpulse TUI.
type Model struct {
	opts   Options
	logger *slog.Logger
	zones  *zone.Manager

	activeTab Tab
	width     int
	height    int
	// ready flips once the first frame or window size arrives; until
	// then View shows a placeholder.
	ready bool

	frame       *metrics.Frame
	lastUpdated time.Time

	procRows        []procs.Record
	procCursor      int
	procSort        procs.SortMode
	procBusy        bool
	lastProcRefresh time.Time

	logLines       []string
	logScroll      int
	logBusy        bool
	lastLogRefresh time.Time
}

// NewModel returns an initialized Model with TabOverview active.
func NewModel(opts Options) Model {
	if opts.UpdateInterval <= 0 {
		opts.UpdateInterval = time.Second
	}
	if opts.ProcessInterval <= 0 {
		opts.ProcessInterval = 2 * time.Second
	}
	if opts.JournalInterval <= 0 {
		opts.JournalInterval = 5 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	// Seed dimensions from the environment so the first frame renders
	// at a sensible size even before the program delivers a
	// WindowSizeMsg.
	width, height := DetectTerminalSize()

	return Model{
		opts:      opts,
		logger:    opts.Logger,
		zones:     zone.New(),
		activeTab: TabOverview,
		procSort:  procs.SortCPU,
		width:     width,
		height:    height,
	}
}

// Init implements tea.Model. It kicks off the first metrics collection.
func (m Model) Init() tea.Cmd {
	return m.collectCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case frameMsg:
		f := msg.frame
		m.frame = &f
		m.lastUpdated = msg.at
		m.ready = true
		return m, m.nextTickCmd()

	case tickMsg:
		cmds := []tea.Cmd{m.collectCmd()}
		if m.activeTab == TabProcesses && !m.procBusy && m.procStale() {
			m.procBusy = true
			cmds = append(cmds, m.refreshProcessesCmd())
		}
		if m.activeTab == TabLogs && !m.logBusy && m.logStale() {
			m.logBusy = true
			cmds = append(cmds, m.refreshJournalCmd())
		}
		return m, tea.Batch(cmds...)

	case processTableMsg:
		m.procRows = msg.rows
		m.lastProcRefresh = msg.at
		m.procBusy = false
		m.procCursor = clampIndex(m.procCursor, len(m.procRows))

	case journalMsg:
		m.logLines = msg.lines
		m.lastLogRefresh = msg.at
		m.logBusy = false
		m.logScroll = clampIndex(m.logScroll, len(m.logLines))
	}

	return m, nil
}

// handleKey dispatches key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.NextTab):
		return m.switchTab((m.activeTab + 1) % tabCount)
	case key.Matches(msg, keys.PrevTab):
		return m.switchTab((m.activeTab - 1 + tabCount) % tabCount)
	case key.Matches(msg, keys.Tab1):
		return m.switchTab(TabOverview)
	case key.Matches(msg, keys.Tab2):
		return m.switchTab(TabProcesses)
	case key.Matches(msg, keys.Tab3):
		return m.switchTab(TabLogs)

	case key.Matches(msg, keys.ScrollUp):
		m.scrollBy(-1)
	case key.Matches(msg, keys.ScrollDown):
		m.scrollBy(1)
	case key.Matches(msg, keys.PageUp):
		m.scrollBy(-pageStep)
	case key.Matches(msg, keys.PageDown):
		m.scrollBy(pageStep)

	case key.Matches(msg, keys.SortCPU):
		if m.activeTab == TabProcesses {
			m.setSort(procs.SortCPU)
		}
	case key.Matches(msg, keys.SortMemory):
		if m.activeTab == TabProcesses {
			m.setSort(procs.SortMemory)
		}

	case key.Matches(msg, keys.Kill):
		if m.activeTab == TabProcesses && len(m.procRows) > 0 && !m.procBusy {
			pid := m.procRows[m.procCursor].PID
			m.procBusy = true
			return m, m.killProcessCmd(pid)
		}
	}

	return m, nil
}

// handleMouse makes the tab bar clickable.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	for i := Tab(0); i < tabCount; i++ {
		if m.zones.Get(tabZoneID(i)).InBounds(msg) {
			return m.switchTab(i)
		}
	}
	return m, nil
}

// switchTab activates the given tab and triggers an immediate refresh
// when the tab's data is empty or stale.
func (m Model) switchTab(tab Tab) (Model, tea.Cmd) {
	m.activeTab = tab

	switch tab {
	case TabProcesses:
		if !m.procBusy && (len(m.procRows) == 0 || m.procStale()) {
			m.procBusy = true
			return m, m.refreshProcessesCmd()
		}
	case TabLogs:
		if !m.logBusy && (len(m.logLines) == 0 || m.logStale()) {
			m.logBusy = true
			return m, m.refreshJournalCmd()
		}
	}

	return m, nil
}

// scrollBy moves the active tab's cursor or scroll offset.
func (m *Model) scrollBy(delta int) {
	switch m.activeTab {
	case TabProcesses:
		m.procCursor = clampIndex(m.procCursor+delta, len(m.procRows))
	case TabLogs:
		m.logScroll = clampIndex(m.logScroll+delta, len(m.logLines))
	}
}

// setSort switches the process sort key and re-orders the currently
// displayed rows without waiting for the next refresh.
func (m *Model) setSort(mode procs.SortMode) {
	m.procSort = mode
	m.opts.Processes.SetSortMode(mode)
	if !m.procBusy {
		m.procRows = m.opts.Processes.Table()
		m.procCursor = clampIndex(m.procCursor, len(m.procRows))
	}
}

// procStale reports whether the process table is due for a refresh.
func (m Model) procStale() bool {
	return m.lastProcRefresh.IsZero() || time.Since(m.lastProcRefresh) >= m.opts.ProcessInterval
}

// logStale reports whether the journal cache is due for a refresh.
func (m Model) logStale() bool {
	return m.lastLogRefresh.IsZero() || time.Since(m.lastLogRefresh) >= m.opts.JournalInterval
}

// View implements tea.Model. It renders the header, active tab
// content, and footer, and registers click zones.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	header := m.renderHeader()
	content := m.renderTabContent()
	footer := m.renderFooter()

	return m.zones.Scan(lipgloss.JoinVertical(lipgloss.Left, header, content, footer))
}

// renderHeader renders the tab bar with the active tab highlighted.
func (m Model) renderHeader() string {
	var tabs []string
	for i := Tab(0); i < tabCount; i++ {
		name := tabNames[i]
		var rendered string
		if i == m.activeTab {
			rendered = styleActiveTab.Render(name)
		} else {
			rendered = styleInactiveTab.Render(name)
		}
		tabs = append(tabs, m.zones.Mark(tabZoneID(i), rendered))
	}

	tabBar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	return styleHeader.Width(m.width).Render(tabBar)
}

// renderTabContent delegates to the appropriate tab renderer based on
// the active tab.
func (m Model) renderTabContent() string {
	// Reserve space for header and footer (approximate).
	contentHeight := m.height - 6
	if contentHeight < 1 {
		contentHeight = 1
	}

	var content string
	switch m.activeTab {
	case TabOverview:
		content = renderOverviewContent(m.frame, m.width, contentHeight)
	case TabProcesses:
		var gpuProcs []gpuProcRow
		if m.frame != nil {
			gpuProcs = gpuProcRows(m.frame.GPUProcs)
		}
		content = renderProcessesContent(m.procRows, gpuProcs, m.procCursor, m.procSort, m.width, contentHeight)
	case TabLogs:
		content = renderLogsContent(m.logLines, m.logScroll, m.width, contentHeight)
	default:
		content = ""
	}

	return styleContent.Width(m.width).Render(content)
}

// renderFooter renders the help text and last updated timestamp.
func (m Model) renderFooter() string {
	help := "q: quit | tab: switch | 1-3: jump"
	switch m.activeTab {
	case TabProcesses:
		help += " | up/down: select | c/m: sort | k: kill"
	case TabLogs:
		help += " | up/down: scroll"
	}

	var timestamp string
	if !m.lastUpdated.IsZero() {
		timestamp = fmt.Sprintf("  Updated: %s", m.lastUpdated.Format("15:04:05"))
	}

	return styleFooter.Width(m.width).Render(help + timestamp)
}

// tabZoneID returns the bubblezone id for a tab's header label.
func tabZoneID(tab Tab) string {
	return "tab-" + tabNames[tab]
}

// clampIndex clamps i into [0, n), or 0 when n is 0.
func clampIndex(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
