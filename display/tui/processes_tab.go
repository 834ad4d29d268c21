package tui

import (
	"fmt"
	"strconv"
	"strings"

	"gitlab.com/tinyland/lab/hostpulse/display/widgets"
	"gitlab.com/tinyland/lab/hostpulse/gpu"
	"gitlab.com/tinyland/lab/hostpulse/internal/format"
	"gitlab.com/tinyland/lab/hostpulse/procs"
)

// gpuProcRow is one pre-formatted GPU process line.
type gpuProcRow struct {
	pid     string
	name    string
	memory  string
	gpuUtil string
	memUtil string
}

// gpuProcRows formats merged GPU process records for display.
func gpuProcRows(records []gpu.ProcessRecord) []gpuProcRow {
	rows := make([]gpuProcRow, 0, len(records))
	for _, r := range records {
		row := gpuProcRow{
			pid:     strconv.Itoa(int(r.PID)),
			name:    r.Name,
			memory:  fmt.Sprintf("%d MiB", r.MemoryMB),
			gpuUtil: "-",
			memUtil: "-",
		}
		if r.GPUUtilPct != nil {
			row.gpuUtil = format.Percent(float32(*r.GPUUtilPct))
		}
		if r.MemUtilPct != nil {
			row.memUtil = format.Percent(float32(*r.MemUtilPct))
		}
		rows = append(rows, row)
	}
	return rows
}

// renderProcessesContent renders the Processes tab: the sortable host
// process table with the cursor row highlighted, plus a GPU process
// section when any GPU work is running.
func renderProcessesContent(rows []procs.Record, gpuProcs []gpuProcRow, cursor int, mode procs.SortMode, width, height int) string {
	if len(rows) == 0 {
		return "No process data yet\n\nThe table refreshes every few seconds."
	}

	// Reserve lines for the title, the table header, and the GPU
	// section when present.
	visible := height - 4
	if len(gpuProcs) > 0 {
		visible -= len(gpuProcs) + 3
	}
	if visible < 3 {
		visible = 3
	}

	// Keep the cursor row inside the visible window.
	offset := 0
	if cursor >= visible {
		offset = cursor - visible + 1
	}
	end := offset + visible
	if end > len(rows) {
		end = len(rows)
	}
	window := rows[offset:end]

	tableRows := make([][]string, 0, len(window))
	for _, r := range window {
		tableRows = append(tableRows, []string{
			strconv.Itoa(int(r.PID)),
			truncateText(r.Name, 24),
			format.Percent(float32(r.CPUPct)),
			format.Bytes(r.MemoryBytes),
			truncateText(r.User, 12),
		})
	}

	cfg := widgets.DefaultTableConfig()
	cfg.Columns = []widgets.Column{
		{Title: "PID", Width: 7, Align: widgets.AlignRight},
		{Title: "Name", Width: 24},
		{Title: "CPU", Width: 7, Align: widgets.AlignRight},
		{Title: "Memory", Width: 10, Align: widgets.AlignRight},
		{Title: "User", Width: 12},
	}
	cfg.Rows = tableRows
	cfg.MaxWidth = width - 4
	cfg.SelectedRow = cursor - offset

	title := styleTitle.Render(fmt.Sprintf("Processes (%d, sorted by %s)", len(rows), sortLabel(mode)))

	sections := []string{title, widgets.RenderTable(cfg)}

	if len(gpuProcs) > 0 {
		sections = append(sections, "", renderGPUProcessTable(gpuProcs, width))
	}

	return strings.Join(sections, "\n")
}

// renderGPUProcessTable renders the merged GPU process table.
func renderGPUProcessTable(gpuProcs []gpuProcRow, width int) string {
	cfg := widgets.DefaultTableConfig()
	cfg.Columns = []widgets.Column{
		{Title: "PID", Width: 7, Align: widgets.AlignRight},
		{Title: "Name", Width: 24},
		{Title: "VRAM", Width: 10, Align: widgets.AlignRight},
		{Title: "GPU", Width: 6, Align: widgets.AlignRight},
		{Title: "Mem", Width: 6, Align: widgets.AlignRight},
	}
	rows := make([][]string, 0, len(gpuProcs))
	for _, r := range gpuProcs {
		rows = append(rows, []string{r.pid, truncateText(r.name, 24), r.memory, r.gpuUtil, r.memUtil})
	}
	cfg.Rows = rows
	cfg.MaxWidth = width - 4

	title := styleTitle.Render(fmt.Sprintf("GPU Processes (%d)", len(gpuProcs)))
	return title + "\n" + widgets.RenderTable(cfg)
}

// sortLabel names the active sort key for the table title.
func sortLabel(mode procs.SortMode) string {
	if mode == procs.SortMemory {
		return "memory"
	}
	return "cpu"
}
