package tui

import (
	"fmt"
	"strings"

	"gitlab.com/tinyland/lab/hostpulse/display/widgets"
	"gitlab.com/tinyland/lab/hostpulse/internal/format"
	"gitlab.com/tinyland/lab/hostpulse/metrics"
)

// coresPerRow is how many per-core cells share one line.
const coresPerRow = 4

// renderOverviewContent renders the Overview tab: CPU, memory, disk,
// network, temperature and GPU sections built from the latest frame.
func renderOverviewContent(frame *metrics.Frame, width, height int) string {
	if frame == nil {
		return "Collecting metrics..."
	}

	layout := LayoutForSize(DetectLayout(width), width)
	ruleWidth := width - 2*layout.ContentPadding - 4
	if ruleWidth < 20 {
		ruleWidth = 20
	}

	var sections []string

	// CPU section.
	sections = append(sections, styleTitle.Render(sectionTitle("CPU", ruleWidth)))
	sections = append(sections, usageGauge("Usage ", frame.CPUPct, layout))
	if layout.ShowSparklines && len(frame.CPUHistory) > 1 {
		sections = append(sections, widgets.RenderSparkline(widgets.SparklineConfig{
			Data:  frame.CPUHistory,
			Width: sparkWidth(layout),
			Min:   0,
			Max:   100,
			Label: "Trend ",
			Color: colorSecondary,
		}))
	}
	if layout.ShowMiniGauges && len(frame.PerCore) > 0 {
		sections = append(sections, perCoreUsageRows(frame.PerCore)...)
	}
	sections = append(sections, "")

	// Memory section.
	sections = append(sections, styleTitle.Render(sectionTitle("Memory", ruleWidth)))
	sections = append(sections, usageGauge("Usage ", frame.MemPct, layout))
	if frame.MemTotalBytes > 0 {
		sections = append(sections, fmt.Sprintf("Used %s of %s",
			format.Bytes(frame.MemUsedBytes), format.Bytes(frame.MemTotalBytes)))
	}
	sections = append(sections, "")

	// Disk section.
	sections = append(sections, styleTitle.Render(sectionTitle("Disk", ruleWidth)))
	sections = append(sections, usageGauge("Root  ", frame.DiskPct, layout))
	sections = append(sections, "")

	// Network section.
	sections = append(sections, styleTitle.Render(sectionTitle("Network", ruleWidth)))
	sections = append(sections, fmt.Sprintf("Down %s   Up %s",
		format.Kbps(frame.DownloadKbps), format.Kbps(frame.UploadKbps)))
	if layout.ShowSparklines && len(frame.NetRxHistory) > 1 {
		sections = append(sections, "Down "+widgets.RenderSparklineWithRange(frame.NetRxHistory, sparkWidth(layout)))
		sections = append(sections, "Up   "+widgets.RenderSparklineWithRange(frame.NetTxHistory, sparkWidth(layout)))
	}
	sections = append(sections, fmt.Sprintf("Session down %s, up %s",
		format.Bytes(frame.TotalRxBytes), format.Bytes(frame.TotalTxBytes)))
	sections = append(sections, "")

	// Temperature section.
	sections = append(sections, styleTitle.Render(sectionTitle("Temperature", ruleWidth)))
	if frame.HavePackageTemp {
		sections = append(sections, "Package "+format.Celsius(frame.PackageTemp))
	} else {
		sections = append(sections, "Package N/A")
	}
	if len(frame.CoreTemps) > 0 {
		sections = append(sections, perCoreTempRows(frame.CoreTemps)...)
	}
	sections = append(sections, "")

	// GPU section.
	sections = append(sections, styleTitle.Render(sectionTitle("GPU", ruleWidth)))
	sections = append(sections, gpuLines(frame, layout)...)

	return strings.Join(sections, "\n")
}

// usageGauge renders a percentage gauge at the layout's width.
func usageGauge(label string, pct float32, layout LayoutConfig) string {
	cfg := widgets.DefaultGaugeConfig()
	cfg.Width = layout.GaugeWidth
	cfg.Percent = pct
	cfg.Label = label
	return widgets.RenderGauge(cfg)
}

// sparkWidth is the sparkline width for the given layout.
func sparkWidth(layout LayoutConfig) int {
	return layout.GaugeWidth + 10
}

// perCoreUsageRows renders per-core usage as rows of mini gauges.
func perCoreUsageRows(perCore []float32) []string {
	var rows []string
	var cells []string
	for i, v := range perCore {
		cells = append(cells, fmt.Sprintf("C%02d %s %5.1f%%", i, widgets.RenderMiniGauge(v, 8), v))
		if len(cells) == coresPerRow || i == len(perCore)-1 {
			rows = append(rows, strings.Join(cells, "  "))
			cells = nil
		}
	}
	return rows
}

// perCoreTempRows renders per-core temperatures in rows.
func perCoreTempRows(temps []float32) []string {
	var rows []string
	var cells []string
	for i, t := range temps {
		cells = append(cells, fmt.Sprintf("C%02d %5.1f°C", i, t))
		if len(cells) == coresPerRow || i == len(temps)-1 {
			rows = append(rows, strings.Join(cells, "  "))
			cells = nil
		}
	}
	return rows
}

// gpuLines renders the GPU section body. Absent fields render as N/A
// rather than being hidden, so the section shape stays stable.
func gpuLines(frame *metrics.Frame, layout LayoutConfig) []string {
	if !frame.GPU.Present() {
		return []string{"No GPU detected"}
	}

	var lines []string
	if frame.GPU.Name != "" {
		lines = append(lines, frame.GPU.Name)
	}

	if frame.GPU.UsagePct != nil {
		lines = append(lines, usageGauge("Usage ", float32(*frame.GPU.UsagePct), layout))
	} else {
		lines = append(lines, "Usage N/A")
	}

	lines = append(lines, fmt.Sprintf("Temp %s   Fan %s   Power %s",
		optCelsius(frame.GPU.TempC), optPercent(frame.GPU.FanPct), optWatts(frame.GPU.PowerW)))

	switch {
	case frame.GPU.MemUsedMB != nil && frame.GPU.MemTotalMB != nil:
		pct, _ := frame.GPU.VRAMPct()
		lines = append(lines, fmt.Sprintf("VRAM %.0f / %.0f MiB (%s)",
			*frame.GPU.MemUsedMB, *frame.GPU.MemTotalMB, format.Percent(float32(pct))))
	case frame.GPU.MemUsedMB != nil:
		lines = append(lines, fmt.Sprintf("VRAM used %.0f MiB", *frame.GPU.MemUsedMB))
	default:
		lines = append(lines, "VRAM N/A")
	}

	return lines
}

func optCelsius(p *float64) string {
	if p == nil {
		return "N/A"
	}
	return format.Celsius(float32(*p))
}

func optPercent(p *float64) string {
	if p == nil {
		return "N/A"
	}
	return format.Percent(float32(*p))
}

func optWatts(p *float64) string {
	if p == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.1f W", *p)
}
