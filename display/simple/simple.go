// Package simple implements the plain-text output mode: a full
// metrics report reprinted at the update interval, for terminals or
// logs where the interactive dashboard is unwanted.
package simple

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"

	"gitlab.com/tinyland/lab/hostpulse/internal/format"
	"gitlab.com/tinyland/lab/hostpulse/metrics"
)

const (
	// headerWidth sizes the centered clock header and its underline.
	headerWidth = 30

	// coresPerRow is how many per-core cells share one line.
	coresPerRow = 4
)

// MetricsSource produces render frames. *metrics.Engine is the
// production implementation.
type MetricsSource interface {
	Collect(ctx context.Context) metrics.Frame
}

var _ MetricsSource = (*metrics.Engine)(nil)

// Runner reprints a full metrics report at a fixed cadence.
type Runner struct {
	source   MetricsSource
	out      io.Writer
	interval time.Duration

	// clearScreen controls whether each report starts with an ANSI
	// clear. Disabled in tests.
	clearScreen bool

	// now, cpuInfo and uptime are overridable in tests.
	now     func() time.Time
	cpuInfo func(ctx context.Context) ([]cpu.InfoStat, error)
	uptime  func(ctx context.Context) (uint64, error)
}

// NewRunner creates a Runner writing to out every interval.
func NewRunner(source MetricsSource, out io.Writer, interval time.Duration) *Runner {
	if interval <= 0 {
		interval = time.Second
	}
	return &Runner{
		source:      source,
		out:         out,
		interval:    interval,
		clearScreen: true,
		now:         time.Now,
		cpuInfo:     cpu.InfoWithContext,
		uptime:      host.UptimeWithContext,
	}
}

// Run prints reports until the context is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		r.printReport(ctx)
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// printReport collects one frame and writes the full report.
func (r *Runner) printReport(ctx context.Context) {
	frame := r.source.Collect(ctx)

	var b strings.Builder
	if r.clearScreen {
		b.WriteString("\x1b[2J\x1b[H")
	}

	// Centered clock header.
	clock := r.now().Format("15:04:05")
	pad := (headerWidth - len(clock)) / 2
	if pad < 0 {
		pad = 0
	}
	b.WriteString(strings.Repeat(" ", pad) + clock + "\n")
	b.WriteString(strings.Repeat("=", headerWidth) + "\n")
	if secs, err := r.uptime(ctx); err == nil {
		fmt.Fprintf(&b, "Uptime: %s\n", format.Uptime(time.Duration(secs)*time.Second))
	}

	r.writeCPU(ctx, &b, frame)
	r.writeMemory(&b, frame)
	r.writeDisk(&b, frame)
	r.writeNetwork(&b, frame)
	r.writeTemperature(&b, frame)
	r.writeGPU(&b, frame)

	io.WriteString(r.out, b.String())
}

func (r *Runner) writeCPU(ctx context.Context, b *strings.Builder, frame metrics.Frame) {
	b.WriteString("\nCPU:\n")
	fmt.Fprintf(b, "  Overall Usage: %s\n", format.Percent(frame.CPUPct))

	if infos, err := r.cpuInfo(ctx); err == nil && len(infos) > 0 {
		fmt.Fprintf(b, "  Brand: %s\n", infos[0].ModelName)
		fmt.Fprintf(b, "  Frequency: %.0f MHz\n", infos[0].Mhz)
	}
	if len(frame.PerCore) > 0 {
		fmt.Fprintf(b, "  Cores: %d\n", len(frame.PerCore))
		b.WriteString("  Per-core Usage:\n")
		writeCoreCells(b, frame.PerCore, "%5.1f%%")
	}
}

func (r *Runner) writeMemory(b *strings.Builder, frame metrics.Frame) {
	b.WriteString("\nMemory:\n")
	fmt.Fprintf(b, "  Usage: %s\n", format.Percent(frame.MemPct))
	fmt.Fprintf(b, "  Used: %s\n", format.Bytes(frame.MemUsedBytes))
	fmt.Fprintf(b, "  Total: %s\n", format.Bytes(frame.MemTotalBytes))
}

func (r *Runner) writeDisk(b *strings.Builder, frame metrics.Frame) {
	b.WriteString("\nDisk:\n")
	fmt.Fprintf(b, "  Root Usage: %s\n", format.Percent(frame.DiskPct))
}

func (r *Runner) writeNetwork(b *strings.Builder, frame metrics.Frame) {
	b.WriteString("\nNetwork:\n")
	fmt.Fprintf(b, "  Download: %s\n", format.Kbps(frame.DownloadKbps))
	fmt.Fprintf(b, "  Upload: %s\n", format.Kbps(frame.UploadKbps))
	fmt.Fprintf(b, "  Total Down: %s\n", format.Bytes(frame.TotalRxBytes))
	fmt.Fprintf(b, "  Total Up: %s\n", format.Bytes(frame.TotalTxBytes))
}

func (r *Runner) writeTemperature(b *strings.Builder, frame metrics.Frame) {
	b.WriteString("\nTemperature:\n")
	if frame.HavePackageTemp {
		fmt.Fprintf(b, "  CPU Package: %s\n", format.Celsius(frame.PackageTemp))
	} else {
		b.WriteString("  CPU Package: N/A\n")
	}

	if len(frame.CoreTemps) == 0 {
		return
	}
	switch {
	case len(frame.CoreTemps) == len(frame.PerCore):
		b.WriteString("  Per-core Temps:\n")
	case len(frame.CoreTemps) < len(frame.PerCore):
		b.WriteString("  Per-core Temps (physical cores mapped to logical):\n")
	default:
		b.WriteString("  Core Temps:\n")
	}
	writeCoreCells(b, frame.CoreTemps, "%5.1f°C")
}

func (r *Runner) writeGPU(b *strings.Builder, frame metrics.Frame) {
	b.WriteString("\nGPU:\n")

	writeOpt := func(label string, p *float64, render func(float64) string) {
		if p != nil {
			fmt.Fprintf(b, "  %s: %s\n", label, render(*p))
		} else {
			fmt.Fprintf(b, "  %s: N/A\n", label)
		}
	}

	writeOpt("Usage", frame.GPU.UsagePct, func(v float64) string { return format.Percent(float32(v)) })
	writeOpt("Temp", frame.GPU.TempC, func(v float64) string { return format.Celsius(float32(v)) })
	writeOpt("Fan", frame.GPU.FanPct, func(v float64) string { return fmt.Sprintf("%.0f%%", v) })
	writeOpt("Power", frame.GPU.PowerW, func(v float64) string { return fmt.Sprintf("%.1f W", v) })

	switch {
	case frame.GPU.MemUsedMB != nil && frame.GPU.MemTotalMB != nil:
		pct, _ := frame.GPU.VRAMPct()
		fmt.Fprintf(b, "  VRAM: %.0f / %.0f MiB (%s)\n",
			*frame.GPU.MemUsedMB, *frame.GPU.MemTotalMB, format.Percent(float32(pct)))
	case frame.GPU.MemUsedMB != nil:
		fmt.Fprintf(b, "  VRAM Used: %.0f MiB\n", *frame.GPU.MemUsedMB)
	default:
		b.WriteString("  VRAM: N/A\n")
	}
}

// writeCoreCells prints values in indented rows of coresPerRow cells,
// each labeled with its core index.
func writeCoreCells(b *strings.Builder, values []float32, cellFormat string) {
	for i, v := range values {
		if i%coresPerRow == 0 {
			b.WriteString("    ")
		}
		fmt.Fprintf(b, "C%02d:"+cellFormat, i, v)
		if i%coresPerRow == coresPerRow-1 || i == len(values)-1 {
			b.WriteString("\n")
		} else {
			b.WriteString("  ")
		}
	}
}
