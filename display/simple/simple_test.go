package simple

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"

	"gitlab.com/tinyland/lab/hostpulse/gpu"
	"gitlab.com/tinyland/lab/hostpulse/metrics"
)

type fakeSource struct {
	frame metrics.Frame
	calls int
}

func (f *fakeSource) Collect(context.Context) metrics.Frame {
	f.calls++
	return f.frame
}

func floatPtr(v float64) *float64 { return &v }

func newTestRunner(frame metrics.Frame) (*Runner, *bytes.Buffer) {
	var buf bytes.Buffer
	r := NewRunner(&fakeSource{frame: frame}, &buf, time.Second)
	r.clearScreen = false
	r.now = func() time.Time {
		return time.Date(2026, 8, 30, 14, 30, 5, 0, time.UTC)
	}
	r.cpuInfo = func(context.Context) ([]cpu.InfoStat, error) {
		return []cpu.InfoStat{{ModelName: "AMD Ryzen 9 5950X", Mhz: 3400}}, nil
	}
	r.uptime = func(context.Context) (uint64, error) {
		return 8100, nil // 2h 15m
	}
	return r, &buf
}

func TestPrintReportHeader(t *testing.T) {
	r, buf := newTestRunner(metrics.Frame{})
	r.printReport(context.Background())

	out := buf.String()
	if !strings.Contains(out, "14:30:05") {
		t.Errorf("expected clock header, got:\n%s", out)
	}
	if !strings.Contains(out, strings.Repeat("=", headerWidth)) {
		t.Error("expected header underline")
	}
	if !strings.Contains(out, "Uptime: 2h 15m") {
		t.Errorf("expected uptime line, got:\n%s", out)
	}
}

func TestPrintReportUptimeUnavailable(t *testing.T) {
	r, buf := newTestRunner(metrics.Frame{})
	r.uptime = func(context.Context) (uint64, error) {
		return 0, errors.New("no /proc/uptime")
	}
	r.printReport(context.Background())

	if strings.Contains(buf.String(), "Uptime:") {
		t.Error("expected no uptime line when the probe fails")
	}
}

func TestPrintReportSections(t *testing.T) {
	frame := metrics.Frame{
		CPUPct:        42.5,
		PerCore:       []float32{10, 20, 30, 40, 50},
		MemPct:        25,
		MemUsedBytes:  8 << 30,
		MemTotalBytes: 32 << 30,
		DiskPct:       61.5,
		DownloadKbps:  1500,
		UploadKbps:    80,
		TotalRxBytes:  5 << 20,
		TotalTxBytes:  1 << 20,
	}
	r, buf := newTestRunner(frame)
	r.printReport(context.Background())

	out := buf.String()
	checks := []string{
		"Overall Usage: 42.5%",
		"Brand: AMD Ryzen 9 5950X",
		"Frequency: 3400 MHz",
		"Cores: 5",
		"C00: 10.0%",
		"C04: 50.0%",
		"Usage: 25.0%",
		"Used: 8.0 GB",
		"Total: 32.0 GB",
		"Root Usage: 61.5%",
		"Download: 1.5 Mbps",
		"Upload: 80.0 Kbps",
		"Total Down: 5.0 MB",
		"Total Up: 1.0 MB",
		"CPU Package: N/A",
		"Usage: N/A",
		"VRAM: N/A",
	}
	for _, want := range checks {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in report, got:\n%s", want, out)
		}
	}
}

func TestPrintReportTemperatureHeadings(t *testing.T) {
	tests := []struct {
		name    string
		perCore int
		temps   int
		heading string
	}{
		{"equal counts", 4, 4, "Per-core Temps:"},
		{"mapped physical", 8, 4, "Per-core Temps (physical cores mapped to logical):"},
		{"more temps than cores", 2, 4, "Core Temps:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := metrics.Frame{
				PerCore:         make([]float32, tt.perCore),
				CoreTemps:       make([]float32, tt.temps),
				PackageTemp:     50,
				HavePackageTemp: true,
			}
			r, buf := newTestRunner(frame)
			r.printReport(context.Background())

			out := buf.String()
			if !strings.Contains(out, tt.heading) {
				t.Errorf("expected heading %q, got:\n%s", tt.heading, out)
			}
			if !strings.Contains(out, "CPU Package: 50.0°C") {
				t.Error("expected package temperature")
			}
		})
	}
}

func TestPrintReportGPUPresent(t *testing.T) {
	frame := metrics.Frame{
		GPU: gpu.Snapshot{
			UsagePct:   floatPtr(61),
			TempC:      floatPtr(70),
			FanPct:     floatPtr(45),
			PowerW:     floatPtr(220.5),
			MemUsedMB:  floatPtr(2048),
			MemTotalMB: floatPtr(8192),
		},
	}
	r, buf := newTestRunner(frame)
	r.printReport(context.Background())

	out := buf.String()
	checks := []string{
		"Usage: 61.0%",
		"Temp: 70.0°C",
		"Fan: 45%",
		"Power: 220.5 W",
		"VRAM: 2048 / 8192 MiB (25.0%)",
	}
	for _, want := range checks {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in GPU section, got:\n%s", want, out)
		}
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	src := &fakeSource{}
	var buf bytes.Buffer
	r := NewRunner(src, &buf, 10*time.Millisecond)
	r.clearScreen = false

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}

	if src.calls == 0 {
		t.Error("expected at least one collection")
	}
}
