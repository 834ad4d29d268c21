package gpu

import (
	"context"
	"io"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
)

const (
	// smiBinary is the GPU query tool.
	smiBinary = "nvidia-smi"

	// fullQuery requests the comprehensive field set in one call.
	fullQuery = "--query-gpu=name,utilization.gpu,temperature.gpu,fan.speed,power.draw,memory.used,memory.total"

	// reducedQuery is the graduated fallback for drivers that reject
	// part of the full field set.
	reducedQuery = "--query-gpu=utilization.gpu,temperature.gpu"

	// csvFormat selects plain comma-separated output.
	csvFormat = "--format=csv,noheader,nounits"

	fullQueryFields    = 7
	reducedQueryFields = 2
)

// Adapter queries GPU telemetry via the nvidia-smi subprocess.
type Adapter struct {
	logger *slog.Logger

	// runQuery executes the query tool and returns its stdout.
	// Overridable in tests.
	runQuery func(ctx context.Context, args ...string) ([]byte, error)
}

// NewAdapter creates an Adapter. If logger is nil, a no-op logger is
// used.
func NewAdapter(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Adapter{
		logger: logger,
		runQuery: func(ctx context.Context, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, smiBinary, args...).Output()
		},
	}
}

// Snapshot queries current GPU telemetry. It tries the full field set
// first and falls back to a reduced utilization+temperature query; if
// that fails too the returned snapshot is entirely absent. Snapshot
// never returns an error: GPU absence is a state, not a failure.
func (a *Adapter) Snapshot(ctx context.Context) Snapshot {
	if out, err := a.runQuery(ctx, fullQuery, csvFormat); err == nil {
		if snap, ok := parseFullSnapshot(string(out)); ok {
			return snap
		}
	}

	a.logger.Debug("gpu full query failed, trying reduced field set")
	if out, err := a.runQuery(ctx, reducedQuery, csvFormat); err == nil {
		if snap, ok := parseReducedSnapshot(string(out)); ok {
			return snap
		}
	}

	return Snapshot{}
}

// parseFullSnapshot parses one line of full-query CSV output.
func parseFullSnapshot(out string) (Snapshot, bool) {
	fields, ok := splitQueryLine(out, fullQueryFields)
	if !ok {
		return Snapshot{}, false
	}

	snap := Snapshot{
		UsagePct:   parseOptField(fields[1]),
		TempC:      parseOptField(fields[2]),
		FanPct:     parseOptField(fields[3]),
		PowerW:     parseOptField(fields[4]),
		MemUsedMB:  parseOptField(fields[5]),
		MemTotalMB: parseOptField(fields[6]),
	}
	if name := strings.TrimSpace(fields[0]); !notSupportedSentinels[strings.ToLower(name)] {
		snap.Name = name
	}
	return snap, true
}

// parseReducedSnapshot parses one line of reduced-query CSV output.
func parseReducedSnapshot(out string) (Snapshot, bool) {
	fields, ok := splitQueryLine(out, reducedQueryFields)
	if !ok {
		return Snapshot{}, false
	}
	return Snapshot{
		UsagePct: parseOptField(fields[0]),
		TempC:    parseOptField(fields[1]),
	}, true
}

// splitQueryLine splits the first output line on commas and verifies
// the field count.
func splitQueryLine(out string, want int) ([]string, bool) {
	line, _, _ := strings.Cut(strings.TrimSpace(out), "\n")
	if line == "" {
		return nil, false
	}
	fields := strings.Split(line, ",")
	if len(fields) < want {
		return nil, false
	}
	return fields[:want], true
}

// parseFloat parses a trimmed numeric field.
func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
