package gpu

import (
	"context"
	"sort"
	"strconv"
	"strings"
)

const (
	// computeAppsQuery lists compute workloads (CUDA, OpenCL).
	computeAppsQuery = "--query-compute-apps=pid,process_name,used_memory"

	// graphicsAppsQuery lists graphics workloads (X, Wayland, games).
	graphicsAppsQuery = "--query-graphics-apps=pid,process_name,used_memory"
)

// pmonArgs requests a single per-process utilization sample.
var pmonArgs = []string{"pmon", "-c", "1"}

// Processes returns the merged GPU process table, sorted by memory
// usage descending. The compute, monitor, and graphics queries run
// independently; any of them failing leaves the results from the
// others intact.
func (a *Adapter) Processes(ctx context.Context) []ProcessRecord {
	byPID := make(map[int32]*ProcessRecord)

	// Source (a): compute application list seeds the table.
	if out, err := a.runQuery(ctx, computeAppsQuery, csvFormat); err == nil {
		for _, app := range parseAppList(string(out)) {
			rec := app
			byPID[rec.PID] = &rec
		}
	} else {
		a.logger.Debug("gpu compute app query failed", "error", err)
	}

	// Source (b): per-process utilization monitor. Existing records
	// gain utilization fields; unknown pids are inserted with the
	// monitor's command name and zero memory.
	if out, err := a.runQuery(ctx, pmonArgs...); err == nil {
		for _, mon := range parseMonitorOutput(string(out)) {
			if rec, ok := byPID[mon.PID]; ok {
				rec.GPUUtilPct = mon.GPUUtilPct
				rec.MemUtilPct = mon.MemUtilPct
			} else {
				rec := mon
				byPID[rec.PID] = &rec
			}
		}
	} else {
		a.logger.Debug("gpu process monitor query failed", "error", err)
	}

	// Source (c): graphics application list. Memory is replaced only
	// when strictly greater (the graphics query can report a more
	// accurate figure); unknown pids are inserted.
	if out, err := a.runQuery(ctx, graphicsAppsQuery, csvFormat); err == nil {
		for _, app := range parseAppList(string(out)) {
			if rec, ok := byPID[app.PID]; ok {
				if app.MemoryMB > rec.MemoryMB {
					rec.MemoryMB = app.MemoryMB
				}
			} else {
				rec := app
				byPID[rec.PID] = &rec
			}
		}
	} else {
		a.logger.Debug("gpu graphics app query failed", "error", err)
	}

	procs := make([]ProcessRecord, 0, len(byPID))
	for _, rec := range byPID {
		procs = append(procs, *rec)
	}
	sort.Slice(procs, func(i, j int) bool {
		if procs[i].MemoryMB != procs[j].MemoryMB {
			return procs[i].MemoryMB > procs[j].MemoryMB
		}
		return procs[i].PID < procs[j].PID
	})
	return procs
}

// parseAppList parses "pid, name, used_memory" CSV lines from the
// compute or graphics application queries. Malformed lines are
// skipped.
func parseAppList(out string) []ProcessRecord {
	var recs []ProcessRecord

	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		fields := strings.Split(line, ",")
		if len(fields) < 3 {
			continue
		}

		pid, err := strconv.ParseInt(strings.TrimSpace(fields[0]), 10, 32)
		if err != nil {
			continue
		}

		var memMB uint64
		if m := parseOptField(fields[2]); m != nil && *m > 0 {
			memMB = uint64(*m)
		}

		recs = append(recs, ProcessRecord{
			PID:      int32(pid),
			Name:     strings.TrimSpace(fields[1]),
			MemoryMB: memMB,
		})
	}
	return recs
}

// parseMonitorOutput parses `pmon -c 1` output. Lines look like:
//
//	# gpu  pid   type  sm  mem  enc  dec  command
//	  0    1234  C     42  12   -    -    python3
//
// Comment lines are skipped. Utilization columns holding "-" map to
// absent. The command name is the trailing whitespace-delimited token.
func parseMonitorOutput(out string) []ProcessRecord {
	var recs []ProcessRecord

	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 5 {
			continue
		}

		pid, err := strconv.ParseInt(fields[1], 10, 32)
		if err != nil {
			continue
		}

		recs = append(recs, ProcessRecord{
			PID:        int32(pid),
			Name:       fields[len(fields)-1],
			GPUUtilPct: parseMonitorUtil(fields[3]),
			MemUtilPct: parseMonitorUtil(fields[4]),
		})
	}
	return recs
}

// parseMonitorUtil maps a pmon utilization column to an optional
// percentage; "-" means the driver could not attribute utilization.
func parseMonitorUtil(field string) *float64 {
	if field == "-" {
		return nil
	}
	v, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return nil
	}
	return &v
}
