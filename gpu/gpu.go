// Package gpu acquires NVIDIA GPU telemetry by invoking nvidia-smi and
// parsing its delimited text output. A missing or partially supported
// GPU is a normal, representable state: every snapshot field is
// independently optional and no query failure ever surfaces as an
// error to the sampling tick.
package gpu

import "strings"

// Snapshot holds one GPU telemetry sample. Each field is independently
// optional; a nil pointer means the driver reported the value as
// unsupported or the query failed.
type Snapshot struct {
	Name       string
	UsagePct   *float64
	TempC      *float64
	FanPct     *float64
	PowerW     *float64
	MemUsedMB  *float64
	MemTotalMB *float64
}

// Present reports whether the snapshot carries any data at all.
func (s Snapshot) Present() bool {
	return s.Name != "" || s.UsagePct != nil || s.TempC != nil || s.FanPct != nil ||
		s.PowerW != nil || s.MemUsedMB != nil || s.MemTotalMB != nil
}

// VRAMPct derives VRAM usage as a percentage. It is undefined (false)
// when either memory field is absent or the total is zero.
func (s Snapshot) VRAMPct() (float64, bool) {
	if s.MemUsedMB == nil || s.MemTotalMB == nil || *s.MemTotalMB <= 0 {
		return 0, false
	}
	return *s.MemUsedMB / *s.MemTotalMB * 100.0, true
}

// ProcessRecord is one process currently using the GPU, merged from
// the compute, monitor, and graphics query outputs and keyed by pid.
type ProcessRecord struct {
	PID        int32
	Name       string
	MemoryMB   uint64
	GPUUtilPct *float64
	MemUtilPct *float64
}

// notSupportedSentinels are the literal field values nvidia-smi emits
// for unsupported queries.
var notSupportedSentinels = map[string]bool{
	"[n/a]":           true,
	"[not supported]": true,
	"n/a":             true,
}

// parseOptField maps one CSV field to an optional float. Sentinel
// values and malformed numbers both map to absent.
func parseOptField(field string) *float64 {
	field = strings.TrimSpace(field)
	if field == "" || notSupportedSentinels[strings.ToLower(field)] {
		return nil
	}
	v, err := parseFloat(field)
	if err != nil {
		return nil
	}
	return &v
}
