package metrics

import (
	"strings"
	"time"
)

// virtualPrefixes are interface name prefixes excluded from host-facing
// traffic accounting (bridge/container/peer devices).
var virtualPrefixes = []string{"virbr", "docker", "veth"}

// countedInterface reports whether an interface's counters contribute
// to host traffic totals. Loopback and virtual interfaces do not.
func countedInterface(name string) bool {
	if name == "lo" {
		return false
	}
	for _, p := range virtualPrefixes {
		if strings.HasPrefix(name, p) {
			return false
		}
	}
	return true
}

// networkTracker converts cumulative interface byte counters into
// instantaneous Kbps rates and session totals. Counters can reset on
// interface replug, so all deltas use saturating subtraction.
type networkTracker struct {
	prevRx, prevTx       uint64
	initialRx, initialTx uint64
	lastSample           time.Time
	seeded               bool

	now func() time.Time // injectable clock for tests
}

func newNetworkTracker(now func() time.Time) *networkTracker {
	if now == nil {
		now = time.Now
	}
	return &networkTracker{now: now}
}

// observe ingests the current summed counters and returns rx/tx rates
// in Kbps. The first observation seeds the session baseline and yields
// zero rates, as does a zero previous counter or non-positive elapsed
// time.
func (t *networkTracker) observe(totalRx, totalTx uint64) (rxKbps, txKbps float32) {
	nowT := t.now()
	elapsed := float32(nowT.Sub(t.lastSample).Seconds())

	if !t.seeded {
		t.initialRx, t.initialTx = totalRx, totalTx
		t.prevRx, t.prevTx = totalRx, totalTx
		t.lastSample = nowT
		t.seeded = true
		return 0, 0
	}

	if elapsed > 0 {
		if t.prevRx > 0 {
			rxKbps = float32(saturatingSub(totalRx, t.prevRx)) / elapsed * 8.0 / 1000.0
		}
		if t.prevTx > 0 {
			txKbps = float32(saturatingSub(totalTx, t.prevTx)) / elapsed * 8.0 / 1000.0
		}
	}

	t.prevRx, t.prevTx = totalRx, totalTx
	t.lastSample = nowT
	return rxKbps, txKbps
}

// sessionTotals returns bytes moved since the baseline observation.
// (0, 0) before anything has been observed.
func (t *networkTracker) sessionTotals() (rx, tx uint64) {
	return saturatingSub(t.prevRx, t.initialRx), saturatingSub(t.prevTx, t.initialTx)
}

// saturatingSub never goes negative even when a counter wraps or
// resets.
func saturatingSub(a, b uint64) uint64 {
	if a < b {
		return 0
	}
	return a - b
}
