package metrics

import "testing"

// TestHistoryPushAndLatest verifies basic append and latest-value behavior.
func TestHistoryPushAndLatest(t *testing.T) {
	h := NewHistory(10)

	if got := h.Latest(MetricCPU); got != 0 {
		t.Errorf("Latest on empty series = %v, want 0", got)
	}

	h.Push(MetricCPU, 12.5)
	h.Push(MetricCPU, 99.0)

	if got := h.Latest(MetricCPU); got != 99.0 {
		t.Errorf("Latest = %v, want 99.0", got)
	}
	if got := h.Len(MetricCPU); got != 2 {
		t.Errorf("Len = %d, want 2", got)
	}
}

// TestHistoryFIFOEviction verifies that pushing past capacity keeps
// exactly the most recent maxHistory samples in order.
func TestHistoryFIFOEviction(t *testing.T) {
	h := NewHistory(3)

	for _, v := range []float32{10, 20, 30, 40} {
		h.Push(MetricCPU, v)
	}

	got := h.Series(MetricCPU)
	want := []float32{20, 30, 40}
	if len(got) != len(want) {
		t.Fatalf("Series length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Series[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if got := h.Latest(MetricCPU); got != 40 {
		t.Errorf("Latest = %v, want 40", got)
	}
}

// TestHistoryBoundedUnderLongRun verifies the capacity invariant holds
// over many pushes and that series stay independent per metric.
func TestHistoryBoundedUnderLongRun(t *testing.T) {
	h := NewHistory(60)

	for i := 0; i < 10_000; i++ {
		h.Push(MetricNetRx, float32(i))
	}
	h.Push(MetricNetTx, 7)

	if got := h.Len(MetricNetRx); got != 60 {
		t.Errorf("Len(net-rx) = %d, want 60", got)
	}
	s := h.Series(MetricNetRx)
	if s[0] != 9940 || s[len(s)-1] != 9999 {
		t.Errorf("retained window = [%v..%v], want [9940..9999]", s[0], s[len(s)-1])
	}
	if got := h.Len(MetricNetTx); got != 1 {
		t.Errorf("Len(net-tx) = %d, want 1", got)
	}
}

// TestHistorySeriesIsCopy verifies callers cannot mutate internal state.
func TestHistorySeriesIsCopy(t *testing.T) {
	h := NewHistory(5)
	h.Push(MetricDisk, 50)

	s := h.Series(MetricDisk)
	s[0] = 999

	if got := h.Latest(MetricDisk); got != 50 {
		t.Errorf("Latest after external mutation = %v, want 50", got)
	}
}

// TestHistoryZeroCapacity verifies the capacity floor.
func TestHistoryZeroCapacity(t *testing.T) {
	h := NewHistory(0)
	h.Push(MetricCPU, 1)
	h.Push(MetricCPU, 2)

	if got := h.Len(MetricCPU); got != 1 {
		t.Errorf("Len = %d, want 1", got)
	}
	if got := h.Latest(MetricCPU); got != 2 {
		t.Errorf("Latest = %v, want 2", got)
	}
}
