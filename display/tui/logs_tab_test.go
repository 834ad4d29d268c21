package tui

import (
	"fmt"
	"strings"
	"testing"
)

func sampleLines(n int) []string {
	lines := make([]string, 0, n)
	for i := 0; i < n; i++ {
		lines = append(lines, fmt.Sprintf("Aug 30 12:00:%02d host systemd[1]: entry %d", i, i))
	}
	return lines
}

func TestRenderLogsContent_Empty(t *testing.T) {
	got := renderLogsContent(nil, 0, 100, 40)
	if !strings.Contains(got, "No journal entries yet") {
		t.Errorf("expected empty placeholder, got %q", got)
	}
}

func TestRenderLogsContent_TitleAndWindow(t *testing.T) {
	got := renderLogsContent(sampleLines(4), 0, 100, 40)

	if !strings.Contains(got, "Journal (4 entries, newest first)") {
		t.Errorf("expected title, got:\n%s", got)
	}
	for i := 0; i < 4; i++ {
		if !strings.Contains(got, fmt.Sprintf("entry %d", i)) {
			t.Errorf("expected entry %d in output", i)
		}
	}
}

func TestRenderLogsContent_Scrolled(t *testing.T) {
	// Height 5 leaves a 3-line window; scrolled to line 2 the first
	// two entries are out of view.
	got := renderLogsContent(sampleLines(10), 2, 100, 5)

	if strings.Contains(got, "entry 0") || strings.Contains(got, "entry 1") {
		t.Errorf("expected first entries scrolled out, got:\n%s", got)
	}
	if !strings.Contains(got, "entry 2") {
		t.Errorf("expected entry 2 visible, got:\n%s", got)
	}
	if strings.Contains(got, "entry 5") {
		t.Errorf("expected entry 5 below the window, got:\n%s", got)
	}
}

func TestRenderLogsContent_LongLinesTruncated(t *testing.T) {
	long := strings.Repeat("x", 300)
	got := renderLogsContent([]string{long}, 0, 80, 40)

	for _, line := range strings.Split(got, "\n") {
		if len([]rune(line)) > 80 {
			t.Errorf("expected lines bounded by width, got %d runes", len([]rune(line)))
		}
	}
}
