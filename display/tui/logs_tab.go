package tui

import (
	"fmt"
	"strings"
)

// renderLogsContent renders the Logs tab: a scrollable window over the
// cached journal tail, newest entries first.
func renderLogsContent(lines []string, scroll, width, height int) string {
	if len(lines) == 0 {
		return "No journal entries yet\n\nEnsure journalctl is available on this host."
	}

	visible := height - 2
	if visible < 3 {
		visible = 3
	}

	start := clampIndex(scroll, len(lines))
	end := start + visible
	if end > len(lines) {
		end = len(lines)
	}

	maxLine := width - 4
	if maxLine < 20 {
		maxLine = 20
	}

	out := make([]string, 0, end-start+1)
	out = append(out, styleTitle.Render(fmt.Sprintf("Journal (%d entries, newest first)", len(lines))))
	for _, line := range lines[start:end] {
		out = append(out, truncateText(line, maxLine))
	}

	return strings.Join(out, "\n")
}
