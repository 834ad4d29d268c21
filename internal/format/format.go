// Package format provides shared string and value formatting
// utilities for the dashboard and simple-mode output.
package format

import (
	"fmt"
	"time"
)

// byteUnits are binary-scaled size suffixes.
var byteUnits = []string{"B", "KB", "MB", "GB", "TB"}

// Bytes renders a byte count with a binary-scaled unit suffix.
// Returns strings like "512 B", "1.5 MB", "12.0 GB".
func Bytes(n uint64) string {
	size := float64(n)
	unit := 0
	for size >= 1024.0 && unit < len(byteUnits)-1 {
		size /= 1024.0
		unit++
	}
	if unit == 0 {
		return fmt.Sprintf("%d %s", n, byteUnits[0])
	}
	return fmt.Sprintf("%.1f %s", size, byteUnits[unit])
}

// Kbps renders a network rate, switching to Mbps once it reads better.
func Kbps(rate float32) string {
	if rate >= 1000 {
		return fmt.Sprintf("%.1f Mbps", rate/1000)
	}
	return fmt.Sprintf("%.1f Kbps", rate)
}

// Percent renders a percentage with one decimal place.
func Percent(pct float32) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// Celsius renders a temperature.
func Celsius(c float32) string {
	return fmt.Sprintf("%.1f°C", c)
}

// Uptime renders a duration as a concise human-readable string.
// Returns strings like "12s", "5m 30s", "2h 15m", "3d 4h".
func Uptime(d time.Duration) string {
	if d < 0 {
		d = -d
	}
	if d < time.Second {
		return "0s"
	}

	days := int(d.Hours() / 24)
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}

// TruncateWithEllipsis truncates a string to maxWidth runes, appending
// "..." if it exceeds the limit. If maxWidth is less than 4, the
// string is hard-truncated without an ellipsis suffix.
func TruncateWithEllipsis(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}

	runes := []rune(s)
	if len(runes) <= maxWidth {
		return s
	}

	if maxWidth < 4 {
		return string(runes[:maxWidth])
	}

	return string(runes[:maxWidth-3]) + "..."
}
