package format

import (
	"testing"
	"time"
)

func TestBytes(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
		{3 * 1024 * 1024 * 1024, "3.0 GB"},
	}
	for _, tt := range tests {
		if got := Bytes(tt.in); got != tt.want {
			t.Errorf("Bytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestKbps(t *testing.T) {
	if got := Kbps(512.34); got != "512.3 Kbps" {
		t.Errorf("Kbps(512.34) = %q", got)
	}
	if got := Kbps(2500); got != "2.5 Mbps" {
		t.Errorf("Kbps(2500) = %q", got)
	}
}

func TestUptime(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0s"},
		{45 * time.Second, "45s"},
		{5*time.Minute + 30*time.Second, "5m 30s"},
		{2*time.Hour + 15*time.Minute, "2h 15m"},
		{76 * time.Hour, "3d 4h"},
	}
	for _, tt := range tests {
		if got := Uptime(tt.in); got != tt.want {
			t.Errorf("Uptime(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTruncateWithEllipsis(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly-ten", 11, "exactly-ten"},
		{"a-very-long-process-name", 10, "a-very-..."},
		{"abc", 2, "ab"},
		{"anything", 0, ""},
	}
	for _, tt := range tests {
		if got := TruncateWithEllipsis(tt.in, tt.width); got != tt.want {
			t.Errorf("TruncateWithEllipsis(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
