package tui

import (
	"os"
	"testing"
)

func TestDetectTerminalSize_Defaults(t *testing.T) {
	os.Unsetenv("COLUMNS")
	os.Unsetenv("LINES")

	w, h := DetectTerminalSize()

	// Either TTY-detected or the 80x24 fallback; both are positive.
	if w <= 0 {
		t.Errorf("width should be positive, got %d", w)
	}
	if h <= 0 {
		t.Errorf("height should be positive, got %d", h)
	}
}

func TestDetectTerminalSize_InvalidEnv(t *testing.T) {
	t.Setenv("COLUMNS", "invalid")
	t.Setenv("LINES", "-5")

	w, h := DetectTerminalSize()

	if w <= 0 {
		t.Errorf("width should be positive even with invalid env, got %d", w)
	}
	if h <= 0 {
		t.Errorf("height should be positive even with invalid env, got %d", h)
	}
}
