// Package journal caches the tail of the system journal for display.
// Fetches go through journalctl wrapped in an external 1-second
// timeout; a failed or empty fetch keeps the previous cache so the log
// view never flickers blank.
package journal

import (
	"context"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"sync"
)

// fetchArgs requests the most recent 100 entries, reverse
// chronological, in the plain short format, behind a 1s timeout.
var fetchArgs = []string{"1s", "journalctl", "-n", "100", "--no-pager", "-o", "short", "-r"}

// Cache holds the most recently fetched journal lines. Cache is safe
// for concurrent use.
type Cache struct {
	logger *slog.Logger

	mu    sync.Mutex
	lines []string

	// runFetch executes the wrapped journalctl invocation.
	// Overridable in tests.
	runFetch func(ctx context.Context) ([]byte, error)
}

// NewCache creates an empty Cache. If logger is nil, a no-op logger is
// used.
func NewCache(logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Cache{
		logger: logger,
		runFetch: func(ctx context.Context) ([]byte, error) {
			return exec.CommandContext(ctx, "timeout", fetchArgs...).Output()
		},
	}
}

// Refresh fetches the journal tail and replaces the cached lines
// wholesale when the fetch yields anything. On failure or empty output
// the previous cache is kept.
func (c *Cache) Refresh(ctx context.Context) {
	out, err := c.runFetch(ctx)
	if err != nil {
		c.logger.Debug("journal fetch failed", "error", err)
		return
	}

	lines := splitLines(string(out))
	if len(lines) == 0 {
		return
	}

	c.mu.Lock()
	c.lines = lines
	c.mu.Unlock()
}

// Lines returns a copy of the cached journal lines, newest first.
func (c *Cache) Lines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len returns the number of cached lines.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

// splitLines splits command output into non-trailing-empty lines.
func splitLines(out string) []string {
	out = strings.TrimRight(out, "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}
