// hostpulse is a terminal dashboard for live host metrics.
//
// It samples CPU, memory, disk, network, temperature, and GPU telemetry
// on a fixed tick and presents them either as an interactive Bubbletea
// dashboard with process and journal tabs, or as a plain-text report
// reprinted at the same cadence.
//
// Usage:
//
//	hostpulse [flags]
//
// Flags:
//
//	-simple            Plain-text output instead of the interactive dashboard
//	-config string     Path to configuration file (default: ~/.config/hostpulse/config.yaml)
//	-interval string   Metrics update interval override (e.g. "1s", "500ms")
//	-history int       Metric history length override (samples kept per series)
//	-theme string      Theme override (monitoring|compact|contrast)
//	-verbose           Enable verbose logging to stderr
//	-version           Print version and exit
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/hostpulse/config"
	"gitlab.com/tinyland/lab/hostpulse/display/simple"
	"gitlab.com/tinyland/lab/hostpulse/display/tui"
)

func main() {
	var (
		configPath   = flag.String("config", "", "Path to configuration file (default: ~/.config/hostpulse/config.yaml)")
		runSimple    = flag.Bool("simple", false, "Plain-text output instead of the interactive dashboard")
		intervalFlag = flag.String("interval", "", "Metrics update interval override (e.g. \"1s\", \"500ms\")")
		historyFlag  = flag.Int("history", 0, "Metric history length override (samples kept per series)")
		themeFlag    = flag.String("theme", "", "Theme override (monitoring|compact|contrast)")
		verbose      = flag.Bool("verbose", false, "Enable verbose logging to stderr")
		showVersion  = flag.Bool("version", false, "Print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("hostpulse %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	// ---------------------------------------------------------------
	// Load configuration and apply CLI overrides
	// ---------------------------------------------------------------

	path := *configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if *intervalFlag != "" {
		d, err := time.ParseDuration(*intervalFlag)
		if err != nil || d <= 0 {
			fmt.Fprintf(os.Stderr, "invalid -interval %q\n", *intervalFlag)
			os.Exit(1)
		}
		cfg.UpdateInterval.Duration = d
	}
	if *historyFlag > 0 {
		cfg.HistorySize = *historyFlag
	}

	themeName := cfg.Theme
	if *themeFlag != "" {
		themeName = *themeFlag
	}
	tui.ApplyTheme(tui.GetThemePreset(themeName))

	// ---------------------------------------------------------------
	// Logging
	// ---------------------------------------------------------------

	logger, logClose := newLogger(*verbose, cfg.LogFile)
	defer logClose()

	// ---------------------------------------------------------------
	// Context with signal handling
	// ---------------------------------------------------------------

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// ---------------------------------------------------------------
	// Simple mode
	// ---------------------------------------------------------------

	if *runSimple || !tui.StdoutIsTerminal() {
		if !*runSimple {
			logger.Info("stdout is not a terminal, using plain-text output")
		}
		runner := simple.NewRunner(buildEngine(cfg, logger), os.Stdout, cfg.UpdateInterval.Duration)
		if err := runner.Run(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "hostpulse: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// ---------------------------------------------------------------
	// Dashboard mode
	// ---------------------------------------------------------------

	defer func() {
		if r := recover(); r != nil {
			// Attempt to restore terminal from alt-screen before printing error.
			fmt.Print("\x1b[?1049l\x1b[?25h")
			fmt.Fprintf(os.Stderr, "hostpulse: dashboard panic: %v\n", r)
			os.Exit(1)
		}
	}()

	model := tui.NewModel(buildTUIOptions(cfg, logger))
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	// Quit the program cleanly when a signal cancels the context.
	go func() {
		<-ctx.Done()
		p.Send(tea.Quit())
	}()

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "hostpulse: dashboard error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger builds the process logger. Verbose mode logs debug output
// to stderr; otherwise the configured log file is used, and with
// neither, logging is discarded. The returned func closes the log file
// if one was opened.
func newLogger(verbose bool, logFile string) (*slog.Logger, func()) {
	if verbose {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})), func() {}
	}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			})), func() { f.Close() }
		}
		fmt.Fprintf(os.Stderr, "hostpulse: cannot open log file %s: %v\n", logFile, err)
	}

	return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}
}
