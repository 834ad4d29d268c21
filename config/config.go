// Package config provides configuration parsing for hostpulse.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML values can be written as
// human-readable strings ("1s", "500ms", "2m").
type Duration struct {
	time.Duration
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	d.Duration = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

// Config represents the hostpulse configuration.
type Config struct {
	// UpdateInterval is the metrics sampling tick interval.
	UpdateInterval Duration `yaml:"update_interval"`

	// HistorySize is the per-metric ring history capacity.
	HistorySize int `yaml:"history_size"`

	// ProcessRefreshInterval is the process table refresh cadence.
	ProcessRefreshInterval Duration `yaml:"process_refresh_interval"`

	// JournalRefreshInterval is the journal cache refresh cadence.
	JournalRefreshInterval Duration `yaml:"journal_refresh_interval"`

	// ProcessSort is the initial process sort key: "cpu" or "memory".
	ProcessSort string `yaml:"process_sort"`

	// Theme selects the color theme preset. Unknown names fall back
	// to the default theme.
	Theme string `yaml:"theme"`

	// Sensors holds sensor-tree overrides.
	Sensors SensorsConfig `yaml:"sensors"`

	// LogFile is the path for debug log output. Empty disables logging.
	LogFile string `yaml:"log_file"`
}

// SensorsConfig holds temperature sensor tree roots. Overriding them
// is mainly useful in containers where the host trees are bind-mounted
// somewhere else.
type SensorsConfig struct {
	// HwmonRoot is the hwmon sensor tree root.
	HwmonRoot string `yaml:"hwmon_root"`
	// ThermalRoot is the thermal-zone tree root.
	ThermalRoot string `yaml:"thermal_root"`
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		UpdateInterval:         Duration{1 * time.Second},
		HistorySize:            60,
		ProcessRefreshInterval: Duration{2 * time.Second},
		JournalRefreshInterval: Duration{5 * time.Second},
		ProcessSort:            "cpu",
		Theme:                  "monitoring",
	}
}

// DefaultPath returns the standard config file location.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "hostpulse", "config.yaml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "hostpulse", "config.yaml")
}

// LoadConfig loads configuration from a YAML file, merging with
// defaults. A missing file is not an error; the defaults are returned.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the configuration for logical consistency.
func (c *Config) Validate() error {
	if c.UpdateInterval.Duration <= 0 {
		return fmt.Errorf("update_interval must be positive, got %s", c.UpdateInterval)
	}
	if c.HistorySize < 1 {
		return fmt.Errorf("history_size must be at least 1, got %d", c.HistorySize)
	}
	if c.ProcessRefreshInterval.Duration <= 0 {
		return fmt.Errorf("process_refresh_interval must be positive, got %s", c.ProcessRefreshInterval)
	}
	if c.JournalRefreshInterval.Duration <= 0 {
		return fmt.Errorf("journal_refresh_interval must be positive, got %s", c.JournalRefreshInterval)
	}
	if c.ProcessSort != "cpu" && c.ProcessSort != "memory" {
		return fmt.Errorf("process_sort must be \"cpu\" or \"memory\", got %q", c.ProcessSort)
	}
	return nil
}
