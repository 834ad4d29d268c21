// Package sensors discovers CPU temperatures from host-exposed sensor
// file trees. It prefers hwmon nodes (coretemp, k10temp and friends)
// and falls back to generic thermal zones when no hwmon reading is
// available. Missing files and implausible readings are normal "no
// data" conditions, never errors.
package sensors

import (
	"io"
	"log/slog"
)

// Plausibility bounds for CPU temperature readings, exclusive on both
// ends. Values outside this window are discarded, not clamped.
const (
	plausibleMinC = 10.0
	plausibleMaxC = 150.0
)

// Priority ranks how trustworthy a temperature reading's origin is.
type Priority int

const (
	// PriorityPackageLabel is an hwmon sensor explicitly labelled as a
	// package temperature ("Package id 0", "Tctl pkg", ...).
	PriorityPackageLabel Priority = iota
	// PriorityTemp1Fallback is an hwmon temp1 reading without a
	// package label. temp1 is usually the package sensor anyway.
	PriorityTemp1Fallback
	// PriorityThermalZone is a generic thermal-zone reading.
	PriorityThermalZone
)

// Reading is a single accepted temperature sample.
type Reading struct {
	Celsius  float32
	Priority Priority
}

// Source yields temperature readings from one host sensor tree.
type Source interface {
	Discover() []Reading
}

// Discovery locates the best package temperature and a per-core
// temperature vector by trying sources in priority order.
type Discovery struct {
	hwmon   *HwmonSource
	thermal *ThermalZoneSource
	logger  *slog.Logger
}

// NewDiscovery creates a Discovery over the default sensor tree roots.
// If logger is nil, a no-op logger is used.
func NewDiscovery(logger *slog.Logger) *Discovery {
	return NewDiscoveryRoots(defaultHwmonRoot, defaultThermalRoot, logger)
}

// NewDiscoveryRoots creates a Discovery over explicit tree roots; an
// empty root selects the standard location. Used by tests and by
// container configs where a host tree is bind-mounted elsewhere.
func NewDiscoveryRoots(hwmonRoot, thermalRoot string, logger *slog.Logger) *Discovery {
	if hwmonRoot == "" {
		hwmonRoot = defaultHwmonRoot
	}
	if thermalRoot == "" {
		thermalRoot = defaultThermalRoot
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Discovery{
		hwmon:   NewHwmonSource(hwmonRoot),
		thermal: NewThermalZoneSource(thermalRoot),
		logger:  logger,
	}
}

// PackageTemp returns the best available CPU package temperature.
// hwmon readings win over thermal zones; within hwmon, labelled
// package sensors win over unlabelled temp1 readings and the hottest
// candidate is taken. The second return value is false when no
// plausible reading exists anywhere.
func (d *Discovery) PackageTemp() (float32, bool) {
	if t, ok := selectPackage(d.hwmon.Discover()); ok {
		return t, true
	}

	// Thermal-zone fallback: first plausible reading wins.
	for _, r := range d.thermal.Discover() {
		return r.Celsius, true
	}
	return 0, false
}

// selectPackage picks the hottest package-labelled reading, falling
// back to the hottest temp1 reading.
func selectPackage(readings []Reading) (float32, bool) {
	var pkg, fallback float32
	var havePkg, haveFallback bool

	for _, r := range readings {
		switch r.Priority {
		case PriorityPackageLabel:
			if !havePkg || r.Celsius > pkg {
				pkg = r.Celsius
				havePkg = true
			}
		case PriorityTemp1Fallback:
			if !haveFallback || r.Celsius > fallback {
				fallback = r.Celsius
				haveFallback = true
			}
		}
	}

	if havePkg {
		return pkg, true
	}
	if haveFallback {
		return fallback, true
	}
	return 0, false
}

// CoreTemps returns one temperature per logical core, best effort.
// Physical hwmon core sensors are mapped onto logicalCount slots; when
// no hwmon core sensors exist, CPU-related thermal zones are used and
// padded with their mean. The result is empty when nothing plausible
// was found.
func (d *Discovery) CoreTemps(logicalCount int) []float32 {
	if physical := d.hwmon.CoreTemps(); len(physical) > 0 {
		return MapToLogical(physical, logicalCount)
	}

	zones := d.thermal.CPUZoneTemps()
	if len(zones) == 0 {
		return nil
	}
	if len(zones) >= logicalCount {
		return zones
	}

	// Pad remaining logical slots with the mean of what we found.
	var sum float32
	for _, t := range zones {
		sum += t
	}
	mean := sum / float32(len(zones))

	out := make([]float32, 0, logicalCount)
	out = append(out, zones...)
	for len(out) < logicalCount {
		out = append(out, mean)
	}
	return out
}

// MapToLogical projects a dense physical-core temperature vector onto
// logicalCount logical cores. When logical cores outnumber physical
// sensors the mapping wraps cyclically (logical i reads physical
// i % len(physical)); this is an approximation for hyperthreaded and
// hybrid topologies and can misattribute temperatures on asymmetric
// core layouts. Otherwise the mapping is direct by index, padding any
// excess slots with the last physical reading.
func MapToLogical(physical []float32, logicalCount int) []float32 {
	if len(physical) == 0 || logicalCount <= 0 {
		return nil
	}

	out := make([]float32, 0, logicalCount)
	if logicalCount > len(physical) {
		for i := 0; i < logicalCount; i++ {
			out = append(out, physical[i%len(physical)])
		}
		return out
	}

	for i := 0; i < logicalCount; i++ {
		if i < len(physical) {
			out = append(out, physical[i])
		} else {
			out = append(out, physical[len(physical)-1])
		}
	}
	return out
}

// plausible reports whether a Celsius value is inside the accepted
// CPU temperature window.
func plausible(c float32) bool {
	return c > plausibleMinC && c < plausibleMaxC
}
