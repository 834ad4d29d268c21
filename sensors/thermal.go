package sensors

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// defaultThermalRoot is the standard thermal-zone tree.
	defaultThermalRoot = "/sys/class/thermal"

	// packageZoneProbes is how many zones the package-temperature
	// fallback inspects.
	packageZoneProbes = 3

	// coreZoneProbes is how many zones the per-core fallback inspects.
	coreZoneProbes = 16
)

// ThermalZoneSource reads CPU temperatures from a thermal-zone tree:
// <root>/thermal_zoneN/temp holds milli-Celsius values and
// <root>/thermal_zoneN/type describes the zone.
type ThermalZoneSource struct {
	root string
}

// NewThermalZoneSource creates a ThermalZoneSource rooted at the given
// directory.
func NewThermalZoneSource(root string) *ThermalZoneSource {
	return &ThermalZoneSource{root: root}
}

// Discover scans the first few thermal zones for plausible package
// temperature candidates, in zone order.
func (s *ThermalZoneSource) Discover() []Reading {
	var readings []Reading
	for i := 0; i < packageZoneProbes; i++ {
		c, ok := readMilliCelsius(filepath.Join(s.zone(i), "temp"))
		if ok && plausible(c) {
			readings = append(readings, Reading{Celsius: c, Priority: PriorityThermalZone})
		}
	}
	return readings
}

// CPUZoneTemps collects temperatures from zones whose type descriptor
// looks CPU-related. Zones without a type descriptor are accepted only
// in a narrower plausible window.
func (s *ThermalZoneSource) CPUZoneTemps() []float32 {
	var temps []float32

	for i := 0; i < coreZoneProbes; i++ {
		zone := s.zone(i)
		c, ok := readMilliCelsius(filepath.Join(zone, "temp"))
		if !ok || !plausible(c) {
			continue
		}

		raw, err := os.ReadFile(filepath.Join(zone, "type"))
		if err != nil {
			// No type descriptor: accept only clearly reasonable values.
			if c > 20 && c < 100 {
				temps = append(temps, c)
			}
			continue
		}

		zoneType := strings.ToLower(strings.TrimSpace(string(raw)))
		if strings.Contains(zoneType, "cpu") ||
			strings.Contains(zoneType, "core") ||
			strings.Contains(zoneType, "x86_pkg_temp") ||
			strings.Contains(zoneType, "coretemp") {
			temps = append(temps, c)
		}
	}

	return temps
}

func (s *ThermalZoneSource) zone(i int) string {
	return filepath.Join(s.root, fmt.Sprintf("thermal_zone%d", i))
}

// Compile-time interface compliance check.
var _ Source = (*ThermalZoneSource)(nil)
