package sensors

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

const (
	// defaultHwmonRoot is the standard hwmon sensor tree.
	defaultHwmonRoot = "/sys/class/hwmon"

	// maxPackageSensors bounds the tempN probe range when looking for
	// a package temperature.
	maxPackageSensors = 10

	// maxCoreSensors bounds the tempN probe range when collecting
	// per-core sensors. Core sensors sit at non-consecutive indices on
	// many boards, so this is deliberately wide.
	maxCoreSensors = 64
)

// HwmonSource reads CPU temperatures from an hwmon-style sensor tree:
// <root>/hwmon*/name identifies the chip, <root>/hwmon*/tempN_input
// holds milli-Celsius values and tempN_label an optional description.
type HwmonSource struct {
	root string
}

// NewHwmonSource creates an HwmonSource rooted at the given directory.
func NewHwmonSource(root string) *HwmonSource {
	return &HwmonSource{root: root}
}

// Discover scans CPU-related hwmon nodes for package temperature
// candidates. Sensors labelled "package"/"pkg" are reported with
// PriorityPackageLabel; unlabelled temp1 readings with
// PriorityTemp1Fallback. Implausible values are dropped.
func (s *HwmonSource) Discover() []Reading {
	var readings []Reading

	for _, node := range s.nodes(func(name string) bool {
		return strings.Contains(name, "coretemp") ||
			strings.Contains(name, "cpu") ||
			strings.Contains(name, "k10temp")
	}) {
		for i := 1; i <= maxPackageSensors; i++ {
			c, ok := readMilliCelsius(filepath.Join(node, fmt.Sprintf("temp%d_input", i)))
			if !ok || !plausible(c) {
				continue
			}

			label, haveLabel := readLabel(filepath.Join(node, fmt.Sprintf("temp%d_label", i)))
			switch {
			case haveLabel && (strings.Contains(label, "package") || strings.Contains(label, "pkg")):
				readings = append(readings, Reading{Celsius: c, Priority: PriorityPackageLabel})
			case i == 1:
				// temp1 is commonly the package sensor even without a
				// qualifying label.
				readings = append(readings, Reading{Celsius: c, Priority: PriorityTemp1Fallback})
			}
		}
	}

	return readings
}

// CoreTemps collects per-physical-core temperatures from coretemp and
// k10temp nodes. Sensor indices are sparse; the core number embedded
// in the label ("Core 0", "Core 8", ...) determines ordering and the
// result is a dense vector sorted by that number.
func (s *HwmonSource) CoreTemps() []float32 {
	type coreReading struct {
		core int
		temp float32
	}

	for _, node := range s.nodes(func(name string) bool {
		return strings.Contains(name, "coretemp") || strings.Contains(name, "k10temp")
	}) {
		var found []coreReading

		for i := 1; i <= maxCoreSensors; i++ {
			c, ok := readMilliCelsius(filepath.Join(node, fmt.Sprintf("temp%d_input", i)))
			if !ok || !plausible(c) {
				continue
			}

			label, haveLabel := readLabel(filepath.Join(node, fmt.Sprintf("temp%d_label", i)))
			if !haveLabel || !strings.Contains(label, "core") {
				continue
			}

			// Core number is the second whitespace token of the label.
			fields := strings.Fields(label)
			if len(fields) < 2 {
				continue
			}
			core, err := strconv.Atoi(fields[1])
			if err != nil {
				continue
			}
			found = append(found, coreReading{core: core, temp: c})
		}

		if len(found) > 0 {
			sort.Slice(found, func(a, b int) bool { return found[a].core < found[b].core })
			temps := make([]float32, len(found))
			for i, r := range found {
				temps[i] = r.temp
			}
			return temps
		}
	}

	return nil
}

// nodes returns hwmon node paths whose name descriptor matches.
func (s *HwmonSource) nodes(match func(name string) bool) []string {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil
	}

	var paths []string
	for _, e := range entries {
		node := filepath.Join(s.root, e.Name())
		raw, err := os.ReadFile(filepath.Join(node, "name"))
		if err != nil {
			continue
		}
		if match(strings.ToLower(strings.TrimSpace(string(raw)))) {
			paths = append(paths, node)
		}
	}
	return paths
}

// readMilliCelsius reads a milli-Celsius sensor file into Celsius.
func readMilliCelsius(path string) (float32, bool) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	milli, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	if err != nil {
		return 0, false
	}
	return float32(milli) / 1000.0, true
}

// readLabel reads a sensor label file, lowercased and trimmed.
func readLabel(path string) (string, bool) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return strings.ToLower(strings.TrimSpace(string(raw))), true
}

// Compile-time interface compliance check.
var _ Source = (*HwmonSource)(nil)
