package tui

import "github.com/charmbracelet/lipgloss"

// ThemePreset defines a complete color scheme and layout configuration
// that can be applied at runtime to change the TUI appearance.
type ThemePreset struct {
	Name        string
	Description string
	// Colors
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Danger     lipgloss.Color
	Muted      lipgloss.Color
	Background lipgloss.Color
	// Layout
	ShowBorders bool
	CompactMode bool
}

// Predefined theme presets.
var (
	// MonitoringTheme is the default dark theme for host monitoring.
	MonitoringTheme = ThemePreset{
		Name:        "monitoring",
		Description: "Dark theme for host monitoring",
		Primary:     lipgloss.Color("#7C3AED"),
		Secondary:   lipgloss.Color("#06B6D4"),
		Success:     lipgloss.Color("#22C55E"),
		Warning:     lipgloss.Color("#EAB308"),
		Danger:      lipgloss.Color("#EF4444"),
		Muted:       lipgloss.Color("#6B7280"),
		Background:  lipgloss.Color("#1E1B2E"),
		ShowBorders: true,
		CompactMode: false,
	}

	// CompactTheme drops borders and padding and keeps the palette
	// muted. Meant for narrow terminals and SSH sessions where every
	// row and every escape sequence counts.
	CompactTheme = ThemePreset{
		Name:        "compact",
		Description: "Borderless muted theme for small terminals",
		Primary:     lipgloss.Color("#64748B"),
		Secondary:   lipgloss.Color("#94A3B8"),
		Success:     lipgloss.Color("#16A34A"),
		Warning:     lipgloss.Color("#CA8A04"),
		Danger:      lipgloss.Color("#DC2626"),
		Muted:       lipgloss.Color("#475569"),
		Background:  lipgloss.Color("#0F172A"),
		ShowBorders: false,
		CompactMode: true,
	}

	// ContrastTheme uses saturated colors on black so the warning and
	// danger states read unambiguously at a glance.
	ContrastTheme = ThemePreset{
		Name:        "contrast",
		Description: "High-contrast theme for wall displays",
		Primary:     lipgloss.Color("#005FCC"),
		Secondary:   lipgloss.Color("#00D7FF"),
		Success:     lipgloss.Color("#00C853"),
		Warning:     lipgloss.Color("#FFD600"),
		Danger:      lipgloss.Color("#FF1744"),
		Muted:       lipgloss.Color("#BDBDBD"),
		Background:  lipgloss.Color("#000000"),
		ShowBorders: true,
		CompactMode: false,
	}
)

// allPresets is the canonical list of available theme presets.
var allPresets = []ThemePreset{MonitoringTheme, CompactTheme, ContrastTheme}

// GetThemePreset returns the theme preset matching the given name.
// Unknown names return MonitoringTheme as the default.
func GetThemePreset(name string) ThemePreset {
	for _, p := range allPresets {
		if p.Name == name {
			return p
		}
	}
	return MonitoringTheme
}

// AllThemePresets returns all available theme presets.
func AllThemePresets() []ThemePreset {
	out := make([]ThemePreset, len(allPresets))
	copy(out, allPresets)
	return out
}

// ApplyTheme updates the package-level style variables to use the given
// preset's colors. This allows theme switching without restarting the
// application.
func ApplyTheme(preset ThemePreset) {
	styleActiveTab = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(preset.Primary).
		Padding(0, 2)

	styleInactiveTab = lipgloss.NewStyle().
		Foreground(preset.Muted).
		Padding(0, 2)

	if preset.ShowBorders {
		styleHeader = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(preset.Muted).
			MarginBottom(1)
	} else {
		styleHeader = lipgloss.NewStyle().
			MarginBottom(1)
	}

	styleFooter = lipgloss.NewStyle().
		Foreground(preset.Muted).
		MarginTop(1)

	if preset.CompactMode {
		styleContent = lipgloss.NewStyle().
			Padding(0, 1)
	} else {
		styleContent = lipgloss.NewStyle().
			Padding(1, 2)
	}

	styleTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(preset.Secondary)
}
