package plotpage

import "fmt"

// Theme represents a color theme for visualizations.
type Theme string

const (
	// ThemeLight is the light color theme.
	ThemeLight Theme = "light"
	// ThemeDark is the dark color theme.
	ThemeDark Theme = "dark"
)

// ParseTheme validates a theme name. Empty selects the light theme.
func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case "", ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownTheme, s)
	}
}

// ThemeConfig holds all theme-specific styling values.
type ThemeConfig struct {
	Background    string
	Surface       string
	Border        string
	TextPrimary   string
	TextMuted     string
	Accent        string
	Success       string
	Error         string
	ChartGrid     string
	ChartAxis     string
	ChartText     string
	ChartTextMute string

	// Highlight marks the recommended algorithm; Muted marks the rest.
	Highlight string
	Muted     string

	// Series is the per-algorithm palette.
	Series []string
}

// GetThemeConfig returns the configuration for a given theme.
func GetThemeConfig(theme Theme) ThemeConfig {
	if theme == ThemeDark {
		return darkTheme
	}

	return lightTheme
}

var lightTheme = ThemeConfig{
	Background:    "#fafaf9", // stone-50.
	Surface:       "#ffffff",
	Border:        "#e7e5e4", // stone-200.
	TextPrimary:   "#1c1917", // stone-900.
	TextMuted:     "#78716c", // stone-500.
	Accent:        "#007bff",
	Success:       "#16a34a", // green-600.
	Error:         "#dc2626", // red-600.
	ChartGrid:     "#e7e5e4",
	ChartAxis:     "#a8a29e", // stone-400.
	ChartText:     "#44403c", // stone-700.
	ChartTextMute: "#78716c",
	Highlight:     "#007bff",
	Muted:         "#aaaaaa",
	Series:        []string{"#a16207", "#0369a1", "#4d7c0f", "#7c3aed", "#be185d", "#0891b2"},
}

var darkTheme = ThemeConfig{
	Background:    "#0c0a09", // stone-950.
	Surface:       "#1c1917", // stone-900.
	Border:        "#44403c", // stone-700.
	TextPrimary:   "#fafaf9", // stone-50.
	TextMuted:     "#a8a29e", // stone-400.
	Accent:        "#3b82f6",
	Success:       "#22c55e", // green-500.
	Error:         "#ef4444", // red-500.
	ChartGrid:     "#44403c",
	ChartAxis:     "#57534e", // stone-600.
	ChartText:     "#d6d3d1", // stone-300.
	ChartTextMute: "#a8a29e",
	Highlight:     "#3b82f6",
	Muted:         "#57534e",
	Series:        []string{"#d97706", "#0284c7", "#65a30d", "#8b5cf6", "#db2777", "#06b6d4"},
}
