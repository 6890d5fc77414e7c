// Package terminal provides terminal rendering helpers for CLI output.
package terminal

import (
	"os"
	"strconv"
	"strings"
)

// Width bounds.
const (
	DefaultWidth = 80
	MinWidth     = 60
	MaxWidth     = 120
)

// Config holds terminal rendering configuration.
type Config struct {
	Width   int
	NoColor bool
}

// NewConfig creates a Config from the environment.
func NewConfig() Config {
	return Config{
		Width:   DetectWidth(),
		NoColor: os.Getenv("NO_COLOR") != "",
	}
}

// DetectWidth returns the terminal width from the COLUMNS environment
// variable clamped to [MinWidth, MaxWidth], or DefaultWidth when unset or
// invalid.
func DetectWidth() int {
	return parseWidth(os.Getenv("COLUMNS"))
}

func parseWidth(columns string) int {
	if columns == "" {
		return DefaultWidth
	}

	width, err := strconv.Atoi(strings.TrimSpace(columns))
	if err != nil || width <= 0 {
		return DefaultWidth
	}

	return min(max(width, MinWidth), MaxWidth)
}

// PadRight pads s with spaces on the right to reach width.
func PadRight(s string, width int) string {
	if len(s) >= width {
		return s
	}

	return s + strings.Repeat(" ", width-len(s))
}
