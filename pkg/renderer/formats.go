// Package renderer writes analysis reports as text, JSON, YAML or HTML plots.
package renderer

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatPlot = "plot"

	// FormatYMLAlias is accepted for FormatYAML.
	FormatYMLAlias = "yml"
	// FormatHTMLAlias is accepted for FormatPlot.
	FormatHTMLAlias = "html"
)

// ErrUnsupportedFormat indicates the requested output format is not supported.
var ErrUnsupportedFormat = errors.New("unsupported format")

// NormalizeFormat canonicalizes a user-provided output format string.
// Empty selects FormatText.
func NormalizeFormat(format string) string {
	normalized := strings.ToLower(strings.TrimSpace(format))

	switch normalized {
	case "":
		return FormatText
	case FormatYMLAlias:
		return FormatYAML
	case FormatHTMLAlias:
		return FormatPlot
	default:
		return normalized
	}
}

// ReportFormats returns the formats a full report can be rendered in.
func ReportFormats() []string {
	return []string{FormatText, FormatJSON, FormatYAML, FormatPlot}
}

// ResultFormats returns the formats a single result can be rendered in.
func ResultFormats() []string {
	return []string{FormatText, FormatJSON, FormatYAML}
}

// ValidateFormat checks whether a format is in the provided support list.
func ValidateFormat(format string, supported []string) (string, error) {
	normalized := NormalizeFormat(format)
	if slices.Contains(supported, normalized) {
		return normalized, nil
	}

	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
}
