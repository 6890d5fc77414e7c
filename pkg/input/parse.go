// Package input reads benchmark sequences from JSON, CSV or plain text and
// generates synthetic sequences of a requested shape.
package input

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/xeipuuv/gojsonschema"
)

// Format is an input encoding.
type Format string

// Supported input formats.
const (
	FormatAuto Format = "auto"
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatText Format = "text"
)

// Sentinel parse errors.
var (
	ErrUnsupportedFormat = errors.New("unsupported input format")
	ErrInvalidValue      = errors.New("invalid integer value")
	ErrSchema            = errors.New("input does not match schema")
	ErrEmptyInput        = errors.New("input contains no values")
)

//go:embed schema.json
var schemaJSON []byte

var schemaLoader = gojsonschema.NewBytesLoader(schemaJSON)

// Options tunes parsing.
type Options struct {
	// Format selects the decoder. Empty means auto-detect.
	Format Format

	// Lenient skips tokens that are not integers instead of failing.
	Lenient bool

	// AllowEmpty accepts input without any values.
	AllowEmpty bool
}

// Formats returns the accepted format names.
func Formats() []Format {
	return []Format{FormatAuto, FormatJSON, FormatCSV, FormatText}
}

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return FormatAuto, nil
	}

	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, s)
}

// Read decodes all of r.
func Read(r io.Reader, opts Options) ([]int, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	return Parse(raw, opts)
}

// Parse decodes raw according to opts.
func Parse(raw []byte, opts Options) ([]int, error) {
	format := opts.Format
	if format == "" || format == FormatAuto {
		format = Detect(raw)
	}

	var (
		values []int
		err    error
	)

	switch format {
	case FormatJSON:
		values, err = parseJSON(raw)
	case FormatCSV, FormatText:
		values, err = parseDelimited(raw, opts.Lenient)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	if err != nil {
		return nil, err
	}

	if len(values) == 0 && !opts.AllowEmpty {
		return nil, ErrEmptyInput
	}

	return values, nil
}

// Detect guesses the format from the first non-space byte: '[' or '{'
// means JSON, anything else is treated as delimited text.
func Detect(raw []byte) Format {
	trimmed := bytes.TrimLeftFunc(raw, unicode.IsSpace)
	if len(trimmed) > 0 && (trimmed[0] == '[' || trimmed[0] == '{') {
		return FormatJSON
	}

	return FormatCSV
}

// parseJSON accepts a bare array or an object with a "data" array.
func parseJSON(raw []byte) ([]int, error) {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSchema, err)
	}

	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}

		return nil, fmt.Errorf("%w: %s", ErrSchema, strings.Join(msgs, "; "))
	}

	trimmed := bytes.TrimLeftFunc(raw, unicode.IsSpace)

	if trimmed[0] == '{' {
		var wrapped struct {
			Data []int `json:"data"`
		}

		if err := json.Unmarshal(trimmed, &wrapped); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidValue, err)
		}

		return nonNil(wrapped.Data), nil
	}

	var values []int

	if err := json.Unmarshal(trimmed, &values); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidValue, err)
	}

	return nonNil(values), nil
}

// parseDelimited splits on commas, semicolons and whitespace. Empty fields
// are skipped.
func parseDelimited(raw []byte, lenient bool) ([]int, error) {
	fields := strings.FieldsFunc(string(raw), func(r rune) bool {
		return r == ',' || r == ';' || unicode.IsSpace(r)
	})

	values := make([]int, 0, len(fields))

	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			if lenient {
				continue
			}

			return nil, fmt.Errorf("%w: %q", ErrInvalidValue, f)
		}

		values = append(values, v)
	}

	return values, nil
}

func nonNil(v []int) []int {
	if v == nil {
		return []int{}
	}

	return v
}
