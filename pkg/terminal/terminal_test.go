package terminal //nolint:testpackage // testing internal implementation.

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestParseWidth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		columns string
		want    int
	}{
		{name: "unset", columns: "", want: DefaultWidth},
		{name: "valid", columns: "100", want: 100},
		{name: "invalid", columns: "wide", want: DefaultWidth},
		{name: "negative", columns: "-5", want: DefaultWidth},
		{name: "too_narrow", columns: "20", want: MinWidth},
		{name: "too_wide", columns: "400", want: MaxWidth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, parseWidth(tt.columns))
		})
	}
}

func TestDetectWidth_FromEnv(t *testing.T) {
	t.Setenv("COLUMNS", "90")

	assert.Equal(t, 90, DetectWidth())
}

func TestColorize(t *testing.T) {
	t.Parallel()

	plain := Config{NoColor: true}
	assert.Equal(t, "ok", plain.Colorize("ok", ColorGreen))

	colored := Config{}
	got := colored.Colorize("ok", ColorGreen)
	assert.Contains(t, got, "ok")
	assert.Contains(t, got, "\x1b[32m")

	assert.Equal(t, "ok", colored.Colorize("ok", ColorNone))
}

func TestDrawHeader(t *testing.T) {
	t.Parallel()

	header := DrawHeader("SORT ANALYSIS", "n=10", 40)
	lines := strings.Split(header, "\n")

	assert.Len(t, lines, 3)

	for _, line := range lines {
		assert.Equal(t, 40, utf8.RuneCountInString(line))
	}

	assert.Contains(t, lines[1], "SORT ANALYSIS")
	assert.True(t, strings.HasSuffix(lines[1], "n=10 "+BoxHeavyVertical))
}

func TestDrawHeader_GrowsToFit(t *testing.T) {
	t.Parallel()

	header := DrawHeader("A LONG TITLE", "", 5)
	assert.Contains(t, header, "A LONG TITLE")
}

func TestDrawBar(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "██░░", DrawBar(0.5, 4))
	assert.Equal(t, "░░░░", DrawBar(-1, 4))
	assert.Equal(t, "████", DrawBar(2, 4))
	assert.Empty(t, DrawBar(0.5, 0))
}
