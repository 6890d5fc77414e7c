package input_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/sortbench/pkg/input"
	"github.com/Sumatoshi-tech/sortbench/pkg/profile"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		raw    string
		format input.Format
		want   []int
	}{
		{name: "json_array", raw: `[3, -1, 2]`, want: []int{3, -1, 2}},
		{name: "json_object", raw: ` {"data": [5, 4]}`, want: []int{5, 4}},
		{name: "csv", raw: "1,2,3", want: []int{1, 2, 3}},
		{name: "csv_multiline", raw: "1, 2\n3,,4\r\n", want: []int{1, 2, 3, 4}},
		{name: "whitespace", raw: "7 8\t9", format: input.FormatText, want: []int{7, 8, 9}},
		{name: "semicolons", raw: "1;2;3", format: input.FormatCSV, want: []int{1, 2, 3}},
		{name: "explicit_json", raw: "[1]", format: input.FormatJSON, want: []int{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := input.Parse([]byte(tt.raw), input.Options{Format: tt.format})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{name: "bad_token", raw: "1,two,3", wantErr: input.ErrInvalidValue},
		{name: "float_token", raw: "1.5", wantErr: input.ErrInvalidValue},
		{name: "json_strings", raw: `["a"]`, wantErr: input.ErrSchema},
		{name: "json_floats", raw: `[1.5]`, wantErr: input.ErrSchema},
		{name: "json_missing_data", raw: `{"values": [1]}`, wantErr: input.ErrSchema},
		{name: "json_malformed", raw: `[1,`, wantErr: input.ErrSchema},
		{name: "empty", raw: "  \n", wantErr: input.ErrEmptyInput},
		{name: "empty_json", raw: "[]", wantErr: input.ErrEmptyInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := input.Parse([]byte(tt.raw), input.Options{})
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseLenientSkipsInvalid(t *testing.T) {
	t.Parallel()

	got, err := input.Parse([]byte("1, x, 2, 3.5, 4"), input.Options{Lenient: true})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 4}, got)
}

func TestParseAllowEmpty(t *testing.T) {
	t.Parallel()

	got, err := input.Parse([]byte(`{"data": []}`), input.Options{AllowEmpty: true})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRead(t *testing.T) {
	t.Parallel()

	got, err := input.Read(strings.NewReader("9\n8\n7\n"), input.Options{})
	require.NoError(t, err)
	assert.Equal(t, []int{9, 8, 7}, got)
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	f, err := input.ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, input.FormatJSON, f)

	f, err = input.ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, input.FormatAuto, f)

	_, err = input.ParseFormat("xml")
	require.ErrorIs(t, err, input.ErrUnsupportedFormat)
}

func TestDetect(t *testing.T) {
	t.Parallel()

	assert.Equal(t, input.FormatJSON, input.Detect([]byte("  [1]")))
	assert.Equal(t, input.FormatJSON, input.Detect([]byte("{}")))
	assert.Equal(t, input.FormatCSV, input.Detect([]byte("1,2")))
	assert.Equal(t, input.FormatCSV, input.Detect(nil))
}

func TestGenerateMatchesProfile(t *testing.T) {
	t.Parallel()

	want := map[input.Shape]profile.Label{
		input.ShapeSorted:         profile.Sorted,
		input.ShapeReverse:        profile.Reverse,
		input.ShapeRandom:         profile.Random,
		input.ShapeManyDuplicates: profile.ManyDuplicates,
		input.ShapeNearlySorted:   profile.NearlySorted,
	}

	for _, shape := range input.Shapes() {
		for _, n := range []int{40, 1000, 25_000} {
			data, err := input.Generate(shape, n, 7)
			require.NoError(t, err)
			require.Len(t, data, n)

			assert.Equal(t, want[shape], profile.Classify(data), "%s/%d", shape, n)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	t.Parallel()

	a, err := input.Generate(input.ShapeRandom, 100, 1)
	require.NoError(t, err)

	b, err := input.Generate(input.ShapeRandom, 100, 1)
	require.NoError(t, err)

	c, err := input.Generate(input.ShapeRandom, 100, 2)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestGenerateErrors(t *testing.T) {
	t.Parallel()

	_, err := input.Generate("zigzag", 10, 0)
	require.ErrorIs(t, err, input.ErrUnknownShape)

	_, err = input.Generate(input.ShapeSorted, -1, 0)
	require.ErrorIs(t, err, input.ErrNegativeLength)

	empty, err := input.Generate(input.ShapeRandom, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestParseShape(t *testing.T) {
	t.Parallel()

	s, err := input.ParseShape(" Nearly-Sorted ")
	require.NoError(t, err)
	assert.Equal(t, input.ShapeNearlySorted, s)

	_, err = input.ParseShape("spiral")
	require.ErrorIs(t, err, input.ErrUnknownShape)
}
