package timing

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/sortbench/pkg/sorting"
)

// stepClock advances by one millisecond on every reading.
func stepClock() func() time.Time {
	t := time.Unix(0, 0)

	return func() time.Time {
		t = t.Add(time.Millisecond)

		return t
	}
}

func descending(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = n - i
	}

	return out
}

func mustLookup(t *testing.T, name sorting.Name) sorting.Algorithm {
	t.Helper()

	a, err := sorting.Lookup(string(name))
	require.NoError(t, err)

	return a
}

func TestModeFor(t *testing.T) {
	t.Parallel()

	h := Harness{}

	assert.Equal(t, ModePlain, h.ModeFor(0))
	assert.Equal(t, ModePlain, h.ModeFor(9_999))
	assert.Equal(t, ModeSampled, h.ModeFor(10_000))
	assert.Equal(t, ModeSampled, New(5).ModeFor(5))
	assert.Equal(t, ModePlain, New(5).ModeFor(4))
}

func TestRunPlainRecordsSingleSample(t *testing.T) {
	t.Parallel()

	for _, alg := range sorting.Suite() {
		t.Run(string(alg.Name), func(t *testing.T) {
			t.Parallel()

			m := Harness{now: stepClock()}.Run(alg, descending(50))

			assert.Equal(t, ModePlain, m.Mode)
			assert.True(t, slices.IsSorted(m.Sorted))
			require.Len(t, m.Samples, 1)
			assert.Equal(t, m.Elapsed, m.Samples[0])
			assert.Equal(t, time.Millisecond, m.Elapsed)
		})
	}
}

func TestRunSampledCadence(t *testing.T) {
	t.Parallel()

	const n = 1000

	tests := []struct {
		name        sorting.Name
		wantSamples int
	}{
		// n-1 outer iterations, one checkpoint per interval, plus the final sample.
		{name: sorting.Bubble, wantSamples: (n-1)/sorting.BubbleCheckpointEvery + 1},
		{name: sorting.Selection, wantSamples: (n-1)/sorting.SelectionCheckpointEvery + 1},
		{name: sorting.Insertion, wantSamples: (n-1)/sorting.InsertionCheckpointEvery + 1},
		{name: sorting.Quick, wantSamples: 1},
		{name: sorting.Merge, wantSamples: 1},
		{name: sorting.Heap, wantSamples: 1},
	}

	for _, tt := range tests {
		t.Run(string(tt.name), func(t *testing.T) {
			t.Parallel()

			h := Harness{LargeArrayThreshold: n, now: stepClock()}
			m := h.Run(mustLookup(t, tt.name), descending(n))

			assert.Equal(t, ModeSampled, m.Mode)
			assert.True(t, slices.IsSorted(m.Sorted))
			require.Len(t, m.Samples, tt.wantSamples)
			assert.True(t, slices.IsSorted(m.Samples), "samples must be non-decreasing")
			assert.Equal(t, m.Elapsed, m.Samples[len(m.Samples)-1])
		})
	}
}

func TestRunRealClock(t *testing.T) {
	t.Parallel()

	h := New(100)
	in := descending(500)
	original := slices.Clone(in)

	for _, alg := range sorting.Suite() {
		m := h.Run(alg, in)

		assert.GreaterOrEqual(t, m.Elapsed, time.Duration(0), alg.Name)
		assert.NotEmpty(t, m.Samples, alg.Name)
		assert.Equal(t, m.Elapsed, m.Samples[len(m.Samples)-1], alg.Name)
		assert.True(t, slices.IsSorted(m.Samples), alg.Name)
	}

	assert.Equal(t, original, in)
}

func TestRunTrivialInputs(t *testing.T) {
	t.Parallel()

	for _, alg := range sorting.Suite() {
		for _, in := range [][]int{nil, {}, {1}} {
			m := Harness{}.Run(alg, in)

			assert.Len(t, m.Sorted, len(in))
			assert.Len(t, m.Samples, 1)
		}
	}
}
