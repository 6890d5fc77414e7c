package analysis_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/sortbench/pkg/analysis"
	"github.com/Sumatoshi-tech/sortbench/pkg/sorting"
)

func result(name sorting.Name, elapsed time.Duration) analysis.AlgorithmResult {
	return analysis.AlgorithmResult{Algorithm: name, Elapsed: elapsed}
}

func TestImprovement(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		baseline    *analysis.AlgorithmResult
		recommended *analysis.AlgorithmResult
		want        float64
	}{
		{
			name:        "faster",
			baseline:    ptr(result(sorting.Bubble, 10*time.Millisecond)),
			recommended: ptr(result(sorting.Quick, 4*time.Millisecond)),
			want:        60,
		},
		{
			name:        "slower_is_negative",
			baseline:    ptr(result(sorting.Bubble, 4*time.Millisecond)),
			recommended: ptr(result(sorting.Insertion, 5*time.Millisecond)),
			want:        -25,
		},
		{
			name:        "zero_baseline",
			baseline:    ptr(result(sorting.Bubble, 0)),
			recommended: ptr(result(sorting.Quick, time.Millisecond)),
			want:        0,
		},
		{
			name:        "same_algorithm",
			baseline:    ptr(result(sorting.Bubble, 3*time.Millisecond)),
			recommended: ptr(result(sorting.Bubble, 3*time.Millisecond)),
			want:        0,
		},
		{name: "missing_baseline", recommended: ptr(result(sorting.Quick, 1)), want: 0},
		{name: "missing_recommended", baseline: ptr(result(sorting.Bubble, 1)), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.InDelta(t, tt.want, analysis.Improvement(tt.baseline, tt.recommended), 1e-9)
		})
	}
}

func TestBestObserved(t *testing.T) {
	t.Parallel()

	t.Run("empty", func(t *testing.T) {
		t.Parallel()

		_, ok := analysis.BestObserved(nil)
		assert.False(t, ok)
	})

	t.Run("minimum", func(t *testing.T) {
		t.Parallel()

		best, ok := analysis.BestObserved([]analysis.AlgorithmResult{
			result(sorting.Bubble, 9),
			result(sorting.Quick, 3),
			result(sorting.Heap, 5),
		})

		assert.True(t, ok)
		assert.Equal(t, sorting.Quick, best.Algorithm)
	})

	t.Run("first_wins_ties", func(t *testing.T) {
		t.Parallel()

		best, ok := analysis.BestObserved([]analysis.AlgorithmResult{
			result(sorting.Bubble, 7),
			result(sorting.Merge, 2),
			result(sorting.Heap, 2),
		})

		assert.True(t, ok)
		assert.Equal(t, sorting.Merge, best.Algorithm)
	})
}

func TestReportRecommendationHit(t *testing.T) {
	t.Parallel()

	results := []analysis.AlgorithmResult{
		result(sorting.Bubble, 9),
		result(sorting.Quick, 1),
		result(sorting.Insertion, 4),
	}

	hit := analysis.Report{Results: results, Recommended: &results[1]}
	miss := analysis.Report{Results: results, Recommended: &results[2]}

	assert.True(t, hit.RecommendationHit())
	assert.False(t, miss.RecommendationHit())
	assert.False(t, analysis.Report{}.RecommendationHit())
}

func ptr[T any](v T) *T {
	return &v
}
