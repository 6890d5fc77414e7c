package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricRunsTotal            = "sortbench.analysis.runs.total"
	metricInputSize            = "sortbench.analysis.input.size"
	metricAlgorithmDuration    = "sortbench.algorithm.duration.seconds"
	metricRecommendationsTotal = "sortbench.recommendations.total"

	attrProfile    = "profile"
	attrAlgorithm  = "algorithm"
	attrTimingMode = "timing_mode"
	attrOutcome    = "outcome"

	outcomeHit  = "hit"
	outcomeMiss = "miss"
)

// inputSizeBoundaries spans single elements up to ten million.
var inputSizeBoundaries = []float64{1, 10, 100, 1_000, 10_000, 100_000, 1_000_000, 10_000_000}

// SortMetrics holds OTel instruments for benchmark runs.
type SortMetrics struct {
	runsTotal         metric.Int64Counter
	inputSize         metric.Int64Histogram
	algorithmDuration metric.Float64Histogram
	recommendations   metric.Int64Counter
}

// RunStats summarizes one completed analysis, decoupled from report types.
type RunStats struct {
	Profile     string
	InputSize   int
	Recommended string
	Fastest     string
	Algorithms  []AlgorithmTiming
}

// AlgorithmTiming is the measured duration of one algorithm in a run.
type AlgorithmTiming struct {
	Algorithm string
	Mode      string
	Elapsed   time.Duration
}

// NewSortMetrics creates benchmark metric instruments from the given meter.
func NewSortMetrics(mt metric.Meter) (*SortMetrics, error) {
	runs, err := mt.Int64Counter(metricRunsTotal,
		metric.WithDescription("Total analysis runs by distribution profile"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricRunsTotal, err)
	}

	size, err := mt.Int64Histogram(metricInputSize,
		metric.WithDescription("Input sequence length per run"),
		metric.WithUnit("{element}"),
		metric.WithExplicitBucketBoundaries(inputSizeBoundaries...),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricInputSize, err)
	}

	algDur, err := mt.Float64Histogram(metricAlgorithmDuration,
		metric.WithDescription("Per-algorithm sort duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBucketBoundaries...),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricAlgorithmDuration, err)
	}

	recs, err := mt.Int64Counter(metricRecommendationsTotal,
		metric.WithDescription("Recommendations by outcome against the fastest measured algorithm"),
		metric.WithUnit("{recommendation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricRecommendationsTotal, err)
	}

	return &SortMetrics{
		runsTotal:         runs,
		inputSize:         size,
		algorithmDuration: algDur,
		recommendations:   recs,
	}, nil
}

// RecordRun records one completed analysis.
// Safe to call on a nil receiver (no-op).
func (sm *SortMetrics) RecordRun(ctx context.Context, stats RunStats) {
	if sm == nil {
		return
	}

	profileAttr := attribute.String(attrProfile, stats.Profile)

	sm.runsTotal.Add(ctx, 1, metric.WithAttributes(profileAttr))
	sm.inputSize.Record(ctx, int64(stats.InputSize), metric.WithAttributes(profileAttr))

	for _, a := range stats.Algorithms {
		sm.algorithmDuration.Record(ctx, a.Elapsed.Seconds(), metric.WithAttributes(
			attribute.String(attrAlgorithm, a.Algorithm),
			attribute.String(attrTimingMode, a.Mode),
			profileAttr,
		))
	}

	if stats.Recommended == "" || stats.Fastest == "" {
		return
	}

	outcome := outcomeMiss
	if stats.Recommended == stats.Fastest {
		outcome = outcomeHit
	}

	sm.recommendations.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrAlgorithm, stats.Recommended),
		attribute.String(attrOutcome, outcome),
		profileAttr,
	))
}
