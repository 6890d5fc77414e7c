// Package analysis runs the benchmark suite against one input and
// assembles the comparison report.
//
// A run profiles the input once, asks the recommendation policy once, then
// times every suite algorithm on a private copy of the input. BubbleSort is
// the baseline; the improvement percentage compares the predicted algorithm
// against it. The predicted and the fastest algorithm may differ and both
// are reported as measured.
package analysis

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/sync/errgroup"

	"github.com/Sumatoshi-tech/sortbench/pkg/observability"
	"github.com/Sumatoshi-tech/sortbench/pkg/profile"
	"github.com/Sumatoshi-tech/sortbench/pkg/recommend"
	"github.com/Sumatoshi-tech/sortbench/pkg/sorting"
	"github.com/Sumatoshi-tech/sortbench/pkg/timing"
)

// BaselineAlgorithm is the reference the improvement percentage is computed
// against.
const BaselineAlgorithm = sorting.Bubble

// Analyzer benchmarks a suite of algorithms. It holds no per-run state and
// is safe for concurrent use.
type Analyzer struct {
	suite       []sorting.Algorithm
	thresholds  profile.Thresholds
	policy      recommend.Policy
	harness     timing.Harness
	parallelism int
	logger      *slog.Logger
	tracer      trace.Tracer
	metrics     *observability.SortMetrics
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithSuite replaces the algorithm suite. An empty suite is allowed; Analyze
// then reports no results and GetBest reports absence.
func WithSuite(suite []sorting.Algorithm) Option {
	return func(a *Analyzer) {
		a.suite = append([]sorting.Algorithm(nil), suite...)
	}
}

// WithThresholds sets the profiler cut-offs.
func WithThresholds(t profile.Thresholds) Option {
	return func(a *Analyzer) { a.thresholds = t }
}

// WithPolicy sets the recommendation rule table.
func WithPolicy(p recommend.Policy) Option {
	return func(a *Analyzer) { a.policy = p }
}

// WithHarness sets the timing harness.
func WithHarness(h timing.Harness) Option {
	return func(a *Analyzer) { a.harness = h }
}

// WithMaxParallelism sets how many algorithms may run at once. Values of 1
// or less run the suite sequentially, which keeps timings free of CPU
// contention.
func WithMaxParallelism(n int) Option {
	return func(a *Analyzer) { a.parallelism = n }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *Analyzer) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithTracer sets the tracer used for run and per-algorithm spans.
func WithTracer(t trace.Tracer) Option {
	return func(a *Analyzer) {
		if t != nil {
			a.tracer = t
		}
	}
}

// WithMetrics sets the metric instruments. Nil disables recording.
func WithMetrics(m *observability.SortMetrics) Option {
	return func(a *Analyzer) { a.metrics = m }
}

// New creates an Analyzer over the full suite with default thresholds.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		suite:       sorting.Suite(),
		thresholds:  profile.DefaultThresholds(),
		policy:      recommend.DefaultPolicy(),
		harness:     timing.New(timing.DefaultLargeArrayThreshold),
		parallelism: 1,
		logger:      slog.New(slog.DiscardHandler),
		tracer:      nooptrace.NewTracerProvider().Tracer("sortbench"),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Suite returns the algorithms this analyzer runs, in order.
func (a *Analyzer) Suite() []sorting.Algorithm {
	return append([]sorting.Algorithm(nil), a.suite...)
}

// Profile classifies data with the configured thresholds.
func (a *Analyzer) Profile(data []int) profile.Label {
	return a.thresholds.Classify(data)
}

// Recommend predicts the best algorithm for data without timing anything.
func (a *Analyzer) Recommend(data []int) (profile.Label, sorting.Name) {
	label := a.Profile(data)

	return label, a.policy.Recommend(label, len(data))
}

// Analyze profiles data, times every suite algorithm and assembles the
// report. data is never modified.
func (a *Analyzer) Analyze(ctx context.Context, data []int) Report {
	ctx, span := a.tracer.Start(ctx, "sortbench.analyze",
		trace.WithAttributes(attribute.Int("input.size", len(data))))
	defer span.End()

	start := time.Now()
	label, predicted := a.Recommend(data)

	span.SetAttributes(
		attribute.String("profile", string(label)),
		attribute.String("recommended", string(predicted)),
	)

	results := a.runSuite(ctx, data, label)

	report := Report{
		Results:              results,
		InputSize:            len(data),
		Profile:              label,
		RecommendedAlgorithm: predicted,
	}

	for i := range report.Results {
		r := &report.Results[i]
		r.Recommended = r.Algorithm == predicted

		if r.Algorithm == BaselineAlgorithm && report.Baseline == nil {
			report.Baseline = r
		}

		if r.Recommended && report.Recommended == nil {
			report.Recommended = r
		}
	}

	report.ImprovementPercent = Improvement(report.Baseline, report.Recommended)

	a.record(ctx, report, time.Since(start))

	return report
}

// GetBest analyzes data and returns the fastest measured result. ok is false
// when the suite is empty.
func (a *Analyzer) GetBest(ctx context.Context, data []int) (AlgorithmResult, bool) {
	return a.Analyze(ctx, data).Fastest()
}

func (a *Analyzer) runSuite(ctx context.Context, data []int, label profile.Label) []AlgorithmResult {
	results := make([]AlgorithmResult, len(a.suite))

	if a.parallelism <= 1 {
		for i, alg := range a.suite {
			results[i] = a.runOne(ctx, alg, data, label)
		}

		return results
	}

	var g errgroup.Group

	g.SetLimit(a.parallelism)

	for i, alg := range a.suite {
		g.Go(func() error {
			results[i] = a.runOne(ctx, alg, data, label)

			return nil
		})
	}

	_ = g.Wait() // runOne never fails.

	return results
}

func (a *Analyzer) runOne(ctx context.Context, alg sorting.Algorithm, data []int, label profile.Label) AlgorithmResult {
	ctx, span := a.tracer.Start(ctx, "sortbench.algorithm",
		trace.WithAttributes(attribute.String("algorithm", string(alg.Name))))
	defer span.End()

	m := a.harness.Run(alg, data)

	span.SetAttributes(
		attribute.String("timing.mode", string(m.Mode)),
		attribute.Int("timing.samples", len(m.Samples)),
		attribute.Float64("elapsed.ms", millis(m.Elapsed)),
	)

	a.logger.DebugContext(ctx, "algorithm finished",
		"algorithm", alg.Name,
		"mode", m.Mode,
		"elapsed", m.Elapsed,
		"samples", len(m.Samples),
	)

	return AlgorithmResult{
		Algorithm: alg.Name,
		Sorted:    m.Sorted,
		Elapsed:   m.Elapsed,
		Samples:   m.Samples,
		Profile:   label,
		Mode:      m.Mode,
	}
}

func (a *Analyzer) record(ctx context.Context, report Report, total time.Duration) {
	fastest, _ := report.Fastest()

	attrs := []any{
		"size", report.InputSize,
		"profile", report.Profile,
		"recommended", report.RecommendedAlgorithm,
		"fastest", fastest.Algorithm,
		"improvement_pct", report.ImprovementPercent,
		"duration", total,
	}

	a.logger.InfoContext(ctx, "analysis complete", attrs...)

	stats := observability.RunStats{
		Profile:     string(report.Profile),
		InputSize:   report.InputSize,
		Recommended: string(report.RecommendedAlgorithm),
		Fastest:     string(fastest.Algorithm),
		Algorithms:  make([]observability.AlgorithmTiming, 0, len(report.Results)),
	}

	for _, r := range report.Results {
		stats.Algorithms = append(stats.Algorithms, observability.AlgorithmTiming{
			Algorithm: string(r.Algorithm),
			Mode:      string(r.Mode),
			Elapsed:   r.Elapsed,
		})
	}

	a.metrics.RecordRun(ctx, stats)
}
