package analysis

import (
	"encoding/json"
	"time"

	"github.com/Sumatoshi-tech/sortbench/pkg/profile"
	"github.com/Sumatoshi-tech/sortbench/pkg/sorting"
	"github.com/Sumatoshi-tech/sortbench/pkg/timing"
)

// percentScale converts a ratio to a percentage.
const percentScale = 100.0

// AlgorithmResult is the measured outcome of one algorithm on one input.
// Durations are encoded as fractional milliseconds by MarshalJSON and
// MarshalYAML.
type AlgorithmResult struct {
	Algorithm   sorting.Name
	Sorted      []int
	Elapsed     time.Duration
	Samples     []time.Duration
	Profile     profile.Label
	Recommended bool
	Mode        timing.Mode
}

// ElapsedMillis returns the total run time in fractional milliseconds.
func (r AlgorithmResult) ElapsedMillis() float64 {
	return millis(r.Elapsed)
}

// SampleMillis returns the timing samples in fractional milliseconds.
func (r AlgorithmResult) SampleMillis() []float64 {
	out := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = millis(s)
	}

	return out
}

type resultWire struct {
	Algorithm   sorting.Name  `json:"algorithm"           yaml:"algorithm"`
	Sorted      []int         `json:"sortedData"          yaml:"sorted_data,flow"`
	ElapsedMS   float64       `json:"elapsedMilliseconds" yaml:"elapsed_ms"`
	SamplesMS   []float64     `json:"timingIntervals"     yaml:"timing_intervals_ms,flow"`
	Profile     profile.Label `json:"distributionProfile" yaml:"distribution_profile"`
	Recommended bool          `json:"isRecommended"       yaml:"is_recommended"`
	Mode        timing.Mode   `json:"timingMode,omitempty" yaml:"timing_mode,omitempty"`
}

func (r AlgorithmResult) wire() resultWire {
	return resultWire{
		Algorithm:   r.Algorithm,
		Sorted:      r.Sorted,
		ElapsedMS:   r.ElapsedMillis(),
		SamplesMS:   r.SampleMillis(),
		Profile:     r.Profile,
		Recommended: r.Recommended,
		Mode:        r.Mode,
	}
}

// MarshalJSON renders durations as fractional milliseconds.
func (r AlgorithmResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.wire()) //nolint:wrapcheck // plain struct encoding
}

// MarshalYAML renders durations as fractional milliseconds.
func (r AlgorithmResult) MarshalYAML() (any, error) {
	return r.wire(), nil
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (r *AlgorithmResult) UnmarshalJSON(data []byte) error {
	var w resultWire

	if err := json.Unmarshal(data, &w); err != nil {
		return err //nolint:wrapcheck // decoder error is already descriptive
	}

	samples := make([]time.Duration, len(w.SamplesMS))
	for i, s := range w.SamplesMS {
		samples[i] = fromMillis(s)
	}

	*r = AlgorithmResult{
		Algorithm:   w.Algorithm,
		Sorted:      w.Sorted,
		Elapsed:     fromMillis(w.ElapsedMS),
		Samples:     samples,
		Profile:     w.Profile,
		Recommended: w.Recommended,
		Mode:        w.Mode,
	}

	return nil
}

// Report is the full outcome of one Analyze call.
type Report struct {
	// Results holds one entry per suite algorithm, in suite order.
	Results []AlgorithmResult `json:"results" yaml:"results"`

	// Baseline is the BubbleSort result, nil when the suite lacks it.
	Baseline *AlgorithmResult `json:"baseline" yaml:"baseline"`

	// Recommended is the result of the predicted algorithm, nil when the
	// suite lacks it.
	Recommended *AlgorithmResult `json:"recommended" yaml:"recommended"`

	// ImprovementPercent compares Recommended against Baseline. Negative
	// values mean the recommendation was slower.
	ImprovementPercent float64 `json:"improvementPercent" yaml:"improvement_percent"`

	InputSize            int           `json:"inputSize"            yaml:"input_size"`
	Profile              profile.Label `json:"distributionProfile"  yaml:"distribution_profile"`
	RecommendedAlgorithm sorting.Name  `json:"recommendedAlgorithm" yaml:"recommended_algorithm"`
}

// Fastest returns the smallest-elapsed result of the report.
func (r Report) Fastest() (AlgorithmResult, bool) {
	return BestObserved(r.Results)
}

// RecommendationHit reports whether the predicted algorithm was also the
// fastest measured one.
func (r Report) RecommendationHit() bool {
	best, ok := r.Fastest()

	return ok && r.Recommended != nil && best.Algorithm == r.Recommended.Algorithm
}

// Improvement returns 100 * (baseline - recommended) / baseline, or 0 when
// either side is missing or the baseline took no measurable time.
func Improvement(baseline, recommended *AlgorithmResult) float64 {
	if baseline == nil || recommended == nil || baseline.Elapsed <= 0 {
		return 0
	}

	b := float64(baseline.Elapsed)
	rec := float64(recommended.Elapsed)

	return percentScale * (b - rec) / b
}

// BestObserved returns the result with the smallest elapsed time. The
// earliest entry wins ties. ok is false for an empty slice.
func BestObserved(results []AlgorithmResult) (AlgorithmResult, bool) {
	if len(results) == 0 {
		return AlgorithmResult{}, false
	}

	best := results[0]

	for _, r := range results[1:] {
		if r.Elapsed < best.Elapsed {
			best = r
		}
	}

	return best, true
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func fromMillis(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}
