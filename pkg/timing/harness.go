// Package timing measures a single algorithm run with the monotonic clock.
//
// Inputs shorter than the large-array threshold are timed as a whole. From
// the threshold upward the harness switches to sampled mode: algorithms with
// a progress-reporting variant record the elapsed time every few outer-loop
// iterations, the others still record a single total.
package timing

import (
	"time"

	"github.com/Sumatoshi-tech/sortbench/pkg/sorting"
)

// DefaultLargeArrayThreshold is the input length at which sampled mode
// starts.
const DefaultLargeArrayThreshold = 10_000

// Mode is the measurement strategy chosen for a run.
type Mode string

// Measurement modes.
const (
	ModePlain   Mode = "plain"
	ModeSampled Mode = "sampled"
)

// Measurement is the outcome of one timed run.
type Measurement struct {
	// Sorted is the algorithm output.
	Sorted []int

	// Elapsed is the total wall-clock duration of the run.
	Elapsed time.Duration

	// Samples holds elapsed-since-start readings in recording order.
	// The last sample equals Elapsed.
	Samples []time.Duration

	// Mode is the strategy the harness used.
	Mode Mode
}

// Harness times suite algorithms. The zero value uses the default threshold.
type Harness struct {
	LargeArrayThreshold int `json:"large_array_threshold" mapstructure:"large_array_threshold" yaml:"large_array_threshold"`

	// now is the clock. Tests replace it to get deterministic samples.
	now func() time.Time
}

// New returns a harness with the given threshold. Non-positive values
// select the default.
func New(threshold int) Harness {
	return Harness{LargeArrayThreshold: threshold}
}

// ModeFor reports which strategy Run uses for an input of length n.
func (h Harness) ModeFor(n int) Mode {
	threshold := h.LargeArrayThreshold
	if threshold <= 0 {
		threshold = DefaultLargeArrayThreshold
	}

	if n >= threshold {
		return ModeSampled
	}

	return ModePlain
}

// Run sorts a private copy of data with alg and times it.
func (h Harness) Run(alg sorting.Algorithm, data []int) Measurement {
	now := h.now
	if now == nil {
		now = time.Now
	}

	mode := h.ModeFor(len(data))

	var (
		sorted  []int
		samples []time.Duration
	)

	start := now()

	if mode == ModeSampled && alg.Instrumented() {
		every := alg.CheckpointEvery
		samples = make([]time.Duration, 0, len(data)/every+1)

		sorted = alg.SortProgress(data, func(iteration int) {
			if iteration%every == 0 {
				samples = append(samples, now().Sub(start))
			}
		})
	} else {
		sorted = alg.Sort(data)
	}

	elapsed := now().Sub(start)

	return Measurement{
		Sorted:  sorted,
		Elapsed: elapsed,
		Samples: append(samples, elapsed),
		Mode:    mode,
	}
}
