// Package profile classifies an integer sequence into one distribution shape.
package profile

// Label is the distribution shape of an input sequence.
type Label string

// Distribution labels, in classification precedence order.
const (
	Trivial        Label = "trivial"
	Sorted         Label = "sorted"
	Reverse        Label = "reverse"
	ManyDuplicates Label = "many-duplicates"
	NearlySorted   Label = "nearly-sorted"
	Random         Label = "random"
)

// Default threshold divisors.
const (
	// DefaultDuplicateDivisor flags many-duplicates when more than n/10
	// adjacent pairs are equal.
	DefaultDuplicateDivisor = 10

	// DefaultDisorderDivisor flags nearly-sorted when fewer than n/20
	// adjacent pairs descend.
	DefaultDisorderDivisor = 20
)

// Thresholds holds the classification cut-offs. Both divisors are applied
// to the input length with integer division.
type Thresholds struct {
	DuplicateDivisor int `json:"duplicate_divisor" mapstructure:"duplicate_divisor" yaml:"duplicate_divisor"`
	DisorderDivisor  int `json:"disorder_divisor"  mapstructure:"disorder_divisor"  yaml:"disorder_divisor"`
}

// DefaultThresholds returns the standard classification cut-offs.
func DefaultThresholds() Thresholds {
	return Thresholds{
		DuplicateDivisor: DefaultDuplicateDivisor,
		DisorderDivisor:  DefaultDisorderDivisor,
	}
}

// Labels returns every label in precedence order.
func Labels() []Label {
	return []Label{Trivial, Sorted, Reverse, ManyDuplicates, NearlySorted, Random}
}

// Classify returns the single label describing data.
//
// Precedence is fixed: trivial, sorted, reverse, many-duplicates,
// nearly-sorted, random. An all-equal sequence is therefore sorted.
func (t Thresholds) Classify(data []int) Label {
	n := len(data)
	if n < 2 {
		return Trivial
	}

	nonDecreasing, nonIncreasing := true, true
	equalAdjacent := 0

	for i := 1; i < n; i++ {
		switch {
		case data[i] < data[i-1]:
			nonDecreasing = false
		case data[i] > data[i-1]:
			nonIncreasing = false
		default:
			equalAdjacent++
		}
	}

	switch {
	case nonDecreasing:
		return Sorted
	case nonIncreasing:
		return Reverse
	case equalAdjacent > n/divisor(t.DuplicateDivisor, DefaultDuplicateDivisor):
		return ManyDuplicates
	}

	if Disorder(data) < n/divisor(t.DisorderDivisor, DefaultDisorderDivisor) {
		return NearlySorted
	}

	return Random
}

// Classify labels data with the default thresholds.
func Classify(data []int) Label {
	return DefaultThresholds().Classify(data)
}

// Disorder counts adjacent pairs where the later element is smaller.
func Disorder(data []int) int {
	count := 0

	for i := 1; i < len(data); i++ {
		if data[i] < data[i-1] {
			count++
		}
	}

	return count
}

func divisor(v, fallback int) int {
	if v <= 0 {
		return fallback
	}

	return v
}
