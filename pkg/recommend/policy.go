// Package recommend predicts which suite algorithm should win for a given
// distribution profile and input size.
package recommend

import (
	"github.com/Sumatoshi-tech/sortbench/pkg/profile"
	"github.com/Sumatoshi-tech/sortbench/pkg/sorting"
)

// Default size cut-offs.
const (
	// DefaultReverseMergeLimit is the exclusive upper bound for recommending
	// merge sort on reverse-ordered input.
	DefaultReverseMergeLimit = 10_000

	// DefaultLargeInputSize is the exclusive lower bound above which heap
	// sort is preferred regardless of shape.
	DefaultLargeInputSize = 100_000
)

// Policy is a static rule table. The zero value uses the default cut-offs.
type Policy struct {
	ReverseMergeLimit int `json:"reverse_merge_limit" mapstructure:"reverse_merge_limit" yaml:"reverse_merge_limit"`
	LargeInputSize    int `json:"large_input_size"    mapstructure:"large_input_size"    yaml:"large_input_size"`
}

// DefaultPolicy returns the standard rule table.
func DefaultPolicy() Policy {
	return Policy{
		ReverseMergeLimit: DefaultReverseMergeLimit,
		LargeInputSize:    DefaultLargeInputSize,
	}
}

// Recommend maps (label, n) to exactly one algorithm. Rules are evaluated
// top to bottom and the first match wins:
//
//	sorted, nearly-sorted        -> InsertionSort
//	reverse and n < merge limit  -> MergeSort
//	many-duplicates              -> HeapSort
//	n > large input size         -> HeapSort
//	anything else                -> QuickSort
func (p Policy) Recommend(label profile.Label, n int) sorting.Name {
	switch {
	case label == profile.Sorted || label == profile.NearlySorted:
		return sorting.Insertion
	case label == profile.Reverse && n < orDefault(p.ReverseMergeLimit, DefaultReverseMergeLimit):
		return sorting.Merge
	case label == profile.ManyDuplicates:
		return sorting.Heap
	case n > orDefault(p.LargeInputSize, DefaultLargeInputSize):
		return sorting.Heap
	default:
		return sorting.Quick
	}
}

// Recommend applies the default policy.
func Recommend(label profile.Label, n int) sorting.Name {
	return DefaultPolicy().Recommend(label, n)
}

func orDefault(v, fallback int) int {
	if v <= 0 {
		return fallback
	}

	return v
}
