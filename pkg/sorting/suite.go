package sorting

import (
	"errors"
	"fmt"
	"strings"
)

// Name identifies one algorithm of the suite.
type Name string

// Algorithm names. The string values are part of the JSON contract.
const (
	Bubble    Name = "BubbleSort"
	Quick     Name = "QuickSort"
	Merge     Name = "MergeSort"
	Insertion Name = "InsertionSort"
	Selection Name = "SelectionSort"
	Heap      Name = "HeapSort"
)

// Checkpoint intervals for the instrumented sorts, in outer-loop iterations.
const (
	BubbleCheckpointEvery    = 10
	InsertionCheckpointEvery = 100
	SelectionCheckpointEvery = 10
)

// ErrUnknownAlgorithm is returned by Lookup for names outside the suite.
var ErrUnknownAlgorithm = errors.New("unknown sorting algorithm")

// Func sorts a copy of its input.
type Func func([]int) []int

// ProgressFunc sorts a copy of its input and reports outer-loop progress.
type ProgressFunc func([]int, Progress) []int

// Algorithm is one entry of the suite table.
type Algorithm struct {
	// Name is the algorithm identifier.
	Name Name

	// Sort is the uninstrumented implementation.
	Sort Func

	// SortProgress is nil for algorithms that are timed only as a whole.
	SortProgress ProgressFunc

	// CheckpointEvery is the sampling cadence for SortProgress.
	CheckpointEvery int
}

// Instrumented reports whether the algorithm supports sampled timing.
func (a Algorithm) Instrumented() bool {
	return a.SortProgress != nil && a.CheckpointEvery > 0
}

var suite = []Algorithm{
	{Name: Bubble, Sort: BubbleSort[int], SortProgress: BubbleSortProgress[int], CheckpointEvery: BubbleCheckpointEvery},
	{Name: Quick, Sort: QuickSort[int]},
	{Name: Merge, Sort: MergeSort[int]},
	{
		Name: Insertion, Sort: InsertionSort[int],
		SortProgress: InsertionSortProgress[int], CheckpointEvery: InsertionCheckpointEvery,
	},
	{
		Name: Selection, Sort: SelectionSort[int],
		SortProgress: SelectionSortProgress[int], CheckpointEvery: SelectionCheckpointEvery,
	},
	{Name: Heap, Sort: HeapSort[int]},
}

// Suite returns the six algorithms in their fixed reporting order.
// The returned slice is a fresh copy.
func Suite() []Algorithm {
	out := make([]Algorithm, len(suite))
	copy(out, suite)

	return out
}

// Names returns the algorithm names in suite order.
func Names() []Name {
	names := make([]Name, len(suite))
	for i, a := range suite {
		names[i] = a.Name
	}

	return names
}

// Lookup resolves a name case-insensitively. The "Sort" suffix is optional,
// so "heap", "HeapSort" and "heapsort" all resolve to Heap.
func Lookup(name string) (Algorithm, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.TrimSuffix(key, "sort")

	for _, a := range suite {
		if strings.TrimSuffix(strings.ToLower(string(a.Name)), "sort") == key {
			return a, nil
		}
	}

	return Algorithm{}, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

// Select returns the suite entries matching names, in suite order.
// An empty names list selects the whole suite.
func Select(names []string) ([]Algorithm, error) {
	if len(names) == 0 {
		return Suite(), nil
	}

	want := make(map[Name]bool, len(names))

	for _, n := range names {
		a, err := Lookup(n)
		if err != nil {
			return nil, err
		}

		want[a.Name] = true
	}

	out := make([]Algorithm, 0, len(want))

	for _, a := range suite {
		if want[a.Name] {
			out = append(out, a)
		}
	}

	return out, nil
}
