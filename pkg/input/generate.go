package input

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
)

// Shape is the distribution a generated sequence should exhibit.
type Shape string

// Generated shapes. Each matches the profile label of the same name for
// lengths of at least 40.
const (
	ShapeSorted         Shape = "sorted"
	ShapeReverse        Shape = "reverse"
	ShapeRandom         Shape = "random"
	ShapeManyDuplicates Shape = "many-duplicates"
	ShapeNearlySorted   Shape = "nearly-sorted"
)

// ErrUnknownShape is returned for shapes Generate does not know.
var ErrUnknownShape = errors.New("unknown shape")

// ErrNegativeLength is returned when a negative length is requested.
var ErrNegativeLength = errors.New("length must not be negative")

const (
	// duplicateDistinct is the number of distinct values in a
	// many-duplicates sequence.
	duplicateDistinct = 3

	// nearlySortedSwapDivisor yields one adjacent swap per 100 elements,
	// keeping the disorder count well below n/20.
	nearlySortedSwapDivisor = 100
)

// Shapes returns all generator shapes.
func Shapes() []Shape {
	return []Shape{ShapeSorted, ShapeReverse, ShapeRandom, ShapeManyDuplicates, ShapeNearlySorted}
}

// ParseShape validates a user-supplied shape name.
func ParseShape(s string) (Shape, error) {
	want := Shape(strings.ToLower(strings.TrimSpace(s)))

	if slices.Contains(Shapes(), want) {
		return want, nil
	}

	return "", fmt.Errorf("%w: %s", ErrUnknownShape, s)
}

// Generate returns n integers of the given shape. The same seed always
// yields the same sequence.
func Generate(shape Shape, n int, seed uint64) ([]int, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeLength, n)
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	out := make([]int, n)

	switch shape {
	case ShapeSorted:
		for i := range out {
			out[i] = i
		}
	case ShapeReverse:
		for i := range out {
			out[i] = n - i
		}
	case ShapeRandom:
		for i := range out {
			out[i] = i
		}

		rng.Shuffle(n, func(i, j int) { out[i], out[j] = out[j], out[i] })
	case ShapeManyDuplicates:
		for i := range out {
			out[i] = rng.IntN(duplicateDistinct)
		}
	case ShapeNearlySorted:
		for i := range out {
			out[i] = i
		}

		swaps := max(n/nearlySortedSwapDivisor, 1)
		step := n / (swaps + 1)

		for k := 1; k <= swaps && step > 0; k++ {
			if i := k * step; i+1 < n {
				out[i], out[i+1] = out[i+1], out[i]
			}
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownShape, shape)
	}

	return out, nil
}
