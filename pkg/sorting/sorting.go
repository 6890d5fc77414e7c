// Package sorting implements the benchmark suite: six textbook comparison
// sorts that never mutate their input.
//
// Every function copies the input, sorts the copy in ascending order and
// returns it. Bubble, insertion and selection sort also come in a
// progress-reporting form used by the timing harness for sampled runs.
package sorting

import "cmp"

// Progress is invoked after each completed outer-loop iteration of an
// instrumented sort. The argument is the 1-based count of completed
// iterations.
type Progress func(iteration int)

func clone[E cmp.Ordered](in []E) []E {
	out := make([]E, len(in))
	copy(out, in)

	return out
}

func noProgress(int) {}

// BubbleSort returns a sorted copy of in using adjacent swaps.
func BubbleSort[E cmp.Ordered](in []E) []E {
	return BubbleSortProgress(in, noProgress)
}

// BubbleSortProgress is BubbleSort with a hook after every outer pass.
func BubbleSortProgress[E cmp.Ordered](in []E, progress Progress) []E {
	a := clone(in)
	n := len(a)

	for i := range n - 1 {
		for j := range n - 1 - i {
			if a[j] > a[j+1] {
				a[j], a[j+1] = a[j+1], a[j]
			}
		}

		progress(i + 1)
	}

	return a
}

// InsertionSort returns a sorted copy of in, shifting each element left
// until it meets a smaller or equal one.
func InsertionSort[E cmp.Ordered](in []E) []E {
	return InsertionSortProgress(in, noProgress)
}

// InsertionSortProgress is InsertionSort with a hook after every insertion.
func InsertionSortProgress[E cmp.Ordered](in []E, progress Progress) []E {
	a := clone(in)

	for i := 1; i < len(a); i++ {
		key := a[i]
		j := i - 1

		for j >= 0 && a[j] > key {
			a[j+1] = a[j]
			j--
		}

		a[j+1] = key

		progress(i)
	}

	return a
}

// SelectionSort returns a sorted copy of in, swapping the minimum of the
// unsorted suffix into place on every pass.
func SelectionSort[E cmp.Ordered](in []E) []E {
	return SelectionSortProgress(in, noProgress)
}

// SelectionSortProgress is SelectionSort with a hook after every pass.
func SelectionSortProgress[E cmp.Ordered](in []E, progress Progress) []E {
	a := clone(in)
	n := len(a)

	for i := range n - 1 {
		minIdx := i

		for j := i + 1; j < n; j++ {
			if a[j] < a[minIdx] {
				minIdx = j
			}
		}

		a[i], a[minIdx] = a[minIdx], a[i]

		progress(i + 1)
	}

	return a
}

// QuickSort returns a sorted copy of in. It partitions around the middle
// element with Hoare's scheme.
func QuickSort[E cmp.Ordered](in []E) []E {
	a := clone(in)
	if len(a) > 1 {
		quickSort(a, 0, len(a)-1)
	}

	return a
}

func quickSort[E cmp.Ordered](a []E, lo, hi int) {
	for lo < hi {
		p := hoarePartition(a, lo, hi)

		// Recurse into the smaller half and loop on the larger one so the
		// stack stays logarithmic on adversarial inputs.
		if p-lo < hi-p {
			quickSort(a, lo, p)
			lo = p + 1
		} else {
			quickSort(a, p+1, hi)
			hi = p
		}
	}
}

func hoarePartition[E cmp.Ordered](a []E, lo, hi int) int {
	pivot := a[lo+(hi-lo)/2]
	i, j := lo-1, hi+1

	for {
		for {
			i++
			if a[i] >= pivot {
				break
			}
		}

		for {
			j--
			if a[j] <= pivot {
				break
			}
		}

		if i >= j {
			return j
		}

		a[i], a[j] = a[j], a[i]
	}
}

// MergeSort returns a sorted copy of in using top-down merge sort with
// auxiliary buffers. The merge is stable.
func MergeSort[E cmp.Ordered](in []E) []E {
	a := clone(in)
	if len(a) < 2 {
		return a
	}

	buf := make([]E, len(a))
	mergeSort(a, buf)

	return a
}

func mergeSort[E cmp.Ordered](a, buf []E) {
	if len(a) < 2 {
		return
	}

	mid := len(a) / 2
	mergeSort(a[:mid], buf[:mid])
	mergeSort(a[mid:], buf[mid:])

	copy(buf, a)

	left, right := buf[:mid], buf[mid:len(a)]
	i, j, k := 0, 0, 0

	for i < len(left) && j < len(right) {
		if left[i] <= right[j] {
			a[k] = left[i]
			i++
		} else {
			a[k] = right[j]
			j++
		}

		k++
	}

	k += copy(a[k:], left[i:])
	copy(a[k:], right[j:])
}

// HeapSort returns a sorted copy of in using an in-place binary max-heap.
func HeapSort[E cmp.Ordered](in []E) []E {
	a := clone(in)
	n := len(a)

	for i := n/2 - 1; i >= 0; i-- {
		siftDown(a, i, n)
	}

	for end := n - 1; end > 0; end-- {
		a[0], a[end] = a[end], a[0]
		siftDown(a, 0, end)
	}

	return a
}

func siftDown[E cmp.Ordered](a []E, root, size int) {
	for {
		largest := root
		left := 2*root + 1
		right := left + 1

		if left < size && a[left] > a[largest] {
			largest = left
		}

		if right < size && a[right] > a[largest] {
			largest = right
		}

		if largest == root {
			return
		}

		a[root], a[largest] = a[largest], a[root]
		root = largest
	}
}
