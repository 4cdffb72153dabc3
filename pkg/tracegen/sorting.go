package tracegen

import (
	"fmt"

	"github.com/aretw0/algotrace/pkg/domain"
)

// BubbleSort repeatedly compares adjacent pairs and swaps inversions.
// After each pass the settled suffix boundary is marked. It stops early once a pass swaps nothing.
func BubbleSort(in domain.Input) (domain.Trace, error) {
	arr, err := arrayPayload(in)
	if err != nil {
		return nil, err
	}
	r := newArrayRecorder(arr.Values)
	n := len(r.values)

	for i := 0; i < n-1; i++ {
		swapped := false
		for j := 0; j < n-1-i; j++ {
			r.compare(j, j+1)
			if r.values[j] > r.values[j+1] {
				r.swap(j, j+1)
				swapped = true
			}
		}
		r.mark(fmt.Sprintf("position %d settled", n-1-i), n-1-i)
		if !swapped {
			break
		}
	}
	return r.finish(NoteComplete), nil
}

// SelectionSort selects the minimum of the unsorted suffix and moves it to its boundary.
// The running minimum is highlighted as pivot during the scan.
func SelectionSort(in domain.Input) (domain.Trace, error) {
	arr, err := arrayPayload(in)
	if err != nil {
		return nil, err
	}
	r := newArrayRecorder(arr.Values)
	n := len(r.values)

	for i := 0; i < n-1; i++ {
		minIdx := i
		for j := i + 1; j < n; j++ {
			r.compare(j, -1, pivot(minIdx), mark(i))
			if r.values[j] < r.values[minIdx] {
				minIdx = j
			}
		}
		if minIdx != i {
			r.swap(i, minIdx)
		}
	}
	return r.finish(NoteComplete), nil
}

// InsertionSort sinks each element into the sorted prefix by adjacent swaps.
func InsertionSort(in domain.Input) (domain.Trace, error) {
	arr, err := arrayPayload(in)
	if err != nil {
		return nil, err
	}
	r := newArrayRecorder(arr.Values)

	for i := 1; i < len(r.values); i++ {
		for j := i; j > 0; j-- {
			r.compare(j-1, j, mark(i))
			if r.values[j-1] <= r.values[j] {
				break
			}
			r.swap(j-1, j)
		}
	}
	return r.finish(NoteComplete), nil
}

// MergeSort is a top-down merge sort with an in-place merge.
// Elements taken from the right run are rotated into place, so every frame
// remains a permutation of the input.
func MergeSort(in domain.Input) (domain.Trace, error) {
	arr, err := arrayPayload(in)
	if err != nil {
		return nil, err
	}
	r := newArrayRecorder(arr.Values)

	var sortRange func(lo, hi int)
	sortRange = func(lo, hi int) {
		if hi <= lo {
			return
		}
		mid := lo + (hi-lo)/2
		sortRange(lo, mid)
		sortRange(mid+1, hi)
		mergeInPlace(r, lo, mid, hi)
	}
	sortRange(0, len(r.values)-1)

	return r.finish(NoteComplete), nil
}

// mergeInPlace merges the ascending runs [lo,mid] and [mid+1,hi].
func mergeInPlace(r *arrayRecorder, lo, mid, hi int) {
	i, j := lo, mid+1
	for i <= mid && j <= hi {
		r.compare(i, j, mark(lo), mark(hi))
		if r.values[i] <= r.values[j] {
			i++
			continue
		}
		// Rotate values[i..j] right by one so values[j] lands on i.
		v := r.values[j]
		copy(r.values[i+1:j+1], r.values[i:j])
		r.values[i] = v
		r.emit(fmt.Sprintf("move %d to %d", j, i),
			domain.Highlight{Index: i, Type: domain.HighlightSwap},
			domain.Highlight{Index: j, Type: domain.HighlightSwap},
		)
		i++
		mid++
		j++
	}
}

// QuickSort uses Lomuto partitioning with the last element as pivot.
func QuickSort(in domain.Input) (domain.Trace, error) {
	arr, err := arrayPayload(in)
	if err != nil {
		return nil, err
	}
	r := newArrayRecorder(arr.Values)

	var sortRange func(lo, hi int)
	sortRange = func(lo, hi int) {
		if lo >= hi {
			return
		}
		p := r.values[hi]
		store := lo
		for j := lo; j < hi; j++ {
			r.compare(j, -1, pivot(hi), mark(store))
			if r.values[j] < p {
				if store != j {
					r.swap(store, j)
				}
				store++
			}
		}
		if store != hi {
			r.swap(store, hi)
		}
		r.emit(fmt.Sprintf("pivot placed at %d", store), pivot(store))
		sortRange(lo, store-1)
		sortRange(store+1, hi)
	}
	sortRange(0, len(r.values)-1)

	return r.finish(NoteComplete), nil
}

// HeapSort builds a max-heap, then repeatedly moves the root behind the shrinking heap boundary.
func HeapSort(in domain.Input) (domain.Trace, error) {
	arr, err := arrayPayload(in)
	if err != nil {
		return nil, err
	}
	r := newArrayRecorder(arr.Values)
	n := len(r.values)

	siftDown := func(root, end int) {
		for {
			child := 2*root + 1
			if child >= end {
				return
			}
			if child+1 < end {
				r.compare(child, child+1, mark(end-1))
				if r.values[child+1] > r.values[child] {
					child++
				}
			}
			r.compare(root, child, mark(end-1))
			if r.values[root] >= r.values[child] {
				return
			}
			r.swap(root, child)
			root = child
		}
	}

	for start := n/2 - 1; start >= 0; start-- {
		siftDown(start, n)
	}
	for end := n - 1; end > 0; end-- {
		r.swap(0, end)
		r.mark(fmt.Sprintf("position %d settled", end), end)
		siftDown(0, end)
	}
	return r.finish(NoteComplete), nil
}
