package tracegen

import (
	"fmt"
	"math"
	"slices"

	"github.com/aretw0/algotrace/pkg/domain"
)

// searchData returns the ascending data a search reads and its target.
func searchData(in domain.Input, requireSorted bool) ([]int, int, error) {
	arr, err := arrayPayload(in)
	if err != nil {
		return nil, 0, err
	}
	if arr.Target == nil {
		return nil, 0, ErrMissingTarget
	}
	data := arr.SortedView
	if len(data) == 0 {
		data = arr.Values
	}
	if requireSorted && !slices.IsSorted(data) {
		return nil, 0, ErrUnsortedInput
	}
	return data, *arr.Target, nil
}

func found(r *arrayRecorder, idx int) domain.Trace {
	return r.finish(fmt.Sprintf("%s at %d", NoteFound, idx), pivot(idx))
}

// LinearSearch examines every element from the left until the target is met.
func LinearSearch(in domain.Input) (domain.Trace, error) {
	data, target, err := searchData(in, false)
	if err != nil {
		return nil, err
	}
	r := newArrayRecorder(data)
	for i, v := range r.values {
		r.compare(i, -1)
		if v == target {
			return found(r, i), nil
		}
	}
	return r.finish(NoteNotFound), nil
}

// BinarySearch halves the [lo,hi] window around the middle element.
// The window bounds are marked on every comparison frame.
func BinarySearch(in domain.Input) (domain.Trace, error) {
	data, target, err := searchData(in, true)
	if err != nil {
		return nil, err
	}
	r := newArrayRecorder(data)
	lo, hi := 0, len(r.values)-1
	for lo <= hi {
		mid := lo + (hi-lo)/2
		r.compare(mid, -1, mark(lo), mark(hi))
		switch {
		case r.values[mid] == target:
			return found(r, mid), nil
		case r.values[mid] < target:
			lo = mid + 1
		default:
			hi = mid - 1
		}
	}
	return r.finish(NoteNotFound), nil
}

// JumpSearch probes block ends spaced sqrt(n) apart, then scans the block that may hold the target.
func JumpSearch(in domain.Input) (domain.Trace, error) {
	data, target, err := searchData(in, true)
	if err != nil {
		return nil, err
	}
	r := newArrayRecorder(data)
	n := len(r.values)
	if n == 0 {
		return r.finish(NoteNotFound), nil
	}

	step := int(math.Sqrt(float64(n)))
	if step < 1 {
		step = 1
	}
	prev, next := 0, min(step, n)
	for {
		r.compare(next-1, -1, mark(prev))
		if r.values[next-1] >= target {
			break
		}
		prev = next
		if prev >= n {
			return r.finish(NoteNotFound), nil
		}
		next = min(next+step, n)
	}
	for i := prev; i < next; i++ {
		r.compare(i, -1, mark(next-1))
		if r.values[i] == target {
			return found(r, i), nil
		}
		if r.values[i] > target {
			break
		}
	}
	return r.finish(NoteNotFound), nil
}
