package tracegen_test

import (
	"testing"

	"github.com/aretw0/algotrace/pkg/domain"
	"github.com/aretw0/algotrace/pkg/tracegen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchers_FindEveryElement(t *testing.T) {
	data := []int{11, 15, 15, 23, 40, 52, 67, 80, 91}
	for _, s := range searchers {
		for _, target := range data {
			trace, err := s.fn(searchInput(data, target))
			require.NoError(t, err)
			requireTraceShape(t, trace)
			assert.Equal(t, data, trace[0].Array.Values)

			last := trace.Last()
			require.Len(t, last.Array.Highlights, 1, "%s target %d", s.name, target)
			h := last.Array.Highlights[0]
			assert.Equal(t, domain.HighlightPivot, h.Type)
			assert.Equal(t, target, data[h.Index], "%s target %d", s.name, target)
		}
	}
}

func TestSearchers_NotFound(t *testing.T) {
	data := []int{10, 20, 30, 40}
	for _, s := range searchers {
		for _, target := range []int{5, 25, 45} {
			trace, err := s.fn(searchInput(data, target))
			require.NoError(t, err)
			last := trace.Last()
			assert.True(t, last.Terminal)
			assert.Equal(t, tracegen.NoteNotFound, last.Note, "%s target %d", s.name, target)
			assert.Empty(t, last.Array.Highlights)
		}
	}
}

func TestSearchers_EmptyInput(t *testing.T) {
	for _, s := range searchers {
		trace, err := s.fn(searchInput([]int{}, 1))
		require.NoError(t, err)
		requireTraceShape(t, trace)
		assert.Equal(t, tracegen.NoteNotFound, trace.Last().Note)
	}
}

func TestBinarySearch_Frames(t *testing.T) {
	trace, err := tracegen.BinarySearch(searchInput([]int{10, 20, 30, 40, 50}, 40))
	require.NoError(t, err)

	// initial, mid=2 (30), mid=3 (40), found
	require.Len(t, trace, 4)
	assert.Contains(t, trace[1].Array.Highlights, domain.Highlight{Index: 2, Type: domain.HighlightCompare})
	assert.Contains(t, trace[1].Array.Highlights, domain.Highlight{Index: 0, Type: domain.HighlightMark})
	assert.Contains(t, trace[1].Array.Highlights, domain.Highlight{Index: 4, Type: domain.HighlightMark})
	assert.Contains(t, trace[2].Array.Highlights, domain.Highlight{Index: 3, Type: domain.HighlightCompare})
	assert.Equal(t, "found at 3", trace[3].Note)
}

func TestSearchers_Errors(t *testing.T) {
	noTarget := domain.NewArrayInput([]int{1, 2, 3}, nil, nil)
	unsorted := domain.NewArrayInput([]int{3, 1, 2}, nil, intPtr(1))

	for _, s := range searchers {
		_, err := s.fn(noTarget)
		assert.ErrorIs(t, err, tracegen.ErrMissingTarget, s.name)

		_, err = s.fn(triangle())
		assert.ErrorIs(t, err, tracegen.ErrWrongInputKind, s.name)
	}

	_, err := tracegen.BinarySearch(unsorted)
	assert.ErrorIs(t, err, tracegen.ErrUnsortedInput)
	_, err = tracegen.JumpSearch(unsorted)
	assert.ErrorIs(t, err, tracegen.ErrUnsortedInput)

	// Linear search tolerates unsorted data.
	trace, err := tracegen.LinearSearch(unsorted)
	require.NoError(t, err)
	assert.Equal(t, "found at 1", trace.Last().Note)
}

func TestSearchers_PreferSortedView(t *testing.T) {
	in := domain.NewArrayInput([]int{30, 10, 20}, []int{10, 20, 30}, intPtr(30))
	trace, err := tracegen.BinarySearch(in)
	require.NoError(t, err)
	assert.Equal(t, []int{10, 20, 30}, trace[0].Array.Values)
	assert.Equal(t, "found at 2", trace.Last().Note)
}
