package tracegen_test

import (
	"testing"

	"github.com/aretw0/algotrace/pkg/domain"
	"github.com/aretw0/algotrace/pkg/tracegen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatrixAlgorithms_SnapshotPerK(t *testing.T) {
	in := seededGraph(t, 7, 0.3, 42)
	for _, fn := range []tracegen.Func{tracegen.FloydWarshall, tracegen.TransitiveClosure} {
		trace, err := fn(in)
		require.NoError(t, err)
		require.Len(t, trace, 8)

		for i, f := range trace {
			require.Equal(t, domain.FrameMatrix, f.Kind)
			assert.Equal(t, i-1, f.Matrix.K)
			require.Len(t, f.Matrix.Cells, 7)
			for d := range f.Matrix.Cells {
				assert.Zero(t, f.Matrix.Cells[d][d], "diagonal at k=%d", f.Matrix.K)
			}
		}
		assert.Nil(t, trace[0].Matrix.Updated)
	}
}

func TestFloydWarshall_Triangle(t *testing.T) {
	trace, err := tracegen.FloydWarshall(triangle())
	require.NoError(t, err)
	require.Len(t, trace, 4)

	assert.Equal(t, [][]int{{0, 1, 5}, {1, 0, 2}, {5, 2, 0}}, trace[0].Matrix.Cells)
	assert.Nil(t, trace[1].Matrix.Updated)
	// Routing through vertex 1 shortens 0↔2; the last cell written in row-major order is (2,0).
	assert.Equal(t, &domain.Cell{I: 2, J: 0}, trace[2].Matrix.Updated)
	assert.Nil(t, trace[3].Matrix.Updated)

	last := trace.Last()
	assert.Equal(t, [][]int{{0, 1, 3}, {1, 0, 2}, {3, 2, 0}}, last.Matrix.Cells)
	assert.Equal(t, tracegen.NoteComplete, last.Note)
}

func TestFloydWarshall_Unreachable(t *testing.T) {
	in := domain.NewGraphInput(3, []domain.Edge{{U: 0, V: 1, Weight: 4}})
	trace, err := tracegen.FloydWarshall(in)
	require.NoError(t, err)
	cells := trace.Last().Matrix.Cells
	assert.Equal(t, domain.Infinity, cells[0][2])
	assert.Equal(t, domain.Infinity, cells[2][1])
	assert.Equal(t, 4, cells[1][0])
}

func TestTransitiveClosure_Path(t *testing.T) {
	in := domain.NewGraphInput(4, []domain.Edge{{U: 0, V: 1, Weight: 9}, {U: 1, V: 2, Weight: 9}})
	trace, err := tracegen.TransitiveClosure(in)
	require.NoError(t, err)

	assert.Equal(t, [][]int{
		{0, 1, 0, 0},
		{1, 0, 1, 0},
		{0, 1, 0, 0},
		{0, 0, 0, 0},
	}, trace[0].Matrix.Cells)
	assert.Equal(t, &domain.Cell{I: 2, J: 0}, trace[2].Matrix.Updated)
	assert.Equal(t, [][]int{
		{0, 1, 1, 0},
		{1, 0, 1, 0},
		{1, 1, 0, 0},
		{0, 0, 0, 0},
	}, trace.Last().Matrix.Cells)
}

func TestMatrixAlgorithms_FramesDoNotAlias(t *testing.T) {
	trace, err := tracegen.FloydWarshall(triangle())
	require.NoError(t, err)
	trace[0].Matrix.Cells[0][1] = 99
	assert.Equal(t, 1, trace[1].Matrix.Cells[0][1])
}
