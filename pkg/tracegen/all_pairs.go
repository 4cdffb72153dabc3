package tracegen

import (
	"fmt"

	"github.com/aretw0/algotrace/pkg/domain"
)

// matrixRecorder accumulates one snapshot per outer iteration.
type matrixRecorder struct {
	cells [][]int
	trace domain.Trace
}

func (r *matrixRecorder) snapshot(k int, updated *domain.Cell, note string) {
	f := domain.Frame{
		Index:  len(r.trace),
		Kind:   domain.FrameMatrix,
		Note:   note,
		Matrix: &domain.MatrixFrame{K: k, Cells: domain.CloneMatrix(r.cells)},
	}
	if updated != nil {
		c := *updated
		f.Matrix.Updated = &c
	}
	r.trace = append(r.trace, f)
}

func (r *matrixRecorder) finish() domain.Trace {
	last := &r.trace[len(r.trace)-1]
	last.Terminal = true
	last.Note = NoteComplete
	return r.trace
}

// seedMatrix builds the K = -1 matrix: zero diagonal, direct edge values elsewhere.
// Parallel edges keep the smaller value.
func seedMatrix(g *domain.GraphInput, absent int, value func(domain.Edge) int) [][]int {
	n := g.VertexCount
	m := make([][]int, n)
	for i := range m {
		m[i] = make([]int, n)
		for j := range m[i] {
			if i != j {
				m[i][j] = absent
			}
		}
	}
	for _, e := range g.Edges {
		if e.U == e.V {
			continue
		}
		v := value(e)
		if v < m[e.U][e.V] || m[e.U][e.V] == absent {
			m[e.U][e.V] = v
			m[e.V][e.U] = v
		}
	}
	return m
}

// runAllPairs drives the k/i/j triple loop shared by both matrix algorithms.
// update returns the new value of cell (i,j) through k and whether it changed.
func runAllPairs(m [][]int, update func(m [][]int, k, i, j int) (int, bool)) domain.Trace {
	r := &matrixRecorder{cells: m}
	r.snapshot(-1, nil, NoteInitial)

	n := len(m)
	for k := 0; k < n; k++ {
		var last *domain.Cell
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if i == j {
					continue
				}
				if v, ok := update(m, k, i, j); ok {
					m[i][j] = v
					last = &domain.Cell{I: i, J: j}
				}
			}
		}
		note := fmt.Sprintf("k=%d", k)
		if last == nil {
			note += " unchanged"
		}
		r.snapshot(k, last, note)
	}
	return r.finish()
}

// FloydWarshall computes all-pairs shortest distances. Absent paths hold domain.Infinity.
func FloydWarshall(in domain.Input) (domain.Trace, error) {
	g, err := graphPayload(in)
	if err != nil {
		return nil, err
	}
	if err := rejectNegative(g); err != nil {
		return nil, err
	}
	m := seedMatrix(g, domain.Infinity, func(e domain.Edge) int { return e.Weight })
	return runAllPairs(m, func(m [][]int, k, i, j int) (int, bool) {
		dik, dkj := m[i][k], m[k][j]
		if dik == domain.Infinity || dkj == domain.Infinity {
			return 0, false
		}
		if cand := dik + dkj; cand < m[i][j] {
			return cand, true
		}
		return 0, false
	}), nil
}

// TransitiveClosure is Warshall's reachability closure. A cell holds 1 when j is
// reachable from i through other vertices and 0 otherwise; the diagonal stays 0.
func TransitiveClosure(in domain.Input) (domain.Trace, error) {
	g, err := graphPayload(in)
	if err != nil {
		return nil, err
	}
	m := seedMatrix(g, 0, func(domain.Edge) int { return 1 })
	return runAllPairs(m, func(m [][]int, k, i, j int) (int, bool) {
		if m[i][j] == 0 && m[i][k] == 1 && m[k][j] == 1 {
			return 1, true
		}
		return 0, false
	}), nil
}
