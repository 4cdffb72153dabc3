package tracegen

import (
	"fmt"
	"slices"

	"github.com/aretw0/algotrace/pkg/domain"
)

// Func is the contract shared by every generator.
type Func func(in domain.Input) (domain.Trace, error)

// Note strings attached to well-known frames.
const (
	NoteInitial  = "initial"
	NoteComplete = "complete"
	NoteFound    = "found"
	NoteNotFound = "not found"
)

func arrayPayload(in domain.Input) (*domain.ArrayInput, error) {
	if in.Kind != domain.InputArray || in.Array == nil {
		return nil, fmt.Errorf("%w: want %s, got %s", ErrWrongInputKind, domain.InputArray, in.Kind)
	}
	return in.Array, nil
}

func graphPayload(in domain.Input) (*domain.GraphInput, error) {
	if in.Kind != domain.InputGraph || in.Graph == nil {
		return nil, fmt.Errorf("%w: want %s, got %s", ErrWrongInputKind, domain.InputGraph, in.Kind)
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return in.Graph, nil
}

// arrayRecorder accumulates array frames over a private working copy.
type arrayRecorder struct {
	values []int
	trace  domain.Trace
}

func newArrayRecorder(values []int) *arrayRecorder {
	r := &arrayRecorder{values: slices.Clone(values)}
	r.emit(NoteInitial)
	return r
}

func (r *arrayRecorder) emit(note string, hs ...domain.Highlight) {
	r.trace = append(r.trace, domain.Frame{
		Index: len(r.trace),
		Kind:  domain.FrameArray,
		Note:  note,
		Array: &domain.ArrayFrame{
			Values:     slices.Clone(r.values),
			Highlights: slices.Clone(hs),
		},
	})
}

// compare emits a comparison frame. A negative j examines i alone.
func (r *arrayRecorder) compare(i, j int, extra ...domain.Highlight) {
	hs := []domain.Highlight{{Index: i, Type: domain.HighlightCompare}}
	note := fmt.Sprintf("examine %d", i)
	if j >= 0 && j != i {
		hs = append(hs, domain.Highlight{Index: j, Type: domain.HighlightCompare})
		note = fmt.Sprintf("compare %d and %d", i, j)
	}
	r.emit(note, append(hs, extra...)...)
}

// swap exchanges two positions and emits the swap frame.
func (r *arrayRecorder) swap(i, j int) {
	r.values[i], r.values[j] = r.values[j], r.values[i]
	r.emit(fmt.Sprintf("swap %d and %d", i, j),
		domain.Highlight{Index: i, Type: domain.HighlightSwap},
		domain.Highlight{Index: j, Type: domain.HighlightSwap},
	)
}

func (r *arrayRecorder) mark(note string, idx ...int) {
	hs := make([]domain.Highlight, 0, len(idx))
	for _, i := range idx {
		hs = append(hs, domain.Highlight{Index: i, Type: domain.HighlightMark})
	}
	r.emit(note, hs...)
}

// finish appends the terminal frame and returns the trace.
func (r *arrayRecorder) finish(note string, hs ...domain.Highlight) domain.Trace {
	r.emit(note, hs...)
	r.trace[len(r.trace)-1].Terminal = true
	return r.trace
}

func mark(i int) domain.Highlight  { return domain.Highlight{Index: i, Type: domain.HighlightMark} }
func pivot(i int) domain.Highlight { return domain.Highlight{Index: i, Type: domain.HighlightPivot} }

// graphRecorder accumulates graph frames. Selected edges and visited vertices only grow.
type graphRecorder struct {
	g         *domain.GraphInput
	selected  []domain.Edge
	visited   []int
	seen      map[int]bool
	distances []int
	trace     domain.Trace
}

func newGraphRecorder(g *domain.GraphInput, distances []int) *graphRecorder {
	r := &graphRecorder{
		g:         g,
		selected:  []domain.Edge{},
		visited:   []int{},
		seen:      make(map[int]bool, g.VertexCount),
		distances: distances,
	}
	r.emit(NoteInitial, nil)
	return r
}

func (r *graphRecorder) visit(v int) bool {
	if r.seen[v] {
		return false
	}
	r.seen[v] = true
	idx, _ := slices.BinarySearch(r.visited, v)
	r.visited = slices.Insert(r.visited, idx, v)
	return true
}

func (r *graphRecorder) selectEdge(e domain.Edge) {
	r.selected = append(r.selected, e)
}

func (r *graphRecorder) emit(note string, current *domain.Edge) {
	f := domain.Frame{
		Index: len(r.trace),
		Kind:  domain.FrameGraph,
		Note:  note,
		Graph: &domain.GraphFrame{
			VertexCount:   r.g.VertexCount,
			Edges:         slices.Clone(r.g.Edges),
			SelectedEdges: slices.Clone(r.selected),
			Visited:       slices.Clone(r.visited),
			Distances:     slices.Clone(r.distances),
		},
	}
	if current != nil {
		e := *current
		f.Graph.CurrentEdge = &e
	}
	r.trace = append(r.trace, f)
}

func (r *graphRecorder) finish(note string) domain.Trace {
	r.emit(note, nil)
	r.trace[len(r.trace)-1].Terminal = true
	return r.trace
}

// adjacency lists incident edges per vertex, ordered by (neighbor, weight).
func adjacency(g *domain.GraphInput) [][]domain.Edge {
	adj := make([][]domain.Edge, g.VertexCount)
	for _, e := range g.Edges {
		adj[e.U] = append(adj[e.U], e)
		if e.V != e.U {
			adj[e.V] = append(adj[e.V], e)
		}
	}
	for v := range adj {
		slices.SortStableFunc(adj[v], func(a, b domain.Edge) int {
			if d := a.Other(v) - b.Other(v); d != 0 {
				return d
			}
			return a.Weight - b.Weight
		})
	}
	return adj
}

// edgeLess orders edges by weight, then endpoints, so ties break deterministically.
func edgeLess(a, b domain.Edge) bool {
	if a.Weight != b.Weight {
		return a.Weight < b.Weight
	}
	if a.U != b.U {
		return a.U < b.U
	}
	return a.V < b.V
}
