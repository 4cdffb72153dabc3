package domain

import (
	"math"
	"slices"
)

// Infinity stands for "no path" in distance vectors and matrices.
// It is small enough that Infinity+weight never overflows an int.
const Infinity = math.MaxInt32

// FrameKind discriminates the Frame payload.
type FrameKind string

const (
	FrameArray  FrameKind = "array"  // Comparison / search families
	FrameGraph  FrameKind = "graph"  // MST / single-source shortest path
	FrameMatrix FrameKind = "matrix" // All-pairs / transitive closure
)

// HighlightType tags an index inside an ArrayFrame.
type HighlightType string

const (
	HighlightCompare HighlightType = "compare" // Element under examination
	HighlightSwap    HighlightType = "swap"    // Value relocated
	HighlightPivot   HighlightType = "pivot"   // Anchor or selected element
	HighlightMark    HighlightType = "mark"    // Boundary or auxiliary index
)

// Highlight marks one array index in a frame.
type Highlight struct {
	Index int           `json:"index"`
	Type  HighlightType `json:"type"`
}

// ArrayFrame is the payload of sorting and searching frames.
type ArrayFrame struct {
	Values     []int       `json:"values"`
	Highlights []Highlight `json:"highlights,omitempty"`
}

// GraphFrame is the payload of MST and shortest-path frames.
// SelectedEdges and Visited never shrink within one trace.
type GraphFrame struct {
	VertexCount   int    `json:"vertex_count"`
	Edges         []Edge `json:"edges"`
	SelectedEdges []Edge `json:"selected_edges"`
	CurrentEdge   *Edge  `json:"current_edge,omitempty"`
	Visited       []int  `json:"visited"`

	// Distances is only populated by shortest-path algorithms.
	Distances []int `json:"distances,omitempty"`
}

// Cell addresses one matrix entry.
type Cell struct {
	I int `json:"i"`
	J int `json:"j"`
}

// MatrixFrame is the payload of all-pairs frames.
type MatrixFrame struct {
	// K is the outer iteration the snapshot was taken after; -1 is the seed matrix.
	K     int     `json:"k"`
	Cells [][]int `json:"cells"`

	// Updated is the last cell changed during iteration K in row-major order, if any.
	Updated *Cell `json:"updated,omitempty"`
}

// Frame is one immutable snapshot of algorithm state.
// Exactly one payload pointer is set, according to Kind.
type Frame struct {
	Index    int       `json:"index"`
	Kind     FrameKind `json:"kind"`
	Terminal bool      `json:"terminal,omitempty"`
	Note     string    `json:"note,omitempty"`

	Array  *ArrayFrame  `json:"array,omitempty"`
	Graph  *GraphFrame  `json:"graph,omitempty"`
	Matrix *MatrixFrame `json:"matrix,omitempty"`
}

// Trace is the ordered frame sequence of one (algorithm, input) pair.
type Trace []Frame

// Last returns the final frame. It panics on an empty trace; generators never return one.
func (t Trace) Last() Frame {
	return t[len(t)-1]
}

// Clone returns a deep copy of the frame so it shares no storage with f.
func (f Frame) Clone() Frame {
	out := f
	if f.Array != nil {
		out.Array = &ArrayFrame{
			Values:     slices.Clone(f.Array.Values),
			Highlights: slices.Clone(f.Array.Highlights),
		}
	}
	if f.Graph != nil {
		g := *f.Graph
		g.Edges = slices.Clone(f.Graph.Edges)
		g.SelectedEdges = slices.Clone(f.Graph.SelectedEdges)
		g.Visited = slices.Clone(f.Graph.Visited)
		g.Distances = slices.Clone(f.Graph.Distances)
		if f.Graph.CurrentEdge != nil {
			e := *f.Graph.CurrentEdge
			g.CurrentEdge = &e
		}
		out.Graph = &g
	}
	if f.Matrix != nil {
		m := &MatrixFrame{K: f.Matrix.K, Cells: CloneMatrix(f.Matrix.Cells)}
		if f.Matrix.Updated != nil {
			c := *f.Matrix.Updated
			m.Updated = &c
		}
		out.Matrix = m
	}
	return out
}

// CloneMatrix deep-copies a 2-D slice.
func CloneMatrix(m [][]int) [][]int {
	out := make([][]int, len(m))
	for i, row := range m {
		out[i] = slices.Clone(row)
	}
	return out
}

// InputFrame returns a single terminal frame echoing the raw input.
// It backs the synthetic trace of failed executions.
func InputFrame(in Input, note string) Frame {
	f := Frame{Index: 0, Terminal: true, Note: note}
	switch {
	case in.Kind == InputGraph && in.Graph != nil:
		f.Kind = FrameGraph
		f.Graph = &GraphFrame{
			VertexCount:   in.Graph.VertexCount,
			Edges:         slices.Clone(in.Graph.Edges),
			SelectedEdges: []Edge{},
			Visited:       []int{},
		}
	default:
		f.Kind = FrameArray
		var values []int
		if in.Array != nil {
			values = slices.Clone(in.Array.Values)
		}
		f.Array = &ArrayFrame{Values: values}
	}
	return f
}
