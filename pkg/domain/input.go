package domain

import (
	"fmt"
	"slices"
)

// InputKind discriminates the Input union.
type InputKind string

const (
	InputArray InputKind = "array" // Ordered integer sequence
	InputGraph InputKind = "graph" // Connected, undirected, weighted graph
)

// Edge is an undirected weighted edge. U < V once normalized.
type Edge struct {
	U      int `json:"u" yaml:"u"`
	V      int `json:"v" yaml:"v"`
	Weight int `json:"weight" yaml:"weight"`
}

// NewEdge returns the edge with its endpoints ordered.
func NewEdge(u, v, weight int) Edge {
	if u > v {
		u, v = v, u
	}
	return Edge{U: u, V: v, Weight: weight}
}

// Other returns the endpoint opposite to x.
func (e Edge) Other(x int) int {
	if e.U == x {
		return e.V
	}
	return e.U
}

// SameEndpoints reports whether both edges join the same pair of vertices.
func (e Edge) SameEndpoints(o Edge) bool {
	return e.U == o.U && e.V == o.V
}

// ArrayInput is the payload of sorting and searching inputs.
type ArrayInput struct {
	Values []int `json:"values" yaml:"values"`

	// SortedView is the ascending view used by search algorithms.
	// When empty, search algorithms read Values, which must already be ascending.
	SortedView []int `json:"sorted_view,omitempty" yaml:"sorted_view,omitempty"`

	// Target is the value searched for.
	Target *int `json:"target,omitempty" yaml:"target,omitempty"`
}

// GraphInput is the payload of MST, shortest-path and all-pairs inputs.
type GraphInput struct {
	VertexCount int    `json:"vertex_count" yaml:"vertex_count"`
	Edges       []Edge `json:"edges" yaml:"edges"`
}

// Input is the tagged union every trace generator consumes.
// Exactly one of Array or Graph is set, according to Kind.
type Input struct {
	Kind  InputKind   `json:"kind" yaml:"kind"`
	Array *ArrayInput `json:"array,omitempty" yaml:"array,omitempty"`
	Graph *GraphInput `json:"graph,omitempty" yaml:"graph,omitempty"`
}

// NewArrayInput builds an array Input. The slices are copied.
func NewArrayInput(values []int, sorted []int, target *int) Input {
	in := &ArrayInput{
		Values:     slices.Clone(values),
		SortedView: slices.Clone(sorted),
	}
	if target != nil {
		t := *target
		in.Target = &t
	}
	return Input{Kind: InputArray, Array: in}
}

// NewGraphInput builds a graph Input. The edge slice is copied.
func NewGraphInput(vertexCount int, edges []Edge) Input {
	return Input{
		Kind:  InputGraph,
		Graph: &GraphInput{VertexCount: vertexCount, Edges: slices.Clone(edges)},
	}
}

// Validate checks that the payload matches the declared kind.
func (in Input) Validate() error {
	switch in.Kind {
	case InputArray:
		if in.Array == nil {
			return fmt.Errorf("%w: array payload missing", ErrInvalidInput)
		}
	case InputGraph:
		if in.Graph == nil {
			return fmt.Errorf("%w: graph payload missing", ErrInvalidInput)
		}
		for _, e := range in.Graph.Edges {
			if e.U < 0 || e.V < 0 || e.U >= in.Graph.VertexCount || e.V >= in.Graph.VertexCount {
				return fmt.Errorf("%w: edge (%d,%d) out of range", ErrInvalidInput, e.U, e.V)
			}
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidInput, in.Kind)
	}
	return nil
}

// Clone returns a deep copy of the input.
func (in Input) Clone() Input {
	out := Input{Kind: in.Kind}
	if in.Array != nil {
		out.Array = &ArrayInput{
			Values:     slices.Clone(in.Array.Values),
			SortedView: slices.Clone(in.Array.SortedView),
		}
		if in.Array.Target != nil {
			t := *in.Array.Target
			out.Array.Target = &t
		}
	}
	if in.Graph != nil {
		out.Graph = &GraphInput{
			VertexCount: in.Graph.VertexCount,
			Edges:       slices.Clone(in.Graph.Edges),
		}
	}
	return out
}
