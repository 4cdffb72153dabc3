package tracegen

import (
	"container/heap"
	"fmt"
	"slices"

	"github.com/aretw0/algotrace/pkg/domain"
)

// Prim grows the spanning tree from vertex 0 with a lazy min-heap of crossing edges.
// Each popped edge yields a "consider" frame; accepted edges yield a second frame
// where the edge joins SelectedEdges and its new endpoint joins Visited.
func Prim(in domain.Input) (domain.Trace, error) {
	g, err := graphPayload(in)
	if err != nil {
		return nil, err
	}
	r := newGraphRecorder(g, nil)
	n := g.VertexCount
	if n == 0 {
		return r.finish(NoteComplete), nil
	}

	adj := adjacency(g)
	pq := &edgePQ{}
	heap.Init(pq)

	enter := func(v int) {
		r.visit(v)
		for _, e := range adj[v] {
			if !r.seen[e.Other(v)] {
				heap.Push(pq, e)
			}
		}
	}
	enter(0)
	r.emit("start at 0", nil)

	for pq.Len() > 0 && len(r.selected) < n-1 {
		e := heap.Pop(pq).(domain.Edge)
		r.emit(fmt.Sprintf("consider (%d,%d) w=%d", e.U, e.V, e.Weight), &e)

		next := e.V
		if r.seen[e.V] {
			next = e.U
		}
		if r.seen[next] {
			continue
		}
		r.selectEdge(e)
		enter(next)
		r.emit(fmt.Sprintf("select (%d,%d)", e.U, e.V), nil)
	}

	if len(r.selected) < n-1 {
		return nil, ErrDisconnected
	}
	return r.finish(NoteComplete), nil
}

// Kruskal scans edges by ascending weight and keeps those joining two components.
// Ties are broken by endpoints so the scan order is deterministic.
func Kruskal(in domain.Input) (domain.Trace, error) {
	g, err := graphPayload(in)
	if err != nil {
		return nil, err
	}
	r := newGraphRecorder(g, nil)
	n := g.VertexCount
	if n <= 1 {
		if n == 1 {
			r.visit(0)
		}
		return r.finish(NoteComplete), nil
	}

	edges := slices.Clone(g.Edges)
	slices.SortStableFunc(edges, func(a, b domain.Edge) int {
		switch {
		case edgeLess(a, b):
			return -1
		case edgeLess(b, a):
			return 1
		}
		return 0
	})

	parent := make([]int, n)
	rank := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	find := func(u int) int {
		for parent[u] != u {
			parent[u] = parent[parent[u]]
			u = parent[u]
		}
		return u
	}
	union := func(u, v int) {
		ru, rv := find(u), find(v)
		switch {
		case rank[ru] < rank[rv]:
			parent[ru] = rv
		case rank[ru] > rank[rv]:
			parent[rv] = ru
		default:
			parent[rv] = ru
			rank[ru]++
		}
	}

	for _, e := range edges {
		if len(r.selected) == n-1 {
			break
		}
		r.emit(fmt.Sprintf("consider (%d,%d) w=%d", e.U, e.V, e.Weight), &e)
		if e.U == e.V || find(e.U) == find(e.V) {
			continue
		}
		union(e.U, e.V)
		r.selectEdge(e)
		r.visit(e.U)
		r.visit(e.V)
		r.emit(fmt.Sprintf("select (%d,%d)", e.U, e.V), nil)
	}

	if len(r.selected) < n-1 {
		return nil, ErrDisconnected
	}
	return r.finish(NoteComplete), nil
}

// edgePQ implements heap.Interface for a min-heap of edges ordered by edgeLess.
type edgePQ []domain.Edge

func (pq edgePQ) Len() int            { return len(pq) }
func (pq edgePQ) Less(i, j int) bool  { return edgeLess(pq[i], pq[j]) }
func (pq edgePQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *edgePQ) Push(x interface{}) { *pq = append(*pq, x.(domain.Edge)) }

func (pq *edgePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	e := old[n-1]
	*pq = old[:n-1]
	return e
}
