package tracegen

import (
	"container/heap"
	"fmt"

	"github.com/aretw0/algotrace/pkg/domain"
)

// Source is the vertex single-source algorithms start from.
const Source = 0

func initialDistances(n int) []int {
	dist := make([]int, n)
	for i := range dist {
		dist[i] = domain.Infinity
	}
	if n > 0 {
		dist[Source] = 0
	}
	return dist
}

// Dijkstra settles vertices in order of distance from Source using a lazy min-heap.
// A settled vertex joins Visited and its tree edge joins SelectedEdges; every
// incident edge towards an unsettled vertex is considered in its own frame.
func Dijkstra(in domain.Input) (domain.Trace, error) {
	g, err := graphPayload(in)
	if err != nil {
		return nil, err
	}
	if err := rejectNegative(g); err != nil {
		return nil, err
	}
	n := g.VertexCount
	dist := initialDistances(n)
	r := newGraphRecorder(g, dist)
	if n == 0 {
		return r.finish(NoteComplete), nil
	}

	adj := adjacency(g)
	via := make([]*domain.Edge, n)
	pq := &nodePQ{}
	heap.Init(pq)
	heap.Push(pq, nodeItem{vertex: Source, dist: 0})

	for pq.Len() > 0 {
		item := heap.Pop(pq).(nodeItem)
		u := item.vertex
		if r.seen[u] || item.dist > dist[u] {
			continue
		}
		r.visit(u)
		if via[u] != nil {
			r.selectEdge(*via[u])
		}
		r.emit(fmt.Sprintf("settle %d (d=%d)", u, dist[u]), nil)

		for _, e := range adj[u] {
			v := e.Other(u)
			if r.seen[v] {
				continue
			}
			note := fmt.Sprintf("consider (%d,%d): keep %s", e.U, e.V, distString(dist[v]))
			if cand := dist[u] + e.Weight; cand < dist[v] {
				dist[v] = cand
				edge := e
				via[v] = &edge
				heap.Push(pq, nodeItem{vertex: v, dist: cand})
				note = fmt.Sprintf("consider (%d,%d): relax %d to %d", e.U, e.V, v, cand)
			}
			r.emit(note, &e)
		}
	}
	return r.finish(NoteComplete), nil
}

// BellmanFord relaxes every edge in both directions for up to |V|-1 rounds,
// stopping after a round without changes. Vertices join Visited once their
// distance becomes finite; the shortest-path tree is selected on the last frame.
func BellmanFord(in domain.Input) (domain.Trace, error) {
	g, err := graphPayload(in)
	if err != nil {
		return nil, err
	}
	n := g.VertexCount
	dist := initialDistances(n)
	r := newGraphRecorder(g, dist)
	if n == 0 {
		return r.finish(NoteComplete), nil
	}

	via := make([]*domain.Edge, n)
	r.visit(Source)
	r.emit(fmt.Sprintf("source %d", Source), nil)

	relax := func(e domain.Edge, a, b int) bool {
		if dist[a] == domain.Infinity || dist[a]+e.Weight >= dist[b] {
			return false
		}
		dist[b] = dist[a] + e.Weight
		edge := e
		via[b] = &edge
		r.visit(b)
		return true
	}

	for round := 1; round < n; round++ {
		changed := false
		for _, e := range g.Edges {
			forward := relax(e, e.U, e.V)
			backward := relax(e, e.V, e.U)
			note := fmt.Sprintf("round %d: consider (%d,%d)", round, e.U, e.V)
			if forward || backward {
				changed = true
				note += " relaxed"
			}
			r.emit(note, &e)
		}
		if !changed {
			break
		}
	}

	for _, e := range g.Edges {
		if canRelax(dist, e.U, e.V, e.Weight) || canRelax(dist, e.V, e.U, e.Weight) {
			return nil, fmt.Errorf("%w: edge (%d,%d)", ErrNegativeCycle, e.U, e.V)
		}
	}

	for v := 0; v < n; v++ {
		if via[v] != nil {
			r.selectEdge(*via[v])
		}
	}
	return r.finish(NoteComplete), nil
}

func canRelax(dist []int, a, b, w int) bool {
	return dist[a] != domain.Infinity && dist[a]+w < dist[b]
}

func distString(d int) string {
	if d == domain.Infinity {
		return "inf"
	}
	return fmt.Sprint(d)
}

func rejectNegative(g *domain.GraphInput) error {
	for _, e := range g.Edges {
		if e.Weight < 0 {
			return fmt.Errorf("%w: (%d,%d)", ErrNegativeWeight, e.U, e.V)
		}
	}
	return nil
}

// nodeItem is a (vertex, tentative distance) heap entry.
type nodeItem struct {
	vertex int
	dist   int
}

// nodePQ is a min-heap of nodeItem ordered by distance, then vertex.
// Stale entries are left in place and skipped on pop.
type nodePQ []nodeItem

func (pq nodePQ) Len() int { return len(pq) }

func (pq nodePQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	return pq[i].vertex < pq[j].vertex
}

func (pq nodePQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(nodeItem)) }

func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
