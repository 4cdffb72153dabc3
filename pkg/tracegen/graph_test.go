package tracegen_test

import (
	"testing"

	"github.com/aretw0/algotrace/pkg/domain"
	"github.com/aretw0/algotrace/pkg/seeded"
	"github.com/aretw0/algotrace/pkg/tracegen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededGraph(t *testing.T, n int, density float64, seed int64) domain.Input {
	t.Helper()
	edges, err := seeded.GenerateGraph(n, density, seed)
	require.NoError(t, err)
	return domain.NewGraphInput(n, edges)
}

func totalWeight(edges []domain.Edge) int {
	sum := 0
	for _, e := range edges {
		sum += e.Weight
	}
	return sum
}

func containsEdge(edges []domain.Edge, e domain.Edge) bool {
	for _, x := range edges {
		if x == e {
			return true
		}
	}
	return false
}

// requireMonotonicGraph checks that Visited and SelectedEdges never lose members
// and that the edge under consideration is not already selected.
func requireMonotonicGraph(t *testing.T, trace domain.Trace) {
	t.Helper()
	for i := 1; i < len(trace); i++ {
		prev, cur := trace[i-1].Graph, trace[i].Graph
		require.NotNil(t, cur)
		for _, v := range prev.Visited {
			require.Contains(t, cur.Visited, v, "frame %d dropped visited vertex %d", i, v)
		}
		for _, e := range prev.SelectedEdges {
			require.True(t, containsEdge(cur.SelectedEdges, e), "frame %d dropped selected edge %v", i, e)
		}
		if cur.CurrentEdge != nil {
			require.False(t, containsEdge(cur.SelectedEdges, *cur.CurrentEdge), "frame %d considers a selected edge", i)
		}
	}
}

func TestGraphAlgorithms_TraceShape(t *testing.T) {
	inputs := map[string]domain.Input{
		"triangle": triangle(),
		"sparse":   seededGraph(t, 8, 0, 3),
		"dense":    seededGraph(t, 9, 0.6, 42),
		"single":   domain.NewGraphInput(1, nil),
		"empty":    domain.NewGraphInput(0, nil),
	}
	for _, a := range graphAlgorithms {
		for name, in := range inputs {
			t.Run(a.name+"/"+name, func(t *testing.T) {
				snapshot := in.Clone()
				trace, err := a.fn(in)
				require.NoError(t, err)
				requireTraceShape(t, trace)
				assert.Equal(t, snapshot, in, "input was mutated")

				if trace[0].Kind == domain.FrameGraph {
					assert.Empty(t, trace[0].Graph.SelectedEdges)
					assert.Nil(t, trace[0].Graph.CurrentEdge)
					assert.Equal(t, in.Graph.Edges, trace[0].Graph.Edges)
					requireMonotonicGraph(t, trace)
				}
			})
		}
	}
}

func TestMST_PrimAndKruskalAgree(t *testing.T) {
	for _, seed := range []int64{1, 7, 42, 1234} {
		in := seededGraph(t, 10, 0.4, seed)

		prim, err := tracegen.Prim(in)
		require.NoError(t, err)
		kruskal, err := tracegen.Kruskal(in)
		require.NoError(t, err)

		p, k := prim.Last().Graph, kruskal.Last().Graph
		assert.Len(t, p.SelectedEdges, 9)
		assert.Len(t, k.SelectedEdges, 9)
		assert.Equal(t, totalWeight(p.SelectedEdges), totalWeight(k.SelectedEdges), "seed %d", seed)
		assert.Len(t, p.Visited, 10)
		assert.Len(t, k.Visited, 10)
	}
}

func TestMST_Triangle(t *testing.T) {
	for _, fn := range []tracegen.Func{tracegen.Prim, tracegen.Kruskal} {
		trace, err := fn(triangle())
		require.NoError(t, err)
		assert.ElementsMatch(t, []domain.Edge{
			{U: 0, V: 1, Weight: 1},
			{U: 1, V: 2, Weight: 2},
		}, trace.Last().Graph.SelectedEdges)
	}
}

func TestKruskal_ConsidersByWeight(t *testing.T) {
	trace, err := tracegen.Kruskal(triangle())
	require.NoError(t, err)

	var considered []int
	for _, f := range trace {
		if f.Graph.CurrentEdge != nil {
			considered = append(considered, f.Graph.CurrentEdge.Weight)
		}
	}
	// Stops once the tree is complete, so the weight-5 edge is never considered.
	assert.Equal(t, []int{1, 2}, considered)
}

func TestMST_Disconnected(t *testing.T) {
	in := domain.NewGraphInput(4, []domain.Edge{{U: 0, V: 1, Weight: 3}, {U: 2, V: 3, Weight: 4}})
	_, err := tracegen.Prim(in)
	assert.ErrorIs(t, err, tracegen.ErrDisconnected)
	_, err = tracegen.Kruskal(in)
	assert.ErrorIs(t, err, tracegen.ErrDisconnected)
}

func TestDijkstra_Triangle(t *testing.T) {
	trace, err := tracegen.Dijkstra(triangle())
	require.NoError(t, err)

	assert.Equal(t, []int{0, domain.Infinity, domain.Infinity}, trace[0].Graph.Distances)
	last := trace.Last().Graph
	assert.Equal(t, []int{0, 1, 3}, last.Distances)
	assert.Equal(t, []int{0, 1, 2}, last.Visited)
	assert.ElementsMatch(t, []domain.Edge{
		{U: 0, V: 1, Weight: 1},
		{U: 1, V: 2, Weight: 2},
	}, last.SelectedEdges)
}

func TestShortestPaths_Agree(t *testing.T) {
	for _, seed := range []int64{2, 11, 42} {
		in := seededGraph(t, 9, 0.5, seed)

		dijkstra, err := tracegen.Dijkstra(in)
		require.NoError(t, err)
		bellman, err := tracegen.BellmanFord(in)
		require.NoError(t, err)
		floyd, err := tracegen.FloydWarshall(in)
		require.NoError(t, err)

		want := dijkstra.Last().Graph.Distances
		assert.Equal(t, want, bellman.Last().Graph.Distances, "seed %d", seed)
		assert.Equal(t, want, floyd.Last().Matrix.Cells[tracegen.Source], "seed %d", seed)

		// Each tree edge lies on a shortest path.
		for _, e := range bellman.Last().Graph.SelectedEdges {
			du, dv := want[e.U], want[e.V]
			assert.True(t, du+e.Weight == dv || dv+e.Weight == du, "edge %v", e)
		}
	}
}

func TestShortestPaths_Unreachable(t *testing.T) {
	in := domain.NewGraphInput(3, []domain.Edge{{U: 0, V: 1, Weight: 4}})
	for _, fn := range []tracegen.Func{tracegen.Dijkstra, tracegen.BellmanFord} {
		trace, err := fn(in)
		require.NoError(t, err)
		assert.Equal(t, []int{0, 4, domain.Infinity}, trace.Last().Graph.Distances)
		assert.NotContains(t, trace.Last().Graph.Visited, 2)
	}
}

func TestShortestPaths_NegativeWeights(t *testing.T) {
	in := domain.NewGraphInput(3, []domain.Edge{{U: 0, V: 1, Weight: 2}, {U: 1, V: 2, Weight: -1}})

	_, err := tracegen.Dijkstra(in)
	assert.ErrorIs(t, err, tracegen.ErrNegativeWeight)
	_, err = tracegen.FloydWarshall(in)
	assert.ErrorIs(t, err, tracegen.ErrNegativeWeight)

	// An undirected negative edge is a two-cycle of negative weight.
	_, err = tracegen.BellmanFord(in)
	assert.ErrorIs(t, err, tracegen.ErrNegativeCycle)

	// Spanning trees accept any weight.
	trace, err := tracegen.Kruskal(in)
	require.NoError(t, err)
	assert.Equal(t, 1, totalWeight(trace.Last().Graph.SelectedEdges))
}

func TestGraphAlgorithms_WrongInputKind(t *testing.T) {
	in := domain.NewArrayInput([]int{1, 2}, nil, nil)
	for _, a := range graphAlgorithms {
		_, err := a.fn(in)
		assert.ErrorIs(t, err, tracegen.ErrWrongInputKind, a.name)
	}
}
