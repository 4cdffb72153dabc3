package tracegen_test

import (
	"slices"
	"testing"

	"github.com/aretw0/algotrace/pkg/domain"
	"github.com/aretw0/algotrace/pkg/tracegen"
	"github.com/stretchr/testify/require"
)

type namedFunc struct {
	name string
	fn   tracegen.Func
}

var sorters = []namedFunc{
	{"bubble", tracegen.BubbleSort},
	{"selection", tracegen.SelectionSort},
	{"insertion", tracegen.InsertionSort},
	{"merge", tracegen.MergeSort},
	{"quick", tracegen.QuickSort},
	{"heap", tracegen.HeapSort},
}

var searchers = []namedFunc{
	{"linear", tracegen.LinearSearch},
	{"binary", tracegen.BinarySearch},
	{"jump", tracegen.JumpSearch},
}

var graphAlgorithms = []namedFunc{
	{"prim", tracegen.Prim},
	{"kruskal", tracegen.Kruskal},
	{"dijkstra", tracegen.Dijkstra},
	{"bellman-ford", tracegen.BellmanFord},
	{"floyd-warshall", tracegen.FloydWarshall},
	{"transitive-closure", tracegen.TransitiveClosure},
}

func intPtr(v int) *int { return &v }

func searchInput(sorted []int, target int) domain.Input {
	return domain.NewArrayInput(sorted, sorted, intPtr(target))
}

// triangle: 0-1 (1), 1-2 (2), 0-2 (5). The shortest 0→2 path goes through 1.
func triangle() domain.Input {
	return domain.NewGraphInput(3, []domain.Edge{
		{U: 0, V: 1, Weight: 1},
		{U: 1, V: 2, Weight: 2},
		{U: 0, V: 2, Weight: 5},
	})
}

// requireTraceShape checks the contract shared by every generator.
func requireTraceShape(t *testing.T, trace domain.Trace) {
	t.Helper()
	require.NotEmpty(t, trace)
	for i, f := range trace {
		require.Equal(t, i, f.Index, "frame index")
		require.Equal(t, i == len(trace)-1, f.Terminal, "only the last frame is terminal (frame %d)", i)
	}
}

func sortedCopy(values []int) []int {
	out := slices.Clone(values)
	slices.Sort(out)
	return out
}
