// Package tracegen turns classic algorithms into step-by-step traces.
//
// Every generator has the signature Func: it takes a domain.Input, never
// mutates it, and returns an eagerly computed domain.Trace. A trace always
// holds at least one frame, its first frame shows the unmodified input and
// its last frame is marked Terminal.
//
// # Families
//
//   - Sorting: BubbleSort, SelectionSort, InsertionSort, MergeSort, QuickSort, HeapSort.
//     One frame per comparison and one per swap; every frame is a permutation of the input.
//   - Searching: LinearSearch, BinarySearch, JumpSearch.
//     Read the ascending SortedView (or Values) and the Target of the input.
//   - Minimum spanning tree: Prim, Kruskal.
//   - Single-source shortest path: Dijkstra, BellmanFord (source vertex 0).
//   - All pairs: FloydWarshall, TransitiveClosure.
//     One snapshot for the seed matrix (K = -1), then one per outer iteration k.
//
// Graph frames only ever grow their Visited and SelectedEdges sets; the edge
// under consideration is carried separately in CurrentEdge.
//
// Frames are full snapshots so that any index can be displayed without replay.
package tracegen
