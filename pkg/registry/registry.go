package registry

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/aretw0/algotrace/pkg/domain"
	"github.com/aretw0/algotrace/pkg/tracegen"
)

// ErrUnknownAlgorithm is returned when an id is not in the catalogue.
// It wraps domain.ErrConfig so callers can treat it as a configuration error.
var ErrUnknownAlgorithm = fmt.Errorf("%w: unknown algorithm", domain.ErrConfig)

// ErrInvalidAlgorithm is returned by Register for incomplete entries.
var ErrInvalidAlgorithm = errors.New("registry: algorithm needs an id and a generator")

// Family groups algorithms that share an input kind and frame payload.
type Family string

const (
	FamilySorting   Family = "sorting"
	FamilySearching Family = "searching"
	FamilyMST       Family = "mst"
	FamilySSSP      Family = "sssp"
	FamilyAPSP      Family = "apsp"
)

// InputKind reports the input every member of the family consumes.
func (f Family) InputKind() domain.InputKind {
	switch f {
	case FamilySorting, FamilySearching:
		return domain.InputArray
	default:
		return domain.InputGraph
	}
}

// Algorithm is one catalogue entry.
type Algorithm struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Family    Family           `json:"family"`
	InputKind domain.InputKind `json:"input_kind"`
	Generate  tracegen.Func    `json:"-"`
}

// Registry manages the available algorithms.
type Registry struct {
	mu    sync.RWMutex
	algos map[string]Algorithm
	order []string
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		algos: make(map[string]Algorithm),
	}
}

// Register adds an algorithm to the registry.
// If an algorithm with the same id exists, it is overwritten in place.
// An empty InputKind is derived from the family.
func (r *Registry) Register(a Algorithm) error {
	if a.ID == "" || a.Generate == nil {
		return ErrInvalidAlgorithm
	}
	if a.InputKind == "" {
		a.InputKind = a.Family.InputKind()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.algos[a.ID]; !ok {
		r.order = append(r.order, a.ID)
	}
	r.algos[a.ID] = a
	return nil
}

// Lookup returns the algorithm registered under id.
func (r *Registry) Lookup(id string) (Algorithm, error) {
	r.mu.RLock()
	a, ok := r.algos[id]
	r.mu.RUnlock()

	if !ok {
		return Algorithm{}, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, id)
	}
	return a, nil
}

// List returns every algorithm in registration order.
func (r *Registry) List() []Algorithm {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Algorithm, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.algos[id])
	}
	return out
}

// Family returns the algorithms of one family in registration order.
func (r *Registry) Family(f Family) []Algorithm {
	var out []Algorithm
	for _, a := range r.List() {
		if a.Family == f {
			out = append(out, a)
		}
	}
	return out
}

// IDs returns the registered ids in registration order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.order)
}

// Default returns a registry holding the full built-in catalogue.
func Default() *Registry {
	r := NewRegistry()
	for _, a := range builtin {
		// Built-in entries are always complete.
		_ = r.Register(a)
	}
	return r
}

var builtin = []Algorithm{
	{ID: "bubble-sort", Name: "Bubble Sort", Family: FamilySorting, Generate: tracegen.BubbleSort},
	{ID: "selection-sort", Name: "Selection Sort", Family: FamilySorting, Generate: tracegen.SelectionSort},
	{ID: "insertion-sort", Name: "Insertion Sort", Family: FamilySorting, Generate: tracegen.InsertionSort},
	{ID: "merge-sort", Name: "Merge Sort", Family: FamilySorting, Generate: tracegen.MergeSort},
	{ID: "quick-sort", Name: "Quick Sort", Family: FamilySorting, Generate: tracegen.QuickSort},
	{ID: "heap-sort", Name: "Heap Sort", Family: FamilySorting, Generate: tracegen.HeapSort},

	{ID: "linear-search", Name: "Linear Search", Family: FamilySearching, Generate: tracegen.LinearSearch},
	{ID: "binary-search", Name: "Binary Search", Family: FamilySearching, Generate: tracegen.BinarySearch},
	{ID: "jump-search", Name: "Jump Search", Family: FamilySearching, Generate: tracegen.JumpSearch},

	{ID: "prim", Name: "Prim's MST", Family: FamilyMST, Generate: tracegen.Prim},
	{ID: "kruskal", Name: "Kruskal's MST", Family: FamilyMST, Generate: tracegen.Kruskal},

	{ID: "dijkstra", Name: "Dijkstra", Family: FamilySSSP, Generate: tracegen.Dijkstra},
	{ID: "bellman-ford", Name: "Bellman-Ford", Family: FamilySSSP, Generate: tracegen.BellmanFord},

	{ID: "floyd-warshall", Name: "Floyd-Warshall", Family: FamilyAPSP, Generate: tracegen.FloydWarshall},
	{ID: "transitive-closure", Name: "Transitive Closure", Family: FamilyAPSP, Generate: tracegen.TransitiveClosure},
}
