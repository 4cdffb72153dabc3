package tracegen

import "errors"

// Sentinel errors returned by the generators.
var (
	// ErrWrongInputKind indicates the generator was given an input of another family.
	ErrWrongInputKind = errors.New("tracegen: input kind not supported by algorithm")

	// ErrMissingTarget indicates a search input without a target value.
	ErrMissingTarget = errors.New("tracegen: search target is missing")

	// ErrUnsortedInput indicates that a search requiring ascending data received unsorted values.
	ErrUnsortedInput = errors.New("tracegen: search input must be ascending")

	// ErrDisconnected indicates that no spanning tree covers every vertex.
	ErrDisconnected = errors.New("tracegen: graph is disconnected")

	// ErrNegativeWeight indicates a negative edge weight where the algorithm forbids it.
	ErrNegativeWeight = errors.New("tracegen: negative edge weight encountered")

	// ErrNegativeCycle indicates a reachable negative cycle.
	ErrNegativeCycle = errors.New("tracegen: negative cycle detected")
)
