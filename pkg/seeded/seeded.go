package seeded

import (
	"errors"
	"fmt"
	"slices"

	"github.com/aretw0/algotrace/pkg/domain"
)

const (
	multiplier = 9301
	increment  = 49297
	modulus    = 233280
)

// Value range of generated array elements (inclusive).
const (
	MinValue = 10
	MaxValue = 99
)

// MaxWeight is the largest generated edge weight.
const MaxWeight = 50

// ErrInvalidSize is returned for negative array sizes or vertex counts.
var ErrInvalidSize = errors.New("seeded: size must be non-negative")

// ErrInvalidDensity is returned when density lies outside [0,1].
var ErrInvalidDensity = errors.New("seeded: density must be within [0,1]")

// Next advances the recurrence once and returns the draw in [0,1) and the next state.
func Next(state int64) (float64, int64) {
	next := (normalize(state)*multiplier + increment) % modulus
	return float64(next) / modulus, next
}

// normalize reduces any seed into [0, modulus).
func normalize(state int64) int64 {
	state %= modulus
	if state < 0 {
		state += modulus
	}
	return state
}

// Generator holds the recurrence state for sequential draws.
// It is not safe for concurrent use.
type Generator struct {
	state int64
	draws int
}

// New creates a Generator seeded with seed.
func New(seed int64) *Generator {
	return &Generator{state: normalize(seed)}
}

// Float64 returns the next draw in [0,1).
func (g *Generator) Float64() float64 {
	v, next := Next(g.state)
	g.state = next
	g.draws++
	return v
}

// Intn returns floor(draw*n).
func (g *Generator) Intn(n int) int {
	return int(g.Float64() * float64(n))
}

// Draws reports how many values were consumed so far.
func (g *Generator) Draws() int {
	return g.draws
}

// GenerateArray returns size integers in [MinValue, MaxValue], one draw each.
func GenerateArray(size int, seed int64) ([]int, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	g := New(seed)
	out := make([]int, size)
	for i := range out {
		out[i] = MinValue + g.Intn(MaxValue-MinValue+1)
	}
	return out, nil
}

// GenerateSortedArray returns GenerateArray sorted ascending.
func GenerateSortedArray(size int, seed int64) ([]int, error) {
	values, err := GenerateArray(size, seed)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(values, func(a, b int) int { return a - b })
	return values, nil
}

// GenerateGraph builds a connected undirected weighted graph.
//
// Spanning step: for i in 1..vertexCount-1 draw a parent floor(draw*i), then a
// weight floor(draw*MaxWeight)+1. Density step: for every pair (u,v) with
// v >= u+2 in lexicographic order that is not yet connected, draw once and add
// the edge when the draw is below density, drawing its weight right after.
func GenerateGraph(vertexCount int, density float64, seed int64) ([]domain.Edge, error) {
	if vertexCount < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, vertexCount)
	}
	if density < 0 || density > 1 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDensity, density)
	}

	g := New(seed)
	edges := make([]domain.Edge, 0, vertexCount)
	connected := make(map[[2]int]bool)

	for i := 1; i < vertexCount; i++ {
		parent := g.Intn(i)
		weight := g.Intn(MaxWeight) + 1
		e := domain.NewEdge(parent, i, weight)
		edges = append(edges, e)
		connected[[2]int{e.U, e.V}] = true
	}

	for u := 0; u < vertexCount; u++ {
		for v := u + 2; v < vertexCount; v++ {
			if connected[[2]int{u, v}] {
				continue
			}
			if g.Float64() < density {
				weight := g.Intn(MaxWeight) + 1
				edges = append(edges, domain.NewEdge(u, v, weight))
				connected[[2]int{u, v}] = true
			}
		}
	}
	return edges, nil
}
