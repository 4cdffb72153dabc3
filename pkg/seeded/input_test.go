package seeded_test

import (
	"testing"

	"github.com/aretw0/algotrace/pkg/domain"
	"github.com/aretw0/algotrace/pkg/seeded"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildInput_Array(t *testing.T) {
	in, err := seeded.BuildInput(domain.InputConfig{Kind: domain.InputArray, Size: 5, Seed: 42})
	require.NoError(t, err)
	require.Equal(t, domain.InputArray, in.Kind)

	assert.Equal(t, []int{89, 83, 96, 79, 60}, in.Array.Values)
	assert.Equal(t, []int{60, 79, 83, 89, 96}, in.Array.SortedView)
	require.NotNil(t, in.Array.Target)
	assert.Equal(t, 83, *in.Array.Target)
}

func TestBuildInput_ExplicitTarget(t *testing.T) {
	target := 7
	in, err := seeded.BuildInput(domain.InputConfig{Kind: domain.InputArray, Size: 5, Seed: 42, Target: &target})
	require.NoError(t, err)
	assert.Equal(t, 7, *in.Array.Target)

	target = 8
	assert.Equal(t, 7, *in.Array.Target, "input must not alias the config target")
}

func TestBuildInput_EmptyArray(t *testing.T) {
	in, err := seeded.BuildInput(domain.InputConfig{Kind: domain.InputArray, Size: 0, Seed: 1})
	require.NoError(t, err)
	assert.Empty(t, in.Array.Values)
	assert.Nil(t, in.Array.Target)
}

func TestBuildInput_Graph(t *testing.T) {
	in, err := seeded.BuildInput(domain.InputConfig{Kind: domain.InputGraph, VertexCount: 5, Density: 0.5, Seed: 42})
	require.NoError(t, err)
	assert.Equal(t, 5, in.Graph.VertexCount)
	assert.Equal(t, []domain.Edge{
		{U: 0, V: 1, Weight: 41},
		{U: 1, V: 2, Weight: 39},
		{U: 1, V: 3, Weight: 37},
		{U: 2, V: 4, Weight: 3},
		{U: 1, V: 4, Weight: 38},
	}, in.Graph.Edges)
	assert.NoError(t, in.Validate())
}

func TestBuildInput_Errors(t *testing.T) {
	_, err := seeded.BuildInput(domain.InputConfig{Kind: "tree"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = seeded.BuildInput(domain.InputConfig{Kind: domain.InputArray, Size: -1})
	assert.ErrorIs(t, err, seeded.ErrInvalidSize)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = seeded.BuildInput(domain.InputConfig{Kind: domain.InputGraph, VertexCount: 4, Density: 2})
	assert.ErrorIs(t, err, seeded.ErrInvalidDensity)
}

func TestBuildInput_Limits(t *testing.T) {
	_, err := seeded.BuildInput(domain.InputConfig{Kind: domain.InputArray, Size: seeded.MaxArraySize})
	assert.NoError(t, err)
	_, err = seeded.BuildInput(domain.InputConfig{Kind: domain.InputGraph, VertexCount: seeded.MaxVertexCount, Density: 0.5})
	assert.NoError(t, err)

	_, err = seeded.BuildInput(domain.InputConfig{Kind: domain.InputArray, Size: seeded.MaxArraySize + 1})
	assert.ErrorIs(t, err, seeded.ErrTooLarge)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = seeded.BuildInput(domain.InputConfig{Kind: domain.InputGraph, VertexCount: seeded.MaxVertexCount + 1})
	assert.ErrorIs(t, err, seeded.ErrTooLarge)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
