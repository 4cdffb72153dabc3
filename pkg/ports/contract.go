package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/algotrace/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contractDescriptor(id string) *domain.RunDescriptor {
	target := 42
	return &domain.RunDescriptor{
		ID:        id,
		Seed:      42,
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Input:     domain.NewArrayInput([]int{42, 17, 88}, []int{17, 42, 88}, &target),
		InputConfig: domain.InputConfig{
			Kind:   domain.InputArray,
			Size:   3,
			Seed:   42,
			Target: &target,
		},
		Algorithms: []string{"bubble-sort", "binary-search"},
		Settings:   domain.DefaultSettings(),
		Status:     domain.RunCompleted,
	}
}

// RunDescriptorStoreContract runs a suite of tests to verify that a DescriptorStore
// implementation adheres to the defined interface contract.
func RunDescriptorStoreContract(t *testing.T, store DescriptorStore) {
	ctx := context.Background()
	runID := "contract-test-run-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		d := contractDescriptor(runID)

		err := store.Save(ctx, runID, d)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, runID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, d.ID, loaded.ID)
		assert.Equal(t, d.Seed, loaded.Seed)
		assert.True(t, d.CreatedAt.Equal(loaded.CreatedAt))
		assert.Equal(t, d.Input, loaded.Input)
		assert.Equal(t, d.InputConfig, loaded.InputConfig)
		assert.Equal(t, d.Algorithms, loaded.Algorithms)
		assert.Equal(t, d.Settings, loaded.Settings)
		assert.Equal(t, d.Status, loaded.Status)
	})

	t.Run("Graph Input Round Trip", func(t *testing.T) {
		id := runID + "-graph"
		d := contractDescriptor(id)
		d.Input = domain.NewGraphInput(3, []domain.Edge{{U: 0, V: 1, Weight: 4}, {U: 1, V: 2, Weight: 7}})
		d.InputConfig = domain.InputConfig{Kind: domain.InputGraph, VertexCount: 3, Density: 0.25, Seed: 7}
		d.Algorithms = []string{"prim"}
		defer func() { _ = store.Delete(ctx, id) }()

		require.NoError(t, store.Save(ctx, id, d))
		loaded, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, d.Input, loaded.Input)
		assert.Equal(t, d.InputConfig, loaded.InputConfig)
	})

	t.Run("Overwrite", func(t *testing.T) {
		d := contractDescriptor(runID)
		d.Status = domain.RunPartial
		require.NoError(t, store.Save(ctx, runID, d))

		loaded, err := store.Load(ctx, runID)
		require.NoError(t, err)
		assert.Equal(t, domain.RunPartial, loaded.Status)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+runID)
		assert.ErrorIs(t, err, domain.ErrRunNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, runID, contractDescriptor(runID))
		require.NoError(t, err)

		err = store.Delete(ctx, runID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, runID)
		assert.ErrorIs(t, err, domain.ErrRunNotFound, "Load after Delete should return ErrRunNotFound")

		assert.NoError(t, store.Delete(ctx, runID), "Deleting twice should not fail")
	})

	t.Run("List", func(t *testing.T) {
		id1 := runID + "-1"
		id2 := runID + "-2"
		_ = store.Save(ctx, id1, contractDescriptor(id1))
		_ = store.Save(ctx, id2, contractDescriptor(id2))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		runs, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, runs, id1)
		assert.Contains(t, runs, id2)
	})
}
