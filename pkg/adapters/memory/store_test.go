package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/algotrace/pkg/adapters/memory"
	"github.com/aretw0/algotrace/pkg/domain"
	"github.com/aretw0/algotrace/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunDescriptorStoreContract(t, store)
}

func TestMemoryStore_Isolation(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	d := &domain.RunDescriptor{
		ID:         "r1",
		Input:      domain.NewArrayInput([]int{3, 2, 1}, nil, nil),
		Algorithms: []string{"heap-sort"},
	}
	require.NoError(t, store.Save(ctx, "r1", d))

	d.Input.Array.Values[0] = 99
	d.Algorithms[0] = "changed"

	loaded, err := store.Load(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2, 1}, loaded.Input.Array.Values)
	assert.Equal(t, []string{"heap-sort"}, loaded.Algorithms)

	loaded.Algorithms[0] = "mutated"
	again, err := store.Load(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "heap-sort", again.Algorithms[0])
}
