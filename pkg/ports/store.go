package ports

import (
	"context"

	"github.com/aretw0/algotrace/pkg/domain"
)

// DescriptorStore defines the interface for persisting run descriptors.
// A descriptor holds everything needed to regenerate a run's traces.
type DescriptorStore interface {
	// Save persists the descriptor under the given run ID, replacing any previous one.
	Save(ctx context.Context, runID string, d *domain.RunDescriptor) error

	// Load retrieves the descriptor for a given run ID.
	// Returns domain.ErrRunNotFound if the run does not exist.
	Load(ctx context.Context, runID string) (*domain.RunDescriptor, error)

	// Delete removes the descriptor for a given run ID. Deleting a missing run is not an error.
	Delete(ctx context.Context, runID string) error

	// List returns the IDs of every stored run.
	List(ctx context.Context) ([]string, error)
}
