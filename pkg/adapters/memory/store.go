package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/aretw0/algotrace/pkg/domain"
)

// Store implements ports.DescriptorStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]domain.RunDescriptor
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]domain.RunDescriptor),
	}
}

// Save persists a copy of the descriptor in memory.
func (s *Store) Save(ctx context.Context, runID string, d *domain.RunDescriptor) error {
	copied := d.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[runID] = copied
	return nil
}

// Load retrieves the descriptor from memory.
func (s *Store) Load(ctx context.Context, runID string) (*domain.RunDescriptor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.data[runID]
	if !ok {
		return nil, domain.ErrRunNotFound
	}

	// Copy on read so callers can't mutate the stored descriptor through slices.
	ret := d.Clone()
	return &ret, nil
}

// Delete removes the descriptor.
func (s *Store) Delete(ctx context.Context, runID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, runID)
	return nil
}

// List returns stored run IDs in lexical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]string, 0, len(s.data))
	for id := range s.data {
		runs = append(runs, id)
	}
	slices.Sort(runs)
	return runs, nil
}
