package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"log/slog"

	"github.com/aretw0/algotrace/internal/logging"
	"github.com/aretw0/algotrace/pkg/domain"
	"github.com/aretw0/algotrace/pkg/ports"
	"github.com/google/uuid"
)

// DefaultLockTTL bounds how long a distributed lock survives a crashed holder.
const DefaultLockTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates run descriptor access, ensuring safe concurrent operations.
// It uses Reference Counting to garbage collect unused locks.
type Manager struct {
	store ports.DescriptorStore

	mu    sync.Mutex            // Global lock for the map
	locks map[string]*lockEntry // Map of active locks

	locker  ports.DistributedLocker // Optional distributed locker
	lockTTL time.Duration
	logger  *slog.Logger
	now     func() time.Time
	newID   func() string
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL sets the TTL requested for distributed locks.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.lockTTL = ttl
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithClock overrides the time source used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// WithIDGenerator overrides the run ID generator. Defaults to random UUIDs.
func WithIDGenerator(fn func() string) Option {
	return func(m *Manager) {
		m.newID = fn
	}
}

// NewManager creates a new Manager with the given persistence store.
func NewManager(store ports.DescriptorStore, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		locks:   make(map[string]*lockEntry),
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(), // Default to no-op
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(runID) after unlocking.
func (m *Manager) acquire(runID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[runID]
	if !exists {
		entry = &lockEntry{}
		m.locks[runID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(runID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[runID]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, runID)
	}
}

// Record persists a new descriptor. A missing ID is generated and a zero
// CreatedAt is stamped; both are written back into d.
func (m *Manager) Record(ctx context.Context, d *domain.RunDescriptor) error {
	if d.ID == "" {
		d.ID = m.newID()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = m.now().UTC()
	}
	if d.Status == "" {
		d.Status = domain.RunCreated
	}
	return m.Save(ctx, d)
}

// Load retrieves an existing run descriptor from the store.
func (m *Manager) Load(ctx context.Context, runID string) (*domain.RunDescriptor, error) {
	var d *domain.RunDescriptor
	err := m.WithLock(ctx, runID, func(ctx context.Context) error {
		var err error
		d, err = m.store.Load(ctx, runID)
		return err
	})
	return d, err
}

// Save persists the descriptor under its ID.
func (m *Manager) Save(ctx context.Context, d *domain.RunDescriptor) error {
	if d.ID == "" {
		return fmt.Errorf("run descriptor has no id")
	}
	return m.WithLock(ctx, d.ID, func(ctx context.Context) error {
		return m.store.Save(ctx, d.ID, d)
	})
}

// Update loads a descriptor, applies fn and saves the result, all under the run's lock.
// Nothing is written when fn returns an error.
func (m *Manager) Update(ctx context.Context, runID string, fn func(*domain.RunDescriptor) error) (*domain.RunDescriptor, error) {
	var d *domain.RunDescriptor
	err := m.WithLock(ctx, runID, func(ctx context.Context) error {
		var err error
		d, err = m.store.Load(ctx, runID)
		if err != nil {
			return err
		}
		if err := fn(d); err != nil {
			return err
		}
		d.ID = runID
		return m.store.Save(ctx, runID, d)
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Delete removes the run from the store.
func (m *Manager) Delete(ctx context.Context, runID string) error {
	return m.WithLock(ctx, runID, func(ctx context.Context) error {
		return m.store.Delete(ctx, runID)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Exists reports whether a run is stored.
func (m *Manager) Exists(ctx context.Context, runID string) (bool, error) {
	_, err := m.Load(ctx, runID)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, domain.ErrRunNotFound):
		return false, nil
	default:
		return false, err
	}
}

// Store returns the underlying descriptor store.
func (m *Manager) Store() ports.DescriptorStore {
	return m.store
}

// WithLock executes a function while holding the lock for the run.
func (m *Manager) WithLock(ctx context.Context, runID string, fn func(context.Context) error) error {
	entry := m.acquire(runID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(runID)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, runID, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"run_id", runID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
