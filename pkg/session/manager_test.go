package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/algotrace/pkg/adapters/memory"
	"github.com/aretw0/algotrace/pkg/adapters/redis"
	"github.com/aretw0/algotrace/pkg/domain"
	"github.com/aretw0/algotrace/pkg/session"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// SlowStore simulates latency to provoke race conditions if locking is missing.
type SlowStore struct {
	data map[string]domain.RunDescriptor
	mu   sync.Mutex
}

func (s *SlowStore) Save(ctx context.Context, runID string, d *domain.RunDescriptor) error {
	time.Sleep(5 * time.Millisecond) // Simulate IO
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		s.data = make(map[string]domain.RunDescriptor)
	}
	s.data[runID] = d.Clone()
	return nil
}

func (s *SlowStore) Load(ctx context.Context, runID string) (*domain.RunDescriptor, error) {
	time.Sleep(5 * time.Millisecond) // Simulate IO
	s.mu.Lock()
	defer s.mu.Unlock()

	if d, ok := s.data[runID]; ok {
		c := d.Clone()
		return &c, nil
	}
	return nil, domain.ErrRunNotFound
}

func (s *SlowStore) Delete(ctx context.Context, runID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, runID)
	return nil
}

func (s *SlowStore) List(ctx context.Context) ([]string, error) {
	return nil, nil
}

func TestManager_Record(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	mgr := session.NewManager(memory.NewStore(),
		session.WithClock(func() time.Time { return fixed }),
		session.WithIDGenerator(func() string { return "run-1" }),
	)
	ctx := context.Background()

	d := &domain.RunDescriptor{Seed: 42, Algorithms: []string{"prim"}}
	require.NoError(t, mgr.Record(ctx, d))
	assert.Equal(t, "run-1", d.ID)
	assert.Equal(t, fixed, d.CreatedAt)
	assert.Equal(t, domain.RunCreated, d.Status)

	loaded, err := mgr.Load(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, int64(42), loaded.Seed)

	ok, err := mgr.Exists(ctx, "run-1")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = mgr.Exists(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestManager_RecordGeneratesUUID(t *testing.T) {
	mgr := session.NewManager(memory.NewStore())
	d := &domain.RunDescriptor{}
	require.NoError(t, mgr.Record(context.Background(), d))
	assert.Len(t, d.ID, 36)
	assert.False(t, d.CreatedAt.IsZero())
}

func TestManager_SaveRequiresID(t *testing.T) {
	mgr := session.NewManager(memory.NewStore())
	assert.Error(t, mgr.Save(context.Background(), &domain.RunDescriptor{}))
}

func TestManager_UpdateSerialized(t *testing.T) {
	store := &SlowStore{}
	mgr := session.NewManager(store)
	ctx := context.Background()
	id := "race-test"

	require.NoError(t, mgr.Save(ctx, &domain.RunDescriptor{ID: id}))

	// Each update appends one algorithm; lost updates would drop some.
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := mgr.Update(ctx, id, func(d *domain.RunDescriptor) error {
				d.Algorithms = append(d.Algorithms, "x")
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	d, err := mgr.Load(ctx, id)
	require.NoError(t, err)
	assert.Len(t, d.Algorithms, 10)
}

func TestManager_UpdateErrors(t *testing.T) {
	mgr := session.NewManager(memory.NewStore())
	ctx := context.Background()

	_, err := mgr.Update(ctx, "missing", func(*domain.RunDescriptor) error { return nil })
	assert.ErrorIs(t, err, domain.ErrRunNotFound)

	require.NoError(t, mgr.Save(ctx, &domain.RunDescriptor{ID: "r", Status: domain.RunCreated}))
	boom := errors.New("boom")
	_, err = mgr.Update(ctx, "r", func(d *domain.RunDescriptor) error {
		d.Status = domain.RunFailed
		return boom
	})
	assert.ErrorIs(t, err, boom)

	d, err := mgr.Load(ctx, "r")
	require.NoError(t, err)
	assert.Equal(t, domain.RunCreated, d.Status)
}

func TestManager_DistributedLock(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	defer client.Close()

	store := redis.NewFromClient(client)
	mgr := session.NewManager(store, session.WithLocker(redis.NewLocker(client, "test:")))
	ctx := context.Background()

	d := &domain.RunDescriptor{ID: "dist"}
	require.NoError(t, mgr.Save(ctx, d))
	assert.False(t, mr.Exists("test:lock:dist"), "lock released after save")

	err = mgr.WithLock(ctx, "dist", func(ctx context.Context) error {
		assert.True(t, mr.Exists("test:lock:dist"), "lock held inside critical section")
		return nil
	})
	require.NoError(t, err)

	runs, err := mgr.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"dist"}, runs)
}
