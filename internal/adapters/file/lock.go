package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/algotrace/pkg/ports"
	"github.com/gofrs/flock"
)

// Locker implements ports.DistributedLocker with advisory file locks,
// coordinating processes that share one run directory.
// The TTL is ignored: the OS releases the lock when its holder exits.
type Locker struct {
	dir   string
	retry time.Duration
}

// NewLocker creates a Locker keeping its lock files under dir.
func NewLocker(dir string) *Locker {
	return &Locker{dir: dir, retry: 50 * time.Millisecond}
}

// Lock blocks until the lock for key is held or ctx is done.
func (l *Locker) Lock(ctx context.Context, key string, _ time.Duration) (ports.UnlockFunc, error) {
	if err := os.MkdirAll(l.dir, 0755); err != nil {
		return nil, fmt.Errorf("creating lock directory: %w", err)
	}
	lock := flock.New(filepath.Join(l.dir, key+".lock"))

	locked, err := lock.TryLockContext(ctx, l.retry)
	if err != nil {
		return nil, fmt.Errorf("lock acquisition failed: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("lock held: %s", lock.Path())
	}
	return func(context.Context) error {
		return lock.Unlock()
	}, nil
}
