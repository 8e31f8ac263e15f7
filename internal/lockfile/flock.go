package lockfile

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofrs/flock"

	"github.com/giantswarm/portledger/internal/fileutil"
)

// flockRetryInterval is the interval between consecutive attempts to acquire
// the advisory lock. 50ms balances responsiveness against CPU overhead from
// busy-polling.
const flockRetryInterval = 50 * time.Millisecond

// Compile-time check that FlockLock implements Locker.
var _ Locker = (*FlockLock)(nil)

// FlockLock is a Locker built on advisory flock(2)-style locking. Unlike
// MarkerLock, the kernel releases the lock automatically when the holding
// process exits, so a crashed holder cannot deadlock future acquirers. The
// lock file itself is left on disk after release; removing it could
// invalidate a lock concurrently acquired by another process through a
// different file descriptor.
type FlockLock struct {
	path string
	log  *slog.Logger
}

// NewFlockLock creates a FlockLock for the given path. If logger is nil,
// slog.Default() is used as a fallback.
func NewFlockLock(path string, logger *slog.Logger) *FlockLock {
	if logger == nil {
		logger = slog.Default()
	}
	return &FlockLock{
		path: path,
		log:  logger,
	}
}

// Path returns the lock file path.
func (l *FlockLock) Path() string {
	return l.path
}

// Acquire acquires an exclusive advisory lock on the lock file, retrying at
// flockRetryInterval until successful or the context is done. Context expiry
// surfaces as ErrAcquireTimeout; any other failure as ErrLockIO.
func (l *FlockLock) Acquire(ctx context.Context) (*Handle, error) {
	if err := fileutil.EnsureDirForFile(l.path); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLockIO, err)
	}

	fl := flock.New(l.path)

	locked, err := fl.TryLockContext(ctx, flockRetryInterval)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrAcquireTimeout, l.path, ctx.Err())
		}
		return nil, fmt.Errorf("%w: acquiring flock %s: %w", ErrLockIO, l.path, err)
	}
	if !locked {
		// TryLockContext normally returns an error when it fails, but its
		// contract does not rule out (false, nil).
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrAcquireTimeout, l.path, ctx.Err())
		}
		return nil, fmt.Errorf("%w: acquiring flock %s: lock not acquired", ErrLockIO, l.path)
	}

	return &Handle{path: l.path, release: func() error { return l.close(fl) }}, nil
}

// close releases the advisory lock and closes the file descriptor. Close()
// calls Unlock() internally, so no explicit Unlock is needed.
func (l *FlockLock) close(fl *flock.Flock) error {
	if err := fl.Close(); err != nil {
		return fmt.Errorf("%w: releasing flock %s: %w", ErrLockIO, l.path, err)
	}
	return nil
}
