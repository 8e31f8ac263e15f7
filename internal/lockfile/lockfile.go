package lockfile

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/giantswarm/portledger/internal/sentinel"
)

// ErrAcquireTimeout is returned by Acquire when the context expires before
// the lock could be claimed. Contention itself is transient and retried
// internally; only the deadline surfaces as an error.
const ErrAcquireTimeout = sentinel.Error("lock acquisition timed out")

// ErrLockIO is returned when creating or removing the lock marker fails for
// a reason other than contention (permissions, I/O error). It is always
// wrapped together with the underlying error.
const ErrLockIO = sentinel.Error("lock file operation failed")

// ErrDoubleRelease is returned by Handle.Release when called more than once.
const ErrDoubleRelease = sentinel.Error("lock released more than once")

// Locker serializes a critical section across cooperating processes that
// agree on a lock path.
type Locker interface {
	// Acquire blocks until the lock is claimed, the context is canceled,
	// or a non-contention failure occurs. On success the returned Handle
	// owns the lock and must be released exactly once.
	Acquire(ctx context.Context) (*Handle, error)

	// Path returns the filesystem path used as the lock token.
	Path() string
}

// Handle represents exclusive ownership of a lock. At most one Handle for a
// given lock path is live at any time, system-wide; this is enforced by the
// atomicity of the underlying filesystem operation, not by in-process
// coordination.
type Handle struct {
	path     string
	released atomic.Bool
	release  func() error
}

// Release gives up ownership, making the lock available to the next waiter.
// It must be called exactly once per successful Acquire. A second call
// returns ErrDoubleRelease without touching the filesystem, so a racing
// duplicate release cannot remove a marker concurrently claimed by another
// process.
func (h *Handle) Release() error {
	if h.released.Swap(true) {
		return fmt.Errorf("%w: %s", ErrDoubleRelease, h.path)
	}
	return h.release()
}

// Path returns the lock path this handle owns.
func (h *Handle) Path() string {
	return h.path
}

// WithLock acquires l, runs fn, and releases the lock on every exit path of
// fn (normal return, error, or panic unwinding via the deferred release).
// A release failure is reported only when fn itself succeeded, so the
// original error is never masked.
func WithLock(ctx context.Context, l Locker, fn func() error) (retErr error) {
	h, err := l.Acquire(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := h.Release(); releaseErr != nil && retErr == nil {
			retErr = releaseErr
		}
	}()

	return fn()
}
