package lockfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/giantswarm/portledger/internal/fileutil"
)

const (
	// initialRetryInterval is the first backoff delay after a contended
	// acquisition attempt. The critical sections guarded by this lock are
	// tiny file read/writes, so the first retry comes quickly.
	initialRetryInterval = time.Millisecond

	// maxRetryInterval caps the exponential backoff. 50ms balances
	// responsiveness (low wait after the holder releases) against CPU
	// overhead from busy-polling.
	maxRetryInterval = 50 * time.Millisecond

	// markerMode is the permission mode for the lock marker file.
	markerMode = 0o644
)

// Compile-time check that MarkerLock implements Locker.
var _ Locker = (*MarkerLock)(nil)

// MarkerLock is a cooperative cross-process lock whose ownership signal is
// the existence of a marker file. Claiming the lock is the atomic
// O_CREATE|O_EXCL creation of the marker; releasing is its removal.
//
// If the holding process dies before Release, the marker remains and blocks
// all future acquirers. Setting staleAge > 0 mitigates this: a marker whose
// modification time is older than staleAge is considered abandoned and
// forcibly cleared. This trades liveness for a correctness risk (clearing a
// marker whose holder is merely slow re-enables the double-allocation the
// lock exists to prevent), so it is disabled by default.
type MarkerLock struct {
	path     string
	staleAge time.Duration
	log      *slog.Logger
}

// NewMarkerLock creates a MarkerLock for the given path. staleAge of 0
// disables stale-marker clearing. If logger is nil, slog.Default() is used
// as a fallback.
func NewMarkerLock(path string, staleAge time.Duration, logger *slog.Logger) *MarkerLock {
	if logger == nil {
		logger = slog.Default()
	}
	return &MarkerLock{
		path:     path,
		staleAge: staleAge,
		log:      logger,
	}
}

// Path returns the marker path.
func (l *MarkerLock) Path() string {
	return l.path
}

// Acquire attempts the atomic create-if-absent operation in a loop, backing
// off exponentially between attempts while the marker is held by another
// process. It returns ErrAcquireTimeout (wrapping the context error) when
// ctx expires, and ErrLockIO for any create failure other than contention.
func (l *MarkerLock) Acquire(ctx context.Context) (*Handle, error) {
	if err := fileutil.EnsureDirForFile(l.path); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLockIO, err)
	}

	delay := initialRetryInterval
	for {
		f, err := os.OpenFile(l.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, markerMode)
		if err == nil {
			l.writeOwner(f)
			return &Handle{path: l.path, release: l.removeMarker}, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("%w: creating marker %s: %w", ErrLockIO, l.path, err)
		}

		// Contended: another process holds the marker.
		if l.staleAge > 0 {
			l.clearStale()
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s: %w", ErrAcquireTimeout, l.path, ctx.Err())
		case <-time.After(delay):
		}

		delay *= 2
		if delay > maxRetryInterval {
			delay = maxRetryInterval
		}
	}
}

// writeOwner records the holder's PID and claim time in the marker. The
// content is diagnostic only; ownership is signaled purely by existence.
// Write errors are logged and ignored since the lock is already held.
func (l *MarkerLock) writeOwner(f *os.File) {
	if _, err := fmt.Fprintf(f, "pid=%d time=%s\n", os.Getpid(), time.Now().Format(time.RFC3339)); err != nil {
		l.log.Debug("failed to write lock marker owner info", "path", l.path, "error", err)
	}
	if err := f.Close(); err != nil {
		l.log.Debug("failed to close lock marker", "path", l.path, "error", err)
	}
}

// removeMarker removes the marker file, making the lock available to the
// next waiter.
func (l *MarkerLock) removeMarker() error {
	if err := os.Remove(l.path); err != nil {
		return fmt.Errorf("%w: removing marker %s: %w", ErrLockIO, l.path, err)
	}
	return nil
}

// clearStale removes the marker if it is older than staleAge. The stat and
// remove are not atomic: between them the holder may release and another
// process claim a fresh marker, which this call would then delete. The
// window is accepted because staleAge is expected to be orders of magnitude
// larger than the critical section.
func (l *MarkerLock) clearStale() {
	info, err := os.Stat(l.path)
	if err != nil {
		// Marker gone (holder released) or unreadable; the next acquire
		// attempt will sort it out either way.
		return
	}
	age := time.Since(info.ModTime())
	if age < l.staleAge {
		return
	}
	if err := os.Remove(l.path); err != nil {
		l.log.Debug("failed to clear stale lock marker", "path", l.path, "error", err)
		return
	}
	l.log.Warn("cleared stale lock marker", "path", l.path, "age", age)
}
