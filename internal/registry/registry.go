package registry

import (
	"context"
	"fmt"

	"github.com/giantswarm/portledger/internal/ledger"
	"github.com/giantswarm/portledger/internal/lockfile"
	"github.com/giantswarm/portledger/internal/netutil"
	"github.com/giantswarm/portledger/internal/sentinel"
)

// ErrLedgerWrite is returned by NextPort when persisting the updated ledger
// fails. The port computed during that call was never durably recorded and
// must not be treated as reserved.
const ErrLedgerWrite = sentinel.Error("persisting port ledger failed")

// ErrPortExhausted is returned by NextPort in bind-probe mode when no
// bindable port is found within the probe attempt budget.
const ErrPortExhausted = sentinel.Error("no bindable port found")

// ErrLockTimeout is re-exported from lockfile so the public API imports only
// from registry, preserving the layering: public API → registry → lockfile.
const ErrLockTimeout = lockfile.ErrAcquireTimeout

// ErrLockFailed is re-exported from lockfile so the public API imports only
// from registry, preserving the layering: public API → registry → lockfile.
const ErrLockFailed = lockfile.ErrLockIO

// ErrDoubleRelease is re-exported from lockfile so the public API imports
// only from registry, preserving the layering: public API → registry → lockfile.
const ErrDoubleRelease = lockfile.ErrDoubleRelease

// maxProbeAttempts is the maximum number of candidate ports the bind probe
// will try before giving up. This guards against pathological cases where a
// long run of consecutive ports is held by other processes.
const maxProbeAttempts = 20

// Registry hands out unique listening ports to cooperating processes. Every
// allocation is a read-modify-write of the shared ledger file executed under
// the cross-process lock, so no two calls, whether in the same process or in
// different ones, ever observe the same ledger state between read and write.
//
// It is safe for concurrent use by multiple goroutines.
type Registry struct {
	cfg  Config
	lock lockfile.Locker
}

// New creates a Registry with the provided configuration. This performs no
// I/O; the ledger is created lazily on the first allocation.
//
// Panics if cfg.Validate() reports any errors. Invalid configuration is a
// programmer error that should be caught at construction time.
func New(cfg Config) *Registry {
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("portledger: invalid registry config: %v", err))
	}
	return &Registry{
		cfg:  cfg,
		lock: newLocker(cfg),
	}
}

// newLocker builds the Locker selected by cfg.Strategy.
func newLocker(cfg Config) lockfile.Locker {
	switch cfg.Strategy {
	case LockFlock:
		return lockfile.NewFlockLock(cfg.LockPath, Logger())
	default:
		return lockfile.NewMarkerLock(cfg.LockPath, cfg.StaleLockAge, Logger())
	}
}

// NextPort allocates and returns the next free port. The allocation is
// globally serialized: the ledger is read, the next port computed as
// max(history)+1, the history appended and bounded, and the result persisted,
// all under the cross-process lock.
//
// An absent or corrupted ledger self-heals to the baseline state and never
// fails the call. A persist failure is fatal and surfaces wrapped in
// ErrLedgerWrite; the lock is still released on that path. Waiting for the
// lock is bounded by the configured acquire timeout (and any earlier
// deadline on ctx), surfacing ErrLockTimeout instead of hanging.
func (r *Registry) NextPort(ctx context.Context) (int, error) {
	port := 0
	err := r.withLedger(ctx, func(led *ledger.Ledger) error {
		next := led.Max() + 1
		if r.cfg.BindProbe {
			bindable, err := probeFrom(next)
			if err != nil {
				return err
			}
			next = bindable
		}

		led.Append(next)
		if led.ResetIfOver(r.cfg.Capacity, r.cfg.Baseline) {
			Logger().Debug("port ledger reached capacity, history reset",
				"capacity", r.cfg.Capacity, "baseline", r.cfg.Baseline)
		}

		if err := led.Save(r.cfg.LedgerPath); err != nil {
			return fmt.Errorf("%w: %w", ErrLedgerWrite, err)
		}

		port = next
		return nil
	})
	if err != nil {
		return 0, err
	}

	Logger().Debug("allocated port", "port", port)
	return port, nil
}

// Reset truncates the ledger back to [baseline] under the lock, discarding
// all history. Useful between test suites that want a predictable low range.
func (r *Registry) Reset(ctx context.Context) error {
	return r.withLedger(ctx, func(*ledger.Ledger) error {
		if err := ledger.New(r.cfg.Baseline).Save(r.cfg.LedgerPath); err != nil {
			return fmt.Errorf("%w: %w", ErrLedgerWrite, err)
		}
		return nil
	})
}

// Snapshot returns a copy of the current allocation history, read under the
// lock so it is never a torn view of a concurrent update.
func (r *Registry) Snapshot(ctx context.Context) ([]int, error) {
	var ports []int
	err := r.withLedger(ctx, func(led *ledger.Ledger) error {
		ports = led.Ports()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ports, nil
}

// withLedger runs fn with the freshly loaded ledger while holding the
// cross-process lock, bounding lock acquisition by the configured timeout.
// The lock is released on every exit path of fn.
func (r *Registry) withLedger(ctx context.Context, fn func(*ledger.Ledger) error) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.AcquireTimeout)
	defer cancel()

	return lockfile.WithLock(ctx, r.lock, func() error {
		return fn(ledger.Load(r.cfg.LedgerPath, r.cfg.Baseline, Logger()))
	})
}

// probeFrom returns the first bindable port at or above start, trying at
// most maxProbeAttempts consecutive candidates.
func probeFrom(start int) (int, error) {
	for candidate := start; candidate < start+maxProbeAttempts; candidate++ {
		if netutil.ProbeTCP(candidate) {
			return candidate, nil
		}
		Logger().Debug("port in use by another process, advancing", "port", candidate)
	}
	return 0, fmt.Errorf("%w: exhausted %d attempts starting at %d",
		ErrPortExhausted, maxProbeAttempts, start)
}
