package portledger

import "github.com/giantswarm/portledger/internal/registry"

// Sentinel errors for error inspection with errors.Is.
// These are immutable constants safe for use in wrapped error chain comparison.
const (
	// ErrLockTimeout is returned by NextPort when the cross-process lock
	// could not be acquired within the configured acquire timeout (or the
	// caller's earlier context deadline). Contention itself is transient
	// and retried internally; only the deadline surfaces.
	ErrLockTimeout = registry.ErrLockTimeout

	// ErrLockFailed is returned when creating or removing the lock marker
	// fails for a reason other than contention (permissions, I/O error).
	ErrLockFailed = registry.ErrLockFailed

	// ErrDoubleRelease indicates the lock was released more than once for
	// a single acquisition. This is a programming error guard; callers
	// using NextPort never release the lock themselves.
	ErrDoubleRelease = registry.ErrDoubleRelease

	// ErrLedgerWrite is returned by NextPort when persisting the updated
	// ledger fails. The port computed during that call was never durably
	// recorded and must not be treated as reserved.
	ErrLedgerWrite = registry.ErrLedgerWrite

	// ErrPortExhausted is returned by NextPort in bind-probe mode
	// (WithBindProbe) when no bindable port is found within the probe
	// attempt budget.
	ErrPortExhausted = registry.ErrPortExhausted
)
