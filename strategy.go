package portledger

import "github.com/giantswarm/portledger/internal/registry"

// LockStrategy selects the cross-process locking mechanism guarding the
// ledger. The alias keeps internal/registry out of public API signatures
// while exposing the IsValid and String methods.
type LockStrategy = registry.LockStrategy

const (
	// LockMarker claims the lock by atomically creating a marker file; the
	// marker's existence is the sole ownership signal. A process killed
	// while holding the lock leaves the marker behind, blocking future
	// acquirers until WithStaleLockAge (if configured) clears it. This is
	// the default strategy.
	LockMarker = registry.LockMarker

	// LockFlock uses an advisory flock(2)-style lock. The kernel releases
	// it automatically when the holding process exits, so a crashed holder
	// cannot deadlock future acquirers.
	LockFlock = registry.LockFlock
)
