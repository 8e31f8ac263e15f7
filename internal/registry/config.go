package registry

import (
	"errors"
	"fmt"
	"time"
)

// LockStrategy selects the cross-process locking mechanism guarding the ledger.
type LockStrategy int

const (
	// LockMarker claims the lock by atomically creating a marker file; the
	// marker's existence is the sole ownership signal. A process killed
	// while holding the lock leaves the marker behind, blocking future
	// acquirers until StaleLockAge (if configured) clears it. This is the
	// default strategy.
	LockMarker LockStrategy = iota

	// LockFlock uses an advisory flock(2)-style lock. The kernel releases
	// it automatically when the holding process exits, so a crashed holder
	// cannot deadlock future acquirers. The lock file remains on disk
	// after release.
	LockFlock
)

// IsValid reports whether s is a recognized LockStrategy value.
func (s LockStrategy) IsValid() bool {
	switch s {
	case LockMarker, LockFlock:
		return true
	default:
		return false
	}
}

// String returns the name of the strategy.
func (s LockStrategy) String() string {
	switch s {
	case LockMarker:
		return "LockMarker"
	case LockFlock:
		return "LockFlock"
	default:
		return fmt.Sprintf("LockStrategy(%d)", int(s))
	}
}

// maxPort is the highest valid TCP port number.
const maxPort = 65535

// Config holds configuration for Registry instances. All fields are
// immutable after construction via New; concurrent NextPort calls read them
// without synchronization, relying on this guarantee.
type Config struct {
	// LedgerPath is the file holding the JSON array of allocated ports.
	// All cooperating processes must agree on this path.
	LedgerPath string

	// LockPath is the filesystem path used as the lock token. It must not
	// collide with LedgerPath.
	LockPath string

	// Baseline is the floor port used both to seed the ledger on first
	// access and as the reset value when capacity is exceeded.
	// Default: 3010.
	Baseline int

	// Capacity is the maximum ledger length before the history is reset
	// back to [Baseline]. Default: 100.
	Capacity int

	// AcquireTimeout bounds how long NextPort may wait for the lock before
	// failing with ErrLockTimeout instead of hanging a test run forever.
	// Default: 10 seconds.
	AcquireTimeout time.Duration

	// StaleLockAge, when positive, treats a lock marker older than this
	// age as abandoned by a crashed holder and forcibly clears it. Only
	// meaningful with LockMarker. 0 disables clearing (the default).
	StaleLockAge time.Duration

	// Strategy selects the locking mechanism. Default: LockMarker.
	Strategy LockStrategy

	// BindProbe, when true, verifies inside the critical section that the
	// computed port is actually bindable on loopback, skipping ports held
	// by processes outside the registry's control. Default: false, which
	// preserves the pure max+1 allocation policy.
	BindProbe bool
}

// Validate checks all Config invariants and returns an error describing
// every violation found. It uses errors.Join to report multiple issues at
// once, allowing callers to fix all problems in a single pass rather than
// playing whack-a-mole with one error at a time.
//
// Validate is called by New, which panics on error since invalid
// configuration is a programmer error best caught at construction time.
func (c Config) Validate() error {
	var errs []error

	if c.LedgerPath == "" {
		errs = append(errs, errors.New("ledger path must not be empty"))
	}
	if c.LockPath == "" {
		errs = append(errs, errors.New("lock path must not be empty"))
	}
	if c.LedgerPath != "" && c.LedgerPath == c.LockPath {
		errs = append(errs, fmt.Errorf("lock path must not collide with ledger path %s", c.LedgerPath))
	}
	if c.Baseline <= 0 || c.Baseline > maxPort {
		errs = append(errs, fmt.Errorf("baseline must be in range 1..%d, got %d", maxPort, c.Baseline))
	}
	if c.Capacity <= 0 {
		errs = append(errs, fmt.Errorf("capacity must be greater than 0, got %d", c.Capacity))
	}
	if c.AcquireTimeout <= 0 {
		errs = append(errs, fmt.Errorf("acquire timeout must be greater than 0, got %s", c.AcquireTimeout))
	}
	if c.StaleLockAge < 0 {
		errs = append(errs, fmt.Errorf("stale lock age must not be negative, got %s", c.StaleLockAge))
	}
	if !c.Strategy.IsValid() {
		errs = append(errs, fmt.Errorf("invalid lock strategy: %v", c.Strategy))
	}

	return errors.Join(errs...)
}
