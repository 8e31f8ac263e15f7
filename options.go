package portledger

import (
	"fmt"
	"path/filepath"
	"time"
)

// requirePositive panics if v <= 0 with a descriptive message.
func requirePositive[T int | time.Duration](name string, v T) {
	if v <= 0 {
		panic(fmt.Sprintf("portledger: %s must be greater than 0, got %v", name, v))
	}
}

// requireNonEmpty panics if s is empty with a descriptive message.
func requireNonEmpty(name, s string) {
	if s == "" {
		panic(fmt.Sprintf("portledger: %s must not be empty", name))
	}
}

// Option configures a Registry during construction via NewRegistry.
// Each With* function returns an Option that sets a specific field.
//
// Several With* functions panic on invalid input (empty paths, non-positive
// values). These panics are intentional: option values are typically
// compile-time constants or package-level variables, so an invalid value
// indicates a programmer error rather than a runtime condition. The pattern
// mirrors [regexp.MustCompile]: fail fast during initialization instead of
// returning errors that would be universally fatal anyway.
type Option func(*registryConfig)

// WithDir places both the ledger file and the lock file inside dir, using
// DefaultLedgerFileName and DefaultLockFileName. This is the simplest way
// for cooperating processes to agree on the shared paths: point them all at
// the same directory. Overridable per-file via WithLedgerPath and
// WithLockPath.
//
// Panics if dir is empty.
func WithDir(dir string) Option {
	requireNonEmpty("directory", dir)
	return func(c *registryConfig) {
		c.LedgerPath = filepath.Join(dir, DefaultLedgerFileName)
		c.LockPath = filepath.Join(dir, DefaultLockFileName)
	}
}

// WithLedgerPath sets the file holding the allocation history. All
// cooperating processes must agree on this path.
//
// Panics if path is empty.
func WithLedgerPath(path string) Option {
	requireNonEmpty("ledger path", path)
	return func(c *registryConfig) {
		c.LedgerPath = path
	}
}

// WithLockPath sets the filesystem path used as the lock token. It must not
// collide with the ledger path; the collision is caught at construction.
//
// Panics if path is empty.
func WithLockPath(path string) Option {
	requireNonEmpty("lock path", path)
	return func(c *registryConfig) {
		c.LockPath = path
	}
}

// WithBaseline sets the floor port used to seed the ledger and as the reset
// value when the history overflows.
//
// Default: 3010.
//
// Panics if port is outside 1..65535.
func WithBaseline(port int) Option {
	if port <= 0 || port > 65535 {
		panic(fmt.Sprintf("portledger: baseline must be in range 1..65535, got %d", port))
	}
	return func(c *registryConfig) {
		c.Baseline = port
	}
}

// WithCapacity sets the maximum ledger length before the history resets back
// to the baseline. Smaller values reuse the low port range sooner.
//
// Default: 100.
//
// Panics if n <= 0.
func WithCapacity(n int) Option {
	requirePositive("capacity", n)
	return func(c *registryConfig) {
		c.Capacity = n
	}
}

// WithAcquireTimeout bounds how long NextPort may wait for the cross-process
// lock before failing with ErrLockTimeout. The caller's context deadline, if
// earlier, takes precedence.
//
// Default: 10 seconds.
//
// Panics if d <= 0.
func WithAcquireTimeout(d time.Duration) Option {
	requirePositive("acquire timeout", d)
	return func(c *registryConfig) {
		c.AcquireTimeout = d
	}
}

// WithStaleLockAge enables clearing of abandoned lock markers: a marker older
// than d is treated as left behind by a crashed holder and forcibly removed.
// Only meaningful with the LockMarker strategy.
//
// Choose d orders of magnitude larger than the expected critical section
// (milliseconds); clearing a marker whose holder is merely slow re-enables
// the double allocation the lock exists to prevent.
//
// Default: disabled.
//
// Panics if d <= 0.
func WithStaleLockAge(d time.Duration) Option {
	requirePositive("stale lock age", d)
	return func(c *registryConfig) {
		c.StaleLockAge = d
	}
}

// WithLockStrategy selects the cross-process locking mechanism. See
// LockMarker and LockFlock for the trade-offs.
//
// Default: LockMarker.
//
// Panics if strategy is not a recognized value.
func WithLockStrategy(strategy LockStrategy) Option {
	if !strategy.IsValid() {
		panic(fmt.Sprintf("portledger: invalid lock strategy: %v", strategy))
	}
	return func(c *registryConfig) {
		c.Strategy = strategy
	}
}

// WithBindProbe makes NextPort verify, inside the critical section, that the
// computed port is actually bindable on the loopback interface, skipping
// ports held by processes outside the registry's control. Allocation is no
// longer strictly max(history)+1 when ports are skipped.
//
// Default: disabled.
func WithBindProbe() Option {
	return func(c *registryConfig) {
		c.BindProbe = true
	}
}
