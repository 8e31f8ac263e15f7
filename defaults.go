package portledger

import "time"

// Default configuration values for NewRegistry.
// These constants are exported so callers can reference the defaults
// when building custom configurations relative to them (e.g.,
// 2 * DefaultAcquireTimeout).
const (
	// DefaultBaseline is the floor port used both to seed the ledger on
	// first access and as the reset value when the history overflows.
	DefaultBaseline = 3010

	// DefaultCapacity is the maximum ledger length before the history is
	// reset back to the baseline.
	DefaultCapacity = 100

	// DefaultAcquireTimeout bounds how long NextPort may wait for the
	// cross-process lock before failing with ErrLockTimeout. The guarded
	// critical section is a tiny file read/write, so waits beyond this
	// almost always indicate an abandoned lock marker.
	DefaultAcquireTimeout = 10 * time.Second

	// DefaultDirName is the directory name under the system temp directory
	// where the ledger and lock files are stored when no explicit paths are
	// configured. The full path is computed as
	// filepath.Join(os.TempDir(), DefaultDirName).
	DefaultDirName = "portledger"

	// DefaultLedgerFileName is the ledger file name used by WithDir and the
	// default configuration.
	DefaultLedgerFileName = "ports.json"

	// DefaultLockFileName is the lock file name used by WithDir and the
	// default configuration.
	DefaultLockFileName = "ports.lock"

	// DefaultLockStrategy is the locking mechanism used when none is
	// configured via WithLockStrategy. LockMarker preserves the marker-file
	// semantics; see LockFlock for crash-resilient locking.
	DefaultLockStrategy = LockMarker
)
