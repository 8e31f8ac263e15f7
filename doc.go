// Package portledger hands out unique listening ports to concurrently-running
// test processes.
//
// Allocations are serialized through a cooperative file lock: every call to
// NextPort acquires the lock, reads the shared ledger of previously allocated
// ports, computes max(history)+1, persists the updated history atomically, and
// releases the lock. Because the read-modify-write runs under cross-process
// mutual exclusion, no two callers, whether goroutines or separate processes,
// ever receive the same port for the lifetime of the ledger.
//
// # Basic Usage
//
//	import "github.com/giantswarm/portledger"
//
//	ctx := context.Background()
//
//	reg := portledger.NewRegistry(portledger.WithDir("/tmp/myproject-ports"))
//
//	port, err := reg.NextPort(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// Listen on port...
//
// All cooperating processes must construct their registry with the same
// ledger and lock paths (most simply via WithDir on a shared directory).
// Independent projects should use distinct directories so their allocations
// do not interleave.
//
// # History Bounding
//
// The ledger is capped (default 100 entries). When an allocation would grow
// it past the cap, the history resets to the baseline port (default 3010) and
// allocation restarts from the low range; by then the earliest ports are
// assumed free again. A corrupted or missing ledger self-heals to the
// baseline instead of failing the allocation.
//
// # Crash Recovery
//
// With the default marker lock, a process killed while holding the lock
// leaves the marker behind and blocks all future acquirers; WithStaleLockAge
// opts into clearing abandoned markers, and WithLockStrategy(LockFlock)
// switches to an advisory lock that the kernel releases automatically when
// the holder dies.
package portledger
