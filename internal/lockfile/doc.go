// Package lockfile provides cooperative cross-process mutual exclusion built
// on the filesystem.
//
// Two Locker implementations are available. MarkerLock claims ownership by
// atomically creating a marker file (O_CREATE|O_EXCL); the marker's existence
// is the sole ownership signal, so a crashed holder leaves the lock held until
// an optional stale-marker age policy clears it. FlockLock uses an advisory
// flock(2)-style lock via github.com/gofrs/flock, which the kernel releases
// automatically when the holding process dies.
//
// Acquisition blocks with bounded exponential backoff and respects context
// cancellation. WithLock provides scoped acquisition that guarantees release
// on every exit path of the critical section.
package lockfile
