package portledger

import (
	"context"
	"os"
	"path/filepath"

	"github.com/giantswarm/portledger/internal/registry"
)

// Registry allocates unique listening ports across cooperating processes.
//
// The internal registry is stored as a named (unexported) field rather than
// embedded to prevent callers from reaching internal methods through type
// assertions.
//
// There is intentionally no process-level singleton: the ledger and lock
// paths are explicit configuration, so independent registries pointing at
// different directories can coexist in one process, including in tests of the
// registry itself.
type Registry struct {
	reg *registry.Registry
}

// defaultRegistryConfig returns a registryConfig populated with all default
// values. Both NewRegistry and test helpers use this to avoid duplicating
// the default field assignments.
func defaultRegistryConfig() registryConfig {
	dir := filepath.Join(os.TempDir(), DefaultDirName)
	return registryConfig{registry.Config{
		LedgerPath:     filepath.Join(dir, DefaultLedgerFileName),
		LockPath:       filepath.Join(dir, DefaultLockFileName),
		Baseline:       DefaultBaseline,
		Capacity:       DefaultCapacity,
		AcquireTimeout: DefaultAcquireTimeout,
		Strategy:       DefaultLockStrategy,
	}}
}

// NewRegistry creates a Registry with the given options. This performs no
// I/O; the ledger file is created lazily on the first allocation.
//
// Without options, state lives under os.TempDir()/portledger, shared by
// every process using the defaults on the same machine. Use WithDir to give
// a project its own allocation space.
//
// Panics if any option receives an invalid value or if the resulting
// configuration is inconsistent (e.g., ledger and lock paths collide). See
// individual With* functions for constraints.
func NewRegistry(opts ...Option) *Registry {
	cfg := defaultRegistryConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Registry{reg: registry.New(cfg.toInternalConfig())}
}

// NextPort allocates and returns the next free port. Allocations are
// globally serialized through the cross-process file lock, so every returned
// port is unique across all cooperating processes for the lifetime of the
// ledger (until a capacity reset deliberately reopens the low range).
//
// A missing or corrupted ledger self-heals to the baseline state. Waiting
// for the lock is bounded by the configured acquire timeout, surfacing
// ErrLockTimeout; a failed persist surfaces ErrLedgerWrite and the returned
// port must not be used.
func (r *Registry) NextPort(ctx context.Context) (int, error) {
	return r.reg.NextPort(ctx)
}

// Reset truncates the ledger back to [baseline] under the lock, discarding
// all allocation history. Useful between test suites that want a
// predictable low range.
func (r *Registry) Reset(ctx context.Context) error {
	return r.reg.Reset(ctx)
}

// Snapshot returns a copy of the current allocation history, read under the
// lock. An absent ledger yields the baseline state.
func (r *Registry) Snapshot(ctx context.Context) ([]int, error) {
	return r.reg.Snapshot(ctx)
}
