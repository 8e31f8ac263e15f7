package portledger

import "time"

// ConfigSnapshot holds a copy of registryConfig fields for test assertions.
// Exported only via export_test.go so that the _test package can verify
// option closures actually mutate the config without accessing internals.
type ConfigSnapshot struct {
	LedgerPath     string
	LockPath       string
	Baseline       int
	Capacity       int
	AcquireTimeout time.Duration
	StaleLockAge   time.Duration
	Strategy       LockStrategy
	BindProbe      bool
}

// ApplyOptionsForTesting creates a default registryConfig, applies the given
// options, and returns a ConfigSnapshot of the result. This tests the option
// closures directly without constructing a Registry.
func ApplyOptionsForTesting(opts ...Option) ConfigSnapshot {
	cfg := defaultRegistryConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return ConfigSnapshot{
		LedgerPath:     cfg.LedgerPath,
		LockPath:       cfg.LockPath,
		Baseline:       cfg.Baseline,
		Capacity:       cfg.Capacity,
		AcquireTimeout: cfg.AcquireTimeout,
		StaleLockAge:   cfg.StaleLockAge,
		Strategy:       cfg.Strategy,
		BindProbe:      cfg.BindProbe,
	}
}
