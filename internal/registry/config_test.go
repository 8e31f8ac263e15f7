package registry

import (
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		LedgerPath:     "/tmp/portledger-test/ports.json",
		LockPath:       "/tmp/portledger-test/ports.lock",
		Baseline:       3010,
		Capacity:       100,
		AcquireTimeout: 10 * time.Second,
		Strategy:       LockMarker,
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		mutate  func(*Config)
		wantErr string // empty means valid
	}{
		"valid": {
			mutate: func(*Config) {},
		},
		"valid flock strategy": {
			mutate: func(c *Config) { c.Strategy = LockFlock },
		},
		"valid with stale age": {
			mutate: func(c *Config) { c.StaleLockAge = time.Minute },
		},
		"empty ledger path": {
			mutate:  func(c *Config) { c.LedgerPath = "" },
			wantErr: "ledger path must not be empty",
		},
		"empty lock path": {
			mutate:  func(c *Config) { c.LockPath = "" },
			wantErr: "lock path must not be empty",
		},
		"colliding paths": {
			mutate:  func(c *Config) { c.LockPath = c.LedgerPath },
			wantErr: "lock path must not collide",
		},
		"zero baseline": {
			mutate:  func(c *Config) { c.Baseline = 0 },
			wantErr: "baseline must be in range",
		},
		"baseline above port range": {
			mutate:  func(c *Config) { c.Baseline = 70000 },
			wantErr: "baseline must be in range",
		},
		"zero capacity": {
			mutate:  func(c *Config) { c.Capacity = 0 },
			wantErr: "capacity must be greater than 0",
		},
		"zero acquire timeout": {
			mutate:  func(c *Config) { c.AcquireTimeout = 0 },
			wantErr: "acquire timeout must be greater than 0",
		},
		"negative stale lock age": {
			mutate:  func(c *Config) { c.StaleLockAge = -time.Second },
			wantErr: "stale lock age must not be negative",
		},
		"invalid strategy": {
			mutate:  func(c *Config) { c.Strategy = LockStrategy(42) },
			wantErr: "invalid lock strategy",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error containing %q", tc.wantErr)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("Validate() error = %q, want it to contain %q", err, tc.wantErr)
			}
		})
	}
}

func TestConfigValidateReportsAllViolations(t *testing.T) {
	t.Parallel()

	cfg := Config{}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() on zero config = nil, want error")
	}

	for _, want := range []string{
		"ledger path must not be empty",
		"lock path must not be empty",
		"baseline must be in range",
		"capacity must be greater than 0",
		"acquire timeout must be greater than 0",
	} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Validate() error missing %q:\n%v", want, err)
		}
	}
}

func TestLockStrategyIsValid(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		strategy LockStrategy
		want     bool
	}{
		"marker":   {LockMarker, true},
		"flock":    {LockFlock, true},
		"unknown":  {LockStrategy(42), false},
		"negative": {LockStrategy(-1), false},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if got := tc.strategy.IsValid(); got != tc.want {
				t.Errorf("IsValid() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestLockStrategyString(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		strategy LockStrategy
		want     string
	}{
		"marker":  {LockMarker, "LockMarker"},
		"flock":   {LockFlock, "LockFlock"},
		"unknown": {LockStrategy(42), "LockStrategy(42)"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if got := tc.strategy.String(); got != tc.want {
				t.Errorf("String() = %q, want %q", got, tc.want)
			}
		})
	}
}
