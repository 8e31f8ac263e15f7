package ledger

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/giantswarm/portledger/internal/fileutil"
)

// fileMode is the permission mode for the ledger file.
const fileMode = 0o644

// Ledger holds the ordered history of allocated ports. It is never empty:
// construction and every self-healing load path seed it with the baseline.
type Ledger struct {
	ports []int
}

// New creates a Ledger containing only the baseline port.
func New(baseline int) *Ledger {
	return &Ledger{ports: []int{baseline}}
}

// Load reads the ledger at path. An absent file, empty content, or content
// that fails to parse as a list of non-negative integers yields a fresh
// ledger seeded with baseline; nothing is ever surfaced as an error.
// Unparsable content is logged at debug to aid troubleshooting.
// If logger is nil, slog.Default() is used as a fallback.
func Load(path string, baseline int, logger *slog.Logger) *Ledger {
	if logger == nil {
		logger = slog.Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Debug("failed to read port ledger, starting from baseline",
				"path", path, "error", err)
		}
		return New(baseline)
	}

	ports, err := parse(data)
	if err != nil {
		logger.Debug("port ledger content invalid, starting from baseline",
			"path", path, "error", err)
		return New(baseline)
	}

	return &Ledger{ports: ports}
}

// parse decodes data as a non-empty JSON array of non-negative integers.
func parse(data []byte) ([]int, error) {
	var ports []int
	if err := json.Unmarshal(data, &ports); err != nil {
		return nil, fmt.Errorf("decode ledger: %w", err)
	}
	if len(ports) == 0 {
		return nil, fmt.Errorf("ledger is empty")
	}
	for _, p := range ports {
		if p < 0 {
			return nil, fmt.Errorf("ledger contains negative port %d", p)
		}
	}
	return ports, nil
}

// Save persists the ledger to path atomically, so concurrent readers never
// observe a partially-written file.
func (l *Ledger) Save(path string) error {
	data, err := json.Marshal(l.ports)
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}
	if err := fileutil.WriteFileAtomic(path, data, fileMode); err != nil {
		return fmt.Errorf("write ledger %s: %w", path, err)
	}
	return nil
}

// Max returns the highest port in the history.
func (l *Ledger) Max() int {
	return slices.Max(l.ports)
}

// Append records port at the end of the history.
func (l *Ledger) Append(port int) {
	l.ports = append(l.ports, port)
}

// Len returns the number of recorded ports.
func (l *Ledger) Len() int {
	return len(l.ports)
}

// ResetIfOver truncates the history back to [baseline] when it has grown
// beyond capacity, and reports whether a reset happened. The check runs on
// the post-append length, so the most recently appended port is dropped from
// history along with the rest; by the time capacity allocations have been
// handed out, the earliest ports are assumed free again.
func (l *Ledger) ResetIfOver(capacity, baseline int) bool {
	if len(l.ports) <= capacity {
		return false
	}
	l.ports = []int{baseline}
	return true
}

// Ports returns a copy of the history so callers cannot mutate internal state.
func (l *Ledger) Ports() []int {
	cp := make([]int, len(l.ports))
	copy(cp, l.ports)
	return cp
}
