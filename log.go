package portledger

import (
	"log/slog"

	"github.com/giantswarm/portledger/internal/registry"
)

// SetLogger replaces the package-level logger used by portledger.
// This allows applications to integrate portledger logging with their own
// logging infrastructure. The provided logger should already have any
// desired attributes; portledger will not add additional attributes.
//
// If l is nil, the logger resets to the default: slog.Default() with
// "component" attribute, re-derived on the next internal use and then
// cached. Call SetLogger(nil) after slog.SetDefault() to pick up changes.
//
// SetLogger is safe to call concurrently with other portledger operations;
// the logger is stored as an atomic pointer. For a strict happens-before
// guarantee, call SetLogger before starting goroutines that use the library
// (e.g., in TestMain before m.Run).
func SetLogger(l *slog.Logger) {
	registry.SetLogger(l)
}
