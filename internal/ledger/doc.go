// Package ledger persists the ordered history of allocated ports as a JSON
// array of non-negative integers.
//
// Load is deliberately infallible: an absent file, empty content, or content
// that does not parse as a valid port list all yield a ledger seeded with the
// baseline port, so allocation never hard-fails on a corrupted ledger. Save
// writes atomically via temp-file-then-rename. Callers are expected to hold
// the cross-process lock around any Load/Save cycle.
package ledger
