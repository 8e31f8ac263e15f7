// Package fileutil provides file operation utilities for directory and file management.
//
// EnsureDir creates directories recursively, and WriteFileAtomic writes files
// via temp-file-then-rename with fsync so concurrent readers never observe a
// partially-written file. These are used by portledger for preparing the
// shared state directory and persisting the port ledger.
package fileutil
