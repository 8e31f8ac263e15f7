// Package registry provides the internal implementation of portledger. It
// contains the Registry (globally serialized read-modify-write of the port
// ledger under a cross-process file lock), the Config with fail-fast
// validation, and the package-level logger shared by all internal components.
package registry
