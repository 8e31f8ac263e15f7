// Package sentinel provides a const-declarable error type.
//
// Error values declared with errors.New live in package-level vars that any
// importer could reassign. Error here is backed by a plain string, so
// sentinel errors can be declared as consts and stay immutable while still
// working with errors.Is through wrapped chains.
package sentinel
