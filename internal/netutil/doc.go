// Package netutil provides network utility functions for portledger.
// ProbeTCP checks whether a candidate port is actually bindable on the
// loopback interface, letting the registry skip ports already taken by
// unrelated processes.
package netutil
