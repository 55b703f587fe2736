// Package font resolves family/weight/style queries to loadable font
// face bytes, without the caller needing to know anything about system
// font discovery.
//
// A resolve miss is a normal "not present" signal (FontResolveMiss in
// the error taxonomy), never an error: the caller walks its own
// fallback cascade. The only call that must always succeed is
// EmbeddedDefault, which returns the bytes of a bundled monospace face;
// if that face fails to parse at startup the whole renderer fails
// construction.
package font
