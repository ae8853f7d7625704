// Package types defines the shared vocabulary of marckit: typed errors with
// stable categories, record stream formats, and the options accepted by
// readers and writers.
//
// Design goals:
//   - Typed errors callers can branch on (format/corrupt/unsupported/config).
//   - Never panic on malformed input; report the record ordinal instead.
//   - Option structs with explicit defaults.
package types
