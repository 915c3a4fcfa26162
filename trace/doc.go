// Package trace reads block-reference traces for the lirs engine.
//
// Two formats are supported, matching the two reading paths of the
// original simulator: a binary format of fixed-width little-endian
// uint64 records, and a textual format of one integer per line with
// "*" lines treated as separators. Both are exposed behind the same
// Reader interface so cmd/lirsim can pick one based on a flag.
package trace
