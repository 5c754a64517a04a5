// Package contact models a single address-book entry and the pure algorithms
// that operate on it.
//
// A Record carries a fixed schema of multi-valued string fields. The package
// owns field consolidation (flatten, trim, exact dedup, substring pruning),
// similarity scoring between two records, and in-place merging. None of these
// functions perform I/O; persistence and import formats live in sibling
// packages.
//
// Always go through Fields(), Values and Set when iterating a record so new
// fields only need to be declared once, in schema.go.
package contact
