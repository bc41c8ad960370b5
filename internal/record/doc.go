// Package record provides durable storage for matchtrack domain records.
//
// Records live in typed, keyed collections backed by SQLite with one JSON
// document per row. Surrogate keys are per-collection AUTOINCREMENT ids
// assigned on first put of a keyless record. A separate meta table holds the
// schema version and small scalar settings.
//
// The store assumes a single logical writer. Atomicity across collections
// comes from Transaction, not from locks: either every write inside the
// transaction body commits or none do.
package record
