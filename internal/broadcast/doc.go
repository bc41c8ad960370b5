// Package broadcast resolves canonical broadcast instants for domain events
// and provides the ordering primitives built on them.
//
// Everything here is pure: no I/O, no clocks. An event's instant is its
// explicit broadcast date+time when present, the start of the broadcast date
// (or a configured default air time) when only the date is present, and the
// record's creation timestamp otherwise.
//
// Ordering is strict. Two events resolving to the same instant are NOT
// ordered relative to each other - a perfect match revealed at exactly the
// reference instant is not "already known" at that instant.
package broadcast
