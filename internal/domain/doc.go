// Package domain defines the entity types persisted by the record store.
//
// Entities are identified by an engine-assigned int64 surrogate key that is
// immutable once assigned. Cross-references between entities (Matchbox and
// MatchingNight pairs pointing at participants) are by display name, not by
// key; renames are cascaded atomically by the repository layer.
package domain
