package domain

// SchemaVersion is the record-shape version the code expects. The migration
// engine upgrades stored documents until the schemaVersion meta key matches.
//
// Version history:
//  0 - legacy documents (participant carries a free-text status field,
//      broadcast date/time may be absent)
//  1 - participant gains the active flag, derived from status
//  2 - matching nights and matchboxes gain a backfilled broadcast date/time
const SchemaVersion = 2

// Meta collection keys.
const (
	MetaSchemaVersion  = "schemaVersion"
	MetaStartingBudget = "startingBudget"
	MetaLastUpdate     = "lastUpdateDate"
)
