package migrate

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/roach88/matchtrack/internal/broadcast"
	"github.com/roach88/matchtrack/internal/record"
)

// applyParticipantActiveFlag (v1) adds the active boolean to every
// participant document. The flag derives from the legacy free-text status
// field: active unless a status exists and says otherwise. The status field
// is dropped afterwards.
func applyParticipantActiveFlag(ctx context.Context, tx *record.Tx) error {
	return rewriteAll(ctx, tx, record.Participants, func(doc map[string]any) bool {
		if _, ok := doc["active"]; ok {
			return false
		}
		status, _ := doc["status"].(string)
		doc["active"] = status == "" || strings.EqualFold(status, "active")
		delete(doc, "status")
		return true
	})
}

// applyBroadcastBackfill (v2) fills each matching night's and matchbox's
// explicit broadcast date/time from its creation timestamp when absent, so
// temporal ordering has a deterministic anchor for legacy records.
func applyBroadcastBackfill(ctx context.Context, tx *record.Tx) error {
	backfill := func(doc map[string]any) bool {
		if date, _ := doc["broadcastDate"].(string); date != "" {
			return false
		}
		createdAt, _ := doc["createdAt"].(string)
		created, err := time.Parse(time.RFC3339, createdAt)
		if err != nil {
			// No usable creation timestamp; the resolver will keep
			// falling back at read time.
			return false
		}
		created = created.UTC()
		doc["broadcastDate"] = created.Format(broadcast.DateFormat)
		doc["broadcastTime"] = created.Format(broadcast.ClockFormat)
		return true
	}

	if err := rewriteAll(ctx, tx, record.MatchingNights, backfill); err != nil {
		return err
	}
	return rewriteAll(ctx, tx, record.Matchboxes, backfill)
}

// rewriteAll applies fn to every document in the collection, writing back
// only documents fn actually changed.
func rewriteAll(ctx context.Context, tx *record.Tx, col record.Collection, fn func(doc map[string]any) bool) error {
	rows, err := tx.Scan(ctx, col)
	if err != nil {
		return err
	}

	for _, row := range rows {
		var doc map[string]any
		if err := json.Unmarshal(row.Data, &doc); err != nil {
			return err
		}
		if !fn(doc) {
			continue
		}
		data, err := json.Marshal(doc)
		if err != nil {
			return err
		}
		if _, err := tx.Put(ctx, col, row.ID, data); err != nil {
			return err
		}
	}
	return nil
}
