package repo

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/roach88/matchtrack/internal/domain"
	"github.com/roach88/matchtrack/internal/record"
	"github.com/roach88/matchtrack/internal/validate"
)

// RenameParticipant changes a participant's name and cascades the rename
// into every matchbox and matching-night pair referencing the old name, all
// inside one transaction: either every reference changes or none do.
//
// Name uniqueness is a repository precondition, not a storage constraint: a
// rename colliding with another participant's normalized name is rejected
// before anything is written.
func (r *Repository) RenameParticipant(ctx context.Context, id int64, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return fmt.Errorf("new participant name must not be empty")
	}

	var oldName string
	var boxCount, pairCount int

	err := r.store.Transaction(ctx, func(tx *record.Tx) error {
		raw, found, err := tx.Get(ctx, record.Participants, id)
		if err != nil {
			return err
		}
		if !found {
			return ErrNotFound
		}
		participant, err := record.Decode[domain.Participant, *domain.Participant](record.Row{ID: id, Data: raw})
		if err != nil {
			return err
		}

		oldName = participant.Name
		oldKey := validate.NormalizeName(oldName)
		newKey := validate.NormalizeName(newName)
		if oldKey == newKey && oldName == newName {
			return nil
		}

		// Precondition: no other participant may already carry the name.
		others, err := loadParticipants(ctx, tx)
		if err != nil {
			return err
		}
		for _, other := range others {
			if other.ID != id && validate.NormalizeName(other.Name) == newKey {
				return fmt.Errorf("participant name %q is already taken", newName)
			}
		}

		participant.Name = newName
		participant.ID = 0
		data, err := record.Encode(participant)
		if err != nil {
			return err
		}
		if _, err := tx.Put(ctx, record.Participants, id, data); err != nil {
			return err
		}

		boxCount, err = r.renameInMatchboxes(ctx, tx, oldKey, newName)
		if err != nil {
			return err
		}
		pairCount, err = r.renameInMatchingNights(ctx, tx, oldKey, newName)
		if err != nil {
			return err
		}

		return r.touch(ctx, tx)
	})
	if err != nil {
		return err
	}

	slog.Info("participant renamed",
		"id", id,
		"from", oldName,
		"to", newName,
		"matchboxes", boxCount,
		"night_pairs", pairCount,
	)
	return nil
}

// renameInMatchboxes rewrites every matchbox whose woman or man matches the
// old normalized name. Returns the number of rewritten records.
func (r *Repository) renameInMatchboxes(ctx context.Context, tx *record.Tx, oldKey, newName string) (int, error) {
	rows, err := tx.Scan(ctx, record.Matchboxes)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, row := range rows {
		box, err := record.Decode[domain.Matchbox, *domain.Matchbox](row)
		if err != nil {
			return 0, err
		}

		changed := false
		if validate.NormalizeName(box.Woman) == oldKey {
			box.Woman = newName
			changed = true
		}
		if validate.NormalizeName(box.Man) == oldKey {
			box.Man = newName
			changed = true
		}
		if !changed {
			continue
		}

		box.ID = 0
		data, err := record.Encode(box)
		if err != nil {
			return 0, err
		}
		if _, err := tx.Put(ctx, record.Matchboxes, row.ID, data); err != nil {
			return 0, err
		}
		count++
	}
	return count, nil
}

// renameInMatchingNights rewrites every night pair referencing the old
// normalized name. Returns the number of rewritten pairs.
func (r *Repository) renameInMatchingNights(ctx context.Context, tx *record.Tx, oldKey, newName string) (int, error) {
	rows, err := tx.Scan(ctx, record.MatchingNights)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, row := range rows {
		night, err := record.Decode[domain.MatchingNight, *domain.MatchingNight](row)
		if err != nil {
			return 0, err
		}

		changed := 0
		for i, pair := range night.Pairs {
			if validate.NormalizeName(pair.Woman) == oldKey {
				night.Pairs[i].Woman = newName
				changed++
			}
			if validate.NormalizeName(pair.Man) == oldKey {
				night.Pairs[i].Man = newName
				changed++
			}
		}
		if changed == 0 {
			continue
		}

		night.ID = 0
		data, err := record.Encode(night)
		if err != nil {
			return 0, err
		}
		if _, err := tx.Put(ctx, record.MatchingNights, row.ID, data); err != nil {
			return 0, err
		}
		count += changed
	}
	return count, nil
}
