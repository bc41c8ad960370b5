package repo

import (
	"context"
	"log/slog"

	"github.com/roach88/matchtrack/internal/domain"
	"github.com/roach88/matchtrack/internal/record"
	"github.com/roach88/matchtrack/internal/validate"
)

// CreateMatchingNight validates the draft against the current store state
// and commits it. On rejection the returned error is a
// *validate.ValidationError and nothing is persisted.
func (r *Repository) CreateMatchingNight(ctx context.Context, draft domain.MatchingNight) (int64, error) {
	var id int64
	err := r.store.Transaction(ctx, func(tx *record.Tx) error {
		night, err := r.checkNight(ctx, tx, draft)
		if err != nil {
			return err
		}

		data, err := record.Encode(night)
		if err != nil {
			return err
		}
		id, err = tx.Put(ctx, record.MatchingNights, 0, data)
		if err != nil {
			return err
		}
		return r.touch(ctx, tx)
	})
	if err != nil {
		return 0, err
	}

	slog.Info("matching night committed", "id", id, "name", draft.Name, "lights", draft.TotalLights)
	return id, nil
}

// UpdateMatchingNight re-validates and replaces an existing night. Returns
// ErrNotFound when no record exists under id.
func (r *Repository) UpdateMatchingNight(ctx context.Context, id int64, draft domain.MatchingNight) error {
	err := r.store.Transaction(ctx, func(tx *record.Tx) error {
		raw, found, err := tx.Get(ctx, record.MatchingNights, id)
		if err != nil {
			return err
		}
		if !found {
			return ErrNotFound
		}
		existing, err := record.Decode[domain.MatchingNight, *domain.MatchingNight](record.Row{ID: id, Data: raw})
		if err != nil {
			return err
		}

		// Identity and creation stamp are immutable across edits.
		draft.CreatedAt = existing.CreatedAt
		night, err := r.checkNight(ctx, tx, draft)
		if err != nil {
			return err
		}

		data, err := record.Encode(night)
		if err != nil {
			return err
		}
		if _, err := tx.Put(ctx, record.MatchingNights, id, data); err != nil {
			return err
		}
		return r.touch(ctx, tx)
	})
	if err != nil {
		return err
	}

	slog.Info("matching night updated", "id", id, "name", draft.Name)
	return nil
}

// checkNight stamps and validates a night draft inside the transaction.
func (r *Repository) checkNight(ctx context.Context, tx *record.Tx, draft domain.MatchingNight) (domain.MatchingNight, error) {
	if draft.CreatedAt.IsZero() {
		draft.CreatedAt = r.now().UTC()
	}
	draft.ID = 0 // row key is authoritative

	participants, err := loadParticipants(ctx, tx)
	if err != nil {
		return domain.MatchingNight{}, err
	}
	boxes, err := loadMatchboxes(ctx, tx)
	if err != nil {
		return domain.MatchingNight{}, err
	}
	if err := validate.CheckMatchingNight(draft, participants, boxes, r.bopts...); err != nil {
		return domain.MatchingNight{}, err
	}
	return draft, nil
}

// CreateMatchbox validates the draft and commits it. A perfect match
// deactivates both named participants inside the same transaction, as
// instructed by the validation engine's declared side effects.
func (r *Repository) CreateMatchbox(ctx context.Context, draft domain.Matchbox) (int64, error) {
	var id int64
	err := r.store.Transaction(ctx, func(tx *record.Tx) error {
		box, effects, err := r.checkBox(ctx, tx, draft)
		if err != nil {
			return err
		}

		data, err := record.Encode(box)
		if err != nil {
			return err
		}
		id, err = tx.Put(ctx, record.Matchboxes, 0, data)
		if err != nil {
			return err
		}
		if err := r.applyEffects(ctx, tx, effects); err != nil {
			return err
		}
		return r.touch(ctx, tx)
	})
	if err != nil {
		return 0, err
	}

	slog.Info("matchbox committed", "id", id, "woman", draft.Woman, "man", draft.Man, "type", draft.MatchType)
	return id, nil
}

// UpdateMatchbox re-validates and replaces an existing matchbox. Editing
// never changes the identity pairing without re-validation; the whole draft
// runs through the same checks as a create. Returns ErrNotFound when no
// record exists under id.
func (r *Repository) UpdateMatchbox(ctx context.Context, id int64, draft domain.Matchbox) error {
	err := r.store.Transaction(ctx, func(tx *record.Tx) error {
		raw, found, err := tx.Get(ctx, record.Matchboxes, id)
		if err != nil {
			return err
		}
		if !found {
			return ErrNotFound
		}
		existing, err := record.Decode[domain.Matchbox, *domain.Matchbox](record.Row{ID: id, Data: raw})
		if err != nil {
			return err
		}

		draft.CreatedAt = existing.CreatedAt
		box, effects, err := r.checkBox(ctx, tx, draft)
		if err != nil {
			return err
		}

		data, err := record.Encode(box)
		if err != nil {
			return err
		}
		if _, err := tx.Put(ctx, record.Matchboxes, id, data); err != nil {
			return err
		}
		if err := r.applyEffects(ctx, tx, effects); err != nil {
			return err
		}
		return r.touch(ctx, tx)
	})
	if err != nil {
		return err
	}

	slog.Info("matchbox updated", "id", id, "woman", draft.Woman, "man", draft.Man, "type", draft.MatchType)
	return nil
}

// checkBox stamps and validates a matchbox draft inside the transaction.
func (r *Repository) checkBox(ctx context.Context, tx *record.Tx, draft domain.Matchbox) (domain.Matchbox, []validate.Effect, error) {
	now := r.now().UTC()
	if draft.CreatedAt.IsZero() {
		draft.CreatedAt = now
	}
	draft.UpdatedAt = now
	draft.ID = 0

	participants, err := loadParticipants(ctx, tx)
	if err != nil {
		return domain.Matchbox{}, nil, err
	}
	effects, err := validate.CheckMatchbox(draft, participants)
	if err != nil {
		return domain.Matchbox{}, nil, err
	}
	return draft, effects, nil
}

// applyEffects executes declared side-effect instructions in the same
// transaction as the triggering commit.
func (r *Repository) applyEffects(ctx context.Context, tx *record.Tx, effects []validate.Effect) error {
	for _, effect := range effects {
		if effect.Kind != validate.EffectDeactivateParticipant {
			continue
		}

		rows, err := tx.Scan(ctx, record.Participants)
		if err != nil {
			return err
		}
		target := validate.NormalizeName(effect.Name)
		for _, row := range rows {
			p, err := record.Decode[domain.Participant, *domain.Participant](row)
			if err != nil {
				return err
			}
			if validate.NormalizeName(p.Name) != target || !p.Active {
				continue
			}
			p.Active = false
			data, err := record.Encode(p)
			if err != nil {
				return err
			}
			if _, err := tx.Put(ctx, record.Participants, row.ID, data); err != nil {
				return err
			}
			slog.Info("participant deactivated", "id", row.ID, "name", p.Name)
		}
	}
	return nil
}
