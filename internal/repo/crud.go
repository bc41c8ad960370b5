package repo

import (
	"context"
	"fmt"

	"github.com/roach88/matchtrack/internal/domain"
	"github.com/roach88/matchtrack/internal/record"
	"github.com/roach88/matchtrack/internal/validate"
)

// CreateParticipant stores a new participant. New participants always start
// active; the flag only flips through a confirmed perfect match.
func (r *Repository) CreateParticipant(ctx context.Context, draft domain.Participant) (int64, error) {
	if draft.Age != nil && *draft.Age < 0 {
		return 0, fmt.Errorf("participant age must be non-negative")
	}

	draft.ID = 0
	draft.Active = true
	if draft.CreatedAt.IsZero() {
		draft.CreatedAt = r.now().UTC()
	}

	var id int64
	err := r.store.Transaction(ctx, func(tx *record.Tx) error {
		data, err := record.Encode(draft)
		if err != nil {
			return err
		}
		id, err = tx.Put(ctx, record.Participants, 0, data)
		if err != nil {
			return err
		}
		return r.touch(ctx, tx)
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// UpdateParticipant replaces a participant's profile fields. The name is
// immutable here: renames must go through RenameParticipant so references
// cascade atomically. The active flag is immutable too, it only flips on a
// confirmed perfect match. Returns ErrNotFound when no record exists under
// id.
func (r *Repository) UpdateParticipant(ctx context.Context, id int64, draft domain.Participant) error {
	if draft.Age != nil && *draft.Age < 0 {
		return fmt.Errorf("participant age must be non-negative")
	}

	return r.store.Transaction(ctx, func(tx *record.Tx) error {
		raw, found, err := tx.Get(ctx, record.Participants, id)
		if err != nil {
			return err
		}
		if !found {
			return ErrNotFound
		}
		existing, err := record.Decode[domain.Participant, *domain.Participant](record.Row{ID: id, Data: raw})
		if err != nil {
			return err
		}
		if validate.NormalizeName(draft.Name) != validate.NormalizeName(existing.Name) {
			return fmt.Errorf("participant name is immutable here, use RenameParticipant")
		}

		draft.ID = 0
		draft.Name = existing.Name
		draft.Active = existing.Active
		draft.CreatedAt = existing.CreatedAt

		data, err := record.Encode(draft)
		if err != nil {
			return err
		}
		if _, err := tx.Put(ctx, record.Participants, id, data); err != nil {
			return err
		}
		return r.touch(ctx, tx)
	})
}

// DeleteParticipant removes a participant record. References from matchboxes
// and matching nights are left in place: history keeps the name.
func (r *Repository) DeleteParticipant(ctx context.Context, id int64) error {
	return r.store.Transaction(ctx, func(tx *record.Tx) error {
		if err := tx.Delete(ctx, record.Participants, id); err != nil {
			return err
		}
		return r.touch(ctx, tx)
	})
}

// CreatePenalty stores a new penalty/credit transaction.
func (r *Repository) CreatePenalty(ctx context.Context, draft domain.Penalty) (int64, error) {
	draft.ID = 0
	if draft.CreatedAt.IsZero() {
		draft.CreatedAt = r.now().UTC()
	}

	var id int64
	err := r.store.Transaction(ctx, func(tx *record.Tx) error {
		data, err := record.Encode(draft)
		if err != nil {
			return err
		}
		id, err = tx.Put(ctx, record.Penalties, 0, data)
		if err != nil {
			return err
		}
		return r.touch(ctx, tx)
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// UpdatePenalty replaces an existing penalty. Returns ErrNotFound when no
// record exists under id.
func (r *Repository) UpdatePenalty(ctx context.Context, id int64, draft domain.Penalty) error {
	return r.store.Transaction(ctx, func(tx *record.Tx) error {
		raw, found, err := tx.Get(ctx, record.Penalties, id)
		if err != nil {
			return err
		}
		if !found {
			return ErrNotFound
		}
		existing, err := record.Decode[domain.Penalty, *domain.Penalty](record.Row{ID: id, Data: raw})
		if err != nil {
			return err
		}

		draft.ID = 0
		draft.CreatedAt = existing.CreatedAt

		data, err := record.Encode(draft)
		if err != nil {
			return err
		}
		if _, err := tx.Put(ctx, record.Penalties, id, data); err != nil {
			return err
		}
		return r.touch(ctx, tx)
	})
}

// DeletePenalty removes a penalty record.
func (r *Repository) DeletePenalty(ctx context.Context, id int64) error {
	return r.store.Transaction(ctx, func(tx *record.Tx) error {
		if err := tx.Delete(ctx, record.Penalties, id); err != nil {
			return err
		}
		return r.touch(ctx, tx)
	})
}
