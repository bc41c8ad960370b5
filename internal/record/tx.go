package record

import (
	"context"
)

// Tx is a transactional view of the store. All session operations performed
// through a Tx commit together or not at all.
type Tx struct {
	session
}

// Transaction runs fn inside a single SQLite transaction spanning any number
// of collections. If fn returns an error the transaction is rolled back and
// that error is returned unchanged, so validation errors pass through
// untouched. Begin and commit failures surface as StorageError.
//
// There is no cancellation mid-apply: once fn returns nil the transaction
// runs to commit or fails with a StorageError, never half-applies.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Tx) error) error {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &StorageError{Op: "begin tx", Err: err}
	}
	defer sqlTx.Rollback() // No-op if committed

	if err := fn(&Tx{session: session{q: sqlTx, now: s.now}}); err != nil {
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		return &StorageError{Op: "commit tx", Err: err}
	}
	return nil
}
