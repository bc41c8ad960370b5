// Package migrate upgrades stored record shapes across schema versions.
//
// The chain is an ordered, statically-known list of steps, each a pure
// transformation over previously-stored documents. Steps run exactly once,
// in order, never skipped and never reordered: on startup every step whose
// version is ahead of the stored schemaVersion runs inside one transaction
// together with the version-marker advance. A failing step aborts before the
// marker moves, leaving the store at the last fully-applied version - a
// fatal startup condition for the application.
package migrate

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/roach88/matchtrack/internal/domain"
	"github.com/roach88/matchtrack/internal/record"
)

// Step is one versioned upgrade. Apply transforms existing documents through
// the transactional view; it must be written to run exactly once but safe to
// re-run against already-upgraded documents (guards on missing fields).
type Step struct {
	// Version is the schema version this step upgrades the store TO.
	Version int

	// Name identifies the step in errors and logs.
	Name string

	// Apply performs the transformation.
	Apply func(ctx context.Context, tx *record.Tx) error
}

// MigrationError represents a failed migration step. The store is left at
// the last fully-applied version; callers must refuse to operate on the
// partially-migrated store.
type MigrationError struct {
	Version int
	Name    string
	Err     error
}

// Error implements the error interface.
func (e *MigrationError) Error() string {
	return fmt.Sprintf("migration v%d (%s) failed: %v", e.Version, e.Name, e.Err)
}

// Unwrap returns the underlying error.
func (e *MigrationError) Unwrap() error {
	return e.Err
}

// IsMigrationError returns true if the error is a MigrationError.
// Uses errors.As to handle wrapped errors.
func IsMigrationError(err error) bool {
	var me *MigrationError
	return errors.As(err, &me)
}

// Steps is the full migration chain in version order.
var Steps = []Step{
	{Version: 1, Name: "participant-active-flag", Apply: applyParticipantActiveFlag},
	{Version: 2, Name: "broadcast-backfill", Apply: applyBroadcastBackfill},
}

// Run applies every pending step and advances the schemaVersion marker.
// Returns the version found in the store and the version after migration.
// Running against an up-to-date store is a no-op.
func Run(ctx context.Context, s *record.Store) (from, to int, err error) {
	from, err = storedVersion(ctx, s)
	if err != nil {
		return 0, 0, err
	}

	to = from
	for _, step := range Steps {
		if step.Version <= to {
			continue
		}

		err := s.Transaction(ctx, func(tx *record.Tx) error {
			if err := step.Apply(ctx, tx); err != nil {
				return err
			}
			return tx.PutMeta(ctx, domain.MetaSchemaVersion, strconv.Itoa(step.Version))
		})
		if err != nil {
			return from, to, &MigrationError{Version: step.Version, Name: step.Name, Err: err}
		}
		to = step.Version
	}

	return from, to, nil
}

// storedVersion reads the schemaVersion meta key, 0 if absent.
func storedVersion(ctx context.Context, s *record.Store) (int, error) {
	raw, ok, err := s.GetMeta(ctx, domain.MetaSchemaVersion)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &MigrationError{Name: "read version", Err: fmt.Errorf("malformed schemaVersion %q: %w", raw, err)}
	}
	return v, nil
}
