// Package repo is the domain repository facade, the only entry point
// external collaborators use. It wires the record store, migration engine
// output, validation engine, temporal ordering service, and budget ledger
// behind validated commit operations.
//
// Single logical writer: the facade assumes one active client at a time.
// Multi-record writes are made indivisible by record.Transaction; there are
// no locks, no background tasks, and no automatic retries.
package repo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/roach88/matchtrack/internal/broadcast"
	"github.com/roach88/matchtrack/internal/budget"
	"github.com/roach88/matchtrack/internal/domain"
	"github.com/roach88/matchtrack/internal/record"
)

// ErrNotFound reports an update or delete aimed at a surrogate key with no
// stored record. Reads never return it; absent reads are a normal empty
// result.
var ErrNotFound = errors.New("record not found")

// Repository is the domain repository facade.
type Repository struct {
	store    *record.Store
	now      func() time.Time
	exportID func() string
	bopts    []broadcast.Option
}

// Option configures a Repository.
type Option func(*Repository)

// WithTimeSource replaces the creation/update timestamp source.
// Tests use a fixed source for deterministic documents.
func WithTimeSource(now func() time.Time) Option {
	return func(r *Repository) {
		r.now = now
	}
}

// WithExportIDSource replaces the export document id generator.
func WithExportIDSource(gen func() string) Option {
	return func(r *Repository) {
		r.exportID = gen
	}
}

// WithBroadcastOptions sets instant-resolution options (e.g. a default air
// time for date-only events) used by validation and the timeline.
func WithBroadcastOptions(opts ...broadcast.Option) Option {
	return func(r *Repository) {
		r.bopts = opts
	}
}

// New creates a Repository over an opened store. Run the migrate package
// before constructing the repository; operating on a stale store is a fatal
// startup condition.
func New(s *record.Store, opts ...Option) *Repository {
	r := &Repository{
		store:    s,
		now:      time.Now,
		exportID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// view is the read surface shared by *record.Store and *record.Tx, so the
// same loaders work inside and outside transactions.
type view interface {
	Get(ctx context.Context, col record.Collection, id int64) (json.RawMessage, bool, error)
	Scan(ctx context.Context, col record.Collection) ([]record.Row, error)
	GetMeta(ctx context.Context, key string) (string, bool, error)
}

func loadParticipants(ctx context.Context, v view) ([]domain.Participant, error) {
	rows, err := v.Scan(ctx, record.Participants)
	if err != nil {
		return nil, err
	}
	return record.DecodeAll[domain.Participant, *domain.Participant](rows)
}

func loadMatchingNights(ctx context.Context, v view) ([]domain.MatchingNight, error) {
	rows, err := v.Scan(ctx, record.MatchingNights)
	if err != nil {
		return nil, err
	}
	return record.DecodeAll[domain.MatchingNight, *domain.MatchingNight](rows)
}

func loadMatchboxes(ctx context.Context, v view) ([]domain.Matchbox, error) {
	rows, err := v.Scan(ctx, record.Matchboxes)
	if err != nil {
		return nil, err
	}
	return record.DecodeAll[domain.Matchbox, *domain.Matchbox](rows)
}

func loadPenalties(ctx context.Context, v view) ([]domain.Penalty, error) {
	rows, err := v.Scan(ctx, record.Penalties)
	if err != nil {
		return nil, err
	}
	return record.DecodeAll[domain.Penalty, *domain.Penalty](rows)
}

// Participants returns all participants ordered by surrogate key.
func (r *Repository) Participants(ctx context.Context) ([]domain.Participant, error) {
	return loadParticipants(ctx, r.store)
}

// MatchingNights returns all matching nights ordered by surrogate key.
func (r *Repository) MatchingNights(ctx context.Context) ([]domain.MatchingNight, error) {
	return loadMatchingNights(ctx, r.store)
}

// Matchboxes returns all matchboxes ordered by surrogate key.
func (r *Repository) Matchboxes(ctx context.Context) ([]domain.Matchbox, error) {
	return loadMatchboxes(ctx, r.store)
}

// Penalties returns all penalties ordered by surrogate key.
func (r *Repository) Penalties(ctx context.Context) ([]domain.Penalty, error) {
	return loadPenalties(ctx, r.store)
}

// Timeline returns the merged matching-night/matchbox broadcast feed, most
// recent first.
func (r *Repository) Timeline(ctx context.Context) ([]broadcast.Entry, error) {
	nights, err := loadMatchingNights(ctx, r.store)
	if err != nil {
		return nil, err
	}
	boxes, err := loadMatchboxes(ctx, r.store)
	if err != nil {
		return nil, err
	}
	return broadcast.Timeline(nights, boxes, r.bopts...), nil
}

// StartingBudget returns the configured starting capital, falling back to
// budget.DefaultStartingBudget when unset.
func (r *Repository) StartingBudget(ctx context.Context) (decimal.Decimal, error) {
	return startingBudget(ctx, r.store)
}

func startingBudget(ctx context.Context, v view) (decimal.Decimal, error) {
	raw, ok, err := v.GetMeta(ctx, domain.MetaStartingBudget)
	if err != nil {
		return decimal.Zero, err
	}
	if !ok {
		return budget.DefaultStartingBudget, nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		// A corrupt setting must not poison the ledger silently.
		return decimal.Zero, &record.StorageError{Op: "parse meta " + domain.MetaStartingBudget, Err: err}
	}
	return value, nil
}

// SetStartingBudget stores the starting capital setting. No other component
// ever changes it.
func (r *Repository) SetStartingBudget(ctx context.Context, value decimal.Decimal) error {
	return r.store.Transaction(ctx, func(tx *record.Tx) error {
		if err := tx.PutMeta(ctx, domain.MetaStartingBudget, value.String()); err != nil {
			return err
		}
		return r.touch(ctx, tx)
	})
}

// ComputeBalance folds sold-matchbox revenue and penalty transactions into
// the derived budget snapshot.
func (r *Repository) ComputeBalance(ctx context.Context) (budget.Snapshot, error) {
	boxes, err := loadMatchboxes(ctx, r.store)
	if err != nil {
		return budget.Snapshot{}, err
	}
	penalties, err := loadPenalties(ctx, r.store)
	if err != nil {
		return budget.Snapshot{}, err
	}
	starting, err := startingBudget(ctx, r.store)
	if err != nil {
		return budget.Snapshot{}, err
	}
	return budget.Compute(boxes, penalties, starting), nil
}

// touch stamps the lastUpdateDate meta key. Called inside every committing
// transaction.
func (r *Repository) touch(ctx context.Context, tx *record.Tx) error {
	return tx.PutMeta(ctx, domain.MetaLastUpdate, r.now().UTC().Format(time.RFC3339))
}
