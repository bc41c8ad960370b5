package record

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Collection names a record collection. Each collection is one table with an
// AUTOINCREMENT surrogate key and a JSON document column.
type Collection string

const (
	Participants   Collection = "participants"
	MatchingNights Collection = "matching_nights"
	Matchboxes     Collection = "matchboxes"
	Penalties      Collection = "penalties"
)

// Collections lists all record collections in a fixed order.
// Used by bulk operations (import wipes, migrations).
var Collections = []Collection{Participants, MatchingNights, Matchboxes, Penalties}

func (c Collection) valid() bool {
	switch c {
	case Participants, MatchingNights, Matchboxes, Penalties:
		return true
	}
	return false
}

// Row is one stored record: the surrogate key plus the raw JSON document.
type Row struct {
	ID   int64
	Data json.RawMessage
}

// querier abstracts *sql.DB and *sql.Tx so the same operations work inside
// and outside a transaction.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// session implements the record operations over a querier. Store and Tx both
// embed it, so every operation is available in either scope.
type session struct {
	q   querier
	now func() time.Time
}

// Get returns the document stored under key in the collection.
// A missing record is reported as found=false, not as an error.
func (s *session) Get(ctx context.Context, col Collection, id int64) (json.RawMessage, bool, error) {
	if !col.valid() {
		return nil, false, &StorageError{Op: "get", Collection: col, Err: errUnknownCollection}
	}

	var data []byte
	err := s.q.QueryRowContext(ctx,
		`SELECT data FROM `+string(col)+` WHERE id = ?`, id,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, &StorageError{Op: "get", Collection: col, Err: err}
	}
	return data, true, nil
}

// Put inserts or updates a document. A zero id inserts a keyless record and
// returns the newly assigned surrogate key; a non-zero id inserts the record
// under that key or replaces the existing document.
func (s *session) Put(ctx context.Context, col Collection, id int64, data []byte) (int64, error) {
	if !col.valid() {
		return 0, &StorageError{Op: "put", Collection: col, Err: errUnknownCollection}
	}

	if id == 0 {
		res, err := s.q.ExecContext(ctx,
			`INSERT INTO `+string(col)+` (data) VALUES (?)`, string(data),
		)
		if err != nil {
			return 0, &StorageError{Op: "put", Collection: col, Err: err}
		}
		newID, err := res.LastInsertId()
		if err != nil {
			return 0, &StorageError{Op: "put", Collection: col, Err: err}
		}
		return newID, nil
	}

	_, err := s.q.ExecContext(ctx,
		`INSERT INTO `+string(col)+` (id, data) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET data = excluded.data`,
		id, string(data),
	)
	if err != nil {
		return 0, &StorageError{Op: "put", Collection: col, Err: err}
	}
	return id, nil
}

// Delete removes the record stored under key. Deleting an absent record is a
// no-op.
func (s *session) Delete(ctx context.Context, col Collection, id int64) error {
	if !col.valid() {
		return &StorageError{Op: "delete", Collection: col, Err: errUnknownCollection}
	}

	if _, err := s.q.ExecContext(ctx,
		`DELETE FROM `+string(col)+` WHERE id = ?`, id,
	); err != nil {
		return &StorageError{Op: "delete", Collection: col, Err: err}
	}
	return nil
}

// Scan returns every record in the collection ordered by surrogate key.
// Returns an empty slice (not nil) when the collection is empty.
func (s *session) Scan(ctx context.Context, col Collection) ([]Row, error) {
	if !col.valid() {
		return nil, &StorageError{Op: "scan", Collection: col, Err: errUnknownCollection}
	}

	rows, err := s.q.QueryContext(ctx,
		`SELECT id, data FROM `+string(col)+` ORDER BY id ASC`,
	)
	if err != nil {
		return nil, &StorageError{Op: "scan", Collection: col, Err: err}
	}
	defer rows.Close()

	out := []Row{}
	for rows.Next() {
		var r Row
		var data []byte
		if err := rows.Scan(&r.ID, &data); err != nil {
			return nil, &StorageError{Op: "scan", Collection: col, Err: err}
		}
		r.Data = data
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "scan", Collection: col, Err: err}
	}
	return out, nil
}

// Clear removes every record from the collection. Surrogate keys remain
// monotonic afterwards (AUTOINCREMENT never reuses ids).
func (s *session) Clear(ctx context.Context, col Collection) error {
	if !col.valid() {
		return &StorageError{Op: "clear", Collection: col, Err: errUnknownCollection}
	}

	if _, err := s.q.ExecContext(ctx, `DELETE FROM `+string(col)); err != nil {
		return &StorageError{Op: "clear", Collection: col, Err: err}
	}
	return nil
}

// GetMeta returns the meta value stored under key.
// A missing key is reported as found=false, not as an error.
func (s *session) GetMeta(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.q.QueryRowContext(ctx,
		`SELECT value FROM meta WHERE key = ?`, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, &StorageError{Op: "get meta " + key, Err: err}
	}
	return value, true, nil
}

// PutMeta sets a meta key, stamping the row with the store clock's current
// UTC time.
func (s *session) PutMeta(ctx context.Context, key, value string) error {
	_, err := s.q.ExecContext(ctx,
		`INSERT INTO meta (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, s.now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return &StorageError{Op: "put meta " + key, Err: err}
	}
	return nil
}

var errUnknownCollection = fmt.Errorf("unknown collection")
