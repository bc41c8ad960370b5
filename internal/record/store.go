package record

import (
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Store provides durable storage for matchtrack domain records.
// Uses SQLite with WAL mode for concurrent read access.
type Store struct {
	db *sql.DB
	session
}

// Option configures a Store.
type Option func(*Store)

// WithTimeSource replaces the clock used to stamp meta rows. Tests use a
// fixed source so updated_at values are deterministic.
func WithTimeSource(now func() time.Time) Option {
	return func(s *Store) {
		s.session.now = now
	}
}

// Open creates or opens the SQLite database at path, applies the connection
// pragmas, and creates any missing tables from the embedded schema. Safe to
// call on an existing database. Document shape upgrades are NOT applied
// here; run the migrate package after opening.
func Open(path string, opts ...Option) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, &StorageError{Op: "open", Err: err}
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, &StorageError{Op: "open", Err: err}
	}

	// One writer at a time, matching the single-logical-writer contract.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, err
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, &StorageError{Op: "apply schema", Err: err}
	}

	s := &Store{db: db, session: session{q: db, now: time.Now}}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return &StorageError{Op: fmt.Sprintf("exec %q", pragma), Err: err}
		}
	}

	return nil
}

// verifyPragma checks that a pragma is set to the expected value.
// Used for testing.
func (s *Store) verifyPragma(name, expected string) error {
	var value string
	if err := s.db.QueryRow("PRAGMA " + name).Scan(&value); err != nil {
		return fmt.Errorf("query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}
