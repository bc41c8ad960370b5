package repo

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cuejson "cuelang.org/go/encoding/json"

	"github.com/roach88/matchtrack/internal/domain"
	"github.com/roach88/matchtrack/internal/record"
)

//go:embed schema.cue
var schemaCUE string

// Database is the bulk import/export document. Date/time fields travel as
// ISO-8601 strings; the repository parses them into instants on import and
// serializes them back on export.
type Database struct {
	ExportID       string                 `json:"exportId,omitempty"`
	ExportedAt     string                 `json:"exportedAt,omitempty"`
	Participants   []domain.Participant   `json:"participants"`
	MatchingNights []domain.MatchingNight `json:"matchingNights"`
	Matchboxes     []domain.Matchbox      `json:"matchboxes"`
	Penalties      []domain.Penalty       `json:"penalties"`
}

// ImportError represents a malformed import document. The import aborts
// before any collection is cleared, so the store keeps its pre-import state.
type ImportError struct {
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ImportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("import: %s: %v", e.Message, e.Err)
	}
	return "import: " + e.Message
}

// Unwrap returns the underlying error.
func (e *ImportError) Unwrap() error {
	return e.Err
}

// IsImportError returns true if the error is an ImportError.
// Uses errors.As to handle wrapped errors.
func IsImportError(err error) bool {
	var ie *ImportError
	return errors.As(err, &ie)
}

// ExportAll snapshots all four collections into a transfer document.
func (r *Repository) ExportAll(ctx context.Context) (*Database, error) {
	participants, err := loadParticipants(ctx, r.store)
	if err != nil {
		return nil, err
	}
	nights, err := loadMatchingNights(ctx, r.store)
	if err != nil {
		return nil, err
	}
	boxes, err := loadMatchboxes(ctx, r.store)
	if err != nil {
		return nil, err
	}
	penalties, err := loadPenalties(ctx, r.store)
	if err != nil {
		return nil, err
	}

	return &Database{
		ExportID:       r.exportID(),
		ExportedAt:     r.now().UTC().Format(time.RFC3339),
		Participants:   participants,
		MatchingNights: nights,
		Matchboxes:     boxes,
		Penalties:      penalties,
	}, nil
}

// ImportAll replaces the entire store with the given document: clear all
// four collections, then bulk-insert the new arrays, inside one transaction.
// Partial import is not a supported state.
//
// The raw document is validated against the embedded CUE schema and fully
// decoded BEFORE the transaction begins; any malformed input returns an
// *ImportError with the store untouched.
func (r *Repository) ImportAll(ctx context.Context, data []byte) error {
	if err := validateImportDocument(data); err != nil {
		return err
	}

	var doc Database
	if err := json.Unmarshal(data, &doc); err != nil {
		// Typically an unparseable ISO-8601 timestamp.
		return &ImportError{Message: "decoding document", Err: err}
	}

	err := r.store.Transaction(ctx, func(tx *record.Tx) error {
		for _, col := range record.Collections {
			if err := tx.Clear(ctx, col); err != nil {
				return err
			}
		}

		if err := insertAll(ctx, tx, record.Participants, doc.Participants, func(p *domain.Participant) *int64 { return &p.ID }); err != nil {
			return err
		}
		if err := insertAll(ctx, tx, record.MatchingNights, doc.MatchingNights, func(n *domain.MatchingNight) *int64 { return &n.ID }); err != nil {
			return err
		}
		if err := insertAll(ctx, tx, record.Matchboxes, doc.Matchboxes, func(b *domain.Matchbox) *int64 { return &b.ID }); err != nil {
			return err
		}
		if err := insertAll(ctx, tx, record.Penalties, doc.Penalties, func(p *domain.Penalty) *int64 { return &p.ID }); err != nil {
			return err
		}

		// Imported documents are schema-current by construction: the CUE
		// schema describes the latest record shapes.
		if err := tx.PutMeta(ctx, domain.MetaSchemaVersion, strconv.Itoa(domain.SchemaVersion)); err != nil {
			return err
		}
		return r.touch(ctx, tx)
	})
	if err != nil {
		return err
	}

	slog.Info("import committed",
		"participants", len(doc.Participants),
		"matching_nights", len(doc.MatchingNights),
		"matchboxes", len(doc.Matchboxes),
		"penalties", len(doc.Penalties),
	)
	return nil
}

// insertAll bulk-inserts records, preserving surrogate keys carried by the
// document. Keyless records get fresh ids. The key accessor lets the id be
// zeroed before encoding: the row key stays authoritative, the stored
// document never duplicates it.
func insertAll[T any](ctx context.Context, tx *record.Tx, col record.Collection, records []T, key func(*T) *int64) error {
	for i := range records {
		field := key(&records[i])
		id := *field
		*field = 0

		data, err := record.Encode(records[i])
		if err != nil {
			return err
		}
		if _, err := tx.Put(ctx, col, id, data); err != nil {
			return err
		}
	}
	return nil
}

// validateImportDocument checks the raw bytes against the embedded CUE
// schema: required arrays present, enums and date formats well-formed.
func validateImportDocument(data []byte) error {
	cuectx := cuecontext.New()

	schema := cuectx.CompileString(schemaCUE)
	if err := schema.Err(); err != nil {
		return &ImportError{Message: "compiling import schema", Err: err}
	}

	expr, err := cuejson.Extract("import.json", data)
	if err != nil {
		return &ImportError{Message: "parsing document", Err: err}
	}
	doc := cuectx.BuildExpr(expr)
	if err := doc.Err(); err != nil {
		return &ImportError{Message: "building document value", Err: err}
	}

	unified := schema.LookupPath(cue.ParsePath("#Database")).Unify(doc)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return &ImportError{Message: "document does not match schema", Err: err}
	}
	return nil
}
