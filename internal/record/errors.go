package record

import (
	"errors"
	"fmt"
)

// StorageError represents an underlying storage failure (I/O, quota,
// corruption). It is fatal to the in-flight operation and surfaced verbatim
// to the caller; the engine never retries.
//
// Absent records are NOT storage errors - reads report them as a normal
// not-found result.
type StorageError struct {
	// Op names the failed operation, e.g. "put" or "begin tx".
	Op string

	// Collection is the affected collection, if any.
	Collection Collection

	// Err is the underlying driver error.
	Err error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	if e.Collection != "" {
		return fmt.Sprintf("storage: %s %s: %v", e.Op, e.Collection, e.Err)
	}
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying driver error.
func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsStorageError returns true if the error is a StorageError.
// Uses errors.As to handle wrapped errors.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
