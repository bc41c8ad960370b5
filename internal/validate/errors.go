package validate

import (
	"errors"
	"fmt"

	"github.com/roach88/matchtrack/internal/domain"
)

// ValidationError represents a rejected mutation. The proposed commit is
// dropped, the store is left untouched, and the structured fields carry
// enough context to render a precise user-facing message.
type ValidationError struct {
	// Code identifies the violated rule.
	Code Code

	// Message is a human-readable description.
	Message string

	// Pair is the offending pair (gender conflict, invalid pair).
	Pair domain.Pair

	// Count is the number of complete pairs (incomplete pairs).
	Count int

	// Required and Given are the confirmed-match floor and the proposed
	// light count (lights below confirmed).
	Required int
	Given    int

	// Name is the offending participant name (duplicate participant).
	Name string
}

// Code categorizes validation errors, one per rule.
type Code string

const (
	// CodeIncompletePairs indicates a matching night without exactly 10
	// complete pairs.
	CodeIncompletePairs Code = "INCOMPLETE_PAIRS"

	// CodeGenderConflict indicates a pair whose sides share a gender.
	CodeGenderConflict Code = "GENDER_CONFLICT"

	// CodeTooManyLights indicates a light count above 10.
	CodeTooManyLights Code = "TOO_MANY_LIGHTS"

	// CodeLightsBelowConfirmed indicates a light count below the number of
	// already-confirmed perfect matches seated this night.
	CodeLightsBelowConfirmed Code = "LIGHTS_BELOW_CONFIRMED"

	// CodeDuplicateParticipant indicates a participant seated twice.
	CodeDuplicateParticipant Code = "DUPLICATE_PARTICIPANT"

	// CodeInvalidPair indicates a matchbox pair that is empty on either side
	// or not of opposing gender.
	CodeInvalidPair Code = "INVALID_PAIR"

	// CodeIncompleteSaleInfo indicates a sold matchbox without a positive
	// price and a buyer.
	CodeIncompleteSaleInfo Code = "INCOMPLETE_SALE_INFO"
)

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsValidationError returns true if the error is a ValidationError.
// Uses errors.As to handle wrapped errors.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// NewIncompletePairsError creates a ValidationError for a night with fewer
// than 10 complete pairs. count is the number of complete pairs found.
func NewIncompletePairsError(count int) *ValidationError {
	return &ValidationError{
		Code:    CodeIncompletePairs,
		Message: fmt.Sprintf("matching night needs exactly 10 complete pairs, got %d", count),
		Count:   count,
	}
}

// NewGenderConflictError creates a ValidationError for a same-gender pair.
func NewGenderConflictError(pair domain.Pair) *ValidationError {
	return &ValidationError{
		Code:    CodeGenderConflict,
		Message: fmt.Sprintf("pair (%s, %s) is not of opposing gender", pair.Woman, pair.Man),
		Pair:    pair,
	}
}

// NewTooManyLightsError creates a ValidationError for a light count above 10.
func NewTooManyLightsError(given int) *ValidationError {
	return &ValidationError{
		Code:    CodeTooManyLights,
		Message: fmt.Sprintf("light count %d exceeds 10", given),
		Given:   given,
	}
}

// NewLightsBelowConfirmedError creates a ValidationError for a light count
// below the confirmed-match floor.
func NewLightsBelowConfirmedError(required, given int) *ValidationError {
	return &ValidationError{
		Code:     CodeLightsBelowConfirmed,
		Message:  fmt.Sprintf("light count %d is below %d already-confirmed perfect matches", given, required),
		Required: required,
		Given:    given,
	}
}

// NewDuplicateParticipantError creates a ValidationError for a participant
// seated in more than one pair.
func NewDuplicateParticipantError(name string) *ValidationError {
	return &ValidationError{
		Code:    CodeDuplicateParticipant,
		Message: fmt.Sprintf("participant %q appears in more than one pair", name),
		Name:    name,
	}
}

// NewInvalidPairError creates a ValidationError for a matchbox pair that is
// incomplete or not of opposing gender.
func NewInvalidPairError(pair domain.Pair) *ValidationError {
	return &ValidationError{
		Code:    CodeInvalidPair,
		Message: fmt.Sprintf("matchbox pair (%s, %s) is invalid", pair.Woman, pair.Man),
		Pair:    pair,
	}
}

// NewIncompleteSaleInfoError creates a ValidationError for a sold matchbox
// missing a positive price or a buyer.
func NewIncompleteSaleInfoError() *ValidationError {
	return &ValidationError{
		Code:    CodeIncompleteSaleInfo,
		Message: "sold matchbox requires a price above zero and a buyer",
	}
}
