package catalog

import (
	"errors"
	"fmt"
)

// Error kinds returned by catalog operations. Callers branch with errors.Is;
// the presentation layer owns the user-facing wording.
var (
	// ErrMissingField marks a required field that was empty after trimming.
	ErrMissingField = errors.New("missing required field")

	// ErrInvalidNumber marks a numeric field that failed to parse or was
	// negative.
	ErrInvalidNumber = errors.New("invalid numeric value")

	// ErrNameConflict marks a name already held by another product,
	// compared case-insensitively.
	ErrNameConflict = errors.New("a product with this name already exists")

	// ErrCodeConflict marks a non-empty code already held by another
	// product.
	ErrCodeConflict = errors.New("a product with this code already exists")

	// ErrNotFound marks an id with no backing record.
	ErrNotFound = errors.New("product not found")

	// ErrStoreUnavailable marks a persistence failure unrelated to the
	// input. The catalog does not retry; that policy belongs to callers.
	ErrStoreUnavailable = errors.New("inventory store unavailable")
)

// ValidationError ties a rejected input field to the rule it broke. It
// unwraps to ErrMissingField or ErrInvalidNumber.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %q: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func missingField(field string) *ValidationError {
	return &ValidationError{Field: field, Err: ErrMissingField}
}

func invalidNumber(field string) *ValidationError {
	return &ValidationError{Field: field, Err: ErrInvalidNumber}
}
