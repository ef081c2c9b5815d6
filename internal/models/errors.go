package models

import (
	"errors"
	"fmt"
)

// Error kinds shared by every layer. Callers branch with errors.Is; the
// concrete error carries context wrapped around one of these.
var (
	// ErrValidation reports a missing or malformed field.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound reports a reference to an admin, group or member that does
	// not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict reports a violated uniqueness rule (duplicate email,
	// duplicate membership, reused admin ID).
	ErrConflict = errors.New("conflict")

	// ErrStore reports that the underlying entity store could not complete
	// an operation.
	ErrStore = errors.New("store failure")
)

// StoreFailure tags a backend error as ErrStore while keeping the original
// error in the chain.
func StoreFailure(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStore, op, err)
}
