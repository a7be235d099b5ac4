/*
errors.go - Centralized error types for the ledger

PURPOSE:
  All error kinds in one place for consistency and discoverability.
  The API layer maps these onto HTTP statuses; nothing else about
  transport leaks into this package.

ERROR CATEGORIES:
  1. Validation errors - malformed or out-of-bounds request fields
  2. Not-found errors  - no record for owner+id
  3. Duplicate errors  - request repeats the owner's most recent record
  4. Range errors      - page offset beyond the owner's record count
  5. Capacity errors   - the global record-count guard tripped

USAGE:
  Callers classify with errors.Is / errors.As:

    if errors.Is(err, ledger.ErrNotFound) { ... }

    var page *ledger.PageOutOfRangeError
    if errors.As(err, &page) { log.Println(page.Total) }
*/
package ledger

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrValidation is the base of every malformed-request failure.
	ErrValidation = errors.New("invalid request")

	// ErrNotFound is returned when no record exists for owner+id.
	ErrNotFound = errors.New("transaction not found")

	// ErrDuplicateTransaction is returned when a create repeats the owner's
	// most recently stored record (same amount, type, counterparty and
	// description). The comparison window is exactly one record deep.
	ErrDuplicateTransaction = errors.New("duplicate transaction")

	// ErrPageOutOfRange is returned when the requested page offset is at or
	// beyond the owner's total record count (and the owner has records).
	ErrPageOutOfRange = errors.New("page out of range")

	// ErrLedgerFull is returned when the global record-count guard trips.
	ErrLedgerFull = errors.New("ledger capacity exceeded")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ValidationError reports which field failed and why.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NotFoundError identifies the missing record.
type NotFoundError struct {
	Owner string
	ID    uint64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no transaction %d for user %s", e.ID, e.Owner)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// DuplicateError identifies the record the request collided with.
type DuplicateError struct {
	Owner      string
	ExistingID uint64
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate transaction for user %s: matches record %d", e.Owner, e.ExistingID)
}

func (e *DuplicateError) Unwrap() error { return ErrDuplicateTransaction }

// PageOutOfRangeError reports the owner's total so callers can re-page.
type PageOutOfRangeError struct {
	Page  int
	Size  int
	Total int
}

func (e *PageOutOfRangeError) Error() string {
	return fmt.Sprintf("page %d (size %d) out of range, total records: %d", e.Page, e.Size, e.Total)
}

func (e *PageOutOfRangeError) Unwrap() error { return ErrPageOutOfRange }

// CapacityError reports the configured ceiling that was hit.
type CapacityError struct {
	Capacity int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("ledger is full: capacity %d reached", e.Capacity)
}

func (e *CapacityError) Unwrap() error { return ErrLedgerFull }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input
// rather than an internal fault.
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrDuplicateTransaction) ||
		errors.Is(err, ErrPageOutOfRange) ||
		errors.Is(err, ErrLedgerFull)
}

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
