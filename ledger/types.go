/*
Package ledger implements the concurrent in-memory transaction ledger.

PURPOSE:
  This package contains the core data model and orchestration for per-user
  financial transactions: deposits, withdrawals, and transfers. Records live
  entirely in memory; the ledger is volatile by design (no persistence).

KEY CONCEPTS IN THIS FILE (types.go):
  - Transaction: An immutable ledger record; updates produce replacements
  - TransactionType: DEPOSIT, WITHDRAWAL, or TRANSFER
  - Amount bounds: 9 integer digits, 2 fractional digits, strictly positive

DESIGN PRINCIPLES:
  1. Immutability: Stored records are never modified in place
  2. Precision: Uses decimal.Decimal to avoid floating-point errors
  3. Global identifiers: One shared counter feeds all owners, so ids order
     records across the whole ledger, not just per owner

SEE ALSO:
  - service.go: Orchestration (validation, locking, duplicate detection)
  - store.go: Storage interface
  - store/memory.go: Dual-indexed in-memory implementation
*/
package ledger

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// TRANSACTION TYPE
// =============================================================================

// TransactionType identifies the kind of a transaction.
type TransactionType string

const (
	TypeDeposit    TransactionType = "DEPOSIT"
	TypeWithdrawal TransactionType = "WITHDRAWAL"
	TypeTransfer   TransactionType = "TRANSFER"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	switch t {
	case TypeDeposit, TypeWithdrawal, TypeTransfer:
		return true
	}
	return false
}

// =============================================================================
// AMOUNT BOUNDS
// =============================================================================

// MaxAmount is the largest accepted transaction amount: 9 integer digits
// and 2 fractional digits.
var MaxAmount = decimal.RequireFromString("999999999.99")

// MaxFractionDigits caps the scale of an amount.
const MaxFractionDigits = 2

// Field length bounds shared by validation and the API layer.
const (
	MaxOwnerLen       = 20
	MaxDescriptionLen = 20
)

// =============================================================================
// TRANSACTION - Immutable ledger record
// =============================================================================

// Transaction is a single ledger record. Once stored it is never mutated;
// an update replaces the whole record, preserving ID and CreatedAt.
type Transaction struct {
	// ID is globally unique across all owners and never reused.
	ID uint64

	// Owner is the username the record belongs to. Immutable post-creation.
	Owner string

	// Counterparty is the other party of a TRANSFER; empty otherwise.
	Counterparty string

	Amount decimal.Decimal
	Type   TransactionType

	// Description is optional free text, at most 20 characters.
	Description string

	// CreatedAt and UpdatedAt are Unix millisecond timestamps. CreatedAt is
	// fixed at creation; UpdatedAt is refreshed on every replacement.
	CreatedAt int64
	UpdatedAt int64
}

// Request carries the caller-supplied fields for create and update.
// Identifier and timestamps are assigned by the service, never by callers.
type Request struct {
	Owner        string
	Counterparty string
	Amount       decimal.Decimal
	Type         TransactionType
	Description  string
}
