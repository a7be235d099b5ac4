/*
store.go - Storage interface for transaction records

PURPOSE:
  Defines the contract between the service and the record storage. The
  concrete implementation lives in store/memory.go; the service never
  depends on it directly.

OWNERSHIP CHECK:
  Identifiers are global, but every lookup is scoped by owner: a record
  found under an id that belongs to a different owner is treated as not
  found. This prevents identifier-guessing across owners.

SYNCHRONIZATION CONTRACT:
  The store must be safe for concurrent use on its own, but it provides no
  cross-call isolation. Serialization of same-owner writes and the
  write-vs-list exclusion are the service's job, via LockTable.
*/
package ledger

import "context"

// Store persists transaction records in a dual-indexed structure: an
// ordered per-owner sequence plus a global id index.
type Store interface {
	// Save upserts by record ID: it inserts a new record or overwrites the
	// stored one with the same id. A new record that would exceed the
	// configured capacity fails with a CapacityError and writes nothing.
	Save(ctx context.Context, tx *Transaction) error

	// FindByOwnerAndID returns the record, or nil if no record with that id
	// exists or it belongs to a different owner.
	FindByOwnerAndID(ctx context.Context, owner string, id uint64) (*Transaction, error)

	// DeleteByOwnerAndID removes the record from both indexes and returns
	// it, or nil if absent (or owned by someone else).
	DeleteByOwnerAndID(ctx context.Context, owner string, id uint64) (*Transaction, error)

	// ListByOwner returns one page of the owner's records in ascending id
	// order. An owner with no records yields an empty page; a non-zero
	// offset at or past the total yields a PageOutOfRangeError.
	ListByOwner(ctx context.Context, owner string, page, size int) (*Page, error)

	// LastByOwner returns the owner's record with the highest id, or nil.
	LastByOwner(ctx context.Context, owner string) (*Transaction, error)
}

// Page is one window of an owner's transaction sequence.
type Page struct {
	Content []*Transaction
	Total   int
	Page    int
	Size    int
}
