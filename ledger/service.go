/*
service.go - Ledger orchestration

PURPOSE:
  The Service is the only entry point other subsystems call. It sequences
  validation, duplicate detection, owner locking, identifier and timestamp
  assignment, and store access.

CONCURRENCY:
  - Create/Update/Delete hold the owner's write lock.
  - List holds the owner's read lock, so listings for one owner run
    concurrently with each other but never with a write.
  - Get takes no lock at all: a point read may interleave with a concurrent
    replacement or delete of the same record. That trade favors read
    throughput over strict isolation and is part of the contract.
  - The duplicate check runs inside the write-locked section. The inherited
    design checked before locking, which let two identical concurrent
    creates both slip through; serializing the check with the write closes
    that window.

SEE ALSO:
  - validate.go: Request field validation
  - store.go: Storage contract
*/
package ledger

import (
	"context"
	"strconv"
	"time"
)

// Service orchestrates all ledger operations.
type Service struct {
	store Store
	locks *LockTable
	seq   *Sequence

	// now stamps CreatedAt/UpdatedAt; injectable for tests.
	now func() time.Time
}

// NewService wires a Service over the given store. A nil lock table gets
// the default stripe width.
func NewService(store Store, locks *LockTable) *Service {
	if locks == nil {
		locks = NewLockTable(0)
	}
	return &Service{
		store: store,
		locks: locks,
		seq:   NewSequence(),
		now:   time.Now,
	}
}

// =============================================================================
// OPERATIONS
// =============================================================================

// Create validates the request, rejects a repeat of the owner's most recent
// record, assigns the next identifier and timestamps, and stores the record.
func (s *Service) Create(ctx context.Context, req Request) (*Transaction, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	lock := s.locks.For(req.Owner)
	lock.Lock()
	defer lock.Unlock()

	if err := s.checkDuplicate(ctx, req); err != nil {
		return nil, err
	}

	ts := s.now().UnixMilli()
	tx := &Transaction{
		ID:           s.seq.Next(),
		Owner:        req.Owner,
		Counterparty: req.Counterparty,
		Amount:       req.Amount,
		Type:         req.Type,
		Description:  req.Description,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}

	if err := s.store.Save(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// Update replaces the record owner+id with the request's fields, preserving
// ID and the original CreatedAt. Ownership is immutable: a request naming a
// different owner is rejected outright.
func (s *Service) Update(ctx context.Context, owner string, id uint64, req Request) (*Transaction, error) {
	if req.Owner != owner {
		return nil, &ValidationError{Field: "owner", Message: "transaction owner cannot be changed"}
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	existing, err := s.store.FindByOwnerAndID(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, &NotFoundError{Owner: owner, ID: id}
	}

	tx := &Transaction{
		ID:           id,
		Owner:        owner,
		Counterparty: req.Counterparty,
		Amount:       req.Amount,
		Type:         req.Type,
		Description:  req.Description,
		CreatedAt:    existing.CreatedAt,
		UpdatedAt:    s.now().UnixMilli(),
	}

	lock := s.locks.For(owner)
	lock.Lock()
	defer lock.Unlock()

	if err := s.store.Save(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// Delete removes the record owner+id from the ledger.
func (s *Service) Delete(ctx context.Context, owner string, id uint64) error {
	lock := s.locks.For(owner)
	lock.Lock()
	defer lock.Unlock()

	removed, err := s.store.DeleteByOwnerAndID(ctx, owner, id)
	if err != nil {
		return err
	}
	if removed == nil {
		return &NotFoundError{Owner: owner, ID: id}
	}
	return nil
}

// Get returns the record owner+id. Lock-free point read.
func (s *Service) Get(ctx context.Context, owner string, id uint64) (*Transaction, error) {
	if owner == "" {
		return nil, &ValidationError{Field: "owner", Message: "owner must not be empty"}
	}

	tx, err := s.store.FindByOwnerAndID(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, &NotFoundError{Owner: owner, ID: id}
	}
	return tx, nil
}

// List returns one page of the owner's records, ascending by id.
func (s *Service) List(ctx context.Context, owner string, page, size int) (*Page, error) {
	if owner == "" {
		return nil, &ValidationError{Field: "owner", Message: "owner must not be empty"}
	}
	if page < 0 {
		return nil, &ValidationError{Field: "page", Message: "page must not be negative"}
	}
	if size < 1 {
		return nil, &ValidationError{Field: "size", Message: "page size must be at least 1"}
	}
	if size > MaxPageSize {
		return nil, &ValidationError{Field: "size", Message: "page size must not exceed 100"}
	}

	lock := s.locks.For(owner)
	lock.RLock()
	defer lock.RUnlock()

	return s.store.ListByOwner(ctx, owner, page, size)
}

// =============================================================================
// DUPLICATE DETECTION
// =============================================================================

// checkDuplicate compares the request against the owner's single most
// recent record. The window is exactly one record deep: repeating a
// transaction fails once immediately after it is recorded, and becomes
// acceptable again as soon as any other transaction intervenes. Caller
// holds the owner's write lock.
func (s *Service) checkDuplicate(ctx context.Context, req Request) error {
	last, err := s.store.LastByOwner(ctx, req.Owner)
	if err != nil {
		return err
	}
	if last == nil {
		return nil
	}

	if last.Amount.Equal(req.Amount) &&
		last.Type == req.Type &&
		last.Counterparty == req.Counterparty &&
		last.Description == req.Description {
		return &DuplicateError{Owner: req.Owner, ExistingID: last.ID}
	}
	return nil
}

// =============================================================================
// IDENTIFIER PARSING
// =============================================================================

// ParseID parses an externally supplied identifier string. Anything that is
// not a non-negative 64-bit integer is a validation failure, not an
// internal error.
func ParseID(s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, &ValidationError{Field: "id", Message: "transaction id must be a non-negative 64-bit integer"}
	}
	return id, nil
}
