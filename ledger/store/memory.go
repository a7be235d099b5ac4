/*
Package store provides ledger.Store implementations.

memory.go - Dual-indexed in-memory store

STRUCTURE:
  Two views over a single source of truth:
  - byID:   global map id -> *Transaction (the arena; O(1) lookup)
  - owners: per-owner sorted slice of ids (the ordered sequence)

  The per-owner slice holds id references only, never record copies, so the
  two views cannot drift: a record is in the owner slice iff it is in byID.

ORDERING:
  Ids are assigned by a monotonic counter, so inserts land at the tail of
  the owner slice in the common case; the binary-search insert degrades
  gracefully if they ever do not. "Skip N, take M" over the slice costs
  O(M) plus the lookup, never a full materialization of the records.

CAPACITY:
  One global record-count guard, checked before any index is touched, so a
  rejected Save writes nothing. (The inherited design carried two competing
  caps - per-owner records and distinct owners; the single global guard
  replaces both.)

LOCKING:
  The internal RWMutex only makes the maps safe to touch concurrently; it
  is held for short, bounded sections. Same-owner write serialization and
  the write-vs-list exclusion live in the service's LockTable, not here.
*/
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/punwinger/bank-transaction/ledger"
)

// DefaultCapacity mirrors the record ceiling of the inherited system.
const DefaultCapacity = 100_000_000

// Memory is the in-memory ledger.Store.
type Memory struct {
	mu       sync.RWMutex
	byID     map[uint64]*ledger.Transaction
	owners   map[string][]uint64
	capacity int
	count    int
}

// NewMemory builds an empty store. Capacity 0 selects DefaultCapacity.
func NewMemory(capacity int) *Memory {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Memory{
		byID:     make(map[uint64]*ledger.Transaction),
		owners:   make(map[string][]uint64),
		capacity: capacity,
	}
}

// Save upserts by tx.ID. Overwrites replace the arena record in place and
// leave the owner sequence untouched; inserts update both indexes.
func (m *Memory) Save(_ context.Context, tx *ledger.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byID[tx.ID]; exists {
		m.byID[tx.ID] = tx
		return nil
	}

	if m.count >= m.capacity {
		return &ledger.CapacityError{Capacity: m.capacity}
	}

	m.byID[tx.ID] = tx
	m.owners[tx.Owner] = insertID(m.owners[tx.Owner], tx.ID)
	m.count++
	return nil
}

// FindByOwnerAndID resolves the id through the global index, then checks
// ownership: a hit under someone else's id is treated as not found.
func (m *Memory) FindByOwnerAndID(_ context.Context, owner string, id uint64) (*ledger.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tx, ok := m.byID[id]
	if !ok || tx.Owner != owner {
		return nil, nil
	}
	return tx, nil
}

// DeleteByOwnerAndID removes from both indexes. When the owner's sequence
// empties, the owner entry itself is dropped to bound memory.
func (m *Memory) DeleteByOwnerAndID(_ context.Context, owner string, id uint64) (*ledger.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx, ok := m.byID[id]
	if !ok || tx.Owner != owner {
		return nil, nil
	}

	delete(m.byID, id)
	ids := removeID(m.owners[owner], id)
	if len(ids) == 0 {
		delete(m.owners, owner)
	} else {
		m.owners[owner] = ids
	}
	m.count--
	return tx, nil
}

// ListByOwner pages over the owner's ascending-id sequence.
func (m *Memory) ListByOwner(_ context.Context, owner string, page, size int) (*ledger.Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := m.owners[owner]
	offset, limit, err := ledger.PageWindow(len(ids), page, size)
	if err != nil {
		return nil, err
	}

	content := make([]*ledger.Transaction, 0, limit)
	for _, id := range ids[offset : offset+limit] {
		content = append(content, m.byID[id])
	}

	return &ledger.Page{
		Content: content,
		Total:   len(ids),
		Page:    page,
		Size:    size,
	}, nil
}

// LastByOwner returns the record with the owner's highest id, or nil.
func (m *Memory) LastByOwner(_ context.Context, owner string) (*ledger.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := m.owners[owner]
	if len(ids) == 0 {
		return nil, nil
	}
	return m.byID[ids[len(ids)-1]], nil
}

// Count returns the number of records currently stored, across all owners.
func (m *Memory) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.count
}

// insertID adds id to the sorted slice. Fast path: ids arrive in ascending
// order, so new ids append at the tail without searching.
func insertID(ids []uint64, id uint64) []uint64 {
	if n := len(ids); n == 0 || ids[n-1] < id {
		return append(ids, id)
	}

	i := sort.Search(len(ids), func(i int) bool { return ids[i] >= id })
	ids = append(ids, 0)
	copy(ids[i+1:], ids[i:])
	ids[i] = id
	return ids
}

// removeID drops id from the sorted slice, if present.
func removeID(ids []uint64, id uint64) []uint64 {
	i := sort.Search(len(ids), func(i int) bool { return ids[i] >= id })
	if i == len(ids) || ids[i] != id {
		return ids
	}
	return append(ids[:i], ids[i+1:]...)
}

var _ ledger.Store = (*Memory)(nil)
