/*
locks.go - Striped read/write locks keyed by owner

PURPOSE:
  Serializes writes per owner while letting listings for the same owner run
  concurrently. Writes for different owners proceed independently (unless
  they collide on a shard - see below).

WHY STRIPING:
  A lazily-grown map of one lock per owner never shrinks; it is bounded by
  the number of distinct owners ever seen, not currently-active ones. A
  fixed-width stripe table bounds memory at the cost of occasional false
  contention between unrelated owners that hash to the same shard. With the
  default 256 shards that collision probability is small enough for the
  throughput this ledger targets.
*/
package ledger

import (
	"hash/fnv"
	"sync"
)

// DefaultLockShards is the stripe width used when the caller passes 0.
const DefaultLockShards = 256

// LockTable maps owners onto a fixed set of read/write locks.
type LockTable struct {
	shards []sync.RWMutex
}

// NewLockTable builds a table with the given number of shards.
// Width 0 selects DefaultLockShards.
func NewLockTable(width int) *LockTable {
	if width <= 0 {
		width = DefaultLockShards
	}
	return &LockTable{shards: make([]sync.RWMutex, width)}
}

// For returns the lock guarding the given owner. The same owner always maps
// to the same lock; two different owners usually map to different ones.
func (t *LockTable) For(owner string) *sync.RWMutex {
	return &t.shards[t.shardIndex(owner)]
}

func (t *LockTable) shardIndex(owner string) int {
	h := fnv.New32a()
	h.Write([]byte(owner))
	return int(h.Sum32() % uint32(len(t.shards)))
}
