package cache

import (
	"sync"
	"time"
)

// SlotKey identifies one independently fetched order set within a region:
// every (type, side) pair is its own upstream fetch domain.
type SlotKey struct {
	TypeID int32
	Buy    bool
}

// Shard is the per-region slot map for station order caches. Readers locate
// existing slots under a shared lock; a writer only ever inserts a missing
// slot. The slot set grows monotonically for the life of the process —
// slots are refilled in place, never removed — so each keeps its own
// independent expiry.
type Shard[V any] struct {
	mu     sync.RWMutex
	slots  map[SlotKey]*Bucket[V]
	minTTL time.Duration
}

// NewShard creates an empty shard whose slots use the given minimum TTL.
func NewShard[V any](minTTL time.Duration) *Shard[V] {
	return &Shard[V]{
		slots:  make(map[SlotKey]*Bucket[V]),
		minTTL: minTTL,
	}
}

// Slot returns the bucket for key, creating it if this is the first request
// for that (type, side) in the region. Creation re-checks under the write
// lock so racing callers converge on one bucket.
func (s *Shard[V]) Slot(key SlotKey) *Bucket[V] {
	s.mu.RLock()
	b := s.slots[key]
	s.mu.RUnlock()
	if b != nil {
		return b
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if b := s.slots[key]; b != nil {
		return b
	}
	b = NewBucket[V](s.minTTL)
	s.slots[key] = b
	return b
}

// Len returns the number of materialized slots.
func (s *Shard[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.slots)
}

// Entries returns the total number of stored entries across all slots.
func (s *Shard[V]) Entries() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, b := range s.slots {
		total += b.Len()
	}
	return total
}
