// Package cache implements the expiring reply buckets behind every resource
// family. A bucket holds one key->reply store plus a single absolute expiry:
// the whole bucket refills atomically when it expires, and a refill may bulk
// insert entries derived from a single upstream fetch.
package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// cleanupInterval is how often the backing store sweeps entries whose own
// TTL has passed. Freshness is governed by the bucket expiry, not the sweep.
const cleanupInterval = 10 * time.Minute

// FillFunc fetches upstream and returns the full entry set for a bucket
// together with the upstream-declared absolute expiry. It is invoked at most
// once per refill, under the bucket's fetch lock.
type FillFunc[V any] func(ctx context.Context) (entries map[string]V, upstreamExpiry time.Time, err error)

// Bucket is one cache slot: an entry store with a single expiry and an
// exclusive fetch lock. The fetch lock is deliberately held across the
// upstream call and the repopulation; that is what makes refills
// single-flight. Lookups never take it.
type Bucket[V any] struct {
	mu     sync.Mutex
	expiry atomic.Int64 // unix nanoseconds; 0 = never filled
	store  *gocache.Cache
	minTTL time.Duration
}

// NewBucket creates an empty, expired bucket. minTTL is the lower bound
// applied to every expiry this bucket stores.
func NewBucket[V any](minTTL time.Duration) *Bucket[V] {
	return &Bucket[V]{
		store:  gocache.New(gocache.NoExpiration, cleanupInterval),
		minTTL: minTTL,
	}
}

// Lookup is the non-blocking fresh read. found is only meaningful when
// fresh is true: a fresh bucket without the key means the upstream had no
// data for it, and callers answer with their family's empty reply.
func (b *Bucket[V]) Lookup(key string) (v V, found, fresh bool) {
	if time.Now().UnixNano() >= b.expiry.Load() {
		return v, false, false
	}
	v, found = b.get(key)
	return v, found, true
}

// GetOrFill returns the stored reply for key, refilling the bucket first if
// it has expired. The refill is double-checked: a caller that blocked on the
// fetch lock while another refilled simply reads the fresh store. found
// reports whether the (possibly just refilled) bucket holds key; a false
// with nil error maps to the family's empty reply.
func (b *Bucket[V]) GetOrFill(ctx context.Context, key string, fill FillFunc[V]) (v V, found bool, err error) {
	if v, ok, fresh := b.Lookup(key); fresh {
		return v, ok, nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if v, ok, fresh := b.Lookup(key); fresh {
		return v, ok, nil
	}

	entries, upstreamExpiry, err := fill(ctx)
	if err != nil {
		return v, false, err
	}
	b.refill(entries, upstreamExpiry)

	v, found = b.get(key)
	return v, found, nil
}

// refill replaces the whole entry set and publishes the new expiry. The
// expiry is published last so a concurrent Lookup can never observe a fresh
// bucket that is missing the new entries.
func (b *Bucket[V]) refill(entries map[string]V, upstreamExpiry time.Time) {
	expiry := time.Now().Add(b.minTTL)
	if upstreamExpiry.After(expiry) {
		expiry = upstreamExpiry
	}

	b.store.Flush()
	ttl := time.Until(expiry)
	for k, v := range entries {
		b.store.Set(k, v, ttl)
	}
	b.expiry.Store(expiry.UnixNano())
}

func (b *Bucket[V]) get(key string) (V, bool) {
	var zero V
	raw, ok := b.store.Get(key)
	if !ok {
		return zero, false
	}
	return raw.(V), true
}

// Expired reports whether the bucket needs a refill before serving.
func (b *Bucket[V]) Expired() bool {
	return time.Now().UnixNano() >= b.expiry.Load()
}

// Expiry returns the absolute expiry of the current entry set.
func (b *Bucket[V]) Expiry() time.Time {
	return time.Unix(0, b.expiry.Load())
}

// Len returns the number of stored entries.
func (b *Bucket[V]) Len() int {
	return b.store.ItemCount()
}
