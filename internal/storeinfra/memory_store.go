package storeinfra

import (
	"context"
	"time"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/goliatone/go-response-cache/cache"
)

// MemoryStore is an unbounded in-memory cache.Store backed by a lock-free
// concurrent map. Entries survive until deleted or swept; nothing persists
// across process restarts.
type MemoryStore struct {
	entries *xsync.MapOf[string, cache.Entry]
}

var _ cache.Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: xsync.NewMapOf[string, cache.Entry](),
	}
}

// Get implements cache.Store.
func (s *MemoryStore) Get(ctx context.Context, key string) (cache.Entry, bool, error) {
	entry, ok := s.entries.Load(key)
	if !ok {
		return cache.Entry{}, false, nil
	}
	return entry, true, nil
}

// Upsert implements cache.Store. Concurrent writes to the same key are
// serialized by the map; the last write wins.
func (s *MemoryStore) Upsert(ctx context.Context, entry cache.Entry) error {
	s.entries.Store(entry.Key, entry)
	return nil
}

// Delete implements cache.Store.
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.entries.Delete(key)
	return nil
}

// DeleteAll implements cache.Store.
func (s *MemoryStore) DeleteAll(ctx context.Context) error {
	s.entries.Range(func(key string, _ cache.Entry) bool {
		s.entries.Delete(key)
		return true
	})
	return nil
}

// DeleteExpired implements cache.Store.
func (s *MemoryStore) DeleteExpired(ctx context.Context, now time.Time) error {
	s.entries.Range(func(key string, entry cache.Entry) bool {
		if entry.Expired(now) {
			s.entries.Delete(key)
		}
		return true
	})
	return nil
}

// Len returns the number of stored entries.
func (s *MemoryStore) Len() int {
	return s.entries.Size()
}
