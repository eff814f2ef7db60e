// Package testsupport provides test doubles and fixture helpers shared by
// the package tests: scripted network operations with invocation counters, a
// recording in-memory store with injectable failures, and a controllable
// clock.
package testsupport

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-response-cache/cache"
	"github.com/goliatone/go-response-cache/response"
)

// OperationScript replays a queued sequence of outcomes as a network
// operation, counting invocations. When the queue is exhausted the last
// queued result repeats.
type OperationScript[T any] struct {
	mu       sync.Mutex
	calls    int
	outcomes []response.Outcome[T]
	errs     []error
}

// NewOperationScript creates an empty script. Queue at least one result
// before using Operation.
func NewOperationScript[T any]() *OperationScript[T] {
	return &OperationScript[T]{}
}

// Queue appends one attempt result. Returns the script for chaining.
func (s *OperationScript[T]) Queue(out response.Outcome[T], err error) *OperationScript[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outcomes = append(s.outcomes, out)
	s.errs = append(s.errs, err)
	return s
}

// Operation returns the scripted network operation.
func (s *OperationScript[T]) Operation() func(ctx context.Context) (response.Outcome[T], error) {
	return func(ctx context.Context) (response.Outcome[T], error) {
		s.mu.Lock()
		defer s.mu.Unlock()

		idx := s.calls
		s.calls++
		if idx >= len(s.outcomes) {
			idx = len(s.outcomes) - 1
		}
		return s.outcomes[idx], s.errs[idx]
	}
}

// Calls returns how many times the operation was invoked.
func (s *OperationScript[T]) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// RecordingStore is an in-memory cache.Store that records the operations
// performed against it and supports injecting failures per operation.
type RecordingStore struct {
	mu      sync.Mutex
	entries map[string]cache.Entry
	ops     []string

	GetErr           error
	UpsertErr        error
	DeleteErr        error
	DeleteAllErr     error
	DeleteExpiredErr error
}

var _ cache.Store = (*RecordingStore)(nil)

// NewRecordingStore creates an empty RecordingStore.
func NewRecordingStore() *RecordingStore {
	return &RecordingStore{entries: map[string]cache.Entry{}}
}

func (s *RecordingStore) record(op string) {
	s.ops = append(s.ops, op)
}

// Get implements cache.Store.
func (s *RecordingStore) Get(ctx context.Context, key string) (cache.Entry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("Get")
	if s.GetErr != nil {
		return cache.Entry{}, false, s.GetErr
	}
	entry, ok := s.entries[key]
	return entry, ok, nil
}

// Upsert implements cache.Store.
func (s *RecordingStore) Upsert(ctx context.Context, entry cache.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("Upsert")
	if s.UpsertErr != nil {
		return s.UpsertErr
	}
	s.entries[entry.Key] = entry
	return nil
}

// Delete implements cache.Store.
func (s *RecordingStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("Delete")
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	delete(s.entries, key)
	return nil
}

// DeleteAll implements cache.Store.
func (s *RecordingStore) DeleteAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("DeleteAll")
	if s.DeleteAllErr != nil {
		return s.DeleteAllErr
	}
	s.entries = map[string]cache.Entry{}
	return nil
}

// DeleteExpired implements cache.Store.
func (s *RecordingStore) DeleteExpired(ctx context.Context, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("DeleteExpired")
	if s.DeleteExpiredErr != nil {
		return s.DeleteExpiredErr
	}
	for key, entry := range s.entries {
		if entry.Expired(now) {
			delete(s.entries, key)
		}
	}
	return nil
}

// Ops returns the recorded operation names in call order.
func (s *RecordingStore) Ops() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.ops...)
}

// Len returns the number of stored entries.
func (s *RecordingStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Entry returns the stored entry for key.
func (s *RecordingStore) Entry(key string) (cache.Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[key]
	return entry, ok
}

// Put stores an entry directly, bypassing op recording. Useful for seeding.
func (s *RecordingStore) Put(entry cache.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.Key] = entry
}

// FrozenClock is a time source that only moves when advanced.
type FrozenClock struct {
	mu sync.Mutex
	t  time.Time
}

// NewFrozenClock creates a clock frozen at t.
func NewFrozenClock(t time.Time) *FrozenClock {
	return &FrozenClock{t: t}
}

// Now returns the frozen time.
func (c *FrozenClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

// Advance moves the clock forward by d.
func (c *FrozenClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// UniqueKey returns a cache key that will not collide with other tests.
func UniqueKey() string {
	return "test" + cache.KeySeparator + uuid.NewString()
}
