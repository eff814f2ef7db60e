package storeinfra

import (
	"context"
	"time"

	"github.com/viccon/sturdyc"

	"github.com/goliatone/go-response-cache/cache"
)

// SturdycStore is a capacity-bounded in-memory cache.Store backed by a
// sturdyc client. Use it when the process should bound cache memory and shed
// cold entries under pressure; use MemoryStore when an unbounded map is
// acceptable.
//
// Version compatibility note: this implementation assumes sturdyc v1.x API.
// Monitor sturdyc version upgrades for potential option mapping changes.
type SturdycStore struct {
	client *sturdyc.Client[cache.Entry]
}

var _ cache.Store = (*SturdycStore)(nil)

// NewSturdycStore validates the configuration and initializes a sturdyc
// client with the provided settings. Capacity, NumShards, TTL and
// EvictionPercentage are passed to sturdyc.New directly.
func NewSturdycStore(cfg Config) (*SturdycStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var options []sturdyc.Option
	if cfg.EvictionInterval > 0 {
		options = append(options, sturdyc.WithEvictionInterval(cfg.EvictionInterval))
	}

	client := sturdyc.New[cache.Entry](
		cfg.Capacity,
		cfg.NumShards,
		cfg.TTL,
		cfg.EvictionPercentage,
		options...,
	)

	return &SturdycStore{client: client}, nil
}

// Get implements cache.Store.
func (s *SturdycStore) Get(ctx context.Context, key string) (cache.Entry, bool, error) {
	entry, ok := s.client.Get(key)
	if !ok {
		return cache.Entry{}, false, nil
	}
	return entry, true, nil
}

// Upsert implements cache.Store. Set replaces any prior value for the key.
func (s *SturdycStore) Upsert(ctx context.Context, entry cache.Entry) error {
	s.client.Set(entry.Key, entry)
	return nil
}

// Delete implements cache.Store.
func (s *SturdycStore) Delete(ctx context.Context, key string) error {
	s.client.Delete(key)
	return nil
}

// DeleteAll implements cache.Store.
func (s *SturdycStore) DeleteAll(ctx context.Context) error {
	for _, key := range s.client.ScanKeys() {
		s.client.Delete(key)
	}
	return nil
}

// DeleteExpired implements cache.Store. It removes entries whose own max age
// has elapsed; sturdyc's backend TTL eviction runs independently of this.
func (s *SturdycStore) DeleteExpired(ctx context.Context, now time.Time) error {
	for _, key := range s.client.ScanKeys() {
		entry, ok := s.client.Get(key)
		if !ok {
			continue
		}
		if entry.Expired(now) {
			s.client.Delete(key)
		}
	}
	return nil
}
