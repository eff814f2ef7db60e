package cache

import (
	"context"
	"time"
)

// Store is the persistent key-value collaborator that owns cache entries.
// Every access is a fresh round trip keyed by string; the policy layer never
// holds a long-lived reference to an entry.
//
// Implementations must treat Upsert as replace-on-conflict (last-write-wins)
// and should serialize concurrent writes to the same key. See the
// internal/storeinfra package for the provided backends.
type Store interface {
	// Get looks up an entry by key. The second return value is false when no
	// entry exists for the key.
	Get(ctx context.Context, key string) (Entry, bool, error)

	// Upsert inserts the entry, fully replacing any prior entry for the key.
	Upsert(ctx context.Context, entry Entry) error

	// Delete removes the entry for the key, if any.
	Delete(ctx context.Context, key string) error

	// DeleteAll removes every entry.
	DeleteAll(ctx context.Context) error

	// DeleteExpired removes entries whose own max age has elapsed at now.
	DeleteExpired(ctx context.Context, now time.Time) error
}
