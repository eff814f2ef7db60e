// Package cache provides the store adapter, freshness policy and key
// generation used by the response caching engine.
//
// # Overview
//
// This package exports the collaborator contracts and their default
// implementations:
//
//   - Store: the persistent key-value backend holding Entry records
//   - Codec: converts typed bodies to and from persisted bytes (JSON and
//     msgpack implementations included)
//   - Adapter: ties a Store and a Codec together, evaluating freshness and
//     recovering from every cache-level failure
//   - GenerateKey: builds deterministic cache keys from request parameters
//
// # Basic Usage
//
//	store := storeinfra.NewMemoryStore()
//	adapter := cache.NewAdapter(store, cache.JSONCodec{})
//
//	key := cache.GenerateKey("GET", "https://api.example.com/users/1", "")
//	if hit, ok := cache.Read[User](ctx, adapter, key, cfg); ok {
//	    return hit, nil
//	}
//
// # Freshness Policy
//
// An entry's validity depends on the strategy in the per-call Config:
// StrategyCacheOnly accepts any age, StrategyCacheFirst accepts entries
// within StaleWhileRevalidate, and every other strategy accepts entries
// within MaxAge. Entry ages are measured against the adapter clock, which is
// injectable for tests.
//
// # Error Handling
//
// The package prioritizes availability over strictness. A store error or a
// corrupted entry on read degrades to a cache miss; an encode or store error
// on write is logged and discarded. Cache failures are an implementation
// detail invisible to callers except through the timing and staleness of
// data.
//
// # Key Generation
//
// GenerateKey combines the upper-cased HTTP method with an xxhash of the URL
// and an optional body hash, joined by KeySeparator. Identical inputs always
// produce identical keys; the hash keeps keys short and store-safe.
//
// # See Also
//
// For the policy engines that drive reads and write-through, see the
// responsecache package. For the provided Store backends, see
// internal/storeinfra (wired through pkg/di).
package cache
