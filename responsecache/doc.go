// Package responsecache executes network operations under caching and retry
// policies.
//
// # Overview
//
// The package exposes three execution entry points over an Engine:
//
//   - ExecuteWithCache: runs one network operation under a cache strategy
//   - ExecuteWithRetry: re-attempts a failing operation with exponential
//     backoff
//   - ExecuteWithRetryAndCache: composes both, with retry nested inside the
//     cache policy's network step
//
// A network operation is a zero-argument call producing a response.Outcome.
// The engines wrap it, execute it under policy, and return an outcome;
// successful results are cached as a side effect where policy dictates.
//
// # Basic Usage
//
//	adapter := cache.NewAdapter(store, cache.JSONCodec{})
//	engine := responsecache.New(adapter)
//
//	key := cache.GenerateKey("GET", url, "")
//	cfg := cache.DefaultConfig()
//	cfg.Strategy = cache.StrategyCacheFirst
//
//	outcome, err := responsecache.ExecuteWithCache(ctx, engine, key, cfg,
//	    func(ctx context.Context) (response.Outcome[User], error) {
//	        return client.FetchUser(ctx, url)
//	    })
//
// # Strategies
//
// Five strategies select how cache and network interleave for one call:
//
//   - StrategyCacheOnly: serve a valid cached entry or fail with
//     ErrNoCachedData; the network is never invoked
//   - StrategyNetworkOnly: always invoke the network, writing successes
//     through to the cache
//   - StrategyCacheFirst: serve a valid cached entry, otherwise go to the
//     network and write through
//   - StrategyNetworkFirst: invoke the network first; fall back to a valid
//     cached entry only when the transport itself fails (a returned
//     ServerError or UnknownError outcome does not trigger the fallback)
//   - StrategyCacheWithExpiry: like StrategyCacheFirst with the expiry-based
//     freshness window; ForceRefresh skips the cache read entirely
//
// Write-through happens only on Success outcomes, so error responses never
// pollute the cache. Cache reads never fail the caller: a corrupted or
// absent entry degrades to "go to network" or, when no network is allowed,
// to an explicit NetworkError.
//
// # Retry Semantics
//
// ExecuteWithRetry performs at most MaxAttempts invocations, sleeping
// between attempts with delays of InitialDelay multiplied by BackoffFactor
// and capped at MaxDelay (100ms, 200ms, 400ms, 800ms, 1s, 1s, ... with the
// defaults). The final attempt's result is returned verbatim; the engine
// never introduces an error kind of its own. MaxAttempts of 1 or less means
// a single attempt with no delay.
//
// # Concurrency
//
// The engines spawn no background work; retries are strictly sequential and
// each call may suspend only during the network operation or the backoff
// delay. Both suspension points honor context cancellation: a cancelled call
// aborts without writing a cache entry and discards any computed outcome.
//
// Concurrent calls with the same cache key are not deduplicated: each call
// may independently invoke the network and independently overwrite the
// entry. The backing stores resolve concurrent same-key writes
// last-write-wins.
//
// # See Also
//
// For the store adapter, freshness rules and key generation, see the cache
// package. For container wiring, see pkg/di.
package responsecache
