package responsecache

import (
	"context"

	"github.com/goliatone/go-response-cache/cache"
	"github.com/goliatone/go-response-cache/response"
)

// ExecuteWithRetryAndCache nests the retry engine inside the cache policy's
// network-invocation step: the policy treats "the network operation" as a
// retrying operation. Retries therefore apply only to the transport call,
// never to a cache read, and a success from a late retry is what gets
// written through to the cache.
func ExecuteWithRetryAndCache[T any](ctx context.Context, e *Engine, key string, cfg cache.Config, retry RetryConfig, op Operation[T]) (response.Outcome[T], error) {
	retrying := func(ctx context.Context) (response.Outcome[T], error) {
		return ExecuteWithRetry(ctx, retry, op)
	}
	return ExecuteWithCache(ctx, e, key, cfg, retrying)
}
