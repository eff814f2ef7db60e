package responsecache

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-response-cache/cache"
	"github.com/goliatone/go-response-cache/response"
)

// ErrNoCachedData is the cause carried by the NetworkError returned when
// StrategyCacheOnly finds no valid cached entry. It is a deliberate sentinel
// distinct from a genuine transport failure; assert on it with errors.Is.
var ErrNoCachedData = errors.New("no cached data available")

// Operation is a single network call producing a response outcome. A
// non-nil error means the transport itself failed before an outcome could be
// classified; a returned ServerError or UnknownError outcome is not an
// operation error. When the error is nil the outcome must be non-nil.
type Operation[T any] func(ctx context.Context) (response.Outcome[T], error)

// Engine executes network operations under a cache policy. It holds no
// per-call state; the per-call Config is passed into each execution.
type Engine struct {
	adapter *cache.Adapter
	log     zerolog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(log zerolog.Logger) Option {
	return func(e *Engine) {
		e.log = log
	}
}

// New creates an Engine over the given cache adapter.
func New(adapter *cache.Adapter, opts ...Option) *Engine {
	e := &Engine{
		adapter: adapter,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Adapter returns the engine's cache adapter, e.g. for explicit
// invalidation or expiry sweeps.
func (e *Engine) Adapter() *cache.Adapter {
	return e.adapter
}

// ExecuteWithCache runs op under the cache policy selected by cfg.Strategy
// and returns the resulting outcome. Successful network results are written
// through to the cache where the strategy dictates; error outcomes never
// pollute the cache, and cache-level failures degrade silently.
//
// The returned error is non-nil only when the call was cancelled or the
// strategy is unknown; every operation failure folds into the outcome.
func ExecuteWithCache[T any](ctx context.Context, e *Engine, key string, cfg cache.Config, op Operation[T]) (response.Outcome[T], error) {
	switch cfg.Strategy {
	case cache.StrategyCacheOnly:
		if hit, ok := cache.Read[T](ctx, e.adapter, key, cfg); ok {
			return hit, nil
		}
		return response.NetworkError[T]{Cause: ErrNoCachedData}, nil

	case cache.StrategyNetworkOnly:
		return fetchAndStore(ctx, e, key, cfg, op)

	case cache.StrategyCacheFirst:
		if hit, ok := cache.Read[T](ctx, e.adapter, key, cfg); ok {
			return hit, nil
		}
		return fetchAndStore(ctx, e, key, cfg, op)

	case cache.StrategyCacheWithExpiry:
		if !cfg.ForceRefresh {
			if hit, ok := cache.Read[T](ctx, e.adapter, key, cfg); ok {
				return hit, nil
			}
		}
		return fetchAndStore(ctx, e, key, cfg, op)

	case cache.StrategyNetworkFirst:
		out, err := op(ctx)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			// Fallback applies only when the transport failed outright, not
			// when the operation returned an error outcome.
			if hit, ok := cache.Read[T](ctx, e.adapter, key, cfg); ok {
				e.log.Debug().Str("key", key).Msg("network failed, serving cached entry")
				return hit, nil
			}
			return response.NetworkError[T]{Cause: err}, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		writeThrough[T](ctx, e, key, cfg, out)
		return out, nil

	default:
		return nil, fmt.Errorf("responsecache: unknown strategy %v", cfg.Strategy)
	}
}

// fetchAndStore invokes the network operation, converts a transport failure
// into a NetworkError outcome, and writes successful results through.
func fetchAndStore[T any](ctx context.Context, e *Engine, key string, cfg cache.Config, op Operation[T]) (response.Outcome[T], error) {
	out, err := op(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return response.NetworkError[T]{Cause: err}, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		// Cancelled after the call completed: discard the outcome and do not
		// write a partial cache entry.
		return nil, ctxErr
	}
	writeThrough[T](ctx, e, key, cfg, out)
	return out, nil
}

// writeThrough persists the outcome when, and only when, it is a Success.
func writeThrough[T any](ctx context.Context, e *Engine, key string, cfg cache.Config, out response.Outcome[T]) {
	if success, ok := out.(response.Success[T]); ok {
		cache.Write(ctx, e.adapter, key, success, cfg.MaxAge)
	}
}
