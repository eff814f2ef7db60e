package cache

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-response-cache/response"
)

// Adapter translates between typed response outcomes and the raw entries
// held by a Store. All cache failures are recovered locally: a read problem
// degrades to a miss and a write problem is logged and discarded, so the
// cache can never break an otherwise-successful network call.
type Adapter struct {
	store Store
	codec Codec
	log   zerolog.Logger
	now   func() time.Time
}

// AdapterOption configures an Adapter.
type AdapterOption func(*Adapter)

// WithLogger sets the logger used for best-effort failure reporting.
func WithLogger(log zerolog.Logger) AdapterOption {
	return func(a *Adapter) {
		a.log = log
	}
}

// WithClock overrides the time source. Tests use this to control entry ages.
func WithClock(now func() time.Time) AdapterOption {
	return func(a *Adapter) {
		if now != nil {
			a.now = now
		}
	}
}

// NewAdapter creates an Adapter over the given store and codec. The logger
// defaults to a no-op and the clock to time.Now.
func NewAdapter(store Store, codec Codec, opts ...AdapterOption) *Adapter {
	a := &Adapter{
		store: store,
		codec: codec,
		log:   zerolog.Nop(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Now returns the adapter's current time.
func (a *Adapter) Now() time.Time {
	return a.now()
}

// Read looks up the entry for key and reconstructs a Success outcome from it.
// It reports a miss when the entry is absent, not fresh under cfg, or cannot
// be decoded; corruption never surfaces to the caller.
//
// Go methods cannot have type parameters, so Read and Write are provided as
// package-level functions taking the Adapter as an argument.
func Read[T any](ctx context.Context, a *Adapter, key string, cfg Config) (response.Success[T], bool) {
	var zero response.Success[T]

	entry, found, err := a.store.Get(ctx, key)
	if err != nil {
		a.log.Warn().Err(err).Str("key", key).Msg("cache read failed, treating as miss")
		return zero, false
	}
	if !found {
		return zero, false
	}
	if !cfg.Fresh(entry, a.now()) {
		return zero, false
	}

	var body T
	if err := a.codec.Unmarshal([]byte(entry.Body), &body); err != nil {
		a.log.Warn().Err(err).Str("key", key).Str("codec", a.codec.Name()).
			Msg("cached body decode failed, treating as miss")
		return zero, false
	}

	var headers http.Header
	if entry.Headers != "" {
		if err := a.codec.Unmarshal([]byte(entry.Headers), &headers); err != nil {
			a.log.Warn().Err(err).Str("key", key).
				Msg("cached headers decode failed, treating as miss")
			return zero, false
		}
	}

	return response.Success[T]{Body: body, Headers: headers, Code: entry.Code}, true
}

// Write serializes the success outcome and upserts it under key with the
// current timestamp. Failures are logged, never surfaced; caching is best
// effort.
func Write[T any](ctx context.Context, a *Adapter, key string, res response.Success[T], maxAge time.Duration) {
	body, err := a.codec.Marshal(res.Body)
	if err != nil {
		a.log.Warn().Err(err).Str("key", key).Str("codec", a.codec.Name()).
			Msg("cache write skipped: body encode failed")
		return
	}

	var headers []byte
	if len(res.Headers) > 0 {
		headers, err = a.codec.Marshal(res.Headers)
		if err != nil {
			a.log.Warn().Err(err).Str("key", key).
				Msg("cache write skipped: headers encode failed")
			return
		}
	}

	entry := Entry{
		Key:       key,
		Body:      string(body),
		Headers:   string(headers),
		Code:      res.Code,
		StoredAt:  a.now().UnixMilli(),
		MaxAgeSec: int64(maxAge / time.Second),
	}
	if err := a.store.Upsert(ctx, entry); err != nil {
		a.log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}

// Invalidate removes the entry for key. Best effort.
func (a *Adapter) Invalidate(ctx context.Context, key string) {
	if err := a.store.Delete(ctx, key); err != nil {
		a.log.Warn().Err(err).Str("key", key).Msg("cache invalidate failed")
	}
}

// Clear removes every entry. Best effort.
func (a *Adapter) Clear(ctx context.Context) {
	if err := a.store.DeleteAll(ctx); err != nil {
		a.log.Warn().Err(err).Msg("cache clear failed")
	}
}

// SweepExpired removes entries whose own max age has elapsed. Best effort.
func (a *Adapter) SweepExpired(ctx context.Context) {
	if err := a.store.DeleteExpired(ctx, a.now()); err != nil {
		a.log.Warn().Err(err).Msg("cache expiry sweep failed")
	}
}
