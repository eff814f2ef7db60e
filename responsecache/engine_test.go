package responsecache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-response-cache/cache"
	"github.com/goliatone/go-response-cache/pkg/testsupport"
	"github.com/goliatone/go-response-cache/response"
	"github.com/goliatone/go-response-cache/responsecache"
)

type harness struct {
	store   *testsupport.RecordingStore
	clock   *testsupport.FrozenClock
	adapter *cache.Adapter
	engine  *responsecache.Engine
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	store := testsupport.NewRecordingStore()
	clock := testsupport.NewFrozenClock(time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))
	adapter := cache.NewAdapter(store, cache.JSONCodec{}, cache.WithClock(clock.Now))
	return &harness{
		store:   store,
		clock:   clock,
		adapter: adapter,
		engine:  responsecache.New(adapter),
	}
}

func (h *harness) seed(t *testing.T, key, name string, maxAge time.Duration) {
	t.Helper()
	cache.Write(context.Background(), h.adapter, key,
		response.Success[payload]{Body: payload{Name: name}, Code: 200}, maxAge)
}

func cfgFor(strategy cache.Strategy) cache.Config {
	cfg := cache.DefaultConfig()
	cfg.Strategy = strategy
	return cfg
}

func mustSuccess(t *testing.T, out response.Outcome[payload], err error) response.Success[payload] {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	success, ok := out.(response.Success[payload])
	if !ok {
		t.Fatalf("expected a success outcome, got %T", out)
	}
	return success
}

func TestCacheOnly_HitWithoutNetwork(t *testing.T) {
	h := newHarness(t)
	key := testsupport.UniqueKey()
	h.seed(t, key, "cached", time.Hour)

	script := testsupport.NewOperationScript[payload]().
		Queue(response.Success[payload]{Body: payload{Name: "network"}, Code: 200}, nil)

	out, err := responsecache.ExecuteWithCache(context.Background(), h.engine, key, cfgFor(cache.StrategyCacheOnly), script.Operation())
	success := mustSuccess(t, out, err)
	if success.Body.Name != "cached" {
		t.Errorf("expected the cached body, got %q", success.Body.Name)
	}
	if script.Calls() != 0 {
		t.Errorf("cache_only must never invoke the network, got %d calls", script.Calls())
	}
}

func TestCacheOnly_MissReturnsSentinel(t *testing.T) {
	h := newHarness(t)

	script := testsupport.NewOperationScript[payload]().
		Queue(response.Success[payload]{Code: 200}, nil)

	out, err := responsecache.ExecuteWithCache(context.Background(), h.engine, testsupport.UniqueKey(), cfgFor(cache.StrategyCacheOnly), script.Operation())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	netErr, ok := out.(response.NetworkError[payload])
	if !ok {
		t.Fatalf("expected a network error outcome, got %T", out)
	}
	if !errors.Is(netErr.Cause, responsecache.ErrNoCachedData) {
		t.Errorf("expected the no-cached-data sentinel, got %v", netErr.Cause)
	}
	if script.Calls() != 0 {
		t.Errorf("cache_only must never invoke the network, got %d calls", script.Calls())
	}
}

func TestCacheOnly_IgnoresEntryAge(t *testing.T) {
	h := newHarness(t)
	key := testsupport.UniqueKey()
	h.seed(t, key, "ancient", time.Minute)
	h.clock.Advance(48 * time.Hour)

	out, err := responsecache.ExecuteWithCache(context.Background(), h.engine, key, cfgFor(cache.StrategyCacheOnly),
		testsupport.NewOperationScript[payload]().Queue(nil, nil).Operation())
	success := mustSuccess(t, out, err)
	if success.Body.Name != "ancient" {
		t.Errorf("cache_only must serve entries of any age, got %q", success.Body.Name)
	}
}

func TestNetworkOnly_AlwaysCallsAndOverwrites(t *testing.T) {
	h := newHarness(t)
	key := testsupport.UniqueKey()
	h.seed(t, key, "stale-but-present", time.Hour)

	script := testsupport.NewOperationScript[payload]().
		Queue(response.Success[payload]{Body: payload{Name: "fresh"}, Code: 200}, nil)

	out, err := responsecache.ExecuteWithCache(context.Background(), h.engine, key, cfgFor(cache.StrategyNetworkOnly), script.Operation())
	success := mustSuccess(t, out, err)
	if success.Body.Name != "fresh" {
		t.Errorf("expected the network body, got %q", success.Body.Name)
	}
	if script.Calls() != 1 {
		t.Errorf("expected exactly one network call, got %d", script.Calls())
	}

	// The success must have replaced the prior entry.
	got, ok := cache.Read[payload](context.Background(), h.adapter, key, cfgFor(cache.StrategyCacheOnly))
	if !ok || got.Body.Name != "fresh" {
		t.Errorf("expected the cache overwritten with the fresh body, got %+v ok=%v", got.Body, ok)
	}
}

func TestNetworkOnly_TransportThrowBecomesNetworkError(t *testing.T) {
	h := newHarness(t)
	cause := errors.New("connection refused")

	script := testsupport.NewOperationScript[payload]().Queue(nil, cause)

	out, err := responsecache.ExecuteWithCache(context.Background(), h.engine, testsupport.UniqueKey(), cfgFor(cache.StrategyNetworkOnly), script.Operation())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	netErr, ok := out.(response.NetworkError[payload])
	if !ok {
		t.Fatalf("expected a network error outcome, got %T", out)
	}
	if !errors.Is(netErr.Cause, cause) {
		t.Errorf("expected the transport cause preserved, got %v", netErr.Cause)
	}
}

func TestCacheFirst_ServesFreshEntry(t *testing.T) {
	h := newHarness(t)
	key := testsupport.UniqueKey()
	h.seed(t, key, "cached", time.Hour)

	script := testsupport.NewOperationScript[payload]().
		Queue(response.Success[payload]{Body: payload{Name: "network"}, Code: 200}, nil)

	out, err := responsecache.ExecuteWithCache(context.Background(), h.engine, key, cfgFor(cache.StrategyCacheFirst), script.Operation())
	success := mustSuccess(t, out, err)
	if success.Body.Name != "cached" {
		t.Errorf("expected the cached body, got %q", success.Body.Name)
	}
	if script.Calls() != 0 {
		t.Errorf("expected no network call on a fresh hit, got %d", script.Calls())
	}
}

func TestCacheFirst_StaleWindowThenNetwork(t *testing.T) {
	h := newHarness(t)
	key := testsupport.UniqueKey()
	h.seed(t, key, "cached", time.Hour)

	cfg := cfgFor(cache.StrategyCacheFirst)

	// Inside StaleWhileRevalidate the entry still serves.
	h.clock.Advance(30 * time.Minute)
	script := testsupport.NewOperationScript[payload]().
		Queue(response.Success[payload]{Body: payload{Name: "network"}, Code: 200}, nil)
	out, err := responsecache.ExecuteWithCache(context.Background(), h.engine, key, cfg, script.Operation())
	if got := mustSuccess(t, out, err); got.Body.Name != "cached" {
		t.Errorf("expected the stale-but-allowed entry, got %q", got.Body.Name)
	}
	if script.Calls() != 0 {
		t.Errorf("expected no network call inside the stale window, got %d", script.Calls())
	}

	// Past the window the network takes over and refreshes the cache.
	h.clock.Advance(2 * time.Hour)
	out, err = responsecache.ExecuteWithCache(context.Background(), h.engine, key, cfg, script.Operation())
	if got := mustSuccess(t, out, err); got.Body.Name != "network" {
		t.Errorf("expected the network body past the stale window, got %q", got.Body.Name)
	}
	if script.Calls() != 1 {
		t.Errorf("expected one network call, got %d", script.Calls())
	}
}

func TestCacheWithExpiry_ForceRefreshBypassesRead(t *testing.T) {
	h := newHarness(t)
	key := testsupport.UniqueKey()
	h.seed(t, key, "cached", time.Hour)

	cfg := cfgFor(cache.StrategyCacheWithExpiry)
	cfg.ForceRefresh = true

	script := testsupport.NewOperationScript[payload]().
		Queue(response.Success[payload]{Body: payload{Name: "forced"}, Code: 200}, nil)

	out, err := responsecache.ExecuteWithCache(context.Background(), h.engine, key, cfg, script.Operation())
	if got := mustSuccess(t, out, err); got.Body.Name != "forced" {
		t.Errorf("expected the forced network body, got %q", got.Body.Name)
	}
	if script.Calls() != 1 {
		t.Errorf("expected the network despite a fresh entry, got %d calls", script.Calls())
	}
}

func TestCacheWithExpiry_ExpiredEntryRefetches(t *testing.T) {
	h := newHarness(t)
	key := testsupport.UniqueKey()
	h.seed(t, key, "old", time.Hour)
	h.clock.Advance(10 * time.Minute)

	cfg := cfgFor(cache.StrategyCacheWithExpiry)
	cfg.MaxAge = 5 * time.Minute

	script := testsupport.NewOperationScript[payload]().
		Queue(response.Success[payload]{Body: payload{Name: "refetched"}, Code: 200}, nil)

	out, err := responsecache.ExecuteWithCache(context.Background(), h.engine, key, cfg, script.Operation())
	if got := mustSuccess(t, out, err); got.Body.Name != "refetched" {
		t.Errorf("expected a refetch past MaxAge, got %q", got.Body.Name)
	}
}

func TestNetworkFirst_SuccessWritesThrough(t *testing.T) {
	h := newHarness(t)
	key := testsupport.UniqueKey()

	script := testsupport.NewOperationScript[payload]().
		Queue(response.Success[payload]{Body: payload{Name: "live"}, Code: 200}, nil)

	out, err := responsecache.ExecuteWithCache(context.Background(), h.engine, key, cfgFor(cache.StrategyNetworkFirst), script.Operation())
	if got := mustSuccess(t, out, err); got.Body.Name != "live" {
		t.Errorf("expected the live body, got %q", got.Body.Name)
	}
	if _, ok := h.store.Entry(key); !ok {
		t.Error("expected the success written through to the cache")
	}
}

func TestNetworkFirst_ThrowFallsBackToCache(t *testing.T) {
	h := newHarness(t)
	key := testsupport.UniqueKey()
	h.seed(t, key, "fallback", time.Hour)

	script := testsupport.NewOperationScript[payload]().Queue(nil, errors.New("connection reset"))

	out, err := responsecache.ExecuteWithCache(context.Background(), h.engine, key, cfgFor(cache.StrategyNetworkFirst), script.Operation())
	if got := mustSuccess(t, out, err); got.Body.Name != "fallback" {
		t.Errorf("expected the cached fallback, got %q", got.Body.Name)
	}
}

func TestNetworkFirst_ThrowWithEmptyCache(t *testing.T) {
	h := newHarness(t)
	cause := errors.New("no route to host")

	script := testsupport.NewOperationScript[payload]().Queue(nil, cause)

	out, err := responsecache.ExecuteWithCache(context.Background(), h.engine, testsupport.UniqueKey(), cfgFor(cache.StrategyNetworkFirst), script.Operation())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	netErr, ok := out.(response.NetworkError[payload])
	if !ok {
		t.Fatalf("expected a network error outcome, got %T", out)
	}
	if !errors.Is(netErr.Cause, cause) {
		t.Errorf("expected the transport cause preserved, got %v", netErr.Cause)
	}
}

func TestNetworkFirst_ReturnedFailureSkipsFallback(t *testing.T) {
	h := newHarness(t)
	key := testsupport.UniqueKey()
	h.seed(t, key, "should-not-serve", time.Hour)

	// A returned error outcome is a classified response, not a transport
	// throw, so the cached entry must not mask it.
	script := testsupport.NewOperationScript[payload]().
		Queue(response.ServerError[payload]{Code: 500}, nil)

	out, err := responsecache.ExecuteWithCache(context.Background(), h.engine, key, cfgFor(cache.StrategyNetworkFirst), script.Operation())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := out.(response.ServerError[payload]); !ok {
		t.Fatalf("expected the server error surfaced, got %T", out)
	}
}

func TestWriteThrough_OnlyOnSuccess(t *testing.T) {
	h := newHarness(t)

	outcomes := []response.Outcome[payload]{
		response.ServerError[payload]{Code: 500},
		response.NetworkError[payload]{Cause: errors.New("timeout")},
		response.UnknownError[payload]{Cause: errors.New("weird"), Code: 0},
	}
	for _, outcome := range outcomes {
		key := testsupport.UniqueKey()
		script := testsupport.NewOperationScript[payload]().Queue(outcome, nil)

		if _, err := responsecache.ExecuteWithCache(context.Background(), h.engine, key, cfgFor(cache.StrategyNetworkOnly), script.Operation()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := h.store.Entry(key); ok {
			t.Errorf("%T: error outcomes must never be cached", outcome)
		}
	}
}

func TestCancellation_DiscardsOutcomeAndSkipsWrite(t *testing.T) {
	h := newHarness(t)
	key := testsupport.UniqueKey()
	ctx, cancel := context.WithCancel(context.Background())

	op := func(ctx context.Context) (response.Outcome[payload], error) {
		cancel()
		return response.Success[payload]{Body: payload{Name: "late"}, Code: 200}, nil
	}

	out, err := responsecache.ExecuteWithCache(ctx, h.engine, key, cfgFor(cache.StrategyNetworkOnly), op)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if out != nil {
		t.Errorf("expected the outcome discarded, got %v", out)
	}
	if _, ok := h.store.Entry(key); ok {
		t.Error("expected no cache write after cancellation")
	}
}

func TestUnknownStrategy_Errors(t *testing.T) {
	h := newHarness(t)
	cfg := cache.Config{Strategy: cache.Strategy(99)}

	_, err := responsecache.ExecuteWithCache(context.Background(), h.engine, "k", cfg,
		testsupport.NewOperationScript[payload]().Queue(nil, nil).Operation())
	if err == nil {
		t.Error("expected an error for an unknown strategy")
	}
}

func TestEngine_AdapterAccessor(t *testing.T) {
	h := newHarness(t)
	if h.engine.Adapter() != h.adapter {
		t.Error("expected the engine to expose its adapter")
	}
}
