// Package di wires the cache store, codec and policy engine together behind
// a small dependency-injection container.
package di

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-response-cache/cache"
	"github.com/goliatone/go-response-cache/internal/storeinfra"
	"github.com/goliatone/go-response-cache/response"
	"github.com/goliatone/go-response-cache/responsecache"
)

// Backend selects the store implementation managed by the container.
type Backend string

const (
	// BackendMemory is an unbounded in-process map. Default.
	BackendMemory Backend = "memory"
	// BackendSturdyc is a capacity-bounded in-process cache.
	BackendSturdyc Backend = "sturdyc"
	// BackendSQLite persists entries in a SQLite database at DSN.
	BackendSQLite Backend = "sqlite"
	// BackendPostgres persists entries in Postgres reachable via DSN.
	BackendPostgres Backend = "postgres"
)

// CodecJSON and CodecMsgpack name the supported entry codecs.
const (
	CodecJSON    = "json"
	CodecMsgpack = "msgpack"
)

// Config selects the components the container assembles.
type Config struct {
	// Backend picks the store implementation. Default: BackendMemory.
	Backend Backend

	// DSN locates the database for the SQLite and Postgres backends: a file
	// path (or ":memory:") for SQLite, a connection string for Postgres.
	DSN string

	// Codec picks the entry encoding. Default: CodecJSON.
	Codec string

	// Sturdyc configures the sturdyc backend. Zero value uses defaults.
	Sturdyc storeinfra.Config

	// Logger is used by the adapter and engine for best-effort failure
	// reporting. Nil disables logging.
	Logger *zerolog.Logger
}

// DefaultConfig returns a Config assembling an in-memory store with the
// JSON codec.
func DefaultConfig() Config {
	return Config{
		Backend: BackendMemory,
		Codec:   CodecJSON,
		Sturdyc: storeinfra.DefaultConfig(),
	}
}

// Container provides dependency injection for the response cache
// components. It manages singleton instances of the store, codec, adapter
// and policy engine.
type Container struct {
	store   cache.Store
	codec   cache.Codec
	adapter *cache.Adapter
	engine  *responsecache.Engine
	config  Config
}

// NewContainer creates a DI container from the provided configuration,
// initializing the selected store backend and wiring the adapter and policy
// engine around it.
func NewContainer(ctx context.Context, cfg Config) (*Container, error) {
	if cfg.Backend == "" {
		cfg.Backend = BackendMemory
	}
	if cfg.Codec == "" {
		cfg.Codec = CodecJSON
	}
	if cfg.Sturdyc == (storeinfra.Config{}) {
		cfg.Sturdyc = storeinfra.DefaultConfig()
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	codec, err := buildCodec(cfg.Codec)
	if err != nil {
		return nil, err
	}

	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = *cfg.Logger
	}

	adapter := cache.NewAdapter(store, codec, cache.WithLogger(log))
	engine := responsecache.New(adapter, responsecache.WithLogger(log))

	return &Container{
		store:   store,
		codec:   codec,
		adapter: adapter,
		engine:  engine,
		config:  cfg,
	}, nil
}

// NewContainerWithDefaults creates a container using default configuration.
// This is a convenience constructor for typical use cases where custom
// configuration is not required.
func NewContainerWithDefaults(ctx context.Context) (*Container, error) {
	return NewContainer(ctx, DefaultConfig())
}

func buildStore(ctx context.Context, cfg Config) (cache.Store, error) {
	switch cfg.Backend {
	case BackendMemory:
		return storeinfra.NewMemoryStore(), nil
	case BackendSturdyc:
		return storeinfra.NewSturdycStore(cfg.Sturdyc)
	case BackendSQLite:
		if cfg.DSN == "" {
			return nil, fmt.Errorf("di: sqlite backend requires a DSN")
		}
		return storeinfra.NewSQLiteStore(ctx, cfg.DSN)
	case BackendPostgres:
		if cfg.DSN == "" {
			return nil, fmt.Errorf("di: postgres backend requires a DSN")
		}
		return storeinfra.NewPostgresStore(ctx, cfg.DSN)
	default:
		return nil, fmt.Errorf("di: unknown backend %q", cfg.Backend)
	}
}

func buildCodec(name string) (cache.Codec, error) {
	switch name {
	case CodecJSON:
		return cache.JSONCodec{}, nil
	case CodecMsgpack:
		return cache.MsgpackCodec{}, nil
	default:
		return nil, fmt.Errorf("di: unknown codec %q", name)
	}
}

// Store returns the singleton store instance.
func (c *Container) Store() cache.Store {
	return c.store
}

// Codec returns the singleton codec instance.
func (c *Container) Codec() cache.Codec {
	return c.codec
}

// Adapter returns the singleton cache adapter.
func (c *Container) Adapter() *cache.Adapter {
	return c.adapter
}

// Engine returns the singleton policy engine.
func (c *Container) Engine() *responsecache.Engine {
	return c.engine
}

// Config returns a copy of the configuration used by this container.
func (c *Container) Config() Config {
	return c.config
}

// ExecuteWithCache runs op through the container's engine under the given
// cache policy.
//
// Since Go methods cannot have type parameters, the execution helpers are
// provided as package-level functions.
func ExecuteWithCache[T any](ctx context.Context, c *Container, key string, cfg cache.Config, op responsecache.Operation[T]) (response.Outcome[T], error) {
	return responsecache.ExecuteWithCache(ctx, c.engine, key, cfg, op)
}

// ExecuteWithRetry runs op under the given retry policy.
func ExecuteWithRetry[T any](ctx context.Context, c *Container, cfg responsecache.RetryConfig, op responsecache.Operation[T]) (response.Outcome[T], error) {
	return responsecache.ExecuteWithRetry(ctx, cfg, op)
}

// ExecuteWithRetryAndCache runs op through the container's engine with retry
// nested inside the cache policy's network step.
func ExecuteWithRetryAndCache[T any](ctx context.Context, c *Container, key string, cfg cache.Config, retry responsecache.RetryConfig, op responsecache.Operation[T]) (response.Outcome[T], error) {
	return responsecache.ExecuteWithRetryAndCache(ctx, c.engine, key, cfg, retry, op)
}
