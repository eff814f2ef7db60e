package storeinfra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	// Database drivers for the SQLite and Postgres constructors.
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/goliatone/go-response-cache/cache"
)

// entryModel maps cache.Entry onto the persisted table.
type entryModel struct {
	bun.BaseModel `bun:"table:response_cache_entries,alias:rce"`

	Key       string `bun:"key,pk"`
	Body      string `bun:"body,notnull"`
	Headers   string `bun:"headers"`
	Code      int    `bun:"code,notnull"`
	StoredAt  int64  `bun:"stored_at_ms,notnull"`
	MaxAgeSec int64  `bun:"max_age_sec,notnull"`
}

func toModel(e cache.Entry) entryModel {
	return entryModel{
		Key:       e.Key,
		Body:      e.Body,
		Headers:   e.Headers,
		Code:      e.Code,
		StoredAt:  e.StoredAt,
		MaxAgeSec: e.MaxAgeSec,
	}
}

func (m entryModel) toEntry() cache.Entry {
	return cache.Entry{
		Key:       m.Key,
		Body:      m.Body,
		Headers:   m.Headers,
		Code:      m.Code,
		StoredAt:  m.StoredAt,
		MaxAgeSec: m.MaxAgeSec,
	}
}

// BunStore is a cache.Store persisted through a bun database. Entries
// survive process restarts; upserts replace on key conflict so concurrent
// writers resolve last-write-wins at the database.
type BunStore struct {
	db *bun.DB
}

var _ cache.Store = (*BunStore)(nil)

// NewBunStore wraps an existing bun.DB. Call Init to create the backing
// table before first use.
func NewBunStore(db *bun.DB) *BunStore {
	return &BunStore{db: db}
}

// NewSQLiteStore opens (or creates) a SQLite database at path and
// initializes the entry table. Use ":memory:" for an ephemeral store.
func NewSQLiteStore(ctx context.Context, path string) (*BunStore, error) {
	sqldb, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("storeinfra: open sqlite %q: %w", path, err)
	}

	store := NewBunStore(bun.NewDB(sqldb, sqlitedialect.New()))
	if err := store.Init(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

// NewPostgresStore connects to Postgres with the given DSN and initializes
// the entry table.
func NewPostgresStore(ctx context.Context, dsn string) (*BunStore, error) {
	sqldb, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("storeinfra: open postgres: %w", err)
	}

	store := NewBunStore(bun.NewDB(sqldb, pgdialect.New()))
	if err := store.Init(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

// Init creates the entry table if it does not exist.
func (s *BunStore) Init(ctx context.Context) error {
	_, err := s.db.NewCreateTable().
		Model((*entryModel)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("storeinfra: create entry table: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *BunStore) Close() error {
	return s.db.Close()
}

// Get implements cache.Store.
func (s *BunStore) Get(ctx context.Context, key string) (cache.Entry, bool, error) {
	var m entryModel
	err := s.db.NewSelect().
		Model(&m).
		Where("key = ?", key).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return cache.Entry{}, false, nil
		}
		return cache.Entry{}, false, err
	}
	return m.toEntry(), true, nil
}

// Upsert implements cache.Store.
func (s *BunStore) Upsert(ctx context.Context, entry cache.Entry) error {
	m := toModel(entry)
	_, err := s.db.NewInsert().
		Model(&m).
		On("CONFLICT (key) DO UPDATE").
		Set("body = EXCLUDED.body").
		Set("headers = EXCLUDED.headers").
		Set("code = EXCLUDED.code").
		Set("stored_at_ms = EXCLUDED.stored_at_ms").
		Set("max_age_sec = EXCLUDED.max_age_sec").
		Exec(ctx)
	return err
}

// Delete implements cache.Store.
func (s *BunStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.NewDelete().
		Model((*entryModel)(nil)).
		Where("key = ?", key).
		Exec(ctx)
	return err
}

// DeleteAll implements cache.Store.
func (s *BunStore) DeleteAll(ctx context.Context) error {
	_, err := s.db.NewDelete().
		Model((*entryModel)(nil)).
		Where("1 = 1").
		Exec(ctx)
	return err
}

// DeleteExpired implements cache.Store.
func (s *BunStore) DeleteExpired(ctx context.Context, now time.Time) error {
	_, err := s.db.NewDelete().
		Model((*entryModel)(nil)).
		Where("stored_at_ms + max_age_sec * 1000 < ?", now.UnixMilli()).
		Exec(ctx)
	return err
}
