package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

const createSlotsTable = `
CREATE TABLE IF NOT EXISTS kv_slots (
	key        TEXT PRIMARY KEY,
	value      BYTEA NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const upsertSlot = `
INSERT INTO kv_slots (key, value, updated_at) VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`

// PostgresKV stores slots as rows of the kv_slots table.
type PostgresKV struct {
	db *sql.DB
}

// NewPostgresKV opens the database, verifies the connection and ensures
// the table exists.
func NewPostgresKV(ctx context.Context, databaseURL string) (*PostgresKV, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	kv := NewPostgresKVWithDB(db)
	if err := kv.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return kv, nil
}

// NewPostgresKVWithDB wraps an open handle.
func NewPostgresKVWithDB(db *sql.DB) *PostgresKV {
	return &PostgresKV{db: db}
}

// EnsureSchema creates the kv_slots table if missing.
func (p *PostgresKV) EnsureSchema(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, createSlotsTable); err != nil {
		return fmt.Errorf("create kv_slots: %w", err)
	}
	return nil
}

// Get reads one slot row.
func (p *PostgresKV) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := p.db.QueryRowContext(ctx, `SELECT value FROM kv_slots WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select slot %s: %w", key, err)
	}
	return value, nil
}

// Put upserts one slot row.
func (p *PostgresKV) Put(ctx context.Context, key string, value []byte) error {
	if _, err := p.db.ExecContext(ctx, upsertSlot, key, value); err != nil {
		return fmt.Errorf("upsert slot %s: %w", key, err)
	}
	return nil
}

// Close closes the database handle.
func (p *PostgresKV) Close() error {
	return p.db.Close()
}
