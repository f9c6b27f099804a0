package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/EASS-HIT-PART-A-2025-CLASS-VII/DealHunt/config"
)

// DBTX is the subset of *pgxpool.Pool the repositories use. pgxmock pools
// satisfy it too.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// NewPgxPool creates a new pgx connection pool
func NewPgxPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DBUrl)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database URL: %w", err)
	}

	poolConfig.MaxConns = cfg.DBMaxConns
	poolConfig.MinConns = cfg.DBMinConns
	poolConfig.MaxConnIdleTime = cfg.DBMaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return pool, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id                       TEXT PRIMARY KEY,
	email                    TEXT NOT NULL UNIQUE,
	full_name                TEXT NOT NULL DEFAULT '',
	role                     TEXT NOT NULL DEFAULT 'customer',
	email_notifications      BOOLEAN NOT NULL DEFAULT TRUE,
	price_drop_notifications BOOLEAN,
	is_active                BOOLEAN NOT NULL DEFAULT TRUE,
	created_at               TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at               TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS wishlist_items (
	id             CHAR(24) PRIMARY KEY,
	user_id        TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	product_id     TEXT NOT NULL,
	marketplace    TEXT NOT NULL,
	title          TEXT NOT NULL,
	original_price DOUBLE PRECISION,
	sale_price     DOUBLE PRECISION,
	image          TEXT NOT NULL DEFAULT '',
	detail_url     TEXT NOT NULL DEFAULT '',
	affiliate_link TEXT NOT NULL DEFAULT '',
	added_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (user_id, product_id, marketplace)
);

CREATE INDEX IF NOT EXISTS idx_wishlist_items_user_added ON wishlist_items (user_id, added_at DESC);
`

// EnsureSchema creates the tables when they do not exist yet.
func EnsureSchema(ctx context.Context, db DBTX) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
