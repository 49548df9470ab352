// Package store wraps Postgres access for accounts, hands and table
// snapshots.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
)

type Store struct {
	Pool *pgxpool.Pool
}

func New(dsn string) (*Store, error) {
	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		return nil, err
	}
	return &Store{Pool: pool}, nil
}

func (s *Store) Close() {
	if s.Pool != nil {
		s.Pool.Close()
	}
}

func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.Pool.Ping(ctx)
}

const schema = `
CREATE TABLE IF NOT EXISTS accounts (
	player_id  TEXT PRIMARY KEY,
	balance    BIGINT NOT NULL DEFAULT 0,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS ledger_entries (
	id         TEXT PRIMARY KEY,
	player_id  TEXT NOT NULL REFERENCES accounts(player_id),
	entry_type TEXT NOT NULL,
	amount     BIGINT NOT NULL,
	ref_type   TEXT NOT NULL DEFAULT '',
	ref_id     TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS hands (
	id         TEXT PRIMARY KEY,
	table_id   TEXT NOT NULL,
	stage_end  TEXT,
	pot        BIGINT,
	winners    JSONB,
	started_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	ended_at   TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS hand_actions (
	id         TEXT PRIMARY KEY,
	hand_id    TEXT NOT NULL REFERENCES hands(id),
	player_id  TEXT NOT NULL,
	action     TEXT NOT NULL,
	amount     BIGINT NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS table_snapshots (
	table_id   TEXT PRIMARY KEY,
	data       JSONB NOT NULL,
	finished   BOOLEAN NOT NULL DEFAULT FALSE,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// Migrate applies the schema. Statements are idempotent.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.Pool.Exec(ctx, schema)
	return err
}
