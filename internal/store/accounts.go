package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

// EnsureAccount creates the account with a starting balance if it does not
// exist yet.
func (s *Store) EnsureAccount(ctx context.Context, playerID string, initial int64) error {
	_, err := s.Pool.Exec(ctx,
		`INSERT INTO accounts (player_id, balance) VALUES ($1, $2)
		 ON CONFLICT (player_id) DO NOTHING`,
		playerID, initial)
	return err
}

func (s *Store) AccountBalance(ctx context.Context, playerID string) (int64, error) {
	var balance int64
	err := s.Pool.QueryRow(ctx,
		`SELECT balance FROM accounts WHERE player_id = $1`, playerID).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNotFound
	}
	return balance, err
}

// Debit removes amount from the account and records a ledger entry, in one
// transaction. Fails with ErrInsufficientBalance rather than going
// negative.
func (s *Store) Debit(ctx context.Context, playerID string, amount int64, entryType, refType, refID string) (int64, error) {
	tx, err := s.Pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var balance int64
	err = tx.QueryRow(ctx,
		`UPDATE accounts SET balance = balance - $2, updated_at = now()
		 WHERE player_id = $1 AND balance >= $2
		 RETURNING balance`,
		playerID, amount).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrInsufficientBalance
	}
	if err != nil {
		return 0, err
	}
	if _, err := tx.Exec(ctx,
		`INSERT INTO ledger_entries (id, player_id, entry_type, amount, ref_type, ref_id)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		NewID(), playerID, entryType, -amount, refType, refID); err != nil {
		return 0, err
	}
	return balance, tx.Commit(ctx)
}

// Credit adds amount to the account and records a ledger entry.
func (s *Store) Credit(ctx context.Context, playerID string, amount int64, entryType, refType, refID string) (int64, error) {
	tx, err := s.Pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var balance int64
	err = tx.QueryRow(ctx,
		`UPDATE accounts SET balance = balance + $2, updated_at = now()
		 WHERE player_id = $1
		 RETURNING balance`,
		playerID, amount).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	if _, err := tx.Exec(ctx,
		`INSERT INTO ledger_entries (id, player_id, entry_type, amount, ref_type, ref_id)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		NewID(), playerID, entryType, amount, refType, refID); err != nil {
		return 0, err
	}
	return balance, tx.Commit(ctx)
}

// ListLedgerEntries returns a player's ledger rows, newest first.
func (s *Store) ListLedgerEntries(ctx context.Context, playerID string, limit int) ([]LedgerEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.Pool.Query(ctx,
		`SELECT id, player_id, entry_type, amount, ref_type, ref_id, created_at
		 FROM ledger_entries WHERE player_id = $1
		 ORDER BY created_at DESC LIMIT $2`,
		playerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]LedgerEntry, 0, limit)
	for rows.Next() {
		var e LedgerEntry
		if err := rows.Scan(&e.ID, &e.PlayerID, &e.EntryType, &e.Amount, &e.RefType, &e.RefID, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
