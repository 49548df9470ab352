package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

// SaveTableSnapshot upserts the latest serialized table state. Snapshots of
// unfinished tables are reloaded at boot to resume mid-hand.
func (s *Store) SaveTableSnapshot(ctx context.Context, tableID string, data []byte, finished bool) error {
	_, err := s.Pool.Exec(ctx,
		`INSERT INTO table_snapshots (table_id, data, finished, updated_at)
		 VALUES ($1, $2, $3, now())
		 ON CONFLICT (table_id) DO UPDATE
		 SET data = EXCLUDED.data, finished = EXCLUDED.finished, updated_at = now()`,
		tableID, data, finished)
	return err
}

func (s *Store) LoadTableSnapshot(ctx context.Context, tableID string) ([]byte, error) {
	var data []byte
	err := s.Pool.QueryRow(ctx,
		`SELECT data FROM table_snapshots WHERE table_id = $1`, tableID).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return data, err
}

// ListOpenTableSnapshots returns the snapshots of every unfinished table.
func (s *Store) ListOpenTableSnapshots(ctx context.Context) ([][]byte, error) {
	rows, err := s.Pool.Query(ctx,
		`SELECT data FROM table_snapshots WHERE NOT finished ORDER BY updated_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out [][]byte
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		out = append(out, data)
	}
	return out, rows.Err()
}
