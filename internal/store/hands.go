package store

import "context"

// CreateHand opens a hand row for a table and returns its ID.
func (s *Store) CreateHand(ctx context.Context, tableID string) (string, error) {
	id := NewID()
	_, err := s.Pool.Exec(ctx,
		`INSERT INTO hands (id, table_id) VALUES ($1, $2)`, id, tableID)
	return id, err
}

// FinishHand records the outcome. winners is the JSON payout list.
func (s *Store) FinishHand(ctx context.Context, handID, stageEnd string, pot int64, winners []byte) error {
	_, err := s.Pool.Exec(ctx,
		`UPDATE hands SET stage_end = $2, pot = $3, winners = $4, ended_at = now()
		 WHERE id = $1`,
		handID, stageEnd, pot, winners)
	return err
}

// RecordAction appends one player action to the hand's audit trail.
func (s *Store) RecordAction(ctx context.Context, handID, playerID, action string, amount int64) error {
	_, err := s.Pool.Exec(ctx,
		`INSERT INTO hand_actions (id, hand_id, player_id, action, amount)
		 VALUES ($1, $2, $3, $4, $5)`,
		NewID(), handID, playerID, action, amount)
	return err
}
