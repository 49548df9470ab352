// Package ledger is the currency collaborator of the game engine. The
// engine never assumes a withdrawal succeeds; all-in amounts are computed
// from the reported balance and every movement is checked.
package ledger

import (
	"context"
	"errors"
)

var ErrInsufficientFunds = errors.New("insufficient_funds")

type Ledger interface {
	// Withdraw removes amount from the player's balance, failing with
	// ErrInsufficientFunds when the balance is short.
	Withdraw(ctx context.Context, playerID string, amount int64) error
	Deposit(ctx context.Context, playerID string, amount int64) error
	Balance(ctx context.Context, playerID string) (int64, error)
}
