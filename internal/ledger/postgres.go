package ledger

import (
	"context"
	"errors"

	"cardroom/internal/store"
)

// Postgres is the store-backed ledger. Every movement lands in
// ledger_entries with the owning table as reference.
type Postgres struct {
	st      *store.Store
	tableID string
}

func NewPostgres(st *store.Store, tableID string) *Postgres {
	return &Postgres{st: st, tableID: tableID}
}

func (p *Postgres) Withdraw(ctx context.Context, playerID string, amount int64) error {
	_, err := p.st.Debit(ctx, playerID, amount, "bet_debit", "table", p.tableID)
	if errors.Is(err, store.ErrInsufficientBalance) {
		return ErrInsufficientFunds
	}
	return err
}

func (p *Postgres) Deposit(ctx context.Context, playerID string, amount int64) error {
	_, err := p.st.Credit(ctx, playerID, amount, "pot_credit", "table", p.tableID)
	return err
}

func (p *Postgres) Balance(ctx context.Context, playerID string) (int64, error) {
	return p.st.AccountBalance(ctx, playerID)
}
