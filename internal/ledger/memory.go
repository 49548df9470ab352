package ledger

import (
	"context"
	"sync"
)

// Memory is a process-local ledger for tests and bot play.
type Memory struct {
	mu       sync.Mutex
	balances map[string]int64
}

func NewMemory() *Memory {
	return &Memory{balances: map[string]int64{}}
}

func (m *Memory) Seed(playerID string, amount int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balances[playerID] = amount
}

func (m *Memory) Withdraw(_ context.Context, playerID string, amount int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.balances[playerID] < amount {
		return ErrInsufficientFunds
	}
	m.balances[playerID] -= amount
	return nil
}

func (m *Memory) Deposit(_ context.Context, playerID string, amount int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balances[playerID] += amount
	return nil
}

func (m *Memory) Balance(_ context.Context, playerID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.balances[playerID], nil
}
