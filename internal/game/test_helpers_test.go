package game

import (
	"context"
	"math/rand"
	"testing"

	"cardroom/internal/ledger"
)

func newTestRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// newTestEngine seats players with equal balances on one table and returns
// a deterministic engine over an in-memory ledger.
func newTestEngine(t *testing.T, players int, balance int64, seed int64) (*Engine, *ledger.Memory) {
	t.Helper()
	mem := ledger.NewMemory()
	table := NewTable("t1")
	for i := 0; i < players; i++ {
		id := string(rune('a' + i))
		mem.Seed(id, balance)
		if _, err := table.AddSeat(id); err != nil {
			t.Fatalf("add seat %d: %v", i, err)
		}
	}
	return NewSeededEngine(mem, table, seed), mem
}

func totalBalance(t *testing.T, mem *ledger.Memory, table *Table) int64 {
	t.Helper()
	var sum int64
	for _, s := range table.Seats {
		bal, err := mem.Balance(context.Background(), s.PlayerID)
		if err != nil {
			t.Fatalf("balance %s: %v", s.PlayerID, err)
		}
		sum += bal
	}
	return sum
}

func mustCards(t *testing.T, strs ...string) []Card {
	t.Helper()
	cards, err := parseCards(strs)
	if err != nil {
		t.Fatalf("parse cards: %v", err)
	}
	return cards
}
