package game

import (
	"context"
	"encoding/json"
	"reflect"
	"testing"

	"cardroom/internal/ledger"
)

func TestSnapshotRoundTrip(t *testing.T) {
	e, _ := newTestEngine(t, 3, 1000, 11)
	ctx := context.Background()
	if err := e.StartHand(ctx, 20); err != nil {
		t.Fatalf("start hand: %v", err)
	}
	if err := e.Bet(ctx, 0, 40); err != nil {
		t.Fatalf("bet: %v", err)
	}

	snap := e.Table.Snapshot()
	raw, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded TableSnapshot
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	restored, err := RestoreTable(decoded)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if !reflect.DeepEqual(restored.Snapshot(), snap) {
		t.Fatalf("snapshot changed across restore:\n%+v\nvs\n%+v", restored.Snapshot(), snap)
	}
}

// A restored table must accept the same action sequence and land in the
// same state as the original, deck order included.
func TestRestoredTableReplaysIdentically(t *testing.T) {
	mem := ledger.NewMemory()
	mem2 := ledger.NewMemory()
	for _, id := range []string{"a", "b", "c"} {
		mem.Seed(id, 1000)
		mem2.Seed(id, 1000)
	}
	table := NewTable("t1")
	for _, id := range []string{"a", "b", "c"} {
		if _, err := table.AddSeat(id); err != nil {
			t.Fatalf("add seat: %v", err)
		}
	}
	e := NewSeededEngine(mem, table, 17)
	ctx := context.Background()
	if err := e.StartHand(ctx, 20); err != nil {
		t.Fatalf("start hand: %v", err)
	}
	if err := e.Bet(ctx, 0, 20); err != nil {
		t.Fatalf("call: %v", err)
	}

	restored, err := RestoreTable(e.Table.Snapshot())
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	e2 := NewEngine(mem2, restored)
	// Align the copy's ledger with the chips already committed.
	for _, s := range restored.Seats {
		if err := mem2.Withdraw(ctx, s.PlayerID, s.TotalContributed); err != nil {
			t.Fatalf("align ledger: %v", err)
		}
	}

	apply := func(eng *Engine) {
		t.Helper()
		if err := eng.Bet(ctx, 1, 60); err != nil {
			t.Fatalf("raise: %v", err)
		}
		if err := eng.Bet(ctx, 2, 60); err != nil {
			t.Fatalf("call: %v", err)
		}
		if err := eng.Bet(ctx, 0, 60); err != nil {
			t.Fatalf("call: %v", err)
		}
		if err := eng.Check(ctx, 1); err != nil {
			t.Fatalf("check: %v", err)
		}
		if err := eng.Check(ctx, 2); err != nil {
			t.Fatalf("check: %v", err)
		}
		if err := eng.Check(ctx, 0); err != nil {
			t.Fatalf("check: %v", err)
		}
	}
	apply(e)
	apply(e2)

	if !reflect.DeepEqual(e.Table.Snapshot(), e2.Table.Snapshot()) {
		t.Fatalf("replay diverged:\n%+v\nvs\n%+v", e.Table.Snapshot(), e2.Table.Snapshot())
	}
}

func TestSnapshotForHidesOtherHoleCards(t *testing.T) {
	e, _ := newTestEngine(t, 3, 1000, 13)
	ctx := context.Background()
	if err := e.StartHand(ctx, 20); err != nil {
		t.Fatalf("start hand: %v", err)
	}
	view := e.Table.SnapshotFor(1)
	if view.Deck != nil {
		t.Fatalf("per-seat view must not expose the deck")
	}
	for _, s := range view.Seats {
		if s.Index == 1 {
			if len(s.Hole) != 2 {
				t.Fatalf("own hole cards missing")
			}
			continue
		}
		if len(s.Hole) != 0 {
			t.Fatalf("seat %d hole cards leaked", s.Index)
		}
	}
}

func TestSnapshotForRevealsAtShowdown(t *testing.T) {
	e, mem := newTestEngine(t, 2, 0, 14)
	ctx := context.Background()
	mem.Seed("a", 50)
	mem.Seed("b", 50)
	if err := e.StartHand(ctx, 20); err != nil {
		t.Fatalf("start hand: %v", err)
	}
	if err := e.Bet(ctx, 0, 50); err != nil {
		t.Fatalf("shove: %v", err)
	}
	if err := e.Bet(ctx, 1, 50); err != nil {
		t.Fatalf("call: %v", err)
	}
	if !e.Table.Finished {
		t.Fatalf("expected showdown")
	}
	view := e.Table.SnapshotFor(0)
	for _, s := range view.Seats {
		if len(s.Hole) != 2 {
			t.Fatalf("showdown should reveal seat %d", s.Index)
		}
	}
}
