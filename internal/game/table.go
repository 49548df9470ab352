package game

import "fmt"

type Stage int

const (
	StageWaiting Stage = iota
	StagePreFlop
	StageFlop
	StageTurn
	StageRiver
	StageShowdown
)

func (s Stage) String() string {
	switch s {
	case StagePreFlop:
		return "preflop"
	case StageFlop:
		return "flop"
	case StageTurn:
		return "turn"
	case StageRiver:
		return "river"
	case StageShowdown:
		return "showdown"
	default:
		return "waiting"
	}
}

// Winner is one seat's payout from a settled or folded-out hand.
type Winner struct {
	Seat   int   `json:"seat"`
	Amount int64 `json:"amount"`
}

// Table owns all state for one poker table: seats, community cards, the
// deck, and the betting round bookkeeping. It is mutated by exactly one
// action at a time; callers serialize access (the engine takes no locks).
type Table struct {
	ID         string
	Seats      []*Seat
	Community  []Card
	Stage      Stage
	Pot        int64
	CurrentBet int64
	MinBet     int64
	Turn       int // seat index, -1 when nobody owes a decision
	Finished   bool
	Cancelled  bool
	PaidOut    int64
	Winners    []Winner

	deck *Deck
}

func NewTable(id string) *Table {
	return &Table{ID: id, Stage: StageWaiting, Turn: -1}
}

// AddSeat joins a player to a waiting table. Seats cannot be added once a
// hand is underway.
func (t *Table) AddSeat(playerID string) (*Seat, error) {
	if t.Stage != StageWaiting {
		return nil, ErrTableStarted
	}
	seat := &Seat{PlayerID: playerID, Index: len(t.Seats), Status: StatusPending}
	t.Seats = append(t.Seats, seat)
	return seat, nil
}

func (t *Table) seatByRole(role Role) *Seat {
	for _, s := range t.Seats {
		if s.Role == role {
			return s
		}
	}
	return nil
}

func (t *Table) countNotFolded() int {
	n := 0
	for _, s := range t.Seats {
		if s.Status != StatusFolded {
			n++
		}
	}
	return n
}

func (t *Table) lastNotFolded() *Seat {
	for _, s := range t.Seats {
		if s.Status != StatusFolded {
			return s
		}
	}
	return nil
}

func (t *Table) contributions() []Contribution {
	out := make([]Contribution, 0, len(t.Seats))
	for _, s := range t.Seats {
		out = append(out, Contribution{
			Seat:   s.Index,
			Amount: s.TotalContributed,
			Folded: s.Status == StatusFolded,
		})
	}
	return out
}

// checkInvariants verifies chip conservation and stage/board coherence
// after every mutation. A failure here is an engine bug and aborts the
// hand loudly.
func (t *Table) checkInvariants() error {
	var contributed int64
	for _, s := range t.Seats {
		contributed += s.TotalContributed
	}
	if contributed != t.Pot+t.PaidOut {
		return fmt.Errorf("%w: chips contributed=%d pot=%d paid=%d", ErrInvariant, contributed, t.Pot, t.PaidOut)
	}
	var want int
	switch t.Stage {
	case StageFlop:
		want = 3
	case StageTurn:
		want = 4
	case StageRiver, StageShowdown:
		want = 5
	}
	if t.Stage == StageShowdown && len(t.Community) == 0 {
		// Hand ended before the board was dealt out (fold-win or cancel).
		want = 0
	}
	if len(t.Community) != want && !(t.Stage == StageShowdown && t.Finished) {
		return fmt.Errorf("%w: %d community cards at %s", ErrInvariant, len(t.Community), t.Stage)
	}
	if t.Turn >= 0 {
		if t.Turn >= len(t.Seats) || t.Seats[t.Turn].Status == StatusFolded {
			return fmt.Errorf("%w: turn on folded seat %d", ErrInvariant, t.Turn)
		}
	}
	return nil
}
