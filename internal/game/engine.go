package game

import (
	"context"
	"math/rand"

	"cardroom/internal/ledger"
)

// Engine runs the betting state machine for one table. Every public method
// is synchronous and either mutates the table and returns nil, or leaves it
// untouched and returns a validation error. The engine takes no locks;
// callers serialize actions per table.
type Engine struct {
	Ledger ledger.Ledger
	Table  *Table

	rng *rand.Rand
}

func NewEngine(l ledger.Ledger, t *Table) *Engine {
	return &Engine{Ledger: l, Table: t}
}

// NewSeededEngine fixes the shuffle RNG, for deterministic replays.
func NewSeededEngine(l ledger.Ledger, t *Table, seed int64) *Engine {
	return &Engine{Ledger: l, Table: t, rng: rand.New(rand.NewSource(seed))}
}

// StartHand shuffles a fresh deck, posts blinds, deals hole cards and opens
// the preflop round. The small blind is half the minimum bet rounded down,
// the big blind the full minimum bet.
func (e *Engine) StartHand(ctx context.Context, minBet int64) error {
	t := e.Table
	if t.Stage != StageWaiting && !t.Finished {
		return ErrHandInProgress
	}
	if len(t.Seats) < 2 {
		return ErrNotEnoughSeats
	}
	if minBet < 2 {
		return ErrInvalidBet
	}

	t.Finished = false
	t.Cancelled = false
	t.MinBet = minBet
	t.Pot = 0
	t.PaidOut = 0
	t.CurrentBet = 0
	t.Community = nil
	t.Winners = nil
	for _, s := range t.Seats {
		s.resetForHand()
	}
	assignRoles(t.Seats)

	t.deck = NewDeck()
	if e.rng != nil {
		t.deck.ShuffleWith(e.rng)
	} else {
		t.deck.Shuffle()
	}

	// Seats that cannot cover a single chip sit the hand out.
	for _, s := range t.Seats {
		bal, err := e.Ledger.Balance(ctx, s.PlayerID)
		if err != nil {
			return err
		}
		if bal <= 0 {
			s.Status = StatusFolded
		}
	}
	if t.countNotFolded() < 2 {
		t.Stage = StageWaiting
		return ErrNotEnoughSeats
	}

	sb := t.seatByRole(RoleSmallBlind)
	bb := t.seatByRole(RoleBigBlind)
	if err := e.postBlind(ctx, sb, minBet/2); err != nil {
		return err
	}
	if err := e.postBlind(ctx, bb, minBet); err != nil {
		return err
	}
	t.CurrentBet = minBet

	for _, s := range t.Seats {
		c1, err := t.deck.Draw()
		if err != nil {
			return e.abort(err)
		}
		c2, err := t.deck.Draw()
		if err != nil {
			return e.abort(err)
		}
		s.Hole = []Card{c1, c2}
	}

	t.Stage = StagePreFlop
	if err := e.advanceFrom(ctx, bb.Index); err != nil {
		return err
	}
	return e.verify()
}

func (e *Engine) postBlind(ctx context.Context, s *Seat, due int64) error {
	if s == nil || s.Status == StatusFolded || due <= 0 {
		return nil
	}
	bal, err := e.Ledger.Balance(ctx, s.PlayerID)
	if err != nil {
		return err
	}
	paid, allIn := resolveBet(due, bal)
	if paid > 0 {
		if err := e.Ledger.Withdraw(ctx, s.PlayerID, paid); err != nil {
			return err
		}
	}
	s.RoundBet = paid
	s.TotalContributed = paid
	e.Table.Pot += paid
	if allIn {
		s.Status = StatusAllIn
	}
	return nil
}

// Fold takes the acting seat out of the hand. If only one seat remains the
// hand ends immediately and that seat collects the whole pot without a
// showdown.
func (e *Engine) Fold(ctx context.Context, seat int) error {
	t := e.Table
	s, err := t.ensureActionable(seat)
	if err != nil {
		return err
	}
	s.Status = StatusFolded
	s.RoundBet = 0

	if t.countNotFolded() == 1 {
		if err := e.payFoldWin(ctx); err != nil {
			return e.abort(err)
		}
		return e.verify()
	}

	// Heads-up blinds after a third seat folds preflop with no raise yet:
	// give the small blind its option back instead of closing the round.
	if t.Stage == StagePreFlop && t.countNotFolded() == 2 && t.CurrentBet == t.MinBet {
		sb := t.seatByRole(RoleSmallBlind)
		bb := t.seatByRole(RoleBigBlind)
		if sb != nil && bb != nil && sb.Status != StatusFolded && bb.Status != StatusFolded {
			if sb.Status == StatusBetted || sb.Status == StatusChecked {
				sb.Status = StatusPending
			}
		}
	}

	if err := e.advanceFrom(ctx, seat); err != nil {
		return err
	}
	return e.verify()
}

// Check passes the action without chips. Legal only when the seat owes
// nothing this round (which includes the big blind's preflop option).
func (e *Engine) Check(ctx context.Context, seat int) error {
	t := e.Table
	s, err := t.ensureActionable(seat)
	if err != nil {
		return err
	}
	if !t.canCheck(s) {
		return ErrCannotCheck
	}
	s.Status = StatusChecked
	if err := e.advanceFrom(ctx, seat); err != nil {
		return err
	}
	return e.verify()
}

// Bet moves the seat's round bet to amount: matching the current bet is a
// call, exceeding it a raise that re-opens the action for everyone else.
// A seat whose balance cannot cover the amount pays what it has and goes
// all-in instead of failing.
func (e *Engine) Bet(ctx context.Context, seat int, amount int64) error {
	t := e.Table
	s, err := t.ensureActionable(seat)
	if err != nil {
		return err
	}
	if amount < t.CurrentBet || amount <= s.RoundBet || amount <= 0 {
		return ErrInvalidBet
	}

	need := amount - s.RoundBet
	bal, err := e.Ledger.Balance(ctx, s.PlayerID)
	if err != nil {
		return err
	}
	paid, allIn := resolveBet(need, bal)
	if paid <= 0 {
		return ErrInvalidBet
	}
	if err := e.Ledger.Withdraw(ctx, s.PlayerID, paid); err != nil {
		return err
	}

	s.RoundBet += paid
	s.TotalContributed += paid
	t.Pot += paid
	if allIn {
		s.Status = StatusAllIn
	} else {
		s.Status = StatusBetted
	}

	if s.RoundBet > t.CurrentBet {
		t.CurrentBet = s.RoundBet
		// A genuine raise puts everyone else back on the clock. A flat
		// call never re-opens action, even when it lands exactly on the
		// big blind preflop.
		for _, other := range t.Seats {
			if other == s || other.Status == StatusFolded || other.Status == StatusAllIn {
				continue
			}
			other.Status = StatusPending
		}
	}

	if err := e.advanceFrom(ctx, seat); err != nil {
		return err
	}
	return e.verify()
}

// Cancel aborts the hand before showdown, returning every seat's full
// contribution to the ledger. Cancelling a finished hand is a no-op.
func (e *Engine) Cancel(ctx context.Context) error {
	t := e.Table
	if t.Finished {
		return nil
	}
	for _, s := range t.Seats {
		if s.TotalContributed == 0 {
			continue
		}
		if err := e.Ledger.Deposit(ctx, s.PlayerID, s.TotalContributed); err != nil {
			return err
		}
		t.PaidOut += s.TotalContributed
		t.Pot -= s.TotalContributed
	}
	t.Cancelled = true
	t.Finished = true
	t.Turn = -1
	return e.verify()
}

func (e *Engine) IsFinished() bool {
	return e.Table.Finished
}

// HandWinners reports the final payouts, empty until the hand concludes.
func (e *Engine) HandWinners() []Winner {
	return append([]Winner(nil), e.Table.Winners...)
}

// advanceFrom hands the turn to the next seat owing a decision, or closes
// the round when nobody does. Closing cascades: once remaining seats are
// all-in, the rest of the board deals out with no further input until
// showdown.
func (e *Engine) advanceFrom(ctx context.Context, from int) error {
	t := e.Table
	for {
		if next := t.nextPending(from); next >= 0 {
			t.Turn = next
			return nil
		}
		if err := e.closeRound(); err != nil {
			return e.abort(err)
		}
		if t.Stage == StageShowdown {
			t.Turn = -1
			if err := e.resolve(ctx); err != nil {
				return e.abort(err)
			}
			return nil
		}
		// New round: action starts at the small blind, except heads-up
		// where the small blind is also the dealer and acts last.
		start := 0
		if sb := t.seatByRole(RoleSmallBlind); sb != nil {
			start = sb.Index
		}
		if len(t.Seats) == 2 {
			if bb := t.seatByRole(RoleBigBlind); bb != nil {
				start = bb.Index
			}
		}
		from = start - 1
	}
}

// nextPending scans cyclically after from for the next seat still owing a
// decision.
func (t *Table) nextPending(from int) int {
	n := len(t.Seats)
	for i := 1; i <= n; i++ {
		idx := (from + i + n) % n
		if t.Seats[idx].Status == StatusPending {
			return idx
		}
	}
	return -1
}

// closeRound resets per-round state and deals the next stage's community
// cards.
func (e *Engine) closeRound() error {
	t := e.Table
	for _, s := range t.Seats {
		s.RoundBet = 0
		if s.Status != StatusFolded && s.Status != StatusAllIn {
			s.Status = StatusPending
		}
	}
	t.CurrentBet = 0

	var deal int
	switch t.Stage {
	case StagePreFlop:
		deal = 3
	case StageFlop, StageTurn:
		deal = 1
	}
	for i := 0; i < deal; i++ {
		c, err := t.deck.Draw()
		if err != nil {
			return err
		}
		t.Community = append(t.Community, c)
	}
	t.Stage++
	return nil
}

// resolve runs the showdown: evaluate every surviving seat, layer the pot
// by contribution tier and pay each layer's best hands. Runs at most once
// per hand.
func (e *Engine) resolve(ctx context.Context) error {
	t := e.Table
	if t.Finished {
		return nil
	}

	ranks := map[int]HandRank{}
	for _, s := range t.Seats {
		if s.Status == StatusFolded {
			continue
		}
		seven := make([]Card, 0, 7)
		seven = append(seven, s.Hole...)
		seven = append(seven, t.Community...)
		rank, err := Evaluate7(seven)
		if err != nil {
			return err
		}
		s.Rank = &rank
		ranks[s.Index] = rank
	}

	pots := BuildPots(t.contributions())
	payouts := Payouts(pots, ranks)

	winners := make([]Winner, 0, len(payouts))
	for _, s := range t.Seats {
		amount, ok := payouts[s.Index]
		if !ok {
			continue
		}
		if err := e.Ledger.Deposit(ctx, s.PlayerID, amount); err != nil {
			return err
		}
		t.PaidOut += amount
		t.Pot -= amount
		winners = append(winners, Winner{Seat: s.Index, Amount: amount})
	}
	t.Winners = winners
	t.Finished = true
	return nil
}

// payFoldWin pays the whole pot to the only seat left, no evaluator call.
func (e *Engine) payFoldWin(ctx context.Context) error {
	t := e.Table
	winner := t.lastNotFolded()
	amount := t.Pot
	if amount > 0 {
		if err := e.Ledger.Deposit(ctx, winner.PlayerID, amount); err != nil {
			return err
		}
	}
	t.PaidOut += amount
	t.Pot = 0
	t.Winners = []Winner{{Seat: winner.Index, Amount: amount}}
	t.Stage = StageShowdown
	t.Finished = true
	t.Turn = -1
	return nil
}

// abort marks the hand dead after an invariant violation so no further
// actions can run, and surfaces the original error.
func (e *Engine) abort(err error) error {
	e.Table.Finished = true
	e.Table.Turn = -1
	return err
}

func (e *Engine) verify() error {
	if err := e.Table.checkInvariants(); err != nil {
		return e.abort(err)
	}
	return nil
}
