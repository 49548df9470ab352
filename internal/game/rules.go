package game

import "errors"

// Recoverable action-validation errors. They leave table state untouched;
// the caller re-prompts with corrected input.
var (
	ErrNotYourTurn    = errors.New("not_your_turn")
	ErrInvalidBet     = errors.New("invalid_bet")
	ErrCannotCheck    = errors.New("cannot_check")
	ErrGameFinished   = errors.New("game_already_finished")
	ErrHandInProgress = errors.New("hand_in_progress")
	ErrNotEnoughSeats = errors.New("not_enough_seats")
	ErrTableStarted   = errors.New("table_already_started")
	ErrNoSuchSeat     = errors.New("no_such_seat")
)

// Invariant violations. These indicate an engine bug, never user error, and
// abort the hand rather than being retried.
var (
	ErrDeckExhausted   = errors.New("deck_exhausted")
	ErrInvalidHandSize = errors.New("invalid_hand_size")
	ErrInvariant       = errors.New("invariant_violation")
)

func (t *Table) ensureActionable(seat int) (*Seat, error) {
	if t.Finished {
		return nil, ErrGameFinished
	}
	if seat < 0 || seat >= len(t.Seats) {
		return nil, ErrNoSuchSeat
	}
	if t.Turn != seat {
		return nil, ErrNotYourTurn
	}
	return t.Seats[seat], nil
}

// canCheck: a seat may check only when it owes nothing this round. This
// covers both the no-bet-yet case and the big blind's preflop option
// (nobody raised above the blind, so the blind's round bet already matches).
func (t *Table) canCheck(seat *Seat) bool {
	return seat.RoundBet == t.CurrentBet
}
