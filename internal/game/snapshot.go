package game

import "fmt"

// SeatSnapshot and TableSnapshot are the wire/storage form of table state.
// A snapshot carries everything needed to resume a hand mid-flight,
// including the undrawn deck remainder, so a restored table replays the
// same future cards.
type SeatSnapshot struct {
	PlayerID         string        `json:"player_id"`
	Index            int           `json:"index"`
	Role             string        `json:"role"`
	Status           string        `json:"status"`
	Hole             []string      `json:"hole,omitempty"`
	RoundBet         int64         `json:"round_bet"`
	TotalContributed int64         `json:"total_contributed"`
	Rank             *RankSnapshot `json:"rank,omitempty"`
}

type RankSnapshot struct {
	Category  string `json:"category"`
	Tiebreaks []int  `json:"tiebreaks"`
}

type TableSnapshot struct {
	TableID    string         `json:"table_id"`
	Stage      string         `json:"stage"`
	Seats      []SeatSnapshot `json:"seats"`
	Community  []string       `json:"community"`
	Deck       []string       `json:"deck,omitempty"`
	Pot        int64          `json:"pot"`
	CurrentBet int64          `json:"current_bet"`
	MinBet     int64          `json:"min_bet"`
	Turn       int            `json:"turn"`
	Finished   bool           `json:"finished"`
	Cancelled  bool           `json:"cancelled"`
	PaidOut    int64          `json:"paid_out"`
	Winners    []Winner       `json:"winners,omitempty"`
}

func cardStrings(cards []Card) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.String())
	}
	return out
}

func parseCards(strs []string) ([]Card, error) {
	out := make([]Card, 0, len(strs))
	for _, s := range strs {
		c, err := ParseCard(s)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// Snapshot captures the complete table state, deck included.
func (t *Table) Snapshot() TableSnapshot {
	snap := TableSnapshot{
		TableID:    t.ID,
		Stage:      t.Stage.String(),
		Community:  cardStrings(t.Community),
		Pot:        t.Pot,
		CurrentBet: t.CurrentBet,
		MinBet:     t.MinBet,
		Turn:       t.Turn,
		Finished:   t.Finished,
		Cancelled:  t.Cancelled,
		PaidOut:    t.PaidOut,
		Winners:    append([]Winner(nil), t.Winners...),
	}
	if t.deck != nil {
		snap.Deck = cardStrings(t.deck.Cards())
	}
	for _, s := range t.Seats {
		ss := SeatSnapshot{
			PlayerID:         s.PlayerID,
			Index:            s.Index,
			Role:             s.Role.String(),
			Status:           s.Status.String(),
			Hole:             cardStrings(s.Hole),
			RoundBet:         s.RoundBet,
			TotalContributed: s.TotalContributed,
		}
		if s.Rank != nil {
			ss.Rank = &RankSnapshot{Category: s.Rank.Category.String(), Tiebreaks: s.Rank.Tiebreaks}
		}
		snap.Seats = append(snap.Seats, ss)
	}
	return snap
}

// SnapshotFor renders the table as one seat is allowed to see it: no deck,
// and other seats' hole cards hidden until a showdown actually reveals
// them.
func (t *Table) SnapshotFor(seatIndex int) TableSnapshot {
	snap := t.Snapshot()
	snap.Deck = nil
	reveal := t.Finished && !t.Cancelled && t.Stage == StageShowdown && len(t.Community) == 5
	for i := range snap.Seats {
		if snap.Seats[i].Index == seatIndex {
			continue
		}
		if reveal && snap.Seats[i].Status != StatusFolded.String() {
			continue
		}
		snap.Seats[i].Hole = nil
		snap.Seats[i].Rank = nil
	}
	return snap
}

// RestoreTable rebuilds a table from a full snapshot. The result accepts
// the same actions the original would have.
func RestoreTable(snap TableSnapshot) (*Table, error) {
	t := NewTable(snap.TableID)
	stage, err := stageFromString(snap.Stage)
	if err != nil {
		return nil, err
	}
	t.Stage = stage
	t.Pot = snap.Pot
	t.CurrentBet = snap.CurrentBet
	t.MinBet = snap.MinBet
	t.Turn = snap.Turn
	t.Finished = snap.Finished
	t.Cancelled = snap.Cancelled
	t.PaidOut = snap.PaidOut
	t.Winners = append([]Winner(nil), snap.Winners...)

	if t.Community, err = parseCards(snap.Community); err != nil {
		return nil, err
	}
	deckCards, err := parseCards(snap.Deck)
	if err != nil {
		return nil, err
	}
	t.deck = deckFromCards(deckCards)

	for _, ss := range snap.Seats {
		role, err := roleFromString(ss.Role)
		if err != nil {
			return nil, err
		}
		status, err := statusFromString(ss.Status)
		if err != nil {
			return nil, err
		}
		hole, err := parseCards(ss.Hole)
		if err != nil {
			return nil, err
		}
		seat := &Seat{
			PlayerID:         ss.PlayerID,
			Index:            ss.Index,
			Role:             role,
			Status:           status,
			Hole:             hole,
			RoundBet:         ss.RoundBet,
			TotalContributed: ss.TotalContributed,
		}
		if ss.Rank != nil {
			cat, err := categoryFromString(ss.Rank.Category)
			if err != nil {
				return nil, err
			}
			seat.Rank = &HandRank{Category: cat, Tiebreaks: ss.Rank.Tiebreaks}
		}
		t.Seats = append(t.Seats, seat)
	}
	return t, nil
}

func stageFromString(s string) (Stage, error) {
	for st := StageWaiting; st <= StageShowdown; st++ {
		if st.String() == s {
			return st, nil
		}
	}
	return 0, fmt.Errorf("unknown stage %q", s)
}

func roleFromString(s string) (Role, error) {
	for r := RoleNormal; r <= RoleBigBlind; r++ {
		if r.String() == s {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown role %q", s)
}

func categoryFromString(s string) (Category, error) {
	for c := HighCard; c <= RoyalFlush; c++ {
		if c.String() == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown hand category %q", s)
}

func statusFromString(s string) (SeatStatus, error) {
	for st := StatusPending; st <= StatusAllIn; st++ {
		if st.String() == s {
			return st, nil
		}
	}
	return 0, fmt.Errorf("unknown seat status %q", s)
}
