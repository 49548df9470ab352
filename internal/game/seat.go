package game

type Role int

const (
	RoleNormal Role = iota
	RoleDealer
	RoleSmallBlind
	RoleBigBlind
)

func (r Role) String() string {
	switch r {
	case RoleDealer:
		return "dealer"
	case RoleSmallBlind:
		return "small_blind"
	case RoleBigBlind:
		return "big_blind"
	default:
		return "normal"
	}
}

type SeatStatus int

const (
	StatusPending SeatStatus = iota
	StatusFolded
	StatusBetted
	StatusChecked
	StatusAllIn
)

func (s SeatStatus) String() string {
	switch s {
	case StatusFolded:
		return "folded"
	case StatusBetted:
		return "betted"
	case StatusChecked:
		return "checked"
	case StatusAllIn:
		return "all_in"
	default:
		return "pending"
	}
}

// Seat is the per-player record for one hand. RoundBet resets every betting
// round; TotalContributed lives for the whole hand and drives pot layering.
type Seat struct {
	PlayerID         string
	Index            int
	Role             Role
	Hole             []Card
	Status           SeatStatus
	RoundBet         int64
	TotalContributed int64
	Rank             *HandRank
}

func (s *Seat) resetForHand() {
	s.Hole = nil
	s.Status = StatusPending
	s.RoundBet = 0
	s.TotalContributed = 0
	s.Rank = nil
}

// assignRoles derives roles from seat order. Heads-up collapses the dealer
// into the small blind.
func assignRoles(seats []*Seat) {
	for _, s := range seats {
		s.Role = RoleNormal
	}
	if len(seats) == 2 {
		seats[0].Role = RoleSmallBlind
		seats[1].Role = RoleBigBlind
		return
	}
	seats[0].Role = RoleDealer
	seats[1].Role = RoleSmallBlind
	seats[2].Role = RoleBigBlind
}

// resolveBet caps a requested wager at the available balance. Callers treat
// a capped payment as going all-in rather than as a failure.
func resolveBet(requested, available int64) (paid int64, allIn bool) {
	if requested >= available {
		return available, true
	}
	return requested, false
}
