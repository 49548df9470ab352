package store

import "time"

type Account struct {
	PlayerID  string
	Balance   int64
	UpdatedAt time.Time
}

type LedgerEntry struct {
	ID        string
	PlayerID  string
	EntryType string
	Amount    int64
	RefType   string
	RefID     string
	CreatedAt time.Time
}

type Hand struct {
	ID        string
	TableID   string
	StageEnd  string
	Pot       *int64
	Winners   []byte
	StartedAt time.Time
	EndedAt   *time.Time
}

type HandAction struct {
	ID        string
	HandID    string
	PlayerID  string
	Action    string
	Amount    int64
	CreatedAt time.Time
}
