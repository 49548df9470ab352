// Package registry tracks the live tables of a running server and
// serializes access to each one.
package registry

import (
	"errors"
	"sync"

	"cardroom/internal/game"
	"cardroom/internal/ledger"

	"github.com/google/uuid"
)

var ErrNoTable = errors.New("no such table")

// LedgerFactory builds the chip ledger a table's engine settles against.
type LedgerFactory func(tableID string) ledger.Ledger

type entry struct {
	mu     sync.Mutex
	engine *game.Engine
}

type Registry struct {
	newLedger LedgerFactory

	mu     sync.Mutex
	tables map[string]*entry
}

func New(factory LedgerFactory) *Registry {
	return &Registry{
		newLedger: factory,
		tables:    map[string]*entry{},
	}
}

// Create registers a fresh table and returns its id.
func (r *Registry) Create() string {
	id := uuid.NewString()
	eng := game.NewEngine(r.newLedger(id), game.NewTable(id))

	r.mu.Lock()
	r.tables[id] = &entry{engine: eng}
	r.mu.Unlock()
	return id
}

// Adopt registers a table restored from a snapshot under its original id.
// An already registered table with the same id is replaced.
func (r *Registry) Adopt(t *game.Table) {
	eng := game.NewEngine(r.newLedger(t.ID), t)

	r.mu.Lock()
	r.tables[t.ID] = &entry{engine: eng}
	r.mu.Unlock()
}

// With runs fn while holding the table's lock. Engine methods are not
// safe for concurrent use, so every handler goes through here.
func (r *Registry) With(id string, fn func(*game.Engine) error) error {
	r.mu.Lock()
	e := r.tables[id]
	r.mu.Unlock()
	if e == nil {
		return ErrNoTable
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.engine)
}

func (r *Registry) IDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.tables))
	for id := range r.tables {
		ids = append(ids, id)
	}
	return ids
}

func (r *Registry) Remove(id string) {
	r.mu.Lock()
	delete(r.tables, id)
	r.mu.Unlock()
}
