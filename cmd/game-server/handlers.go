package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"sync"

	"cardroom/internal/config"
	"cardroom/internal/game"
	"cardroom/internal/ledger"
	"cardroom/internal/registry"
	"cardroom/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type server struct {
	st  *store.Store
	reg *registry.Registry
	cfg config.ServerConfig

	mu    sync.Mutex
	hands map[string]string // table id -> open hand row
}

func newServer(st *store.Store, reg *registry.Registry, cfg config.ServerConfig) *server {
	return &server{st: st, reg: reg, cfg: cfg, hands: map[string]string{}}
}

func (s *server) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.st.Ping(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "db": "down"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "db": "up"})
	}
}

func (s *server) createTableHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := s.reg.Create()
		if err := s.persistTable(r.Context(), id, false); err != nil {
			log.Error().Err(err).Str("table_id", id).Msg("persist table failed")
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"table_id": id})
	}
}

func (s *server) listTablesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"items": s.reg.IDs()})
	}
}

func (s *server) joinTableHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tableID := chi.URLParam(r, "table_id")
		var body struct {
			PlayerID string `json:"player_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		if body.PlayerID == "" {
			writeHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		if err := s.st.EnsureAccount(r.Context(), body.PlayerID, s.cfg.InitialBalance); err != nil {
			writeHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}

		var seatIndex int
		err := s.reg.With(tableID, func(eng *game.Engine) error {
			seat, err := eng.Table.AddSeat(body.PlayerID)
			if err != nil {
				return err
			}
			seatIndex = seat.Index
			return nil
		})
		if err != nil {
			writeGameError(w, err)
			return
		}
		if err := s.persistTable(r.Context(), tableID, false); err != nil {
			log.Error().Err(err).Str("table_id", tableID).Msg("persist table failed")
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"table_id": tableID, "seat": seatIndex})
	}
}

func (s *server) startHandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tableID := chi.URLParam(r, "table_id")
		var body struct {
			MinBet int64 `json:"min_bet"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
			writeHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		minBet := body.MinBet
		if minBet == 0 {
			minBet = s.cfg.DefaultMinBet
		}

		var snap game.TableSnapshot
		err := s.reg.With(tableID, func(eng *game.Engine) error {
			if err := eng.StartHand(r.Context(), minBet); err != nil {
				return err
			}
			snap = eng.Table.SnapshotFor(-1)
			return nil
		})
		if err != nil {
			writeGameError(w, err)
			return
		}

		handID, err := s.st.CreateHand(r.Context(), tableID)
		if err != nil {
			log.Error().Err(err).Str("table_id", tableID).Msg("create hand row failed")
		} else {
			s.mu.Lock()
			s.hands[tableID] = handID
			s.mu.Unlock()
		}
		if err := s.persistTable(r.Context(), tableID, false); err != nil {
			log.Error().Err(err).Str("table_id", tableID).Msg("persist table failed")
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"table": snap})
	}
}

func (s *server) actionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tableID := chi.URLParam(r, "table_id")
		var body struct {
			PlayerID string `json:"player_id"`
			Action   string `json:"action"`
			Amount   int64  `json:"amount"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		if body.PlayerID == "" {
			writeHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}

		var snap game.TableSnapshot
		var finished bool
		err := s.reg.With(tableID, func(eng *game.Engine) error {
			seat := seatOf(eng.Table, body.PlayerID)
			if seat < 0 {
				return errNoSeat
			}
			var err error
			switch body.Action {
			case "fold":
				err = eng.Fold(r.Context(), seat)
			case "check":
				err = eng.Check(r.Context(), seat)
			case "bet":
				err = eng.Bet(r.Context(), seat, body.Amount)
			default:
				return errBadAction
			}
			if err != nil {
				return err
			}
			finished = eng.IsFinished()
			snap = eng.Table.SnapshotFor(seat)
			return nil
		})
		if err != nil {
			writeGameError(w, err)
			return
		}

		s.recordAction(r.Context(), tableID, body.PlayerID, body.Action, body.Amount)
		if finished {
			s.finishHand(r.Context(), tableID, snap)
		}
		if err := s.persistTable(r.Context(), tableID, false); err != nil {
			log.Error().Err(err).Str("table_id", tableID).Msg("persist table failed")
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"table": snap, "hand_finished": finished})
	}
}

func (s *server) stateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tableID := chi.URLParam(r, "table_id")
		playerID := r.URL.Query().Get("player_id")

		var snap game.TableSnapshot
		err := s.reg.With(tableID, func(eng *game.Engine) error {
			snap = eng.Table.SnapshotFor(seatOf(eng.Table, playerID))
			return nil
		})
		if err != nil {
			writeGameError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"table": snap})
	}
}

func (s *server) winnersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tableID := chi.URLParam(r, "table_id")
		var winners []game.Winner
		var done bool
		err := s.reg.With(tableID, func(eng *game.Engine) error {
			done = eng.IsFinished()
			winners = eng.HandWinners()
			return nil
		})
		if err != nil {
			writeGameError(w, err)
			return
		}
		if !done {
			writeHTTPError(w, http.StatusConflict, "hand_in_progress")
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"winners": winners})
	}
}

func (s *server) cancelTableHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tableID := chi.URLParam(r, "table_id")
		var snap game.TableSnapshot
		err := s.reg.With(tableID, func(eng *game.Engine) error {
			if err := eng.Cancel(r.Context()); err != nil {
				return err
			}
			snap = eng.Table.SnapshotFor(-1)
			return nil
		})
		if err != nil {
			writeGameError(w, err)
			return
		}

		s.mu.Lock()
		handID := s.hands[tableID]
		delete(s.hands, tableID)
		s.mu.Unlock()
		if handID != "" {
			if err := s.st.FinishHand(r.Context(), handID, "cancelled", 0, nil); err != nil {
				log.Error().Err(err).Str("hand_id", handID).Msg("finish hand row failed")
			}
		}
		if err := s.persistTable(r.Context(), tableID, true); err != nil {
			log.Error().Err(err).Str("table_id", tableID).Msg("persist table failed")
		}
		s.reg.Remove(tableID)
		_ = json.NewEncoder(w).Encode(map[string]any{"table": snap, "cancelled": true})
	}
}

func (s *server) balanceHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := chi.URLParam(r, "player_id")
		bal, err := s.st.AccountBalance(r.Context(), playerID)
		if errors.Is(err, store.ErrNotFound) {
			writeHTTPError(w, http.StatusNotFound, "player_not_found")
			return
		}
		if err != nil {
			writeHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"player_id": playerID, "balance": bal})
	}
}

func (s *server) ledgerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := chi.URLParam(r, "player_id")
		limit := 50
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
				limit = n
			}
		}
		items, err := s.st.ListLedgerEntries(r.Context(), playerID, limit)
		if err != nil {
			writeHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"items": items})
	}
}

// persistTable snapshots the current table state so a restart can resume
// it. Cancelled tables are marked finished and skipped at boot.
func (s *server) persistTable(ctx context.Context, tableID string, finished bool) error {
	var data []byte
	err := s.reg.With(tableID, func(eng *game.Engine) error {
		var err error
		data, err = json.Marshal(eng.Table.Snapshot())
		return err
	})
	if err != nil {
		return err
	}
	return s.st.SaveTableSnapshot(ctx, tableID, data, finished)
}

func (s *server) recordAction(ctx context.Context, tableID, playerID, action string, amount int64) {
	s.mu.Lock()
	handID := s.hands[tableID]
	s.mu.Unlock()
	if handID == "" {
		return
	}
	if err := s.st.RecordAction(ctx, handID, playerID, action, amount); err != nil {
		log.Error().Err(err).Str("hand_id", handID).Msg("record action failed")
	}
}

func (s *server) finishHand(ctx context.Context, tableID string, snap game.TableSnapshot) {
	s.mu.Lock()
	handID := s.hands[tableID]
	delete(s.hands, tableID)
	s.mu.Unlock()
	if handID == "" {
		return
	}
	winners, err := json.Marshal(snap.Winners)
	if err != nil {
		winners = nil
	}
	if err := s.st.FinishHand(ctx, handID, snap.Stage, snap.PaidOut, winners); err != nil {
		log.Error().Err(err).Str("hand_id", handID).Msg("finish hand row failed")
	}
}

func seatOf(t *game.Table, playerID string) int {
	for _, seat := range t.Seats {
		if seat.PlayerID == playerID {
			return seat.Index
		}
	}
	return -1
}

var (
	errNoSeat    = errors.New("player_not_seated")
	errBadAction = errors.New("unknown_action")
)

func writeGameError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, registry.ErrNoTable):
		writeHTTPError(w, http.StatusNotFound, "table_not_found")
	case errors.Is(err, errNoSeat):
		writeHTTPError(w, http.StatusForbidden, "player_not_seated")
	case errors.Is(err, errBadAction):
		writeHTTPError(w, http.StatusBadRequest, "unknown_action")
	case errors.Is(err, game.ErrNotYourTurn):
		writeHTTPError(w, http.StatusConflict, "not_your_turn")
	case errors.Is(err, game.ErrInvalidBet):
		writeHTTPError(w, http.StatusBadRequest, "invalid_bet")
	case errors.Is(err, game.ErrCannotCheck):
		writeHTTPError(w, http.StatusBadRequest, "cannot_check")
	case errors.Is(err, game.ErrGameFinished):
		writeHTTPError(w, http.StatusConflict, "hand_finished")
	case errors.Is(err, game.ErrHandInProgress):
		writeHTTPError(w, http.StatusConflict, "hand_in_progress")
	case errors.Is(err, game.ErrNotEnoughSeats):
		writeHTTPError(w, http.StatusConflict, "not_enough_players")
	case errors.Is(err, game.ErrTableStarted):
		writeHTTPError(w, http.StatusConflict, "table_started")
	case errors.Is(err, game.ErrNoSuchSeat):
		writeHTTPError(w, http.StatusBadRequest, "no_such_seat")
	case errors.Is(err, ledger.ErrInsufficientFunds):
		writeHTTPError(w, http.StatusConflict, "insufficient_funds")
	default:
		writeHTTPError(w, http.StatusInternalServerError, "internal_error")
	}
}

func writeHTTPError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"error": code})
}
