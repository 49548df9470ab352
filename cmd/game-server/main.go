package main

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"cardroom/internal/config"
	"cardroom/internal/game"
	"cardroom/internal/ledger"
	"cardroom/internal/logging"
	"cardroom/internal/registry"
	"cardroom/internal/store"

	"github.com/rs/zerolog/log"
)

func main() {
	logCfg, err := config.LoadLog()
	if err != nil {
		panic(err)
	}
	logging.Init(logCfg)
	cfg, err := config.LoadServer()
	if err != nil {
		log.Fatal().Err(err).Msg("load server config failed")
	}

	st, err := store.New(cfg.PostgresDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("store init failed")
	}
	if err := st.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("db ping failed")
	}
	if err := st.Migrate(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("migrate failed")
	}

	reg := registry.New(func(tableID string) ledger.Ledger {
		return ledger.NewPostgres(st, tableID)
	})
	srv := newServer(st, reg, cfg)
	srv.recoverTables(context.Background())

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	log.Info().Str("addr", cfg.HTTPAddr).Msg("http listening")
	log.Fatal().Err(server.ListenAndServe()).Msg("server stopped")
}

// recoverTables reloads every table that was still open when the last
// process stopped, so seated players and mid-hand state survive restarts.
func (s *server) recoverTables(ctx context.Context) {
	snaps, err := s.st.ListOpenTableSnapshots(ctx)
	if err != nil {
		log.Error().Err(err).Msg("list open snapshots failed")
		return
	}
	restored := 0
	for _, data := range snaps {
		var snap game.TableSnapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			log.Error().Err(err).Msg("bad table snapshot")
			continue
		}
		tbl, err := game.RestoreTable(snap)
		if err != nil {
			log.Error().Err(err).Str("table_id", snap.TableID).Msg("restore table failed")
			continue
		}
		s.reg.Adopt(tbl)
		restored++
	}
	if restored > 0 {
		log.Info().Int("tables", restored).Msg("recovered open tables")
	}
}
