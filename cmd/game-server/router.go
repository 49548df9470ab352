package main

import (
	"log/slog"
	"net/http"

	"cardroom/internal/logging"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog/v3"
)

func (s *server) routes() *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)

	r.With(apiLogMiddleware()).Get("/healthz", s.healthHandler())

	r.Route("/api", func(r chi.Router) {
		r.Use(apiLogMiddleware())
		r.Post("/tables", s.createTableHandler())
		r.Get("/tables", s.listTablesHandler())
		r.Post("/tables/{table_id}/join", s.joinTableHandler())
		r.Post("/tables/{table_id}/start", s.startHandHandler())
		r.Post("/tables/{table_id}/actions", s.actionHandler())
		r.Get("/tables/{table_id}/state", s.stateHandler())
		r.Get("/tables/{table_id}/winners", s.winnersHandler())
		r.Post("/tables/{table_id}/cancel", s.cancelTableHandler())
		r.Get("/players/{player_id}/balance", s.balanceHandler())
		r.Get("/players/{player_id}/ledger", s.ledgerHandler())
	})
	return r
}

func apiLogMiddleware() func(http.Handler) http.Handler {
	return httplog.RequestLogger(
		slog.New(slog.NewJSONHandler(logging.Writer(), &slog.HandlerOptions{})),
		&httplog.Options{
			Level:  slog.LevelInfo,
			Schema: httplog.Schema{ResponseStatus: "status", ResponseDuration: "duration_ms"},
			LogExtraAttrs: func(req *http.Request, _ string, _ int) []slog.Attr {
				rc := chi.RouteContext(req.Context())
				route := req.URL.Path
				if rc != nil && rc.RoutePattern() != "" {
					route = rc.RoutePattern()
				}
				return []slog.Attr{
					slog.String("request_id", chimw.GetReqID(req.Context())),
					slog.String("method", req.Method),
					slog.String("route", route),
					slog.String("path", req.URL.Path),
				}
			},
		},
	)
}
