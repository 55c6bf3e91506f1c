package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vikalpshakya/Ultimate-Bingo-game/internal/api/handler"
	"github.com/vikalpshakya/Ultimate-Bingo-game/internal/api/middleware"
	"github.com/vikalpshakya/Ultimate-Bingo-game/internal/services/session"
	"github.com/vikalpshakya/Ultimate-Bingo-game/internal/services/stats"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	SessionService *session.Service
	StatsService   *stats.Service
	WSHandler      http.Handler
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	playerHandler := handler.NewPlayerHandler(cfg.SessionService, cfg.StatsService)

	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// The websocket endpoint carries its own lifecycle logging; only
	// panic recovery wraps it.
	r.Handle("/ws", recoveryMiddleware(cfg.WSHandler))

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	api.HandleFunc("/players", playerHandler.ListOnline).Methods(http.MethodGet)
	api.HandleFunc("/stats/{name}", playerHandler.GetStats).Methods(http.MethodGet)

	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
