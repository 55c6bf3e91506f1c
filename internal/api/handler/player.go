package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vikalpshakya/Ultimate-Bingo-game/internal/api/response"
	"github.com/vikalpshakya/Ultimate-Bingo-game/internal/services/session"
	"github.com/vikalpshakya/Ultimate-Bingo-game/internal/services/stats"
)

// PlayerHandler handles player roster and stats endpoints
type PlayerHandler struct {
	sessionService *session.Service
	statsService   *stats.Service
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(sessionService *session.Service, statsService *stats.Service) *PlayerHandler {
	return &PlayerHandler{
		sessionService: sessionService,
		statsService:   statsService,
	}
}

// ListOnline handles GET /api/v1/players
func (h *PlayerHandler) ListOnline(w http.ResponseWriter, r *http.Request) {
	players, err := h.sessionService.ListOnline(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerList{Players: players})
}

// GetStats handles GET /api/v1/stats/{name}
func (h *PlayerHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	if name == "" {
		WriteError(w, NewInvalidRequestError("name is required"))
		return
	}

	playerStats, err := h.statsService.Get(r.Context(), name)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerStatsFromModel(name, playerStats))
}
