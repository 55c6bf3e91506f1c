package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vikalpshakya/Ultimate-Bingo-game/internal/model"
	"github.com/vikalpshakya/Ultimate-Bingo-game/internal/services/coordinator"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler upgrades HTTP requests to websocket connections and feeds
// decoded commands into the coordinator
type Handler struct {
	hub         *Hub
	coordinator *coordinator.Coordinator
	logger      *slog.Logger
}

// NewHandler creates a new websocket Handler
func NewHandler(hub *Hub, coordinator *coordinator.Coordinator, logger *slog.Logger) *Handler {
	return &Handler{
		hub:         hub,
		coordinator: coordinator,
		logger:      logger,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", slog.Any("error", err))
		return
	}

	client := newClient(model.ConnID(uuid.NewString()), conn, h.logger)
	h.hub.register(client)
	h.logger.Info("client connected", slog.String("conn_id", string(client.id)))

	go client.writePump()
	client.readPump(h.dispatch)

	h.coordinator.HandleDisconnect(context.Background(), client.id)
	h.hub.unregister(client)
	h.logger.Info("client disconnected", slog.String("conn_id", string(client.id)))
}

// dispatch decodes a command envelope and routes it. Malformed payloads
// are logged and dropped; they never terminate the connection.
func (h *Handler) dispatch(client *Client, envelope InboundEnvelope) {
	ctx := context.Background()

	switch envelope.Event {
	case CommandLogin:
		var cmd LoginCommand
		if !h.decode(client, envelope, &cmd) {
			return
		}
		h.coordinator.Login(ctx, client.id, cmd.Name)

	case CommandInvite:
		var cmd InviteCommand
		if !h.decode(client, envelope, &cmd) {
			return
		}
		h.coordinator.Invite(ctx, client.id, cmd.To)

	case CommandNumberSelected:
		var cmd NumberSelectedCommand
		if !h.decode(client, envelope, &cmd) {
			return
		}
		h.coordinator.SelectNumber(ctx, client.id, cmd.GameID, cmd.Number)

	case CommandExitGame:
		var cmd ExitGameCommand
		if !h.decode(client, envelope, &cmd) {
			return
		}
		h.coordinator.ExitMatch(ctx, client.id, cmd.GameID)

	default:
		h.logger.Debug("unknown command",
			slog.String("conn_id", string(client.id)),
			slog.String("event", envelope.Event),
		)
	}
}

func (h *Handler) decode(client *Client, envelope InboundEnvelope, v any) bool {
	if err := json.Unmarshal(envelope.Data, v); err != nil {
		h.logger.Warn("malformed command payload",
			slog.String("conn_id", string(client.id)),
			slog.String("event", envelope.Event),
			slog.Any("error", err),
		)
		return false
	}
	return true
}
