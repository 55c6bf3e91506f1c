package ws

import (
	"log/slog"
	"sync"

	"github.com/vikalpshakya/Ultimate-Bingo-game/internal/model"
)

// Hub tracks live connections and delivers outbound events to them. It
// is the coordinator's event sink.
type Hub struct {
	mu      sync.RWMutex
	clients map[model.ConnID]*Client
	logger  *slog.Logger
}

// NewHub creates a new Hub
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[model.ConnID]*Client),
		logger:  logger,
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.id] = c
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if current, ok := h.clients[c.id]; ok && current == c {
		delete(h.clients, c.id)
		close(c.send)
	}
}

// Send delivers an event to one connection. Unknown connections and
// full send buffers are dropped rather than blocking the caller.
func (h *Hub) Send(connID model.ConnID, event model.EventType, data any) {
	h.mu.RLock()
	client, ok := h.clients[connID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	select {
	case client.send <- OutboundEnvelope{Event: event, Data: data}:
	default:
		h.logger.Warn("dropping event for slow client",
			slog.String("conn_id", string(connID)),
			slog.String("event", string(event)),
		)
	}
}

// Broadcast delivers an event to every connection
func (h *Hub) Broadcast(event model.EventType, data any) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for connID, client := range h.clients {
		select {
		case client.send <- OutboundEnvelope{Event: event, Data: data}:
		default:
			h.logger.Warn("dropping broadcast for slow client",
				slog.String("conn_id", string(connID)),
				slog.String("event", string(event)),
			)
		}
	}
}

// ConnectionCount reports the number of live connections
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
