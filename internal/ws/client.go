package ws

import (
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vikalpshakya/Ultimate-Bingo-game/internal/model"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 4096

	sendBufferSize = 32
)

// Client is one websocket connection. Outbound events go through the
// buffered send channel so the hub never blocks on a slow reader.
type Client struct {
	id     model.ConnID
	conn   *websocket.Conn
	send   chan OutboundEnvelope
	logger *slog.Logger
}

func newClient(id model.ConnID, conn *websocket.Conn, logger *slog.Logger) *Client {
	return &Client{
		id:     id,
		conn:   conn,
		send:   make(chan OutboundEnvelope, sendBufferSize),
		logger: logger,
	}
}

// ID returns the connection identity used across the session and match
// directories
func (c *Client) ID() model.ConnID {
	return c.id
}

// readPump reads inbound envelopes and hands them to dispatch until the
// connection drops. It owns the read side of the connection.
func (c *Client) readPump(dispatch func(*Client, InboundEnvelope)) {
	defer c.conn.Close()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var envelope InboundEnvelope
		if err := c.conn.ReadJSON(&envelope); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug("websocket read error",
					slog.String("conn_id", string(c.id)),
					slog.Any("error", err),
				)
			}
			return
		}
		dispatch(c, envelope)
	}
}

// writePump drains the send channel and keeps the connection alive with
// pings. It owns the write side of the connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case envelope, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(envelope); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
