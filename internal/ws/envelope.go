package ws

import (
	"encoding/json"

	"github.com/vikalpshakya/Ultimate-Bingo-game/internal/model"
)

// Inbound command names accepted over the socket
const (
	CommandLogin          = "login"
	CommandInvite         = "invite"
	CommandNumberSelected = "numberSelected"
	CommandExitGame       = "exitGame"
)

// InboundEnvelope frames a client command. Data is decoded per-command
// once the event name is known.
type InboundEnvelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// OutboundEnvelope frames a server event
type OutboundEnvelope struct {
	Event model.EventType `json:"event"`
	Data  any             `json:"data,omitempty"`
}

// LoginCommand requests a display name for this connection
type LoginCommand struct {
	Name string `json:"name"`
}

// InviteCommand asks to start a match against an online player
type InviteCommand struct {
	To string `json:"to"`
}

// NumberSelectedCommand plays a number in a match
type NumberSelectedCommand struct {
	GameID model.MatchID `json:"gameId"`
	Number int           `json:"number"`
}

// ExitGameCommand leaves a match voluntarily
type ExitGameCommand struct {
	GameID model.MatchID `json:"gameId"`
}
