package model

import "time"

// ConnID uniquely identifies a live connection. It is minted when a
// connection is accepted and dies with the connection.
type ConnID string

// Session binds a connection to a display name for as long as the
// connection is logged in. Display names are unique among online
// sessions but may be reused after logout.
type Session struct {
	ConnID     ConnID    `json:"conn_id"`
	Name       string    `json:"name"`
	LoggedInAt time.Time `json:"logged_in_at"`
}

// PlayerStats is the win/loss tally for a display name. Records are
// created lazily on first login and never deleted.
type PlayerStats struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}
