package model

import "time"

// MatchID uniquely identifies a match
type MatchID string

// MatchState represents the lifecycle of a match. Invites auto-accept,
// so a match is Active from the moment it is created.
type MatchState string

const (
	MatchStateActive   MatchState = "active"
	MatchStateResolved MatchState = "resolved"
)

// WinThreshold is the completed-line count that ends a match.
const WinThreshold = 5

// Match is a two-player game in progress. Each participant has their
// own board (an independent permutation of the shared 1..25 value
// space); a move marks the chosen value on both boards.
type Match struct {
	ID          MatchID    `json:"id"`
	Players     [2]ConnID  `json:"players"`
	PlayerNames [2]string  `json:"player_names"` // aligned with Players
	Boards      map[ConnID]*Board `json:"boards"`
	Scores      map[ConnID]int    `json:"scores"` // completed-line counts
	Turn        ConnID     `json:"turn"`
	State       MatchState `json:"state"`
	MoveCount   int        `json:"move_count"`
	Winner      ConnID     `json:"winner,omitempty"`

	StartedAt     time.Time `json:"started_at"`
	TurnStartedAt time.Time `json:"turn_started_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// HasParticipant returns true if the connection is one of the two players
func (m *Match) HasParticipant(id ConnID) bool {
	return m.Players[0] == id || m.Players[1] == id
}

// Opponent returns the other participant, or "" if id is not in the match
func (m *Match) Opponent(id ConnID) ConnID {
	switch id {
	case m.Players[0]:
		return m.Players[1]
	case m.Players[1]:
		return m.Players[0]
	}
	return ""
}

// NameOf returns the display name of a participant, or "" if not in the match
func (m *Match) NameOf(id ConnID) string {
	switch id {
	case m.Players[0]:
		return m.PlayerNames[0]
	case m.Players[1]:
		return m.PlayerNames[1]
	}
	return ""
}

// Elapsed returns whole seconds since the match started, floored
func (m *Match) Elapsed(now time.Time) int {
	return int(now.Sub(m.StartedAt).Seconds())
}
