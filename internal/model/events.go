package model

// EventType names an outbound event. The names are the wire protocol:
// clients subscribe to them verbatim.
type EventType string

const (
	EventLoggedIn     EventType = "loggedIn"
	EventLoginFailed  EventType = "loginFailed"
	EventJoined       EventType = "joined"
	EventGameInvite   EventType = "gameInvite"
	EventStartGame    EventType = "startGame"
	EventUpdateMatrix EventType = "updateMatrix"
	EventNotYourTurn  EventType = "notYourTurn"
	EventTurnChange   EventType = "turnChange"
	EventGameOver     EventType = "gameOver"
	EventOpponentLeft EventType = "opponentLeft"
	EventInviteFailed EventType = "inviteFailed"
)

// LoggedInPayload is sent to the caller on successful login
type LoggedInPayload struct {
	Players []string    `json:"players"`
	Stats   PlayerStats `json:"stats"`
}

// FailurePayload carries a human-readable reason for loginFailed and
// inviteFailed events
type FailurePayload struct {
	Message string `json:"message"`
}

// GameInvitePayload is sent to the invitee when a match is created
type GameInvitePayload struct {
	From   string  `json:"from"`
	GameID MatchID `json:"gameId"`
}

// StartGamePayload is sent to each participant individually; the board
// is that participant's own
type StartGamePayload struct {
	GameID        MatchID  `json:"gameId"`
	PlayerID      string   `json:"playerId"`
	Matrix        [][]Cell `json:"matrix"`
	Score         int      `json:"score"`
	OpponentScore int      `json:"opponentScore"`
}

// UpdateMatrixPayload is sent to each participant after an accepted
// move. LineCompleted is computed relative to the recipient.
type UpdateMatrixPayload struct {
	Matrix        [][]Cell `json:"matrix"`
	CurrentPlayer string   `json:"currentPlayer"`
	Score         int      `json:"score"`
	OpponentScore int      `json:"opponentScore"`
	LineCompleted bool     `json:"lineCompleted"`
}

// GameOverPayload is sent to both participants at resolution; the stats
// snapshot is the recipient's own
type GameOverPayload struct {
	Message      string      `json:"message"`
	Winner       string      `json:"winner"`
	GameDuration int         `json:"gameDuration"`
	MoveCount    int         `json:"moveCount"`
	PlayerStats  PlayerStats `json:"playerStats"`
}

// OpponentLeftPayload is sent to the remaining participant when the
// other exits or disconnects
type OpponentLeftPayload struct {
	Message      string      `json:"message"`
	Winner       string      `json:"winner"`
	GameDuration int         `json:"gameDuration"`
	MoveCount    int         `json:"moveCount"`
	PlayerStats  PlayerStats `json:"playerStats"`
}
