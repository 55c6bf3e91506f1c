package coordinator

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/vikalpshakya/Ultimate-Bingo-game/internal/model"
	"github.com/vikalpshakya/Ultimate-Bingo-game/internal/services/match"
	"github.com/vikalpshakya/Ultimate-Bingo-game/internal/services/session"
	"github.com/vikalpshakya/Ultimate-Bingo-game/internal/services/stats"
)

// EventSink delivers outbound events to connected clients. The websocket
// hub implements it; tests substitute a recording sink.
type EventSink interface {
	// Send delivers an event to one connection. Delivery to a closed
	// connection is a no-op.
	Send(connID model.ConnID, event model.EventType, data any)
	// Broadcast delivers an event to every connection.
	Broadcast(event model.EventType, data any)
}

// Coordinator translates inbound client commands into service calls and
// fans the resulting events out through the sink. All commands run under
// one mutex, so every command observes the complete effects of every
// earlier command.
type Coordinator struct {
	mu sync.Mutex

	sessionService *session.Service
	statsService   *stats.Service
	matchService   *match.Service
	sink           EventSink
	logger         *slog.Logger
}

// New creates a new Coordinator
func New(
	sessionService *session.Service,
	statsService *stats.Service,
	matchService *match.Service,
	sink EventSink,
	logger *slog.Logger,
) *Coordinator {
	return &Coordinator{
		sessionService: sessionService,
		statsService:   statsService,
		matchService:   matchService,
		sink:           sink,
		logger:         logger,
	}
}

// Login registers a display name for a connection. Success announces the
// new roster to everyone; a taken name fails only the caller.
func (c *Coordinator) Login(ctx context.Context, connID model.ConnID, name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, playerStats, err := c.sessionService.Login(ctx, connID, name)
	if errors.Is(err, model.ErrNameTaken) {
		c.sink.Send(connID, model.EventLoginFailed, model.FailurePayload{
			Message: "Username is already taken.",
		})
		return
	}
	if err != nil {
		c.logger.Error("login failed", slog.String("name", name), slog.Any("error", err))
		return
	}

	players, err := c.sessionService.ListOnline(ctx)
	if err != nil {
		c.logger.Error("listing online players failed", slog.Any("error", err))
		return
	}

	c.sink.Send(connID, model.EventLoggedIn, model.LoggedInPayload{
		Players: players,
		Stats:   *playerStats,
	})
	c.sink.Broadcast(model.EventJoined, players)
}

// Invite starts a match between the caller and a named opponent. The
// failure modes (self-invite, opponent offline) fail only the caller.
func (c *Coordinator) Invite(ctx context.Context, connID model.ConnID, to string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	inviter, err := c.sessionService.Get(ctx, connID)
	if err != nil {
		c.logger.Warn("invite from unknown connection", slog.String("conn_id", string(connID)))
		return
	}

	invitee, err := c.resolveInvitee(ctx, inviter, to)
	switch {
	case errors.Is(err, model.ErrSelfInvite):
		c.sink.Send(connID, model.EventInviteFailed, model.FailurePayload{
			Message: "You cannot invite yourself.",
		})
		return
	case errors.Is(err, model.ErrPlayerOffline):
		c.sink.Send(connID, model.EventInviteFailed, model.FailurePayload{
			Message: "Player is not online.",
		})
		return
	case err != nil:
		c.logger.Error("invite failed", slog.Any("error", err))
		return
	}

	m, err := c.matchService.Create(ctx, inviter, invitee)
	if err != nil {
		c.logger.Error("match creation failed", slog.Any("error", err))
		return
	}

	c.sink.Send(invitee.ConnID, model.EventGameInvite, model.GameInvitePayload{
		From:   inviter.Name,
		GameID: m.ID,
	})
	for _, p := range m.Players {
		c.sink.Send(p, model.EventStartGame, model.StartGamePayload{
			GameID:        m.ID,
			PlayerID:      m.NameOf(p),
			Matrix:        m.Boards[p].SnapshotCells(),
			Score:         m.Scores[p],
			OpponentScore: m.Scores[m.Opponent(p)],
		})
	}
}

// resolveInvitee maps an invite target name to its session
func (c *Coordinator) resolveInvitee(ctx context.Context, inviter *model.Session, to string) (*model.Session, error) {
	if to == inviter.Name {
		return nil, model.ErrSelfInvite
	}
	invitee, err := c.sessionService.GetByName(ctx, to)
	if errors.Is(err, model.ErrSessionNotFound) {
		return nil, model.ErrPlayerOffline
	}
	if err != nil {
		return nil, err
	}
	return invitee, nil
}

// SelectNumber applies a numberSelected command. Out-of-turn attempts
// bounce back to the offender; moves against a finished or unknown match
// are dropped.
func (c *Coordinator) SelectNumber(ctx context.Context, connID model.ConnID, matchID model.MatchID, value int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	result, err := c.matchService.ApplyMove(ctx, matchID, connID, value)
	switch {
	case errors.Is(err, model.ErrNotYourTurn):
		c.sink.Send(connID, model.EventNotYourTurn, nil)
		return
	case errors.Is(err, model.ErrMatchNotFound):
		// Late move against an already-resolved match; nothing to tell
		// the client.
		return
	case err != nil:
		c.logger.Warn("move rejected",
			slog.String("match_id", string(matchID)),
			slog.Int("value", value),
			slog.Any("error", err),
		)
		return
	}

	m := result.Match

	// Every accepted move reports the post-move boards, the winning one
	// included; only then does the game-over fan-out follow.
	currentPlayer := m.NameOf(m.Opponent(result.Mover))
	for _, p := range m.Players {
		c.sink.Send(p, model.EventUpdateMatrix, model.UpdateMatrixPayload{
			Matrix:        m.Boards[p].SnapshotCells(),
			CurrentPlayer: currentPlayer,
			Score:         m.Scores[p],
			OpponentScore: m.Scores[m.Opponent(p)],
			LineCompleted: result.LineCompleted[p],
		})
	}

	if result.Resolved {
		c.finishMatch(ctx, m, result.Winner, result.Elapsed)
		return
	}

	for _, p := range m.Players {
		c.sink.Send(p, model.EventTurnChange, currentPlayer)
	}
}

// ExitMatch resolves a match by voluntary exit. Only the remaining
// participant is notified; the leaver asked to go and gets nothing.
func (c *Coordinator) ExitMatch(ctx context.Context, connID model.ConnID, matchID model.MatchID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.forfeit(ctx, connID, matchID)
}

// HandleDisconnect tears down a connection: the session is released, the
// roster is re-announced, and any in-flight match is forfeited as if the
// player had exited.
func (c *Coordinator) HandleDisconnect(ctx context.Context, connID model.ConnID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	m, err := c.matchService.FindByParticipant(ctx, connID)
	if err == nil {
		c.forfeit(ctx, connID, m.ID)
	} else if !errors.Is(err, model.ErrMatchNotFound) {
		c.logger.Error("match lookup on disconnect failed", slog.Any("error", err))
	}

	name, err := c.sessionService.Logout(ctx, connID)
	if err != nil {
		c.logger.Error("logout failed", slog.Any("error", err))
		return
	}
	if name == "" {
		// Connection never logged in.
		return
	}

	players, err := c.sessionService.ListOnline(ctx)
	if err != nil {
		c.logger.Error("listing online players failed", slog.Any("error", err))
		return
	}
	c.sink.Broadcast(model.EventJoined, players)
}

func (c *Coordinator) forfeit(ctx context.Context, leaving model.ConnID, matchID model.MatchID) {
	result, err := c.matchService.ResolveForfeit(ctx, matchID, leaving)
	if errors.Is(err, model.ErrMatchNotFound) {
		return
	}
	if err != nil {
		c.logger.Error("forfeit failed", slog.String("match_id", string(matchID)), slog.Any("error", err))
		return
	}

	m := result.Match
	winnerName := m.NameOf(result.Winner)
	loserName := m.NameOf(leaving)
	c.recordOutcome(ctx, winnerName, loserName)

	winnerStats := c.statsSnapshot(ctx, winnerName)
	c.sink.Send(result.Winner, model.EventOpponentLeft, model.OpponentLeftPayload{
		Message:      "Player " + loserName + " has left the game. You win!",
		Winner:       winnerName,
		GameDuration: result.Elapsed,
		MoveCount:    m.MoveCount,
		PlayerStats:  winnerStats,
	})
}

func (c *Coordinator) finishMatch(ctx context.Context, m *model.Match, winner model.ConnID, elapsed int) {
	winnerName := m.NameOf(winner)
	loserName := m.NameOf(m.Opponent(winner))
	c.recordOutcome(ctx, winnerName, loserName)

	for _, p := range m.Players {
		c.sink.Send(p, model.EventGameOver, model.GameOverPayload{
			Message:      winnerName + " wins!",
			Winner:       winnerName,
			GameDuration: elapsed,
			MoveCount:    m.MoveCount,
			PlayerStats:  c.statsSnapshot(ctx, m.NameOf(p)),
		})
	}
}

// recordOutcome persists both sides of a result before any gameOver or
// opponentLeft event is emitted, so the stats inside those events are
// already up to date.
func (c *Coordinator) recordOutcome(ctx context.Context, winnerName, loserName string) {
	if err := c.statsService.RecordWin(ctx, winnerName); err != nil {
		c.logger.Error("recording win failed", slog.String("name", winnerName), slog.Any("error", err))
	}
	if err := c.statsService.RecordLoss(ctx, loserName); err != nil {
		c.logger.Error("recording loss failed", slog.String("name", loserName), slog.Any("error", err))
	}
}

func (c *Coordinator) statsSnapshot(ctx context.Context, name string) model.PlayerStats {
	s, err := c.statsService.Get(ctx, name)
	if err != nil {
		c.logger.Error("stats lookup failed", slog.String("name", name), slog.Any("error", err))
		return model.PlayerStats{}
	}
	return *s
}
