package coordinator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/vikalpshakya/Ultimate-Bingo-game/internal/dependencies/mocks"
	"github.com/vikalpshakya/Ultimate-Bingo-game/internal/model"
	"github.com/vikalpshakya/Ultimate-Bingo-game/internal/services/board"
	"github.com/vikalpshakya/Ultimate-Bingo-game/internal/services/match"
	"github.com/vikalpshakya/Ultimate-Bingo-game/internal/services/session"
	"github.com/vikalpshakya/Ultimate-Bingo-game/internal/services/stats"
	"github.com/vikalpshakya/Ultimate-Bingo-game/internal/storage/memory"
	"github.com/vikalpshakya/Ultimate-Bingo-game/internal/testutil"
)

// sentEvent records one Send or Broadcast call
type sentEvent struct {
	To        model.ConnID // "" for broadcasts
	Broadcast bool
	Event     model.EventType
	Data      any
}

// recordingSink captures events instead of delivering them
type recordingSink struct {
	events []sentEvent
}

var _ EventSink = (*recordingSink)(nil)

func (r *recordingSink) Send(connID model.ConnID, event model.EventType, data any) {
	r.events = append(r.events, sentEvent{To: connID, Event: event, Data: data})
}

func (r *recordingSink) Broadcast(event model.EventType, data any) {
	r.events = append(r.events, sentEvent{Broadcast: true, Event: event, Data: data})
}

func (r *recordingSink) reset() {
	r.events = nil
}

// eventsFor returns the events sent directly to one connection
func (r *recordingSink) eventsFor(connID model.ConnID) []sentEvent {
	var out []sentEvent
	for _, e := range r.events {
		if !e.Broadcast && e.To == connID {
			out = append(out, e)
		}
	}
	return out
}

// lastOfType returns the most recent event of the given type sent to a
// connection, or nil
func (r *recordingSink) lastOfType(connID model.ConnID, event model.EventType) *sentEvent {
	for i := len(r.events) - 1; i >= 0; i-- {
		e := r.events[i]
		if !e.Broadcast && e.To == connID && e.Event == event {
			return &e
		}
	}
	return nil
}

func (r *recordingSink) broadcasts(event model.EventType) []sentEvent {
	var out []sentEvent
	for _, e := range r.events {
		if e.Broadcast && e.Event == event {
			out = append(out, e)
		}
	}
	return out
}

type CoordinatorSuite struct {
	suite.Suite
	storage     *memory.Storage
	clock       *mocks.MockClock
	random      *mocks.MockRandom
	sink        *recordingSink
	coordinator *Coordinator
	ctx         context.Context
}

func TestCoordinatorSuite(t *testing.T) {
	suite.Run(t, new(CoordinatorSuite))
}

func (s *CoordinatorSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.sink = &recordingSink{}

	logger := testutil.NopLogger()
	sessionService := session.New(s.storage, s.clock, logger)
	statsService := stats.New(s.storage, logger)
	matchService := match.New(s.storage, board.New(s.random), s.clock, logger)
	s.coordinator = New(sessionService, statsService, matchService, s.sink, logger)
	s.ctx = context.Background()
}

func (s *CoordinatorSuite) login(connID model.ConnID, name string) {
	s.coordinator.Login(s.ctx, connID, name)
}

// startMatch logs in alice and bob, invites, and returns the match ID
// taken from bob's invite event. Both boards are identity boards.
func (s *CoordinatorSuite) startMatch() model.MatchID {
	s.login("conn-a", "alice")
	s.login("conn-b", "bob")

	s.random.QueueIdentityShuffle()
	s.random.QueueIdentityShuffle()
	s.coordinator.Invite(s.ctx, "conn-a", "bob")

	invite := s.sink.lastOfType("conn-b", model.EventGameInvite)
	s.Require().NotNil(invite)
	matchID := invite.Data.(model.GameInvitePayload).GameID
	s.sink.reset()
	return matchID
}

// playMoves alternates moves for values 1..n, alice first
func (s *CoordinatorSuite) playMoves(matchID model.MatchID, n int) {
	for v := 1; v <= n; v++ {
		mover := model.ConnID("conn-a")
		if v%2 == 0 {
			mover = "conn-b"
		}
		s.coordinator.SelectNumber(s.ctx, mover, matchID, v)
	}
}

// Login tests

func (s *CoordinatorSuite) TestLoginEmitsLoggedInAndJoined() {
	s.login("conn-a", "alice")

	loggedIn := s.sink.lastOfType("conn-a", model.EventLoggedIn)
	s.Require().NotNil(loggedIn)
	payload := loggedIn.Data.(model.LoggedInPayload)
	s.Equal([]string{"alice"}, payload.Players)
	s.Equal(model.PlayerStats{}, payload.Stats)

	joined := s.sink.broadcasts(model.EventJoined)
	s.Require().Len(joined, 1)
	s.Equal([]string{"alice"}, joined[0].Data)
}

func (s *CoordinatorSuite) TestLoginIncludesExistingStats() {
	s.Require().NoError(s.storage.SaveStats(s.ctx, "alice", &model.PlayerStats{Wins: 2, Losses: 1}))

	s.login("conn-a", "alice")

	loggedIn := s.sink.lastOfType("conn-a", model.EventLoggedIn)
	s.Require().NotNil(loggedIn)
	s.Equal(model.PlayerStats{Wins: 2, Losses: 1}, loggedIn.Data.(model.LoggedInPayload).Stats)
}

func (s *CoordinatorSuite) TestLoginDuplicateNameFailsOnlyCaller() {
	s.login("conn-a", "alice")
	s.sink.reset()

	s.login("conn-b", "alice")

	failed := s.sink.lastOfType("conn-b", model.EventLoginFailed)
	s.Require().NotNil(failed)
	s.Equal("Username is already taken.", failed.Data.(model.FailurePayload).Message)

	s.Empty(s.sink.broadcasts(model.EventJoined), "no roster change on failed login")
	s.Empty(s.sink.eventsFor("conn-a"), "other players see nothing")
}

// Invite tests

func (s *CoordinatorSuite) TestInviteStartsMatch() {
	s.login("conn-a", "alice")
	s.login("conn-b", "bob")
	s.sink.reset()

	s.random.QueueIdentityShuffle()
	s.random.QueueIdentityShuffle()
	s.coordinator.Invite(s.ctx, "conn-a", "bob")

	invite := s.sink.lastOfType("conn-b", model.EventGameInvite)
	s.Require().NotNil(invite)
	s.Equal("alice", invite.Data.(model.GameInvitePayload).From)

	s.Nil(s.sink.lastOfType("conn-a", model.EventGameInvite), "inviter gets no invite event")

	for _, connID := range []model.ConnID{"conn-a", "conn-b"} {
		start := s.sink.lastOfType(connID, model.EventStartGame)
		s.Require().NotNil(start, "startGame for %s", connID)
		payload := start.Data.(model.StartGamePayload)
		s.Equal(invite.Data.(model.GameInvitePayload).GameID, payload.GameID)
		s.Equal(0, payload.Score)
		s.Equal(0, payload.OpponentScore)
		s.Len(payload.Matrix, model.BoardSize)
	}

	aliceStart := s.sink.lastOfType("conn-a", model.EventStartGame)
	s.Equal("alice", aliceStart.Data.(model.StartGamePayload).PlayerID)
	bobStart := s.sink.lastOfType("conn-b", model.EventStartGame)
	s.Equal("bob", bobStart.Data.(model.StartGamePayload).PlayerID)
}

func (s *CoordinatorSuite) TestSelfInviteFails() {
	s.login("conn-a", "alice")
	s.sink.reset()

	s.coordinator.Invite(s.ctx, "conn-a", "alice")

	failed := s.sink.lastOfType("conn-a", model.EventInviteFailed)
	s.Require().NotNil(failed)
	s.Equal("You cannot invite yourself.", failed.Data.(model.FailurePayload).Message)
}

func (s *CoordinatorSuite) TestInviteOfflinePlayerFails() {
	s.login("conn-a", "alice")
	s.sink.reset()

	s.coordinator.Invite(s.ctx, "conn-a", "nobody")

	failed := s.sink.lastOfType("conn-a", model.EventInviteFailed)
	s.Require().NotNil(failed)
	s.Equal("Player is not online.", failed.Data.(model.FailurePayload).Message)
}

// Move tests

func (s *CoordinatorSuite) TestMoveEmitsUpdateMatrixAndTurnChange() {
	matchID := s.startMatch()

	s.coordinator.SelectNumber(s.ctx, "conn-a", matchID, 13)

	for _, connID := range []model.ConnID{"conn-a", "conn-b"} {
		update := s.sink.lastOfType(connID, model.EventUpdateMatrix)
		s.Require().NotNil(update, "updateMatrix for %s", connID)
		payload := update.Data.(model.UpdateMatrixPayload)
		s.Equal("bob", payload.CurrentPlayer, "turn holder after alice's move")
		s.True(payload.Matrix[2][2].IsMarked())
		s.False(payload.LineCompleted)

		turn := s.sink.lastOfType(connID, model.EventTurnChange)
		s.Require().NotNil(turn)
		s.Equal("bob", turn.Data)
	}
}

func (s *CoordinatorSuite) TestMoveReportsLineCompletionPerRecipient() {
	matchID := s.startMatch()
	s.playMoves(matchID, 4)
	s.sink.reset()

	s.coordinator.SelectNumber(s.ctx, "conn-a", matchID, 5)

	// Identity boards on both sides: the first row completes for both
	for _, connID := range []model.ConnID{"conn-a", "conn-b"} {
		update := s.sink.lastOfType(connID, model.EventUpdateMatrix)
		s.Require().NotNil(update)
		payload := update.Data.(model.UpdateMatrixPayload)
		s.True(payload.LineCompleted)
		s.Equal(1, payload.Score)
		s.Equal(1, payload.OpponentScore)
	}
}

func (s *CoordinatorSuite) TestOutOfTurnMoveBouncesToOffenderOnly() {
	matchID := s.startMatch()

	s.coordinator.SelectNumber(s.ctx, "conn-b", matchID, 13)

	s.Require().NotNil(s.sink.lastOfType("conn-b", model.EventNotYourTurn))
	s.Empty(s.sink.eventsFor("conn-a"))
}

func (s *CoordinatorSuite) TestMoveAgainstUnknownMatchIsSilent() {
	s.startMatch()

	s.coordinator.SelectNumber(s.ctx, "conn-a", "no-such-match", 13)

	s.Empty(s.sink.events)
}

func (s *CoordinatorSuite) TestPayloadBoardsAreSnapshots() {
	s.login("conn-a", "alice")
	s.login("conn-b", "bob")
	s.random.QueueIdentityShuffle()
	s.random.QueueIdentityShuffle()
	s.coordinator.Invite(s.ctx, "conn-a", "bob")

	start := s.sink.lastOfType("conn-a", model.EventStartGame)
	s.Require().NotNil(start)
	matchID := start.Data.(model.StartGamePayload).GameID

	s.coordinator.SelectNumber(s.ctx, "conn-a", matchID, 1)
	firstUpdate := s.sink.lastOfType("conn-b", model.EventUpdateMatrix)
	s.Require().NotNil(firstUpdate)
	s.coordinator.SelectNumber(s.ctx, "conn-b", matchID, 2)

	// Earlier payloads must not pick up marks from later moves
	s.Equal(model.Cell(1), start.Data.(model.StartGamePayload).Matrix[0][0])
	s.Equal(model.Cell(2), firstUpdate.Data.(model.UpdateMatrixPayload).Matrix[0][1])
}

// Game over tests

func (s *CoordinatorSuite) TestWinningMoveEmitsUpdateMatrixBeforeGameOver() {
	matchID := s.startMatch()
	s.playMoves(matchID, 20)
	s.sink.reset()

	s.coordinator.SelectNumber(s.ctx, "conn-a", matchID, 21)

	for _, connID := range []model.ConnID{"conn-a", "conn-b"} {
		events := s.sink.eventsFor(connID)
		s.Require().Len(events, 2, "updateMatrix then gameOver for %s", connID)
		s.Equal(model.EventUpdateMatrix, events[0].Event)
		s.Equal(model.EventGameOver, events[1].Event)

		payload := events[0].Data.(model.UpdateMatrixPayload)
		s.Equal(5, payload.Score)
		s.Equal(5, payload.OpponentScore)
		s.True(payload.LineCompleted)
		s.True(payload.Matrix[4][0].IsMarked(), "winning value is on the final board")

		s.Nil(s.sink.lastOfType(connID, model.EventTurnChange), "no turn hand-off after resolution")
	}
}

func (s *CoordinatorSuite) TestWinEmitsGameOverWithStats() {
	matchID := s.startMatch()
	s.clock.Advance(30 * time.Second)

	s.playMoves(matchID, 21)

	for _, connID := range []model.ConnID{"conn-a", "conn-b"} {
		over := s.sink.lastOfType(connID, model.EventGameOver)
		s.Require().NotNil(over, "gameOver for %s", connID)
		payload := over.Data.(model.GameOverPayload)
		s.Equal("alice wins!", payload.Message)
		s.Equal("alice", payload.Winner)
		s.Equal(30, payload.GameDuration)
		s.Equal(21, payload.MoveCount)
	}

	// Per-recipient stats snapshots reflect the already-recorded result
	aliceOver := s.sink.lastOfType("conn-a", model.EventGameOver)
	s.Equal(model.PlayerStats{Wins: 1}, aliceOver.Data.(model.GameOverPayload).PlayerStats)
	bobOver := s.sink.lastOfType("conn-b", model.EventGameOver)
	s.Equal(model.PlayerStats{Losses: 1}, bobOver.Data.(model.GameOverPayload).PlayerStats)
}

func (s *CoordinatorSuite) TestWinUpdatesStoredStats() {
	matchID := s.startMatch()
	s.playMoves(matchID, 21)

	aliceStats, err := s.storage.GetStats(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(&model.PlayerStats{Wins: 1}, aliceStats)

	bobStats, err := s.storage.GetStats(s.ctx, "bob")
	s.Require().NoError(err)
	s.Equal(&model.PlayerStats{Losses: 1}, bobStats)
}

func (s *CoordinatorSuite) TestMoveAfterGameOverIsSilent() {
	matchID := s.startMatch()
	s.playMoves(matchID, 21)
	s.sink.reset()

	s.coordinator.SelectNumber(s.ctx, "conn-b", matchID, 22)

	s.Empty(s.sink.events)
}

// Exit and disconnect tests

func (s *CoordinatorSuite) TestExitNotifiesRemainingPlayerOnly() {
	matchID := s.startMatch()
	s.clock.Advance(12 * time.Second)

	s.coordinator.ExitMatch(s.ctx, "conn-a", matchID)

	left := s.sink.lastOfType("conn-b", model.EventOpponentLeft)
	s.Require().NotNil(left)
	payload := left.Data.(model.OpponentLeftPayload)
	s.Equal("Player alice has left the game. You win!", payload.Message)
	s.Equal("bob", payload.Winner)
	s.Equal(12, payload.GameDuration)
	s.Equal(model.PlayerStats{Wins: 1}, payload.PlayerStats)

	s.Empty(s.sink.eventsFor("conn-a"), "the leaver gets nothing")
}

func (s *CoordinatorSuite) TestExitRecordsStats() {
	matchID := s.startMatch()

	s.coordinator.ExitMatch(s.ctx, "conn-a", matchID)

	aliceStats, err := s.storage.GetStats(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(&model.PlayerStats{Losses: 1}, aliceStats)

	bobStats, err := s.storage.GetStats(s.ctx, "bob")
	s.Require().NoError(err)
	s.Equal(&model.PlayerStats{Wins: 1}, bobStats)
}

func (s *CoordinatorSuite) TestExitUnknownMatchIsSilent() {
	s.startMatch()

	s.coordinator.ExitMatch(s.ctx, "conn-a", "no-such-match")

	s.Empty(s.sink.events)
}

func (s *CoordinatorSuite) TestDisconnectForfeitsAndUpdatesRoster() {
	s.startMatch()

	s.coordinator.HandleDisconnect(s.ctx, "conn-a")

	left := s.sink.lastOfType("conn-b", model.EventOpponentLeft)
	s.Require().NotNil(left)
	s.Equal("bob", left.Data.(model.OpponentLeftPayload).Winner)

	joined := s.sink.broadcasts(model.EventJoined)
	s.Require().Len(joined, 1)
	s.Equal([]string{"bob"}, joined[0].Data)
}

func (s *CoordinatorSuite) TestDisconnectWithoutLoginIsSilent() {
	s.coordinator.HandleDisconnect(s.ctx, "conn-x")

	s.Empty(s.sink.events)
}

func (s *CoordinatorSuite) TestDisconnectOutsideMatchOnlyUpdatesRoster() {
	s.login("conn-a", "alice")
	s.login("conn-b", "bob")
	s.sink.reset()

	s.coordinator.HandleDisconnect(s.ctx, "conn-b")

	joined := s.sink.broadcasts(model.EventJoined)
	s.Require().Len(joined, 1)
	s.Equal([]string{"alice"}, joined[0].Data)
	s.Empty(s.sink.eventsFor("conn-a"))
}
