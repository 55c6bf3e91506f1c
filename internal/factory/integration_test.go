package factory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/vikalpshakya/Ultimate-Bingo-game/internal/model"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

// Test: complete match flow from login through a decided game, driven
// through the coordinator the way the websocket transport drives it
func (s *IntegrationSuite) TestCompleteMatchFlow() {
	// Step 1: Two players log in
	s.app.Coordinator.Login(s.ctx, "conn-a", "alice")
	s.app.Coordinator.Login(s.ctx, "conn-b", "bob")

	names, err := s.app.SessionService.ListOnline(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"alice", "bob"}, names)

	// Step 2: alice invites bob; identity boards for a scripted game
	s.app.MockRandom.QueueIdentityShuffle()
	s.app.MockRandom.QueueIdentityShuffle()
	s.app.Coordinator.Invite(s.ctx, "conn-a", "bob")

	match, err := s.app.MatchService.FindByParticipant(s.ctx, "conn-a")
	s.Require().NoError(err)
	s.Equal(model.ConnID("conn-a"), match.Turn)

	// Step 3: Alternate moves: on identical boards move 21 completes a
	// fifth line for both, and the mover takes the win
	s.app.MockClock.Advance(time.Minute)
	for v := 1; v <= 21; v++ {
		mover := model.ConnID("conn-a")
		if v%2 == 0 {
			mover = "conn-b"
		}
		s.app.Coordinator.SelectNumber(s.ctx, mover, match.ID, v)
	}

	// Step 4: Match removed, stats recorded
	_, err = s.app.MatchService.Get(s.ctx, match.ID)
	s.ErrorIs(err, model.ErrMatchNotFound)

	aliceStats, err := s.app.StatsService.Get(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(&model.PlayerStats{Wins: 1}, aliceStats)

	bobStats, err := s.app.StatsService.Get(s.ctx, "bob")
	s.Require().NoError(err)
	s.Equal(&model.PlayerStats{Losses: 1}, bobStats)

	// Step 5: Both players are still online and can rematch
	s.app.MockRandom.QueueIdentityShuffle()
	s.app.MockRandom.QueueIdentityShuffle()
	s.app.Coordinator.Invite(s.ctx, "conn-b", "alice")

	rematch, err := s.app.MatchService.FindByParticipant(s.ctx, "conn-a")
	s.Require().NoError(err)
	s.NotEqual(match.ID, rematch.ID)
	s.Equal(model.ConnID("conn-b"), rematch.Turn, "new inviter moves first")
}

func (s *IntegrationSuite) TestDisconnectMidMatch() {
	s.app.Coordinator.Login(s.ctx, "conn-a", "alice")
	s.app.Coordinator.Login(s.ctx, "conn-b", "bob")
	s.app.MockRandom.QueueIdentityShuffle()
	s.app.MockRandom.QueueIdentityShuffle()
	s.app.Coordinator.Invite(s.ctx, "conn-a", "bob")

	s.app.Coordinator.HandleDisconnect(s.ctx, "conn-a")

	// Roster shrinks, match is gone, bob gets the win
	names, err := s.app.SessionService.ListOnline(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"bob"}, names)

	_, err = s.app.MatchService.FindByParticipant(s.ctx, "conn-b")
	s.ErrorIs(err, model.ErrMatchNotFound)

	bobStats, err := s.app.StatsService.Get(s.ctx, "bob")
	s.Require().NoError(err)
	s.Equal(&model.PlayerStats{Wins: 1}, bobStats)
}

func (s *IntegrationSuite) TestStatsAccumulateAcrossSessions() {
	// First session: alice wins by forfeit
	s.app.Coordinator.Login(s.ctx, "conn-a", "alice")
	s.app.Coordinator.Login(s.ctx, "conn-b", "bob")
	s.app.MockRandom.QueueIdentityShuffle()
	s.app.MockRandom.QueueIdentityShuffle()
	s.app.Coordinator.Invite(s.ctx, "conn-a", "bob")
	match, err := s.app.MatchService.FindByParticipant(s.ctx, "conn-a")
	s.Require().NoError(err)
	s.app.Coordinator.ExitMatch(s.ctx, "conn-b", match.ID)

	// bob drops and reconnects under a fresh connection
	s.app.Coordinator.HandleDisconnect(s.ctx, "conn-b")
	s.app.Coordinator.Login(s.ctx, "conn-c", "bob")

	bobStats, err := s.app.StatsService.Get(s.ctx, "bob")
	s.Require().NoError(err)
	s.Equal(&model.PlayerStats{Losses: 1}, bobStats, "tally survives reconnection")
}

func (s *IntegrationSuite) TestFactoryRejectsBadStorageType() {
	_, err := New(Config{StorageType: "cassandra"})
	s.Error(err)
}

func (s *IntegrationSuite) TestFactoryRequiresRedisConfig() {
	_, err := New(Config{StorageType: StorageTypeRedis})
	s.Error(err)
}
