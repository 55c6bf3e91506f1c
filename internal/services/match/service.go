package match

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/vikalpshakya/Ultimate-Bingo-game/internal/dependencies/clock"
	"github.com/vikalpshakya/Ultimate-Bingo-game/internal/model"
	"github.com/vikalpshakya/Ultimate-Bingo-game/internal/services/board"
	"github.com/vikalpshakya/Ultimate-Bingo-game/internal/storage"
)

// Service is the match directory plus the per-match state machine:
// creation, turn-checked move application, win detection and forfeit
// resolution. A match leaves the directory exactly once, at terminal
// resolution.
type Service struct {
	storage      storage.Storage
	boardService *board.Service
	clock        clock.Clock
	logger       *slog.Logger
}

// New creates a new MatchService
func New(storage storage.Storage, boardService *board.Service, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage:      storage,
		boardService: boardService,
		clock:        clock,
		logger:       logger,
	}
}

// MoveResult describes an accepted move
type MoveResult struct {
	Match *model.Match
	Mover model.ConnID

	// LineCompleted reports, per participant, whether that
	// participant's completed-line count just increased
	LineCompleted map[model.ConnID]bool

	Resolved bool
	Winner   model.ConnID
	// Elapsed is whole seconds since match start, set when resolved
	Elapsed int
}

// ForfeitResult describes a match resolved by exit or disconnect
type ForfeitResult struct {
	Match   *model.Match
	Leaving model.ConnID
	Winner  model.ConnID
	Elapsed int
}

// Create starts a match between two sessions. Each participant gets an
// independent board; the inviter moves first. Match ids are freshly
// generated so concurrent re-invites between the same pair never collide.
func (s *Service) Create(ctx context.Context, inviter, invitee *model.Session) (*model.Match, error) {
	now := s.clock.Now()

	match := &model.Match{
		ID:          model.MatchID(uuid.NewString()),
		Players:     [2]model.ConnID{inviter.ConnID, invitee.ConnID},
		PlayerNames: [2]string{inviter.Name, invitee.Name},
		Boards: map[model.ConnID]*model.Board{
			inviter.ConnID: s.boardService.Generate(),
			invitee.ConnID: s.boardService.Generate(),
		},
		Scores: map[model.ConnID]int{
			inviter.ConnID: 0,
			invitee.ConnID: 0,
		},
		Turn:          inviter.ConnID,
		State:         model.MatchStateActive,
		StartedAt:     now,
		TurnStartedAt: now,
		UpdatedAt:     now,
	}

	if err := s.storage.SaveMatch(ctx, match); err != nil {
		return nil, err
	}

	s.logger.Info("match created",
		slog.String("match_id", string(match.ID)),
		slog.String("inviter", inviter.Name),
		slog.String("invitee", invitee.Name),
	)

	return match, nil
}

// Get retrieves a match by ID
func (s *Service) Get(ctx context.Context, id model.MatchID) (*model.Match, error) {
	return s.storage.GetMatch(ctx, id)
}

// FindByParticipant locates the match a connection is playing in
func (s *Service) FindByParticipant(ctx context.Context, connID model.ConnID) (*model.Match, error) {
	return s.storage.GetMatchByParticipant(ctx, connID)
}

// ApplyMove applies a numberSelected command. The turn-holder check is
// the sole admission control: a rejected move changes nothing. An
// accepted move marks the value on both boards, since both boards are
// permutations of the same shared value space.
func (s *Service) ApplyMove(ctx context.Context, id model.MatchID, connID model.ConnID, value int) (*MoveResult, error) {
	match, err := s.storage.GetMatch(ctx, id)
	if err != nil {
		return nil, err
	}

	if !match.HasParticipant(connID) {
		return nil, model.ErrNotParticipant
	}
	if match.Turn != connID {
		return nil, model.ErrNotYourTurn
	}
	if err := board.ValidateValue(value); err != nil {
		return nil, err
	}

	opponent := match.Opponent(connID)
	now := s.clock.Now()

	prevMover := match.Scores[connID]
	prevOpponent := match.Scores[opponent]

	match.Boards[connID].Mark(value)
	match.Boards[opponent].Mark(value)

	moverLines := match.Boards[connID].CompletedLines()
	opponentLines := match.Boards[opponent].CompletedLines()
	match.Scores[connID] = moverLines
	match.Scores[opponent] = opponentLines

	match.MoveCount++
	turnDuration := now.Sub(match.TurnStartedAt)
	match.TurnStartedAt = now
	match.UpdatedAt = now

	result := &MoveResult{
		Match: match,
		Mover: connID,
		LineCompleted: map[model.ConnID]bool{
			connID:   moverLines > prevMover,
			opponent: opponentLines > prevOpponent,
		},
	}

	// Mover-priority win check: if both hit the threshold on the same
	// move, the mover wins.
	switch {
	case moverLines >= model.WinThreshold:
		result.Resolved = true
		result.Winner = connID
	case opponentLines >= model.WinThreshold:
		// Only reachable if a prior move already set the opponent's
		// count; kept for completeness.
		result.Resolved = true
		result.Winner = opponent
	}

	if result.Resolved {
		match.State = model.MatchStateResolved
		match.Winner = result.Winner
		result.Elapsed = match.Elapsed(now)
		if err := s.storage.DeleteMatch(ctx, id); err != nil {
			return nil, err
		}
		s.logger.Info("match resolved",
			slog.String("match_id", string(id)),
			slog.String("winner", match.NameOf(result.Winner)),
			slog.Int("move_count", match.MoveCount),
			slog.Int("elapsed_seconds", result.Elapsed),
		)
		return result, nil
	}

	match.Turn = opponent
	if err := s.storage.SaveMatch(ctx, match); err != nil {
		return nil, err
	}

	s.logger.Debug("move applied",
		slog.String("match_id", string(id)),
		slog.String("mover", match.NameOf(connID)),
		slog.Int("value", value),
		slog.Int("move_count", match.MoveCount),
		slog.Duration("turn_duration", turnDuration),
	)

	return result, nil
}

// ResolveForfeit ends a match because a participant exited or
// disconnected. The remaining participant wins unconditionally,
// regardless of score.
func (s *Service) ResolveForfeit(ctx context.Context, id model.MatchID, leaving model.ConnID) (*ForfeitResult, error) {
	match, err := s.storage.GetMatch(ctx, id)
	if err != nil {
		return nil, err
	}

	winner := match.Opponent(leaving)
	if winner == "" {
		return nil, model.ErrNotParticipant
	}

	now := s.clock.Now()
	match.State = model.MatchStateResolved
	match.Winner = winner
	match.UpdatedAt = now

	if err := s.storage.DeleteMatch(ctx, id); err != nil {
		return nil, err
	}

	s.logger.Info("match forfeited",
		slog.String("match_id", string(id)),
		slog.String("leaving", match.NameOf(leaving)),
		slog.String("winner", match.NameOf(winner)),
	)

	return &ForfeitResult{
		Match:   match,
		Leaving: leaving,
		Winner:  winner,
		Elapsed: match.Elapsed(now),
	}, nil
}

type ServiceInterface interface {
	Create(ctx context.Context, inviter, invitee *model.Session) (*model.Match, error)
	Get(ctx context.Context, id model.MatchID) (*model.Match, error)
	FindByParticipant(ctx context.Context, connID model.ConnID) (*model.Match, error)
	ApplyMove(ctx context.Context, id model.MatchID, connID model.ConnID, value int) (*MoveResult, error)
	ResolveForfeit(ctx context.Context, id model.MatchID, leaving model.ConnID) (*ForfeitResult, error)
}

var _ ServiceInterface = (*Service)(nil)
