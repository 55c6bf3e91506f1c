package session

import (
	"context"
	"errors"
	"log/slog"

	"github.com/vikalpshakya/Ultimate-Bingo-game/internal/dependencies/clock"
	"github.com/vikalpshakya/Ultimate-Bingo-game/internal/model"
	"github.com/vikalpshakya/Ultimate-Bingo-game/internal/storage"
)

// Service is the session directory: it maps live connections to display
// names and maintains the set of currently-online names.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new SessionService
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// Login registers a connection under a display name. Names are matched
// case-sensitively; a name already online is rejected with ErrNameTaken.
// A stats record is initialized lazily so the caller can show a snapshot
// immediately.
func (s *Service) Login(ctx context.Context, connID model.ConnID, name string) (*model.Session, *model.PlayerStats, error) {
	_, err := s.storage.GetSessionByName(ctx, name)
	if err == nil {
		return nil, nil, model.ErrNameTaken
	}
	if !errors.Is(err, model.ErrSessionNotFound) {
		return nil, nil, err
	}

	session := &model.Session{
		ConnID:     connID,
		Name:       name,
		LoggedInAt: s.clock.Now(),
	}
	if err := s.storage.SaveSession(ctx, session); err != nil {
		return nil, nil, err
	}

	stats, err := s.storage.GetStats(ctx, name)
	if errors.Is(err, model.ErrStatsNotFound) {
		stats = &model.PlayerStats{}
		if err := s.storage.SaveStats(ctx, name, stats); err != nil {
			return nil, nil, err
		}
	} else if err != nil {
		return nil, nil, err
	}

	s.logger.Info("player logged in",
		slog.String("conn_id", string(connID)),
		slog.String("name", name),
	)

	return session, stats, nil
}

// Logout removes the connection from the directory. Idempotent: logging
// out a connection that was never logged in returns "".
func (s *Service) Logout(ctx context.Context, connID model.ConnID) (string, error) {
	session, err := s.storage.GetSession(ctx, connID)
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			return "", nil
		}
		return "", err
	}

	if err := s.storage.DeleteSession(ctx, connID); err != nil {
		return "", err
	}

	s.logger.Info("player logged out",
		slog.String("conn_id", string(connID)),
		slog.String("name", session.Name),
	)

	return session.Name, nil
}

// Get returns the session for a connection
func (s *Service) Get(ctx context.Context, connID model.ConnID) (*model.Session, error) {
	return s.storage.GetSession(ctx, connID)
}

// GetByName returns the session currently holding a display name
func (s *Service) GetByName(ctx context.Context, name string) (*model.Session, error) {
	return s.storage.GetSessionByName(ctx, name)
}

// ListOnline returns the online display names in login order
func (s *Service) ListOnline(ctx context.Context) ([]string, error) {
	sessions, err := s.storage.ListSessions(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(sessions))
	for _, session := range sessions {
		names = append(names, session.Name)
	}
	return names, nil
}

type ServiceInterface interface {
	Login(ctx context.Context, connID model.ConnID, name string) (*model.Session, *model.PlayerStats, error)
	Logout(ctx context.Context, connID model.ConnID) (string, error)
	Get(ctx context.Context, connID model.ConnID) (*model.Session, error)
	GetByName(ctx context.Context, name string) (*model.Session, error)
	ListOnline(ctx context.Context) ([]string, error)
}

var _ ServiceInterface = (*Service)(nil)
