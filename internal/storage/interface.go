package storage

import (
	"context"

	"github.com/vikalpshakya/Ultimate-Bingo-game/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Session operations
	SaveSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, id model.ConnID) (*model.Session, error)
	GetSessionByName(ctx context.Context, name string) (*model.Session, error)
	DeleteSession(ctx context.Context, id model.ConnID) error
	// ListSessions returns sessions in login order
	ListSessions(ctx context.Context) ([]*model.Session, error)

	// Match operations
	SaveMatch(ctx context.Context, match *model.Match) error
	GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error)
	DeleteMatch(ctx context.Context, id model.MatchID) error
	// GetMatchByParticipant finds the match a connection is playing in,
	// used to resolve matches for vanished connections
	GetMatchByParticipant(ctx context.Context, id model.ConnID) (*model.Match, error)

	// Stats operations
	GetStats(ctx context.Context, name string) (*model.PlayerStats, error)
	SaveStats(ctx context.Context, name string, stats *model.PlayerStats) error
}
