package memory

import (
	"context"
	"sync"

	"github.com/vikalpshakya/Ultimate-Bingo-game/internal/model"
	"github.com/vikalpshakya/Ultimate-Bingo-game/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	sessions     map[model.ConnID]*model.Session
	nameIndex    map[string]model.ConnID
	sessionOrder []model.ConnID // preserves login order

	matches          map[model.MatchID]*model.Match
	participantIndex map[model.ConnID]model.MatchID

	stats map[string]*model.PlayerStats
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		sessions:         make(map[model.ConnID]*model.Session),
		nameIndex:        make(map[string]model.ConnID),
		matches:          make(map[model.MatchID]*model.Match),
		participantIndex: make(map[model.ConnID]model.MatchID),
		stats:            make(map[string]*model.PlayerStats),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[session.ConnID]; !ok {
		s.sessionOrder = append(s.sessionOrder, session.ConnID)
	}
	s.sessions[session.ConnID] = session
	s.nameIndex[session.Name] = session.ConnID
	return nil
}

func (s *Storage) GetSession(ctx context.Context, id model.ConnID) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return session, nil
}

func (s *Storage) GetSessionByName(ctx context.Context, name string) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.nameIndex[name]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	session, ok := s.sessions[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return session, nil
}

func (s *Storage) DeleteSession(ctx context.Context, id model.ConnID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil
	}
	delete(s.sessions, id)
	delete(s.nameIndex, session.Name)
	for i, sid := range s.sessionOrder {
		if sid == id {
			s.sessionOrder = append(s.sessionOrder[:i], s.sessionOrder[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Storage) ListSessions(ctx context.Context) ([]*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sessions := make([]*model.Session, 0, len(s.sessionOrder))
	for _, id := range s.sessionOrder {
		if session, ok := s.sessions[id]; ok {
			sessions = append(sessions, session)
		}
	}
	return sessions, nil
}

// Match operations

func (s *Storage) SaveMatch(ctx context.Context, match *model.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matches[match.ID] = match
	for _, p := range match.Players {
		s.participantIndex[p] = match.ID
	}
	return nil
}

func (s *Storage) GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	match, ok := s.matches[id]
	if !ok {
		return nil, model.ErrMatchNotFound
	}
	return match, nil
}

func (s *Storage) DeleteMatch(ctx context.Context, id model.MatchID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	match, ok := s.matches[id]
	if !ok {
		return nil
	}
	delete(s.matches, id)
	for _, p := range match.Players {
		if s.participantIndex[p] == id {
			delete(s.participantIndex, p)
		}
	}
	return nil
}

func (s *Storage) GetMatchByParticipant(ctx context.Context, id model.ConnID) (*model.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	matchID, ok := s.participantIndex[id]
	if !ok {
		return nil, model.ErrMatchNotFound
	}
	match, ok := s.matches[matchID]
	if !ok {
		return nil, model.ErrMatchNotFound
	}
	return match, nil
}

// Stats operations

func (s *Storage) GetStats(ctx context.Context, name string) (*model.PlayerStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats, ok := s.stats[name]
	if !ok {
		return nil, model.ErrStatsNotFound
	}
	return stats, nil
}

func (s *Storage) SaveStats(ctx context.Context, name string, stats *model.PlayerStats) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats[name] = stats
	return nil
}
