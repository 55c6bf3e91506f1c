package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vikalpshakya/Ultimate-Bingo-game/internal/model"
	"github.com/vikalpshakya/Ultimate-Bingo-game/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	// Pipeline the record, the name index and the login-order list
	pipe := s.client.Pipeline()
	pipe.Set(ctx, sessionKey(session.ConnID), data, s.cfg.SessionTTL)
	pipe.Set(ctx, nameIndexKey(session.Name), string(session.ConnID), s.cfg.SessionTTL)
	pipe.LRem(ctx, sessionOrderKey(), 0, string(session.ConnID))
	pipe.RPush(ctx, sessionOrderKey(), string(session.ConnID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetSession(ctx context.Context, id model.ConnID) (*model.Session, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSessionNotFound
		}
		return nil, err
	}

	var session model.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *Storage) GetSessionByName(ctx context.Context, name string) (*model.Session, error) {
	connID, err := s.client.Get(ctx, nameIndexKey(name)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSessionNotFound
		}
		return nil, err
	}
	return s.GetSession(ctx, model.ConnID(connID))
}

func (s *Storage) DeleteSession(ctx context.Context, id model.ConnID) error {
	session, err := s.GetSession(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			return nil
		}
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, sessionKey(id))
	pipe.Del(ctx, nameIndexKey(session.Name))
	pipe.LRem(ctx, sessionOrderKey(), 0, string(id))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) ListSessions(ctx context.Context) ([]*model.Session, error) {
	ids, err := s.client.LRange(ctx, sessionOrderKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	sessions := make([]*model.Session, 0, len(ids))
	for _, id := range ids {
		session, err := s.GetSession(ctx, model.ConnID(id))
		if err != nil {
			if errors.Is(err, model.ErrSessionNotFound) {
				// Expired record still referenced by the order list
				continue
			}
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}

// Match operations

func (s *Storage) SaveMatch(ctx context.Context, match *model.Match) error {
	data, err := json.Marshal(match)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, matchKey(match.ID), data, s.cfg.MatchTTL)
	for _, p := range match.Players {
		pipe.Set(ctx, participantIndexKey(p), string(match.ID), s.cfg.MatchTTL)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error) {
	data, err := s.client.Get(ctx, matchKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrMatchNotFound
		}
		return nil, err
	}

	var match model.Match
	if err := json.Unmarshal(data, &match); err != nil {
		return nil, err
	}
	return &match, nil
}

func (s *Storage) DeleteMatch(ctx context.Context, id model.MatchID) error {
	match, err := s.GetMatch(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrMatchNotFound) {
			return nil
		}
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, matchKey(id))
	for _, p := range match.Players {
		pipe.Del(ctx, participantIndexKey(p))
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetMatchByParticipant(ctx context.Context, id model.ConnID) (*model.Match, error) {
	matchID, err := s.client.Get(ctx, participantIndexKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrMatchNotFound
		}
		return nil, err
	}
	return s.GetMatch(ctx, model.MatchID(matchID))
}

// Stats operations

func (s *Storage) GetStats(ctx context.Context, name string) (*model.PlayerStats, error) {
	data, err := s.client.Get(ctx, statsKey(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrStatsNotFound
		}
		return nil, err
	}

	var stats model.PlayerStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *Storage) SaveStats(ctx context.Context, name string, stats *model.PlayerStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	// No TTL: tallies live for as long as the backend does
	return s.client.Set(ctx, statsKey(name), data, 0).Err()
}
