package stats

import (
	"context"
	"errors"
	"log/slog"

	"github.com/vikalpshakya/Ultimate-Bingo-game/internal/model"
	"github.com/vikalpshakya/Ultimate-Bingo-game/internal/storage"
)

// Service keeps win/loss tallies per display name
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a new StatsService
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// Get returns the tally for a name, defaulting to zeros when no record
// exists yet.
func (s *Service) Get(ctx context.Context, name string) (*model.PlayerStats, error) {
	stats, err := s.storage.GetStats(ctx, name)
	if errors.Is(err, model.ErrStatsNotFound) {
		return &model.PlayerStats{}, nil
	}
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// RecordWin increments the win tally. A missing record is logged and
// skipped rather than created: only logged-in players get records.
func (s *Service) RecordWin(ctx context.Context, name string) error {
	return s.increment(ctx, name, func(st *model.PlayerStats) { st.Wins++ })
}

// RecordLoss increments the loss tally, with the same missing-record
// behavior as RecordWin.
func (s *Service) RecordLoss(ctx context.Context, name string) error {
	return s.increment(ctx, name, func(st *model.PlayerStats) { st.Losses++ })
}

func (s *Service) increment(ctx context.Context, name string, apply func(*model.PlayerStats)) error {
	stats, err := s.storage.GetStats(ctx, name)
	if errors.Is(err, model.ErrStatsNotFound) {
		s.logger.Warn("stats update skipped, no record",
			slog.String("name", name),
		)
		return nil
	}
	if err != nil {
		return err
	}

	apply(stats)
	return s.storage.SaveStats(ctx, name, stats)
}
