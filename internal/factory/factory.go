package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/vikalpshakya/Ultimate-Bingo-game/internal/dependencies/clock"
	"github.com/vikalpshakya/Ultimate-Bingo-game/internal/dependencies/random"
	"github.com/vikalpshakya/Ultimate-Bingo-game/internal/services/board"
	"github.com/vikalpshakya/Ultimate-Bingo-game/internal/services/coordinator"
	"github.com/vikalpshakya/Ultimate-Bingo-game/internal/services/match"
	"github.com/vikalpshakya/Ultimate-Bingo-game/internal/services/session"
	"github.com/vikalpshakya/Ultimate-Bingo-game/internal/services/stats"
	"github.com/vikalpshakya/Ultimate-Bingo-game/internal/storage"
	"github.com/vikalpshakya/Ultimate-Bingo-game/internal/storage/memory"
	redisstorage "github.com/vikalpshakya/Ultimate-Bingo-game/internal/storage/redis"
	"github.com/vikalpshakya/Ultimate-Bingo-game/internal/ws"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	BoardService   *board.Service
	SessionService *session.Service
	StatsService   *stats.Service
	MatchService   *match.Service
	Coordinator    *coordinator.Coordinator

	// Transport
	Hub       *ws.Hub
	WSHandler *ws.Handler
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	clk := clock.New()
	rnd := random.New()

	return newWithDependencies(store, clk, rnd, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, logger *slog.Logger) *App {
	boardService := board.New(rnd)
	sessionService := session.New(store, clk, logger)
	statsService := stats.New(store, logger)
	matchService := match.New(store, boardService, clk, logger)

	hub := ws.NewHub(logger)
	coord := coordinator.New(sessionService, statsService, matchService, hub, logger)
	wsHandler := ws.NewHandler(hub, coord, logger)

	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		BoardService:   boardService,
		SessionService: sessionService,
		StatsService:   statsService,
		MatchService:   matchService,
		Coordinator:    coord,
		Hub:            hub,
		WSHandler:      wsHandler,
	}
}
