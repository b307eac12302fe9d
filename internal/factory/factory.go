package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/erppro/identity/internal/dependencies/clock"
	"github.com/erppro/identity/internal/dependencies/random"
	"github.com/erppro/identity/internal/services/directory"
	"github.com/erppro/identity/internal/services/session"
	"github.com/erppro/identity/internal/storage"
	"github.com/erppro/identity/internal/storage/memory"
	redisstorage "github.com/erppro/identity/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.AccountStore

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	DirectoryService *directory.Service
	SessionService   *session.Service
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
	// SkipSeed disables loading the demonstration accounts
	SkipSeed bool
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.AccountStore
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

	app := newWithDependencies(store, clock.New(), random.New(), logger)

	if !cfg.SkipSeed {
		if err := app.DirectoryService.Seed(context.Background()); err != nil {
			return nil, fmt.Errorf("seeding directory: %w", err)
		}
	}

	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.AccountStore, clk clock.Clock, rnd random.Random, logger *slog.Logger) *App {
	directoryService := directory.New(store, clk, logger)
	sessionService := session.New(directoryService, clk, rnd, logger)

	return &App{
		Storage:          store,
		Clock:            clk,
		Random:           rnd,
		DirectoryService: directoryService,
		SessionService:   sessionService,
	}
}
