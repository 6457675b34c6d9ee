package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/myatmin/twodlive/internal/dependencies/clock"
	"github.com/myatmin/twodlive/internal/live"
	"github.com/myatmin/twodlive/internal/services/auth"
	"github.com/myatmin/twodlive/internal/services/ledger"
	"github.com/myatmin/twodlive/internal/services/result"
	"github.com/myatmin/twodlive/internal/storage"
	"github.com/myatmin/twodlive/internal/storage/memory"
	redisstorage "github.com/myatmin/twodlive/internal/storage/redis"
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
	Clock clock.Clock

	// Services
	AuthService   *auth.Service
	Ledger        *ledger.Service
	ResultService *result.Service
	Feed          result.Feed
	Hub           *live.Hub
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service.
	// The signing secret is mandatory and has no default.
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// FeedURL is the upstream live feed endpoint (optional)
	// If empty, the feed reports as offline
	FeedURL string
}

// New creates a new application with all dependencies wired. The hub's
// dispatch loop is started here; call Close to stop it.
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
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

	// Fill in the token TTL default but never the secret
	authCfg := cfg.AuthConfig
	if authCfg.TokenTTL == 0 {
		authCfg.TokenTTL = auth.DefaultConfig().TokenTTL
	}

	return newWithDependencies(store, clk, authCfg, cfg.FeedURL, logger)
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, authCfg auth.Config, feedURL string, logger *slog.Logger) (*App, error) {
	authService, err := auth.New(store, clk, authCfg, logger)
	if err != nil {
		return nil, err
	}

	hub := live.NewHub(logger)
	go hub.Run()

	feed := result.NewFeedClient(feedURL, logger)
	ledgerService := ledger.New(store, logger)
	resultService := result.New(store, hub, feed, clk, logger)

	return &App{
		Storage:       store,
		Clock:         clk,
		AuthService:   authService,
		Ledger:        ledgerService,
		ResultService: resultService,
		Feed:          feed,
		Hub:           hub,
	}, nil
}

// Close stops the hub dispatch loop and releases the storage backend
func (a *App) Close() error {
	a.Hub.Close()
	if closer, ok := a.Storage.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
