package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/oxturret/turretweb/internal/dependencies/clock"
	"github.com/oxturret/turretweb/internal/dependencies/random"
	"github.com/oxturret/turretweb/internal/services/auth"
	"github.com/oxturret/turretweb/internal/services/instance"
	"github.com/oxturret/turretweb/internal/services/lobby"
	"github.com/oxturret/turretweb/internal/services/relay"
	"github.com/oxturret/turretweb/internal/services/session"
	"github.com/oxturret/turretweb/internal/storage"
	"github.com/oxturret/turretweb/internal/storage/memory"
	redisstorage "github.com/oxturret/turretweb/internal/storage/redis"
	"github.com/oxturret/turretweb/internal/web/sse"
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
	AuthService     *auth.Service
	SessionService  *session.Service
	LobbyController *lobby.Controller
	InstanceTable   *instance.Table
	Relay           *relay.Relay
	Connections     *sse.Registry
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds the shared basic-auth credentials (required)
	AuthConfig auth.Config
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
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	if cfg.AuthConfig.Username == "" || cfg.AuthConfig.Password == "" {
		return nil, errors.New("AuthConfig requires a username and password")
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

	return newWithDependencies(store, clock.New(), random.New(), cfg.AuthConfig, logger)
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, authCfg auth.Config, logger *slog.Logger) (*App, error) {
	authService, err := auth.NewService(authCfg)
	if err != nil {
		return nil, err
	}

	sessionService := session.NewService(store, clk, rnd, logger)
	lobbyController := lobby.NewController(store, clk, rnd, logger)
	instanceTable := instance.NewTable(logger)
	connections := sse.NewRegistry()
	commandRelay := relay.New(lobbyController, instanceTable, sessionService, connections, logger)

	return &App{
		Storage:         store,
		Clock:           clk,
		Random:          rnd,
		AuthService:     authService,
		SessionService:  sessionService,
		LobbyController: lobbyController,
		InstanceTable:   instanceTable,
		Relay:           commandRelay,
		Connections:     connections,
	}, nil
}
