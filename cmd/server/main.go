package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/oxturret/turretweb/internal/factory"
	"github.com/oxturret/turretweb/internal/services/auth"
	redisstorage "github.com/oxturret/turretweb/internal/storage/redis"
	"github.com/oxturret/turretweb/internal/web"
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Build factory config from environment
	cfg := factory.Config{
		Logger:      logger,
		StorageType: os.Getenv("STORAGE_TYPE"),
		AuthConfig: auth.Config{
			Username: os.Getenv("BASIC_AUTH_USER"),
			Password: os.Getenv("BASIC_AUTH_PASSWORD"),
		},
	}

	if cfg.AuthConfig.Username == "" || cfg.AuthConfig.Password == "" {
		logger.Error("BASIC_AUTH_USER and BASIC_AUTH_PASSWORD are required")
		os.Exit(1)
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Create web router
	router := web.NewRouter(web.RouterConfig{
		Logger:          logger,
		AuthService:     app.AuthService,
		SessionService:  app.SessionService,
		LobbyController: app.LobbyController,
		InstanceTable:   app.InstanceTable,
		Relay:           app.Relay,
		Connections:     app.Connections,
		Clock:           app.Clock,
		StaticDir:       findStaticDir(),
	})

	// Create server
	serverConfig := web.DefaultServerConfig()
	if port := os.Getenv("PORT"); port != "" {
		if parsed, err := strconv.Atoi(port); err == nil {
			serverConfig.Port = parsed
		}
	}
	server := web.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}

// findStaticDir looks for the client asset directory
func findStaticDir() string {
	if dir := os.Getenv("STATIC_DIR"); dir != "" {
		return dir
	}

	// Try common locations
	candidates := []string{
		"web/src",
		"./web/src",
		filepath.Join(os.Getenv("PWD"), "web/src"),
	}

	for _, dir := range candidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}

	// Default to relative path
	return "web/src"
}
