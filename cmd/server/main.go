package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/garrettladley/healthmesh/internal/assistant"
	"github.com/garrettladley/healthmesh/internal/blog"
	"github.com/garrettladley/healthmesh/internal/client/mesh"
	"github.com/garrettladley/healthmesh/internal/credential"
	"github.com/garrettladley/healthmesh/internal/dashboard"
	xredis "github.com/garrettladley/healthmesh/internal/redis"
	"github.com/garrettladley/healthmesh/internal/server"
	"github.com/garrettladley/healthmesh/internal/storage"
	"github.com/garrettladley/healthmesh/internal/xslog"
)

const (
	keyPort      = "port"
	keyEnv       = "env"
	keyPostsDir  = "posts_dir"
	keySyncLimit = "sync_per_minute"
)

func main() {
	_ = godotenv.Load()

	logger := xslog.NewLoggerFromEnv(os.Stdout)
	slog.SetDefault(logger)

	ctx := context.Background()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", xslog.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := server.ReadConfig()
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	backend, err := initBackend(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize storage backend: %w", err)
	}
	defer func() {
		if err := backend.Close(); err != nil {
			logger.ErrorContext(ctx, "failed to close backend", xslog.Error(err))
		}
	}()

	client := mesh.New(
		credential.Resolve(ctx, nil, cfg.Gateway.Token),
		mesh.WithBaseURL(cfg.Gateway.URL),
		mesh.WithTimeout(cfg.Gateway.RequestTimeout),
		mesh.WithLogger(logger),
	)
	loader := dashboard.NewLoader(client,
		dashboard.WithLogger(logger),
		dashboard.WithCalorieTarget(cfg.CalorieTarget),
	)

	posts, err := blog.NewIndex(os.DirFS(cfg.PostsDir))
	if err != nil {
		return fmt.Errorf("failed to load posts: %w", err)
	}

	watchCtx, stopWatch := context.WithCancel(xslog.WithLogger(ctx, logger))
	defer stopWatch()
	go func() {
		if err := blog.Watch(watchCtx, cfg.PostsDir, posts, blog.DefaultDebounce, nil); err != nil {
			logger.WarnContext(ctx, "posts hot reload disabled", xslog.Error(err), slog.String(keyPostsDir, cfg.PostsDir))
		}
	}()

	handler := server.NewHandler(server.Deps{
		Logger:       logger,
		Passphrase:   cfg.Passphrase,
		Backend:      backend,
		Loader:       loader,
		Posts:        posts,
		Conversation: assistant.New(client.LinkedIn, assistant.WithLogger(logger)),
	})

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// dashboard loads fan out to the gateway; leave room beyond its timeout
		WriteTimeout: cfg.Gateway.RequestTimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		logger.InfoContext(ctx, "starting server",
			xslog.Version(),
			slog.String(keyPort, cfg.Port),
			slog.String(keyEnv, string(cfg.Env)),
			slog.Int(keySyncLimit, cfg.SyncRatePerMinute))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-done:
		logger.InfoContext(ctx, "shutdown signal received, initiating graceful shutdown")
	case err := <-serveErr:
		return fmt.Errorf("server error: %w", err)
	}

	stopWatch()

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	logger.InfoContext(ctx, "server stopped")
	return nil
}

func initBackend(ctx context.Context, cfg server.Config, logger *slog.Logger) (storage.Backend, error) {
	limit := storage.PerMinute(cfg.SyncRatePerMinute)

	if cfg.Redis.URL == "" {
		logger.InfoContext(ctx, "initializing memory backend")
		return storage.NewMemoryBackend(limit, cfg.SnapshotTTL), nil
	}

	logger.InfoContext(ctx, "initializing Redis backend")
	redisClient, err := xredis.New(ctx, xredis.Config{URL: cfg.Redis.URL})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis client: %w", err)
	}
	return storage.NewRedisBackend(storage.RedisConfig{
		Client:      redisClient,
		RateLimit:   limit,
		SnapshotTTL: cfg.SnapshotTTL,
	}), nil
}
