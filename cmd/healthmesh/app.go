package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/garrettladley/healthmesh/internal/blog"
	"github.com/garrettladley/healthmesh/internal/client/mesh"
	"github.com/garrettladley/healthmesh/internal/config"
	"github.com/garrettladley/healthmesh/internal/credential"
	"github.com/garrettladley/healthmesh/internal/dashboard"
	"github.com/garrettladley/healthmesh/internal/db"
	"github.com/garrettladley/healthmesh/internal/paths"
	"github.com/garrettladley/healthmesh/internal/xslog"
)

// app is everything a command needs to talk to the gateway.
type app struct {
	cfg    config.Config
	logger *slog.Logger
	sqlDB  *sql.DB
	store  *credential.Store
	client *mesh.Client
}

func openApp(ctx context.Context, logger *slog.Logger) (*app, error) {
	cfg, err := config.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if _, err := paths.EnsureDir(); err != nil {
		return nil, err
	}

	dbPath, err := paths.DB()
	if err != nil {
		return nil, err
	}

	ctx = xslog.WithLogger(ctx, logger)
	sqlDB, err := db.Open(ctx, dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := credential.NewStore(sqlDB)
	client := mesh.New(
		credential.Resolve(ctx, store, cfg.Token),
		mesh.WithBaseURL(cfg.GatewayURL),
		mesh.WithTimeout(cfg.RequestTimeout),
		mesh.WithLogger(logger),
	)

	return &app{
		cfg:    cfg,
		logger: logger,
		sqlDB:  sqlDB,
		store:  store,
		client: client,
	}, nil
}

func (a *app) Close() error {
	return a.sqlDB.Close()
}

func (a *app) loader() *dashboard.Loader {
	return dashboard.NewLoader(a.client,
		dashboard.WithLogger(a.logger),
		dashboard.WithCalorieTarget(a.cfg.CalorieTarget),
	)
}

func (a *app) tokenFromEnv() bool {
	return strings.TrimSpace(a.cfg.Token) != ""
}

func postsDir(cfg config.Config) (string, error) {
	if cfg.PostsDir != "" {
		return cfg.PostsDir, nil
	}
	return paths.Posts()
}

func openPosts(cfg config.Config) (*blog.Index, string, error) {
	dir, err := postsDir(cfg)
	if err != nil {
		return nil, "", err
	}
	idx, err := blog.NewIndex(os.DirFS(dir))
	if err != nil {
		return nil, "", fmt.Errorf("failed to load posts from %s: %w", dir, err)
	}
	return idx, dir, nil
}

// stderrLogger keeps stdout clean for command output.
func stderrLogger() *slog.Logger {
	return xslog.NewLoggerFromEnv(os.Stderr)
}
