package tui

import (
	"context"
	"log/slog"

	"github.com/garrettladley/healthmesh/internal/blog"
	"github.com/garrettladley/healthmesh/internal/dashboard"
)

type DashboardLoader interface {
	Load(ctx context.Context) (*dashboard.ViewModel, error)
	Sync(ctx context.Context, kind dashboard.SyncKind) (*dashboard.ViewModel, error)
}

var _ DashboardLoader = (*dashboard.Loader)(nil)

type TokenChecker interface {
	HasToken(ctx context.Context) (bool, error)
}

type PostSource interface {
	Recent(n int) []blog.Post
}

var _ PostSource = (*blog.Index)(nil)

type Deps struct {
	Ctx          context.Context
	Logger       *slog.Logger
	Loader       DashboardLoader
	TokenChecker TokenChecker // nil when no local store is available
	TokenFromEnv bool
	Posts        PostSource
	WatchPosts   PostsWatcher // nil disables hot reload
}
