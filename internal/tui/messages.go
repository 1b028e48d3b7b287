package tui

import (
	"github.com/garrettladley/healthmesh/internal/blog"
	"github.com/garrettladley/healthmesh/internal/dashboard"
)

type SplashTickMsg struct{}

type AuthStatusMsg struct {
	HasToken bool
	FromEnv  bool
	Err      error
}

// DashboardMsg carries the result of a load or sync. Kind is empty for a plain load.
// Results whose Seq is not the latest request are dropped.
type DashboardMsg struct {
	Seq       uint64
	Kind      dashboard.SyncKind
	ViewModel *dashboard.ViewModel
	Err       error
}

type PostsMsg struct {
	Posts []blog.Post
}

type PostsChangedMsg struct{}

type PostsWatchStoppedMsg struct {
	Err error
}
