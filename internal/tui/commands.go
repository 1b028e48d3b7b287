package tui

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/garrettladley/healthmesh/internal/dashboard"
)

const blogPaneLimit = 5

func checkAuthCmd(ctx context.Context, checker TokenChecker, fromEnv bool) tea.Cmd {
	return func() tea.Msg {
		if fromEnv {
			return AuthStatusMsg{HasToken: true, FromEnv: true}
		}
		if checker == nil {
			return AuthStatusMsg{}
		}
		hasToken, err := checker.HasToken(ctx)
		return AuthStatusMsg{HasToken: hasToken, Err: err}
	}
}

func loadCmd(ctx context.Context, loader DashboardLoader, seq uint64) tea.Cmd {
	return func() tea.Msg {
		vm, err := loader.Load(ctx)
		return DashboardMsg{Seq: seq, ViewModel: vm, Err: err}
	}
}

func syncCmd(ctx context.Context, loader DashboardLoader, seq uint64, kind dashboard.SyncKind) tea.Cmd {
	return func() tea.Msg {
		vm, err := loader.Sync(ctx, kind)
		return DashboardMsg{Seq: seq, Kind: kind, ViewModel: vm, Err: err}
	}
}

func loadPostsCmd(posts PostSource) tea.Cmd {
	if posts == nil {
		return nil
	}
	return func() tea.Msg {
		return PostsMsg{Posts: posts.Recent(blogPaneLimit)}
	}
}
