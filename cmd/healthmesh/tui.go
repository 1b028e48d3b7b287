package main

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/garrettladley/healthmesh/internal/blog"
	"github.com/garrettladley/healthmesh/internal/paths"
	"github.com/garrettladley/healthmesh/internal/tui"
	"github.com/garrettladley/healthmesh/internal/xslog"
)

func tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Launch the interactive TUI",
		Long:  "Opens the full-screen dashboard. This is also what running healthmesh with no command does.",
		RunE:  runTUI,
	}
}

func runTUI(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	if _, err := paths.EnsureDir(); err != nil {
		return err
	}
	logPath, err := paths.Log()
	if err != nil {
		return err
	}
	logger, closer, err := xslog.NewFileLogger(logPath, xslog.FromEnv())
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	a, err := openApp(ctx, logger)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	posts, dir, err := openPosts(a.cfg)
	if err != nil {
		return err
	}

	deps := tui.Deps{
		Ctx:          ctx,
		Logger:       logger,
		Loader:       a.loader(),
		TokenChecker: a.store,
		TokenFromEnv: a.tokenFromEnv(),
		Posts:        posts,
	}
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		deps.WatchPosts = func(ctx context.Context, onReload func()) error {
			return blog.Watch(ctx, dir, posts, blog.DefaultDebounce, onReload)
		}
	}

	model := tui.New(deps)
	p := tea.NewProgram(&model)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}

	return nil
}
