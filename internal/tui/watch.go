package tui

import (
	"context"

	tea "charm.land/bubbletea/v2"
)

// PostsWatcher blocks until ctx is done, calling onReload after each reload of the posts index.
type PostsWatcher func(ctx context.Context, onReload func()) error

// startPostsWatchCmd runs the watcher and bridges its reload callback onto changed.
func startPostsWatchCmd(ctx context.Context, watch PostsWatcher, changed chan<- struct{}) tea.Cmd {
	return func() tea.Msg {
		err := watch(ctx, func() {
			select {
			case changed <- struct{}{}:
			case <-ctx.Done():
			}
		})
		return PostsWatchStoppedMsg{Err: err}
	}
}

// listenPostsCmd waits for the next reload. It must be re-issued after every PostsChangedMsg.
func listenPostsCmd(ctx context.Context, changed <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-changed:
			return PostsChangedMsg{}
		case <-ctx.Done():
			return PostsWatchStoppedMsg{Err: ctx.Err()}
		}
	}
}
