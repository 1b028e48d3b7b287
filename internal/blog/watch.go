package blog

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/garrettladley/healthmesh/internal/xslog"
)

const DefaultDebounce = 250 * time.Millisecond

// Watch reloads idx whenever a markdown file in dir changes, coalescing bursts of events
// within debounce. It runs until ctx is cancelled. Failed reloads keep the previous posts.
func Watch(ctx context.Context, dir string, idx *Index, debounce time.Duration, onReload func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(dir); err != nil {
		return err
	}

	logger := xslog.FromContext(ctx).With(xslog.Path(dir))
	logger.InfoContext(ctx, "watching posts")

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Ext(event.Name) != ".md" {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			timer.Reset(debounce)

		case <-timer.C:
			if err := idx.Reload(); err != nil {
				logger.ErrorContext(ctx, "reloading posts, keeping previous", xslog.Error(err))
				continue
			}
			logger.InfoContext(ctx, "posts reloaded", xslog.Count(idx.Len()))
			if onReload != nil {
				onReload()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.ErrorContext(ctx, "posts watcher error", xslog.Error(err))
		}
	}
}
