package dashboard

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/garrettladley/healthmesh/internal/client/mesh"
	"github.com/garrettladley/healthmesh/internal/xslog"
)

// SyncKind selects which upstream sources to refresh before reloading.
type SyncKind string

const (
	SyncGarmin    SyncKind = "garmin"
	SyncNutrition SyncKind = "nutrition"
	SyncAll       SyncKind = "all"
)

func SyncKinds() []SyncKind {
	return []SyncKind{SyncGarmin, SyncNutrition, SyncAll}
}

func ParseSyncKind(s string) (SyncKind, error) {
	switch k := SyncKind(strings.ToLower(strings.TrimSpace(s))); k {
	case SyncGarmin, SyncNutrition, SyncAll:
		return k, nil
	default:
		return "", fmt.Errorf("invalid sync kind: %q (valid: garmin, nutrition, all)", s)
	}
}

func (k SyncKind) capabilities() []mesh.Capability {
	switch k {
	case SyncGarmin:
		return []mesh.Capability{mesh.CapabilitySyncGarmin}
	case SyncNutrition:
		return []mesh.Capability{mesh.CapabilitySyncNutrition}
	case SyncAll:
		return []mesh.Capability{mesh.CapabilitySyncGarmin, mesh.CapabilitySyncNutrition}
	default:
		return nil
	}
}

// SyncError is a failed sync. The dashboard is not reloaded after one.
type SyncError struct {
	Kind SyncKind
	Err  error
}

func (e *SyncError) Error() string { return e.Err.Error() }

func (e *SyncError) Unwrap() error { return e.Err }

// Sync runs the mutation calls for kind concurrently, waits for all of them, then reloads.
func (l *Loader) Sync(ctx context.Context, kind SyncKind) (*ViewModel, error) {
	caps := kind.capabilities()
	if len(caps) == 0 {
		return nil, &SyncError{Kind: kind, Err: fmt.Errorf("invalid sync kind: %q", kind)}
	}

	logger := l.logger.With(xslog.SyncKind(string(kind)))
	logger.InfoContext(ctx, "sync started")

	var eg errgroup.Group
	for _, c := range caps {
		eg.Go(func() error {
			if _, err := l.fetcher.Call(ctx, c, nil); err != nil {
				return fmt.Errorf("%s: %w", c, err)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		logger.WarnContext(ctx, "sync failed", xslog.Error(err))
		return nil, &SyncError{Kind: kind, Err: err}
	}

	logger.InfoContext(ctx, "sync complete, reloading")
	return l.Load(ctx)
}
