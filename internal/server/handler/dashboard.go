package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/garrettladley/healthmesh/internal/dashboard"
	"github.com/garrettladley/healthmesh/internal/storage"
	"github.com/garrettladley/healthmesh/internal/xerrors"
	"github.com/garrettladley/healthmesh/internal/xhttp"
	"github.com/garrettladley/healthmesh/internal/xslog"
)

// Loader is satisfied by *dashboard.Loader.
type Loader interface {
	Load(ctx context.Context) (*dashboard.ViewModel, error)
	Sync(ctx context.Context, kind dashboard.SyncKind) (*dashboard.ViewModel, error)
}

type Dashboard struct {
	loader    Loader
	snapshots storage.SnapshotStore
}

func NewDashboard(loader Loader, snapshots storage.SnapshotStore) *Dashboard {
	return &Dashboard{loader: loader, snapshots: snapshots}
}

// HandleLoad handles GET /api/dashboard. The fresh view model becomes the latest snapshot.
func (h *Dashboard) HandleLoad(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	vm, err := h.loader.Load(ctx)
	if err != nil {
		xerrors.WriteError(ctx, w, xerrors.Internal(
			xerrors.WithMessage("an unexpected error occurred while loading data"),
			xerrors.WithCause(err),
		))
		return
	}

	h.store(ctx, vm)
	xhttp.WriteOK(w, vm)
}

// HandleLatest handles GET /api/dashboard/latest.
func (h *Dashboard) HandleLatest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	vm, err := h.snapshots.Latest(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		xerrors.WriteError(ctx, w, xerrors.NotFound(xerrors.WithMessage("no dashboard snapshot; load the dashboard first")))
		return
	}
	if err != nil {
		xerrors.WriteError(ctx, w, xerrors.Internal(xerrors.WithMessage("failed to read snapshot"), xerrors.WithCause(err)))
		return
	}

	xhttp.WriteOK(w, vm)
}

// HandleSync handles POST /api/sync/{kind}. A failed sync does not reload or touch the snapshot.
func (h *Dashboard) HandleSync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	kind, err := dashboard.ParseSyncKind(r.PathValue("kind"))
	if err != nil {
		xerrors.WriteError(ctx, w, xerrors.Validation(map[string]string{"kind": err.Error()}))
		return
	}

	vm, err := h.loader.Sync(ctx, kind)
	if err != nil {
		var syncErr *dashboard.SyncError
		if errors.As(err, &syncErr) {
			xerrors.WriteError(ctx, w, xerrors.BadGateway(
				xerrors.WithMessage("Sync failed: "+syncErr.Error()),
				xerrors.WithCause(err),
			))
			return
		}
		xerrors.WriteError(ctx, w, xerrors.Internal(
			xerrors.WithMessage("an unexpected error occurred while loading data"),
			xerrors.WithCause(err),
		))
		return
	}

	h.store(ctx, vm)
	xhttp.WriteOK(w, vm)
}

func (h *Dashboard) store(ctx context.Context, vm *dashboard.ViewModel) {
	if err := h.snapshots.Put(ctx, vm); err != nil {
		xslog.FromContext(ctx).WarnContext(ctx, "failed to store snapshot", xslog.Error(err))
	}
}
