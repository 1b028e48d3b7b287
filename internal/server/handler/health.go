package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/garrettladley/healthmesh/internal/version"
	"github.com/garrettladley/healthmesh/internal/xerrors"
	"github.com/garrettladley/healthmesh/internal/xhttp"
	"github.com/garrettladley/healthmesh/internal/xslog"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Health struct {
	backend Pinger
}

func NewHealth(backend Pinger) *Health {
	return &Health{backend: backend}
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// HandleHealth handles GET /health.
func (h *Health) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.backend.Ping(ctx); err != nil {
		xslog.FromContext(ctx).WarnContext(ctx, "storage backend unhealthy", xslog.Error(err))
		xerrors.WriteError(r.Context(), w, xerrors.ServiceUnavailable(
			xerrors.WithMessage("storage backend unavailable"),
			xerrors.WithCause(err),
		))
		return
	}

	xhttp.WriteOK(w, healthResponse{Status: "ok", Version: version.Get()})
}
