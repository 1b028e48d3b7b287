package xerrors

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/garrettladley/healthmesh/internal/xhttp"
	"github.com/garrettladley/healthmesh/internal/xslog"
	go_json "github.com/goccy/go-json"
)

type errorResponse struct {
	Status            int               `json:"status"`
	Message           string            `json:"message"`
	Fields            map[string]string `json:"fields,omitempty"`
	RetryAfterSeconds int               `json:"retryAfterSeconds,omitempty"`
}

func WriteError(ctx context.Context, w http.ResponseWriter, err error) {
	e := As(err)
	if e == nil {
		e = Internal(WithCause(err))
	}

	logError(ctx, e)

	resp := errorResponse{Status: e.StatusCode, Message: e.Message}
	if e.Validation != nil {
		resp.Fields = e.Validation.Fields
	}
	if rl := e.RateLimit; rl != nil {
		if rl.RetryAfter > 0 {
			xhttp.SetHeaderRetryAfter(w, rl.RetryAfter)
			resp.RetryAfterSeconds = int(rl.RetryAfter.Seconds())
		}
		if rl.Reason != "" {
			w.Header().Set(xhttp.XRateLimitReason, rl.Reason)
		}
	}

	xhttp.SetHeaderContentTypeApplicationJSON(w)
	w.WriteHeader(e.StatusCode)
	_ = go_json.NewEncoder(w).Encode(resp)
}

func logError(ctx context.Context, err *Error) {
	logger := xslog.FromContext(ctx)
	attrs := []any{
		xslog.HTTPStatus(err.StatusCode),
		slog.String("message", err.Message),
	}
	if err.Cause != nil {
		attrs = append(attrs, xslog.Error(err.Cause))
	}
	if err.RateLimit != nil {
		attrs = append(attrs, slog.Any("rate_limit", err.RateLimit))
	}
	if err.Validation != nil {
		attrs = append(attrs, slog.Any("validation", err.Validation))
	}

	switch err.StatusCode / 100 {
	case 5:
		logger.ErrorContext(ctx, "server error", attrs...)
	case 4:
		logger.WarnContext(ctx, "client error", attrs...)
	default:
		logger.InfoContext(ctx, "error response", attrs...)
	}
}
