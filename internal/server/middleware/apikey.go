package middleware

import (
	"net/http"

	"github.com/garrettladley/healthmesh/internal/credential"
	"github.com/garrettladley/healthmesh/internal/xerrors"
	"github.com/garrettladley/healthmesh/internal/xhttp"
	"github.com/garrettladley/healthmesh/internal/xslog"
)

// APIKeyAuth admits requests whose x-api-key matches the passphrase. An empty passphrase admits
// everything, which is only allowed in development.
func APIKeyAuth(passphrase string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if passphrase == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := xslog.FromContext(r.Context())

			apiKey := xhttp.GetRequestHeaderAPIKey(r)
			if apiKey == "" {
				logger.WarnContext(r.Context(), "missing API key header",
					xslog.RequestPath(r))
				xerrors.WriteError(r.Context(), w, xerrors.Unauthorized(xerrors.WithMessage("missing API key")))
				return
			}

			if err := credential.CheckPassphrase(apiKey, passphrase); err != nil {
				logger.WarnContext(r.Context(), "API key validation failed",
					xslog.RequestPath(r),
					xslog.RequestIP(r))
				xerrors.WriteError(r.Context(), w, xerrors.Unauthorized(xerrors.WithMessage("invalid API key")))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
