package middleware

import (
	"net/http"

	"github.com/garrettladley/healthmesh/internal/version"
	"github.com/garrettladley/healthmesh/internal/xslog"
)

const unknownClientVersion = "unknown"

// ClientVersion records the caller's version header on the request logger.
// Must run AFTER Logger.
func ClientVersion(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientVersion := r.Header.Get(version.Header)
		if clientVersion == "" {
			clientVersion = unknownClientVersion
		}

		ctx := xslog.WithAttrs(r.Context(), xslog.ClientVersion(clientVersion))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
