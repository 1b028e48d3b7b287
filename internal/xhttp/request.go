package xhttp

import (
	"net"
	"net/http"
	"strings"
)

// GetRequestIP returns the originating client address, preferring the first
// X-Forwarded-For hop when the backend sits behind a proxy.
func GetRequestIP(r *http.Request) string {
	if xff := r.Header.Get(XForwardedFor); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return stripPort(strings.TrimSpace(first))
	}
	return stripPort(r.RemoteAddr)
}

func stripPort(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
