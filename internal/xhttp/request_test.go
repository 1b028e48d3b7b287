package xhttp

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetRequestIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		forwarded  string
		remoteAddr string
		want       string
	}{
		{"remote addr", "", "192.0.2.1:1234", "192.0.2.1"},
		{"remote addr without port", "", "192.0.2.1", "192.0.2.1"},
		{"remote ipv6", "", "[2001:db8::1]:443", "2001:db8::1"},
		{"loopback ipv6", "", "[::1]:8080", "::1"},
		{"forwarded wins", "203.0.113.7", "10.0.0.2:5000", "203.0.113.7"},
		{"forwarded with port", "203.0.113.7:61000", "10.0.0.2:5000", "203.0.113.7"},
		{"forwarded chain", "198.51.100.4, 10.1.0.1, 10.0.0.2", "10.0.0.3:5000", "198.51.100.4"},
		{"forwarded ipv6 bracketed", "[2001:db8::7]:8443, 10.0.0.2", "10.0.0.3:5000", "2001:db8::7"},
		{"forwarded ipv6 bare", "2001:db8::7", "10.0.0.3:5000", "2001:db8::7"},
		{"nothing", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequestWithContext(t.Context(), http.MethodPost, "/api/sync/all", nil)
			r.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				r.Header.Set(XForwardedFor, tt.forwarded)
			}

			if got := GetRequestIP(r); got != tt.want {
				t.Errorf("GetRequestIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
