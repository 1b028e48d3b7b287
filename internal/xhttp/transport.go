package xhttp

import (
	"fmt"
	"net/http"

	"github.com/garrettladley/healthmesh/internal/version"
)

type meshTransport struct {
	base http.RoundTripper
}

var _ http.RoundTripper = (*meshTransport)(nil)

func (t *meshTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set(UserAgent, version.UserAgent())
	req.Header.Set(version.Header, version.Get())
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, fmt.Errorf("failed to perform round trip: %w", err)
	}
	return resp, nil
}

// NewTransportWith stamps the healthmesh headers on every request before handing it to base,
// which defaults to http.DefaultTransport.
func NewTransportWith(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &meshTransport{base: base}
}
