package mesh

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	go_json "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/garrettladley/healthmesh/internal/version"
	"github.com/garrettladley/healthmesh/internal/xhttp"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, tokenSource oauth2.TokenSource) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return New(tokenSource, WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
}

func TestClientHeaders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		tokenSource oauth2.TokenSource
		wantAPIKey  string
	}{
		{
			name:        "token present",
			tokenSource: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "s3cret"}),
			wantAPIKey:  "s3cret",
		},
		{
			name:        "empty token",
			tokenSource: oauth2.StaticTokenSource(&oauth2.Token{}),
		},
		{
			name: "no token source",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got http.Header
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				got = r.Header.Clone()
				xhttp.WriteOK(w, map[string]int{"weight": 80})
			}, tt.tokenSource)

			_, err := client.Weight.Latest(t.Context())
			require.NoError(t, err)

			require.Equal(t, tt.wantAPIKey, got.Get(xhttp.XAPIKey))
			require.Equal(t, "no-store", got.Get(xhttp.CacheControl))
			require.Equal(t, "no-cache", got.Get(xhttp.Pragma))
			require.Equal(t, xhttp.ApplicationJSON, got.Get(xhttp.Accept))
			require.Contains(t, got.Get(xhttp.UserAgent), "healthmesh/")
			require.Equal(t, version.Get(), got.Get(version.Header))
		})
	}
}

func TestClientCatalogRouting(t *testing.T) {
	t.Parallel()

	type call struct {
		method string
		path   string
	}

	var calls []call
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, call{method: r.Method, path: r.URL.Path})
		xhttp.WriteOK(w, map[string]bool{"ok": true})
	}, nil)

	ctx := t.Context()
	invocations := []func() ([]byte, error){
		func() ([]byte, error) { return client.Garmin.Latest(ctx) },
		func() ([]byte, error) { return client.Weight.Latest(ctx) },
		func() ([]byte, error) { return client.Calories.Latest(ctx) },
		func() ([]byte, error) { return client.Calories.Trend(ctx) },
		func() ([]byte, error) { return client.Activities.Trend(ctx) },
		func() ([]byte, error) { return client.AI.Recommendation(ctx) },
		func() ([]byte, error) { return client.Medical.Latest(ctx) },
		func() ([]byte, error) { return client.Garmin.Sync(ctx) },
		func() ([]byte, error) { return client.Nutrition.Sync(ctx) },
		func() ([]byte, error) { return client.LinkedIn.Post(ctx, "hello") },
	}
	for _, invoke := range invocations {
		_, err := invoke()
		require.NoError(t, err)
	}

	want := []call{
		{http.MethodPost, "/mcp/call/garmin/latest"},
		{http.MethodGet, "/mcp/call/weight/latest"},
		{http.MethodGet, "/mcp/call/calories/latest"},
		{http.MethodGet, "/mcp/call/calories/trend"},
		{http.MethodGet, "/mcp/call/activities/trend"},
		{http.MethodPost, "/mcp/call/ai/recommendation"},
		{http.MethodGet, "/mcp/call/medical/latest"},
		{http.MethodPost, "/mcp/call/sync/garmin"},
		{http.MethodPost, "/mcp/call/sync/nutrition"},
		{http.MethodPost, "/mcp/call/linkedin/post"},
	}
	require.Equal(t, want, calls)

	for _, c := range Capabilities() {
		_, ok := Lookup(c)
		require.True(t, ok, "capability %s missing from catalog", c)
	}
}

func TestClientResponses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		status   int
		body     string
		wantBody string
		check    func(t *testing.T, err error)
	}{
		{
			name:     "ok with body",
			status:   http.StatusOK,
			body:     `{"hrv":55}`,
			wantBody: `{"hrv":55}`,
		},
		{
			name:   "no content",
			status: http.StatusNoContent,
		},
		{
			name:   "server error",
			status: http.StatusBadGateway,
			body:   "upstream down",
			check: func(t *testing.T, err error) {
				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				require.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
				require.Equal(t, "upstream down", apiErr.Body)
				require.Contains(t, err.Error(), "502")
				require.True(t, IsGatewayOutage(err))
			},
		},
		{
			name:   "not found",
			status: http.StatusNotFound,
			body:   `{"detail":"no data"}`,
			check: func(t *testing.T, err error) {
				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
				require.False(t, IsGatewayOutage(err))
			},
		},
		{
			name:   "malformed json",
			status: http.StatusOK,
			body:   `{"hrv":`,
			check: func(t *testing.T, err error) {
				var decodeErr *DecodeError
				require.ErrorAs(t, err, &decodeErr)
				require.Equal(t, `{"hrv":`, decodeErr.Body)
			},
		},
		{
			name:   "ok without body",
			status: http.StatusOK,
			check: func(t *testing.T, err error) {
				var decodeErr *DecodeError
				require.ErrorAs(t, err, &decodeErr)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}, nil)

			got, err := client.Medical.Latest(t.Context())
			if tt.check != nil {
				require.Error(t, err)
				require.Nil(t, got)
				tt.check(t, err)
				return
			}
			require.NoError(t, err)
			if tt.wantBody == "" {
				require.Nil(t, got)
				return
			}
			require.JSONEq(t, tt.wantBody, string(got))
		})
	}
}

func TestClientNetworkFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := New(nil, WithBaseURL(url))
	_, err := client.Calories.Trend(t.Context())

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	require.Equal(t, CapabilityCaloriesTrend, netErr.Capability)
}

func TestClientCredentialError(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		xhttp.WriteOK(w, map[string]bool{"ok": true})
	}, failingTokenSource{})

	_, err := client.Weight.Latest(t.Context())
	require.Error(t, err)
	require.ErrorIs(t, err, errNoCredential)
}

var errNoCredential = errors.New("credential store unavailable")

type failingTokenSource struct{}

func (failingTokenSource) Token() (*oauth2.Token, error) { return nil, errNoCredential }

func TestLinkedInPostBody(t *testing.T) {
	t.Parallel()

	var (
		gotBody        postRequest
		gotContentType string
	)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get(xhttp.ContentType)
		_ = go_json.NewDecoder(r.Body).Decode(&gotBody)
		xhttp.WriteOK(w, map[string]string{"status": "drafted"})
	}, nil)

	_, err := client.LinkedIn.Post(t.Context(), "shipping a Go rewrite")
	require.NoError(t, err)
	require.Equal(t, xhttp.ApplicationJSON, gotContentType)
	require.Equal(t, "shipping a Go rewrite", gotBody.Content)
}

func TestUnknownCapability(t *testing.T) {
	t.Parallel()

	client := New(nil)
	_, err := client.Call(t.Context(), Capability("nope"), nil)
	require.Error(t, err)
}
