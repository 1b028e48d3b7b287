package mesh

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	go_json "github.com/goccy/go-json"
	"golang.org/x/oauth2"

	"github.com/garrettladley/healthmesh/internal/xhttp"
	"github.com/garrettladley/healthmesh/internal/xslog"
)

const DefaultBaseURL = "http://localhost:8080"

type Client struct {
	Garmin     GarminService
	Weight     WeightService
	Calories   CaloriesService
	Nutrition  NutritionService
	Activities ActivitiesService
	AI         AIService
	Medical    MedicalService
	LinkedIn   LinkedInService

	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// New builds a gateway client. tokenSource may be nil; calls then go out without a credential
// and the gateway decides whether to serve them.
func New(tokenSource oauth2.TokenSource, opts ...Option) *Client {
	cfg := &clientConfig{
		baseURL:     DefaultBaseURL,
		tokenSource: tokenSource,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	transport := &meshTransport{
		base:        xhttp.NewTransportWith(cfg.base),
		tokenSource: cfg.tokenSource,
	}

	c := &Client{
		baseURL:    cfg.baseURL,
		httpClient: &http.Client{Transport: transport, Timeout: cfg.timeout},
		logger:     cfg.logger,
	}

	c.Garmin = &garminService{client: c}
	c.Weight = &weightService{client: c}
	c.Calories = &caloriesService{client: c}
	c.Nutrition = &nutritionService{client: c}
	c.Activities = &activitiesService{client: c}
	c.AI = &aiService{client: c}
	c.Medical = &medicalService{client: c}
	c.LinkedIn = &linkedInService{client: c}

	return c
}

type clientConfig struct {
	baseURL     string
	tokenSource oauth2.TokenSource
	logger      *slog.Logger
	timeout     time.Duration
	base        http.RoundTripper
}

type Option func(*clientConfig)

func WithBaseURL(baseURL string) Option {
	return func(cfg *clientConfig) { cfg.baseURL = baseURL }
}

func WithLogger(logger *slog.Logger) Option {
	return func(cfg *clientConfig) { cfg.logger = logger }
}

func WithTimeout(d time.Duration) Option {
	return func(cfg *clientConfig) { cfg.timeout = d }
}

// WithHTTPClient reuses the transport of an existing client, e.g. an httptest server's. The
// healthmesh identity headers are still stamped on top of it.
func WithHTTPClient(hc *http.Client) Option {
	return func(cfg *clientConfig) {
		if hc.Transport != nil {
			cfg.base = hc.Transport
		}
		if hc.Timeout > 0 {
			cfg.timeout = hc.Timeout
		}
	}
}

// Call performs one gateway capability. It returns the raw JSON body on a 2xx response with
// content and nil on 204. body, when non-nil, is sent as JSON.
func (c *Client) Call(ctx context.Context, capability Capability, body any) ([]byte, error) {
	ep, ok := Lookup(capability)
	if !ok {
		return nil, fmt.Errorf("unknown capability %q", capability)
	}
	return c.do(ctx, capability, ep, body)
}

func (c *Client) do(ctx context.Context, capability Capability, ep Endpoint, body any) ([]byte, error) {
	logger := c.logger.With(xslog.Capability(string(capability)))

	var reqBody io.Reader
	if body != nil {
		data, err := go_json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, ep.Method, c.baseURL+ep.Path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set(xhttp.ContentType, xhttp.ApplicationJSON)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.DebugContext(ctx, "gateway call failed",
			xslog.Method(ep.Method),
			xslog.Path(ep.Path),
			xslog.Error(err))
		return nil, &NetworkError{Capability: capability, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Capability: capability, Err: fmt.Errorf("reading response: %w", err)}
	}

	logger.DebugContext(ctx, "gateway call",
		xslog.UpstreamGroup(ep.Method, ep.Path, resp.StatusCode, len(data), time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{
			Capability: capability,
			StatusCode: resp.StatusCode,
			Body:       string(data),
		}
	}

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	if len(bytes.TrimSpace(data)) == 0 || !go_json.Valid(data) {
		return nil, &DecodeError{
			Capability: capability,
			StatusCode: resp.StatusCode,
			Body:       string(data),
		}
	}

	return data, nil
}

type meshTransport struct {
	base        http.RoundTripper
	tokenSource oauth2.TokenSource
}

var _ http.RoundTripper = (*meshTransport)(nil)

func (t *meshTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())

	if t.tokenSource != nil {
		token, err := t.tokenSource.Token()
		if err != nil {
			return nil, fmt.Errorf("getting credential: %w", err)
		}
		if token != nil && token.AccessToken != "" {
			req.Header.Set(xhttp.XAPIKey, token.AccessToken)
		}
	}

	req.Header.Set(xhttp.Accept, xhttp.ApplicationJSON)
	xhttp.SetRequestNoStore(req)

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, fmt.Errorf("round trip: %w", err)
	}
	return resp, nil
}
