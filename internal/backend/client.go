// Package backend implements the HTTP contract with the exoplanet
// model-serving backend: plot URL construction, light-curve retrieval,
// and prediction scoring.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/exodash/exodash/internal/exoplanet"
)

// DefaultTimeout bounds every backend request so a hung call surfaces as an
// ordinary failure instead of pinning a loading indicator forever.
const DefaultTimeout = 30 * time.Second

// Client talks to the exoplanet backend over plain unauthenticated HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    string
	testRoutes bool
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithTestRoutes switches the client to the backend's synthetic-data routes
// (/api/plot-test, /api/lc-test) instead of the per-target production routes.
func WithTestRoutes(enabled bool) Option {
	return func(c *Client) {
		c.testRoutes = enabled
	}
}

// NewClient creates a backend client rooted at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PredictRequest is the JSON body for the scoring endpoint.
type PredictRequest struct {
	Target    string            `json:"target"`
	Mission   exoplanet.Mission `json:"mission"`
	Author    string            `json:"author,omitempty"`
	Threshold *float64          `json:"threshold,omitempty"`
}

// PlotURL deterministically builds the URL for the backend-rendered plot.
// It performs no I/O. An empty author is omitted from the query entirely.
func (c *Client) PlotURL(q exoplanet.Query) string {
	params := url.Values{}
	params.Set("window_length", strconv.Itoa(exoplanet.ClampWindowLength(q.WindowLength)))
	if author := q.EffectiveAuthor(); author != "" {
		params.Set("author", author)
	}

	if c.testRoutes {
		return c.baseURL + "/api/plot-test?" + params.Encode()
	}
	params.Set("mission", string(q.Mission))
	return c.baseURL + "/api/plot/" + url.PathEscape(q.Target) + "?" + params.Encode()
}

// FetchLightCurve retrieves the raw and flattened series for a query.
func (c *Client) FetchLightCurve(ctx context.Context, q exoplanet.Query) (exoplanet.LightCurve, error) {
	if err := q.Validate(); err != nil {
		return exoplanet.LightCurve{}, err
	}

	params := url.Values{}
	params.Set("mission", string(q.Mission))
	params.Set("window_length", strconv.Itoa(exoplanet.ClampWindowLength(q.WindowLength)))
	if author := q.EffectiveAuthor(); author != "" {
		params.Set("author", author)
	}

	path := "/api/lc/" + url.PathEscape(q.Target)
	if c.testRoutes {
		path = "/api/lc-test"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return exoplanet.LightCurve{}, fmt.Errorf("failed to create request: %w", err)
	}

	slog.Debug("Fetching light curve",
		"target", q.Target,
		"mission", q.Mission,
		"window_length", q.WindowLength)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return exoplanet.LightCurve{}, fmt.Errorf("failed to fetch light curve: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkStatus(resp); err != nil {
		return exoplanet.LightCurve{}, err
	}

	var lc exoplanet.LightCurve
	if err := json.NewDecoder(resp.Body).Decode(&lc); err != nil {
		return exoplanet.LightCurve{}, fmt.Errorf("failed to decode light curve: %w", err)
	}
	return lc, nil
}

// Predict submits a target for scoring and returns the model's result.
func (c *Client) Predict(ctx context.Context, q exoplanet.Query, threshold *float64) (exoplanet.PredictionResult, error) {
	if err := q.Validate(); err != nil {
		return exoplanet.PredictionResult{}, err
	}

	body, err := json.Marshal(PredictRequest{
		Target:    q.Target,
		Mission:   q.Mission,
		Author:    q.EffectiveAuthor(),
		Threshold: threshold,
	})
	if err != nil {
		return exoplanet.PredictionResult{}, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/predict", bytes.NewReader(body))
	if err != nil {
		return exoplanet.PredictionResult{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	slog.Debug("Requesting prediction", "target", q.Target, "mission", q.Mission)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return exoplanet.PredictionResult{}, fmt.Errorf("failed to request prediction: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkStatus(resp); err != nil {
		return exoplanet.PredictionResult{}, err
	}

	var result exoplanet.PredictionResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return exoplanet.PredictionResult{}, fmt.Errorf("failed to decode prediction: %w", err)
	}
	return result, nil
}

// FetchPlot downloads the rendered plot image for a query.
func (c *Client) FetchPlot(ctx context.Context, q exoplanet.Query) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.PlotURL(q), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch plot: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read plot image: %w", err)
	}
	return data, nil
}

// Health pings the backend health endpoint.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach backend: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	return checkStatus(resp)
}

// checkStatus turns a non-2xx response into an error carrying the backend's
// body text verbatim, which the dashboard surfaces as-is.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(resp.Body)
	if text := strings.TrimSpace(string(body)); text != "" {
		return errors.New(text)
	}
	return fmt.Errorf("backend returned %s", resp.Status)
}
