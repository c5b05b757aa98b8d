package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/couchcryptid/office-picker/internal/observability"
)

// maxBodyBytes caps how much of a response is read into memory.
const maxBodyBytes = 16 << 20

// Client talks to the allplace API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates an API client. timeout bounds each request.
func NewClient(baseURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		metrics: metrics,
		logger:  logger,
	}
}

// Source returns a hierarchy source that GETs path.
func (c *Client) Source(path string) *Source {
	return &Source{client: c, path: path}
}

// Binder returns a notification binder that POSTs to path.
func (c *Client) Binder(path string) *Binder {
	return &Binder{client: c, path: path}
}

// Source fetches a raw JSON body from a fixed API path.
type Source struct {
	client *Client
	path   string
}

func (s *Source) Fetch(ctx context.Context) ([]byte, error) {
	return s.client.get(ctx, s.path)
}

// Binder registers a push token for a facility on the notification backend.
type Binder struct {
	client *Client
	path   string
}

type registerRequest struct {
	OfficeID string `json:"officeId"`
	Token    string `json:"token"`
}

// BindToken sends the facility/token pair. Any non-2xx status is an error.
// The response body is not used.
func (b *Binder) BindToken(ctx context.Context, facilityID, token string) error {
	payload, err := json.Marshal(registerRequest{OfficeID: facilityID, Token: token})
	if err != nil {
		return fmt.Errorf("encode register request: %w", err)
	}
	_, err = b.client.do(ctx, http.MethodPost, b.path, payload)
	return err
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.APIDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("allplace API error: %s %s: status %d: %s", method, path, resp.StatusCode, snippet)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	c.logger.Debug("api request complete", "method", method, "path", path, "status", resp.StatusCode, "bytes", len(data))
	return data, nil
}
