// Package fetch acquires the raw evaluation inputs for a URL: the page
// markup over plain HTTP and, when a renderer endpoint is configured, a
// base64 screenshot from a headless-browser service.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/dakshpokar/UnifiedWebInsights/internal/domain/model"
	"github.com/dakshpokar/UnifiedWebInsights/pkg/metrics"
)

const (
	defaultTimeout      = 20 * time.Second
	defaultMaxBodyBytes = 10 << 20

	// Some sites serve bot-detection pages to default Go user agents,
	// so requests present as a desktop browser.
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
)

// Client acquires page snapshots.
type Client struct {
	httpClient   *http.Client
	rendererURL  string
	maxBodyBytes int64
}

// New creates an acquisition client.
func New(opts ...Option) *Client {
	c := &Client{
		httpClient:   &http.Client{Timeout: defaultTimeout},
		maxBodyBytes: defaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Acquire fetches the markup for rawURL and, if a renderer is
// configured, its rendered screenshot. A screenshot failure is not
// fatal: static analysis proceeds on markup alone.
func (c *Client) Acquire(ctx context.Context, rawURL string) (model.Snapshot, error) {
	start := time.Now()

	target, err := url.Parse(rawURL)
	if err != nil || target.Scheme == "" || target.Host == "" {
		metrics.RecordAcquisitionError()
		return model.Snapshot{}, fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		metrics.RecordAcquisitionError()
		return model.Snapshot{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordAcquisitionError()
		return model.Snapshot{}, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		metrics.RecordAcquisitionError()
		return model.Snapshot{}, fmt.Errorf("%w: status %d for %s", ErrBadStatus, resp.StatusCode, target)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodyBytes))
	if err != nil {
		metrics.RecordAcquisitionError()
		return model.Snapshot{}, fmt.Errorf("reading page body: %w", err)
	}

	snapshot := model.Snapshot{
		HTML:       string(body),
		FinalURL:   resp.Request.URL.String(),
		StatusCode: resp.StatusCode,
		FetchedAt:  time.Now().UTC(),
	}

	if c.rendererURL != "" {
		// Best effort only.
		snapshot.Screenshot, _ = c.captureScreenshot(ctx, target.String())
	}

	metrics.RecordAcquisitionLatency(time.Since(start).Seconds())
	return snapshot, nil
}

// captureScreenshot asks the headless-renderer service for a base64
// screenshot of the page.
func (c *Client) captureScreenshot(ctx context.Context, pageURL string) (string, error) {
	endpoint := c.rendererURL + "?url=" + url.QueryEscape(pageURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: renderer status %d", ErrBadStatus, resp.StatusCode)
	}

	var payload struct {
		Screenshot string `json:"screenshot"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}
	return payload.Screenshot, nil
}
