package fetch

import (
	"net/http"
	"time"
)

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithTimeout bounds a single acquisition round trip.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithRendererURL enables screenshot capture through a headless
// renderer service. Empty leaves screenshots disabled.
func WithRendererURL(rendererURL string) Option {
	return func(c *Client) {
		c.rendererURL = rendererURL
	}
}

// WithMaxBodyBytes caps how much markup is read from a page.
func WithMaxBodyBytes(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxBodyBytes = n
		}
	}
}
