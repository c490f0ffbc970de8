// Package covers scrapes issue cover images from the comics.org website.
package covers

import (
	"net/http"
	"strings"
	"time"

	"github.com/lepinkainen/gcdtalker/internal/ratelimit"
)

const (
	defaultBaseURL  = "https://www.comics.org/"
	defaultTimeout  = 10 * time.Second
	defaultRequests = 10
	defaultWindow   = 10 * time.Second
	defaultMaxWidth = 1000
)

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client fetches cover pages and extracts image URLs.
type Client struct {
	baseURL     string
	httpClient  HTTPDoer
	rateLimiter *ratelimit.Limiter
	browser     PageFetcher
}

// NewClient creates a new cover client.
func NewClient(opts ...Option) *Client {
	client := &Client{
		baseURL:     defaultBaseURL,
		httpClient:  &http.Client{Timeout: defaultTimeout},
		rateLimiter: ratelimit.NewWindow("GCD covers", defaultRequests, defaultWindow),
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c HTTPDoer) Option {
	return func(client *Client) {
		if c != nil {
			client.httpClient = c
		}
	}
}

// WithTimeout replaces the HTTP client with one using the given timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(client *Client) {
		if timeout > 0 {
			client.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// WithBaseURL sets the website root, e.g. "https://www.comics.org/".
func WithBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.baseURL = strings.TrimSuffix(base, "/") + "/"
		}
	}
}

// WithRateLimiter sets a custom rate limiter for the client.
func WithRateLimiter(limiter *ratelimit.Limiter) Option {
	return func(client *Client) {
		if limiter != nil {
			client.rateLimiter = limiter
		}
	}
}

// WithBrowserFallback retries challenge pages through a browser.
func WithBrowserFallback(f PageFetcher) Option {
	return func(client *Client) {
		client.browser = f
	}
}

// BaseURL returns the website root the client scrapes.
func (c *Client) BaseURL() string {
	return c.baseURL
}
