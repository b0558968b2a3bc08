// Package httpclient wraps net/http with the timeout, User-Agent and status
// handling shared by the archive and image adapters.
package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"nasa-poster/internal/domain"
)

const (
	// DefaultTimeout applies when New is given a non-positive timeout.
	DefaultTimeout = 60 * time.Second
	// DefaultUserAgent applies when New is given an empty User-Agent.
	DefaultUserAgent = "nasa-poster"

	// errorSnippetBytes bounds how much of an error body is kept in TransportError.Detail.
	errorSnippetBytes = 512
)

// Client performs GET requests with a configured User-Agent and timeout.
//
// Example:
//
//	client := httpclient.New(30*time.Second, "nasa-poster/1.0")
//	var listing feedDocument
//	err := client.GetJSON(ctx, "https://images-assets.nasa.gov/recent.json", &listing)
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// New creates a client. Zero values fall back to DefaultTimeout and DefaultUserAgent.
func New(timeout time.Duration, userAgent string) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  userAgent,
	}
}

// HTTPClient exposes the underlying client for adapters that build their own requests.
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// UserAgent returns the configured User-Agent header value.
func (c *Client) UserAgent() string {
	return c.userAgent
}

// Get performs a GET request and returns the response when the status is 2xx.
// The caller must close the body. Any failure is a *domain.TransportError.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &domain.TransportError{Op: "GET", URL: url, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.TransportError{Op: "GET", URL: url, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, &domain.TransportError{
			Op:         "GET",
			URL:        url,
			StatusCode: resp.StatusCode,
			Detail:     readSnippet(resp.Body),
		}
	}

	return resp, nil
}

// GetJSON performs a GET request and decodes the JSON body into v.
func (c *Client) GetJSON(ctx context.Context, url string, v any) error {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return &domain.TransportError{
			Op:         "GET",
			URL:        url,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("decode json: %w", err),
		}
	}
	return nil
}

// readSnippet returns at most the first 512 bytes of r as a string.
func readSnippet(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, errorSnippetBytes))
	return string(b)
}
