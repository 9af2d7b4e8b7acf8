package funds

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// DefaultTimeout bounds a single fetch of the returns page
const DefaultTimeout = 10 * time.Second

// Client downloads and parses a returns table page
type Client struct {
	http *http.Client
}

// NewClient creates a client. A non-positive timeout selects DefaultTimeout.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{http: &http.Client{Timeout: timeout}}
}

// Fetch downloads url and parses its returns table
func (c *Client) Fetch(ctx context.Context, url string) ([]Fund, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "text/html")
	req.Header.Set("User-Agent", "sipcalc/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	return ParseReturnsTable(resp.Body)
}

// Source fetches one configured returns page
type Source struct {
	Client *Client
	URL    string
}

// Funds fetches and parses the configured page
func (s Source) Funds(ctx context.Context) ([]Fund, error) {
	return s.Client.Fetch(ctx, s.URL)
}
