// Package websearch extracts IMDB title IDs from general web search results.
// It is the fallback when dedicated title lookups fail.
package websearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"time"
)

// imdbTitleRe matches IMDB title URLs anywhere in a search response.
var imdbTitleRe = regexp.MustCompile(`imdb\.com/title/(tt\d{7,8})`)

// Sentinel errors for search responses.
var (
	ErrNoResult    = errors.New("no IMDB title in search results")
	ErrRateLimited = errors.New("rate limited: too many requests")
)

// Client queries a web search API and scans the raw response for IMDB
// title URLs.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a new web search client.
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SearchIMDBID searches the web for the query and returns the first IMDB
// title ID found anywhere in the result payload.
func (c *Client) SearchIMDBID(ctx context.Context, query string) (string, error) {
	params := url.Values{}
	params.Set("q", query+" imdb")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Subscription-Token", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("search API error: %s", resp.Status)
	}

	// The result URLs live at different depths depending on the provider;
	// scanning the raw payload is simpler and just as reliable for
	// extracting a title ID.
	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	m := imdbTitleRe.FindSubmatch(raw)
	if m == nil {
		return "", ErrNoResult
	}
	return string(m[1]), nil
}
