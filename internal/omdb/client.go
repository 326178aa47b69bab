// Package omdb provides a minimal OMDB API client used to resolve a title
// to an IMDB ID.
package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultBaseURL = "https://www.omdbapi.com"

// Sentinel errors for OMDB API responses.
var (
	ErrNotFound    = errors.New("title not found")
	ErrRateLimited = errors.New("rate limited: request limit reached")
)

// Client is an OMDB API client.
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

// NewClient creates a new OMDB client.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// titleResponse is the OMDB by-title response. OMDB signals errors inside a
// 200 body via Response=False.
type titleResponse struct {
	IMDBID   string `json:"imdbID"`
	Title    string `json:"Title"`
	Year     string `json:"Year"`
	Response string `json:"Response"`
	Error    string `json:"Error"`
}

// LookupIMDBID resolves a title (and optional year) to an IMDB ID.
func (c *Client) LookupIMDBID(ctx context.Context, title string, year int) (string, error) {
	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("t", title)
	if year > 0 {
		params.Set("y", strconv.Itoa(year))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		// OMDB returns 401 both for bad keys and exhausted daily quotas.
		return "", ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("OMDB API error: %s", resp.Status)
	}

	var tr titleResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if tr.Response != "True" || tr.IMDBID == "" {
		return "", ErrNotFound
	}
	return tr.IMDBID, nil
}
