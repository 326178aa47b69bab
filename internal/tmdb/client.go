package tmdb

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

const defaultBaseURL = "https://api.themoviedb.org"
const defaultCacheTTL = 24 * time.Hour

// Sentinel errors for TMDB API responses.
var (
	ErrNotFound    = errors.New("movie not found")
	ErrRateLimited = errors.New("rate limited: too many requests")
)

// Client is a TMDB API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	cache      *movieCache
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithCacheTTL sets the cache TTL.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = newMovieCache(ttl)
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a new TMDB client.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		cache: newMovieCache(defaultCacheTTL),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		return fmt.Errorf("TMDB API error: %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// GetMovie fetches movie metadata by TMDB ID. Results are cached.
// The response includes the linked IMDB ID, which the resolver uses for
// cross-validation.
func (c *Client) GetMovie(ctx context.Context, tmdbID int64) (*Movie, error) {
	if movie, ok := c.cache.get(tmdbID); ok {
		return movie, nil
	}

	var movie Movie
	endpoint := fmt.Sprintf("/3/movie/%d?api_key=%s", tmdbID, c.apiKey)
	if err := c.get(ctx, endpoint, &movie); err != nil {
		return nil, err
	}

	c.cache.set(tmdbID, &movie)
	return &movie, nil
}

// SearchMovies searches movies by title, optionally narrowed by year.
func (c *Client) SearchMovies(ctx context.Context, title string, year int) ([]MovieResult, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("query", title)
	if year > 0 {
		params.Set("year", strconv.Itoa(year))
	}

	var searchResp searchResponse
	if err := c.get(ctx, "/3/search/movie?"+params.Encode(), &searchResp); err != nil {
		return nil, err
	}
	return searchResp.Results, nil
}

// FindByIMDB resolves a TMDB movie from an IMDB ID via the find endpoint.
// Returns ErrNotFound when TMDB has no movie linked to the ID.
func (c *Client) FindByIMDB(ctx context.Context, imdbID string) (*MovieResult, error) {
	endpoint := fmt.Sprintf("/3/find/%s?api_key=%s&external_source=imdb_id", url.PathEscape(imdbID), c.apiKey)

	var findResp findResponse
	if err := c.get(ctx, endpoint, &findResp); err != nil {
		return nil, err
	}
	if len(findResp.MovieResults) == 0 {
		return nil, ErrNotFound
	}
	return &findResp.MovieResults[0], nil
}
