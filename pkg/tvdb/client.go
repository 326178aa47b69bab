package tvdb

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

const defaultBaseURL = "https://api4.thetvdb.com/v4"

// Sentinel errors for TVDB API responses. ErrRateLimited is distinguishable
// so callers can pause instead of treating it as "no match".
var (
	ErrNotFound     = errors.New("series not found")
	ErrUnauthorized = errors.New("unauthorized: invalid or expired API key")
	ErrRateLimited  = errors.New("rate limited: too many requests")
)

// Client talks to the TVDB v4 API. Authentication is a JWT obtained from
// /login with the API key; the token is refreshed transparently when a
// request comes back 401.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger

	mu    sync.Mutex
	token string
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

// WithLogger sets a logger for debug output.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		c.log = log.With("component", "tvdb")
	}
}

// New creates a TVDB client. The first authenticated request triggers the
// login; New itself never touches the network.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// login exchanges the API key for a JWT and caches it.
func (c *Client) login(ctx context.Context) error {
	payload, err := json.Marshal(map[string]string{"apikey": c.apiKey})
	if err != nil {
		return fmt.Errorf("marshal login body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/login", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute login request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("login failed: %s", resp.Status)
	}

	var loginResp loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&loginResp); err != nil {
		return fmt.Errorf("decode login response: %w", err)
	}
	if loginResp.Data.Token == "" {
		return errors.New("login response missing token")
	}

	c.mu.Lock()
	c.token = loginResp.Data.Token
	c.mu.Unlock()

	c.debug("authenticated with TVDB")
	return nil
}

// get performs an authenticated GET. A 401 clears the cached token and the
// request is retried once after re-login.
func (c *Client) get(ctx context.Context, endpoint string) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		c.mu.Lock()
		token := c.token
		c.mu.Unlock()

		if token == "" {
			if err := c.login(ctx); err != nil {
				return nil, err
			}
			c.mu.Lock()
			token = c.token
			c.mu.Unlock()
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("execute request: %w", err)
		}

		if resp.StatusCode == http.StatusUnauthorized && attempt == 0 {
			resp.Body.Close()
			c.debug("token expired, refreshing")
			c.mu.Lock()
			c.token = ""
			c.mu.Unlock()
			continue
		}
		return resp, nil
	}
}

// Search searches for series by name.
func (c *Client) Search(ctx context.Context, query string) ([]SearchResult, error) {
	start := time.Now()

	resp, err := c.get(ctx, "/search?query="+url.QueryEscape(query)+"&type=series")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := statusError(resp); err != nil {
		return nil, err
	}

	var searchResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	results := make([]SearchResult, 0, len(searchResp.Data))
	for _, item := range searchResp.Data {
		tvdbID, _ := strconv.ParseInt(item.TVDBID, 10, 64)
		if tvdbID == 0 {
			// Some records only carry the ID inside objectID ("series-12345").
			if rest, ok := strings.CutPrefix(item.ObjectID, "series-"); ok {
				tvdbID, _ = strconv.ParseInt(rest, 10, 64)
			}
		}
		year, _ := strconv.Atoi(item.Year)

		results = append(results, SearchResult{
			ID:       tvdbID,
			Name:     item.Name,
			Year:     year,
			Status:   item.Status,
			Overview: item.Overview,
			Network:  item.Network,
		})
	}

	c.debug("search completed", "query", query, "results", len(results),
		"duration_ms", time.Since(start).Milliseconds())
	return results, nil
}

// GetSeriesExtended fetches the extended series record, including the
// external catalog IDs TVDB knows about. The wire-level remoteIds shapes
// are normalized here; callers never see raw field-name variants.
func (c *Client) GetSeriesExtended(ctx context.Context, id int64) (*SeriesExtended, error) {
	start := time.Now()

	resp, err := c.get(ctx, fmt.Sprintf("/series/%d/extended", id))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := statusError(resp); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.debug("series not found", "id", id)
		}
		return nil, err
	}

	var extResp seriesExtendedResponse
	if err := json.NewDecoder(resp.Body).Decode(&extResp); err != nil {
		return nil, fmt.Errorf("decode extended series response: %w", err)
	}

	// firstAired is "YYYY-MM-DD"; only the year matters here.
	var year int
	if len(extResp.Data.FirstAired) >= 4 {
		year, _ = strconv.Atoi(extResp.Data.FirstAired[:4])
	}

	series := &SeriesExtended{
		Series: Series{
			ID:       extResp.Data.ID,
			Name:     extResp.Data.Name,
			Year:     year,
			Status:   extResp.Data.Status.Name,
			Overview: extResp.Data.Overview,
		},
	}
	for _, rid := range extResp.Data.RemoteIDs {
		switch strings.ToLower(rid.Source) {
		case "imdb":
			series.RemoteIDs.IMDBID = rid.ID
		case "themoviedb.com", "themoviedb", "tmdb":
			series.RemoteIDs.TMDBID, _ = strconv.ParseInt(rid.ID, 10, 64)
		}
	}

	c.debug("fetched extended series", "id", id, "name", series.Name,
		"duration_ms", time.Since(start).Milliseconds())
	return series, nil
}

func (c *Client) debug(msg string, args ...any) {
	if c.log != nil {
		c.log.Debug(msg, args...)
	}
}

// statusError maps HTTP status codes to sentinel errors.
func statusError(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		return fmt.Errorf("TVDB API error: %s", resp.Status)
	}
}
