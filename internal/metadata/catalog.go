package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/vmunix/matcharr/internal/tmdb"
	"github.com/vmunix/matcharr/pkg/tvdb"
)

const (
	searchTTL = time.Hour
	seriesTTL = 7 * 24 * time.Hour
	movieTTL  = 7 * 24 * time.Hour
)

const (
	keyPrefixShowSearch  = "tvdb:search:"
	keyPrefixSeries      = "tvdb:series:"
	keyPrefixMovieSearch = "tmdb:search:"
	keyPrefixMovie       = "tmdb:movie:"
	keyPrefixFind        = "tmdb:find:"
)

// ShowCatalog is the TVDB surface being cached.
type ShowCatalog interface {
	Search(ctx context.Context, query string) ([]tvdb.SearchResult, error)
	GetSeriesExtended(ctx context.Context, id int64) (*tvdb.SeriesExtended, error)
}

// MovieCatalog is the TMDB surface being cached.
type MovieCatalog interface {
	GetMovie(ctx context.Context, tmdbID int64) (*tmdb.Movie, error)
	SearchMovies(ctx context.Context, title string, year int) ([]tmdb.MovieResult, error)
	FindByIMDB(ctx context.Context, imdbID string) (*tmdb.MovieResult, error)
}

// CachedShows wraps a show catalog with persistent response caching.
// Errors are never cached; a failed lookup retries on the next pass.
type CachedShows struct {
	inner ShowCatalog
	cache *Cache
	log   *slog.Logger
}

// NewCachedShows creates a caching wrapper around a show catalog.
func NewCachedShows(inner ShowCatalog, cache *Cache, log *slog.Logger) *CachedShows {
	if log == nil {
		log = slog.Default()
	}
	return &CachedShows{inner: inner, cache: cache, log: log.With("component", "metadata")}
}

// Search searches series by name, serving repeated queries from cache.
func (s *CachedShows) Search(ctx context.Context, query string) ([]tvdb.SearchResult, error) {
	key := keyPrefixShowSearch + query
	var cached []tvdb.SearchResult
	if s.fromCache(ctx, key, &cached) {
		return cached, nil
	}

	results, err := s.inner.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	s.toCache(ctx, key, results, searchTTL)
	return results, nil
}

// GetSeriesExtended fetches extended series metadata, cached for a week.
func (s *CachedShows) GetSeriesExtended(ctx context.Context, id int64) (*tvdb.SeriesExtended, error) {
	key := fmt.Sprintf("%s%d", keyPrefixSeries, id)
	var cached tvdb.SeriesExtended
	if s.fromCache(ctx, key, &cached) {
		return &cached, nil
	}

	series, err := s.inner.GetSeriesExtended(ctx, id)
	if err != nil {
		return nil, err
	}
	s.toCache(ctx, key, series, seriesTTL)
	return series, nil
}

func (s *CachedShows) fromCache(ctx context.Context, key string, out any) bool {
	return readCached(ctx, s.cache, s.log, key, out)
}

func (s *CachedShows) toCache(ctx context.Context, key string, v any, ttl time.Duration) {
	writeCached(ctx, s.cache, s.log, key, v, ttl)
}

// CachedMovies wraps a movie catalog with persistent response caching.
type CachedMovies struct {
	inner MovieCatalog
	cache *Cache
	log   *slog.Logger
}

// NewCachedMovies creates a caching wrapper around a movie catalog.
func NewCachedMovies(inner MovieCatalog, cache *Cache, log *slog.Logger) *CachedMovies {
	if log == nil {
		log = slog.Default()
	}
	return &CachedMovies{inner: inner, cache: cache, log: log.With("component", "metadata")}
}

// GetMovie fetches movie metadata by TMDB ID, cached for a week.
func (m *CachedMovies) GetMovie(ctx context.Context, tmdbID int64) (*tmdb.Movie, error) {
	key := fmt.Sprintf("%s%d", keyPrefixMovie, tmdbID)
	var cached tmdb.Movie
	if readCached(ctx, m.cache, m.log, key, &cached) {
		return &cached, nil
	}

	movie, err := m.inner.GetMovie(ctx, tmdbID)
	if err != nil {
		return nil, err
	}
	writeCached(ctx, m.cache, m.log, key, movie, movieTTL)
	return movie, nil
}

// SearchMovies searches movies by title and year, serving repeats from cache.
func (m *CachedMovies) SearchMovies(ctx context.Context, title string, year int) ([]tmdb.MovieResult, error) {
	key := fmt.Sprintf("%s%s:%d", keyPrefixMovieSearch, title, year)
	var cached []tmdb.MovieResult
	if readCached(ctx, m.cache, m.log, key, &cached) {
		return cached, nil
	}

	results, err := m.inner.SearchMovies(ctx, title, year)
	if err != nil {
		return nil, err
	}
	writeCached(ctx, m.cache, m.log, key, results, searchTTL)
	return results, nil
}

// FindByIMDB resolves a TMDB movie from an IMDB ID, cached for a week.
// Not-found results are not cached so a later TMDB link is picked up.
func (m *CachedMovies) FindByIMDB(ctx context.Context, imdbID string) (*tmdb.MovieResult, error) {
	key := keyPrefixFind + imdbID
	var cached tmdb.MovieResult
	if readCached(ctx, m.cache, m.log, key, &cached) {
		return &cached, nil
	}

	result, err := m.inner.FindByIMDB(ctx, imdbID)
	if err != nil {
		return nil, err
	}
	writeCached(ctx, m.cache, m.log, key, result, movieTTL)
	return result, nil
}

// readCached loads and unmarshals a cache entry. A corrupt entry counts as
// a miss.
func readCached(ctx context.Context, cache *Cache, log *slog.Logger, key string, out any) bool {
	data, ok := cache.Get(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		log.Warn("discarding corrupt cache entry", "key", key, "error", err)
		return false
	}
	log.Debug("cache hit", "key", key)
	return true
}

// writeCached stores a response. Cache failures are logged, never fatal.
func writeCached(ctx context.Context, cache *Cache, log *slog.Logger, key string, v any, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Warn("failed to marshal for cache", "key", key, "error", err)
		return
	}
	if err := cache.Set(ctx, key, data, ttl); err != nil {
		log.Warn("failed to cache response", "key", key, "error", err)
	}
}
