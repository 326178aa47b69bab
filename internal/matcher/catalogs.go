// Package matcher resolves releases to external catalog identities and
// propagates resolved identities to sibling releases.
package matcher

import (
	"context"

	"github.com/vmunix/matcharr/internal/tmdb"
	"github.com/vmunix/matcharr/pkg/tvdb"
)

//go:generate mockgen -source=catalogs.go -destination=mocks/catalogs.go -package=mocks

// TVDBCatalog is the primary catalog for TV shows.
type TVDBCatalog interface {
	Search(ctx context.Context, query string) ([]tvdb.SearchResult, error)
	GetSeriesExtended(ctx context.Context, id int64) (*tvdb.SeriesExtended, error)
}

// MovieCatalog is the primary catalog for movies.
type MovieCatalog interface {
	GetMovie(ctx context.Context, tmdbID int64) (*tmdb.Movie, error)
	SearchMovies(ctx context.Context, title string, year int) ([]tmdb.MovieResult, error)
	FindByIMDB(ctx context.Context, imdbID string) (*tmdb.MovieResult, error)
}

// IMDBLookup resolves a title to an IMDB ID.
type IMDBLookup interface {
	LookupIMDBID(ctx context.Context, title string, year int) (string, error)
}

// WebSearcher is the last-resort IMDB ID source when dedicated lookups fail.
type WebSearcher interface {
	SearchIMDBID(ctx context.Context, query string) (string, error)
}
