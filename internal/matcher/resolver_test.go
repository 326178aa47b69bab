package matcher

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vmunix/matcharr/internal/library"
	"github.com/vmunix/matcharr/internal/matcher/mocks"
	"github.com/vmunix/matcharr/internal/tmdb"
	"github.com/vmunix/matcharr/pkg/tvdb"
)

func newTestResolver(store *library.Store, cfg ResolverConfig) *Resolver {
	cfg.Store = store
	cfg.Pacer = fastPacer()
	cfg.Logger = testLogger()
	return NewResolver(cfg)
}

func addTestRelease(t *testing.T, store *library.Store, r *library.Release) *library.Release {
	t.Helper()
	if r.MediaType == "" {
		r.MediaType = library.MediaTypeTV
	}
	require.NoError(t, store.AddRelease(r))
	return r
}

func TestRunPassResolvesShow(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := setupStore(t)
	shows := mocks.NewMockTVDBCatalog(ctrl)

	r := addTestRelease(t, store, &library.Release{
		GUID:     "guid-1",
		Title:    "Dark.Winds.S01E01.1080p.WEB-DL",
		ShowName: "Dark Winds",
		Season:   1,
		Year:     2022,
	})

	shows.EXPECT().
		Search(gomock.Any(), "Dark Winds").
		Return([]tvdb.SearchResult{
			{ID: 100, Name: "Dark Matter", Year: 2015},
			{ID: 392276, Name: "Dark Winds", Year: 2022},
		}, nil)
	shows.EXPECT().
		GetSeriesExtended(gomock.Any(), int64(392276)).
		Return(&tvdb.SeriesExtended{
			Series:    tvdb.Series{ID: 392276, Name: "Dark Winds", Year: 2022},
			RemoteIDs: tvdb.RemoteIDs{IMDBID: "tt13145534", TMDBID: 119315},
		}, nil)

	resolver := newTestResolver(store, ResolverConfig{Shows: shows})
	stats, err := resolver.RunPass(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Queued)
	assert.Equal(t, 1, stats.Resolved)

	got, err := store.GetRelease(r.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Identity.TVDBID)
	assert.Equal(t, int64(392276), *got.Identity.TVDBID)
	require.NotNil(t, got.Identity.TMDBID)
	assert.Equal(t, int64(119315), *got.Identity.TMDBID)
	require.NotNil(t, got.Identity.IMDBID)
	assert.Equal(t, "tt13145534", *got.Identity.IMDBID)
}

// A candidate below the similarity floor must be rejected outright, never
// accepted as the least-bad match.
func TestRunPassRejectsBelowSimilarityFloor(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := setupStore(t)
	shows := mocks.NewMockTVDBCatalog(ctrl)

	r := addTestRelease(t, store, &library.Release{
		GUID:     "guid-azad",
		Title:    "Azad.S01.1080p.WEB-DL",
		ShowName: "Azad",
		Season:   1,
	})

	shows.EXPECT().
		Search(gomock.Any(), "Azad").
		Return([]tvdb.SearchResult{
			{ID: 255822, Name: "Le Mille E Una Notte", Year: 2012},
		}, nil)

	resolver := newTestResolver(store, ResolverConfig{Shows: shows})
	stats, err := resolver.RunPass(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Resolved)
	assert.Equal(t, 1, stats.Skipped)

	got, err := store.GetRelease(r.ID)
	require.NoError(t, err)
	assert.False(t, got.Identity.Resolved())
}

func TestRunPassAlreadyRunning(t *testing.T) {
	store := setupStore(t)
	lease := NewMemoryLease()
	held, err := lease.TryAcquire()
	require.NoError(t, err)
	require.True(t, held)

	resolver := newTestResolver(store, ResolverConfig{Lease: lease})
	_, err = resolver.RunPass(context.Background())
	assert.ErrorIs(t, err, ErrAlreadyRunning)
}

// A manually flagged ID is never overwritten by automation, but unflagged
// fields on the same release may still be filled.
func TestRunPassManualFlagInvariant(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := setupStore(t)
	movies := mocks.NewMockMovieCatalog(ctrl)

	r := addTestRelease(t, store, &library.Release{
		GUID:         "guid-manual",
		Title:        "Heat.1995.2160p.BluRay.x265",
		ShowName:     "Heat",
		MediaType:    library.MediaTypeMovie,
		Year:         1995,
		Identity:     library.Identity{TMDBID: ptr(int64(949))},
		TMDBIDManual: true,
	})

	movies.EXPECT().
		GetMovie(gomock.Any(), int64(949)).
		Return(&tmdb.Movie{ID: 949, IMDBID: "tt0113277", Title: "Heat", ReleaseDate: "1995-12-15"}, nil).
		AnyTimes()

	resolver := newTestResolver(store, ResolverConfig{Movies: movies})
	stats, err := resolver.RunPass(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Resolved)

	got, err := store.GetRelease(r.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Identity.TMDBID)
	assert.Equal(t, int64(949), *got.Identity.TMDBID)
	assert.True(t, got.TMDBIDManual)
	require.NotNil(t, got.Identity.IMDBID)
	assert.Equal(t, "tt0113277", *got.Identity.IMDBID)
}

// A year disagreement between the release and the top search candidate
// rejects the match; there is no silent near-year fallback.
func TestRunPassRejectsMovieOnYearMismatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := setupStore(t)
	movies := mocks.NewMockMovieCatalog(ctrl)

	r := addTestRelease(t, store, &library.Release{
		GUID:      "guid-heat",
		Title:     "Heat.2025.1080p.WEB-DL",
		ShowName:  "Heat",
		MediaType: library.MediaTypeMovie,
		Year:      2025,
	})

	// Both the primary and the normalized-title retry surface the 1995 film.
	movies.EXPECT().
		SearchMovies(gomock.Any(), gomock.Any(), 2025).
		Return([]tmdb.MovieResult{
			{ID: 949, Title: "Heat", ReleaseDate: "1995-12-15"},
		}, nil).
		Times(2)

	resolver := newTestResolver(store, ResolverConfig{Movies: movies})
	stats, err := resolver.RunPass(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Resolved)

	got, err := store.GetRelease(r.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Identity.TMDBID)
}

// A failing catalog is "no candidate", never a pass abort.
func TestRunPassCatalogFailureNonFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := setupStore(t)
	shows := mocks.NewMockTVDBCatalog(ctrl)

	addTestRelease(t, store, &library.Release{
		GUID:     "guid-err",
		Title:    "Some.Show.S01.720p.HDTV",
		ShowName: "Some Show",
	})

	shows.EXPECT().
		Search(gomock.Any(), "Some Show").
		Return(nil, errors.New("connection refused"))

	resolver := newTestResolver(store, ResolverConfig{Shows: shows})
	stats, err := resolver.RunPass(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Skipped)
}

// An IMDB ID found via the lookup chain derives the TMDB ID through the
// find-by-external-ID endpoint on the next pass over the same item.
func TestRunPassLooksUpIMDBWithWebFallback(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := setupStore(t)
	movies := mocks.NewMockMovieCatalog(ctrl)
	imdb := mocks.NewMockIMDBLookup(ctrl)
	web := mocks.NewMockWebSearcher(ctrl)

	r := addTestRelease(t, store, &library.Release{
		GUID:      "guid-web",
		Title:     "Obscure.Film.2024.1080p.WEB-DL",
		ShowName:  "Obscure Film",
		MediaType: library.MediaTypeMovie,
		Year:      2024,
	})

	imdb.EXPECT().
		LookupIMDBID(gomock.Any(), "Obscure Film", 2024).
		Return("", errors.New("not found"))
	web.EXPECT().
		SearchIMDBID(gomock.Any(), "Obscure Film 2024").
		Return("tt9999999", nil)
	movies.EXPECT().
		SearchMovies(gomock.Any(), gomock.Any(), 2024).
		Return(nil, nil).
		Times(2)
	movies.EXPECT().
		GetMovie(gomock.Any(), gomock.Any()).
		Return(nil, tmdb.ErrNotFound).
		AnyTimes()
	movies.EXPECT().
		FindByIMDB(gomock.Any(), "tt9999999").
		Return(nil, tmdb.ErrNotFound).
		AnyTimes()

	resolver := newTestResolver(store, ResolverConfig{Movies: movies, IMDB: imdb, Web: web})
	stats, err := resolver.RunPass(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Resolved)

	got, err := store.GetRelease(r.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Identity.IMDBID)
	assert.Equal(t, "tt9999999", *got.Identity.IMDBID)
}

func TestResolveManualPropagatesToSiblings(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := setupStore(t)
	shows := mocks.NewMockTVDBCatalog(ctrl)

	r1 := addTestRelease(t, store, &library.Release{
		GUID:       "guid-s01",
		Title:      "Dark.Winds.S01.1080p.WEB-DL",
		ShowName:   "Dark Winds",
		CleanTitle: "dark winds",
		Season:     1,
	})
	r2 := addTestRelease(t, store, &library.Release{
		GUID:       "guid-s02",
		Title:      "Dark.Winds.S02.1080p.WEB-DL",
		ShowName:   "Dark Winds",
		CleanTitle: "dark winds",
		Season:     2,
	})

	shows.EXPECT().
		GetSeriesExtended(gomock.Any(), int64(392276)).
		Return(&tvdb.SeriesExtended{
			Series:    tvdb.Series{ID: 392276, Name: "Dark Winds", Year: 2022},
			RemoteIDs: tvdb.RemoteIDs{IMDBID: "tt13145534", TMDBID: 119315},
		}, nil)

	resolver := newTestResolver(store, ResolverConfig{Shows: shows})
	resolved, err := resolver.ResolveManual(context.Background(), r1.ID, ManualMatch{TVDBID: ptr(int64(392276))})
	require.NoError(t, err)
	assert.True(t, resolved.TVDBIDManual)
	assert.Equal(t, 2022, resolved.Year)

	sibling, err := store.GetRelease(r2.ID)
	require.NoError(t, err)
	require.NotNil(t, sibling.Identity.TVDBID)
	assert.Equal(t, int64(392276), *sibling.Identity.TVDBID)
	require.NotNil(t, sibling.Identity.IMDBID)
	assert.Equal(t, "tt13145534", *sibling.Identity.IMDBID)
	// Propagated fields are not manual on the sibling.
	assert.False(t, sibling.TVDBIDManual)
}

// Manual matches bypass the pass lease entirely.
func TestResolveManualBypassesLease(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := setupStore(t)
	shows := mocks.NewMockTVDBCatalog(ctrl)

	r := addTestRelease(t, store, &library.Release{
		GUID:     "guid-lease",
		Title:    "Dark.Winds.S01.1080p.WEB-DL",
		ShowName: "Dark Winds",
	})

	shows.EXPECT().
		GetSeriesExtended(gomock.Any(), int64(392276)).
		Return(&tvdb.SeriesExtended{
			Series: tvdb.Series{ID: 392276, Name: "Dark Winds", Year: 2022},
		}, nil)

	lease := NewMemoryLease()
	held, err := lease.TryAcquire()
	require.NoError(t, err)
	require.True(t, held)

	resolver := newTestResolver(store, ResolverConfig{Shows: shows, Lease: lease})
	_, err = resolver.ResolveManual(context.Background(), r.ID, ManualMatch{TVDBID: ptr(int64(392276))})
	require.NoError(t, err)
}
