package feed

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/vmunix/matcharr/internal/library"
)

//go:embed testdata/schema.sql
var testSchema string

func setupStore(t *testing.T) *library.Store {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(testSchema)
	require.NoError(t, err)
	return library.NewStore(db)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// staticFeed serves canned items without a network round trip.
type staticFeed struct {
	name  string
	items []Item
	err   error
}

func (f *staticFeed) Name() string { return f.name }

func (f *staticFeed) Fetch(ctx context.Context) ([]Item, error) {
	return f.items, f.err
}

func TestSyncAddsNewReleases(t *testing.T) {
	store := setupStore(t)
	feed := &staticFeed{name: "test", items: []Item{
		{GUID: "g1", Title: "Dark.Winds.S03E01.1080p.WEB-DL.DD+5.1.x265", Size: 2 << 30},
		{GUID: "g2", Title: "Heat.1995.2160p.BluRay.x265.4.5GB"},
	}}

	syncer := NewSyncer(store, []Fetcher{feed}, testLogger())
	stats, err := syncer.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Fetched)
	assert.Equal(t, 2, stats.Added)

	tv, err := store.GetByGUID("g1")
	require.NoError(t, err)
	assert.Equal(t, library.MediaTypeTV, tv.MediaType)
	assert.Equal(t, "Dark Winds", tv.ShowName)
	assert.Equal(t, 3, tv.Season)
	assert.Equal(t, "1080p", tv.Resolution)
	assert.Equal(t, "WEB-DL", tv.SourceTag)
	assert.Equal(t, "DDP 5.1", tv.Audio)
	assert.Equal(t, library.StatusNew, tv.Status)

	movie, err := store.GetByGUID("g2")
	require.NoError(t, err)
	assert.Equal(t, library.MediaTypeMovie, movie.MediaType)
	assert.Equal(t, 1995, movie.Year)
	assert.InDelta(t, 4.5*1024, movie.SizeMB, 0.01)
}

func TestSyncSkipsKnownGUIDs(t *testing.T) {
	store := setupStore(t)
	feed := &staticFeed{name: "test", items: []Item{
		{GUID: "g1", Title: "Dark.Winds.S03E01.1080p.WEB-DL"},
	}}

	syncer := NewSyncer(store, []Fetcher{feed}, testLogger())
	_, err := syncer.Sync(context.Background())
	require.NoError(t, err)

	stats, err := syncer.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Added)
	assert.Equal(t, 1, stats.Known)
}

func TestSyncSkipsBlacklistedGUIDs(t *testing.T) {
	store := setupStore(t)
	require.NoError(t, store.Blacklist("g1"))

	feed := &staticFeed{name: "test", items: []Item{
		{GUID: "g1", Title: "Dark.Winds.S03E01.1080p.WEB-DL"},
	}}

	syncer := NewSyncer(store, []Fetcher{feed}, testLogger())
	stats, err := syncer.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Added)
	assert.Equal(t, 1, stats.Blacklisted)

	_, err = store.GetByGUID("g1")
	assert.True(t, errors.Is(err, library.ErrNotFound))
}

func TestSyncContinuesPastFailingFeed(t *testing.T) {
	store := setupStore(t)
	broken := &staticFeed{name: "broken", err: errors.New("connection refused")}
	working := &staticFeed{name: "working", items: []Item{
		{GUID: "g1", Title: "Heat.1995.1080p.BluRay.x264"},
	}}

	syncer := NewSyncer(store, []Fetcher{broken, working}, testLogger())
	stats, err := syncer.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Added)
}
