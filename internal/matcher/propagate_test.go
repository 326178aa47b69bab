package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/matcharr/internal/library"
)

func propagateFrom(t *testing.T, store *library.Store, src *library.Release) int {
	t.Helper()
	tx, err := store.Begin()
	require.NoError(t, err)
	writes, err := propagate(tx, src)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())
	return writes
}

func TestPropagateByName(t *testing.T) {
	store := setupStore(t)

	src := addTestRelease(t, store, &library.Release{
		GUID: "src", Title: "t1", ShowName: "Dark Winds", CleanTitle: "dark winds",
		Identity: library.Identity{TVDBID: ptr(int64(392276)), IMDBID: ptr("tt13145534")},
	})
	sib := addTestRelease(t, store, &library.Release{
		GUID: "sib", Title: "t2", ShowName: "Dark Winds", CleanTitle: "dark winds",
	})
	other := addTestRelease(t, store, &library.Release{
		GUID: "other", Title: "t3", ShowName: "Silo", CleanTitle: "silo",
	})

	writes := propagateFrom(t, store, src)
	assert.Equal(t, 1, writes)

	got, err := store.GetRelease(sib.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Identity.TVDBID)
	assert.Equal(t, int64(392276), *got.Identity.TVDBID)

	untouched, err := store.GetRelease(other.ID)
	require.NoError(t, err)
	assert.False(t, untouched.Identity.Resolved())
}

func TestPropagateByNameContainment(t *testing.T) {
	store := setupStore(t)

	src := addTestRelease(t, store, &library.Release{
		GUID: "src", Title: "t1", CleanTitle: "dark winds",
		Identity: library.Identity{TVDBID: ptr(int64(392276))},
	})
	contained := addTestRelease(t, store, &library.Release{
		GUID: "contained", Title: "t2", CleanTitle: "dark winds complete",
	})
	// Too short for containment matching; must stay untouched.
	short := addTestRelease(t, store, &library.Release{
		GUID: "short", Title: "t3", CleanTitle: "win",
	})

	writes := propagateFrom(t, store, src)
	assert.Equal(t, 1, writes)

	got, err := store.GetRelease(contained.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Identity.TVDBID)

	untouched, err := store.GetRelease(short.ID)
	require.NoError(t, err)
	assert.Nil(t, untouched.Identity.TVDBID)
}

func TestPropagateBySharedID(t *testing.T) {
	store := setupStore(t)

	src := addTestRelease(t, store, &library.Release{
		GUID: "src", Title: "t1", CleanTitle: "dark winds",
		Identity: library.Identity{TVDBID: ptr(int64(392276)), IMDBID: ptr("tt13145534")},
	})
	// Different name but same TVDB ID (e.g. an alternate feed title).
	sib := addTestRelease(t, store, &library.Release{
		GUID: "sib", Title: "t2", CleanTitle: "dw navajo police drama",
		Identity: library.Identity{TVDBID: ptr(int64(392276))},
	})

	writes := propagateFrom(t, store, src)
	assert.Equal(t, 1, writes)

	got, err := store.GetRelease(sib.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Identity.IMDBID)
	assert.Equal(t, "tt13145534", *got.Identity.IMDBID)
}

func TestPropagateRespectsManualFlags(t *testing.T) {
	store := setupStore(t)

	src := addTestRelease(t, store, &library.Release{
		GUID: "src", Title: "t1", CleanTitle: "dark winds",
		Identity: library.Identity{TVDBID: ptr(int64(392276)), IMDBID: ptr("tt13145534")},
	})
	sib := addTestRelease(t, store, &library.Release{
		GUID: "sib", Title: "t2", CleanTitle: "dark winds",
		Identity:     library.Identity{TVDBID: ptr(int64(111))},
		TVDBIDManual: true,
	})

	writes := propagateFrom(t, store, src)
	assert.Equal(t, 1, writes)

	got, err := store.GetRelease(sib.ID)
	require.NoError(t, err)
	// Manually pinned field kept its value; the unflagged field was filled.
	assert.Equal(t, int64(111), *got.Identity.TVDBID)
	require.NotNil(t, got.Identity.IMDBID)
	assert.Equal(t, "tt13145534", *got.Identity.IMDBID)
}

func TestPropagateIdempotent(t *testing.T) {
	store := setupStore(t)

	src := addTestRelease(t, store, &library.Release{
		GUID: "src", Title: "t1", CleanTitle: "dark winds",
		Identity: library.Identity{TVDBID: ptr(int64(392276))},
	})
	addTestRelease(t, store, &library.Release{
		GUID: "sib", Title: "t2", CleanTitle: "dark winds",
	})

	assert.Equal(t, 1, propagateFrom(t, store, src))
	assert.Equal(t, 0, propagateFrom(t, store, src))
}
