// Package library persists release records, their resolved identities and
// the blacklist of removed GUIDs.
package library

import (
	"strings"
	"time"
)

// MediaType distinguishes movie releases from TV releases.
type MediaType string

const (
	MediaTypeMovie MediaType = "movie"
	MediaTypeTV    MediaType = "tv"
)

// Identity is the set of external catalog IDs resolved for a release.
// Any single non-nil value makes the identity resolved. Each field carries
// a manual flag on the owning Release; a manually set field must never be
// overwritten by automated resolution.
type Identity struct {
	TVDBID *int64
	TMDBID *int64
	IMDBID *string
}

// Resolved reports whether at least one catalog ID is known.
func (i Identity) Resolved() bool {
	return i.TVDBID != nil || i.TMDBID != nil || i.IMDBID != nil
}

// Release is one RSS feed item tracked through matching and scoring.
type Release struct {
	ID         int64
	GUID       string // stable feed identifier, unique
	Title      string // raw release name
	ShowName   string // display title after splitting/cleaning
	CleanTitle string // normalized form used for sibling matching
	MediaType  MediaType
	Season     int // 0 for movies and unknown seasons
	Year       int

	Identity     Identity
	TVDBIDManual bool
	TMDBIDManual bool
	IMDBIDManual bool

	// Parsed technical attributes, stored denormalized for listing and
	// re-scoring without re-parsing.
	Resolution string
	Codec      string
	SourceTag  string
	Audio      string
	SizeMB     float64
	AudioLangs []string

	Status         Status
	ExistingScore  *int     // score of the matching library holding, if any
	ExistingSizeMB *float64 // size of the matching library holding, if any
	NewScore       int

	PublishedAt   time.Time
	LastCheckedAt time.Time
	AddedAt       time.Time
	UpdatedAt     time.Time
}

// joinLangs flattens language codes for storage.
func joinLangs(langs []string) string {
	return strings.Join(langs, ",")
}

func splitLangs(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
