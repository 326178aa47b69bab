package library

// ReleaseFilter selects releases for listing.
type ReleaseFilter struct {
	Status     *Status
	MediaType  *MediaType
	TVDBID     *int64
	TMDBID     *int64
	Unresolved bool // only releases with no identity at all
	Incomplete bool // releases missing at least one catalog ID
	Limit      int
	Offset     int
}
