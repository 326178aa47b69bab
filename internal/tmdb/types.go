// Package tmdb provides a client for The Movie Database API.
package tmdb

import "strconv"

// Movie represents TMDB movie metadata.
type Movie struct {
	ID          int64   `json:"id"`
	IMDBID      string  `json:"imdb_id,omitempty"` // e.g. "tt0133093"
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	ReleaseDate string  `json:"release_date"` // "2024-03-01"
	VoteAverage float64 `json:"vote_average"`
	VoteCount   int     `json:"vote_count"`
	Popularity  float64 `json:"popularity"`
	Runtime     int     `json:"runtime"` // minutes
}

// MovieResult is one entry from a search or find response.
type MovieResult struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	ReleaseDate string  `json:"release_date"`
	Popularity  float64 `json:"popularity"`
}

// Year extracts the year from ReleaseDate.
func (m *Movie) Year() int {
	return yearOf(m.ReleaseDate)
}

// Year extracts the year from ReleaseDate.
func (r *MovieResult) Year() int {
	return yearOf(r.ReleaseDate)
}

func yearOf(releaseDate string) int {
	if len(releaseDate) < 4 {
		return 0
	}
	year, err := strconv.Atoi(releaseDate[:4])
	if err != nil {
		return 0
	}
	return year
}

// searchResponse is the TMDB search/find API response shape.
type searchResponse struct {
	Results []MovieResult `json:"results"`
}

// findResponse is the TMDB find-by-external-ID response shape.
type findResponse struct {
	MovieResults []MovieResult `json:"movie_results"`
}
