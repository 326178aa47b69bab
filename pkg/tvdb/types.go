// Package tvdb provides a client for the TVDB API v4.
package tvdb

import "encoding/json"

// Series represents a TV series from TVDB.
type Series struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Year     int    `json:"year"` // extracted from firstAired
	Status   string `json:"status"`
	Overview string `json:"overview"`
}

// RemoteIDs are the external catalog IDs TVDB links to a series.
type RemoteIDs struct {
	IMDBID string `json:"imdb_id,omitempty"` // e.g. "tt0903747"
	TMDBID int64  `json:"tmdb_id,omitempty"`
}

// SeriesExtended is the extended series record including linked external IDs.
type SeriesExtended struct {
	Series
	RemoteIDs RemoteIDs `json:"remote_ids"`
}

// SearchResult represents a series search result.
type SearchResult struct {
	ID       int64  `json:"tvdb_id"`
	Name     string `json:"name"`
	Year     int    `json:"year"`
	Status   string `json:"status"`
	Overview string `json:"overview"`
	Network  string `json:"network"`
}

// loginResponse is the TVDB login API response.
type loginResponse struct {
	Status string `json:"status"`
	Data   struct {
		Token string `json:"token"`
	} `json:"data"`
}

// searchResponse is the TVDB search API response.
type searchResponse struct {
	Status string `json:"status"`
	Data   []struct {
		ObjectID string `json:"objectID"`
		Name     string `json:"name"`
		Year     string `json:"year"`
		Status   string `json:"status"`
		Overview string `json:"overview"`
		Network  string `json:"network"`
		TVDBID   string `json:"tvdb_id"`
	} `json:"data"`
}

// remoteID is one entry of the extended record's remoteIds list. Different
// TVDB API revisions have shipped the source field as "sourceName",
// "source_name" or "source"; the custom unmarshaller absorbs all three so
// callers only ever see the normalized RemoteIDs shape.
type remoteID struct {
	ID     string
	Source string
}

func (r *remoteID) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if v, ok := raw["id"]; ok {
		// The id itself arrives as a string or a number depending on source.
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			r.ID = s
		} else {
			var n json.Number
			if err := json.Unmarshal(v, &n); err == nil {
				r.ID = n.String()
			}
		}
	}

	for _, key := range []string{"sourceName", "source_name", "source"} {
		if v, ok := raw[key]; ok {
			var s string
			if err := json.Unmarshal(v, &s); err == nil && s != "" {
				r.Source = s
				break
			}
		}
	}

	return nil
}

// seriesExtendedResponse is the TVDB extended series API response.
type seriesExtendedResponse struct {
	Status string `json:"status"`
	Data   struct {
		ID         int64      `json:"id"`
		Name       string     `json:"name"`
		FirstAired string     `json:"firstAired"` // YYYY-MM-DD
		Overview   string     `json:"overview"`
		Status     struct {
			Name string `json:"name"`
		} `json:"status"`
		RemoteIDs []remoteID `json:"remoteIds"`
	} `json:"data"`
}
