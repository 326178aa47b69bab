package config

import "fmt"

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if !validLogLevels[c.Server.LogLevel] {
		errs = append(errs, fmt.Sprintf("server.log_level: must be one of debug, info, warn, error; got %q", c.Server.LogLevel))
	}

	if len(c.Feeds) == 0 {
		errs = append(errs, "feeds: at least one feed must be configured")
	}
	for i, feed := range c.Feeds {
		if feed.Name == "" {
			errs = append(errs, fmt.Sprintf("feeds[%d].name: required", i))
		}
		if feed.URL == "" {
			errs = append(errs, fmt.Sprintf("feeds[%d].url: required", i))
		}
	}

	if c.Catalogs.TVDB == nil && c.Catalogs.TMDB == nil {
		errs = append(errs, "catalogs: at least one of tvdb or tmdb must be configured")
	}
	if c.Catalogs.TVDB != nil && c.Catalogs.TVDB.APIKey == "" {
		errs = append(errs, "catalogs.tvdb.api_key: required when tvdb is configured")
	}
	if c.Catalogs.TMDB != nil && c.Catalogs.TMDB.APIKey == "" {
		errs = append(errs, "catalogs.tmdb.api_key: required when tmdb is configured")
	}
	if c.Catalogs.OMDB != nil && c.Catalogs.OMDB.APIKey == "" {
		errs = append(errs, "catalogs.omdb.api_key: required when omdb is configured")
	}
	if c.Catalogs.WebSearch != nil && c.Catalogs.WebSearch.URL == "" {
		errs = append(errs, "catalogs.websearch.url: required when websearch is configured")
	}

	if c.Quality.SizeBonusEnabled && c.Quality.SizeOnlyUpgradePercent <= 0 {
		errs = append(errs, "quality.size_only_upgrade_percent: must be positive when size_bonus_enabled is true")
	}

	return errs
}
