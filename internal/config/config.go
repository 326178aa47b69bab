// Package config handles TOML configuration loading with environment
// variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/vmunix/matcharr/internal/quality"
)

// Config is the root configuration structure.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Feeds    []FeedConfig   `toml:"feeds"`
	Catalogs CatalogsConfig `toml:"catalogs"`
	Quality  QualityConfig  `toml:"quality"`
	Sync     SyncConfig     `toml:"sync"`
}

type ServerConfig struct {
	LogLevel string `toml:"log_level"`
	// LockPath guards the enrichment pass across processes.
	LockPath string `toml:"lock_path"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

type FeedConfig struct {
	Name string `toml:"name"`
	URL  string `toml:"url"`
}

type CatalogsConfig struct {
	TVDB      *TVDBConfig      `toml:"tvdb"`
	TMDB      *TMDBConfig      `toml:"tmdb"`
	OMDB      *OMDBConfig      `toml:"omdb"`
	WebSearch *WebSearchConfig `toml:"websearch"`
}

type TVDBConfig struct {
	APIKey string `toml:"api_key"`
}

type TMDBConfig struct {
	APIKey string `toml:"api_key"`
}

type OMDBConfig struct {
	APIKey string `toml:"api_key"`
}

type WebSearchConfig struct {
	URL    string `toml:"url"`
	APIKey string `toml:"api_key"`
}

type QualityConfig struct {
	ResolutionWeights map[string]int `toml:"resolution_weights"`
	SourceWeights     map[string]int `toml:"source_weights"`
	CodecWeights      map[string]int `toml:"codec_weights"`
	AudioWeights      map[string]int `toml:"audio_weights"`

	AllowedResolutions map[string]bool `toml:"allowed_resolutions"`

	PreferredAudioLanguages []string `toml:"preferred_audio_languages"`
	PreferredLanguageBonus  int      `toml:"preferred_language_bonus"`
	DubbedPenalty           int      `toml:"dubbed_penalty"`

	// UpgradeThreshold is a pointer so an explicit 0 in the file is
	// distinguishable from the key being absent.
	UpgradeThreshold       *int    `toml:"upgrade_threshold"`
	SizeBonusEnabled       bool    `toml:"size_bonus_enabled"`
	SizeOnlyUpgradePercent float64 `toml:"size_only_upgrade_percent"`
}

type SyncConfig struct {
	FeedInterval  time.Duration `toml:"feed_interval"`
	MatchInterval time.Duration `toml:"match_interval"`
	// MinCatalogInterval is the rate floor enforced before catalog calls.
	MinCatalogInterval time.Duration `toml:"min_catalog_interval"`
}

// Load reads and parses the configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	content := substituteEnvVars(string(data))

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}
	if c.Server.LockPath == "" {
		c.Server.LockPath = "./data/matcharr.lock"
	}
	if c.Database.Path == "" {
		c.Database.Path = "./data/matcharr.db"
	}
	if c.Sync.FeedInterval == 0 {
		c.Sync.FeedInterval = 15 * time.Minute
	}
	if c.Sync.MatchInterval == 0 {
		c.Sync.MatchInterval = 30 * time.Minute
	}
	if c.Sync.MinCatalogInterval == 0 {
		c.Sync.MinCatalogInterval = time.Second
	}
	if c.Quality.UpgradeThreshold == nil {
		v := 5
		c.Quality.UpgradeThreshold = &v
	}
}

// Settings converts the quality section into engine settings.
func (q QualityConfig) Settings() quality.Settings {
	threshold := 0
	if q.UpgradeThreshold != nil {
		threshold = *q.UpgradeThreshold
	}
	return quality.Settings{
		ResolutionWeights:       q.ResolutionWeights,
		SourceWeights:           q.SourceWeights,
		CodecWeights:            q.CodecWeights,
		AudioWeights:            q.AudioWeights,
		AllowedResolutions:      q.AllowedResolutions,
		PreferredAudioLanguages: q.PreferredAudioLanguages,
		PreferredLanguageBonus:  q.PreferredLanguageBonus,
		DubbedPenalty:           q.DubbedPenalty,
		UpgradeThreshold:        threshold,
		SizeBonusEnabled:        q.SizeBonusEnabled,
		SizeOnlyUpgradePercent:  q.SizeOnlyUpgradePercent,
	}
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable values.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

func substituteEnvVars(content string) string {
	return envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		varName := match[2 : len(match)-1]
		if value, ok := os.LookupEnv(varName); ok {
			return value
		}
		return match // leave unchanged if not found
	})
}
