package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[server]
log_level = "debug"

[database]
path = "/tmp/test.db"

[[feeds]]
name = "main"
url = "https://indexer.test/rss"

[catalogs.tvdb]
api_key = "k1"

[sync]
feed_interval = "5m"

[quality]
upgrade_threshold = 10

[quality.resolution_weights]
"1080p" = 80
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "/tmp/test.db", cfg.Database.Path)
	require.Len(t, cfg.Feeds, 1)
	assert.Equal(t, "main", cfg.Feeds[0].Name)
	require.NotNil(t, cfg.Catalogs.TVDB)
	assert.Equal(t, "k1", cfg.Catalogs.TVDB.APIKey)
	assert.Equal(t, 5*time.Minute, cfg.Sync.FeedInterval)
	require.NotNil(t, cfg.Quality.UpgradeThreshold)
	assert.Equal(t, 10, *cfg.Quality.UpgradeThreshold)
	assert.Equal(t, 80, cfg.Quality.ResolutionWeights["1080p"])
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "./data/matcharr.db", cfg.Database.Path)
	assert.Equal(t, 15*time.Minute, cfg.Sync.FeedInterval)
	assert.Equal(t, 30*time.Minute, cfg.Sync.MatchInterval)
	assert.Equal(t, time.Second, cfg.Sync.MinCatalogInterval)
	require.NotNil(t, cfg.Quality.UpgradeThreshold)
	assert.Equal(t, 5, *cfg.Quality.UpgradeThreshold)
}

func TestLoadZeroUpgradeThreshold(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
[quality]
upgrade_threshold = 0
`))
	require.NoError(t, err)

	// An explicit 0 means "any higher score upgrades" and must survive
	// default application.
	require.NotNil(t, cfg.Quality.UpgradeThreshold)
	assert.Equal(t, 0, *cfg.Quality.UpgradeThreshold)
	assert.Equal(t, 0, cfg.Quality.Settings().UpgradeThreshold)
}

func TestLoadEnvSubstitution(t *testing.T) {
	t.Setenv("MATCHARR_TEST_KEY", "secret-key")

	cfg, err := Load(writeConfig(t, `
[catalogs.tmdb]
api_key = "${MATCHARR_TEST_KEY}"
`))
	require.NoError(t, err)
	require.NotNil(t, cfg.Catalogs.TMDB)
	assert.Equal(t, "secret-key", cfg.Catalogs.TMDB.APIKey)
}

func TestLoadUnsetEnvVarLeftVerbatim(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
[catalogs.tmdb]
api_key = "${MATCHARR_DEFINITELY_UNSET}"
`))
	require.NoError(t, err)
	assert.Equal(t, "${MATCHARR_DEFINITELY_UNSET}", cfg.Catalogs.TMDB.APIKey)
}

func TestQualitySettings(t *testing.T) {
	threshold := 5
	q := QualityConfig{
		ResolutionWeights:       map[string]int{"1080p": 80},
		AllowedResolutions:      map[string]bool{"480p": false},
		PreferredAudioLanguages: []string{"en"},
		UpgradeThreshold:        &threshold,
	}

	s := q.Settings()
	assert.Equal(t, 80, s.ResolutionWeights["1080p"])
	assert.False(t, s.AllowedResolutions["480p"])
	assert.Equal(t, []string{"en"}, s.PreferredAudioLanguages)
	assert.Equal(t, 5, s.UpgradeThreshold)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "no feeds",
			mutate:  func(c *Config) { c.Feeds = nil },
			wantErr: "feeds",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Server.LogLevel = "verbose" },
			wantErr: "server.log_level",
		},
		{
			name:    "no catalogs",
			mutate:  func(c *Config) { c.Catalogs = CatalogsConfig{} },
			wantErr: "catalogs",
		},
		{
			name:    "tvdb without key",
			mutate:  func(c *Config) { c.Catalogs.TVDB.APIKey = "" },
			wantErr: "catalogs.tvdb.api_key",
		},
		{
			name: "size bonus without percent",
			mutate: func(c *Config) {
				c.Quality.SizeBonusEnabled = true
				c.Quality.SizeOnlyUpgradePercent = 0
			},
			wantErr: "quality.size_only_upgrade_percent",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Feeds:    []FeedConfig{{Name: "main", URL: "https://indexer.test/rss"}},
				Catalogs: CatalogsConfig{TVDB: &TVDBConfig{APIKey: "k"}},
			}
			cfg.applyDefaults()
			tt.mutate(cfg)

			errs := cfg.Validate()
			if tt.wantErr == "" {
				assert.Empty(t, errs)
				return
			}
			require.NotEmpty(t, errs)
			assert.Contains(t, errs[0], tt.wantErr)
		})
	}
}

func TestDiscoverEnvVar(t *testing.T) {
	path := writeConfig(t, "")
	t.Setenv("MATCHARR_CONFIG", path)

	found, err := Discover()
	require.NoError(t, err)
	assert.Equal(t, path, found)
}

func TestDiscoverEnvVarMissingFile(t *testing.T) {
	t.Setenv("MATCHARR_CONFIG", "/nonexistent/config.toml")

	_, err := Discover()
	assert.Error(t, err)
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	require.NoError(t, WriteDefault(path))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.Feeds)
	assert.Equal(t, "info", cfg.Server.LogLevel)
}
