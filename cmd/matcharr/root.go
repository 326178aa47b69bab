package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"

	"github.com/vmunix/matcharr/internal/config"
	"github.com/vmunix/matcharr/internal/library"
	"github.com/vmunix/matcharr/internal/migrations"
)

var version = "dev"

var (
	configPath string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "matcharr",
	Short: "CLI for the matcharr release matching engine",
	Long: `matcharr - release matching and quality scoring

Inspect tracked releases, parse release names, and trigger
matching passes against the local database.

Run 'matcharrd' to start the background daemon.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("matcharr {{.Version}}\n")
}

// loadConfig resolves the config file, preferring the --config flag.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		found, err := config.Discover()
		if err != nil {
			return nil, err
		}
		path = found
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// openStore opens the release database from config. The caller owns the
// returned close function.
func openStore() (*library.Store, *config.Config, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	db, err := sql.Open("sqlite", cfg.Database.Path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec(migrations.InitialSQL); err != nil {
		_ = db.Close()
		return nil, nil, nil, fmt.Errorf("migrate: %w", err)
	}
	return library.NewStore(db), cfg, func() { _ = db.Close() }, nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}
