package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	_ "modernc.org/sqlite"

	"github.com/vmunix/matcharr/internal/config"
	"github.com/vmunix/matcharr/internal/events"
	"github.com/vmunix/matcharr/internal/feed"
	"github.com/vmunix/matcharr/internal/library"
	"github.com/vmunix/matcharr/internal/matcher"
	"github.com/vmunix/matcharr/internal/metadata"
	"github.com/vmunix/matcharr/internal/migrations"
	"github.com/vmunix/matcharr/internal/omdb"
	"github.com/vmunix/matcharr/internal/quality"
	"github.com/vmunix/matcharr/internal/server"
	"github.com/vmunix/matcharr/internal/tmdb"
	"github.com/vmunix/matcharr/internal/websearch"
	"github.com/vmunix/matcharr/pkg/tvdb"
)

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func runDaemon(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if errs := cfg.Validate(); len(errs) != 0 {
		return &config.ConfigError{Path: configPath, Errors: errs}
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Server.LogLevel),
	}))

	for _, dir := range []string{filepath.Dir(cfg.Database.Path), filepath.Dir(cfg.Server.LockPath)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create dir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer func() { _ = db.Close() }()

	if _, err := db.Exec(migrations.InitialSQL); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	store := library.NewStore(db)
	bus := events.NewBus(events.NewEventLog(db), logger.With("component", "bus"))
	defer bus.Close()

	// Catalog clients are optional; the resolver skips any left nil.
	resolverCfg := matcher.ResolverConfig{
		Store:  store,
		Bus:    bus,
		Lease:  matcher.NewFileLease(cfg.Server.LockPath),
		Pacer:  matcher.NewPacer(cfg.Sync.MinCatalogInterval),
		Logger: logger,
	}
	cache := metadata.NewCache(db)
	if pruned, err := cache.Prune(context.Background()); err == nil && pruned > 0 {
		logger.Debug("pruned expired catalog cache entries", "count", pruned)
	}
	if cfg.Catalogs.TVDB != nil {
		client := tvdb.New(cfg.Catalogs.TVDB.APIKey, tvdb.WithLogger(logger))
		resolverCfg.Shows = metadata.NewCachedShows(client, cache, logger)
	}
	if cfg.Catalogs.TMDB != nil {
		resolverCfg.Movies = metadata.NewCachedMovies(tmdb.NewClient(cfg.Catalogs.TMDB.APIKey), cache, logger)
	}
	if cfg.Catalogs.OMDB != nil {
		resolverCfg.IMDB = omdb.NewClient(cfg.Catalogs.OMDB.APIKey)
	}
	if cfg.Catalogs.WebSearch != nil {
		resolverCfg.Web = websearch.NewClient(cfg.Catalogs.WebSearch.URL, cfg.Catalogs.WebSearch.APIKey)
	}
	resolver := matcher.NewResolver(resolverCfg)

	feeds := make([]feed.Fetcher, 0, len(cfg.Feeds))
	for _, fc := range cfg.Feeds {
		feeds = append(feeds, feed.NewClient(fc.Name, fc.URL, logger))
	}
	syncer := feed.NewSyncer(store, feeds, logger)

	engine := quality.NewEngine(cfg.Quality.Settings(), logger.With("component", "quality"))

	runner := server.NewRunner(store, syncer, resolver, engine, bus, server.Config{
		FeedInterval:  cfg.Sync.FeedInterval,
		MatchInterval: cfg.Sync.MatchInterval,
	}, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- runner.Run(ctx) }()

	logger.Info("matcharrd started",
		"database", cfg.Database.Path,
		"feeds", len(cfg.Feeds),
		"tvdb", cfg.Catalogs.TVDB != nil,
		"tmdb", cfg.Catalogs.TMDB != nil,
		"log_level", cfg.Server.LogLevel,
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.Info("received signal, shutting down", "signal", sig.String())
		cancel()
		<-done
	case err := <-done:
		if err != nil && ctx.Err() == nil {
			return fmt.Errorf("runner: %w", err)
		}
	}

	logger.Info("matcharrd stopped")
	return nil
}
