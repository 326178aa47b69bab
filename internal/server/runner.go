// Package server runs the background loops: feed ingestion, identity
// enrichment and quality re-scoring.
package server

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vmunix/matcharr/internal/events"
	"github.com/vmunix/matcharr/internal/feed"
	"github.com/vmunix/matcharr/internal/library"
	"github.com/vmunix/matcharr/internal/matcher"
	"github.com/vmunix/matcharr/internal/quality"
)

// Config for the background runner.
type Config struct {
	FeedInterval  time.Duration
	MatchInterval time.Duration
}

// Runner owns the periodic jobs. Feed sync and the match pass tick on
// independent intervals; re-scoring runs after each feed sync so fresh
// items get a verdict without waiting for the next pass.
type Runner struct {
	store    *library.Store
	syncer   *feed.Syncer
	resolver *matcher.Resolver
	engine   *quality.Engine
	bus      *events.Bus
	config   Config
	logger   *slog.Logger
}

// NewRunner creates a runner.
func NewRunner(store *library.Store, syncer *feed.Syncer, resolver *matcher.Resolver,
	engine *quality.Engine, bus *events.Bus, cfg Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		store:    store,
		syncer:   syncer,
		resolver: resolver,
		engine:   engine,
		bus:      bus,
		config:   cfg,
		logger:   logger.With("component", "runner"),
	}
}

// Run starts the background loops and blocks until the context is
// cancelled or a store failure stops a loop.
func (r *Runner) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return r.feedLoop(ctx) })
	g.Go(func() error { return r.matchLoop(ctx) })

	return g.Wait()
}

func (r *Runner) feedLoop(ctx context.Context) error {
	r.syncAndScore(ctx)

	ticker := time.NewTicker(r.config.FeedInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			r.syncAndScore(ctx)
		}
	}
}

func (r *Runner) syncAndScore(ctx context.Context) {
	if _, err := r.syncer.Sync(ctx); err != nil {
		r.logger.Error("feed sync failed", "error", err)
		return
	}
	scored, err := Rescore(r.store, r.engine, r.bus, r.logger)
	if err != nil {
		r.logger.Error("re-scoring failed", "error", err)
		return
	}
	r.logger.Debug("re-scoring completed", "scored", scored)
}

func (r *Runner) matchLoop(ctx context.Context) error {
	r.runPass(ctx)

	ticker := time.NewTicker(r.config.MatchInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			r.runPass(ctx)
		}
	}
}

func (r *Runner) runPass(ctx context.Context) {
	stats, err := r.resolver.RunPass(ctx)
	if err != nil {
		// A pass already in flight (e.g. triggered manually) is not a
		// runner failure; the ticker will try again.
		if errors.Is(err, matcher.ErrAlreadyRunning) {
			r.logger.Info("skipping scheduled pass, one is already running")
			return
		}
		r.logger.Error("enrichment pass failed", "error", err)
		return
	}
	r.logger.Debug("enrichment pass finished",
		"queued", stats.Queued, "resolved", stats.Resolved, "skipped", stats.Skipped)
}
