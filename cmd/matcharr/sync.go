package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vmunix/matcharr/internal/feed"
	"github.com/vmunix/matcharr/internal/quality"
	"github.com/vmunix/matcharr/internal/server"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch configured feeds and ingest new releases",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, cfg, closeDB, err := openStore()
		if err != nil {
			return err
		}
		defer closeDB()

		log := quietLogger()
		feeds := make([]feed.Fetcher, 0, len(cfg.Feeds))
		for _, fc := range cfg.Feeds {
			feeds = append(feeds, feed.NewClient(fc.Name, fc.URL, log))
		}
		syncer := feed.NewSyncer(store, feeds, log)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		stats, err := syncer.Sync(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Fetched %d items: %d added, %d known, %d blacklisted\n",
			stats.Fetched, stats.Added, stats.Known, stats.Blacklisted)
		return nil
	},
}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Re-score open releases against the quality settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, cfg, closeDB, err := openStore()
		if err != nil {
			return err
		}
		defer closeDB()

		engine := quality.NewEngine(cfg.Quality.Settings(), quietLogger())
		changed, err := server.Rescore(store, engine, nil, quietLogger())
		if err != nil {
			return err
		}
		fmt.Printf("%d releases changed status\n", changed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(scoreCmd)
}
