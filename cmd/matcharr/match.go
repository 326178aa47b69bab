package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vmunix/matcharr/internal/config"
	"github.com/vmunix/matcharr/internal/library"
	"github.com/vmunix/matcharr/internal/matcher"
	"github.com/vmunix/matcharr/internal/omdb"
	"github.com/vmunix/matcharr/internal/tmdb"
	"github.com/vmunix/matcharr/internal/websearch"
	"github.com/vmunix/matcharr/pkg/tvdb"
)

var (
	matchTVDB int64
	matchTMDB int64
	matchIMDB string
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Run a matching pass over unresolved releases",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, cfg, closeDB, err := openStore()
		if err != nil {
			return err
		}
		defer closeDB()

		resolver := buildResolver(store, cfg)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		stats, err := resolver.RunPass(ctx)
		if errors.Is(err, matcher.ErrAlreadyRunning) {
			return fmt.Errorf("another matching pass is already running")
		}
		if err != nil {
			return err
		}

		fmt.Printf("Pass %s: %d queued, %d resolved, %d skipped\n",
			stats.PassID, stats.Queued, stats.Resolved, stats.Skipped)
		return nil
	},
}

var matchSetCmd = &cobra.Command{
	Use:   "set <release-id>",
	Short: "Manually pin catalog IDs on a release",
	Long: `Manually pin catalog IDs on a release.

Pinned IDs are marked as manual and will never be overwritten by
automated matching. The remaining IDs are cross-referenced from the
pinned ones where possible, and the new identity is propagated to
sibling releases.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid release id %q", args[0])
		}

		m := matcher.ManualMatch{}
		if cmd.Flags().Changed("tvdb") {
			m.TVDBID = &matchTVDB
		}
		if cmd.Flags().Changed("tmdb") {
			m.TMDBID = &matchTMDB
		}
		if cmd.Flags().Changed("imdb") {
			m.IMDBID = &matchIMDB
		}
		if m.TVDBID == nil && m.TMDBID == nil && m.IMDBID == nil {
			return fmt.Errorf("at least one of --tvdb, --tmdb or --imdb is required")
		}

		store, cfg, closeDB, err := openStore()
		if err != nil {
			return err
		}
		defer closeDB()

		resolver := buildResolver(store, cfg)

		r, err := resolver.ResolveManual(context.Background(), id, m)
		if err != nil {
			return err
		}

		fmt.Printf("Release %d: tvdb=%s tmdb=%s imdb=%s\n", r.ID,
			formatID(r.Identity.TVDBID, r.TVDBIDManual),
			formatID(r.Identity.TMDBID, r.TMDBIDManual),
			formatIMDB(r.Identity.IMDBID, r.IMDBIDManual))
		return nil
	},
}

// buildResolver wires a resolver from the configured catalogs. The file
// lease keeps CLI passes and the daemon from running concurrently.
func buildResolver(store *library.Store, cfg *config.Config) *matcher.Resolver {
	rc := matcher.ResolverConfig{
		Store:  store,
		Lease:  matcher.NewFileLease(cfg.Server.LockPath),
		Pacer:  matcher.NewPacer(cfg.Sync.MinCatalogInterval),
		Logger: quietLogger(),
	}
	if cfg.Catalogs.TVDB != nil {
		rc.Shows = tvdb.New(cfg.Catalogs.TVDB.APIKey)
	}
	if cfg.Catalogs.TMDB != nil {
		rc.Movies = tmdb.NewClient(cfg.Catalogs.TMDB.APIKey)
	}
	if cfg.Catalogs.OMDB != nil {
		rc.IMDB = omdb.NewClient(cfg.Catalogs.OMDB.APIKey)
	}
	if cfg.Catalogs.WebSearch != nil {
		rc.Web = websearch.NewClient(cfg.Catalogs.WebSearch.URL, cfg.Catalogs.WebSearch.APIKey)
	}
	return matcher.NewResolver(rc)
}

func init() {
	matchSetCmd.Flags().Int64Var(&matchTVDB, "tvdb", 0, "TVDB series ID")
	matchSetCmd.Flags().Int64Var(&matchTMDB, "tmdb", 0, "TMDB movie ID")
	matchSetCmd.Flags().StringVar(&matchIMDB, "imdb", "", "IMDB ID (tt...)")

	matchCmd.AddCommand(matchSetCmd)
	rootCmd.AddCommand(matchCmd)
}
