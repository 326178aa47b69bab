package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/matcharr/internal/library"
)

var (
	listStatus    string
	listMediaType string
	listLimit     int
)

var releasesCmd = &cobra.Command{
	Use:   "releases",
	Short: "List tracked releases",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, closeDB, err := openStore()
		if err != nil {
			return err
		}
		defer closeDB()

		filter := library.ReleaseFilter{Limit: listLimit}
		if listStatus != "" {
			s := library.Status(strings.ToUpper(listStatus))
			filter.Status = &s
		}
		if listMediaType != "" {
			mt := library.MediaType(strings.ToLower(listMediaType))
			filter.MediaType = &mt
		}

		releases, err := store.ListReleases(filter)
		if err != nil {
			return err
		}

		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(releases)
		}

		if len(releases) == 0 {
			fmt.Println("No releases found.")
			return nil
		}

		headers := []string{"ID", "TITLE", "TYPE", "STATUS", "SCORE", "TVDB", "TMDB", "IMDB"}
		rows := make([][]string, 0, len(releases))
		for _, r := range releases {
			rows = append(rows, []string{
				strconv.FormatInt(r.ID, 10),
				truncate(displayName(r), 50),
				string(r.MediaType),
				string(r.Status),
				strconv.Itoa(r.NewScore),
				formatID(r.Identity.TVDBID, r.TVDBIDManual),
				formatID(r.Identity.TMDBID, r.TMDBIDManual),
				formatIMDB(r.Identity.IMDBID, r.IMDBIDManual),
			})
		}
		aligns := []columnAlignment{
			alignRight, alignLeft, alignLeft, alignLeft,
			alignRight, alignRight, alignRight, alignLeft,
		}
		fmt.Println(renderTable(headers, rows, aligns))
		return nil
	},
}

var releasesIgnoreCmd = &cobra.Command{
	Use:   "ignore <id>",
	Short: "Move a release to IGNORED",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid release id %q", args[0])
		}
		store, _, closeDB, err := openStore()
		if err != nil {
			return err
		}
		defer closeDB()

		r, err := store.GetRelease(id)
		if err != nil {
			return err
		}
		if err := store.Transition(r, library.StatusIgnored); err != nil {
			return err
		}
		fmt.Printf("Release %d ignored.\n", id)
		return nil
	},
}

var releasesRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a release and blacklist its GUID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid release id %q", args[0])
		}
		store, _, closeDB, err := openStore()
		if err != nil {
			return err
		}
		defer closeDB()

		r, err := store.GetRelease(id)
		if err != nil {
			return err
		}
		if err := store.Blacklist(r.GUID); err != nil {
			return err
		}
		if err := store.DeleteRelease(id); err != nil {
			return err
		}
		fmt.Printf("Release %d deleted and blacklisted.\n", id)
		return nil
	},
}

func displayName(r *library.Release) string {
	name := r.ShowName
	if name == "" {
		name = r.Title
	}
	if r.MediaType == library.MediaTypeTV && r.Season > 0 {
		return fmt.Sprintf("%s S%02d", name, r.Season)
	}
	if r.Year > 0 {
		return fmt.Sprintf("%s (%d)", name, r.Year)
	}
	return name
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}

func formatID(id *int64, manual bool) string {
	if id == nil {
		return "-"
	}
	s := strconv.FormatInt(*id, 10)
	if manual {
		s += "*"
	}
	return s
}

func formatIMDB(id *string, manual bool) string {
	if id == nil {
		return "-"
	}
	s := *id
	if manual {
		s += "*"
	}
	return s
}

func init() {
	releasesCmd.Flags().StringVar(&listStatus, "status", "", "Filter by status (NEW, UPGRADE_CANDIDATE, IGNORED, ADDED, UPGRADED)")
	releasesCmd.Flags().StringVar(&listMediaType, "type", "", "Filter by media type (movie, tv)")
	releasesCmd.Flags().IntVar(&listLimit, "limit", 50, "Maximum number of releases to list")

	releasesCmd.AddCommand(releasesIgnoreCmd)
	releasesCmd.AddCommand(releasesRmCmd)
	rootCmd.AddCommand(releasesCmd)
}
