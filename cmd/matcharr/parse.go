package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vmunix/matcharr/pkg/release"
)

// parsedJSON is the JSON-friendly representation of a parsed release name.
type parsedJSON struct {
	ShowName   string   `json:"show_name"`
	CleanTitle string   `json:"clean_title"`
	Season     int      `json:"season,omitempty"`
	Year       int      `json:"year,omitempty"`
	Resolution string   `json:"resolution"`
	Codec      string   `json:"codec"`
	Source     string   `json:"source,omitempty"`
	Audio      string   `json:"audio"`
	SizeMB     float64  `json:"size_mb,omitempty"`
	AudioLangs []string `json:"audio_langs,omitempty"`
}

var parseCmd = &cobra.Command{
	Use:   "parse <release-name>",
	Short: "Parse a release name into its attributes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw := args[0]
		parsed := release.Parse(raw)
		info := release.SplitTVTitle(raw)

		out := parsedJSON{
			ShowName:   info.ShowName,
			CleanTitle: release.CleanTitle(info.ShowName),
			Season:     info.Season,
			Year:       info.Year,
			Resolution: parsed.Resolution.String(),
			Codec:      parsed.Codec.String(),
			Source:     parsed.SourceTag,
			Audio:      parsed.Audio,
			SizeMB:     parsed.SizeMB,
			AudioLangs: parsed.AudioLangs,
		}

		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		}

		fmt.Printf("Title:      %s\n", out.ShowName)
		fmt.Printf("Clean:      %s\n", out.CleanTitle)
		if out.Season > 0 {
			fmt.Printf("Season:     %d\n", out.Season)
		}
		if out.Year > 0 {
			fmt.Printf("Year:       %d\n", out.Year)
		}
		fmt.Printf("Resolution: %s\n", out.Resolution)
		fmt.Printf("Codec:      %s\n", out.Codec)
		if out.Source != "" {
			fmt.Printf("Source:     %s\n", out.Source)
		}
		fmt.Printf("Audio:      %s\n", out.Audio)
		if out.SizeMB > 0 {
			fmt.Printf("Size:       %.0f MB\n", out.SizeMB)
		}
		if len(out.AudioLangs) > 0 {
			fmt.Printf("Languages:  %v\n", out.AudioLangs)
		}
		return nil
	},
}

var splitCmd = &cobra.Command{
	Use:   "split <release-name>",
	Short: "Split a TV release name into show, season and year",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		info := release.SplitTVTitle(args[0])

		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				ShowName string `json:"show_name"`
				Season   int    `json:"season,omitempty"`
				Year     int    `json:"year,omitempty"`
			}{info.ShowName, info.Season, info.Year})
		}

		fmt.Printf("Show:   %s\n", info.ShowName)
		if info.Season > 0 {
			fmt.Printf("Season: %d\n", info.Season)
		}
		if info.Year > 0 {
			fmt.Printf("Year:   %d\n", info.Year)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(splitCmd)
}
