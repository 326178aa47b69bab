package feed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vmunix/matcharr/internal/library"
	"github.com/vmunix/matcharr/pkg/release"
)

// Fetcher is the feed surface the syncer consumes.
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context) ([]Item, error)
}

// Syncer pulls feed items into the release store. New GUIDs become NEW
// release records with their titles parsed; known and blacklisted GUIDs are
// skipped.
type Syncer struct {
	store *library.Store
	feeds []Fetcher
	log   *slog.Logger
}

// NewSyncer creates a syncer over the given feeds.
func NewSyncer(store *library.Store, feeds []Fetcher, log *slog.Logger) *Syncer {
	if log == nil {
		log = slog.Default()
	}
	return &Syncer{
		store: store,
		feeds: feeds,
		log:   log.With("component", "feed"),
	}
}

// SyncStats summarizes one sync run.
type SyncStats struct {
	Fetched     int
	Added       int
	Known       int
	Blacklisted int
}

// Sync fetches every feed and stores unseen items. A failing feed is
// logged and skipped; store failures abort the run.
func (s *Syncer) Sync(ctx context.Context) (SyncStats, error) {
	var stats SyncStats

	for _, f := range s.feeds {
		items, err := f.Fetch(ctx)
		if err != nil {
			s.log.Warn("feed fetch failed", "feed", f.Name(), "error", err)
			continue
		}
		stats.Fetched += len(items)

		for _, item := range items {
			added, err := s.ingest(item)
			if err != nil {
				return stats, fmt.Errorf("ingest %q from feed %s: %w", item.GUID, f.Name(), err)
			}
			switch added {
			case ingestAdded:
				stats.Added++
			case ingestKnown:
				stats.Known++
			case ingestBlacklisted:
				stats.Blacklisted++
			}
		}
	}

	s.log.Info("feed sync completed",
		"fetched", stats.Fetched, "added", stats.Added,
		"known", stats.Known, "blacklisted", stats.Blacklisted)
	return stats, nil
}

type ingestResult int

const (
	ingestAdded ingestResult = iota
	ingestKnown
	ingestBlacklisted
)

func (s *Syncer) ingest(item Item) (ingestResult, error) {
	blacklisted, err := s.store.IsBlacklisted(item.GUID)
	if err != nil {
		return 0, err
	}
	if blacklisted {
		return ingestBlacklisted, nil
	}

	_, err = s.store.GetByGUID(item.GUID)
	if err == nil {
		return ingestKnown, nil
	}
	if !errors.Is(err, library.ErrNotFound) {
		return 0, err
	}

	r := buildRelease(item)
	if err := s.store.AddRelease(r); err != nil {
		// Two feeds can carry the same GUID; the first one wins.
		if errors.Is(err, library.ErrDuplicate) {
			return ingestKnown, nil
		}
		return 0, err
	}
	s.log.Debug("release added", "guid", r.GUID, "title", r.Title, "media_type", r.MediaType)
	return ingestAdded, nil
}

// buildRelease parses a feed item into a stored release record. A season
// marker in the title classifies the item as TV; everything else is treated
// as a movie.
func buildRelease(item Item) *library.Release {
	parsed := release.Parse(item.Title)
	info := release.SplitTVTitle(item.Title)

	mediaType := library.MediaTypeMovie
	if info.Season > 0 {
		mediaType = library.MediaTypeTV
	}

	sizeMB := parsed.SizeMB
	if sizeMB == 0 && item.Size > 0 {
		sizeMB = float64(item.Size) / (1024 * 1024)
	}

	return &library.Release{
		GUID:        item.GUID,
		Title:       item.Title,
		ShowName:    info.ShowName,
		CleanTitle:  release.CleanTitle(info.ShowName),
		MediaType:   mediaType,
		Season:      info.Season,
		Year:        info.Year,
		Resolution:  parsed.Resolution.String(),
		Codec:       parsed.Codec.String(),
		SourceTag:   parsed.SourceTag,
		Audio:       parsed.Audio,
		SizeMB:      sizeMB,
		AudioLangs:  parsed.AudioLangs,
		PublishedAt: item.PublishedAt,
	}
}
