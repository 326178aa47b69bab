package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vmunix/matcharr/internal/events"
	"github.com/vmunix/matcharr/internal/library"
	"github.com/vmunix/matcharr/internal/quality"
	"github.com/vmunix/matcharr/pkg/release"
)

// openStatuses are the lifecycle states a re-scoring run may move between.
// Acquired releases keep their state.
var openStatuses = []library.Status{
	library.StatusNew,
	library.StatusUpgradeCandidate,
	library.StatusIgnored,
}

// Rescore runs the quality engine over every open release and applies the
// verdict. Returns the number of releases whose status changed.
func Rescore(store *library.Store, engine *quality.Engine, bus *events.Bus, log *slog.Logger) (int, error) {
	if log == nil {
		log = slog.Default()
	}

	changed := 0
	for _, status := range openStatuses {
		s := status
		releases, err := store.ListReleases(library.ReleaseFilter{Status: &s})
		if err != nil {
			return changed, fmt.Errorf("list %s releases: %w", s, err)
		}
		for _, r := range releases {
			moved, err := rescoreOne(store, engine, bus, r)
			if err != nil {
				return changed, err
			}
			if moved {
				changed++
				log.Debug("release re-scored",
					"release_id", r.ID, "status", r.Status, "score", r.NewScore)
			}
		}
	}
	return changed, nil
}

func rescoreOne(store *library.Store, engine *quality.Engine, bus *events.Bus, r *library.Release) (bool, error) {
	info := parsedFrom(r)

	target := library.StatusIgnored
	score := 0
	if engine.Eligible(info) {
		score = engine.Score(info, "")
		target = engine.Decide(info, score, holdingOf(r))
	}
	prevScore := r.NewScore
	r.NewScore = score

	if target != r.Status && r.Status.CanTransitionTo(target) {
		if err := store.Transition(r, target); err != nil {
			return false, err
		}
		if bus != nil {
			_ = bus.Publish(context.Background(), events.NewReleaseScored(r.ID, score, string(target)))
		}
		return true, nil
	}

	// Verdict unchanged: persist a changed score, otherwise just record
	// that the release was checked.
	if score != prevScore {
		r.LastCheckedAt = time.Now()
		return false, store.UpdateRelease(r)
	}
	return false, store.Touch(r)
}

// parsedFrom rebuilds the parsed attributes from their stored form.
func parsedFrom(r *library.Release) release.ParsedRelease {
	return release.ParsedRelease{
		Resolution: release.ParseResolution(r.Resolution),
		Codec:      release.ParseCodec(r.Codec),
		SourceTag:  r.SourceTag,
		Audio:      r.Audio,
		SizeMB:     r.SizeMB,
		AudioLangs: r.AudioLangs,
	}
}

func holdingOf(r *library.Release) *quality.Holding {
	if r.ExistingScore == nil {
		return nil
	}
	h := &quality.Holding{Score: *r.ExistingScore}
	if r.ExistingSizeMB != nil {
		h.SizeMB = *r.ExistingSizeMB
	}
	return h
}
