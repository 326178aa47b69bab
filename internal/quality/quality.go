// Package quality converts parsed release attributes and configured weights
// into a score and an acquisition decision.
package quality

import (
	"log/slog"
	"strings"

	"github.com/vmunix/matcharr/internal/library"
	"github.com/vmunix/matcharr/pkg/release"
)

// Settings holds the configured weights and thresholds.
// Keys absent from a weight map contribute zero, not an error.
type Settings struct {
	ResolutionWeights map[string]int
	SourceWeights     map[string]int
	CodecWeights      map[string]int
	AudioWeights      map[string]int

	// AllowedResolutions gates eligibility; a resolution mapped to false
	// is a hard reject regardless of score. Resolutions not present in
	// the map are allowed.
	AllowedResolutions map[string]bool

	PreferredAudioLanguages []string
	PreferredLanguageBonus  int
	DubbedPenalty           int

	UpgradeThreshold       int
	SizeBonusEnabled       bool
	SizeOnlyUpgradePercent float64
}

// Holding describes the matching library entry already on disk, as reported
// by the external library manager.
type Holding struct {
	Score  int
	SizeMB float64
}

// Engine scores releases and classifies them against existing holdings.
type Engine struct {
	settings Settings
	log      *slog.Logger
}

// NewEngine creates a scoring engine.
func NewEngine(settings Settings, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{settings: settings, log: log}
}

// Eligible reports whether the release's resolution is allowed at all.
func (e *Engine) Eligible(info release.ParsedRelease) bool {
	allowed, ok := e.settings.AllowedResolutions[info.Resolution.String()]
	if !ok {
		return true
	}
	return allowed
}

// Score computes the weighted quality score of a release.
// originalLanguage is the catalog's original language for the title; when
// known and absent from the release's audio languages the release is
// treated as dubbed and penalized.
func (e *Engine) Score(info release.ParsedRelease, originalLanguage string) int {
	score := e.settings.ResolutionWeights[info.Resolution.String()]
	score += e.settings.SourceWeights[info.SourceTag]
	score += e.settings.CodecWeights[info.Codec.String()]
	score += e.audioWeight(info.Audio)

	if e.hasPreferredLanguage(info.AudioLangs) {
		score += e.settings.PreferredLanguageBonus
	}
	if isDubbed(originalLanguage, info.AudioLangs) {
		score -= e.settings.DubbedPenalty
	}

	return score
}

// audioWeight looks up the audio weight by exact key first, then by key
// prefix so that "DDP" matches "DDP 5.1".
func (e *Engine) audioWeight(audio string) int {
	if w, ok := e.settings.AudioWeights[audio]; ok {
		return w
	}
	for key, w := range e.settings.AudioWeights {
		if key != "" && strings.HasPrefix(audio, key) {
			return w
		}
	}
	return 0
}

func (e *Engine) hasPreferredLanguage(langs []string) bool {
	for _, lang := range langs {
		for _, pref := range e.settings.PreferredAudioLanguages {
			if lang == pref {
				return true
			}
		}
	}
	return false
}

// isDubbed reports whether the title's original language is known but not
// among the release's audio languages. Releases with no detected languages
// are not treated as dubbed: absence of evidence is not evidence.
func isDubbed(originalLanguage string, langs []string) bool {
	if originalLanguage == "" || len(langs) == 0 {
		return false
	}
	for _, lang := range langs {
		if lang == originalLanguage {
			return false
		}
	}
	return true
}

// Decide classifies a scored release against the existing holding.
// A nil holding means nothing is held yet, which always yields NEW.
func (e *Engine) Decide(info release.ParsedRelease, newScore int, holding *Holding) library.Status {
	if holding == nil {
		return library.StatusNew
	}

	if newScore-holding.Score >= e.settings.UpgradeThreshold {
		return library.StatusUpgradeCandidate
	}

	// A larger file of equal perceived quality is still offered as an upgrade.
	if e.settings.SizeBonusEnabled && holding.SizeMB > 0 && info.SizeMB > 0 {
		growth := (info.SizeMB - holding.SizeMB) / holding.SizeMB * 100
		if growth >= e.settings.SizeOnlyUpgradePercent {
			return library.StatusUpgradeCandidate
		}
	}

	return library.StatusIgnored
}
