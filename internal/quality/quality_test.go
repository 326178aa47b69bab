package quality

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vmunix/matcharr/internal/library"
	"github.com/vmunix/matcharr/pkg/release"
)

func testSettings() Settings {
	return Settings{
		ResolutionWeights: map[string]int{"720p": 60, "1080p": 80, "2160p": 100},
		SourceWeights:     map[string]int{"Bluray": 30, "WEB-DL": 25, "WEBRip": 20},
		CodecWeights:      map[string]int{"x265": 10, "x264": 8},
		AudioWeights:      map[string]int{"TrueHD": 15, "Atmos": 15, "DDP": 10, "DD": 5},
		AllowedResolutions: map[string]bool{
			"480p": false,
		},
		PreferredAudioLanguages: []string{"en"},
		PreferredLanguageBonus:  5,
		DubbedPenalty:           10,
		UpgradeThreshold:        5,
		SizeBonusEnabled:        true,
		SizeOnlyUpgradePercent:  20,
	}
}

func parsed(res release.Resolution, source string, codec release.Codec) release.ParsedRelease {
	return release.ParsedRelease{
		Resolution: res,
		SourceTag:  source,
		Codec:      codec,
		Audio:      release.AudioUnknown,
	}
}

func TestScore_WeightedSum(t *testing.T) {
	e := NewEngine(testSettings(), nil)

	info := parsed(release.Resolution1080p, "WEB-DL", release.CodecX265)
	info.Audio = "DDP 5.1"
	// 80 + 25 + 10 + 10 (DDP prefix)
	assert.Equal(t, 125, e.Score(info, ""))
}

func TestScore_UnmappedKeysContributeZero(t *testing.T) {
	e := NewEngine(testSettings(), nil)

	info := parsed(release.ResolutionUnknown, "", release.CodecUnknown)
	assert.Equal(t, 0, e.Score(info, ""))
}

func TestScore_LanguageBonusAndDubbedPenalty(t *testing.T) {
	e := NewEngine(testSettings(), nil)

	info := parsed(release.Resolution1080p, "", release.CodecUnknown)
	info.AudioLangs = []string{"en"}
	assert.Equal(t, 85, e.Score(info, "en"), "preferred language bonus")

	dubbed := parsed(release.Resolution1080p, "", release.CodecUnknown)
	dubbed.AudioLangs = []string{"hi"}
	assert.Equal(t, 70, e.Score(dubbed, "en"), "dubbed penalty when original language missing")

	noLangs := parsed(release.Resolution1080p, "", release.CodecUnknown)
	assert.Equal(t, 80, e.Score(noLangs, "en"), "no languages detected is not dubbed")
}

// For fixed source/codec/audio, a higher resolution must never score lower
// given non-negative ascending weights.
func TestScore_ResolutionMonotonic(t *testing.T) {
	e := NewEngine(testSettings(), nil)

	prev := -1
	for _, res := range []release.Resolution{release.Resolution720p, release.Resolution1080p, release.Resolution2160p} {
		got := e.Score(parsed(res, "Bluray", release.CodecX265), "")
		assert.GreaterOrEqual(t, got, prev, "resolution %s", res)
		prev = got
	}
}

func TestEligible(t *testing.T) {
	e := NewEngine(testSettings(), nil)

	assert.False(t, e.Eligible(parsed(release.Resolution480p, "", release.CodecUnknown)))
	assert.True(t, e.Eligible(parsed(release.Resolution1080p, "", release.CodecUnknown)))
	assert.True(t, e.Eligible(parsed(release.ResolutionUnknown, "", release.CodecUnknown)), "unlisted resolutions are allowed")
}

func TestDecide_NoHolding(t *testing.T) {
	e := NewEngine(testSettings(), nil)
	got := e.Decide(parsed(release.Resolution1080p, "", release.CodecUnknown), 100, nil)
	assert.Equal(t, library.StatusNew, got)
}

func TestDecide_ThresholdBoundary(t *testing.T) {
	e := NewEngine(testSettings(), nil)
	holding := &Holding{Score: 100}

	info := parsed(release.Resolution1080p, "", release.CodecUnknown)
	assert.Equal(t, library.StatusUpgradeCandidate, e.Decide(info, 105, holding), "exactly at threshold")
	assert.Equal(t, library.StatusIgnored, e.Decide(info, 104, holding), "one below threshold")
}

func TestDecide_SizeOnlyUpgrade(t *testing.T) {
	e := NewEngine(testSettings(), nil)
	holding := &Holding{Score: 100, SizeMB: 1000}

	info := parsed(release.Resolution1080p, "", release.CodecUnknown)
	info.SizeMB = 1250 // +25%
	assert.Equal(t, library.StatusUpgradeCandidate, e.Decide(info, 100, holding))

	small := parsed(release.Resolution1080p, "", release.CodecUnknown)
	small.SizeMB = 1100 // +10%, below the 20% floor
	assert.Equal(t, library.StatusIgnored, e.Decide(small, 100, holding))
}

func TestDecide_SizeBonusDisabled(t *testing.T) {
	s := testSettings()
	s.SizeBonusEnabled = false
	e := NewEngine(s, nil)

	info := parsed(release.Resolution1080p, "", release.CodecUnknown)
	info.SizeMB = 5000
	got := e.Decide(info, 100, &Holding{Score: 100, SizeMB: 1000})
	assert.Equal(t, library.StatusIgnored, got)
}
