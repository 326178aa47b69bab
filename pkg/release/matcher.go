package release

import (
	"github.com/hbollon/go-edlib"
)

// MatchConfidence buckets a fuzzy title match score.
type MatchConfidence int

const (
	ConfidenceNone   MatchConfidence = iota // score < 0.70
	ConfidenceLow                           // score >= 0.70
	ConfidenceMedium                        // score >= 0.85
	ConfidenceHigh                          // score >= 0.95
)

func (c MatchConfidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceLow:
		return "low"
	default:
		return "none"
	}
}

// MatchResult is the outcome of matching a parsed title against candidates.
type MatchResult struct {
	Index      int // index into the candidate slice, -1 when none matched
	Title      string
	Score      float64
	Confidence MatchConfidence
}

// MatchMovieTitle finds the best candidate for a parsed movie title using
// Jaro-Winkler similarity, which favors prefix matches and suits media
// titles. Both sides are cleaned before comparison.
func MatchMovieTitle(parsed string, candidates []string) MatchResult {
	best := MatchResult{Index: -1, Confidence: ConfidenceNone}
	if len(candidates) == 0 {
		return best
	}

	normalizedParsed := CleanTitle(parsed)
	for i, candidate := range candidates {
		score := float64(edlib.JaroWinklerSimilarity(normalizedParsed, CleanTitle(candidate)))
		if score > best.Score {
			best.Index = i
			best.Title = candidate
			best.Score = score
		}
	}

	switch {
	case best.Score >= 0.95:
		best.Confidence = ConfidenceHigh
	case best.Score >= 0.85:
		best.Confidence = ConfidenceMedium
	case best.Score >= 0.70:
		best.Confidence = ConfidenceLow
	default:
		best = MatchResult{Index: -1, Confidence: ConfidenceNone}
	}

	return best
}
