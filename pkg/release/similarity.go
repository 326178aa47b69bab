package release

import "strings"

// Similarity scores how alike two titles are, in [0,1].
//
// Exact match scores 1.0. When one string contains the other the score is
// scaled into (0.7, 0.9] by the length ratio, which rewards near-duplicate
// titles where one is a strict prefix/suffix/superset of the other.
// Otherwise the score is word-set Jaccard similarity, floored at 0.6 when
// every word of the shorter title appears in the longer one.
func Similarity(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))

	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0
	}

	shorter, longer := a, b
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	if strings.Contains(longer, shorter) {
		ratio := float64(len(shorter)) / float64(len(longer))
		return 0.7 + 0.2*ratio
	}

	aWords := wordSet(a)
	bWords := wordSet(b)
	common := 0
	for w := range aWords {
		if bWords[w] {
			common++
		}
	}
	totalUnique := len(aWords) + len(bWords) - common
	if totalUnique == 0 {
		return 0
	}
	jaccard := float64(common) / float64(totalUnique)

	// Full-subset containment of the shorter word set is a stronger signal
	// than raw Jaccard suggests for short titles.
	smaller := aWords
	if len(bWords) < len(aWords) {
		smaller = bWords
	}
	larger := aWords
	if len(bWords) >= len(aWords) {
		larger = bWords
	}
	subset := len(smaller) > 0
	for w := range smaller {
		if !larger[w] {
			subset = false
			break
		}
	}
	if subset && jaccard < 0.6 {
		return 0.6
	}
	return jaccard
}

func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(s) {
		set[w] = true
	}
	return set
}

// ValidateShowNameMatch checks that enough significant words of the parsed
// show name appear in the candidate title. Words of one or two characters
// are ignored. When the parsed name has two or fewer significant words all
// of them must appear; otherwise at least minWordMatch must.
func ValidateShowNameMatch(parsed, candidate string, minWordMatch int) bool {
	candWords := wordSet(strings.ToLower(candidate))

	var significant []string
	for _, w := range strings.Fields(strings.ToLower(parsed)) {
		if len(w) > 2 {
			significant = append(significant, w)
		}
	}
	if len(significant) == 0 {
		return false
	}

	matched := 0
	for _, w := range significant {
		if candWords[w] {
			matched++
		}
	}

	if len(significant) <= 2 {
		return matched == len(significant)
	}
	return matched >= minWordMatch
}

// ValidateYearMatch accepts when either year is missing (zero); with both
// present the difference must be within tolerance.
func ValidateYearMatch(parsedYear, candidateYear, tolerance int) bool {
	if parsedYear == 0 || candidateYear == 0 {
		return true
	}
	diff := parsedYear - candidateYear
	if diff < 0 {
		diff = -diff
	}
	return diff <= tolerance
}
