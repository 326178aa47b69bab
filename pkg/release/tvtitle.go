package release

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	seasonMarkerRe  = regexp.MustCompile(`(?i)\bS(\d{1,2})(?:E\d{1,3}(?:-?E?\d{1,3})?)?\b`)
	seasonWordRe    = regexp.MustCompile(`(?i)\bSeason[ .]?(\d{1,2})\b`)
	yearTokenRe     = regexp.MustCompile(`\b(19\d{2}|20\d{2})\b`)
	bracketedYearRe = regexp.MustCompile(`[(\[](19\d{2}|20\d{2})[)\]]`)
)

// SplitTVTitle splits a raw TV release name into show name, season and year.
// Total and non-throwing: unmatched season and year are zero, and the show
// name is whatever remains after separator normalization and marker removal.
func SplitTVTitle(raw string) TVTitleInfo {
	info := TVTitleInfo{}

	// Normalize separators before any token matching.
	name := strings.ReplaceAll(raw, ".", " ")
	name = strings.ReplaceAll(name, "_", " ")

	// Capture the year before it is stripped from the display string.
	if m := bracketedYearRe.FindStringSubmatch(name); m != nil {
		info.Year, _ = strconv.Atoi(m[1])
	} else if m := yearTokenRe.FindStringSubmatch(name); m != nil {
		info.Year, _ = strconv.Atoi(m[1])
	}

	// First season marker wins, in either S01/S1E1 or "Season 1" form.
	if m := seasonMarkerRe.FindStringSubmatch(name); m != nil {
		info.Season, _ = strconv.Atoi(m[1])
	} else if m := seasonWordRe.FindStringSubmatch(name); m != nil {
		info.Season, _ = strconv.Atoi(m[1])
	}

	// The show name is the text before the first structural marker; release
	// names put technical attributes after the season/year, so cutting there
	// keeps the remainder clean.
	cut := len(name)
	for _, re := range []*regexp.Regexp{seasonMarkerRe, seasonWordRe, bracketedYearRe, yearTokenRe} {
		if loc := re.FindStringIndex(name); loc != nil && loc[0] < cut {
			cut = loc[0]
		}
	}
	show := name[:cut]

	// Strip any marker that survived (e.g. a year embedded mid-title with
	// no season marker after it) and leftover bracket punctuation.
	show = seasonMarkerRe.ReplaceAllString(show, " ")
	show = seasonWordRe.ReplaceAllString(show, " ")
	show = bracketedYearRe.ReplaceAllString(show, " ")
	show = yearTokenRe.ReplaceAllString(show, " ")
	show = strings.Trim(show, " -([{)]}")

	info.ShowName = strings.Join(strings.Fields(show), " ")
	return info
}
