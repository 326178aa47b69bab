package release

import (
	"regexp"
	"strconv"
	"strings"
)

// sourcePattern pairs a canonical source tag with the pattern that detects it.
// The list is ordered: the first match wins. Generic delivery methods come
// before streaming service codes because a service code in the same name
// says where the stream came from, not how it was delivered.
type sourcePattern struct {
	tag string
	re  *regexp.Regexp
}

var sourcePatterns = []sourcePattern{
	{"WEB-DL", regexp.MustCompile(`(?i)\bWEB[-. ]?DL\b`)},
	{"WEBRip", regexp.MustCompile(`(?i)\bWEB[-. ]?Rip\b`)},
	{"Bluray", regexp.MustCompile(`(?i)\b(?:Blu[-. ]?Ray|BDRip|BRRip)\b`)},
	{"DVD", regexp.MustCompile(`(?i)\b(?:DVDRip|DVD)\b`)},
	{"HDTV", regexp.MustCompile(`(?i)\bHDTV\b`)},
	{"AMZN", regexp.MustCompile(`(?i)\bAMZN\b`)},
	{"NF", regexp.MustCompile(`(?i)\bNF\b`)},
	{"DSNP", regexp.MustCompile(`(?i)\bDSNP\b`)},
	{"HMAX", regexp.MustCompile(`(?i)\bHMAX\b`)},
	{"ATVP", regexp.MustCompile(`(?i)\bATVP\b`)},
	{"HS", regexp.MustCompile(`(?i)\bHS\b`)},
	{"ZEE5", regexp.MustCompile(`(?i)\bZEE5\b`)},
	{"JC", regexp.MustCompile(`(?i)\bJC\b`)},
	{"SS", regexp.MustCompile(`(?i)\bSS\b`)},
}

var (
	res2160Re = regexp.MustCompile(`(?i)\b(?:2160p|4k|uhd)\b`)
	res1080Re = regexp.MustCompile(`(?i)\b1080p\b`)
	res720Re  = regexp.MustCompile(`(?i)\b720p\b`)
	res480Re  = regexp.MustCompile(`(?i)\b480p\b`)

	codecX265Re = regexp.MustCompile(`(?i)\b(?:x265|h[ .]?265|hevc)\b`)
	codecX264Re = regexp.MustCompile(`(?i)\b(?:x264|h[ .]?264|avc)\b`)

	audioDDPRe = regexp.MustCompile(`(?i)(?:\bEAC3\b|DD\+|\bDDP)`)
	// DD is also recognized with the channel layout attached (DD5.1),
	// where no word boundary separates the code from the digits.
	audioDDRe      = regexp.MustCompile(`(?i)(?:\b(?:AC3|DD)\b|\bDD[257][. ][01]\b)`)
	audioChannelRe = regexp.MustCompile(`(?:^|[^0-9])([257])[. ]([01])\b`)

	sizeRe = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s?(GiB|GB|MB)\b`)
)

// languageTokens maps language name tokens to ISO 639-1 codes.
var languageTokens = []struct {
	token string
	code  string
}{
	{"hindi", "hi"},
	{"tamil", "ta"},
	{"telugu", "te"},
	{"malayalam", "ml"},
	{"kannada", "kn"},
	{"bengali", "bn"},
	{"marathi", "mr"},
	{"punjabi", "pa"},
	{"english", "en"},
	{"japanese", "ja"},
	{"korean", "ko"},
	{"french", "fr"},
	{"german", "de"},
	{"spanish", "es"},
	{"italian", "it"},
	{"russian", "ru"},
	{"chinese", "zh"},
}

// Parse extracts technical attributes from a raw release name.
// It is total: any input, including the empty string, yields a value with
// sentinel defaults for unmatched fields.
func Parse(raw string) ParsedRelease {
	// Dots and underscores are separator noise in scene names.
	name := strings.ReplaceAll(raw, ".", " ")
	name = strings.ReplaceAll(name, "_", " ")

	return ParsedRelease{
		Resolution: parseResolution(name),
		Codec:      parseCodec(name),
		SourceTag:  parseSourceTag(name),
		Audio:      parseAudio(name),
		// Size is read from the raw name: separator normalization would
		// split decimals like "4.5GB".
		SizeMB:     parseSizeMB(raw),
		AudioLangs: parseLanguages(name),
	}
}

func parseResolution(name string) Resolution {
	switch {
	case res2160Re.MatchString(name):
		return Resolution2160p
	case res1080Re.MatchString(name):
		return Resolution1080p
	case res720Re.MatchString(name):
		return Resolution720p
	case res480Re.MatchString(name):
		return Resolution480p
	default:
		return ResolutionUnknown
	}
}

func parseCodec(name string) Codec {
	switch {
	case codecX265Re.MatchString(name):
		return CodecX265
	case codecX264Re.MatchString(name):
		return CodecX264
	default:
		return CodecUnknown
	}
}

// parseSourceTag returns the first recognized source tag, or "" when none
// matched. The tag is free-form, so absence is the empty string rather than
// a sentinel; unmapped tags score zero in the quality engine either way.
func parseSourceTag(name string) string {
	for _, p := range sourcePatterns {
		if p.re.MatchString(name) {
			return p.tag
		}
	}
	return ""
}

func parseAudio(name string) string {
	lower := strings.ToLower(name)

	var base string
	switch {
	case audioDDPRe.MatchString(name):
		base = "DDP"
	case audioDDRe.MatchString(name):
		base = "DD"
	case strings.Contains(lower, "truehd"):
		return "TrueHD"
	case strings.Contains(lower, "atmos"):
		return "Atmos"
	case strings.Contains(lower, "dts"):
		return "DTS"
	case strings.Contains(lower, "aac"):
		return "AAC"
	case strings.Contains(lower, "pcm"):
		return "PCM"
	default:
		return AudioUnknown
	}

	// Dolby family codes carry a channel layout suffix when one is present.
	if m := audioChannelRe.FindStringSubmatch(name); m != nil {
		return base + " " + m[1] + "." + m[2]
	}
	return base
}

func parseSizeMB(name string) float64 {
	m := sizeRe.FindStringSubmatch(name)
	if m == nil {
		return 0
	}
	size, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	unit := strings.ToUpper(m[2])
	if unit == "GB" || unit == "GIB" {
		size *= 1024
	}
	return size
}

func parseLanguages(name string) []string {
	lower := strings.ToLower(name)
	var langs []string
	for _, lt := range languageTokens {
		if containsWord(lower, lt.token) {
			langs = append(langs, lt.code)
		}
	}
	return langs
}

// containsWord reports whether token appears in s delimited by non-letters.
func containsWord(s, token string) bool {
	idx := 0
	for {
		i := strings.Index(s[idx:], token)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(token)
		beforeOK := start == 0 || !isLetter(s[start-1])
		afterOK := end == len(s) || !isLetter(s[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
