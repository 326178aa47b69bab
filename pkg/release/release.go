// Package release parses scene release names into structured technical
// and semantic metadata used for matching and quality scoring.
package release

// Resolution represents the video resolution of a release.
type Resolution int

const (
	ResolutionUnknown Resolution = iota
	Resolution480p
	Resolution720p
	Resolution1080p
	Resolution2160p
)

// unknownStr is the string representation for unknown resolution and codec.
// Audio uses the distinct "Unknown" sentinel; the casing difference is an
// observable contract, not an accident.
const unknownStr = "UNKNOWN"

// AudioUnknown is the sentinel for unrecognized audio.
const AudioUnknown = "Unknown"

func (r Resolution) String() string {
	switch r {
	case Resolution480p:
		return "480p"
	case Resolution720p:
		return "720p"
	case Resolution1080p:
		return "1080p"
	case Resolution2160p:
		return "2160p"
	default:
		return unknownStr
	}
}

// ParseResolution converts a stored string back to a Resolution.
func ParseResolution(s string) Resolution {
	switch s {
	case "480p":
		return Resolution480p
	case "720p":
		return Resolution720p
	case "1080p":
		return Resolution1080p
	case "2160p":
		return Resolution2160p
	default:
		return ResolutionUnknown
	}
}

// Codec represents the video codec family of a release.
type Codec int

const (
	CodecUnknown Codec = iota
	CodecX264
	CodecX265
)

func (c Codec) String() string {
	switch c {
	case CodecX264:
		return "x264"
	case CodecX265:
		return "x265"
	default:
		return unknownStr
	}
}

// ParseCodec converts a stored string back to a Codec.
func ParseCodec(s string) Codec {
	switch s {
	case "x264":
		return CodecX264
	case "x265":
		return CodecX265
	default:
		return CodecUnknown
	}
}

// ParsedRelease contains the technical attributes extracted from a release name.
type ParsedRelease struct {
	Resolution Resolution
	Codec      Codec
	SourceTag  string // delivery method ("WEB-DL", "Bluray") or streaming service code ("AMZN", "NF"); empty when no tag was recognized
	Audio      string // normalized codec+channel string, e.g. "DDP 5.1", or AudioUnknown
	SizeMB     float64
	AudioLangs []string // ISO 639-1 codes, order not significant
}

// TVTitleInfo is the semantic split of a TV release name.
type TVTitleInfo struct {
	ShowName string
	Season   int // 0 when no season marker was found
	Year     int // 0 when no year token was found
}
