package release

import (
	"reflect"
	"testing"
)

func TestParse_Attributes(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		resolution Resolution
		source     string
		codec      Codec
	}{
		{"bluray", "Movie.2025.1080p.BluRay.x264", Resolution1080p, "Bluray", CodecX264},
		{"generic beats service", "Movie.2025.1080p.AMZN.WEB-DL.x264", Resolution1080p, "WEB-DL", CodecX264},
		{"service only", "Movie.2025.2160p.NF.DDP.5.1.x265", Resolution2160p, "NF", CodecX265},
		{"4k alias", "Movie.2024.4K.WEBRip.HEVC", Resolution2160p, "WEBRip", CodecX265},
		{"h264 family", "Show.S01.720p.HDTV.H.264", Resolution720p, "HDTV", CodecX264},
		{"nothing", "Some Random Title", ResolutionUnknown, "", CodecUnknown},
		{"empty", "", ResolutionUnknown, "", CodecUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.raw)
			if got.Resolution != tt.resolution {
				t.Errorf("Resolution = %v, want %v", got.Resolution, tt.resolution)
			}
			if got.SourceTag != tt.source {
				t.Errorf("SourceTag = %q, want %q", got.SourceTag, tt.source)
			}
			if got.Codec != tt.codec {
				t.Errorf("Codec = %v, want %v", got.Codec, tt.codec)
			}
		})
	}
}

func TestParse_Audio(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"ddp with channels", "Movie.2025.1080p.WEB-DL.DD+5.1", "DDP 5.1"},
		{"ddp attached channels", "Movie.2025.1080p.WEB-DL.DDP5.1.x264", "DDP 5.1"},
		{"dd attached channels", "Show.S03.720p.WEB-DL.DD5.1.x264", "DD 5.1"},
		{"eac3", "Movie.2025.1080p.WEB-DL.EAC3.5.1.x264", "DDP 5.1"},
		{"ac3 maps to dd", "Movie.1999.DVDRip.AC3.2.0", "DD 2.0"},
		{"ddp bare", "Show.S02.WEB-DL.DDP.x265", "DDP"},
		{"truehd", "Movie.2160p.BluRay.TrueHD.7.1", "TrueHD"},
		{"atmos", "Movie.2160p.Atmos.x265", "Atmos"},
		{"dts", "Movie.1080p.BluRay.DTS.x264", "DTS"},
		{"aac", "Show.S01E01.720p.AAC", "AAC"},
		{"unknown sentinel casing", "Movie.2025.1080p", "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.raw).Audio; got != tt.want {
				t.Errorf("Audio = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParse_SizeMB(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{"gb", "Movie.2025.1080p.WEB-DL[4.5GB]", 4608},
		{"gib", "Movie.2025.1080p 1.5 GiB", 1536},
		{"mb", "Show.S01E01.720p.350MB", 350},
		{"absent", "Movie.2025.1080p", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.raw).SizeMB; got != tt.want {
				t.Errorf("SizeMB = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParse_Languages(t *testing.T) {
	got := Parse("Movie.2025.1080p.WEB-DL.[Hindi+Tamil+English]")
	want := map[string]bool{"hi": true, "ta": true, "en": true}
	if len(got.AudioLangs) != len(want) {
		t.Fatalf("AudioLangs = %v, want codes %v", got.AudioLangs, want)
	}
	for _, code := range got.AudioLangs {
		if !want[code] {
			t.Errorf("unexpected language code %q", code)
		}
	}
}

func TestParse_Deterministic(t *testing.T) {
	inputs := []string{"", "Movie.2025.1080p.BluRay.x264", "###???!!!", "S01E01"}
	for _, in := range inputs {
		first := Parse(in)
		second := Parse(in)
		if !reflect.DeepEqual(first, second) {
			t.Errorf("Parse(%q) not deterministic: %+v vs %+v", in, first, second)
		}
	}
}
