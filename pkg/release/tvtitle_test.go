package release

import "testing"

func TestSplitTVTitle(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		show   string
		season int
		year   int
	}{
		{"sxxexx", "The.Great.Show.S01E02.1080p.WEB-DL.x264", "The Great Show", 1, 0},
		{"season word", "Some Show Season 3 720p HDTV", "Some Show", 3, 0},
		{"year and season", "Old.Show.2019.S02.2160p.NF.WEB-DL", "Old Show", 2, 2019},
		{"bracketed year", "Another Show (2021) S01 1080p", "Another Show", 1, 2021},
		{"year only", "Mini.Series.2023.1080p.WEB-DL", "Mini Series", 0, 2023},
		{"bare title", "Just A Show", "Just A Show", 0, 0},
		{"empty", "", "", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitTVTitle(tt.raw)
			if got.ShowName != tt.show {
				t.Errorf("ShowName = %q, want %q", got.ShowName, tt.show)
			}
			if got.Season != tt.season {
				t.Errorf("Season = %d, want %d", got.Season, tt.season)
			}
			if got.Year != tt.year {
				t.Errorf("Year = %d, want %d", got.Year, tt.year)
			}
		})
	}
}

func TestSplitTVTitle_Deterministic(t *testing.T) {
	for _, in := range []string{"", "Show.S01E01", "x"} {
		if SplitTVTitle(in) != SplitTVTitle(in) {
			t.Errorf("SplitTVTitle(%q) not deterministic", in)
		}
	}
}
