package release

import "testing"

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		min  float64
		max  float64
	}{
		{"exact", "Breaking Bad", "breaking bad", 1.0, 1.0},
		{"containment", "The Office", "The Office US", 0.7, 0.9},
		{"jaccard overlap", "dark winds mystery", "dark winds", 0.6, 1.0},
		{"no overlap", "Azad", "Le Mille E Una Notte", 0, 0.49},
		{"both empty", "", "", 1.0, 1.0},
		{"one empty", "Azad", "", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Similarity(tt.a, tt.b)
			if got < tt.min || got > tt.max {
				t.Errorf("Similarity(%q, %q) = %v, want in [%v, %v]", tt.a, tt.b, got, tt.min, tt.max)
			}
		})
	}
}

// The 0.5 floor used by the resolver must reject unrelated candidates
// outright; this guards a real-world mismatch between a one-word show name
// and an unrelated series.
func TestSimilarity_BelowResolverFloor(t *testing.T) {
	if got := Similarity("Azad", "Le Mille E Una Notte"); got >= 0.5 {
		t.Fatalf("Similarity = %v, want < 0.5", got)
	}
}

func TestSimilarity_SubsetFloor(t *testing.T) {
	// Every word of the shorter set appears in the longer set, so the
	// score is floored at 0.6 even though raw Jaccard is lower.
	got := Similarity("alpha beta", "alpha beta gamma delta epsilon zeta")
	if got < 0.6 {
		t.Errorf("Similarity = %v, want >= 0.6", got)
	}
}

func TestValidateShowNameMatch(t *testing.T) {
	tests := []struct {
		name      string
		parsed    string
		candidate string
		minMatch  int
		want      bool
	}{
		{"no shared tokens", "Azad", "Le Mille E Una Notte", 1, false},
		{"single word present", "Severance", "Severance", 1, true},
		{"two words both required", "Dark Winds", "Dark Winds", 1, true},
		{"two words one missing", "Dark Winds", "Dark Matter", 1, false},
		{"many words partial", "The Lord of the Rings Rings of Power", "Rings of Power", 1, true},
		{"short words ignored", "It", "It", 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateShowNameMatch(tt.parsed, tt.candidate, tt.minMatch)
			if got != tt.want {
				t.Errorf("ValidateShowNameMatch(%q, %q, %d) = %v, want %v",
					tt.parsed, tt.candidate, tt.minMatch, got, tt.want)
			}
		})
	}
}

func TestValidateYearMatch(t *testing.T) {
	tests := []struct {
		name      string
		parsed    int
		candidate int
		want      bool
	}{
		{"outside tolerance", 2025, 2012, false},
		{"missing candidate", 2025, 0, true},
		{"missing parsed", 0, 2012, true},
		{"within tolerance", 2025, 2023, true},
		{"boundary", 2025, 2022, true},
		{"just outside", 2025, 2021, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateYearMatch(tt.parsed, tt.candidate, 3); got != tt.want {
				t.Errorf("ValidateYearMatch(%d, %d, 3) = %v, want %v", tt.parsed, tt.candidate, got, tt.want)
			}
		})
	}
}
