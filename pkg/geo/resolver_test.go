package geo

import "testing"

func loadTestRegistry(t *testing.T) *Registry {
	t.Helper()
	reg, err := LoadRegistry(writeTestRefData(t))
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	return reg
}

func TestResolve(t *testing.T) {
	reg := loadTestRegistry(t)

	tests := []struct {
		input   string
		country string
		region  string
		kind    MatchKind
	}{
		{"", "", "", MatchEmpty},
		{"   ", "", "", MatchEmpty},
		{"The USA", "United States", "North America", MatchAlias},
		{"U.S.A.", "United States", "North America", MatchAlias},
		{"Deutschland", "Germany", "Europe", MatchAlias},
		{"Brasil", "Brazil", "South America", MatchAlias},
		{"Korea, Rep.", "South Korea", "Asia", MatchAlias},
		{"korea north", "South Korea", "Asia", MatchFirstWord},
		{"Brazil", "Brazil", "South America", MatchFuzzy},
		{"Germani", "Germany", "Europe", MatchFuzzy},
		{"Qwxyzland", "", "", MatchUnmapped},
	}
	for _, tt := range tests {
		res := reg.Resolve(tt.input)
		if res.Country != tt.country || res.Region != tt.region || res.Kind != tt.kind {
			t.Errorf("Resolve(%q) = %+v, want {%s %s %s}", tt.input, res, tt.country, tt.region, tt.kind)
		}
		if res.Resolved() != (tt.country != "") {
			t.Errorf("Resolve(%q).Resolved() = %v", tt.input, res.Resolved())
		}
	}
}

func TestResolve_EmptyAliasIgnored(t *testing.T) {
	reg := loadTestRegistry(t)

	// "mystery" maps to an empty canonical name in the alias file; it must
	// fall through to unmapped, not resolve to an empty country.
	res := reg.Resolve("mystery")
	if res.Kind != MatchUnmapped || res.Resolved() {
		t.Errorf("Resolve(mystery) = %+v, want unmapped", res)
	}
}

func TestResolve_Deterministic(t *testing.T) {
	reg := loadTestRegistry(t)

	first := reg.Resolve("Germani")
	for i := 0; i < 50; i++ {
		if got := reg.Resolve("Germani"); got != first {
			t.Fatalf("run %d: Resolve(Germani) = %+v, want %+v", i, got, first)
		}
	}
}

func TestResolve_FuzzyThresholdBoundary(t *testing.T) {
	snap := &Snapshot{
		Countries: []Pair{{Key: "Abcdefghijklmnopqrst", Value: "Nowhere"}},
	}
	reg, err := NewRegistry(&Manifest{ID: "test"}, snap)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	// 17 of 20 runes shared as a prefix: ratio 2*17/40 = 0.85 exactly.
	at := reg.Resolve("abcdefghijklmnopquvw")
	if at.Kind != MatchFuzzy || at.Country != "Abcdefghijklmnopqrst" {
		t.Errorf("at threshold: %+v, want fuzzy match", at)
	}

	// 16 of 20 shared: ratio 0.80, below the threshold.
	below := reg.Resolve("abcdefghijklmnopuvwx")
	if below.Kind != MatchUnmapped {
		t.Errorf("below threshold: %+v, want unmapped", below)
	}
}

func TestResolve_FuzzyTieKeepsFirst(t *testing.T) {
	snap := &Snapshot{
		Countries: []Pair{
			{Key: "Abcdefghiy", Value: "Second"},
			{Key: "Abcdefghix", Value: "First"},
		},
	}
	reg, err := NewRegistry(&Manifest{ID: "test"}, snap)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	// Both candidates score 0.9 against the input; the tie goes to the first
	// country in name-sorted order.
	res := reg.Resolve("abcdefghiz")
	if res.Kind != MatchFuzzy || res.Country != "Abcdefghix" {
		t.Errorf("Resolve(abcdefghiz) = %+v, want fuzzy Abcdefghix", res)
	}
}
