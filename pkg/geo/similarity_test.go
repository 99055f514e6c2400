package geo

import (
	"math"
	"testing"
)

func TestSequenceRatio(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"", "", 1},
		{"abc", "", 0},
		{"", "abc", 0},
		{"brazil", "brazil", 1},
		// "bra" + "il" match: 2*5/12.
		{"brasil", "brazil", 10.0 / 12},
		// "german" matches: 2*6/14.
		{"germani", "germany", 12.0 / 14},
		// 17-rune shared prefix of 20-rune strings: 34/40 = 0.85 exactly.
		{"abcdefghijklmnopquvw", "abcdefghijklmnopqrst", 0.85},
		// 16-rune shared prefix: 32/40.
		{"abcdefghijklmnopuvwx", "abcdefghijklmnopqrst", 0.80},
		// Recursion matches around the longest block: "b" + "cd" in "abxcd"/"bycd".
		{"abxcd", "bycd", 2.0 * 3 / 9},
		{"qwxyzland", "germany", 2.0 * 2 / 16},
	}
	var m sequenceRatio
	for _, tt := range tests {
		got := m.Compare(tt.a, tt.b)
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Compare(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSequenceRatioThresholdExact(t *testing.T) {
	// The boundary case must compare >= against the threshold constant without
	// floating point surprises.
	var m sequenceRatio
	got := m.Compare("abcdefghijklmnopquvw", "abcdefghijklmnopqrst")
	if !(got >= FuzzyThreshold) {
		t.Errorf("boundary ratio %v compares below threshold %v", got, FuzzyThreshold)
	}
	below := m.Compare("abcdefghijklmnopuvwx", "abcdefghijklmnopqrst")
	if below >= FuzzyThreshold {
		t.Errorf("sub-threshold ratio %v compares at or above threshold %v", below, FuzzyThreshold)
	}
}
