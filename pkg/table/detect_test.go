package table

import (
	"reflect"
	"testing"
)

func TestDetectCountryColumns_Keyword(t *testing.T) {
	reg := newTestRegistry(t)
	tab := &Table{
		Columns: []string{"id", "Country", "amount"},
		Rows:    [][]string{{"1", "Germany", "10"}},
	}
	got := DetectCountryColumns(tab, reg)
	if !reflect.DeepEqual(got, []string{"Country"}) {
		t.Errorf("detected = %v, want [Country]", got)
	}
}

func TestDetectCountryColumns_KeywordWinsOverSampling(t *testing.T) {
	reg := newTestRegistry(t)
	// "other" resolves well by content, but a keyword column exists so
	// sampling never runs.
	tab := &Table{
		Columns: []string{"Nation", "other"},
		Rows: [][]string{
			{"Germany", "brasil"},
			{"usa", "usa"},
		},
	}
	got := DetectCountryColumns(tab, reg)
	if !reflect.DeepEqual(got, []string{"Nation"}) {
		t.Errorf("detected = %v, want [Nation]", got)
	}
}

func TestDetectCountryColumns_Sampling(t *testing.T) {
	reg := newTestRegistry(t)
	tab := &Table{
		Columns: []string{"a", "b", "c"},
		Rows: [][]string{
			{"usa", "x1", ""},
			{"brasil", "x2", ""},
			{"deutschland", "x3", ""},
			{"no such place", "x4", ""},
		},
	}
	got := DetectCountryColumns(tab, reg)
	if !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("detected = %v, want [a]", got)
	}
}

func TestDetectCountryColumns_NothingDetected(t *testing.T) {
	reg := newTestRegistry(t)
	tab := &Table{
		Columns: []string{"a"},
		Rows:    [][]string{{"x1"}, {"x2"}, {"x3"}, {"x4"}},
	}
	if got := DetectCountryColumns(tab, reg); len(got) != 0 {
		t.Errorf("detected = %v, want none", got)
	}
}
