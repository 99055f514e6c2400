package table

import (
	"reflect"
	"testing"
)

func TestNormalizeColumns(t *testing.T) {
	reg := newTestRegistry(t)
	tab := &Table{
		Columns: []string{"city", "country", "amount"},
		Rows: [][]string{
			{"Berlin", "Deutschland", "10"},
			{"Rio", "brasil", "20"},
			{"X", "Freedonia", "30"},
			{"Y", "", "40"},
		},
	}

	tally := NormalizeColumns(tab, []string{"country"}, reg)

	if !reflect.DeepEqual(tab.Columns, []string{"city", "country", "country_region", "amount"}) {
		t.Fatalf("Columns = %v", tab.Columns)
	}
	want := [][]string{
		{"Berlin", "Germany", "Europe", "10"},
		{"Rio", "Brazil", "South America", "20"},
		{"X", "Freedonia", "", "30"},
		{"Y", "", "", "40"},
	}
	if !reflect.DeepEqual(tab.Rows, want) {
		t.Errorf("Rows = %v, want %v", tab.Rows, want)
	}

	if tally.Len() != 1 || tally.Count("freedonia") != 1 {
		t.Errorf("tally = %d entries, Count(freedonia) = %d", tally.Len(), tally.Count("freedonia"))
	}
}

func TestNormalizeColumns_MissingColumnSkipped(t *testing.T) {
	reg := newTestRegistry(t)
	tab := &Table{
		Columns: []string{"city"},
		Rows:    [][]string{{"Berlin"}},
	}

	tally := NormalizeColumns(tab, []string{"country"}, reg)

	if !reflect.DeepEqual(tab.Columns, []string{"city"}) {
		t.Errorf("Columns = %v, table should be untouched", tab.Columns)
	}
	if tally.Len() != 0 {
		t.Errorf("tally.Len = %d, want 0", tally.Len())
	}
}

func TestNormalizeColumns_MultipleColumns(t *testing.T) {
	reg := newTestRegistry(t)
	tab := &Table{
		Columns: []string{"from", "to"},
		Rows: [][]string{
			{"usa", "brasil"},
		},
	}

	NormalizeColumns(tab, []string{"from", "to"}, reg)

	if !reflect.DeepEqual(tab.Columns, []string{"from", "from_region", "to", "to_region"}) {
		t.Fatalf("Columns = %v", tab.Columns)
	}
	want := []string{"United States", "North America", "Brazil", "South America"}
	if !reflect.DeepEqual(tab.Rows[0], want) {
		t.Errorf("Rows[0] = %v, want %v", tab.Rows[0], want)
	}
}
