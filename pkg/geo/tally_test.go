package geo

import (
	"reflect"
	"testing"
)

func TestTallyRecord(t *testing.T) {
	tally := NewTally()
	tally.Record("freedonia")
	tally.Record("freedonia")
	tally.Record("ruritania")
	tally.Record("")

	if tally.Len() != 2 {
		t.Errorf("Len = %d, want 2", tally.Len())
	}
	if tally.Count("freedonia") != 2 {
		t.Errorf("Count(freedonia) = %d, want 2", tally.Count("freedonia"))
	}
	if tally.Count("absent") != 0 {
		t.Errorf("Count(absent) = %d, want 0", tally.Count("absent"))
	}
}

func TestTallyMerge(t *testing.T) {
	a := NewTally()
	a.Record("freedonia")
	a.Record("freedonia")
	a.Record("ruritania")

	b := NewTally()
	b.Record("freedonia")
	b.Record("freedonia")
	b.Record("grand fenwick")

	a.Merge(b)
	a.Merge(nil)

	if a.Count("freedonia") != 4 {
		t.Errorf("Count(freedonia) = %d, want 4", a.Count("freedonia"))
	}
	if a.Count("ruritania") != 1 || a.Count("grand fenwick") != 1 {
		t.Error("merge lost distinct keys")
	}
	if a.Len() != 3 {
		t.Errorf("Len = %d, want 3", a.Len())
	}
}

func TestTallyReport(t *testing.T) {
	tally := NewTally()
	for i := 0; i < 3; i++ {
		tally.Record("freedonia")
	}
	tally.Record("ruritania")
	tally.Record("grand fenwick")
	tally.Record("grand fenwick")

	got := tally.Report(2)
	want := []TallyEntry{
		{Value: "freedonia", Count: 3},
		{Value: "grand fenwick", Count: 2},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Report(2) = %v, want %v", got, want)
	}

	// Equal counts keep first-seen order.
	tied := NewTally()
	tied.Record("zembla")
	tied.Record("ambrosia")
	got = tied.Report(1)
	if len(got) != 2 || got[0].Value != "zembla" || got[1].Value != "ambrosia" {
		t.Errorf("tie order = %v, want zembla before ambrosia", got)
	}
}

func TestStore(t *testing.T) {
	store := NewStore(writeTestRefData(t))
	if store.Get() != nil {
		t.Fatal("Get before Load should be nil")
	}
	if err := store.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	reg := store.Get()
	if reg == nil || reg.CountryCount() != 5 {
		t.Fatalf("Get after Load = %v", reg)
	}

	// A failed reload keeps the previous registry installed.
	bad := NewStore(t.TempDir())
	bad.reg.Store(reg)
	if err := bad.Load(); err == nil {
		t.Fatal("expected Load error for empty dir")
	}
	if bad.Get() != reg {
		t.Error("failed Load replaced the installed registry")
	}
}
