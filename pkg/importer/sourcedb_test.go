package importer

import (
	"context"
	"path/filepath"
	"testing"
)

// fakeAdapter is a minimal Adapter for seeding tests.
type fakeAdapter struct {
	id, target, desc, url, license string
}

func (f *fakeAdapter) ID() string          { return f.id }
func (f *fakeAdapter) Target() string      { return f.target }
func (f *fakeAdapter) Description() string { return f.desc }
func (f *fakeAdapter) DefaultURL() string  { return f.url }
func (f *fakeAdapter) License() string     { return f.license }
func (f *fakeAdapter) Import(ctx context.Context, sourceURL, refDir string) error {
	return nil
}

func tempSourceDB(t *testing.T) *SourceDB {
	t.Helper()
	sdb, err := OpenSourceDB(filepath.Join(t.TempDir(), "sources.db"))
	if err != nil {
		t.Fatalf("OpenSourceDB: %v", err)
	}
	t.Cleanup(func() { sdb.Close() })
	return sdb
}

func TestSeedAndGetURL(t *testing.T) {
	sdb := tempSourceDB(t)

	adapters := []Adapter{
		&fakeAdapter{id: "alpha", target: "country_region.csv", desc: "A", url: "https://a.example/data.csv", license: "CC0"},
		&fakeAdapter{id: "beta", target: "alias_to_canonical.csv", desc: "B", url: "https://b.example/data.csv", license: "CC BY 4.0"},
	}
	if err := sdb.Seed(adapters); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	url, err := sdb.GetURL("alpha")
	if err != nil {
		t.Fatalf("GetURL: %v", err)
	}
	if url != "https://a.example/data.csv" {
		t.Errorf("GetURL(alpha) = %q", url)
	}

	if _, err := sdb.GetURL("missing"); err == nil {
		t.Error("GetURL(missing) should fail")
	}
}

func TestSeedPreservesOverride(t *testing.T) {
	sdb := tempSourceDB(t)
	a := &fakeAdapter{id: "alpha", target: "t.csv", desc: "A", url: "https://default.example/"}

	if err := sdb.Seed([]Adapter{a}); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if err := sdb.SetURL("alpha", "https://override.example/"); err != nil {
		t.Fatalf("SetURL: %v", err)
	}

	// Re-seeding must not clobber the manual override.
	if err := sdb.Seed([]Adapter{a}); err != nil {
		t.Fatalf("re-Seed: %v", err)
	}
	url, err := sdb.GetURL("alpha")
	if err != nil {
		t.Fatal(err)
	}
	if url != "https://override.example/" {
		t.Errorf("GetURL after re-seed = %q, want override", url)
	}
}

func TestSetURLUnknownAdapter(t *testing.T) {
	sdb := tempSourceDB(t)
	if err := sdb.SetURL("nope", "https://x.example/"); err == nil {
		t.Error("SetURL on unknown adapter should fail")
	}
}

func TestUpdateCheckAndList(t *testing.T) {
	sdb := tempSourceDB(t)
	adapters := []Adapter{
		&fakeAdapter{id: "alpha", target: "t.csv", desc: "A", url: "https://a.example/"},
		&fakeAdapter{id: "beta", target: "t2.csv", desc: "B", url: "https://b.example/"},
	}
	if err := sdb.Seed(adapters); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	if err := sdb.UpdateCheck("alpha", 200, ""); err != nil {
		t.Fatalf("UpdateCheck: %v", err)
	}
	if err := sdb.UpdateCheck("beta", 0, "connection refused"); err != nil {
		t.Fatalf("UpdateCheck: %v", err)
	}

	sources, err := sdb.ListSources()
	if err != nil {
		t.Fatalf("ListSources: %v", err)
	}
	if len(sources) != 2 {
		t.Fatalf("ListSources returned %d rows, want 2", len(sources))
	}
	// Ordered by adapter_id.
	if sources[0].AdapterID != "alpha" || sources[1].AdapterID != "beta" {
		t.Errorf("order = %s, %s", sources[0].AdapterID, sources[1].AdapterID)
	}
	if sources[0].LastStatus == nil || *sources[0].LastStatus != 200 {
		t.Errorf("alpha LastStatus = %v, want 200", sources[0].LastStatus)
	}
	if sources[0].LastError != nil {
		t.Errorf("alpha LastError = %v, want nil", sources[0].LastError)
	}
	if sources[1].LastError == nil || *sources[1].LastError != "connection refused" {
		t.Errorf("beta LastError = %v", sources[1].LastError)
	}
}
