package geo

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/adrg/strutil"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

const (
	fuzzyCacheSize = 1024
	fuzzyCacheTTL  = time.Hour
)

// Country is one canonical country with its region and its precomputed
// no-space cleaned key, built once at load time so fuzzy matching never
// re-cleans registry names.
type Country struct {
	Name   string `json:"name"`
	Region string `json:"region"`

	key string
}

// Pair is one raw reference row before cleaning.
type Pair struct {
	Key   string
	Value string
}

// Snapshot holds the raw reference data exactly as read from the source
// files. It is what gets serialized to data.gob.
type Snapshot struct {
	Countries []Pair
	Aliases   []Pair
}

// Registry is the immutable reference data the resolver runs against:
// canonical countries with regions, and the cleaned alias index. Construct it
// once at startup; Resolve is safe for concurrent use.
type Registry struct {
	manifest  *Manifest
	countries []Country
	regions   map[string]string
	aliases   map[string]string

	metric strutil.StringMetric
	fuzzy  *expirable.LRU[string, Resolution]
}

// LoadRegistry reads manifest.yaml from dir and builds a Registry from the
// gob snapshot when present, otherwise from the reference CSVs.
func LoadRegistry(dir string) (*Registry, error) {
	manifest, err := LoadManifest(filepath.Join(dir, "manifest.yaml"))
	if err != nil {
		return nil, err
	}

	var snap *Snapshot
	gobPath := filepath.Join(dir, "data.gob")
	if _, err := os.Stat(gobPath); err == nil {
		snap, err = loadSnapshot(gobPath)
	} else {
		snap, err = readSnapshot(dir, manifest)
	}
	if err != nil {
		return nil, fmt.Errorf("refdata %s: %w", manifest.ID, err)
	}

	return NewRegistry(manifest, snap)
}

// readSnapshot reads both reference CSVs named by the manifest.
func readSnapshot(dir string, manifest *Manifest) (*Snapshot, error) {
	snap := &Snapshot{}
	var err error
	snap.Countries, err = readPairs(filepath.Join(dir, manifest.Countries.File), manifest.Countries)
	if err != nil {
		return nil, err
	}
	snap.Aliases, err = readPairs(filepath.Join(dir, manifest.Aliases.File), manifest.Aliases)
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// RebuildSnapshot re-reads the reference CSVs, validates them, and rewrites
// data.gob. The import command calls this after adapters refresh the CSVs.
func RebuildSnapshot(dir string) error {
	manifest, err := LoadManifest(filepath.Join(dir, "manifest.yaml"))
	if err != nil {
		return err
	}
	snap, err := readSnapshot(dir, manifest)
	if err != nil {
		return fmt.Errorf("refdata %s: %w", manifest.ID, err)
	}
	if _, err := NewRegistry(manifest, snap); err != nil {
		return fmt.Errorf("refdata %s: %w", manifest.ID, err)
	}
	return SaveSnapshot(snap, filepath.Join(dir, "data.gob"))
}

// NewRegistry builds the immutable lookup structures from raw reference
// pairs. A duplicate canonical country name is a fatal data error; colliding
// alias keys are resolved last-write-wins with a logged warning.
func NewRegistry(manifest *Manifest, snap *Snapshot) (*Registry, error) {
	r := &Registry{
		manifest: manifest,
		regions:  make(map[string]string, len(snap.Countries)),
		aliases:  make(map[string]string, 2*len(snap.Aliases)),
		metric:   sequenceRatio{},
		fuzzy:    expirable.NewLRU[string, Resolution](fuzzyCacheSize, nil, fuzzyCacheTTL),
	}

	for _, p := range snap.Countries {
		name := strings.TrimSpace(p.Key)
		if name == "" {
			continue
		}
		if _, exists := r.regions[name]; exists {
			return nil, fmt.Errorf("duplicate canonical country %q", name)
		}
		r.regions[name] = strings.TrimSpace(p.Value)
	}

	r.countries = make([]Country, 0, len(r.regions))
	for name, region := range r.regions {
		r.countries = append(r.countries, Country{Name: name, Region: region, key: CleanKey(name)})
	}
	sort.Slice(r.countries, func(i, j int) bool { return r.countries[i].Name < r.countries[j].Name })

	var collisions int
	for _, p := range snap.Aliases {
		canonical := strings.TrimSpace(p.Value)
		for _, key := range []string{Clean(p.Key), CleanKey(p.Key)} {
			if key == "" {
				continue
			}
			if prev, exists := r.aliases[key]; exists && prev != canonical && prev != "" && canonical != "" {
				collisions++
			}
			r.aliases[key] = canonical
		}
	}
	if collisions > 0 {
		slog.Warn("alias key collisions after cleaning", "refdata", manifest.ID, "collisions", collisions)
	}

	return r, nil
}

// readPairs reads (key, value) rows from one reference CSV according to its
// SourceSpec, transcoding non-UTF-8 encodings.
func readPairs(path string, spec SourceSpec) ([]Pair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open data file: %w", err)
	}
	defer f.Close()

	var reader io.Reader = f
	if enc := spec.Encoding; enc != "" && !isUTF8(enc) {
		e, err := htmlindex.Get(enc)
		if err != nil {
			return nil, fmt.Errorf("unsupported encoding %q: %w", enc, err)
		}
		reader = transform.NewReader(f, e.NewDecoder())
	}

	r := csv.NewReader(reader)
	if spec.Delimiter != "" {
		r.Comma = []rune(spec.Delimiter)[0]
	}
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	keyIdx, valIdx := 0, 1
	if spec.HasHeader {
		header, err := r.Read()
		if err != nil {
			return nil, fmt.Errorf("read header: %w", err)
		}
		keyIdx, valIdx = -1, -1
		for i, h := range header {
			switch strings.TrimSpace(h) {
			case spec.KeyColumn:
				keyIdx = i
			case spec.ValueColumn:
				valIdx = i
			}
		}
		if keyIdx < 0 {
			return nil, fmt.Errorf("key column %q not found in header %v", spec.KeyColumn, header)
		}
		if valIdx < 0 {
			return nil, fmt.Errorf("value column %q not found in header %v", spec.ValueColumn, header)
		}
	}

	var pairs []Pair
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if keyIdx >= len(record) {
			continue
		}
		p := Pair{Key: strings.TrimSpace(record[keyIdx])}
		if valIdx < len(record) {
			p.Value = strings.TrimSpace(record[valIdx])
		}
		if p.Key == "" {
			continue
		}
		pairs = append(pairs, p)
	}
	return pairs, nil
}

// Countries returns the canonical countries sorted by name.
func (r *Registry) Countries() []Country {
	return r.countries
}

// RegionOf returns the region assigned to a canonical country name.
func (r *Registry) RegionOf(name string) (string, bool) {
	region, ok := r.regions[name]
	return region, ok
}

// Manifest returns the manifest the registry was loaded from.
func (r *Registry) Manifest() *Manifest {
	return r.manifest
}

// CountryCount returns the number of canonical countries.
func (r *Registry) CountryCount() int {
	return len(r.countries)
}

// AliasCount returns the number of alias keys, counting cleaned and no-space
// variants separately.
func (r *Registry) AliasCount() int {
	return len(r.aliases)
}

func isUTF8(enc string) bool {
	e := strings.ToLower(strings.ReplaceAll(enc, "-", ""))
	return e == "utf8" || e == ""
}
