package importer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hazyhaar/geonorm/pkg/geo"
)

func init() {
	Register(&aliasesAdapter{})
}

// aliasesAdapter builds alias_to_canonical.csv from the same ISO 3166 dataset:
// alpha-2 and alpha-3 codes become aliases for the canonical English name.
// Hand-curated aliases ("usa", "holland") can be appended to the CSV
// afterwards; re-running the adapter regenerates only the code-derived rows.
type aliasesAdapter struct{}

func (a *aliasesAdapter) ID() string     { return "country-aliases" }
func (a *aliasesAdapter) Target() string { return "alias_to_canonical.csv" }
func (a *aliasesAdapter) Description() string {
	return "ISO 3166 alpha-2/alpha-3 codes as aliases for canonical country names"
}
func (a *aliasesAdapter) DefaultURL() string {
	return "https://raw.githubusercontent.com/lukes/ISO-3166-Countries-with-Regional-Codes/master/all/all.csv"
}
func (a *aliasesAdapter) License() string { return "CC BY-SA 4.0" }

func (a *aliasesAdapter) Import(ctx context.Context, sourceURL, refDir string) error {
	dlDir := filepath.Join(refDir, "_download")
	if err := ensureDir(dlDir); err != nil {
		return err
	}
	defer os.RemoveAll(dlDir)

	srcPath := filepath.Join(dlDir, "all.csv")
	if err := downloadFile(ctx, sourceURL, srcPath); err != nil {
		return fmt.Errorf("download: %w", err)
	}

	alpha2, err := readColumns(srcPath, "name", "alpha-2")
	if err != nil {
		return err
	}
	alpha3, err := readColumns(srcPath, "name", "alpha-3")
	if err != nil {
		return err
	}

	var rows [][2]string
	seen := make(map[string]bool)
	add := func(alias, canonical string) {
		alias = strings.ToLower(strings.TrimSpace(alias))
		if alias == "" || seen[alias] {
			return
		}
		seen[alias] = true
		rows = append(rows, [2]string{alias, canonical})
	}
	for _, row := range alpha2 {
		add(row[1], row[0])
	}
	for _, row := range alpha3 {
		add(row[1], row[0])
	}

	if err := ensureDir(refDir); err != nil {
		return err
	}
	if err := writeRefCSV(filepath.Join(refDir, a.Target()), []string{"alias", "country_normalized"}, rows); err != nil {
		return err
	}
	fmt.Printf("  %d code aliases\n", len(rows))

	return updateManifest(refDir, func(m *geo.Manifest) {
		m.Aliases = geo.SourceSpec{
			File:        a.Target(),
			Delimiter:   ",",
			HasHeader:   true,
			KeyColumn:   "alias",
			ValueColumn: "country_normalized",
		}
	})
}
