package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hazyhaar/geonorm/pkg/geo"
)

func init() {
	Register(&regionsAdapter{})
}

// regionsAdapter builds country_region.csv from the ISO 3166 / UN M49 dataset.
type regionsAdapter struct{}

func (a *regionsAdapter) ID() string     { return "un-m49-regions" }
func (a *regionsAdapter) Target() string { return "country_region.csv" }
func (a *regionsAdapter) Description() string {
	return "Country to UN M49 region assignments (ISO 3166 with regional codes)"
}
func (a *regionsAdapter) DefaultURL() string {
	return "https://raw.githubusercontent.com/lukes/ISO-3166-Countries-with-Regional-Codes/master/all/all.csv"
}
func (a *regionsAdapter) License() string { return "CC BY-SA 4.0" }

func (a *regionsAdapter) Import(ctx context.Context, sourceURL, refDir string) error {
	dlDir := filepath.Join(refDir, "_download")
	if err := ensureDir(dlDir); err != nil {
		return err
	}
	defer os.RemoveAll(dlDir)

	srcPath := filepath.Join(dlDir, "all.csv")
	if err := downloadFile(ctx, sourceURL, srcPath); err != nil {
		return fmt.Errorf("download: %w", err)
	}

	rows, err := readColumns(srcPath, "name", "region")
	if err != nil {
		return err
	}

	if err := ensureDir(refDir); err != nil {
		return err
	}
	if err := writeRefCSV(filepath.Join(refDir, a.Target()), []string{"country", "region"}, rows); err != nil {
		return err
	}
	fmt.Printf("  %d countries with regions\n", len(rows))

	return updateManifest(refDir, func(m *geo.Manifest) {
		m.Source = a.Description()
		m.SourceURL = sourceURL
		m.License = a.License()
		m.Countries = geo.SourceSpec{
			File:        a.Target(),
			Delimiter:   ",",
			HasHeader:   true,
			KeyColumn:   "country",
			ValueColumn: "region",
		}
	})
}

// readColumns extracts two named columns from a headered CSV.
func readColumns(path, keyCol, valCol string) ([][2]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	keyIdx, valIdx := -1, -1
	for i, h := range header {
		switch strings.TrimSpace(h) {
		case keyCol:
			keyIdx = i
		case valCol:
			valIdx = i
		}
	}
	if keyIdx < 0 || valIdx < 0 {
		return nil, fmt.Errorf("columns %q/%q not found in header %v", keyCol, valCol, header)
	}

	var rows [][2]string
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
		key := strings.TrimSpace(record[keyIdx])
		if key == "" {
			continue
		}
		val := ""
		if valIdx < len(record) {
			val = strings.TrimSpace(record[valIdx])
		}
		rows = append(rows, [2]string{key, val})
	}
	return rows, nil
}

// writeRefCSV writes a two-column reference CSV with the given header.
func writeRefCSV(path string, header []string, rows [][2]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row[:]); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}
