package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hazyhaar/geonorm/pkg/geo"
	"github.com/hazyhaar/geonorm/pkg/importer"
	"github.com/hazyhaar/geonorm/pkg/table"
)

func cmdNormalize(args []string) {
	fs := flag.NewFlagSet("normalize", flag.ExitOnError)
	refDir := fs.String("refdata", "refdata", "reference data directory")
	minCount := fs.Int("min-count", 2, "report unmapped values seen at least this many times")
	fs.Parse(args)

	files := fs.Args()
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: geonorm normalize [-refdata dir] [-min-count n] file.csv [file2.csv ... data.zip]")
		os.Exit(1)
	}

	reg, err := geo.LoadRegistry(*refDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading reference data: %v\n", err)
		os.Exit(1)
	}

	// File-level failures are reported and skipped; the batch continues.
	merged := geo.NewTally()
	processed := 0
	for _, path := range files {
		for _, csvPath := range expandInput(path) {
			fmt.Printf("Processing: %s\n", csvPath)
			tally, err := processFile(csvPath, reg, *minCount)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", csvPath, err)
				continue
			}
			merged.Merge(tally)
			processed++
		}
	}

	if processed > 1 {
		fmt.Printf("\nOverall summary (%d files):\n", processed)
		table.WriteReport(os.Stdout, merged, *minCount)
	}
}

// expandInput turns a ZIP archive into the CSV files it contains; anything
// else passes through unchanged.
func expandInput(path string) []string {
	if !strings.EqualFold(filepath.Ext(path), ".zip") {
		return []string{path}
	}

	dir, err := os.MkdirTemp("", "geonorm-zip-*")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error extracting %s: %v\n", path, err)
		return nil
	}
	extracted, err := importer.Unzip(path, dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error extracting %s: %v\n", path, err)
		return nil
	}

	var csvs []string
	for _, f := range extracted {
		if strings.EqualFold(filepath.Ext(f), ".csv") {
			csvs = append(csvs, f)
		}
	}
	if len(csvs) == 0 {
		fmt.Fprintf(os.Stderr, "No CSV files found in %s\n", path)
	}
	return csvs
}

// processFile normalizes one CSV and writes it next to the input with an
// "_out" suffix. Returns the file's unmapped tally.
func processFile(path string, reg *geo.Registry, minCount int) (*geo.Tally, error) {
	t, err := table.ReadCSV(path, table.ReadOptions{})
	if err != nil {
		return nil, err
	}

	cols := table.DetectCountryColumns(t, reg)
	if len(cols) == 0 {
		fmt.Println("No country columns detected.")
		return geo.NewTally(), nil
	}
	fmt.Printf("Detected country column(s): %s\n", strings.Join(cols, ", "))

	tally := table.NormalizeColumns(t, cols, reg)

	ext := filepath.Ext(path)
	outPath := strings.TrimSuffix(path, ext) + "_out" + ext
	if err := t.WriteCSV(outPath); err != nil {
		return nil, err
	}
	fmt.Printf("Normalized CSV saved to: %s\n", outPath)

	table.WriteReport(os.Stdout, tally, minCount)
	return tally, nil
}
