package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hazyhaar/geonorm/pkg/geo"
	"github.com/hazyhaar/geonorm/pkg/importer"
)

func cmdImport(args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	source := fs.String("source", "", "adapter ID to import (e.g. un-m49-regions)")
	all := fs.Bool("all", false, "import all available sources")
	refDir := fs.String("refdata", "refdata", "reference data directory")
	fs.Parse(args)

	sdb := openSources(*refDir)
	defer sdb.Close()

	if !*all && *source == "" {
		fmt.Println("Available sources:")
		fmt.Println()
		sources, err := sdb.ListSources()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		for _, src := range sources {
			status := ""
			if src.LastStatus != nil {
				status = fmt.Sprintf("  [%d]", *src.LastStatus)
			}
			fmt.Printf("  %-20s  %s  (-> %s)%s\n", src.AdapterID, src.Description, src.Target, status)
		}
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  geonorm import --source <id> [--refdata <dir>]")
		fmt.Println("  geonorm import --all [--refdata <dir>]")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	var selected []importer.Adapter
	if *all {
		selected = importer.All()
	} else {
		a, err := importer.Get(*source)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			fmt.Println("\nAvailable sources:")
			for _, a := range importer.All() {
				fmt.Printf("  %s\n", a.ID())
			}
			os.Exit(1)
		}
		selected = []importer.Adapter{a}
	}

	imported := 0
	for _, a := range selected {
		url, err := sdb.GetURL(a.ID())
		if err != nil {
			fmt.Fprintf(os.Stderr, "[%s] ERROR (URL): %v\n", a.ID(), err)
			continue
		}
		fmt.Printf("[%s] Importing...\n", a.ID())
		if err := a.Import(ctx, url, *refDir); err != nil {
			fmt.Fprintf(os.Stderr, "[%s] ERROR: %v\n", a.ID(), err)
			continue
		}
		fmt.Printf("[%s] OK -> %s/%s\n", a.ID(), *refDir, a.Target())
		imported++
	}

	if imported == 0 {
		os.Exit(1)
	}

	// Refresh the gob snapshot so the next load skips CSV parsing.
	if err := geo.RebuildSnapshot(*refDir); err != nil {
		fmt.Fprintf(os.Stderr, "Snapshot rebuild failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Snapshot rebuilt: %s\n", filepath.Join(*refDir, "data.gob"))
}

func cmdSources(args []string) {
	fs := flag.NewFlagSet("sources", flag.ExitOnError)
	refDir := fs.String("refdata", "refdata", "reference data directory")
	check := fs.Bool("check", false, "run an availability check (HEAD) on every source")
	setURL := fs.String("set-url", "", "override a source URL, as id=url")
	fs.Parse(args)

	sdb := openSources(*refDir)
	defer sdb.Close()

	if *setURL != "" {
		id, url, ok := strings.Cut(*setURL, "=")
		if !ok {
			fmt.Fprintln(os.Stderr, "Usage: geonorm sources -set-url <id>=<url>")
			os.Exit(1)
		}
		if err := sdb.SetURL(id, url); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("[%s] URL updated\n", id)
		return
	}

	if *check {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
		importer.NewChecker(sdb, logger, time.Hour).CheckAll(context.Background())
	}

	sources, err := sdb.ListSources()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	for _, src := range sources {
		line := fmt.Sprintf("%-20s  %s", src.AdapterID, src.SourceURL)
		if src.LastStatus != nil {
			line += fmt.Sprintf("  [last check: %d]", *src.LastStatus)
		}
		fmt.Println(line)
	}
}

// openSources opens the source DB under refDir and seeds defaults.
func openSources(refDir string) *importer.SourceDB {
	if err := os.MkdirAll(refDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", refDir, err)
		os.Exit(1)
	}
	sdb, err := importer.OpenSourceDB(filepath.Join(refDir, "sources.db"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening sources.db: %v\n", err)
		os.Exit(1)
	}
	if err := sdb.Seed(importer.All()); err != nil {
		fmt.Fprintf(os.Stderr, "Error seeding sources: %v\n", err)
		os.Exit(1)
	}
	return sdb
}
