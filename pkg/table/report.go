package table

import (
	"fmt"
	"io"
	"strings"

	"github.com/hazyhaar/geonorm/pkg/geo"
)

// WriteReport prints the unmapped values with count >= minCount, descending
// by count, followed by totals. Returns the number of entries printed.
func WriteReport(w io.Writer, tally *geo.Tally, minCount int) int {
	entries := tally.Report(minCount)
	if len(entries) == 0 {
		fmt.Fprintf(w, "No unmapped values with count >= %d found.\n", minCount)
		return 0
	}

	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintf(w, "UNMAPPED VALUES REPORT (count >= %d)\n", minCount)
	fmt.Fprintln(w, strings.Repeat("=", 50))

	total := 0
	for _, e := range entries {
		fmt.Fprintf(w, "%4d | %s\n", e.Count, e.Value)
		total += e.Count
	}

	fmt.Fprintf(w, "\nTotal unmapped values with count >= %d: %d\n", minCount, len(entries))
	fmt.Fprintf(w, "Total unmapped occurrences: %d\n", total)
	return len(entries)
}
