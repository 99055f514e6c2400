package table

import (
	"strings"

	"github.com/hazyhaar/geonorm/pkg/geo"
)

// NormalizeColumns rewrites each target column in place: resolved values are
// replaced by their canonical country name, unresolved values keep the raw
// cell. A "<column>_region" column is inserted immediately to the right of
// each target column. The returned tally counts the cleaned forms of
// unmapped non-blank values.
func NormalizeColumns(t *Table, cols []string, reg *geo.Registry) *geo.Tally {
	tally := geo.NewTally()

	for _, col := range cols {
		idx := t.ColumnIndex(col)
		if idx < 0 {
			continue
		}

		regions := make([]string, len(t.Rows))
		for i, row := range t.Rows {
			raw := row[idx]
			res := reg.Resolve(raw)

			if res.Kind == geo.MatchUnmapped && strings.TrimSpace(raw) != "" {
				tally.Record(geo.Clean(raw))
			}
			if res.Resolved() {
				row[idx] = res.Country
			}
			regions[i] = res.Region
		}
		t.InsertColumn(idx+1, col+"_region", regions)
	}
	return tally
}
