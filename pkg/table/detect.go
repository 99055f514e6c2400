package table

import (
	"strings"

	"github.com/hazyhaar/geonorm/pkg/geo"
)

// countryKeywords flag a column by name alone.
var countryKeywords = []string{"country", "nation", "pais", "land", "location", "origin"}

const (
	detectSampleSize = 20
	detectMinRatio   = 0.3
)

// DetectCountryColumns returns the columns likely to hold country values.
// Columns whose name contains a country keyword win outright; if none match,
// each column is sampled (up to 20 non-empty values) and flagged when more
// than 30% of the sample resolves to a canonical country.
func DetectCountryColumns(t *Table, reg *geo.Registry) []string {
	var detected []string
	for _, col := range t.Columns {
		name := strings.ToLower(col)
		for _, kw := range countryKeywords {
			if strings.Contains(name, kw) {
				detected = append(detected, col)
				break
			}
		}
	}
	if len(detected) > 0 {
		return detected
	}

	for i, col := range t.Columns {
		sampled, resolved := 0, 0
		for _, row := range t.Rows {
			if sampled == detectSampleSize {
				break
			}
			v := strings.TrimSpace(row[i])
			if v == "" {
				continue
			}
			sampled++
			if reg.Resolve(v).Resolved() {
				resolved++
			}
		}
		if sampled > 0 && float64(resolved)/float64(sampled) > detectMinRatio {
			detected = append(detected, col)
		}
	}
	return detected
}
