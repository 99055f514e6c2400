package geo

import (
	"strings"

	"github.com/adrg/strutil"
)

// FuzzyThreshold is the minimum similarity ratio for a fuzzy match to be
// accepted. A candidate scoring exactly the threshold is accepted.
const FuzzyThreshold = 0.85

// MatchKind classifies how (or whether) a raw value was resolved.
type MatchKind string

const (
	MatchEmpty     MatchKind = "empty"
	MatchAlias     MatchKind = "alias"
	MatchFirstWord MatchKind = "firstword"
	MatchFuzzy     MatchKind = "fuzzy"
	MatchUnmapped  MatchKind = "unmapped"
)

// Resolution is the outcome of resolving one raw value. Country and Region
// are empty unless the value resolved.
type Resolution struct {
	Country string    `json:"country,omitempty"`
	Region  string    `json:"region,omitempty"`
	Kind    MatchKind `json:"kind"`
}

// Resolved reports whether the value mapped to a canonical country.
func (res Resolution) Resolved() bool {
	return res.Country != ""
}

// Resolve maps a raw value to a canonical country through three tiers, each
// short-circuiting on success:
//
//  1. alias lookup on the cleaned key, then on its no-space variant
//  2. alias lookup on the first token of the cleaned key
//  3. fuzzy similarity of the no-space key against every canonical country
//
// Blank input yields MatchEmpty; exhausting all tiers yields MatchUnmapped.
// Resolve never fails and is safe for concurrent use.
func (r *Registry) Resolve(raw string) Resolution {
	if strings.TrimSpace(raw) == "" {
		return Resolution{Kind: MatchEmpty}
	}

	cleaned := Clean(raw)
	noSpace := strings.ReplaceAll(cleaned, " ", "")

	for _, key := range []string{cleaned, noSpace} {
		if canonical := r.aliases[key]; canonical != "" {
			return Resolution{Country: canonical, Region: r.regions[canonical], Kind: MatchAlias}
		}
	}

	if fields := strings.Fields(cleaned); len(fields) > 0 {
		if canonical := r.aliases[fields[0]]; canonical != "" {
			return Resolution{Country: canonical, Region: r.regions[canonical], Kind: MatchFirstWord}
		}
	}

	return r.resolveFuzzy(noSpace)
}

// resolveFuzzy compares the no-space key against every canonical country's
// precomputed key with the Ratcliff-Obershelp ratio. The best candidate wins
// only if it scores at least FuzzyThreshold; ties keep the first country in
// registry (name-sorted) order. Results are memoized per key.
func (r *Registry) resolveFuzzy(noSpace string) Resolution {
	if res, ok := r.fuzzy.Get(noSpace); ok {
		return res
	}

	best := -1
	bestScore := 0.0
	for i := range r.countries {
		score := strutil.Similarity(noSpace, r.countries[i].key, r.metric)
		if score > bestScore {
			bestScore = score
			best = i
		}
	}

	res := Resolution{Kind: MatchUnmapped}
	if best >= 0 && bestScore >= FuzzyThreshold {
		c := r.countries[best]
		res = Resolution{Country: c.Name, Region: c.Region, Kind: MatchFuzzy}
	}
	r.fuzzy.Add(noSpace, res)
	return res
}
