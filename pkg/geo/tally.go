package geo

import "sort"

// Tally counts cleaned values the resolver failed to map. It accumulates
// within one batch and merges across batches; read it at the end of a run.
// Not safe for concurrent mutation — give each worker its own Tally and
// merge afterwards.
type Tally struct {
	counts map[string]int
	order  []string
}

// NewTally returns an empty tally.
func NewTally() *Tally {
	return &Tally{counts: make(map[string]int)}
}

// Record counts one unresolved occurrence. Blank raw values and values that
// clean to nothing are not counted.
func (t *Tally) Record(cleaned string) {
	if cleaned == "" {
		return
	}
	if _, seen := t.counts[cleaned]; !seen {
		t.order = append(t.order, cleaned)
	}
	t.counts[cleaned]++
}

// Merge folds another tally into this one, summing counts for shared keys.
func (t *Tally) Merge(other *Tally) {
	if other == nil {
		return
	}
	for _, key := range other.order {
		if _, seen := t.counts[key]; !seen {
			t.order = append(t.order, key)
		}
		t.counts[key] += other.counts[key]
	}
}

// Count returns the occurrence count for one cleaned value.
func (t *Tally) Count(cleaned string) int {
	return t.counts[cleaned]
}

// Len returns the number of distinct unresolved values.
func (t *Tally) Len() int {
	return len(t.counts)
}

// TallyEntry is one line of an unmapped report.
type TallyEntry struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Report returns entries with count >= minCount, sorted descending by count.
// Equal counts keep first-seen order.
func (t *Tally) Report(minCount int) []TallyEntry {
	entries := make([]TallyEntry, 0, len(t.order))
	for _, key := range t.order {
		if n := t.counts[key]; n >= minCount {
			entries = append(entries, TallyEntry{Value: key, Count: n})
		}
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Count > entries[j].Count })
	return entries
}
