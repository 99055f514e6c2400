package geo

// sequenceRatio is the Ratcliff-Obershelp similarity as a strutil.StringMetric:
// 2*M/(len(a)+len(b)), where M counts the runes covered by recursively matched
// longest common substrings. strutil's metrics package does not ship this
// ratio, so it is implemented here.
type sequenceRatio struct{}

func (sequenceRatio) Compare(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 && len(rb) == 0 {
		return 1
	}
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}
	m := matchingRunes(ra, rb)
	return 2 * float64(m) / float64(len(ra)+len(rb))
}

// matchingRunes finds the longest common substring, then recurses on the
// unmatched pieces to its left and right.
func matchingRunes(a, b []rune) int {
	ai, bi, size := longestCommonSubstring(a, b)
	if size == 0 {
		return 0
	}
	return size +
		matchingRunes(a[:ai], b[:bi]) +
		matchingRunes(a[ai+size:], b[bi+size:])
}

// longestCommonSubstring returns the start offsets and length of the longest
// run of runes shared by a and b. Ties keep the earliest offsets.
func longestCommonSubstring(a, b []rune) (ai, bi, size int) {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := range a {
		for j := range b {
			if a[i] != b[j] {
				cur[j+1] = 0
				continue
			}
			cur[j+1] = prev[j] + 1
			if cur[j+1] > size {
				size = cur[j+1]
				ai = i + 1 - size
				bi = j + 1 - size
			}
		}
		prev, cur = cur, prev
	}
	return ai, bi, size
}
