// Package geo normalizes free-text country names to canonical names and regions.
package geo

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes (NFKD) and drops combining marks, so "São Tomé" and
// "Sao Tome" produce the same key.
var stripMarks = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))

var (
	leadingThe = regexp.MustCompile(`^the\s+`)
	// Filler words that carry no identity: "República de Chile" and "Chile"
	// must clean to the same thing. Accented spellings are already flattened
	// by stripMarks before this pattern runs.
	fillerWords = regexp.MustCompile(`\b(republica|republic|rep|of)\b`)
)

// Clean produces the canonical comparison key for a raw value: accent-stripped,
// lowercase, trimmed, with one leading "the " removed, filler words dropped,
// punctuation replaced by spaces, and whitespace runs collapsed.
//
// Every comparison key in this package (alias table, canonical names, raw
// input) goes through this exact transform.
func Clean(s string) string {
	s, _, _ = transform.String(stripMarks, s)
	s = strings.TrimSpace(strings.ToLower(s))
	s = leadingThe.ReplaceAllString(s, "")
	s = fillerWords.ReplaceAllString(s, " ")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// CleanKey is Clean with all interior spaces removed. Used for the alias
// no-space variant and for fuzzy comparison against canonical names.
func CleanKey(s string) string {
	return strings.ReplaceAll(Clean(s), " ", "")
}
