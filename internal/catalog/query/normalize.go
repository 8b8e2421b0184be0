// Package query is the read-side engine of the catalog: it filters, orders,
// paginates and aggregates already-decoded collection snapshots. Every function
// here is pure and never mutates its input.
package query

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// combiningMarks is the Combining Diacritical Marks block, U+0300..U+036F.
var combiningMarks = &unicode.RangeTable{
	R16: []unicode.Range16{{Lo: 0x0300, Hi: 0x036f, Stride: 1}},
}

// Normalize folds text for locale-insensitive comparison: it decomposes to NFD,
// drops combining diacritical marks and lower-cases the result. Whitespace and
// punctuation are kept, so "Cluj Napoca" and "Cluj-Napoca" stay distinct.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(combiningMarks)))
	folded, _, err := transform.String(t, text)
	if err != nil {
		folded = text
	}
	return strings.ToLower(folded)
}

// SameText reports whether a and b are equal after normalization.
func SameText(a, b string) bool {
	return Normalize(a) == Normalize(b)
}
