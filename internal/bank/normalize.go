package bank

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Runes Excel tends to smuggle into cells: non-breaking and thin spaces,
// zero-width joiners and the BOM.
func isInvisible(r rune) bool {
	switch r {
	case '\u00a0', '\u2009', '\u2007', '\u202f', '\u200b', '\u200c', '\u200d', '\ufeff':
		return true
	}
	return false
}

// Normalize canonicalizes a cell for comparison: NFKC, invisible runes
// dropped, whitespace collapsed, case folded and trailing .;: removed.
// Answers are matched against options through this form, so two cells
// that differ only in spacing or case count as the same text.
func Normalize(s string) string {
	s = norm.NFKC.String(s)
	s = strings.Map(func(r rune) rune {
		if isInvisible(r) {
			return -1
		}
		return r
	}, s)
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\t", " ")
	s = strings.Join(strings.Fields(s), " ")
	s = cases.Fold().String(s)
	return strings.TrimRight(s, ".;:")
}
