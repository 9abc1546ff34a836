package engine

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Sanitize normalizes raw text for exact-match checks: NFKC
// normalization, punctuation and symbol runes removed, whitespace runs
// collapsed to single spaces, trimmed, lowercased. Pure and idempotent;
// empty input yields empty output.
func Sanitize(text string) string {
	normalized := norm.NFKC.String(text)

	var b strings.Builder
	b.Grow(len(normalized))
	for _, r := range normalized {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			continue
		}
		b.WriteRune(r)
	}

	return strings.ToLower(strings.Join(strings.Fields(b.String()), " "))
}
