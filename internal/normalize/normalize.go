// Package normalize canonicalizes free-text transaction descriptions so they can be
// compared against keyword phrases.
package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// accentFold is the complete folding table. Runes outside it (ñ, ý, ø, ...) are not
// folded and end up replaced by a space like any other non-alphanumeric rune.
var accentFold = map[rune]rune{
	'á': 'a', 'à': 'a', 'â': 'a', 'ã': 'a', 'ä': 'a',
	'é': 'e', 'è': 'e', 'ê': 'e', 'ë': 'e',
	'í': 'i', 'ì': 'i', 'î': 'i', 'ï': 'i',
	'ó': 'o', 'ò': 'o', 'ô': 'o', 'õ': 'o', 'ö': 'o',
	'ú': 'u', 'ù': 'u', 'û': 'u', 'ü': 'u',
	'ç': 'c',
}

func foldRune(r rune) rune {
	if folded, ok := accentFold[r]; ok {
		return folded
	}
	return r
}

// Text lowercases s, folds accented vowels and ç, replaces every rune that is not an
// ASCII letter or digit with a space, collapses runs of spaces and trims the result.
// The output only ever contains [a-z0-9 ] and Text(Text(s)) == Text(s).
func Text(s string) string {
	if s == "" {
		return ""
	}

	// Casers are stateful, so the chain is built per call.
	chain := transform.Chain(cases.Lower(language.Und), runes.Map(foldRune))
	folded, _, err := transform.String(chain, s)
	if err != nil {
		folded = strings.Map(foldRune, strings.ToLower(s))
	}

	var b strings.Builder
	b.Grow(len(folded))
	gap := false
	for _, r := range folded {
		if isKept(r) {
			if gap && b.Len() > 0 {
				b.WriteByte(' ')
			}
			gap = false
			b.WriteRune(r)
			continue
		}
		gap = true
	}

	return b.String()
}

// Ptr normalizes an optional description; nil yields "".
func Ptr(s *string) string {
	if s == nil {
		return ""
	}
	return Text(*s)
}

func isKept(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}
