// Package pattern scores normalized transaction descriptions against a keyword lexicon.
package pattern

// Matcher scores a normalized description against every category it knows.
type Matcher interface {
	// Score returns one Match per category with a positive score, in lexicon order.
	Score(normalizedDescription string) []Match
	// ScoreFiltered behaves like Score but only considers categories for which allow
	// returns true. allow receives the normalized category name.
	ScoreFiltered(normalizedDescription string, allow func(normalizedCategory string) bool) []Match
}

// Match is the score of one category for one description.
type Match struct {
	// Category is the display name as written in the lexicon.
	Category string
	// Normalized is the normalized category name used to join with stored categories.
	Normalized string
	// Keywords lists the matched phrases in lexicon order.
	Keywords []string
	// Score is the summed length of every matched keyword.
	Score int
}
