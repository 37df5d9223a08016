package pattern

import (
	"sort"
	"strings"

	"github.com/Veraticus/pennywise/internal/lexicon"
)

// confidenceScale is the score at which confidence saturates at 1.0.
const confidenceScale = 10.0

// Scorer implements Matcher with substring keyword matching.
type Scorer struct {
	lex *lexicon.Lexicon
}

var _ Matcher = (*Scorer)(nil)

// NewScorer creates a scorer over lex. A nil lexicon means the default one.
func NewScorer(lex *lexicon.Lexicon) *Scorer {
	if lex == nil {
		lex = lexicon.Default()
	}
	return &Scorer{lex: lex}
}

// Lexicon returns the lexicon the scorer matches against.
func (s *Scorer) Lexicon() *lexicon.Lexicon {
	return s.lex
}

// Score evaluates every lexicon category.
func (s *Scorer) Score(normalizedDescription string) []Match {
	return s.ScoreFiltered(normalizedDescription, nil)
}

// ScoreFiltered evaluates the categories accepted by allow (all of them when allow is nil).
// Each keyword found as a substring adds its length to the category score, so long
// specific phrases outweigh short generic ones.
func (s *Scorer) ScoreFiltered(normalizedDescription string, allow func(string) bool) []Match {
	if normalizedDescription == "" {
		return nil
	}

	var matches []Match
	for _, entry := range s.lex.Entries() {
		if allow != nil && !allow(entry.Normalized) {
			continue
		}

		m := Match{Category: entry.Category, Normalized: entry.Normalized}
		for _, kw := range entry.Keywords {
			if strings.Contains(normalizedDescription, kw.Normalized) {
				m.Score += len(kw.Normalized)
				m.Keywords = append(m.Keywords, kw.Phrase)
			}
		}

		if m.Score > 0 {
			matches = append(matches, m)
		}
	}

	return matches
}

// Best picks the winning match: the first one, in lexicon order, reaching the maximum
// score. It reports false when there is nothing to pick.
func Best(matches []Match) (Match, bool) {
	var best Match
	found := false
	for _, m := range matches {
		if m.Score > best.Score {
			best = m
			found = true
		}
	}
	return best, found
}

// Rank returns the matches ordered by descending score. Equal scores keep their
// original (lexicon) order.
func Rank(matches []Match) []Match {
	ranked := make([]Match, len(matches))
	copy(ranked, matches)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// Confidence maps a score onto [0, 1] as min(score/10, 1). It is a fixed display
// heuristic and carries no probabilistic meaning.
func Confidence(score int) float64 {
	if score <= 0 {
		return 0
	}
	c := float64(score) / confidenceScale
	if c > 1 {
		return 1
	}
	return c
}
