package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/pennywise/internal/lexicon"
	"github.com/Veraticus/pennywise/internal/normalize"
)

func testLexicon(t *testing.T, defs ...lexicon.Definition) *lexicon.Lexicon {
	t.Helper()
	lex, err := lexicon.New(defs)
	require.NoError(t, err)
	return lex
}

func TestScorer_Score(t *testing.T) {
	scorer := NewScorer(nil)

	tests := []struct {
		name        string
		description string
		wantFirst   string
		wantScore   int
		wantKws     []string
	}{
		{
			name:        "single keyword",
			description: "Uber corrida centro",
			wantFirst:   "Transporte",
			wantScore:   4,
			wantKws:     []string{"uber"},
		},
		{
			name:        "keywords are summed by length",
			description: "Supermercado Extra compra semanal",
			wantFirst:   "Alimentação",
			wantScore:   len("supermercado") + len("mercado"),
			wantKws:     []string{"supermercado", "mercado"},
		},
		{
			name:        "accents in description are folded",
			description: "FARMÁCIA São João",
			wantFirst:   "Saúde",
			wantScore:   len("farmacia"),
			wantKws:     []string{"farmacia"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches := scorer.Score(normalize.Text(tt.description))
			require.NotEmpty(t, matches)

			var got *Match
			for i := range matches {
				if matches[i].Category == tt.wantFirst {
					got = &matches[i]
				}
			}
			require.NotNil(t, got, "expected a match for %s", tt.wantFirst)
			assert.Equal(t, tt.wantScore, got.Score)
			assert.Equal(t, tt.wantKws, got.Keywords)
		})
	}
}

func TestScorer_ZeroScoreExcluded(t *testing.T) {
	scorer := NewScorer(nil)

	assert.Empty(t, scorer.Score(""))
	assert.Empty(t, scorer.Score("xyzzy qwerty"))

	for _, m := range scorer.Score("uber corrida") {
		assert.Positive(t, m.Score)
	}
}

func TestScorer_LongerKeywordsWeighMore(t *testing.T) {
	lex := testLexicon(t,
		lexicon.Definition{Name: "Lazer", Keywords: []string{"bar"}},
		lexicon.Definition{Name: "Serviços", Keywords: []string{"cartao de credito"}},
	)
	matches := NewScorer(lex).Score(normalize.Text("Bar pago com cartão de crédito"))

	best, ok := Best(matches)
	require.True(t, ok)
	assert.Equal(t, "Serviços", best.Category)
	assert.Equal(t, len("cartao de credito"), best.Score)
}

func TestScorer_ScoreFiltered(t *testing.T) {
	scorer := NewScorer(nil)
	desc := normalize.Text("uber eats pizza")

	all := scorer.Score(desc)
	require.Len(t, all, 2)

	onlyTransport := scorer.ScoreFiltered(desc, func(name string) bool { return name == "transporte" })
	require.Len(t, onlyTransport, 1)
	assert.Equal(t, "Transporte", onlyTransport[0].Category)
	assert.Equal(t, "transporte", onlyTransport[0].Normalized)
}

func TestBest_FirstMaximumInLexiconOrderWins(t *testing.T) {
	lex := testLexicon(t,
		lexicon.Definition{Name: "Lazer", Keywords: []string{"shopping"}},
		lexicon.Definition{Name: "Compras", Keywords: []string{"shopping"}},
	)
	scorer := NewScorer(lex)

	for i := 0; i < 20; i++ {
		best, ok := Best(scorer.Score("shopping center norte"))
		require.True(t, ok)
		assert.Equal(t, "Lazer", best.Category)
	}
}

func TestBest_Empty(t *testing.T) {
	_, ok := Best(nil)
	assert.False(t, ok)
}

func TestRank_StableOnTies(t *testing.T) {
	matches := []Match{
		{Category: "A", Score: 3},
		{Category: "B", Score: 7},
		{Category: "C", Score: 3},
		{Category: "D", Score: 7},
	}

	ranked := Rank(matches)
	got := make([]string, len(ranked))
	for i, m := range ranked {
		got[i] = m.Category
	}

	assert.Equal(t, []string{"B", "D", "A", "C"}, got)
	assert.Equal(t, "A", matches[0].Category, "input is left untouched")
}

func TestConfidence(t *testing.T) {
	assert.InDelta(t, 0.0, Confidence(0), 1e-9)
	assert.InDelta(t, 0.4, Confidence(4), 1e-9)
	assert.InDelta(t, 1.0, Confidence(10), 1e-9)
	assert.InDelta(t, 1.0, Confidence(19), 1e-9)
}
