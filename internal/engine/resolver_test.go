package engine

import (
	"context"
	"testing"

	"github.com/Veraticus/pennywise/internal/lexicon"
	"github.com/Veraticus/pennywise/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveBest(t *testing.T) {
	ctx := context.Background()
	e := New(newFakeStore(standardCategories()...))

	tests := []struct {
		name        string
		description string
		amount      string
		wantName    string
	}{
		{name: "supermarket expense", description: "Supermercado Extra compra semanal", amount: "-150.0", wantName: "Alimentação"},
		{name: "ride", description: "UBER *TRIP centro", amount: "-23.90", wantName: "Transporte"},
		{name: "longer keyword wins", description: "Uber Eats pedido", amount: "-45", wantName: "Alimentação"},
		{name: "salary income", description: "PIX SALÁRIO empresa", amount: "5000", wantName: "Salário"},
		{name: "income keyword on expense", description: "pix salario", amount: "-10", wantName: ""},
		{name: "no keyword", description: "xyzzy", amount: "-10", wantName: ""},
		{name: "punctuation only", description: "!!! ###", amount: "-10", wantName: ""},
		{name: "empty description", description: "", amount: "-10", wantName: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, err := e.ResolveBest(ctx, tt.description, amount(tt.amount), 1)
			require.NoError(t, err)
			if tt.wantName == "" {
				assert.Nil(t, cat)
				return
			}
			require.NotNil(t, cat)
			assert.Equal(t, tt.wantName, cat.Name)
		})
	}
}

func TestResolveBest_EmptyDescriptionSkipsStore(t *testing.T) {
	store := newFakeStore(standardCategories()...)
	e := New(store)

	cat, err := e.AutoCategorize(context.Background(), "", amount("12"), 1)
	require.NoError(t, err)
	assert.Nil(t, cat)
	assert.Zero(t, store.findCalls)
}

func TestResolveBest_DirectionBoundary(t *testing.T) {
	lex := testLexicon(t,
		lexicon.Definition{Name: "Gastos", Keywords: []string{"ajuste"}},
		lexicon.Definition{Name: "Ganhos", Keywords: []string{"ajuste"}},
	)
	e := New(newFakeStore(
		defaultCategory(1, "Gastos", model.CategoryTypeExpense),
		defaultCategory(2, "Ganhos", model.CategoryTypeIncome),
	), WithLexicon(lex))
	ctx := context.Background()

	zero, err := e.ResolveBest(ctx, "ajuste", decimal.Zero, 1)
	require.NoError(t, err)
	require.NotNil(t, zero)
	assert.Equal(t, "Gastos", zero.Name)

	cent, err := e.ResolveBest(ctx, "ajuste", amount("0.01"), 1)
	require.NoError(t, err)
	require.NotNil(t, cent)
	assert.Equal(t, "Ganhos", cent.Name)
}

func TestResolveBest_InvisibleCategoryNeverWins(t *testing.T) {
	lex := testLexicon(t,
		lexicon.Definition{Name: "Premium", Keywords: []string{"assinatura premium anual"}},
		lexicon.Definition{Name: "Lazer", Keywords: []string{"premium"}},
	)
	// Premium exists only for user 2
	store := newFakeStore(
		userCategory(1, 2, "Premium", model.CategoryTypeExpense),
		defaultCategory(2, "Lazer", model.CategoryTypeExpense),
	)
	e := New(store, WithLexicon(lex))
	ctx := context.Background()

	cat, err := e.ResolveBest(ctx, "assinatura premium anual", amount("-30"), 1)
	require.NoError(t, err)
	require.NotNil(t, cat)
	assert.Equal(t, "Lazer", cat.Name)

	cat, err = e.ResolveBest(ctx, "assinatura premium anual", amount("-30"), 2)
	require.NoError(t, err)
	require.NotNil(t, cat)
	assert.Equal(t, "Premium", cat.Name)
}

func TestResolveBest_TieGoesToFirstLexiconEntry(t *testing.T) {
	lex := testLexicon(t,
		lexicon.Definition{Name: "Primeira", Keywords: []string{"loja"}},
		lexicon.Definition{Name: "Segunda", Keywords: []string{"loja"}},
	)
	// Store order is the reverse of lexicon order
	e := New(newFakeStore(
		defaultCategory(1, "Segunda", model.CategoryTypeExpense),
		defaultCategory(2, "Primeira", model.CategoryTypeExpense),
	), WithLexicon(lex))

	for i := 0; i < 20; i++ {
		cat, err := e.ResolveBest(context.Background(), "loja centro", amount("-1"), 1)
		require.NoError(t, err)
		require.NotNil(t, cat)
		assert.Equal(t, "Primeira", cat.Name)
	}
}

func TestResolveBest_UserCategoryOverridesDefault(t *testing.T) {
	e := New(newFakeStore(
		userCategory(50, 1, "transporte", model.CategoryTypeExpense),
		defaultCategory(2, "Transporte", model.CategoryTypeExpense),
	))

	cat, err := e.ResolveBest(context.Background(), "uber", amount("-10"), 1)
	require.NoError(t, err)
	require.NotNil(t, cat)
	assert.Equal(t, int64(50), cat.ID)
}

func TestResolveBest_StorageError(t *testing.T) {
	store := newFakeStore()
	store.findErr = errStorage
	e := New(store)

	_, err := e.ResolveBest(context.Background(), "uber", amount("-10"), 1)
	assert.ErrorIs(t, err, errStorage)
}

func TestSuggest(t *testing.T) {
	ctx := context.Background()
	e := New(newFakeStore(standardCategories()...))

	t.Run("single keyword", func(t *testing.T) {
		got, err := e.Suggest(ctx, "Uber corrida centro", 1, 3)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, int64(2), got[0].CategoryID)
		assert.Equal(t, "Transporte", got[0].CategoryName)
		assert.Equal(t, model.CategoryTypeExpense, got[0].CategoryType)
		assert.Equal(t, 4, got[0].Score)
		assert.InDelta(t, 0.4, got[0].Confidence, 1e-9)
		assert.Equal(t, []string{"uber"}, got[0].MatchedKeywords)
	})

	t.Run("both directions ranked", func(t *testing.T) {
		got, err := e.Suggest(ctx, "venda mercado livre", 1, 3)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Vendas", got[0].CategoryName)
		assert.Equal(t, model.CategoryTypeIncome, got[0].CategoryType)
		assert.Equal(t, 1.0, got[0].Confidence)
		assert.Equal(t, "Alimentação", got[1].CategoryName)
		assert.GreaterOrEqual(t, got[0].Score, got[1].Score)
	})

	t.Run("truncated to limit", func(t *testing.T) {
		got, err := e.Suggest(ctx, "cinema shopping", 1, 1)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Lazer", got[0].CategoryName)
	})

	t.Run("non-positive limit uses default", func(t *testing.T) {
		got, err := e.Suggest(ctx, "farmacia drogasil", 1, 0)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("empty description", func(t *testing.T) {
		got, err := e.Suggest(ctx, "", 1, 3)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestSuggest_StableForEqualScores(t *testing.T) {
	lex := testLexicon(t,
		lexicon.Definition{Name: "A", Keywords: []string{"abc"}},
		lexicon.Definition{Name: "B", Keywords: []string{"xyz"}},
		lexicon.Definition{Name: "C", Keywords: []string{"abcd"}},
	)
	e := New(newFakeStore(
		defaultCategory(3, "C", model.CategoryTypeExpense),
		defaultCategory(2, "B", model.CategoryTypeIncome),
		defaultCategory(1, "A", model.CategoryTypeExpense),
	), WithLexicon(lex))

	got, err := e.Suggest(context.Background(), "abcd xyz", 1, 10)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "C", got[0].CategoryName)
	assert.Equal(t, "A", got[1].CategoryName)
	assert.Equal(t, "B", got[2].CategoryName)
}

func TestSuggest_StorageError(t *testing.T) {
	store := newFakeStore()
	store.findErr = errStorage

	_, err := New(store).Suggest(context.Background(), "uber", 1, 3)
	assert.ErrorIs(t, err, errStorage)
}
