package analysis

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/Veraticus/pennywise/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func categorized(id, categoryID int64, description, amount string) model.Transaction {
	cat := categoryID
	return model.Transaction{
		ID:          id,
		Description: description,
		Amount:      decimal.RequireFromString(amount),
		CategoryID:  &cat,
	}
}

func testCategories() map[int64]model.Category {
	return CategoryMap([]model.Category{
		{ID: 1, Name: "Alimentação", Type: model.CategoryTypeExpense},
		{ID: 2, Name: "Transporte", Type: model.CategoryTypeExpense},
		{ID: 9, Name: "Salário", Type: model.CategoryTypeIncome},
	})
}

func TestAnalyze(t *testing.T) {
	txns := []model.Transaction{
		categorized(1, 2, "uber", "-20.00"),
		categorized(2, 1, "padaria", "-10.50"),
		categorized(3, 1, "ifood", "-30.00"),
		categorized(4, 9, "salario", "5000"),
		categorized(5, 1, "mercado", "-1.00"),
		categorized(6, 42, "orphan", "-3"),
		{ID: 7, Description: "not categorized", Amount: decimal.NewFromInt(-1)},
	}

	report := Analyze(7, txns, testCategories())

	assert.Equal(t, int64(7), report.UserID)
	assert.Equal(t, 6, report.TotalCategorized)
	require.Len(t, report.CategoryPatterns, 4)

	first := report.CategoryPatterns[0]
	assert.Equal(t, "Alimentação", first.Category)
	assert.Equal(t, int64(1), first.CategoryID)
	assert.Equal(t, 3, first.Count)
	assert.True(t, first.TotalAmount.Equal(decimal.RequireFromString("41.50")))
	assert.True(t, first.AvgAmount.Equal(decimal.RequireFromString("13.83")))
	assert.Equal(t, []string{"padaria", "ifood", "mercado"}, first.Descriptions)

	// Equal counts keep first-seen order
	assert.Equal(t, "Transporte", report.CategoryPatterns[1].Category)
	assert.Equal(t, "Salário", report.CategoryPatterns[2].Category)
	assert.True(t, report.CategoryPatterns[2].TotalAmount.Equal(decimal.NewFromInt(5000)))
	assert.Equal(t, UnknownCategory, report.CategoryPatterns[3].Category)

	require.NotNil(t, report.Summary.MostUsedCategory)
	assert.Equal(t, "Alimentação", *report.Summary.MostUsedCategory)
	assert.Equal(t, 4, report.Summary.TotalCategoriesUsed)
	assert.InDelta(t, 1.5, report.Summary.AvgTransactionsPerCategory, 1e-9)
}

func TestAnalyze_KeepsLastFiveDescriptions(t *testing.T) {
	var txns []model.Transaction
	for i := 1; i <= 8; i++ {
		txns = append(txns, categorized(int64(i), 2, fmt.Sprintf("corrida %d", i), "-5"))
	}

	report := Analyze(1, txns, testCategories())
	require.Len(t, report.CategoryPatterns, 1)
	assert.Equal(t, []string{"corrida 4", "corrida 5", "corrida 6", "corrida 7", "corrida 8"},
		report.CategoryPatterns[0].Descriptions)
}

func TestAnalyze_TopTenOnly(t *testing.T) {
	cats := map[int64]model.Category{}
	var txns []model.Transaction
	for i := int64(1); i <= 12; i++ {
		cats[i] = model.Category{ID: i, Name: fmt.Sprintf("Cat %d", i)}
		txns = append(txns, categorized(i, i, "x", "-1"))
	}

	report := Analyze(1, txns, cats)
	assert.Len(t, report.CategoryPatterns, 10)
	assert.Equal(t, 12, report.Summary.TotalCategoriesUsed)
	assert.Equal(t, "Cat 1", report.CategoryPatterns[0].Category)
}

func TestAnalyze_Empty(t *testing.T) {
	report := Analyze(3, nil, nil)

	assert.Zero(t, report.TotalCategorized)
	assert.Nil(t, report.Summary.MostUsedCategory)
	assert.Zero(t, report.Summary.AvgTransactionsPerCategory)

	data, err := json.Marshal(report)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"category_patterns":[]`)
	assert.Contains(t, string(data), `"most_used_category":null`)
}
