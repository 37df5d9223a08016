package analysis

import (
	"sort"
	"time"

	"github.com/Veraticus/pennywise/internal/model"
	"github.com/shopspring/decimal"
)

// Analyze builds a report from categorized transactions, which are expected in
// chronological (id) order. categories resolves category ids to names; transactions
// pointing at unknown categories are grouped under UnknownCategory.
func Analyze(userID int64, transactions []model.Transaction, categories map[int64]model.Category) *Report {
	report := &Report{
		GeneratedAt:      time.Now(),
		UserID:           userID,
		CategoryPatterns: []CategoryPattern{},
	}

	var ordered []*CategoryPattern
	byName := make(map[string]*CategoryPattern)

	for _, txn := range transactions {
		if txn.CategoryID == nil {
			continue
		}
		report.TotalCategorized++

		name := UnknownCategory
		var categoryID int64
		if cat, ok := categories[*txn.CategoryID]; ok {
			name = cat.Name
			categoryID = cat.ID
		}

		p, ok := byName[name]
		if !ok {
			p = &CategoryPattern{Category: name, CategoryID: categoryID, TotalAmount: decimal.Zero}
			byName[name] = p
			ordered = append(ordered, p)
		}
		p.Count++
		p.TotalAmount = p.TotalAmount.Add(txn.Amount.Abs())
		p.Descriptions = append(p.Descriptions, txn.Description)
	}

	for _, p := range ordered {
		p.AvgAmount = p.TotalAmount.Div(decimal.NewFromInt(int64(p.Count))).Round(2)
		if len(p.Descriptions) > recentDescriptions {
			p.Descriptions = p.Descriptions[len(p.Descriptions)-recentDescriptions:]
		}
	}

	// Most frequent first; ties keep first-seen order
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Count > ordered[j].Count
	})

	for i, p := range ordered {
		if i == maxPatterns {
			break
		}
		report.CategoryPatterns = append(report.CategoryPatterns, *p)
	}

	report.Summary.TotalCategoriesUsed = len(ordered)
	if len(ordered) > 0 {
		most := ordered[0].Category
		report.Summary.MostUsedCategory = &most
		report.Summary.AvgTransactionsPerCategory = float64(report.TotalCategorized) / float64(len(ordered))
	}

	return report
}

// CategoryMap indexes categories by id.
func CategoryMap(categories []model.Category) map[int64]model.Category {
	m := make(map[int64]model.Category, len(categories))
	for _, c := range categories {
		m[c.ID] = c
	}
	return m
}
