// Package analysis summarizes how a user's transactions are spread across categories.
package analysis

import (
	"time"

	"github.com/shopspring/decimal"
)

// UnknownCategory labels transactions whose category record no longer exists.
const UnknownCategory = "Sem categoria"

const (
	// maxPatterns is how many categories a report lists.
	maxPatterns = 10
	// recentDescriptions is how many descriptions are kept per category.
	recentDescriptions = 5
)

// Report is the pattern analysis of one user's categorized transactions.
type Report struct {
	GeneratedAt      time.Time         `json:"generated_at"`
	CategoryPatterns []CategoryPattern `json:"category_patterns"`
	Summary          Summary           `json:"analysis_summary"`
	UserID           int64             `json:"user_id"`
	TotalCategorized int               `json:"total_categorized_transactions"`
}

// CategoryPattern aggregates the transactions of one category. Amounts are absolute
// values so that income and expense categories compare by volume.
type CategoryPattern struct {
	Category     string          `json:"category"`
	Descriptions []string        `json:"descriptions"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	AvgAmount    decimal.Decimal `json:"avg_amount"`
	CategoryID   int64           `json:"category_id"`
	Count        int             `json:"count"`
}

// Summary holds report-wide figures.
type Summary struct {
	MostUsedCategory           *string `json:"most_used_category"`
	TotalCategoriesUsed        int     `json:"total_categories_used"`
	AvgTransactionsPerCategory float64 `json:"avg_transactions_per_category"`
}
