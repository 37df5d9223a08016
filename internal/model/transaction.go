package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the projection of a stored transaction the categorizer works with.
// Only CategoryID is ever changed by categorization.
type Transaction struct {
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	CategoryID  *int64          `json:"category_id"`
	Description string          `json:"description"`
	ExternalID  string          `json:"external_id,omitempty"`
	Type        CategoryType    `json:"transaction_type"`
	Amount      decimal.Decimal `json:"amount"`
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
}

// DirectionOf derives the direction of a signed amount: strictly positive amounts are
// income, everything else (zero included) is expense.
func DirectionOf(amount decimal.Decimal) CategoryType {
	if amount.IsPositive() {
		return CategoryTypeIncome
	}
	return CategoryTypeExpense
}

// SignedAmount returns the amount with the sign implied by the transaction type.
// Expense-typed rows recorded with a positive value are flipped negative; untyped and
// income rows keep their stored sign.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Type == CategoryTypeExpense && t.Amount.IsPositive() {
		return t.Amount.Neg()
	}
	return t.Amount
}

// IsCategorized reports whether a category has been assigned.
func (t Transaction) IsCategorized() bool {
	return t.CategoryID != nil
}
