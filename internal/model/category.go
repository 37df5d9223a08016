// Package model defines the core domain models used throughout the application.
package model

import (
	"fmt"
	"time"
)

// CategoryType indicates whether a category is for income or expense transactions.
type CategoryType string

const (
	// CategoryTypeIncome represents categories for income transactions.
	CategoryTypeIncome CategoryType = "income"
	// CategoryTypeExpense represents categories for expense transactions.
	CategoryTypeExpense CategoryType = "expense"
)

// Valid reports whether t is one of the known directions.
func (t CategoryType) Valid() bool {
	return t == CategoryTypeIncome || t == CategoryTypeExpense
}

// ParseCategoryType converts user input into a CategoryType.
func ParseCategoryType(s string) (CategoryType, error) {
	t := CategoryType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown category type %q (want income or expense)", s)
	}
	return t, nil
}

// Category is a spending or income bucket. Default categories are visible to every
// user; the others belong to exactly one user.
type Category struct {
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	UserID      *int64       `json:"user_id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Color       string       `json:"color,omitempty"`
	Icon        string       `json:"icon,omitempty"`
	Type        CategoryType `json:"category_type"`
	ID          int64        `json:"id"`
	IsDefault   bool         `json:"is_default"`
}

// VisibleTo reports whether the category can be used by userID.
func (c Category) VisibleTo(userID int64) bool {
	if c.IsDefault {
		return true
	}
	return c.UserID != nil && *c.UserID == userID
}
