// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/Veraticus/pennywise/internal/model"
)

// CategoryReader is the read side of category storage the categorizer depends on.
type CategoryReader interface {
	// FindCategories returns the categories visible to userID (defaults plus the
	// user's own), optionally restricted to one direction. Defaults come first, then
	// user-owned categories, each group in id order.
	FindCategories(ctx context.Context, userID int64, direction *model.CategoryType) ([]model.Category, error)
	// GetVisibleCategory returns the category if it exists and is default or owned by
	// userID, nil otherwise.
	GetVisibleCategory(ctx context.Context, userID, categoryID int64) (*model.Category, error)
}

// TransactionWriter is what batch categorization needs from transaction storage.
type TransactionWriter interface {
	FindUncategorizedTransactions(ctx context.Context, userID int64, limit int) ([]model.Transaction, error)
	UpdateTransactionCategory(ctx context.Context, transactionID, categoryID int64) error
}

// Store groups every data operation. It is implemented both by the storage itself and
// by a storage transaction.
type Store interface {
	CategoryReader
	TransactionWriter

	// Category operations
	GetCategory(ctx context.Context, id int64) (*model.Category, error)
	CreateCategory(ctx context.Context, category *model.Category) error
	SeedDefaultCategories(ctx context.Context) (int, error)

	// Transaction operations
	SaveTransactions(ctx context.Context, transactions []model.Transaction) (int, error)
	GetTransaction(ctx context.Context, id int64) (*model.Transaction, error)
	FindCategorizedTransactions(ctx context.Context, userID int64) ([]model.Transaction, error)
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	Store

	// Database management
	Migrate(ctx context.Context) error
	BeginTx(ctx context.Context) (Transaction, error)
	Close() error
}

// Transaction represents a database transaction. Work done through it becomes visible
// only after Commit; Rollback discards all of it.
type Transaction interface {
	Store
	Commit() error
	Rollback() error
}
