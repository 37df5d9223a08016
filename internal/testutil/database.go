// Package testutil provides shared test fixtures backed by a real SQLite database.
package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/Veraticus/pennywise/internal/model"
	"github.com/Veraticus/pennywise/internal/service"
	"github.com/Veraticus/pennywise/internal/storage"
	"github.com/shopspring/decimal"
)

// TestDB is a migrated in-memory database with helpers for seeding test data.
type TestDB struct {
	Storage service.Storage
	t       *testing.T
}

// TestDBOptions provides configuration options for test database setup.
type TestDBOptions struct {
	CustomSetup func(context.Context, service.Storage) error
	// SkipSeed leaves the default categories out.
	SkipSeed bool
}

// SetupTestDB creates an in-memory database with the default categories seeded.
// Cleanup is registered on t.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()
	return SetupTestDBWithOptions(t, TestDBOptions{})
}

// SetupTestDBWithOptions creates a test database with custom options.
func SetupTestDBWithOptions(t *testing.T, opts TestDBOptions) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	if !opts.SkipSeed {
		if _, err := store.SeedDefaultCategories(ctx); err != nil {
			t.Fatalf("failed to seed categories: %v", err)
		}
	}

	if opts.CustomSetup != nil {
		if err := opts.CustomSetup(ctx, store); err != nil {
			t.Fatalf("custom setup failed: %v", err)
		}
	}

	return &TestDB{Storage: store, t: t}
}

// MustCategory returns the category named name visible to userID or fails the test.
func (db *TestDB) MustCategory(userID int64, name string) model.Category {
	db.t.Helper()
	cats, err := db.Storage.FindCategories(context.Background(), userID, nil)
	if err != nil {
		db.t.Fatalf("failed to list categories: %v", err)
	}
	for _, c := range cats {
		if c.Name == name {
			return c
		}
	}
	db.t.Fatalf("category %q not visible to user %d", name, userID)
	return model.Category{}
}

// AddUserCategory creates a category owned by userID.
func (db *TestDB) AddUserCategory(userID int64, name string, typ model.CategoryType) model.Category {
	db.t.Helper()
	cat := model.Category{Name: name, Type: typ, UserID: &userID}
	if err := db.Storage.CreateCategory(context.Background(), &cat); err != nil {
		db.t.Fatalf("failed to create category %q: %v", name, err)
	}
	return cat
}

// AddTransactions stores one uncategorized transaction per description/amount pair
// and returns them with their ids set. pairs alternates description and amount.
func (db *TestDB) AddTransactions(userID int64, pairs ...string) []model.Transaction {
	db.t.Helper()
	if len(pairs)%2 != 0 {
		db.t.Fatalf("AddTransactions needs description/amount pairs, got %d values", len(pairs))
	}

	txns := make([]model.Transaction, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		amount, err := decimal.NewFromString(pairs[i+1])
		if err != nil {
			db.t.Fatalf("bad amount %q: %v", pairs[i+1], err)
		}
		txns = append(txns, model.Transaction{UserID: userID, Description: pairs[i], Amount: amount})
	}

	if _, err := db.Storage.SaveTransactions(context.Background(), txns); err != nil {
		db.t.Fatalf("failed to save transactions: %v", err)
	}
	return txns
}

// WithTransaction executes fn within a database transaction that is always rolled
// back afterwards.
func (db *TestDB) WithTransaction(fn func(tx service.Transaction) error) error {
	tx, err := db.Storage.BeginTx(context.Background())
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	return fn(tx)
}
