package storage

import (
	"context"
	"testing"

	"github.com/Veraticus/pennywise/internal/common"
	"github.com/Veraticus/pennywise/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveTransactions(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	txns := createTestTransactions(1, "ifood pedido", "posto shell")
	txns[1].Type = model.CategoryTypeExpense
	txns[1].Amount = decimal.RequireFromString("123.45")

	inserted, err := store.SaveTransactions(ctx, txns)
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)
	assert.Positive(t, txns[0].ID)
	assert.Greater(t, txns[1].ID, txns[0].ID)

	got, err := store.GetTransaction(ctx, txns[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "posto shell", got.Description)
	assert.True(t, got.Amount.Equal(decimal.RequireFromString("123.45")))
	assert.Equal(t, model.CategoryTypeExpense, got.Type)
	assert.True(t, got.Date.Equal(txns[1].Date))
	assert.Nil(t, got.CategoryID)
}

func TestSaveTransactions_SkipsDuplicateExternalIDs(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	first := createTestTransactions(1, "netflix")
	first[0].ExternalID = "FIT-1"
	inserted, err := store.SaveTransactions(ctx, first)
	require.NoError(t, err)
	require.Equal(t, 1, inserted)

	again := createTestTransactions(1, "netflix", "spotify")
	again[0].ExternalID = "FIT-1"
	again[1].ExternalID = "FIT-2"
	inserted, err = store.SaveTransactions(ctx, again)
	require.NoError(t, err)
	assert.Equal(t, 1, inserted)
	assert.Zero(t, again[0].ID)

	// Same reference for a different user is a different transaction
	other := createTestTransactions(2, "netflix")
	other[0].ExternalID = "FIT-1"
	inserted, err = store.SaveTransactions(ctx, other)
	require.NoError(t, err)
	assert.Equal(t, 1, inserted)
}

func TestSaveTransactions_Validation(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	tests := []struct {
		wantErr error
		name    string
		txns    []model.Transaction
	}{
		{name: "nil slice", txns: nil, wantErr: ErrNilParameter},
		{name: "empty slice", txns: []model.Transaction{}, wantErr: ErrEmptySlice},
		{name: "missing user", txns: []model.Transaction{{Description: "x"}}, wantErr: ErrInvalidTransaction},
		{name: "bad type", txns: []model.Transaction{{UserID: 1, Type: "transfer"}}, wantErr: ErrInvalidTransaction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.SaveTransactions(ctx, tt.txns)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFindUncategorizedTransactions(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	_, err := store.SaveTransactions(ctx, createTestTransactions(1, "a", "b", "c", "d"))
	require.NoError(t, err)
	_, err = store.SaveTransactions(ctx, createTestTransactions(2, "other user"))
	require.NoError(t, err)

	all, err := store.FindUncategorizedTransactions(ctx, 1, 100)
	require.NoError(t, err)
	require.Len(t, all, 4)
	for i := 1; i < len(all); i++ {
		assert.Greater(t, all[i].ID, all[i-1].ID)
	}

	lazer := findCategoryByName(t, store, 1, "Lazer")
	require.NoError(t, store.UpdateTransactionCategory(ctx, all[0].ID, lazer.ID))

	limited, err := store.FindUncategorizedTransactions(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "b", limited[0].Description)
	assert.Equal(t, "c", limited[1].Description)

	categorized, err := store.FindCategorizedTransactions(ctx, 1)
	require.NoError(t, err)
	require.Len(t, categorized, 1)
	assert.Equal(t, "a", categorized[0].Description)

	_, err = store.FindUncategorizedTransactions(ctx, 1, 0)
	assert.ErrorIs(t, err, ErrInvalidLimit)
}

func TestUpdateTransactionCategory(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	txns := createTestTransactions(1, "uber")
	_, err := store.SaveTransactions(ctx, txns)
	require.NoError(t, err)
	transporte := findCategoryByName(t, store, 1, "Transporte")

	t.Run("missing transaction", func(t *testing.T) {
		err := store.UpdateTransactionCategory(ctx, 9999, transporte.ID)
		assert.ErrorIs(t, err, common.ErrNotFound)
	})

	t.Run("missing category violates foreign key", func(t *testing.T) {
		err := store.UpdateTransactionCategory(ctx, txns[0].ID, 9999)
		assert.Error(t, err)
	})

	t.Run("invalid ids", func(t *testing.T) {
		assert.ErrorIs(t, store.UpdateTransactionCategory(ctx, 0, transporte.ID), ErrInvalidID)
		assert.ErrorIs(t, store.UpdateTransactionCategory(ctx, txns[0].ID, -1), ErrInvalidID)
	})

	t.Run("assigns", func(t *testing.T) {
		require.NoError(t, store.UpdateTransactionCategory(ctx, txns[0].ID, transporte.ID))
		got, err := store.GetTransaction(ctx, txns[0].ID)
		require.NoError(t, err)
		require.True(t, got.IsCategorized())
		assert.Equal(t, transporte.ID, *got.CategoryID)
	})
}

func TestGetTransaction_NotFound(t *testing.T) {
	store := createTestStorage(t)

	_, err := store.GetTransaction(context.Background(), 77)
	assert.ErrorIs(t, err, common.ErrNotFound)
}
