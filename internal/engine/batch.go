package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/Veraticus/pennywise/internal/model"
)

// BatchCategorize resolves up to limit uncategorized transactions of userID and writes
// each hit through store. Misses are reported, never treated as errors. Any storage
// error stops the batch and is returned; the caller must then roll store back so that
// no partial update survives. A non-positive limit uses the configured default.
func (e *Engine) BatchCategorize(ctx context.Context, store BatchStore, userID int64, limit int) (*model.BatchResult, error) {
	if limit <= 0 {
		limit = e.config.BatchLimit
	}
	start := time.Now()

	transactions, err := store.FindUncategorizedTransactions(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load uncategorized transactions: %w", err)
	}

	result := model.NewBatchResult()
	cache := make(map[model.CategoryType]categoryIndex, 2)

	for i := range transactions {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("batch canceled after %d transactions: %w", i, err)
		}

		txn := &transactions[i]
		cat, err := e.resolveBest(ctx, store, cache, txn.Description, txn.SignedAmount(), userID)
		if err != nil {
			return nil, err
		}

		detail := model.BatchDetail{
			TransactionID: txn.ID,
			Description:   txn.Description,
			Status:        model.StatusUncategorized,
		}
		if cat != nil {
			if err := store.UpdateTransactionCategory(ctx, txn.ID, cat.ID); err != nil {
				return nil, fmt.Errorf("failed to categorize transaction %d: %w", txn.ID, err)
			}
			categoryID := cat.ID
			txn.CategoryID = &categoryID

			detail.Status = model.StatusCategorized
			detail.SuggestedCategory = cat.Name
			detail.CategoryID = cat.ID
		}
		result.Record(detail)

		if e.progress != nil {
			e.progress(i+1, len(transactions))
		}
	}

	e.logger.Info("batch categorization finished",
		"user_id", userID,
		"total_processed", result.TotalProcessed,
		"categorized", result.Categorized,
		"uncategorized", result.Uncategorized,
		"duration", time.Since(start))
	return result, nil
}
