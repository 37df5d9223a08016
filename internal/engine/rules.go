package engine

import (
	"context"
	"fmt"
)

// CreateRule reports whether a keyword rule pointing at categoryID would be valid for
// userID: the category must exist and be a default or owned by the user. Rules are not
// stored and nothing reads them back.
func (e *Engine) CreateRule(ctx context.Context, userID int64, keyword string, categoryID int64) (bool, error) {
	cat, err := e.store.GetVisibleCategory(ctx, userID, categoryID)
	if err != nil {
		return false, fmt.Errorf("failed to look up category %d: %w", categoryID, err)
	}
	if cat == nil {
		e.logger.Debug("rule rejected", "user_id", userID, "keyword", keyword, "category_id", categoryID)
		return false, nil
	}
	e.logger.Debug("rule validated", "user_id", userID, "keyword", keyword, "category", cat.Name)
	return true, nil
}
