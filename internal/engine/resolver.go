package engine

import (
	"context"
	"fmt"

	"github.com/Veraticus/pennywise/internal/model"
	"github.com/Veraticus/pennywise/internal/normalize"
	"github.com/Veraticus/pennywise/internal/pattern"
	"github.com/shopspring/decimal"
)

// DirectionFor returns the direction of a signed amount. Zero is an expense.
func DirectionFor(amount decimal.Decimal) model.CategoryType {
	return model.DirectionOf(amount)
}

// categoryIndex maps normalized category names to the visible record that claims them.
// Categories are indexed in the order the store returns them, so a user's own category
// replaces a default one with the same normalized name.
type categoryIndex map[string]model.Category

func newCategoryIndex(categories []model.Category) categoryIndex {
	idx := make(categoryIndex, len(categories))
	for _, cat := range categories {
		key := normalize.Text(cat.Name)
		if key == "" {
			continue
		}
		idx[key] = cat
	}
	return idx
}

func (idx categoryIndex) allows(normalizedCategory string) bool {
	_, ok := idx[normalizedCategory]
	return ok
}

// ResolveBest returns the best category for a transaction, or nil when nothing matches.
// Only categories visible to userID in the amount's direction are considered.
func (e *Engine) ResolveBest(ctx context.Context, description string, amount decimal.Decimal, userID int64) (*model.Category, error) {
	return e.resolveBest(ctx, e.store, nil, description, amount, userID)
}

// AutoCategorize is ResolveBest under the name the API exposes.
func (e *Engine) AutoCategorize(ctx context.Context, description string, amount decimal.Decimal, userID int64) (*model.Category, error) {
	return e.ResolveBest(ctx, description, amount, userID)
}

// resolveBest resolves against store. When cache is non-nil, category lists are
// loaded once per direction and reused.
func (e *Engine) resolveBest(
	ctx context.Context,
	store CategoryStore,
	cache map[model.CategoryType]categoryIndex,
	description string,
	amount decimal.Decimal,
	userID int64,
) (*model.Category, error) {
	if description == "" {
		return nil, nil
	}

	direction := DirectionFor(amount)
	idx, ok := cache[direction]
	if !ok {
		categories, err := store.FindCategories(ctx, userID, &direction)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s categories for user %d: %w", direction, userID, err)
		}
		idx = newCategoryIndex(categories)
		if cache != nil {
			cache[direction] = idx
		}
	}

	best, found := pattern.Best(e.matcher.ScoreFiltered(normalize.Text(description), idx.allows))
	if !found {
		return nil, nil
	}

	cat := idx[best.Normalized]
	e.logger.Debug("resolved category",
		"description", description,
		"category", cat.Name,
		"score", best.Score,
		"direction", direction)
	return &cat, nil
}

// Suggest ranks every visible category of either direction against description and
// returns at most limit candidates, highest score first. Equal scores keep lexicon
// order. A non-positive limit uses the configured default.
func (e *Engine) Suggest(ctx context.Context, description string, userID int64, limit int) ([]model.Candidate, error) {
	if limit <= 0 {
		limit = e.config.SuggestLimit
	}

	candidates := []model.Candidate{}
	if description == "" {
		return candidates, nil
	}

	categories, err := e.store.FindCategories(ctx, userID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories for user %d: %w", userID, err)
	}
	idx := newCategoryIndex(categories)

	ranked := pattern.Rank(e.matcher.ScoreFiltered(normalize.Text(description), idx.allows))
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	for _, m := range ranked {
		cat := idx[m.Normalized]
		keywords := make([]string, len(m.Keywords))
		copy(keywords, m.Keywords)
		candidates = append(candidates, model.Candidate{
			CategoryID:      cat.ID,
			CategoryName:    cat.Name,
			CategoryType:    cat.Type,
			Score:           m.Score,
			Confidence:      pattern.Confidence(m.Score),
			MatchedKeywords: keywords,
		})
	}
	return candidates, nil
}
