package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/Veraticus/pennywise/internal/engine"
	"github.com/Veraticus/pennywise/internal/model"
	"github.com/Veraticus/pennywise/internal/service"
	tea "github.com/charmbracelet/bubbletea"
)

// ReviewConfig holds what a review session needs.
type ReviewConfig struct {
	Input   io.Reader
	Output  io.Writer
	Storage service.Storage
	Engine  *engine.Engine
	UserID  int64
	Limit   int
}

// ReviewResult summarizes a finished review.
type ReviewResult struct {
	Decisions []Decision
	Reviewed  int
	Skipped   int
	Applied   int
}

// LoadItems suggests categories for each transaction.
func LoadItems(ctx context.Context, eng *engine.Engine, userID int64, txns []model.Transaction) ([]Item, error) {
	items := make([]Item, 0, len(txns))
	for _, txn := range txns {
		candidates, err := eng.Suggest(ctx, txn.Description, userID, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to suggest categories for transaction %d: %w", txn.ID, err)
		}
		items = append(items, Item{Transaction: txn, Candidates: candidates})
	}
	return items, nil
}

// ApplyDecisions writes every decision in one storage transaction.
func ApplyDecisions(ctx context.Context, storage service.Storage, decisions []Decision) (int, error) {
	if len(decisions) == 0 {
		return 0, nil
	}

	tx, err := storage.BeginTx(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}

	for _, d := range decisions {
		if err := tx.UpdateTransactionCategory(ctx, d.TransactionID, d.CategoryID); err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				slog.Warn("rollback failed", "error", rbErr)
			}
			return 0, fmt.Errorf("failed to categorize transaction %d: %w", d.TransactionID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit review: %w", err)
	}
	return len(decisions), nil
}

// RunReview loads the user's uncategorized transactions, lets the user pick a
// category for each and applies the picks.
func RunReview(ctx context.Context, cfg ReviewConfig) (*ReviewResult, error) {
	if cfg.Storage == nil {
		return nil, errors.New("storage is required")
	}
	if cfg.Engine == nil {
		return nil, errors.New("engine is required")
	}
	limit := cfg.Limit
	if limit <= 0 {
		limit = cfg.Engine.Config().BatchLimit
	}

	txns, err := cfg.Storage.FindUncategorizedTransactions(ctx, cfg.UserID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	items, err := LoadItems(ctx, cfg.Engine, cfg.UserID, txns)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return &ReviewResult{}, nil
	}

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.Input != nil {
		opts = append(opts, tea.WithInput(cfg.Input))
	}
	if cfg.Output != nil {
		opts = append(opts, tea.WithOutput(cfg.Output))
	}

	final, err := tea.NewProgram(NewModel(items), opts...).Run()
	if err != nil {
		return nil, fmt.Errorf("review session failed: %w", err)
	}
	m, ok := final.(Model)
	if !ok {
		return nil, fmt.Errorf("unexpected model type %T", final)
	}

	applied, err := ApplyDecisions(ctx, cfg.Storage, m.Decisions())
	if err != nil {
		return nil, err
	}
	return &ReviewResult{
		Decisions: m.Decisions(),
		Reviewed:  len(m.Decisions()) + m.Skipped(),
		Skipped:   m.Skipped(),
		Applied:   applied,
	}, nil
}
