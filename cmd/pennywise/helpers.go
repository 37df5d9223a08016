package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/pennywise/internal/common"
	"github.com/Veraticus/pennywise/internal/engine"
	"github.com/Veraticus/pennywise/internal/lexicon"
	"github.com/Veraticus/pennywise/internal/report"
	"github.com/Veraticus/pennywise/internal/storage"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// openStorage opens the configured database, migrates it and makes sure the default
// categories exist.
func (a *app) openStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(a.cfg.Database.Path)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	if _, err := store.SeedDefaultCategories(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to seed default categories: %w", err)
	}

	return store, nil
}

// newEngine builds an engine from the configured lexicon and limits.
func (a *app) newEngine(store engine.CategoryStore, opts ...engine.Option) (*engine.Engine, error) {
	base := []engine.Option{
		engine.WithLogger(slog.Default()),
		engine.WithConfig(engine.Config{
			SuggestLimit: a.cfg.Categorize.SuggestLimit,
			BatchLimit:   a.cfg.Categorize.BatchLimit,
		}),
	}

	if path := a.cfg.Lexicon.Path; path != "" {
		lex, err := lexicon.LoadFile(path)
		if err != nil {
			return nil, common.NewUserError("Could not load the keyword lexicon", err)
		}
		slog.Debug("Using lexicon override", "path", path, "categories", lex.Len())
		base = append(base, engine.WithLexicon(lex))
	}

	return engine.New(store, append(base, opts...)...), nil
}

// addUserFlag registers the --user flag shared by most commands.
func addUserFlag(cmd *cobra.Command) {
	cmd.Flags().Int64P("user", "u", 0, "user id (required)")
	_ = cmd.MarkFlagRequired("user")
}

func userFlag(cmd *cobra.Command) (int64, error) {
	userID, err := cmd.Flags().GetInt64("user")
	if err != nil {
		return 0, err
	}
	if userID <= 0 {
		return 0, common.NewUserError("--user must be a positive id", common.ErrInvalidInput)
	}
	return userID, nil
}

func parseAmountArg(s string) (decimal.Decimal, error) {
	amount, err := report.ParseAmount(s)
	if err != nil {
		return decimal.Zero, common.NewUserError(fmt.Sprintf("Invalid amount %q", s), err)
	}
	return amount, nil
}
