package main

import (
	"encoding/json"
	"fmt"

	"github.com/Veraticus/pennywise/internal/analysis"
	"github.com/spf13/cobra"
)

func (a *app) analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Show how a user's transactions spread across categories",
		RunE:  a.runAnalyze,
	}

	addUserFlag(cmd)
	cmd.Flags().String("currency", "", "currency used to display amounts (default from display.currency)")
	cmd.Flags().Bool("json", false, "print the report as JSON")

	return cmd
}

func (a *app) runAnalyze(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	userID, err := userFlag(cmd)
	if err != nil {
		return err
	}
	currency, _ := cmd.Flags().GetString("currency")
	if currency == "" {
		currency = a.cfg.Display.Currency
	}
	asJSON, _ := cmd.Flags().GetBool("json")

	store, err := a.openStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	txns, err := store.FindCategorizedTransactions(ctx, userID)
	if err != nil {
		return err
	}
	categories, err := store.FindCategories(ctx, userID, nil)
	if err != nil {
		return err
	}

	rep := analysis.Analyze(userID, txns, analysis.CategoryMap(categories))
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}

	fmt.Fprintln(cmd.OutOrStdout(), analysis.NewCLIFormatter(currency).FormatReport(rep))
	return nil
}
