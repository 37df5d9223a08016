package main

import (
	"fmt"

	"github.com/Veraticus/pennywise/internal/cli"
	"github.com/spf13/cobra"
)

func (a *app) categorizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categorize DESCRIPTION AMOUNT",
		Short: "Pick the single best category for a transaction",
		Long: `Resolves the best category for a description. The sign of AMOUNT decides
the direction: positive amounts are income, zero and negative amounts are expenses.`,
		Example: `  pennywise categorize "Supermercado Extra" -- -150.00 --user 1`,
		Args:    cobra.ExactArgs(2),
		RunE:    a.runCategorize,
	}

	addUserFlag(cmd)

	return cmd
}

func (a *app) runCategorize(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	userID, err := userFlag(cmd)
	if err != nil {
		return err
	}
	amount, err := parseAmountArg(args[1])
	if err != nil {
		return err
	}

	store, err := a.openStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	eng, err := a.newEngine(store)
	if err != nil {
		return err
	}

	cat, err := eng.AutoCategorize(ctx, args[0], amount, userID)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatCategory(args[0], cat))
	return nil
}
