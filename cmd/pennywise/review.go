package main

import (
	"fmt"

	"github.com/Veraticus/pennywise/internal/cli"
	"github.com/Veraticus/pennywise/internal/tui"
	"github.com/spf13/cobra"
)

func (a *app) reviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Pick categories for uncategorized transactions interactively",
		Long: `Shows each uncategorized transaction with its ranked suggestions. Accepted
choices are saved together when the review ends.`,
		RunE: a.runReview,
	}

	addUserFlag(cmd)
	cmd.Flags().IntP("limit", "n", 0, "maximum number of transactions (default from categorize.batch_limit)")

	return cmd
}

func (a *app) runReview(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	userID, err := userFlag(cmd)
	if err != nil {
		return err
	}
	limit, _ := cmd.Flags().GetInt("limit")

	store, err := a.openStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	eng, err := a.newEngine(store)
	if err != nil {
		return err
	}

	result, err := tui.RunReview(ctx, tui.ReviewConfig{
		Input:   cmd.InOrStdin(),
		Output:  cmd.OutOrStdout(),
		Storage: store,
		Engine:  eng,
		UserID:  userID,
		Limit:   limit,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if result.Reviewed == 0 && result.Applied == 0 {
		fmt.Fprintln(out, cli.FormatInfo("Nothing to review"))
		return nil
	}
	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Saved %d categories, skipped %d", result.Applied, result.Skipped)))
	return nil
}
