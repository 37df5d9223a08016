package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/Veraticus/pennywise/internal/cli"
	"github.com/Veraticus/pennywise/internal/common"
	"github.com/Veraticus/pennywise/internal/engine"
	"github.com/Veraticus/pennywise/internal/model"
	"github.com/Veraticus/pennywise/internal/report"
	"github.com/spf13/cobra"
)

func (a *app) batchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Categorize a user's uncategorized transactions",
		Long: `Runs every uncategorized transaction of a user through the categorizer inside
one database transaction. Nothing is saved if the run fails or is interrupted.`,
		RunE: a.runBatch,
	}

	addUserFlag(cmd)
	cmd.Flags().IntP("limit", "n", 0, "maximum number of transactions (default from categorize.batch_limit)")
	cmd.Flags().Bool("dry-run", false, "show what would change without saving")
	cmd.Flags().String("csv", "", "also write the per-transaction results to this CSV file")
	cmd.Flags().Bool("no-progress", false, "disable the progress bar")

	return cmd
}

func (a *app) runBatch(cmd *cobra.Command, _ []string) error {
	userID, err := userFlag(cmd)
	if err != nil {
		return err
	}
	limit, _ := cmd.Flags().GetInt("limit")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	csvPath, _ := cmd.Flags().GetString("csv")
	noProgress, _ := cmd.Flags().GetBool("no-progress")

	interrupts := cli.NewInterruptHandler(cmd.ErrOrStderr(), "No changes were saved.")
	ctx, stop := interrupts.HandleInterrupts(cmd.Context())
	defer stop()

	store, err := a.openStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	var opts []engine.Option
	if !noProgress {
		opts = append(opts, engine.WithProgress(cli.NewProgress(cmd.ErrOrStderr(), "Categorizing").Observe))
	}
	eng, err := a.newEngine(store, opts...)
	if err != nil {
		return err
	}

	tx, err := store.BeginTx(ctx)
	if err != nil {
		return err
	}

	result, err := eng.BatchCategorize(ctx, tx, userID, limit)
	if err != nil {
		_ = tx.Rollback()
		if interrupts.WasInterrupted() {
			return common.NewUserError("Batch interrupted", err)
		}
		return err
	}

	if dryRun {
		if err := tx.Rollback(); err != nil {
			return fmt.Errorf("failed to discard dry run: %w", err)
		}
	} else if err := tx.Commit(); err != nil {
		return err
	}

	if csvPath != "" {
		if err := writeBatchCSV(csvPath, result.Details); err != nil {
			return err
		}
		slog.Info("Wrote batch results", "path", csvPath, "rows", len(result.Details))
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatBatchResult(result, !dryRun))
	return nil
}

func writeBatchCSV(path string, details []model.BatchDetail) (err error) {
	f, err := os.Create(path) // #nosec G304 -- path is given by the operator
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return report.WriteBatchDetails(f, details)
}
