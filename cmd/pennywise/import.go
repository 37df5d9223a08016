package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"unicode/utf8"

	"github.com/Veraticus/pennywise/internal/cli"
	"github.com/Veraticus/pennywise/internal/common"
	"github.com/Veraticus/pennywise/internal/model"
	"github.com/Veraticus/pennywise/internal/ofx"
	"github.com/Veraticus/pennywise/internal/report"
	"github.com/spf13/cobra"
)

func (a *app) importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import transactions from statement files",
		Long: `Imports transactions as uncategorized. Transactions that carry an external id
(the OFX FITID, or the external_id CSV column) are imported only once.`,
	}

	cmd.AddCommand(a.importOFXCmd())
	cmd.AddCommand(a.importCSVCmd())

	return cmd
}

func (a *app) importOFXCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ofx FILE...",
		Short: "Import OFX/QFX statements",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := userFlag(cmd)
			if err != nil {
				return err
			}
			parser := ofx.NewParser()
			return a.importFiles(cmd, args, func(ctx context.Context, f *os.File) ([]model.Transaction, error) {
				return parser.ParseFile(ctx, f, userID)
			})
		},
	}

	addUserFlag(cmd)

	return cmd
}

func (a *app) importCSVCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "csv FILE...",
		Short: "Import CSV files with date, description, amount columns",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := userFlag(cmd)
			if err != nil {
				return err
			}
			delimiter, _ := cmd.Flags().GetString("delimiter")
			comma, size := utf8.DecodeRuneInString(delimiter)
			if size == 0 || size != len(delimiter) {
				return common.NewUserError("--delimiter must be a single character", common.ErrInvalidInput)
			}

			reader := report.Reader{Comma: comma}
			return a.importFiles(cmd, args, func(_ context.Context, f *os.File) ([]model.Transaction, error) {
				return reader.ReadTransactions(f, userID)
			})
		},
	}

	addUserFlag(cmd)
	cmd.Flags().StringP("delimiter", "d", ",", "field delimiter")

	return cmd
}

type parseFunc func(ctx context.Context, f *os.File) ([]model.Transaction, error)

func (a *app) importFiles(cmd *cobra.Command, paths []string, parse parseFunc) error {
	ctx := cmd.Context()

	store, err := a.openStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	var parsed, saved int
	for _, path := range paths {
		txns, err := parseFile(ctx, path, parse)
		if err != nil {
			return err
		}
		if len(txns) == 0 {
			slog.Warn("No transactions found", "path", path)
			continue
		}
		n, err := store.SaveTransactions(ctx, txns)
		if err != nil {
			return fmt.Errorf("failed to save transactions from %s: %w", path, err)
		}
		slog.Info("Imported file", "path", path, "parsed", len(txns), "new", n)
		parsed += len(txns)
		saved += n
	}

	msg := fmt.Sprintf("Imported %d new transactions (%d read, %d already present)", saved, parsed, parsed-saved)
	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(msg))
	return nil
}

func parseFile(ctx context.Context, path string, parse parseFunc) ([]model.Transaction, error) {
	f, err := os.Open(path) // #nosec G304 -- path is given by the operator
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	txns, err := parse(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return txns, nil
}
