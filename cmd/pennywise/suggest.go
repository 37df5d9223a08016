package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Veraticus/pennywise/internal/cli"
	"github.com/spf13/cobra"
)

func (a *app) suggestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggest DESCRIPTION",
		Short: "Rank categories for a transaction description",
		Args:  cobra.MinimumNArgs(1),
		RunE:  a.runSuggest,
	}

	addUserFlag(cmd)
	cmd.Flags().IntP("limit", "n", 0, "maximum number of suggestions (default from categorize.suggest_limit)")
	cmd.Flags().Bool("json", false, "print JSON instead of a table")

	return cmd
}

func (a *app) runSuggest(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	userID, err := userFlag(cmd)
	if err != nil {
		return err
	}
	limit, _ := cmd.Flags().GetInt("limit")
	asJSON, _ := cmd.Flags().GetBool("json")
	description := strings.Join(args, " ")

	store, err := a.openStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	eng, err := a.newEngine(store)
	if err != nil {
		return err
	}

	candidates, err := eng.Suggest(ctx, description, userID, limit)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(candidates)
	}
	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatCandidates(description, candidates))
	return nil
}
