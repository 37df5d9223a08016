package main

import (
	"fmt"
	"strconv"

	"github.com/Veraticus/pennywise/internal/cli"
	"github.com/Veraticus/pennywise/internal/common"
	"github.com/spf13/cobra"
)

func (a *app) ruleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rule KEYWORD CATEGORY_ID",
		Short: "Check a keyword rule against a category",
		Long: `Validates that CATEGORY_ID is a default category or one of the user's own.
Rules are checked only; they are not stored.`,
		Args: cobra.ExactArgs(2),
		RunE: a.runRule,
	}

	addUserFlag(cmd)

	return cmd
}

func (a *app) runRule(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	userID, err := userFlag(cmd)
	if err != nil {
		return err
	}
	categoryID, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return common.NewUserError(fmt.Sprintf("Invalid category id %q", args[1]), common.ErrInvalidInput)
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

	ok, err := eng.CreateRule(ctx, userID, args[0], categoryID)
	if err != nil {
		return err
	}
	if !ok {
		return common.NewUserError(fmt.Sprintf("Category %d not found or not visible to user %d", categoryID, userID), common.ErrNotFound)
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Rule %q → category %d is valid", args[0], categoryID)))
	return nil
}
