package main

import (
	"errors"
	"fmt"

	"github.com/Veraticus/pennywise/internal/cli"
	"github.com/Veraticus/pennywise/internal/common"
	"github.com/Veraticus/pennywise/internal/model"
	"github.com/spf13/cobra"
)

func (a *app) categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage categories",
		Long:  `List the categories a user can see and add user-owned ones.`,
	}

	cmd.AddCommand(a.listCategoriesCmd())
	cmd.AddCommand(a.addCategoryCmd())

	return cmd
}

func (a *app) listCategoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the default categories and the user's own",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			userID, err := userFlag(cmd)
			if err != nil {
				return err
			}

			var direction *model.CategoryType
			if typ, _ := cmd.Flags().GetString("type"); typ != "" {
				t, err := model.ParseCategoryType(typ)
				if err != nil {
					return common.NewUserError(err.Error(), common.ErrInvalidInput)
				}
				direction = &t
			}

			store, err := a.openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			categories, err := store.FindCategories(ctx, userID, direction)
			if err != nil {
				return fmt.Errorf("failed to get categories: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatCategories(categories))
			return nil
		},
	}

	addUserFlag(cmd)
	cmd.Flags().StringP("type", "t", "", "only list income or expense categories")

	return cmd
}

func (a *app) addCategoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a category owned by the user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			userID, err := userFlag(cmd)
			if err != nil {
				return err
			}

			typ, _ := cmd.Flags().GetString("type")
			categoryType, err := model.ParseCategoryType(typ)
			if err != nil {
				return common.NewUserError(err.Error(), common.ErrInvalidInput)
			}
			description, _ := cmd.Flags().GetString("description")
			color, _ := cmd.Flags().GetString("color")
			icon, _ := cmd.Flags().GetString("icon")

			store, err := a.openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			cat := model.Category{
				Name:        args[0],
				Description: description,
				Color:       color,
				Icon:        icon,
				Type:        categoryType,
				UserID:      &userID,
			}
			if err := store.CreateCategory(ctx, &cat); err != nil {
				if errors.Is(err, common.ErrDuplicateEntry) {
					return common.NewUserError(fmt.Sprintf("Category %q already exists", args[0]), err)
				}
				return fmt.Errorf("failed to create category: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Created category %q (id %d)", cat.Name, cat.ID)))
			return nil
		},
	}

	addUserFlag(cmd)
	cmd.Flags().StringP("type", "t", string(model.CategoryTypeExpense), "income or expense")
	cmd.Flags().String("description", "", "category description")
	cmd.Flags().String("color", "", "display color, e.g. #22C55E")
	cmd.Flags().String("icon", "", "icon name")

	return cmd
}
