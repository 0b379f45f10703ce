package cmd

import (
	"fmt"
	"log/slog"

	"github.com/lehigh-university-libraries/recipebox/internal/export"
	"github.com/lehigh-university-libraries/recipebox/internal/models"
	"github.com/spf13/cobra"
)

func newSavedCmd(opts *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "saved",
		Short: "List saved recipes",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, closeStore, err := opts.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			saved := s.SavedRecipes()
			if len(saved) == 0 && format == "text" {
				fmt.Fprintln(cmd.OutOrStdout(), "No saved recipes.")
				return nil
			}
			return export.Write(cmd.OutOrStdout(), format, saved)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, json, jsonl, yaml or csv")

	return cmd
}

func newSaveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "save <id>",
		Short: "Add a fetched recipe to the saved list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			s, closeStore, err := opts.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			if err := s.Fetch(cmd.Context()); err != nil {
				return err
			}
			recipe, err := s.Recipe(id)
			if err != nil {
				return err
			}
			if s.IsSaved(id) {
				slog.Warn("Recipe is already saved, adding another copy", "id", id)
			}
			if err := s.SaveRecipe(recipe); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Saved [%d] %s\n", recipe.ID, recipe.Name)
			return nil
		},
	}
}

func newRemoveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a recipe from the saved list",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			s, closeStore, err := opts.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			// The saved list is loaded from storage; no fetch needed.
			if !s.IsSaved(id) {
				fmt.Fprintf(cmd.OutOrStdout(), "Recipe %d is not saved\n", id)
				return nil
			}
			recipe, err := s.Recipe(id)
			if err != nil {
				return err
			}
			if err := s.RemoveRecipe(models.Recipe{ID: id}); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed [%d] %s\n", recipe.ID, recipe.Name)
			return nil
		},
	}
}
