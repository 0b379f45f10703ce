package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/lehigh-university-libraries/recipebox/internal/export"
	"github.com/lehigh-university-libraries/recipebox/internal/models"
	"github.com/lehigh-university-libraries/recipebox/internal/recipes"
	"github.com/spf13/cobra"
)

func newAddCmd(opts *rootOptions) *cobra.Command {
	var (
		name         string
		author       string
		description  string
		images       []string
		ingredients  []string
		instructions []string
		save         bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a recipe of your own",
		Long: `Adds a recipe to the fetched list under the next free id and prints it.

The list itself is not persisted between runs; pass --save to also put the
recipe in the saved list.`,
		Example: `  recipebox add --name "Tea" --author "Ann" \
    --ingredient water --ingredient "black tea" \
    --instruction "Boil the water" --instruction "Steep for 4 minutes" --save`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(name) == "" {
				return fmt.Errorf("--name is required")
			}

			s, closeStore, err := opts.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			if err := s.Fetch(cmd.Context()); err != nil {
				slog.Warn("Adding to an empty recipe list", "err", err)
			}

			recipe := models.Recipe{
				ID:               s.NextID(),
				Name:             name,
				Description:      description,
				Image:            images,
				RecipeIngredient: ingredients,
				Ingredients:      ingredients,
			}
			if author != "" {
				recipe.Author = models.Plain(author)
			}
			if len(instructions) > 0 {
				recipe.RecipeInstructions = models.ListInstructions(instructions...)
				recipe.Instructions = recipes.FormatInstructions(recipe.RecipeInstructions)
			}

			s.AddRecipe(recipe)
			if save {
				if err := s.SaveRecipe(recipe); err != nil {
					return err
				}
				slog.Info("Recipe saved", "id", recipe.ID, "name", recipe.Name)
			}
			return export.WriteDetail(cmd.OutOrStdout(), recipe, save)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Recipe name (required)")
	cmd.Flags().StringVar(&author, "author", "", "Author name")
	cmd.Flags().StringVar(&description, "description", "", "Short description")
	cmd.Flags().StringSliceVar(&images, "image", nil, "Image URL (repeatable)")
	cmd.Flags().StringArrayVar(&ingredients, "ingredient", nil, "Ingredient (repeatable)")
	cmd.Flags().StringArrayVar(&instructions, "instruction", nil, "Instruction step (repeatable)")
	cmd.Flags().BoolVar(&save, "save", false, "Also add the recipe to the saved list")

	return cmd
}
