package recipes

import (
	"slices"

	"github.com/lehigh-university-libraries/recipebox/internal/models"
)

// Canonicalize repairs recipes that did not come through Normalize, such as
// ones entered by hand, before they are saved. Plain authors become named
// records, the ingredient aliases are made equal and empty instructions are
// rebuilt from the raw value.
func Canonicalize(r models.Recipe) models.Recipe {
	ingredients := r.RecipeIngredient
	if ingredients == nil {
		ingredients = r.Ingredients
	}
	if ingredients == nil {
		ingredients = []string{}
	}
	r.RecipeIngredient = slices.Clone(ingredients)
	r.Ingredients = slices.Clone(ingredients)

	if r.Instructions == "" {
		r.Instructions = FormatInstructions(r.RecipeInstructions)
	}
	if r.Author.Kind == models.PlainName {
		r.Author = r.Author.AsNamed()
	}
	if len(r.Image) == 0 {
		r.Image = []string{PlaceholderImage}
	}
	return r
}
