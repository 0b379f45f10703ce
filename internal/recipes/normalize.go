package recipes

import (
	"slices"
	"unicode/utf8"

	"github.com/lehigh-university-libraries/recipebox/internal/models"
)

// PlaceholderImage stands in for recipes without a usable image.
const PlaceholderImage = "https://via.placeholder.com/300x200?text=Image+Not+Available"

const minImageURLLength = 5

// Normalize maps a fetched batch onto canonical recipes. IDs are the 1-based
// positions in the batch.
func Normalize(raws []models.RawRecipe) []models.Recipe {
	out := make([]models.Recipe, 0, len(raws))
	for i, raw := range raws {
		out = append(out, NormalizeOne(i+1, raw))
	}
	return out
}

// NormalizeOne builds the canonical form of a single record.
func NormalizeOne(id int, raw models.RawRecipe) models.Recipe {
	ingredients := raw.RecipeIngredient
	if ingredients == nil {
		ingredients = []string{}
	}

	return models.Recipe{
		ID:                 id,
		Name:               raw.Name,
		Author:             raw.Author,
		Description:        raw.Description,
		Image:              images(raw.Image),
		RecipeIngredient:   ingredients,
		Ingredients:        slices.Clone(ingredients),
		RecipeInstructions: raw.RecipeInstructions,
		Instructions:       FormatInstructions(raw.RecipeInstructions),
	}
}

func images(src []string) []string {
	if len(src) == 0 || utf8.RuneCountInString(src[0]) < minImageURLLength {
		return []string{PlaceholderImage}
	}
	return src
}
