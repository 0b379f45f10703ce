package models

// RecipeRow is the flat, columnar form of a recipe used for parquet files.
type RecipeRow struct {
	ID           int64    `parquet:"id"`
	Name         string   `parquet:"name"`
	Author       string   `parquet:"author"`
	Description  string   `parquet:"description"`
	Image        []string `parquet:"image,list"`
	Ingredients  []string `parquet:"ingredients,list"`
	Instructions []string `parquet:"instructions,list"`
	// InstructionsKind is the InstructionsKind name, so an empty list and
	// missing instructions stay distinct. Empty in older files.
	InstructionsKind string `parquet:"instructions_kind"`
}

// NewRecipeRow flattens a recipe. Text instructions become a single line;
// missing or unsupported instructions are left empty. The instruction kind is
// kept alongside so Raw can rebuild the same variant.
func NewRecipeRow(r Recipe) RecipeRow {
	row := RecipeRow{
		ID:          int64(r.ID),
		Name:        r.Name,
		Author:      r.Author.Name,
		Description: r.Description,
		Image:       r.Image,
		Ingredients: r.RecipeIngredient,

		InstructionsKind: r.RecipeInstructions.Kind.String(),
	}
	if row.Ingredients == nil {
		row.Ingredients = r.Ingredients
	}

	switch r.RecipeInstructions.Kind {
	case InstructionsText:
		row.Instructions = []string{r.RecipeInstructions.Text}
	case InstructionsList, InstructionsSteps:
		row.Instructions = r.RecipeInstructions.Lines
	}
	return row
}

// Raw turns a row back into an upstream record so it can be normalized
// like any fetched batch.
func (row RecipeRow) Raw() RawRecipe {
	raw := RawRecipe{
		Name:             row.Name,
		Description:      row.Description,
		Image:            row.Image,
		RecipeIngredient: row.Ingredients,
	}
	if row.Author != "" {
		raw.Author = Plain(row.Author)
	}

	switch row.InstructionsKind {
	case InstructionsText.String():
		if len(row.Instructions) > 0 {
			raw.RecipeInstructions = TextInstructions(row.Instructions[0])
		} else {
			raw.RecipeInstructions = TextInstructions("")
		}
	case InstructionsList.String():
		raw.RecipeInstructions = ListInstructions(row.Instructions...)
	case InstructionsSteps.String():
		raw.RecipeInstructions = StepInstructions(row.Instructions...)
	case InstructionsMissing.String(), InstructionsUnsupported.String():
	default:
		if len(row.Instructions) > 0 {
			raw.RecipeInstructions = ListInstructions(row.Instructions...)
		}
	}
	return raw
}
