// Package export renders recipe lists for people and for other tools.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lehigh-university-libraries/recipebox/internal/models"
	"github.com/parquet-go/parquet-go"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for an unknown output format.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Formats lists the accepted format names.
var Formats = []string{"text", "json", "jsonl", "yaml", "csv", "parquet"}

// yamlRecipe is the YAML document form of a recipe.
type yamlRecipe struct {
	ID           int      `yaml:"id"`
	Name         string   `yaml:"name"`
	Author       string   `yaml:"author"`
	Description  string   `yaml:"description,omitempty"`
	Image        []string `yaml:"image"`
	Ingredients  []string `yaml:"ingredients"`
	Instructions string   `yaml:"instructions"`
}

// Write renders recipes to w in the named format.
func Write(w io.Writer, format string, recipes []models.Recipe) error {
	switch strings.ToLower(format) {
	case "text", "":
		return writeText(w, recipes)
	case "json":
		return writeJSON(w, recipes)
	case "jsonl":
		return writeJSONL(w, recipes)
	case "yaml":
		return writeYAML(w, recipes)
	case "csv":
		return writeCSV(w, recipes)
	case "parquet":
		return writeParquet(w, recipes)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

func writeText(w io.Writer, recipes []models.Recipe) error {
	for _, r := range recipes {
		if _, err := fmt.Fprintf(w, "[%d] %s\n    by %s\n", r.ID, r.Name, r.Author.DisplayName()); err != nil {
			return err
		}
		if r.Description != "" {
			if _, err := fmt.Fprintf(w, "    %s\n", truncate(r.Description, 76)); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteDetail prints one recipe in full.
func WriteDetail(w io.Writer, r models.Recipe, saved bool) error {
	var b strings.Builder
	b.WriteString(strings.Repeat("=", 60) + "\n")
	fmt.Fprintf(&b, "%s\n", r.Name)
	b.WriteString(strings.Repeat("=", 60) + "\n")
	fmt.Fprintf(&b, "ID:     %d\n", r.ID)
	fmt.Fprintf(&b, "Author: %s\n", r.Author.DisplayName())
	fmt.Fprintf(&b, "Image:  %s\n", strings.Join(r.Image, ", "))
	if saved {
		b.WriteString("Saved:  yes\n")
	}
	if r.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", r.Description)
	}

	b.WriteString("\nIngredients:\n")
	ingredients := r.RecipeIngredient
	if ingredients == nil {
		ingredients = r.Ingredients
	}
	for _, ingredient := range ingredients {
		fmt.Fprintf(&b, "  - %s\n", ingredient)
	}

	b.WriteString("\nInstructions:\n")
	for _, line := range strings.Split(r.Instructions, "\n") {
		fmt.Fprintf(&b, "  %s\n", line)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeJSON(w io.Writer, recipes []models.Recipe) error {
	if recipes == nil {
		recipes = []models.Recipe{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(recipes)
}

func writeJSONL(w io.Writer, recipes []models.Recipe) error {
	encoder := json.NewEncoder(w)
	for _, r := range recipes {
		if err := encoder.Encode(r); err != nil {
			return fmt.Errorf("failed to encode recipe %d: %w", r.ID, err)
		}
	}
	return nil
}

func writeYAML(w io.Writer, recipes []models.Recipe) error {
	docs := make([]yamlRecipe, 0, len(recipes))
	for _, r := range recipes {
		docs = append(docs, yamlRecipe{
			ID:           r.ID,
			Name:         r.Name,
			Author:       r.Author.DisplayName(),
			Description:  r.Description,
			Image:        r.Image,
			Ingredients:  r.RecipeIngredient,
			Instructions: r.Instructions,
		})
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(docs); err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return encoder.Close()
}

func writeCSV(w io.Writer, recipes []models.Recipe) error {
	writer := csv.NewWriter(w)

	header := []string{"ID", "Name", "Author", "Description", "Image", "Ingredients", "Instructions"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, r := range recipes {
		row := []string{
			strconv.Itoa(r.ID),
			r.Name,
			r.Author.DisplayName(),
			r.Description,
			strings.Join(r.Image, " "),
			strings.Join(r.RecipeIngredient, "; "),
			r.Instructions,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func writeParquet(w io.Writer, recipes []models.Recipe) error {
	writer := parquet.NewGenericWriter[models.RecipeRow](w)

	rows := make([]models.RecipeRow, 0, len(recipes))
	for _, r := range recipes {
		rows = append(rows, models.NewRecipeRow(r))
	}
	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
