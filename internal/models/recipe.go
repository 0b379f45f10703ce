package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Recipe is the canonical recipe shape every store operation works with.
type Recipe struct {
	ID                 int          `json:"id"`
	Name               string       `json:"name"`
	Author             Author       `json:"author"`
	Description        string       `json:"description"`
	Image              []string     `json:"image"`
	RecipeIngredient   []string     `json:"recipeIngredient"`
	Ingredients        []string     `json:"ingredients"`
	RecipeInstructions Instructions `json:"recipeInstructions"`
	Instructions       string       `json:"instructions"`
}

// RawRecipe is one record of the upstream dataset after boundary parsing.
// Image and RecipeIngredient are nil when the source value was absent or not
// an array of strings.
type RawRecipe struct {
	Name               string
	Author             Author
	Description        string
	Image              []string
	RecipeIngredient   []string
	RecipeInstructions Instructions
}

// UnmarshalJSON decodes one upstream record. The record must be an object
// and name/description must be strings when present; the loosely typed
// fields fall back instead of failing.
func (r *RawRecipe) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return fmt.Errorf("recipe record must be a JSON object")
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("failed to decode recipe record: %w", err)
	}

	var out RawRecipe
	if err := decodeOptionalString(fields, "name", &out.Name); err != nil {
		return err
	}
	if err := decodeOptionalString(fields, "description", &out.Description); err != nil {
		return err
	}
	if raw, ok := fields["author"]; ok {
		if err := json.Unmarshal(raw, &out.Author); err != nil {
			return err
		}
	}
	if raw, ok := fields["image"]; ok {
		out.Image = decodeStringList(raw)
	}
	if raw, ok := fields["recipeIngredient"]; ok {
		out.RecipeIngredient = decodeStringList(raw)
	}
	if raw, ok := fields["recipeInstructions"]; ok {
		if err := json.Unmarshal(raw, &out.RecipeInstructions); err != nil {
			return err
		}
	}

	*r = out
	return nil
}

func decodeOptionalString(fields map[string]json.RawMessage, key string, dst *string) error {
	raw, ok := fields[key]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("field %q must be a string: %w", key, err)
	}
	return nil
}

func decodeStringList(raw json.RawMessage) []string {
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil
	}
	return list
}
