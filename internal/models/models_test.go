package models

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAuthorUnmarshal(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Author
	}{
		{"plain string", `"Jane Doe"`, Plain("Jane Doe")},
		{"record", `{"@type":"Person","name":"Jane Doe"}`, Named("Jane Doe")},
		{"record without name", `{"@type":"Person"}`, Named("")},
		{"record with numeric name", `{"name":42}`, Named("")},
		{"null", `null`, Author{}},
		{"array", `[{"name":"A"},{"name":"B"}]`, Named("")},
		{"number", `7`, Named("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Author
			if err := json.Unmarshal([]byte(tt.input), &got); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("author mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAuthorMarshal(t *testing.T) {
	plain, err := json.Marshal(Plain("X"))
	if err != nil {
		t.Fatalf("marshal plain: %v", err)
	}
	if string(plain) != `"X"` {
		t.Errorf("Expected \"X\", got %s", plain)
	}

	named, err := json.Marshal(Named("X"))
	if err != nil {
		t.Fatalf("marshal named: %v", err)
	}
	if string(named) != `{"name":"X"}` {
		t.Errorf("Expected {\"name\":\"X\"}, got %s", named)
	}
}

func TestAuthorDisplayName(t *testing.T) {
	if got := Named("").DisplayName(); got != UnknownAuthor {
		t.Errorf("Expected %q, got %q", UnknownAuthor, got)
	}
	if got := Plain("Ann").DisplayName(); got != "Ann" {
		t.Errorf("Expected Ann, got %q", got)
	}
}

func TestInstructionsClassification(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Instructions
	}{
		{"string", `"Mix well"`, TextInstructions("Mix well")},
		{"string array", `["Mix","Bake"]`, ListInstructions("Mix", "Bake")},
		{"step objects", `[{"@type":"HowToStep","text":"Mix"},{"text":"Bake"}]`, StepInstructions("Mix", "Bake")},
		{"empty array", `[]`, ListInstructions()},
		{"step with empty text", `[{"text":""}]`, Instructions{Kind: InstructionsUnsupported}},
		{"mixed array", `["Mix",{"text":"Bake"}]`, Instructions{Kind: InstructionsUnsupported}},
		{"number", `12`, Instructions{Kind: InstructionsUnsupported}},
		{"object", `{"text":"Mix"}`, Instructions{Kind: InstructionsUnsupported}},
		{"null", `null`, Instructions{Kind: InstructionsMissing}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Instructions
			if err := json.Unmarshal([]byte(tt.input), &got); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("instructions mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestInstructionsKeepSourceBytes(t *testing.T) {
	input := `[{"@type":"HowToStep","text":"Mix"},{"@type":"HowToStep","text":"Bake"}]`

	var in Instructions
	if err := json.Unmarshal([]byte(input), &in); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	out, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != input {
		t.Errorf("Expected source bytes %s, got %s", input, out)
	}
}

func TestInstructionsMarshalBuilt(t *testing.T) {
	tests := []struct {
		name     string
		input    Instructions
		expected string
	}{
		{"text", TextInstructions("Stir"), `"Stir"`},
		{"list", ListInstructions("a", "b"), `["a","b"]`},
		{"empty list", ListInstructions(), `[]`},
		{"steps", StepInstructions("a"), `[{"text":"a"}]`},
		{"missing", Instructions{}, `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := json.Marshal(tt.input)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(out) != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, out)
			}
		})
	}
}

func TestRawRecipeUnmarshal(t *testing.T) {
	input := `{
		"name": "Pie",
		"author": "Jane Doe (chef)",
		"description": "A pie",
		"image": ["https://example.com/pie.jpg"],
		"recipeIngredient": ["flour"],
		"recipeInstructions": ["Mix", "Bake"],
		"nutrition": {"calories": "300"}
	}`

	var got RawRecipe
	if err := json.Unmarshal([]byte(input), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	expected := RawRecipe{
		Name:               "Pie",
		Author:             Plain("Jane Doe (chef)"),
		Description:        "A pie",
		Image:              []string{"https://example.com/pie.jpg"},
		RecipeIngredient:   []string{"flour"},
		RecipeInstructions: ListInstructions("Mix", "Bake"),
	}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("raw recipe mismatch (-want +got):\n%s", diff)
	}
}

func TestRawRecipeLooseFields(t *testing.T) {
	input := `{"name":"Soup","image":"https://example.com/soup.jpg","recipeIngredient":[1,2]}`

	var got RawRecipe
	if err := json.Unmarshal([]byte(input), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Image != nil {
		t.Errorf("Expected nil image for a string value, got %v", got.Image)
	}
	if got.RecipeIngredient != nil {
		t.Errorf("Expected nil ingredients for a numeric list, got %v", got.RecipeIngredient)
	}
	if got.RecipeInstructions.Kind != InstructionsMissing {
		t.Errorf("Expected missing instructions, got %s", got.RecipeInstructions.Kind)
	}
}

func TestRawRecipeRejectsBadShapes(t *testing.T) {
	inputs := map[string]string{
		"not an object":   `["Pie"]`,
		"null record":     `null`,
		"numeric name":    `{"name": 3}`,
		"object describe": `{"name":"Pie","description":{"text":"x"}}`,
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			var got RawRecipe
			if err := json.Unmarshal([]byte(input), &got); err == nil {
				t.Errorf("Expected error for %s", input)
			}
		})
	}
}

func TestRecipeJSONRoundTrip(t *testing.T) {
	var in Instructions
	if err := json.Unmarshal([]byte(`[{"text":"Mix"}]`), &in); err != nil {
		t.Fatalf("unmarshal instructions: %v", err)
	}
	recipe := Recipe{
		ID:                 3,
		Name:               "Stew",
		Author:             Named("X"),
		Image:              []string{"https://example.com/stew.jpg"},
		RecipeIngredient:   []string{"beef"},
		Ingredients:        []string{"beef"},
		RecipeInstructions: in,
		Instructions:       "Mix",
	}

	data, err := json.Marshal(recipe)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got Recipe
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if diff := cmp.Diff(recipe, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestRecipeRow(t *testing.T) {
	recipe := Recipe{
		ID:                 1,
		Name:               "Tea",
		Author:             Named("Ann"),
		RecipeIngredient:   []string{"water", "leaves"},
		Ingredients:        []string{"water", "leaves"},
		RecipeInstructions: TextInstructions("Steep"),
		Image:              []string{"https://example.com/tea.jpg"},
	}

	row := NewRecipeRow(recipe)
	if row.ID != 1 || row.Author != "Ann" {
		t.Errorf("Unexpected row identity: %+v", row)
	}
	if diff := cmp.Diff([]string{"Steep"}, row.Instructions); diff != "" {
		t.Errorf("row instructions mismatch (-want +got):\n%s", diff)
	}

	raw := row.Raw()
	if raw.Author != Plain("Ann") {
		t.Errorf("Expected plain author Ann, got %+v", raw.Author)
	}
	if !raw.RecipeInstructions.Equal(TextInstructions("Steep")) {
		t.Errorf("Expected text instructions, got %+v", raw.RecipeInstructions)
	}
}

func TestRecipeRowInstructionKinds(t *testing.T) {
	tests := []struct {
		name string
		in   Instructions
	}{
		{"empty list", ListInstructions()},
		{"list", ListInstructions("a", "b")},
		{"steps", StepInstructions("a")},
		{"text", TextInstructions("a")},
		{"missing", Instructions{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := NewRecipeRow(Recipe{ID: 1, RecipeInstructions: tt.in})
			if got := row.Raw().RecipeInstructions; !got.Equal(tt.in) {
				t.Errorf("Expected %+v, got %+v", tt.in, got)
			}
		})
	}
}

func TestRecipeRowWithoutKindReadsLines(t *testing.T) {
	row := RecipeRow{Instructions: []string{"Mix"}}
	if got := row.Raw().RecipeInstructions; !got.Equal(ListInstructions("Mix")) {
		t.Errorf("Expected list instructions, got %+v", got)
	}
	if got := (RecipeRow{}).Raw().RecipeInstructions; got.Kind != InstructionsMissing {
		t.Errorf("Expected missing instructions, got %s", got.Kind)
	}
}
