package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/lehigh-university-libraries/recipebox/internal/models"
	"github.com/parquet-go/parquet-go"
)

const piePayload = `[{"name":"Pie","author":"Jane Doe (chef)","recipeIngredient":["flour"],"recipeInstructions":["Mix","Bake"]}]`

func TestClientFetchRecipes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("Expected GET, got %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(piePayload))
	}))
	defer server.Close()

	raws, err := NewClient(server.URL, time.Second).FetchRecipes(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	expected := []models.RawRecipe{{
		Name:               "Pie",
		Author:             models.Plain("Jane Doe (chef)"),
		RecipeIngredient:   []string{"flour"},
		RecipeInstructions: models.ListInstructions("Mix", "Bake"),
	}}
	if diff := cmp.Diff(expected, raws); diff != "" {
		t.Errorf("raw recipes mismatch (-want +got):\n%s", diff)
	}
}

func TestClientErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-200 status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "gone", http.StatusNotFound)
			},
		},
		{
			name: "malformed payload",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"not":"an array"}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			if _, err := NewClient(server.URL, time.Second).FetchRecipes(context.Background()); err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestClientHonoursContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("[]"))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(server.URL, time.Second).FetchRecipes(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestLoaderJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookbook.json")
	if err := os.WriteFile(path, []byte(piePayload), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	raws, err := NewLoader(path).FetchRecipes(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(raws) != 1 || raws[0].Name != "Pie" {
		t.Errorf("Expected one Pie record, got %+v", raws)
	}
}

func TestLoaderJSONL(t *testing.T) {
	content := `{"name":"Pie","recipeInstructions":"Bake"}

{"name":"Soup","author":{"name":"Ann"}}
`
	path := filepath.Join(t.TempDir(), "cookbook.jsonl")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	raws, err := NewLoader(path).FetchRecipes(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(raws) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(raws))
	}
	if raws[1].Author != models.Named("Ann") {
		t.Errorf("Expected named author Ann, got %+v", raws[1].Author)
	}
}

func TestLoaderJSONLReportsLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookbook.jsonl")
	if err := os.WriteFile(path, []byte("{\"name\":\"Pie\"}\n[1]\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := NewLoader(path).FetchRecipes(context.Background()); err == nil {
		t.Error("Expected error for non-object line")
	}
}

func TestLoaderParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookbook.parquet")
	rows := []models.RecipeRow{
		{ID: 1, Name: "Pie", Author: "Jane", Image: []string{"https://example.com/pie.jpg"}, Ingredients: []string{"flour"}, Instructions: []string{"Mix", "Bake"}},
		{ID: 2, Name: "Soup"},
	}
	if err := parquet.WriteFile(path, rows); err != nil {
		t.Fatalf("write parquet: %v", err)
	}

	raws, err := NewLoader(path).FetchRecipes(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(raws) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(raws))
	}
	if raws[0].Author != models.Plain("Jane") {
		t.Errorf("Expected plain author Jane, got %+v", raws[0].Author)
	}
	if !raws[0].RecipeInstructions.Equal(models.ListInstructions("Mix", "Bake")) {
		t.Errorf("Unexpected instructions %+v", raws[0].RecipeInstructions)
	}
	if raws[1].RecipeInstructions.Kind != models.InstructionsMissing {
		t.Errorf("Expected missing instructions, got %s", raws[1].RecipeInstructions.Kind)
	}
}

func TestLoaderUnsupported(t *testing.T) {
	_, err := NewLoader("cookbook.csv").FetchRecipes(context.Background())
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestNew(t *testing.T) {
	if _, ok := New("https://example.com/cookbook.json", 0).(*Client); !ok {
		t.Error("Expected *Client for https location")
	}
	if _, ok := New("./cookbook.json", 0).(*Loader); !ok {
		t.Error("Expected *Loader for local path")
	}
}
