// Package store holds the recipe browser's application state: the fetched
// list, the saved list mirrored to storage, the current filter result and
// the page cursor.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/lehigh-university-libraries/recipebox/internal/models"
	"github.com/lehigh-university-libraries/recipebox/internal/recipes"
	"golang.org/x/sync/singleflight"
)

const (
	// SavedRecipesKey is the storage key of the saved list.
	SavedRecipesKey = "savedRecipes"
	// ItemsPerPage is the fixed page size.
	ItemsPerPage = 9
)

// ErrRecipeNotFound is returned by lookups for an unknown id.
var ErrRecipeNotFound = errors.New("recipe not found")

// Source yields raw recipe batches.
type Source interface {
	FetchRecipes(ctx context.Context) ([]models.RawRecipe, error)
}

// Storage persists whole values under a key.
type Storage interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
}

// Page is one window of the filtered list.
type Page struct {
	Recipes     []models.Recipe `json:"recipes"`
	CurrentPage int             `json:"currentPage"`
	TotalPages  int             `json:"totalPages"`
	TotalItems  int             `json:"totalItems"`
}

// Store is the recipe browser state. It is safe for concurrent use.
type Store struct {
	source  Source
	storage Storage

	mu              sync.RWMutex
	recipes         []models.Recipe
	savedRecipes    []models.Recipe
	filteredRecipes []models.Recipe
	currentPage     int
	itemsPerPage    int

	fetches singleflight.Group
}

// New creates a store and loads the saved list from storage. A missing or
// unreadable saved list starts empty.
func New(source Source, storage Storage) *Store {
	return &Store{
		source:          source,
		storage:         storage,
		recipes:         []models.Recipe{},
		savedRecipes:    loadSaved(storage),
		filteredRecipes: []models.Recipe{},
		currentPage:     1,
		itemsPerPage:    ItemsPerPage,
	}
}

func loadSaved(storage Storage) []models.Recipe {
	saved := []models.Recipe{}
	if storage == nil {
		return saved
	}

	data, ok, err := storage.Get(SavedRecipesKey)
	if err != nil {
		slog.Warn("Unable to read saved recipes, starting empty", "err", err)
		return saved
	}
	if !ok {
		return saved
	}
	if err := json.Unmarshal(data, &saved); err != nil || saved == nil {
		slog.Warn("Saved recipes are malformed, starting empty", "err", err, "bytes", len(data))
		return []models.Recipe{}
	}
	return saved
}

// Fetch replaces the recipe list with a freshly normalized batch. A failed
// fetch leaves the state untouched. Calls made while a fetch is in flight
// share its result; each caller stops waiting when its own ctx is done, and
// the shared fetch is not cancelled by any single caller.
func (s *Store) Fetch(ctx context.Context) error {
	results := s.fetches.DoChan("recipes", func() (any, error) {
		raws, err := s.source.FetchRecipes(context.WithoutCancel(ctx))
		if err != nil {
			return 0, err
		}
		normalized := recipes.Normalize(raws)

		s.mu.Lock()
		s.recipes = normalized
		s.filteredRecipes = normalized
		s.mu.Unlock()
		return len(normalized), nil
	})

	select {
	case <-ctx.Done():
		return fmt.Errorf("failed to fetch recipes: %w", ctx.Err())
	case res := <-results:
		if res.Err != nil {
			slog.Error("Error fetching recipes", "err", res.Err)
			return fmt.Errorf("failed to fetch recipes: %w", res.Err)
		}
		slog.Debug("Recipes fetched", "count", res.Val, "shared", res.Shared)
		return nil
	}
}

// AddRecipe appends a recipe as given and resets the filter to the full
// list. The recipe is not normalized.
func (s *Store) AddRecipe(r models.Recipe) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recipes = append(slices.Clip(s.recipes), r)
	s.filteredRecipes = s.recipes
}

// NextID returns one more than the largest id in the recipe list.
func (s *Store) NextID() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	next := 1
	for _, r := range s.recipes {
		if r.ID >= next {
			next = r.ID + 1
		}
	}
	return next
}

// SaveRecipe canonicalizes r, appends it to the saved list and persists the
// list. On a storage error the in-memory list keeps the recipe.
func (s *Store) SaveRecipe(r models.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.savedRecipes = append(slices.Clip(s.savedRecipes), recipes.Canonicalize(r))
	return s.persistLocked()
}

// RemoveRecipe drops every saved entry with r's id and persists the list.
// Removing an id that is not saved leaves the list unchanged.
func (s *Store) RemoveRecipe(r models.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := make([]models.Recipe, 0, len(s.savedRecipes))
	for _, saved := range s.savedRecipes {
		if saved.ID != r.ID {
			kept = append(kept, saved)
		}
	}
	s.savedRecipes = kept
	return s.persistLocked()
}

func (s *Store) persistLocked() error {
	if s.storage == nil {
		return nil
	}
	data, err := json.Marshal(s.savedRecipes)
	if err != nil {
		return fmt.Errorf("failed to encode saved recipes: %w", err)
	}
	if err := s.storage.Set(SavedRecipesKey, data); err != nil {
		slog.Error("Unable to persist saved recipes", "err", err, "count", len(s.savedRecipes))
		return fmt.Errorf("failed to persist saved recipes: %w", err)
	}
	return nil
}

// FilterRecipes keeps the recipes whose name or author matches query and
// returns to the first page. The empty query keeps everything.
func (s *Store) FilterRecipes(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filteredRecipes = recipes.Filter(s.recipes, query)
	s.currentPage = 1
}

// NextPage advances the cursor unless it is on the last page.
func (s *Store) NextPage() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentPage*s.itemsPerPage < len(s.filteredRecipes) {
		s.currentPage++
	}
}

// PrevPage moves the cursor back unless it is on the first page.
func (s *Store) PrevPage() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentPage > 1 {
		s.currentPage--
	}
}

// CurrentPage returns the 1-based page cursor.
func (s *Store) CurrentPage() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentPage
}

// ItemsPerPage returns the page size.
func (s *Store) ItemsPerPage() int {
	return s.itemsPerPage
}

// PaginatedRecipes returns the current window of the filtered list.
func (s *Store) PaginatedRecipes() []models.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.paginatedLocked()
}

func (s *Store) paginatedLocked() []models.Recipe {
	start := (s.currentPage - 1) * s.itemsPerPage
	end := start + s.itemsPerPage
	if start > len(s.filteredRecipes) {
		start = len(s.filteredRecipes)
	}
	if end > len(s.filteredRecipes) {
		end = len(s.filteredRecipes)
	}
	return slices.Clone(s.filteredRecipes[start:end])
}

// TotalPages is ceil(len(filtered)/ItemsPerPage), 0 for an empty list.
func (s *Store) TotalPages() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totalPagesLocked()
}

func (s *Store) totalPagesLocked() int {
	return (len(s.filteredRecipes) + s.itemsPerPage - 1) / s.itemsPerPage
}

// Page returns the current window together with the cursor and totals.
func (s *Store) Page() Page {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Page{
		Recipes:     s.paginatedLocked(),
		CurrentPage: s.currentPage,
		TotalPages:  s.totalPagesLocked(),
		TotalItems:  len(s.filteredRecipes),
	}
}

// Recipes returns the full recipe list.
func (s *Store) Recipes() []models.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.recipes)
}

// FilteredRecipes returns the result of the last filter.
func (s *Store) FilteredRecipes() []models.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.filteredRecipes)
}

// SavedRecipes returns the saved list.
func (s *Store) SavedRecipes() []models.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.savedRecipes)
}

// Recipe looks an id up in the recipe list, then in the saved list.
func (s *Store) Recipe(id int) (models.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, list := range [][]models.Recipe{s.recipes, s.savedRecipes} {
		for _, r := range list {
			if r.ID == id {
				return r, nil
			}
		}
	}
	return models.Recipe{}, fmt.Errorf("%w: %d", ErrRecipeNotFound, id)
}

// IsSaved reports whether an entry with id is in the saved list.
func (s *Store) IsSaved(id int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.savedRecipes {
		if r.ID == id {
			return true
		}
	}
	return false
}
