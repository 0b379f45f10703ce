package handlers

import (
	"errors"
	"net/http"

	"github.com/lehigh-university-libraries/recipebox/internal/models"
	"github.com/lehigh-university-libraries/recipebox/internal/store"
)

func (h *Handler) HandleSaved(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.store.SavedRecipes())
}

// HandleSaveRecipe saves either a full recipe or {"id": n} naming a recipe
// already in the list.
func (h *Handler) HandleSaveRecipe(w http.ResponseWriter, r *http.Request) {
	var recipe models.Recipe
	if !h.decodeJSON(w, r, &recipe) {
		return
	}
	if recipe.ID == 0 {
		h.writeError(w, "id is required", http.StatusBadRequest)
		return
	}

	if recipe.Name == "" {
		known, err := h.store.Recipe(recipe.ID)
		if errors.Is(err, store.ErrRecipeNotFound) {
			h.writeError(w, "Recipe not found", http.StatusNotFound)
			return
		}
		recipe = known
	}

	if err := h.store.SaveRecipe(recipe); err != nil {
		h.writeError(w, "Failed to save recipe: "+err.Error(), http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusCreated, h.store.SavedRecipes())
}

// HandleRemoveRecipe drops every saved entry with the id. An id that is not
// saved leaves the list unchanged.
func (h *Handler) HandleRemoveRecipe(w http.ResponseWriter, r *http.Request) {
	id, ok := h.recipeID(w, r)
	if !ok {
		return
	}

	if err := h.store.RemoveRecipe(models.Recipe{ID: id}); err != nil {
		h.writeError(w, "Failed to remove recipe: "+err.Error(), http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusOK, h.store.SavedRecipes())
}
