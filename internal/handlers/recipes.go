package handlers

import (
	"net/http"
	"strings"

	"github.com/lehigh-university-libraries/recipebox/internal/models"
)

// recipeView is a recipe plus whether it is in the saved list.
type recipeView struct {
	models.Recipe
	Saved bool `json:"saved"`
}

func (h *Handler) HandlePage(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.store.Page())
}

func (h *Handler) HandleFetch(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Fetch(r.Context()); err != nil {
		h.writeError(w, "Failed to fetch recipes: "+err.Error(), http.StatusBadGateway)
		return
	}
	h.writeJSON(w, http.StatusOK, h.store.Page())
}

func (h *Handler) HandleFilter(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Query string `json:"query"`
	}
	if !h.decodeJSON(w, r, &request) {
		return
	}

	h.store.FilterRecipes(request.Query)
	h.writeJSON(w, http.StatusOK, h.store.Page())
}

func (h *Handler) HandleNextPage(w http.ResponseWriter, r *http.Request) {
	h.store.NextPage()
	h.writeJSON(w, http.StatusOK, h.store.Page())
}

func (h *Handler) HandlePrevPage(w http.ResponseWriter, r *http.Request) {
	h.store.PrevPage()
	h.writeJSON(w, http.StatusOK, h.store.Page())
}

func (h *Handler) HandleRecipe(w http.ResponseWriter, r *http.Request) {
	recipe, ok := h.getRecipeOrError(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, recipeView{Recipe: recipe, Saved: h.store.IsSaved(recipe.ID)})
}

// HandleAddRecipe takes the add-recipe form as JSON. A missing id is
// assigned after the current largest one.
func (h *Handler) HandleAddRecipe(w http.ResponseWriter, r *http.Request) {
	var recipe models.Recipe
	if !h.decodeJSON(w, r, &recipe) {
		return
	}

	if strings.TrimSpace(recipe.Name) == "" {
		h.writeError(w, "name is required", http.StatusBadRequest)
		return
	}
	if recipe.ID == 0 {
		recipe.ID = h.store.NextID()
	}

	h.store.AddRecipe(recipe)
	h.writeJSON(w, http.StatusCreated, recipe)
}
