package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/lehigh-university-libraries/recipebox/internal/images"
	"github.com/lehigh-university-libraries/recipebox/internal/models"
	"github.com/lehigh-university-libraries/recipebox/internal/store"
)

// maxBodySize bounds JSON request bodies.
const maxBodySize = 1 << 20

type Handler struct {
	store   *store.Store
	fetcher *images.Fetcher
}

func New(s *store.Store, fetcher *images.Fetcher) *Handler {
	return &Handler{
		store:   s,
		fetcher: fetcher,
	}
}

// Router wires every API route.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(requestLogger)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/recipes", h.HandlePage).Methods(http.MethodGet)
	api.HandleFunc("/recipes", h.HandleAddRecipe).Methods(http.MethodPost)
	api.HandleFunc("/recipes/fetch", h.HandleFetch).Methods(http.MethodPost)
	api.HandleFunc("/recipes/filter", h.HandleFilter).Methods(http.MethodPost)
	api.HandleFunc("/recipes/next", h.HandleNextPage).Methods(http.MethodPost)
	api.HandleFunc("/recipes/prev", h.HandlePrevPage).Methods(http.MethodPost)
	api.HandleFunc("/recipes/{id:[0-9]+}", h.HandleRecipe).Methods(http.MethodGet)
	api.HandleFunc("/saved", h.HandleSaved).Methods(http.MethodGet)
	api.HandleFunc("/saved", h.HandleSaveRecipe).Methods(http.MethodPost)
	api.HandleFunc("/saved/{id:[0-9]+}", h.HandleRemoveRecipe).Methods(http.MethodDelete)
	api.HandleFunc("/image", h.HandleImage).Methods(http.MethodGet)

	r.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			slog.Error("Unable to write healthcheck", "err", err)
		}
	}).Methods(http.MethodGet)

	return r
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	if code >= http.StatusInternalServerError {
		slog.Error(message)
	} else {
		slog.Warn(message, "status", code)
	}
	http.Error(w, message, code)
}

func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err := decoder.Decode(dst); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// Recipe helpers
func (h *Handler) recipeID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, "Invalid recipe id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func (h *Handler) getRecipeOrError(w http.ResponseWriter, r *http.Request) (models.Recipe, bool) {
	id, ok := h.recipeID(w, r)
	if !ok {
		return models.Recipe{}, false
	}

	recipe, err := h.store.Recipe(id)
	if errors.Is(err, store.ErrRecipeNotFound) {
		h.writeError(w, "Recipe not found", http.StatusNotFound)
		return models.Recipe{}, false
	}
	if err != nil {
		h.writeError(w, err.Error(), http.StatusInternalServerError)
		return models.Recipe{}, false
	}
	return recipe, true
}
