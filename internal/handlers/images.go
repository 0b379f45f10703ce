package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/lehigh-university-libraries/recipebox/internal/images"
)

// HandleImage proxies a recipe image scaled to ?height= (default 500, at
// most images.MaxHeight).
func (h *Handler) HandleImage(w http.ResponseWriter, r *http.Request) {
	imageURL := r.URL.Query().Get("url")
	if imageURL == "" {
		h.writeError(w, "URL parameter is required", http.StatusBadRequest)
		return
	}
	parsed, err := url.Parse(imageURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		h.writeError(w, "URL must be http or https", http.StatusBadRequest)
		return
	}

	height := uint(images.DefaultHeight)
	if raw := r.URL.Query().Get("height"); raw != "" {
		n, err := strconv.ParseUint(raw, 10, 16)
		if err != nil || n == 0 {
			h.writeError(w, "height must be a positive integer", http.StatusBadRequest)
			return
		}
		if n > images.MaxHeight {
			h.writeError(w, "height must be at most "+strconv.Itoa(images.MaxHeight), http.StatusBadRequest)
			return
		}
		height = uint(n)
	}

	thumb, err := h.fetcher.Thumbnail(r.Context(), imageURL, height)
	if errors.Is(err, images.ErrTooLarge) {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if errors.Is(err, images.ErrUnsupportedImage) {
		h.writeError(w, err.Error(), http.StatusUnsupportedMediaType)
		return
	}
	if err != nil {
		h.writeError(w, "Failed to fetch image: "+err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", thumb.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(thumb.Data)))
	if _, err := w.Write(thumb.Data); err != nil {
		h.writeError(w, "Failed to write image", http.StatusInternalServerError)
	}
}
