package source

import (
	"context"
	"strings"
	"time"

	"github.com/lehigh-university-libraries/recipebox/internal/models"
)

// Source yields one raw recipe batch per call.
type Source interface {
	FetchRecipes(ctx context.Context) ([]models.RawRecipe, error)
}

// New returns a Client for http(s) locations and a Loader for anything else.
func New(location string, timeout time.Duration) Source {
	lower := strings.ToLower(location)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return NewClient(location, timeout)
	}
	return NewLoader(location)
}
