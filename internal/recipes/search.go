package recipes

import (
	"strings"
	"unicode"

	"github.com/lehigh-university-libraries/recipebox/internal/models"
)

// AuthorSearchName is the form of an author name that queries match against:
// the name up to the first character that is neither an ASCII letter nor
// whitespace, trimmed and lowercased. "Jane Doe (chef)" becomes "jane doe".
func AuthorSearchName(a models.Author) string {
	name := a.DisplayName()
	if i := strings.IndexFunc(name, func(r rune) bool {
		return !isASCIILetter(r) && !unicode.IsSpace(r)
	}); i >= 0 {
		name = name[:i]
	}
	return strings.ToLower(strings.TrimSpace(name))
}

// Matches reports whether a recipe's name or author contains the query,
// ignoring case. The empty query matches every recipe.
func Matches(r models.Recipe, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(r.Name), q) ||
		strings.Contains(AuthorSearchName(r.Author), q)
}

// Filter returns the recipes matching query, in order.
func Filter(list []models.Recipe, query string) []models.Recipe {
	out := make([]models.Recipe, 0, len(list))
	for _, r := range list {
		if Matches(r, query) {
			out = append(out, r)
		}
	}
	return out
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
