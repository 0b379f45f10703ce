// Package recipes holds the pure transformations applied to recipe data:
// boundary parsing, normalization, instruction formatting and search.
package recipes

import (
	"strings"

	"github.com/lehigh-university-libraries/recipebox/internal/models"
)

// InstructionsUnavailable is returned when instructions cannot be formatted.
const InstructionsUnavailable = "Instructions not available"

// FormatInstructions joins step or line instructions with newlines and
// returns text instructions unchanged. An empty list yields "".
func FormatInstructions(in models.Instructions) string {
	switch in.Kind {
	case models.InstructionsSteps, models.InstructionsList:
		return strings.Join(in.Lines, "\n")
	case models.InstructionsText:
		return in.Text
	default:
		return InstructionsUnavailable
	}
}
