package recipes

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/lehigh-university-libraries/recipebox/internal/models"
)

// Parse decodes an upstream payload: a JSON array of recipe objects.
func Parse(data []byte) ([]models.RawRecipe, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		return nil, fmt.Errorf("recipe payload must be a JSON array")
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode recipe payload: %w", err)
	}

	raws := make([]models.RawRecipe, 0, len(records))
	for i, record := range records {
		var raw models.RawRecipe
		if err := json.Unmarshal(record, &raw); err != nil {
			return nil, fmt.Errorf("failed to decode recipe %d: %w", i+1, err)
		}
		raws = append(raws, raw)
	}
	return raws, nil
}
