// Package source fetches raw recipe batches from a remote URL or a local
// dataset file.
package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/lehigh-university-libraries/recipebox/internal/models"
	"github.com/lehigh-university-libraries/recipebox/internal/recipes"
)

// DefaultURL is the public cookbook the browser reads from.
const DefaultURL = "https://raw.githubusercontent.com/micahcochran/json-cookbook/refs/heads/main/cookbook-100.json"

// maxPayloadSize bounds the response body read into memory.
const maxPayloadSize = 32 * 1024 * 1024

// Client fetches the recipe dataset over HTTP.
type Client struct {
	URL        string
	httpClient *http.Client
}

// NewClient creates a new client. A zero timeout means 30 seconds.
func NewClient(url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		URL: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchRecipes downloads and parses the whole dataset in one request.
func (c *Client) FetchRecipes(ctx context.Context) ([]models.RawRecipe, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recipes: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("recipe source returned status %d: %s", resp.StatusCode, string(body))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read recipe payload: %w", err)
	}

	raws, err := recipes.Parse(data)
	if err != nil {
		return nil, err
	}

	slog.Debug("Fetched recipes", "url", c.URL, "count", len(raws), "bytes", len(data), "elapsed", time.Since(start))
	return raws, nil
}
