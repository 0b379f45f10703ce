package source

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/lehigh-university-libraries/recipebox/internal/models"
	"github.com/lehigh-university-libraries/recipebox/internal/recipes"
	"github.com/parquet-go/parquet-go"
)

// ErrUnsupportedFormat is returned for dataset files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Loader reads a recipe dataset from a local file.
type Loader struct {
	datasetPath string
}

// NewLoader creates a new dataset loader
func NewLoader(datasetPath string) *Loader {
	return &Loader{
		datasetPath: datasetPath,
	}
}

// FetchRecipes loads the file, choosing the decoder by extension.
func (l *Loader) FetchRecipes(ctx context.Context) ([]models.RawRecipe, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(l.datasetPath))
	switch ext {
	case ".json":
		return l.loadJSON()
	case ".jsonl":
		return l.loadJSONL(ctx)
	case ".parquet":
		return l.loadParquet(ctx)
	default:
		return nil, fmt.Errorf("%w: %s (supported: .json, .jsonl, .parquet)", ErrUnsupportedFormat, ext)
	}
}

func (l *Loader) loadJSON() ([]models.RawRecipe, error) {
	data, err := os.ReadFile(l.datasetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	return recipes.Parse(data)
}

// loadJSONL loads one recipe object per line
func (l *Loader) loadJSONL(ctx context.Context) ([]models.RawRecipe, error) {
	slog.Debug("Opening JSONL file", "path", l.datasetPath)

	file, err := os.Open(l.datasetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer file.Close()

	var raws []models.RawRecipe
	scanner := bufio.NewScanner(file)

	// Increase buffer size for large JSON lines
	const maxCapacity = 10 * 1024 * 1024 // 10MB per line
	buf := make([]byte, 64*1024)
	scanner.Buffer(buf, maxCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()

		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var raw models.RawRecipe
		if err := json.Unmarshal(line, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse JSON at line %d: %w", lineNum, err)
		}
		raws = append(raws, raw)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading dataset: %w", err)
	}

	slog.Debug("Finished reading JSONL file", "total_records", len(raws), "total_lines", lineNum)
	return raws, nil
}

// loadParquet reads rows written by the parquet exporter
func (l *Loader) loadParquet(ctx context.Context) ([]models.RawRecipe, error) {
	slog.Debug("Opening Parquet file", "path", l.datasetPath)

	file, err := os.Open(l.datasetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	slog.Debug("Parquet file opened successfully", "num_rows", pf.NumRows(), "num_row_groups", len(pf.RowGroups()))

	reader := parquet.NewGenericReader[models.RecipeRow](pf)
	defer reader.Close()

	var raws []models.RawRecipe
	rows := make([]models.RecipeRow, 128) // Read in batches

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n, err := reader.Read(rows)
		for _, row := range rows[:n] {
			raws = append(raws, row.Raw())
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read parquet rows: %w", err)
		}
	}

	slog.Debug("Finished reading Parquet file", "total_records", len(raws))
	return raws, nil
}
