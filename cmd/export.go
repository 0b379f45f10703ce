package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/lehigh-university-libraries/recipebox/internal/export"
	"github.com/lehigh-university-libraries/recipebox/internal/models"
	"github.com/spf13/cobra"
)

// createFile opens export destinations.
var createFile = func(name string) (io.WriteCloser, error) {
	return os.Create(name)
}

// writeFile runs write against a new file at path and reports close errors.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := createFile(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to export recipes: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return nil
}

func newExportCmd(opts *rootOptions) *cobra.Command {
	var (
		format string
		output string
		saved  bool
		query  string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write recipes to a file",
		Long: `Exports the normalized recipe list, or the saved list with --saved.

Parquet output can be read back by pointing --source at the file.`,
		Example: `  # Snapshot the cookbook for offline use
  recipebox export --format parquet --output cookbook.parquet
  recipebox list --source cookbook.parquet

  # Saved recipes as YAML on stdout
  recipebox export --saved --format yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "parquet" && output == "" {
				return fmt.Errorf("--output is required for parquet")
			}

			s, closeStore, err := opts.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			var list []models.Recipe
			if saved {
				list = s.SavedRecipes()
			} else {
				if err := s.Fetch(cmd.Context()); err != nil {
					return err
				}
				s.FilterRecipes(query)
				list = s.FilteredRecipes()
			}

			if output == "" {
				if err := export.Write(cmd.OutOrStdout(), format, list); err != nil {
					return fmt.Errorf("failed to export recipes: %w", err)
				}
				return nil
			}

			if err := writeFile(output, func(w io.Writer) error {
				return export.Write(w, format, list)
			}); err != nil {
				return err
			}
			slog.Info("Recipes exported", "count", len(list), "format", format, "output", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json, jsonl, yaml, csv, parquet or text")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	cmd.Flags().BoolVar(&saved, "saved", false, "Export the saved list instead of the fetched one")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Only export recipes whose name or author contains this text")

	return cmd
}
