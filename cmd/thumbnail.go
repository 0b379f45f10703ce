package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/lehigh-university-libraries/recipebox/internal/images"
	"github.com/lehigh-university-libraries/recipebox/internal/recipes"
	"github.com/spf13/cobra"
)

func newThumbnailCmd(opts *rootOptions) *cobra.Command {
	var (
		height uint
		output string
	)

	cmd := &cobra.Command{
		Use:   "thumbnail <id|url>",
		Short: "Download a recipe image and scale it",
		Long: `Downloads the first image of a recipe (or any image URL) and writes a
copy scaled to --height pixels, keeping the aspect ratio.`,
		Example: `  recipebox thumbnail 3 --height 200 --output pie.jpg`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				return fmt.Errorf("--output is required")
			}

			imageURL := args[0]
			if _, err := strconv.Atoi(args[0]); err == nil {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				s, closeStore, err := opts.openStore()
				if err != nil {
					return err
				}
				defer closeStore()

				if err := s.Fetch(cmd.Context()); err != nil {
					return err
				}
				recipe, err := s.Recipe(id)
				if err != nil {
					return err
				}
				if len(recipe.Image) == 0 || recipe.Image[0] == recipes.PlaceholderImage {
					return fmt.Errorf("recipe %d has no image", id)
				}
				imageURL = recipe.Image[0]
			}

			fetcher := images.NewFetcher(opts.cfg.HTTPTimeout)
			thumb, err := fetcher.Thumbnail(cmd.Context(), imageURL, height)
			if err != nil {
				return err
			}
			if err := os.WriteFile(output, thumb.Data, 0644); err != nil {
				return fmt.Errorf("failed to write thumbnail: %w", err)
			}

			slog.Info("Thumbnail written", "output", output, "format", thumb.Format, "width", thumb.Width, "height", thumb.Height)
			return nil
		},
	}

	cmd.Flags().UintVar(&height, "height", images.DefaultHeight, "Thumbnail height in pixels (at most 2000)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (required)")

	return cmd
}
