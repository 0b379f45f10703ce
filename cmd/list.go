package cmd

import (
	"fmt"

	"github.com/lehigh-university-libraries/recipebox/internal/export"
	"github.com/spf13/cobra"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	var (
		query  string
		page   int
		format string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List one page of recipes",
		Long: `Fetches the recipe list and prints one page of it.

Pages hold 9 recipes. --query keeps recipes whose name or author contains the
text, ignoring case. Asking for a page past the end prints the last page.`,
		Example: `  # First page of everything
  recipebox list

  # Second page of recipes matching "chicken"
  recipebox list --query chicken --page 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if page < 1 {
				return fmt.Errorf("--page must be at least 1")
			}

			s, closeStore, err := opts.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			if err := s.Fetch(cmd.Context()); err != nil {
				return err
			}
			if query != "" {
				s.FilterRecipes(query)
			}
			for i := 1; i < page; i++ {
				s.NextPage()
			}

			p := s.Page()
			if err := export.Write(cmd.OutOrStdout(), format, p.Recipes); err != nil {
				return err
			}
			if format == "text" {
				fmt.Fprintf(cmd.OutOrStdout(), "\nPage %d of %d (%d recipes)\n", p.CurrentPage, p.TotalPages, p.TotalItems)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Only list recipes whose name or author contains this text")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "Page to print")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, json, jsonl, yaml or csv")

	return cmd
}
