package cmd

import (
	"github.com/lehigh-university-libraries/recipebox/internal/export"
	"github.com/spf13/cobra"
)

func newShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print one recipe in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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
			return export.WriteDetail(cmd.OutOrStdout(), recipe, s.IsSaved(id))
		},
	}
}
