package cli

import (
	"github.com/spf13/cobra"
)

func newListCommand(flags *rootFlags) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Load and print every repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, svc, err := flags.services(cmd)
			if err != nil {
				return err
			}
			if err := svc.Controller.LoadAll(cmd.Context()); err != nil {
				return err
			}
			return printRepositories(cmd.OutOrStdout(), svc.Store.Snapshot().Items.Items(), cfg.Locale, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}
