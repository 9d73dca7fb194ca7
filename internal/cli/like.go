package cli

import (
	"github.com/spf13/cobra"

	"github.com/five82/repolist/internal/api"
)

func newLikeCommand(flags *rootFlags) *cobra.Command {
	var (
		strict bool
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "like <id>",
		Short: "Like a repository and print the updated record",
		Long: `Load the collection, register one like for the repository with the given
id, and print the record the server returned. With --strict (or
strict_likes = true in the config) a response for a repository that is not
in the collection is an error.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("strict") {
				cfg.StrictLikes = strict
			}
			svc, err := buildServices(cmd, flags, cfg)
			if err != nil {
				return err
			}

			if err := svc.Controller.LoadAll(cmd.Context()); err != nil {
				return err
			}
			record, err := svc.Controller.LikeRepository(cmd.Context(), api.ID(args[0]))
			if err != nil {
				return err
			}
			return printRepositories(cmd.OutOrStdout(), []api.Repository{record}, cfg.Locale, asJSON)
		},
	}

	f := cmd.Flags()
	f.BoolVar(&strict, "strict", false, "fail when the liked repository is not in the collection")
	f.BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}
