package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/repolist/internal/api"
)

func newAddCommand(flags *rootFlags) *cobra.Command {
	var (
		title  string
		url    string
		techs  []string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a repository and print the stored record",
		Long: `Create a repository through the API. The title defaults to
"New repo <unix-millis>" and the URL to new_repo_url from the config.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, svc, err := flags.services(cmd)
			if err != nil {
				return err
			}

			payload := api.NewRepository{
				Title: strings.TrimSpace(title),
				URL:   strings.TrimSpace(url),
				Techs: cleanTechs(techs),
			}
			if payload.Title == "" {
				payload.Title = fmt.Sprintf("New repo %d", time.Now().UnixMilli())
			}
			if payload.URL == "" {
				payload.URL = cfg.NewRepoURL
			}

			record, err := svc.Controller.AddRepository(cmd.Context(), payload)
			if err != nil {
				return err
			}
			return printRepositories(cmd.OutOrStdout(), []api.Repository{record}, cfg.Locale, asJSON)
		},
	}

	f := cmd.Flags()
	f.StringVar(&title, "title", "", "repository title")
	f.StringVar(&url, "url", "", "repository URL")
	f.StringSliceVar(&techs, "tech", nil, "technology tag (repeatable or comma separated)")
	f.BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func cleanTechs(techs []string) []string {
	out := make([]string, 0, len(techs))
	for _, t := range techs {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
