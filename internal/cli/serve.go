package cli

import (
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/repolist/internal/api"
	"github.com/five82/repolist/internal/devserver"
)

// demoRepositories seeds `serve --demo`.
var demoRepositories = []api.Repository{
	{ID: "1", Title: "repolist", URL: "https://github.com/five82/repolist", Techs: []string{"Go", "Bubble Tea"}, Likes: 3},
	{ID: "2", Title: "Desafio Node.js", URL: "https://github.com/example/desafio-node", Techs: []string{"Node.js", "Express"}, Likes: 1},
	{ID: "3", Title: "Conceitos ReactJS", URL: "https://github.com/example/conceitos-react", Techs: []string{"React"}},
}

func newServeCommand(flags *rootFlags) *cobra.Command {
	var (
		listen string
		demo   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run an in-memory repositories API for local development",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			addr := strings.TrimSpace(listen)
			if addr == "" {
				addr = cfg.Listen
			}

			opts := devserver.Options{Logger: flags.logger(cmd, slog.LevelInfo)}
			if demo {
				opts.Seed = demoRepositories
			}
			return devserver.New(opts).ListenAndServe(cmd.Context(), addr)
		},
	}

	f := cmd.Flags()
	f.StringVar(&listen, "listen", "", "address to listen on (default from config, 127.0.0.1:3333)")
	f.BoolVar(&demo, "demo", false, "start with a few sample repositories")
	return cmd
}
