package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/repolist/internal/app"
	"github.com/five82/repolist/internal/config"
	"github.com/five82/repolist/internal/logging"
)

const appName = "repolist"

// rootFlags are the persistent flags shared by every subcommand.
type rootFlags struct {
	configPath string
	prefsPath  string
	apiURL     string
	verbose    bool
}

// NewRootCommand builds the repolist command tree. Running it without a
// subcommand starts the TUI.
func NewRootCommand() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   appName,
		Short: "Browse, add and like repositories from a repositories API",
		Long: `repolist keeps a local collection of repositories in sync with a small
HTTP API. Without a subcommand it opens an interactive terminal UI; the
subcommands run a single operation and print the result.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			return app.Run(cmd.Context(), app.Options{Config: cfg, PrefsPath: flags.prefsPath})
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	pf.StringVar(&flags.prefsPath, "prefs", "", "preferences file (default ~/.config/repolist/prefs.toml)")
	pf.StringVar(&flags.apiURL, "api-url", "", "override the API base URL")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(
		newListCommand(flags),
		newAddCommand(flags),
		newLikeCommand(flags),
		newServeCommand(flags),
		newLogsCommand(flags),
	)
	return root
}

// Execute runs the command tree with args and returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", appName, err)
		return 1
	}
	return 0
}

func (f *rootFlags) loadConfig() (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if v := strings.TrimSpace(f.apiURL); v != "" {
		cfg.APIURL = v
	}
	return cfg, nil
}

// logger returns the stderr logger used by headless commands. Warnings and
// errors are always shown; --verbose adds everything down to debug.
func (f *rootFlags) logger(cmd *cobra.Command, floor slog.Level) *slog.Logger {
	level := floor
	if f.verbose {
		level = slog.LevelDebug
	}
	return logging.New(cmd.ErrOrStderr(), level)
}

// services loads config and wires the controller for a headless command.
func (f *rootFlags) services(cmd *cobra.Command) (config.Config, *app.Services, error) {
	cfg, err := f.loadConfig()
	if err != nil {
		return config.Config{}, nil, err
	}
	svc, err := buildServices(cmd, f, cfg)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, svc, nil
}

func buildServices(cmd *cobra.Command, f *rootFlags, cfg config.Config) (*app.Services, error) {
	return app.Build(cfg, f.logger(cmd, slog.LevelWarn))
}
