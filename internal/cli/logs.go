package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/repolist/internal/logtail"
)

func newLogsCommand(flags *rootFlags) *cobra.Command {
	var (
		lines int
		level string
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the end of the TUI log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}

			var out []string
			if v := strings.TrimSpace(level); v != "" {
				var floor slog.Level
				if err := floor.UnmarshalText([]byte(v)); err != nil {
					return fmt.Errorf("invalid --level %q: %w", v, err)
				}
				out, err = logtail.ReadLevel(cfg.LogFile, lines, floor)
			} else {
				out, err = logtail.Read(cfg.LogFile, lines)
			}
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, line := range out {
				fmt.Fprintln(w, line)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVarP(&lines, "lines", "n", 50, "number of lines to show (0 for all)")
	f.StringVar(&level, "level", "", "only show records at or above this level (debug, info, warn, error)")
	return cmd
}
