// Package cli wires the playtally commands.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sadopc/playtally/internal/log"
)

// options holds the global flag values.
type options struct {
	configPath string
	dbPath     string
	verbose    bool
	quiet      bool
	noColor    bool
}

// NewRootCmd builds the command tree. Running it without a subcommand starts the TUI.
func NewRootCmd() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:   "playtally",
		Short: "Charts and leaderboards for a log of games played",
		Long: `playtally reads a Date,Person,Game CSV and shows who played what and when:
a donut of games, a month calendar, daily and cumulative counts, and leaderboards.

Example usage:
  playtally import games.csv        # Load a CSV file or http(s) URL
  playtally                         # Open the terminal dashboard
  playtally serve --addr :8080      # Serve the dashboard over HTTP
  playtally render --out site       # Write SVG charts and index.html
  playtally stats --participant Ana # Print the leaderboards`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			log.Setup(o.verbose, o.quiet)
			if o.noColor {
				color.NoColor = true
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, o)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&o.configPath, "config", "", "config file (default is ~/.config/playtally/config.yaml)")
	pf.StringVar(&o.dbPath, "db", "", "SQLite database (overrides data.db_path)")
	pf.BoolVarP(&o.verbose, "verbose", "v", false, "enable verbose output")
	pf.BoolVarP(&o.quiet, "quiet", "q", false, "suppress non-essential output")
	pf.BoolVar(&o.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		newTUICmd(o),
		newImportCmd(o),
		newRenderCmd(o),
		newServeCmd(o),
		newStatsCmd(o),
		newExportCmd(o),
	)
	return root
}

// Execute runs the root command until it finishes or the process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCmd().ExecuteContext(ctx)
}
