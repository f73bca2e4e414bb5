package cli

import (
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sadopc/playtally/internal/log"
	"github.com/sadopc/playtally/internal/tui"
)

func newTUICmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the terminal dashboard (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, o)
		},
	}
}

func runTUI(cmd *cobra.Command, o *options) error {
	// Log lines would tear the alternate screen.
	if !o.verbose {
		log.SetupWriter(io.Discard, false, o.quiet)
	}

	s, err := o.open()
	if err != nil {
		return err
	}
	defer s.Close()

	if _, loadErr, err := s.base(cmd.Context()); err != nil {
		return err
	} else if loadErr != nil {
		slog.Warn("configured source not loaded", "source", s.cfg.Data.Source, "err", loadErr)
	}

	p := tea.NewProgram(
		tui.NewApp(s.store, s.options()),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(cmd.Context()),
	)
	_, err = p.Run()
	return err
}
