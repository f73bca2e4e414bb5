package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sadopc/playtally/internal/loader"
)

func newImportCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "import <csv file or url>",
		Short: "Load a Date,Person,Game CSV, replacing the stored entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := o.open()
			if err != nil {
				return err
			}
			defer s.Close()

			res := loader.Load(cmd.Context(), args[0])
			if res.Err != nil {
				return fmt.Errorf("import %s: %w", args[0], res.Err)
			}
			imp, err := s.store.ImportEntries(res.Source, res.Entries, res.Rows, res.Dropped)
			if err != nil {
				return err
			}
			slog.Debug("import stored", "id", imp.ID, "rows", imp.RowCount)

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d entries from %s", len(res.Entries), res.Source)
			if res.Dropped > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), " (%d rows dropped)", res.Dropped)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
}
