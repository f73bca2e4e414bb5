package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sadopc/playtally/internal/export"
)

func newExportCmd(o *options) *cobra.Command {
	var format, out, participant string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the filtered entries as CSV or JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != "csv" && format != "json" {
				return fmt.Errorf("unknown format %q: use csv or json", format)
			}
			s, err := o.open()
			if err != nil {
				return err
			}
			defer s.Close()

			st, err := s.state(cmd.Context(), participant)
			if err != nil {
				return err
			}

			switch {
			case out == "-" && format == "csv":
				return export.WriteCSV(cmd.OutOrStdout(), st.Entries)
			case out == "-":
				return export.WriteJSON(cmd.OutOrStdout(), st.Entries, st.Participant)
			case format == "csv":
				err = export.ToCSV(st.Entries, out)
			default:
				err = export.ToJSON(st.Entries, st.Participant, out)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d entries to %s\n", st.Total(), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "csv", "csv or json")
	cmd.Flags().StringVarP(&out, "out", "o", "-", "output file, - for stdout")
	cmd.Flags().StringVarP(&participant, "participant", "p", "", "participant filter (default is the saved filter)")
	return cmd
}
