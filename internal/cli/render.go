package cli

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sadopc/playtally/internal/render"
)

func newRenderCmd(o *options) *cobra.Command {
	var out, participant string
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Write the charts as SVG files and an index.html",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := o.open()
			if err != nil {
				return err
			}
			defer s.Close()

			// A failed load still writes the placeholder charts.
			st, stateErr := s.state(cmd.Context(), participant)
			if stateErr != nil && st.LoadErr == nil {
				return stateErr
			}

			if err := os.MkdirAll(out, 0o755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}
			charts := render.RenderCharts(st, s.cfg.Charts.PieRadius, render.StyleFromConfig(s.cfg))
			for _, name := range render.ChartNames {
				svg, _ := charts.Chart(name)
				path := filepath.Join(out, name+".svg")
				if err := os.WriteFile(path, []byte(svg), 0o644); err != nil {
					return fmt.Errorf("write %s: %w", path, err)
				}
				slog.Debug("wrote chart", "path", path)
			}

			var page bytes.Buffer
			if err := render.Page(&page, st, charts); err != nil {
				return err
			}
			index := filepath.Join(out, "index.html")
			if err := os.WriteFile(index, page.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", index, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d charts and %s for %s\n", len(render.ChartNames), index, st.Participant)
			return stateErr
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", ".", "output directory")
	cmd.Flags().StringVarP(&participant, "participant", "p", "", "participant filter (default is the saved filter)")
	return cmd
}
