package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sadopc/playtally/internal/render"
	"github.com/sadopc/playtally/internal/server"
)

func newServeCmd(o *options) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := o.open()
			if err != nil {
				return err
			}
			defer s.Close()

			base, loadErr, err := s.base(cmd.Context())
			if err != nil {
				return err
			}
			if loadErr != nil {
				slog.Warn("serving placeholders", "source", s.cfg.Data.Source, "err", loadErr)
			}
			if addr == "" {
				addr = s.cfg.Server.Addr
			}

			srv := server.New(base, loadErr, server.Options{
				Dashboard: s.options(),
				Style:     render.StyleFromConfig(s.cfg),
				Radius:    s.cfg.Charts.PieRadius,
				AccessLog: cmd.OutOrStdout(),
			})
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default is server.addr)")
	return cmd
}
