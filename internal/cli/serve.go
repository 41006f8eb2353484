package cli

import (
	"github.com/spf13/cobra"
	"github.com/tartampluch/go-lunar/internal/config"
	"github.com/tartampluch/go-lunar/internal/metrics"
	"github.com/tartampluch/go-lunar/internal/server"
	"golang.org/x/sync/errgroup"
)

func (a *App) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the current month over HTTP and keep it up to date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.settings(cmd)
			if err != nil {
				return err
			}

			reg := metrics.New()
			g, err := newGenerator(cmd.Context(), s, reg)
			if err != nil {
				return err
			}
			srv := server.NewAlmanacServer(s.Server.Port, reg)
			w := &worker{gen: g, srv: srv, settings: s}

			grp, ctx := errgroup.WithContext(cmd.Context())
			grp.Go(func() error { return srv.Start(ctx) })
			grp.Go(func() error { return w.Run(ctx) })
			return grp.Wait()
		},
	}

	cmd.Flags().String(config.FlagPort, config.DefaultPort, config.FlagDescPort)
	cmd.Flags().String(config.FlagOutput, config.DefaultOutput, config.FlagDescOut)
	cmd.Flags().String(config.FlagICS, "", config.FlagDescICS)
	return cmd
}
