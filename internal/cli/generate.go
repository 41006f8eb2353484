package cli

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-lunar/internal/almanac"
	"github.com/tartampluch/go-lunar/internal/config"
)

func (a *App) generateCmd() *cobra.Command {
	var year, month int

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Compute a month and write the almanac",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.settings(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			g, err := newGenerator(ctx, s, nil)
			if err != nil {
				return err
			}

			y, m := g.CurrentMonth()
			if year != 0 {
				y = year
			}
			if month != 0 {
				m = time.Month(month)
			}

			built, err := g.Build(ctx, y, m)
			if err != nil {
				return err
			}
			if err := almanac.WriteFile(s.Output, built.Almanac()); err != nil {
				return err
			}
			slog.Info(config.MsgAlmanacWritten,
				config.LogKeyComponent, config.CompCLI,
				config.LogKeyPath, s.Output,
				config.LogKeyDays, len(built.Days),
			)

			if s.ICSOutput == "" {
				return nil
			}
			if err := almanac.WriteICSFile(s.ICSOutput, built, g.Translator, g.Clock.Now()); err != nil {
				return err
			}
			slog.Info(config.MsgICSWritten,
				config.LogKeyComponent, config.CompCLI,
				config.LogKeyPath, s.ICSOutput,
			)
			return nil
		},
	}

	cmd.Flags().IntVar(&year, config.FlagYear, 0, config.FlagDescYear)
	cmd.Flags().IntVar(&month, config.FlagMonth, 0, config.FlagDescMonth)
	cmd.Flags().String(config.FlagOutput, config.DefaultOutput, config.FlagDescOut)
	cmd.Flags().String(config.FlagICS, "", config.FlagDescICS)
	return cmd
}
