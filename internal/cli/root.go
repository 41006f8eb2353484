// Package cli implements the go-lunar command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tartampluch/go-lunar/internal/config"
)

// App carries the state shared by every command of one invocation.
type App struct {
	v         *viper.Viper
	in        io.Reader
	out       io.Writer
	errOut    io.Writer
	logCloser io.Closer
}

// Execute runs the command line in args and returns the first error.
// Logs go to errOut and the cache-dir log file; command output goes to out.
func Execute(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) error {
	a := &App{
		v:      config.NewViper(),
		in:     in,
		out:    out,
		errOut: errOut,
	}
	defer a.close()

	root := a.rootCmd()
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)
	return root.ExecuteContext(ctx)
}

func (a *App) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "go-lunar",
		Short:         "Per-day lunar almanac generator",
		Long:          "go-lunar computes the moon's phase, sign, aspects, void-of-course window and next primary phase for each day of a month and publishes them as JSON and iCalendar.",
		Version:       config.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			debug, _ := cmd.Flags().GetBool(config.FlagDebug)
			a.logCloser = setupLogging(a.errOut, debug)
			logStartupInfo()
			return nil
		},
	}
	root.SetVersionTemplate(fmt.Sprintf(config.MsgVersionOutput,
		config.AppName,
		config.Version,
		runtime.GOOS,
		runtime.GOARCH,
	))

	root.PersistentFlags().String(config.FlagConfig, "", config.FlagDescCfg)
	root.PersistentFlags().Bool(config.FlagDebug, false, config.FlagDescDebug)

	root.AddCommand(
		a.generateCmd(),
		a.showCmd(),
		a.serveCmd(),
		a.keyCmd(),
	)
	return root
}

// flagKeys maps command flags onto settings keys.
var flagKeys = map[string]string{
	config.FlagOutput: config.KeyOutput,
	config.FlagICS:    config.KeyICSOutput,
	config.FlagPort:   config.KeyServerPort,
}

// settings binds the running command's flags and loads the configuration.
func (a *App) settings(cmd *cobra.Command) (config.Settings, error) {
	for flag, key := range flagKeys {
		if f := cmd.Flags().Lookup(flag); f != nil {
			_ = a.v.BindPFlag(key, f)
		}
	}
	cfgFile, _ := cmd.Flags().GetString(config.FlagConfig)
	return config.Load(a.v, cfgFile)
}

func (a *App) close() {
	if a.logCloser != nil {
		_ = a.logCloser.Close()
	}
}
