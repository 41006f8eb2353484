package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-lunar/internal/almanac"
	"github.com/tartampluch/go-lunar/internal/config"
	"github.com/tartampluch/go-lunar/internal/locale"
)

func (a *App) showCmd() *cobra.Command {
	var (
		dateFlag string
		allVoC   bool
		month    bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the digest of one day, or the month summary, from a written almanac",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.settings(cmd)
			if err != nil {
				return err
			}
			loc := s.TimeZone()

			date, err := parseDay(dateFlag, time.Now(), loc)
			if err != nil {
				return err
			}

			doc, err := almanac.ReadFile(s.Output)
			if err != nil {
				return err
			}
			tr, err := locale.New(s.Language)
			if err != nil {
				return err
			}

			var lines []string
			if month {
				if lines, err = almanac.Summary(doc, tr, loc); err != nil {
					return err
				}
			} else {
				key := date.Format(config.DateFormatKey)
				entry, ok := doc.Lookup(key)
				if !ok {
					return fmt.Errorf("%s: %s", config.ErrDateMissing, key)
				}
				lines = almanac.Digest(entry, date, tr, almanac.DigestOptions{ShowAllVoC: allVoC})
			}
			for _, line := range lines {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, config.FlagDate, "", config.FlagDescDate)
	cmd.Flags().BoolVar(&allVoC, config.FlagAllVoC, false, config.FlagDescVoC)
	cmd.Flags().BoolVar(&month, config.FlagMonth, false, config.FlagDescSumm)
	cmd.Flags().String(config.FlagOutput, config.DefaultOutput, config.FlagDescOut)
	return cmd
}

// parseDay returns midnight of the requested civil date in loc; an empty
// value means the day after now.
func parseDay(value string, now time.Time, loc *time.Location) (time.Time, error) {
	if value == "" {
		y, m, d := now.In(loc).AddDate(0, 0, 1).Date()
		return time.Date(y, m, d, 0, 0, 0, 0, loc), nil
	}
	t, err := time.ParseInLocation(config.DateFormatKey, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %q: %w", config.ErrDateParse, value, err)
	}
	return t, nil
}
