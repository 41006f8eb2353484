package almanac

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/tartampluch/go-lunar/internal/config"
	"github.com/tartampluch/go-lunar/internal/locale"
	"github.com/tartampluch/go-lunar/internal/lunar"
)

// Summary renders the monthly overview of a written almanac: a title, one
// block per phase run with its signs and description, the favorable-day
// tables and the void-of-course windows of at least
// config.SummaryVoCMinutes. Blocks are separated by empty lines. An empty
// document yields nothing.
func Summary(a *Almanac, tr *locale.Translator, loc *time.Location) ([]string, error) {
	dates := a.Dates()
	if len(dates) == 0 {
		return nil, nil
	}
	days := make([]time.Time, len(dates))
	for i, key := range dates {
		d, err := time.ParseInLocation(config.DateFormatKey, key, loc)
		if err != nil {
			return nil, fmt.Errorf("%s: %q: %w", config.ErrDateParse, key, err)
		}
		days[i] = d
	}
	first := days[0]

	lines := []string{
		tr.Msg(config.TKeySummaryTitle, map[string]any{
			"Month": strings.ToUpper(fmt.Sprintf("%s %d", tr.Month(first.Month()), first.Year())),
		}),
		"",
	}
	lines = append(lines, phaseBlocks(a, dates, days, tr)...)
	lines = append(lines, favorableBlock(a.entries[dates[0]], tr)...)
	if voc := vocBlock(a, dates, first, tr); len(voc) > 0 {
		lines = append(lines, "")
		lines = append(lines, voc...)
	}
	return append(lines, "", tr.Msg(config.TKeySummaryFooter, nil)), nil
}

// phaseBlocks groups consecutive entries by phase name.
func phaseBlocks(a *Almanac, dates []string, days []time.Time, tr *locale.Translator) []string {
	var lines []string
	for i := 0; i < len(dates); {
		e := a.entries[dates[i]]
		j := i
		for j+1 < len(dates) && strings.EqualFold(a.entries[dates[j+1]].PhaseName, e.PhaseName) {
			j++
		}

		var names []string
		for _, key := range dates[i : j+1] {
			if s := a.entries[key].Sign; s != "" && !slices.Contains(names, s) {
				names = append(names, s)
			}
		}

		emoji := defaultEmoji
		if p, ok := phaseByName(e.PhaseName, tr); ok {
			emoji = p.Emoji()
		}
		header := fmt.Sprintf(config.FormatSummaryPeriod, emoji, tr.Span(days[i], days[j]))
		if signs := zodiacOrder(names, tr); len(signs) > 0 {
			header += fmt.Sprintf(config.FormatSummarySigns, strings.Join(signs, ", "))
		}
		lines = append(lines, header)
		if desc := strings.TrimSpace(e.LongDesc); desc != "" {
			lines = append(lines, desc)
		}
		lines = append(lines, "")
		i = j + 1
	}
	return lines
}

// zodiacOrder sorts sign names by their place in the zodiac; unknown names
// keep their order after the known ones.
func zodiacOrder(names []string, tr *locale.Translator) []string {
	rank := func(name string) int {
		if s, ok := signByName(name, tr); ok {
			return int(s)
		}
		return len(lunar.Signs)
	}
	out := slices.Clone(names)
	slices.SortStableFunc(out, func(x, y string) int { return rank(x) - rank(y) })
	return out
}

func favorableBlock(e Entry, tr *locale.Translator) []string {
	none := tr.Msg(config.TKeySummaryNone, nil)
	list := func(days []int) string {
		if len(days) == 0 {
			return none
		}
		s := make([]string, len(days))
		for i, d := range days {
			s[i] = strconv.Itoa(d)
		}
		return strings.Join(s, ", ")
	}

	general := config.CategoryGeneral
	lines := []string{
		tr.Msg(config.TKeySummaryFavorable, map[string]any{"Days": list(e.FavorableDays[general])}),
		tr.Msg(config.TKeySummaryUnfavorable, map[string]any{"Days": list(e.UnfavorableDays[general])}),
	}
	for _, c := range config.Categories {
		if c == general {
			continue
		}
		lines = append(lines, tr.Msg(config.TKeySummaryCategory, map[string]any{
			"Emoji":    categoryEmoji[c],
			"Category": tr.Category(c),
			"Days":     list(e.FavorableDays[c]),
		}))
	}
	return lines
}

// vocBlock lists each distinct window starting in the month of first once,
// in document order. Days inside the same window share its end.
func vocBlock(a *Almanac, dates []string, first time.Time, tr *locale.Translator) []string {
	year, loc := first.Year(), first.Location()
	var items []string
	seen := make(map[string]bool)
	for _, key := range dates {
		v := a.entries[key].VoidOfCourse
		if v.End == "" || seen[v.End] {
			continue
		}
		start, ok := parseVoC(v.Start, year, loc)
		if !ok {
			continue
		}
		end, ok := parseVoC(v.End, year, loc)
		if !ok {
			continue
		}
		seen[v.End] = true
		if end.Before(start) {
			end = end.AddDate(1, 0, 0)
		}
		if start.Month() != first.Month() || end.Sub(start) < config.SummaryVoCMinutes*time.Minute {
			continue
		}
		items = append(items, tr.Msg(config.TKeySummaryVoCItem, map[string]any{
			"Start": start.Format(config.DateFormatVoC),
			"End":   end.Format(config.DateFormatVoC),
		}))
	}
	if len(items) == 0 {
		return nil
	}
	return append([]string{tr.Msg(config.TKeySummaryVoCTitle, nil)}, items...)
}
