package almanac

import (
	"slices"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/tartampluch/go-lunar/internal/advice"
	"github.com/tartampluch/go-lunar/internal/config"
	"github.com/tartampluch/go-lunar/internal/locale"
	"github.com/tartampluch/go-lunar/internal/lunar"
)

var categoryEmoji = map[string]string{
	config.CategoryHaircut:  "✂️",
	config.CategoryTravel:   "✈️",
	config.CategoryShopping: "🛍️",
	config.CategoryHealth:   "❤️",
}

// DigestOptions tunes Digest.
type DigestOptions struct {
	// ShowAllVoC keeps void-of-course windows shorter than config.VoCHideMinutes.
	ShowAllVoC bool
}

// Digest renders the short daily block: void of course, day rating,
// categories, phase and sign, advice and the next event. Missing parts are
// skipped.
func Digest(e Entry, date time.Time, tr *locale.Translator, opts DigestOptions) []string {
	var lines []string

	if l := vocLine(e.VoidOfCourse, date, tr, opts.ShowAllVoC); l != "" {
		lines = append(lines, l)
	}

	day := date.Day()
	general := config.CategoryGeneral
	switch {
	case slices.Contains(e.FavorableDays[general], day):
		lines = append(lines, tr.Msg(config.TKeyDayFavorable, nil))
	case slices.Contains(e.UnfavorableDays[general], day):
		lines = append(lines, tr.Msg(config.TKeyDayUnfavorable, nil))
	}

	for _, c := range config.Categories {
		if c == general {
			continue
		}
		data := map[string]any{"Emoji": categoryEmoji[c], "Category": tr.Category(c)}
		switch {
		case slices.Contains(e.FavorableDays[c], day):
			lines = append(lines, tr.Msg(config.TKeyCategoryFavorable, data))
		case slices.Contains(e.UnfavorableDays[c], day):
			lines = append(lines, tr.Msg(config.TKeyCategoryUnfavorable, data))
		}
	}

	if e.PhaseName != "" {
		lines = append(lines, phaseDigest(e, tr))
	}

	for i, a := range e.Advice {
		if i == config.AdviceCount {
			break
		}
		for _, s := range advice.ParseLines(a, 1) {
			lines = append(lines, ensureBullet(s))
		}
	}

	if next := strings.TrimSpace(e.NextEvent); next != "" {
		if !strings.HasPrefix(next, "→") {
			next = "→ " + next
		}
		lines = append(lines, next)
	}
	return lines
}

func vocLine(v VoidWindow, date time.Time, tr *locale.Translator, showAll bool) string {
	loc := date.Location()
	start, ok := parseVoC(v.Start, date.Year(), loc)
	if !ok {
		return ""
	}
	end, ok := parseVoC(v.End, date.Year(), loc)
	if !ok {
		return ""
	}
	if end.Before(start) {
		end = end.AddDate(1, 0, 0)
	}

	if start.Month() != date.Month() || start.Day() != date.Day() {
		return ""
	}
	minutes := int(end.Sub(start).Minutes())
	if minutes < config.VoCHideMinutes && !showAll {
		return ""
	}
	return tr.Msg(config.TKeyVoCLine, map[string]any{
		"Start":   start.Format(config.DateFormatClock),
		"End":     end.Format(config.DateFormatClock),
		"Minutes": minutes,
	})
}

// parseVoC reads a "DD.MM HH:mm" value; the stored form has no year.
func parseVoC(s string, year int, loc *time.Location) (time.Time, bool) {
	t, err := time.Parse(config.DateFormatVoC, s)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(year, t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, loc), true
}

// phaseDigest renders "<emoji> <phase> • <symbol> <sign>", recovering the
// glyphs from the localized names stored in the entry.
func phaseDigest(e Entry, tr *locale.Translator) string {
	emoji, symbol := defaultEmoji, ""
	if p, ok := phaseByName(e.PhaseName, tr); ok {
		emoji = p.Emoji()
	}
	if s, ok := signByName(e.Sign, tr); ok {
		symbol = s.Symbol()
	}
	return tr.Msg(config.TKeyDigestPhase, map[string]any{
		"Emoji":  emoji,
		"Phase":  e.PhaseName,
		"Symbol": symbol,
		"Sign":   e.Sign,
	})
}

const defaultEmoji = "🌙"

func phaseByName(name string, tr *locale.Translator) (lunar.Phase, bool) {
	for _, p := range lunar.Phases {
		if tr.Phase(p) == name {
			return p, true
		}
	}
	return 0, false
}

func signByName(name string, tr *locale.Translator) (lunar.Sign, bool) {
	for _, s := range lunar.Signs {
		if tr.Sign(s) == name {
			return s, true
		}
	}
	return 0, false
}

func ensureBullet(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	r, _ := utf8.DecodeRuneInString(s)
	if unicode.IsLetter(r) || unicode.IsDigit(r) {
		return "• " + s
	}
	return s
}
