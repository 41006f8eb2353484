// Package locale renders the almanac's human-readable strings from embedded
// go-i18n message files.
package locale

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-lunar/internal/config"
	"github.com/tartampluch/go-lunar/internal/ephemeris"
	"github.com/tartampluch/go-lunar/internal/lunar"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// ErrUnsupported is returned for a language without an embedded locale file.
var ErrUnsupported = errors.New("unsupported language")

// Translator resolves message IDs for one language.
type Translator struct {
	lang      string
	languages []string
	localizer *i18n.Localizer
}

// New loads every embedded locale and returns a translator for lang.
func New(lang string) (*Translator, error) {
	bundle := i18n.NewBundle(language.Russian)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrLocalesAccess, err)
	}

	var detected []string
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		code := strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json")
		if code == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			return nil, fmt.Errorf("%s: %s: %w", config.ErrLocaleLoad, name, err)
		}
		detected = append(detected, code)
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, code,
			config.LogKeyFile, name,
		)
	}

	if !slices.Contains(detected, lang) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, lang)
	}

	return &Translator{
		lang:      lang,
		languages: detected,
		localizer: i18n.NewLocalizer(bundle, lang),
	}, nil
}

// Language returns the active language code.
func (t *Translator) Language() string { return t.lang }

// Languages returns every language found among the embedded files.
func (t *Translator) Languages() []string { return slices.Clone(t.languages) }

// Msg translates a key. A missing key is returned verbatim.
func (t *Translator) Msg(key string, data map[string]any) string {
	return t.localize(&i18n.LocalizeConfig{MessageID: key, TemplateData: data})
}

// Count translates a plural key for n. data receives Count automatically.
func (t *Translator) Count(key string, n int, data map[string]any) string {
	td := map[string]any{"Count": n}
	for k, v := range data {
		td[k] = v
	}
	return t.localize(&i18n.LocalizeConfig{MessageID: key, PluralCount: n, TemplateData: td})
}

func (t *Translator) localize(lc *i18n.LocalizeConfig) string {
	msg, err := t.localizer.Localize(lc)
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, lc.MessageID,
			config.LogKeyError, err,
		)
		return lc.MessageID
	}
	return msg
}

// Phase returns the phase name.
func (t *Translator) Phase(p lunar.Phase) string {
	return t.Msg(config.TKeyPrefixPhase+p.Key(), nil)
}

// Sign returns the sign name.
func (t *Translator) Sign(s lunar.Sign) string {
	return t.Msg(config.TKeyPrefixSign+s.Key(), nil)
}

// Body returns the body name.
func (t *Translator) Body(b ephemeris.Body) string {
	return t.Msg(config.TKeyPrefixBody+b.String(), nil)
}

// Category returns the life-domain category name used by the favorable tables.
func (t *Translator) Category(key string) string {
	return t.Msg(config.TKeyPrefixCategory+key, nil)
}

// PhaseLine renders "<phase> в <sign> (<percent>% освещ.)".
func (t *Translator) PhaseLine(rec lunar.PhaseRecord) string {
	return t.Msg(config.TKeyPhaseLine, map[string]any{
		"Phase":   t.Phase(rec.Phase),
		"Sign":    t.Sign(rec.Sign),
		"Percent": rec.Illumination,
	})
}

// AspectLine renders "<symbol> <body> (<signed deviation>°)".
func (t *Translator) AspectLine(a lunar.Aspect) string {
	return fmt.Sprintf(config.FormatAspect, a.Kind.Symbol, t.Body(a.Body), fmt.Sprintf(config.FormatDeviation, a.Deviation))
}

// NextEventLine renders the forecast with the day count in its plural form.
func (t *Translator) NextEventLine(ev lunar.NextEvent) string {
	data := map[string]any{
		"Phase": t.Phase(ev.Record.Phase),
		"Sign":  t.Sign(ev.Record.Sign),
	}
	if ev.Days == 0 {
		return t.Msg(config.TKeyNextEventToday, data)
	}
	return t.Count(config.TKeyNextEvent, ev.Days, data)
}

// AdvicePrompt renders the request sent to the text-generation service.
func (t *Translator) AdvicePrompt(date string, rec lunar.PhaseRecord) string {
	return t.Msg(config.TKeyAdvicePrompt, map[string]any{
		"Date":  date,
		"Phase": t.Phase(rec.Phase),
		"Sign":  t.Sign(rec.Sign),
	})
}

// Month returns the month name ("февраль").
func (t *Translator) Month(m time.Month) string {
	return t.Msg(config.TKeyPrefixMonth+strconv.Itoa(int(m)), nil)
}

// MonthIn returns the month in the form used after "in" ("феврале").
func (t *Translator) MonthIn(m time.Month) string {
	return t.Msg(config.TKeyPrefixMonthIn+strconv.Itoa(int(m)), nil)
}

// Span renders a date range: "5 февр.", "1–3 февр." or "28 февр.–2 мар.".
func (t *Translator) Span(start, end time.Time) string {
	day := func(d time.Time) string {
		return t.Msg(config.TKeySpanDay, map[string]any{
			"Day":   d.Day(),
			"Month": t.Msg(config.TKeyPrefixMonthAbr+strconv.Itoa(int(d.Month())), nil),
		})
	}
	if start.Year() == end.Year() && start.YearDay() == end.YearDay() {
		return day(end)
	}
	from := strconv.Itoa(start.Day())
	if start.Month() != end.Month() || start.Year() != end.Year() {
		from = day(start)
	}
	return t.Msg(config.TKeySpanRange, map[string]any{"From": from, "To": day(end)})
}

// PeriodPrompt renders the request for a month's period descriptions.
func (t *Translator) PeriodPrompt(month, periods string) string {
	return t.Msg(config.TKeyPeriodPrompt, map[string]any{"Month": month, "Periods": periods})
}

// PeriodRetryPrompt asks again for the periods an earlier answer missed.
func (t *Translator) PeriodRetryPrompt(periods string) string {
	return t.Msg(config.TKeyPeriodRetryPrompt, map[string]any{"Periods": periods})
}
