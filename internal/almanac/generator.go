// Package almanac assembles the per-day lunar almanac for a calendar month and
// publishes it as JSON and iCalendar documents.
package almanac

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/tartampluch/go-lunar/internal/advice"
	"github.com/tartampluch/go-lunar/internal/config"
	"github.com/tartampluch/go-lunar/internal/ephemeris"
	"github.com/tartampluch/go-lunar/internal/locale"
	"github.com/tartampluch/go-lunar/internal/lunar"
	"github.com/tartampluch/go-lunar/internal/metrics"
)

// ErrInvalidMonth is returned for a month outside 1..12.
var ErrInvalidMonth = errors.New("invalid month")

// Day pairs a published entry with the computation it came from.
type Day struct {
	Date  time.Time
	Key   string
	Entry Entry
	Astro lunar.Day
}

// Month is a fully computed month, held in memory until written.
type Month struct {
	Year     int
	Month    time.Month
	Location *time.Location
	Days     []Day

	// Degraded counts days whose advice came from the table after a service failure.
	Degraded int

	// DegradedPeriods counts phase runs described from the table after a service failure.
	DegradedPeriods int
}

// Almanac returns the publishable document.
func (m *Month) Almanac() *Almanac {
	a := New()
	for _, d := range m.Days {
		// Keys are unique by construction.
		_ = a.Add(d.Key, d.Entry)
	}
	return a
}

// Generator builds months. Every field is required except Metrics.
type Generator struct {
	Clock         Clock
	Engine        *lunar.Engine
	Advisor       advice.Provider
	Translator    *locale.Translator
	Tables        Tables
	Location      *time.Location
	ReferenceHour int
	Metrics       *metrics.Registry
}

// CurrentMonth returns the month containing now in the generator's location.
func (g *Generator) CurrentMonth() (int, time.Month) {
	now := g.Clock.Now().In(g.Location)
	return now.Year(), now.Month()
}

// Build computes every day of the month in ascending order. Any per-day
// failure aborts the whole month.
func (g *Generator) Build(ctx context.Context, year int, month time.Month) (*Month, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMonth, int(month))
	}

	start := time.Now()
	log := slog.With(
		config.LogKeyComponent, config.CompAlmanac,
		config.LogKeyMonth, fmt.Sprintf(config.FormatFavKey, year, int(month)),
	)
	log.InfoContext(ctx, config.MsgGenStarted)

	m, err := g.build(ctx, year, month)
	if err != nil {
		g.Metrics.ObserveGeneration(time.Since(start), 0, err)
		return nil, err
	}
	g.Metrics.ObserveGeneration(time.Since(start), len(m.Days), nil)

	log.Info(config.MsgGenSuccess,
		config.LogKeyDays, len(m.Days),
		config.LogKeyFallbacks, m.Degraded,
		config.LogKeyPeriods, m.DegradedPeriods,
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
	return m, nil
}

func (g *Generator) build(ctx context.Context, year int, month time.Month) (*Month, error) {
	favorable, unfavorable, err := g.Tables.For(year, month)
	if err != nil {
		return nil, err
	}

	m := &Month{Year: year, Month: month, Location: g.Location}
	last := daysIn(year, month)
	for d := 1; d <= last; d++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		date := time.Date(year, month, d, 0, 0, 0, 0, g.Location)
		key := date.Format(config.DateFormatKey)
		ref := ephemeris.MomentOf(time.Date(year, month, d, g.ReferenceHour, 0, 0, 0, g.Location))

		astro, err := g.Engine.Day(ref)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", config.ErrDayFailed, key, err)
		}

		adv := g.Advisor.Advise(ctx, advice.Request{Date: date, Record: astro.Record})
		if adv.Degraded {
			m.Degraded++
			g.Metrics.AdviceFallback()
		}

		m.Days = append(m.Days, Day{
			Date:  date,
			Key:   key,
			Astro: astro,
			Entry: g.entry(astro, adv.Lines, favorable, unfavorable),
		})
	}

	g.describe(ctx, m)
	return m, nil
}

func (g *Generator) entry(d lunar.Day, adv []string, favorable, unfavorable map[string][]int) Entry {
	tr := g.Translator
	aspects := make([]string, 0, len(d.Aspects))
	for _, a := range d.Aspects {
		aspects = append(aspects, tr.AspectLine(a))
	}

	return Entry{
		Phase:     tr.PhaseLine(d.Record),
		PhaseName: tr.Phase(d.Record.Phase),
		PhaseTime: d.PhaseTime.Time().UTC().Format(config.DateFormatPhase),
		Percent:   d.Record.Illumination,
		Sign:      tr.Sign(d.Record.Sign),
		Aspects:   aspects,
		VoidOfCourse: VoidWindow{
			Start: d.Void.Start.In(g.Location, config.DateFormatVoC),
			End:   d.Void.End.In(g.Location, config.DateFormatVoC),
		},
		NextEvent:       tr.NextEventLine(d.Next),
		Advice:          append([]string{}, adv...),
		FavorableDays:   cloneDays(favorable),
		UnfavorableDays: cloneDays(unfavorable),
	}
}

// cloneDays gives each entry its own copy of the month table.
func cloneDays(days map[string][]int) map[string][]int {
	out := make(map[string][]int, len(days))
	for c, d := range days {
		out[c] = slices.Clone(d)
	}
	return out
}
