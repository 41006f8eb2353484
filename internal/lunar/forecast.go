package lunar

import (
	"time"

	"github.com/tartampluch/go-lunar/internal/config"
	"github.com/tartampluch/go-lunar/internal/ephemeris"
)

// NextEvent is the nearer of the next new and full moon.
type NextEvent struct {
	Kind   ephemeris.PhaseKind
	At     ephemeris.Moment
	Days   int
	Record PhaseRecord
}

// Forecaster looks ahead for the next new or full moon.
type Forecaster struct {
	Ephemeris ephemeris.Ephemeris

	// Location defines the civil dates used for day counts.
	Location *time.Location
}

// Next compares whole calendar days to the next new and full moon and keeps
// the smaller count. On a tie the new moon wins.
func (f Forecaster) Next(ref ephemeris.Moment) (NextEvent, error) {
	newAt, err := f.Ephemeris.NextOccurrence(ephemeris.NewMoon, ref)
	if err != nil {
		return NextEvent{}, err
	}
	fullAt, err := f.Ephemeris.NextOccurrence(ephemeris.FullMoon, ref)
	if err != nil {
		return NextEvent{}, err
	}

	ev := NextEvent{Kind: ephemeris.NewMoon, At: newAt, Days: CalendarDays(ref, newAt, f.Location)}
	if fullDays := CalendarDays(ref, fullAt, f.Location); fullDays < ev.Days {
		ev = NextEvent{Kind: ephemeris.FullMoon, At: fullAt, Days: fullDays}
	}

	ev.Record, err = Classifier{Ephemeris: f.Ephemeris}.At(ev.At)
	if err != nil {
		return NextEvent{}, err
	}
	return ev, nil
}

// CalendarDays counts civil dates from one moment to another in loc,
// ignoring the time of day.
func CalendarDays(from, to ephemeris.Moment, loc *time.Location) int {
	if loc == nil {
		loc = time.UTC
	}
	fy, fm, fd := from.Time().In(loc).Date()
	ty, tm, td := to.Time().In(loc).Date()
	a := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	b := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours()) / config.HoursPerDay
}

// PhaseEvent returns the primary phase nearest to the record's elongation and
// its exact moment around ref.
func PhaseEvent(e ephemeris.Ephemeris, rec PhaseRecord, ref ephemeris.Moment) (ephemeris.PhaseKind, ephemeris.Moment, error) {
	kind := ephemeris.KindNearest(rec.Elongation)
	halfCycle := time.Duration(config.SynodicMonthDays / 2 * config.SecondsPerDay * float64(time.Second))
	at, err := e.NextOccurrence(kind, ref.Add(-halfCycle))
	return kind, at, err
}
