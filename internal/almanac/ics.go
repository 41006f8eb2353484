package almanac

import (
	"bytes"
	"fmt"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
	"github.com/tartampluch/go-lunar/internal/config"
	"github.com/tartampluch/go-lunar/internal/ephemeris"
	"github.com/tartampluch/go-lunar/internal/locale"
	"github.com/tartampluch/go-lunar/internal/lunar"
)

// uidNamespace scopes the name-based event UIDs.
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceDNS, []byte(config.ICalDomain))

// ICS renders the month's primary phases and void-of-course windows as an
// iCalendar feed. Events are deduplicated across days; UIDs depend only on the
// event, so regenerating the month yields the same identifiers.
func (m *Month) ICS(tr *locale.Translator, now time.Time) ([]byte, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	from := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, m.Location)
	to := from.AddDate(0, 1, 0)
	inMonth := func(t ephemeris.Moment) bool {
		tt := t.Time()
		return !tt.Before(from) && tt.Before(to)
	}

	seen := make(map[string]bool)
	for _, d := range m.Days {
		a := d.Astro

		if key := "phase|" + a.PhaseTime.Time().Format(time.RFC3339); !seen[key] && inMonth(a.PhaseTime) {
			seen[key] = true
			e := newEvent(key, a.PhaseTime, dtStampProp)
			e.Props.SetText(config.PropSummary, tr.Msg(config.TKeyICSPhaseSummary, phaseData(tr, a.EventRecord)))
			e.Props.SetText(config.PropCategories, config.CategoryPhase)
			cal.Children = append(cal.Children, e.Component)
		}

		// One window per ingress, as seen from the earliest day.
		key := "voc|" + a.Void.End.Time().Format(time.RFC3339)
		if !seen[key] && a.Void.Duration() > 0 && inMonth(a.Void.Start) {
			seen[key] = true
			e := newEvent(key, a.Void.Start, dtStampProp)
			end := ical.NewProp(config.PropDTEnd)
			end.SetDateTime(a.Void.End.Time())
			e.Props.Set(end)
			e.Props.SetText(config.PropSummary, tr.Msg(config.TKeyICSVoCSummary, nil))
			e.Props.SetText(config.PropDescription, tr.Msg(config.TKeyICSVoCDescription, map[string]any{
				"Sign": tr.Sign(a.Void.Ingress),
			}))
			e.Props.SetText(config.PropCategories, config.CategoryVoC)
			cal.Children = append(cal.Children, e.Component)
		}
	}

	if len(cal.Children) == 0 {
		return []byte(config.StubVCalendar), nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}
	return buf.Bytes(), nil
}

func newEvent(key string, start ephemeris.Moment, stamp *ical.Prop) *ical.Event {
	e := ical.NewEvent()
	uid := uuid.NewSHA1(uidNamespace, []byte(key))
	e.Props.SetText(config.PropUID, uid.String()+"@"+config.ICalDomain)
	e.Props.Set(stamp)

	dtStart := ical.NewProp(config.PropDTStart)
	dtStart.SetDateTime(start.Time())
	e.Props.Set(dtStart)
	return e
}

func phaseData(tr *locale.Translator, rec lunar.PhaseRecord) map[string]any {
	return map[string]any{
		"Emoji": rec.Phase.Emoji(),
		"Phase": tr.Phase(rec.Phase),
		"Sign":  tr.Sign(rec.Sign),
	}
}

// WriteICSFile renders and writes the feed atomically.
func WriteICSFile(path string, m *Month, tr *locale.Translator, now time.Time) error {
	data, err := m.ICS(tr, now)
	if err != nil {
		return err
	}
	return writeAtomic(path, data)
}
