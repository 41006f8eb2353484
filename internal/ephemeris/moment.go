package ephemeris

import (
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/tartampluch/go-lunar/internal/config"
)

// J2000 is the Julian Day of 2000-01-01 12:00 TT, the epoch of the mean elements.
const J2000 Moment = 2451545.0

// Moment is an absolute instant expressed as a Julian Day.
// All angle and interval arithmetic happens on Moments; conversion to civil
// time only happens when formatting.
//
// The ephemeris series are evaluated in dynamical time while Moments are
// derived from UTC; the difference (about 70 seconds) is ignored.
type Moment float64

// MomentOf converts a civil time to a Moment.
func MomentOf(t time.Time) Moment {
	return Moment(julian.TimeToJD(t.UTC()))
}

// Time converts the Moment back to a UTC time, rounded to the second.
func (m Moment) Time() time.Time {
	return julian.JDToTime(float64(m)).UTC().Round(time.Second)
}

// Add returns the Moment shifted by d.
func (m Moment) Add(d time.Duration) Moment {
	return m + Moment(d.Seconds()/config.SecondsPerDay)
}

// Sub returns the duration m-o.
func (m Moment) Sub(o Moment) time.Duration {
	return time.Duration(float64(m-o) * config.SecondsPerDay * float64(time.Second))
}

// Before reports whether m is strictly earlier than o.
func (m Moment) Before(o Moment) bool { return m < o }

// After reports whether m is strictly later than o.
func (m Moment) After(o Moment) bool { return m > o }

// In formats the moment in loc using layout.
func (m Moment) In(loc *time.Location, layout string) string {
	return m.Time().In(loc).Format(layout)
}
