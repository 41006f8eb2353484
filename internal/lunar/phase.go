// Package lunar classifies the moon's phase and sign, detects its aspects,
// resolves void-of-course windows and forecasts the next major phase.
package lunar

import (
	"fmt"
	"math"

	"github.com/tartampluch/go-lunar/internal/ephemeris"
)

// Phase is one of the eight named phases, each 45 degrees of elongation wide.
type Phase int

const (
	NewMoon Phase = iota
	WaxingCrescent
	FirstQuarter
	WaxingGibbous
	FullMoon
	WaningGibbous
	LastQuarter
	WaningCrescent
)

// Phases lists the phases in cycle order.
var Phases = []Phase{NewMoon, WaxingCrescent, FirstQuarter, WaxingGibbous, FullMoon, WaningGibbous, LastQuarter, WaningCrescent}

var phaseNames = [...]string{"New Moon", "Waxing Crescent", "First Quarter", "Waxing Gibbous", "Full Moon", "Waning Gibbous", "Last Quarter", "Waning Crescent"}

var phaseKeys = [...]string{"new_moon", "waxing_crescent", "first_quarter", "waxing_gibbous", "full_moon", "waning_gibbous", "last_quarter", "waning_crescent"}

var phaseEmoji = [...]string{"🌑", "🌒", "🌓", "🌔", "🌕", "🌖", "🌗", "🌘"}

func (p Phase) String() string {
	if p < NewMoon || p > WaningCrescent {
		return fmt.Sprintf("Phase(%d)", int(p))
	}
	return phaseNames[p]
}

// Key is the identifier used by locale files and advisory tables.
func (p Phase) Key() string {
	if p < NewMoon || p > WaningCrescent {
		return ""
	}
	return phaseKeys[p]
}

// Emoji is the moon glyph shown next to the phase name.
func (p Phase) Emoji() string {
	if p < NewMoon || p > WaningCrescent {
		return "🌙"
	}
	return phaseEmoji[p]
}

// PhaseOf maps an elongation to its phase. Bins are half-open and centered on
// multiples of 45 degrees: [337.5,22.5) is New Moon, [22.5,67.5) Waxing
// Crescent and so on.
func PhaseOf(elongation float64) Phase {
	a := ephemeris.Normalize(elongation)
	return Phase(int(math.Floor((a+22.5)/45)) % len(Phases))
}

// Illumination returns the lit fraction of the disc, in percent, for an elongation.
func Illumination(elongation float64) int {
	rad := ephemeris.Normalize(elongation) * math.Pi / 180
	return int(math.Round((1 - math.Cos(rad)) / 2 * 100))
}

// Sign is a tropical zodiac sign, 30 degrees of ecliptic longitude each.
type Sign int

const (
	Aries Sign = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

// Signs lists the signs in ecliptic order starting at 0 degrees.
var Signs = []Sign{Aries, Taurus, Gemini, Cancer, Leo, Virgo, Libra, Scorpio, Sagittarius, Capricorn, Aquarius, Pisces}

var signKeys = [...]string{"aries", "taurus", "gemini", "cancer", "leo", "virgo", "libra", "scorpio", "sagittarius", "capricorn", "aquarius", "pisces"}

var signSymbols = [...]string{"♈", "♉", "♊", "♋", "♌", "♍", "♎", "♏", "♐", "♑", "♒", "♓"}

func (s Sign) String() string {
	if s < Aries || s > Pisces {
		return fmt.Sprintf("Sign(%d)", int(s))
	}
	return signKeys[s]
}

// Key is the identifier used by locale files.
func (s Sign) Key() string { return s.String() }

// Symbol is the zodiac glyph.
func (s Sign) Symbol() string {
	if s < Aries || s > Pisces {
		return ""
	}
	return signSymbols[s]
}

// SignOf returns the sign containing an ecliptic longitude.
func SignOf(longitude float64) Sign {
	return Sign(int(ephemeris.Normalize(longitude)/30) % len(Signs))
}

// PhaseRecord is the classification of the moon at one moment.
type PhaseRecord struct {
	Elongation   float64
	Phase        Phase
	Illumination int
	Sign         Sign
}

// Classify derives the record from sun and moon longitudes.
func Classify(sunLon, moonLon float64) PhaseRecord {
	e := ephemeris.Elongation(sunLon, moonLon)
	return PhaseRecord{
		Elongation:   e,
		Phase:        PhaseOf(e),
		Illumination: Illumination(e),
		Sign:         SignOf(moonLon),
	}
}

// Classifier evaluates PhaseRecords against an ephemeris.
type Classifier struct {
	Ephemeris ephemeris.Ephemeris
}

// At classifies the moon at m.
func (c Classifier) At(m ephemeris.Moment) (PhaseRecord, error) {
	sun, err := c.Ephemeris.Longitude(m, ephemeris.Sun)
	if err != nil {
		return PhaseRecord{}, err
	}
	moon, err := c.Ephemeris.Longitude(m, ephemeris.Moon)
	if err != nil {
		return PhaseRecord{}, err
	}
	return Classify(sun, moon), nil
}
