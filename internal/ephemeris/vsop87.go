package ephemeris

import (
	"fmt"
	"log/slog"
	"math"
	"os"

	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/moonphase"
	"github.com/soniakeys/meeus/v3/moonposition"
	pp "github.com/soniakeys/meeus/v3/planetposition"
	"github.com/soniakeys/meeus/v3/pluto"
	"github.com/soniakeys/meeus/v3/solar"
	"github.com/tartampluch/go-lunar/internal/config"
)

// lunationsPerYear converts between decimal years and lunation numbers (Meeus ch. 49).
const lunationsPerYear = 12.3685

// daysPerJulianYear is the length of the Julian year used for decimal years.
const daysPerJulianYear = 365.25

// precessionPerCentury is the general precession in longitude, degrees per Julian century.
const precessionPerCentury = 1.3969713

var vsopBodies = map[Body]int{
	Mercury: pp.Mercury,
	Venus:   pp.Venus,
	Mars:    pp.Mars,
	Jupiter: pp.Jupiter,
	Saturn:  pp.Saturn,
	Uranus:  pp.Uranus,
	Neptune: pp.Neptune,
}

var phaseSeries = map[PhaseKind]func(year float64) float64{
	NewMoon:      moonphase.New,
	FirstQuarter: moonphase.First,
	FullMoon:     moonphase.Full,
	LastQuarter:  moonphase.Last,
}

// VSOP87 computes positions from the VSOP87B planetary theory, the ELP-based
// lunar series and the Meeus phase series.
type VSOP87 struct {
	earth   *pp.V87Planet
	planets map[Body]*pp.V87Planet
}

// LoadVSOP87 reads the VSOP87B files (VSOP87B.ear, VSOP87B.mer, ...) from dir.
func LoadVSOP87(dir string) (*VSOP87, error) {
	if dir == "" {
		return nil, fmt.Errorf("%s: %w", config.ErrEphemPathEmpty, ErrDataPath)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", config.ErrEphemLoad, ErrDataPath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w: %s is not a directory", config.ErrEphemLoad, ErrDataPath, dir)
	}

	earth, err := pp.LoadPlanetPath(pp.Earth, dir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: earth: %v", config.ErrEphemLoad, ErrDataPath, err)
	}

	e := &VSOP87{earth: earth, planets: make(map[Body]*pp.V87Planet, len(vsopBodies))}
	for body, ibody := range vsopBodies {
		p, err := pp.LoadPlanetPath(ibody, dir)
		if err != nil {
			return nil, fmt.Errorf("%s: %w: %s: %v", config.ErrEphemLoad, ErrDataPath, body, err)
		}
		e.planets[body] = p
	}

	slog.Debug(config.MsgEphemLoaded,
		config.LogKeyComponent, config.CompEphemeris,
		config.LogKeyBackend, config.BackendVSOP87,
		config.LogKeyPath, dir,
	)
	return e, nil
}

// Longitude implements Ephemeris.
func (e *VSOP87) Longitude(m Moment, b Body) (float64, error) {
	jde := float64(m)
	switch b {
	case Sun:
		return sunLongitude(jde), nil
	case Moon:
		return moonLongitude(jde), nil
	case Pluto:
		l, lat, r := pluto.Heliocentric(jde)
		// Pluto's theory is referred to J2000; shift to the equinox of date.
		lon := l.Deg() + precessionPerCentury*base.J2000Century(jde)
		return e.geocentric(jde, lon*math.Pi/180, lat.Rad(), r), nil
	}

	p, ok := e.planets[b]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownBody, b)
	}
	l, lat, r := p.Position(jde)
	return e.geocentric(jde, l.Rad(), lat.Rad(), r), nil
}

// geocentric converts heliocentric coordinates (radians, AU) to geocentric longitude in degrees.
func (e *VSOP87) geocentric(jde, l, b, r float64) float64 {
	l0, b0, r0 := e.earth.Position(jde)
	x := r*math.Cos(b)*math.Cos(l) - r0*math.Cos(b0.Rad())*math.Cos(l0.Rad())
	y := r*math.Cos(b)*math.Sin(l) - r0*math.Cos(b0.Rad())*math.Sin(l0.Rad())
	return Normalize(math.Atan2(y, x) * 180 / math.Pi)
}

// NextOccurrence implements Ephemeris.
func (e *VSOP87) NextOccurrence(kind PhaseKind, m Moment) (Moment, error) {
	series, ok := phaseSeries[kind]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownPhase, int(kind))
	}
	return nextInSeries(series, m)
}

// nextInSeries walks the phase series one lunation at a time, starting a
// lunation before m, until it passes m.
func nextInSeries(series func(float64) float64, m Moment) (Moment, error) {
	step := 1 / lunationsPerYear
	year := decimalYear(m) - step
	limit := m.Add(eventTolerance)
	for i := 0; i < config.MaxPhaseSteps; i++ {
		jde := Moment(series(year))
		if jde.After(limit) {
			return jde, nil
		}
		year += step
	}
	return 0, ErrNoConvergence
}

func decimalYear(m Moment) float64 {
	return 2000 + float64(m-J2000)/daysPerJulianYear
}

func sunLongitude(jde float64) float64 {
	s, _ := solar.True(base.J2000Century(jde))
	return Normalize(s.Deg())
}

func moonLongitude(jde float64) float64 {
	lon, _, _ := moonposition.Position(jde)
	return Normalize(lon.Deg())
}
