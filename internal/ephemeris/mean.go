package ephemeris

import (
	"fmt"

	"github.com/tartampluch/go-lunar/internal/config"
)

// Element is a linear mean longitude: Longitude(t) = Epoch + Rate*(t - epoch).
type Element struct {
	Epoch float64 // degrees at the model epoch
	Rate  float64 // degrees per day
}

// MeanMotion is a low-precision ephemeris made of linear mean longitudes.
// Inner planets follow the mean sun. It needs no data files and is useful for
// offline previews and for tests with exactly known geometry.
type MeanMotion struct {
	Epoch    Moment
	Elements map[Body]Element
}

// NewMeanMotion returns the model with J2000 mean elements.
func NewMeanMotion() *MeanMotion {
	sun := Element{Epoch: 280.46646, Rate: 0.98564736}
	return &MeanMotion{
		Epoch: J2000,
		Elements: map[Body]Element{
			Sun:     sun,
			Moon:    {Epoch: 218.3164477, Rate: 13.17639648},
			Mercury: sun,
			Venus:   sun,
			Mars:    {Epoch: 355.45332, Rate: 0.52402068},
			Jupiter: {Epoch: 34.40438, Rate: 0.08308529},
			Saturn:  {Epoch: 49.94432, Rate: 0.03344414},
			Uranus:  {Epoch: 313.23218, Rate: 0.01172834},
			Neptune: {Epoch: 304.88003, Rate: 0.00598103},
			Pluto:   {Epoch: 238.92881, Rate: 0.00397},
		},
	}
}

// Longitude implements Ephemeris.
func (e *MeanMotion) Longitude(m Moment, b Body) (float64, error) {
	el, ok := e.Elements[b]
	if !ok || !b.Valid() {
		return 0, fmt.Errorf("%w: %s", ErrUnknownBody, b)
	}
	return Normalize(el.Epoch + el.Rate*float64(m-e.Epoch)), nil
}

// NextOccurrence implements Ephemeris analytically from the elongation rate.
func (e *MeanMotion) NextOccurrence(kind PhaseKind, m Moment) (Moment, error) {
	if kind < NewMoon || kind > LastQuarter {
		return 0, fmt.Errorf("%w: %d", ErrUnknownPhase, int(kind))
	}
	sun, sok := e.Elements[Sun]
	moon, mok := e.Elements[Moon]
	if !sok || !mok {
		return 0, fmt.Errorf("%w: sun and moon elements required", ErrUnknownBody)
	}
	rate := moon.Rate - sun.Rate
	if rate <= 0 {
		return 0, ErrNoConvergence
	}

	sunLon, _ := e.Longitude(m, Sun)
	moonLon, _ := e.Longitude(m, Moon)
	days := Normalize(kind.Angle()-Elongation(sunLon, moonLon)) / rate
	if days*config.SecondsPerDay < eventTolerance.Seconds() {
		// m sits on the event; the next one is a whole cycle away.
		days += 360 / rate
	}
	return m + Moment(days), nil
}
