package lunar_test

import (
	"github.com/tartampluch/go-lunar/internal/ephemeris"
)

// stationaryModel puts every body except the moon at lon with no motion and
// moves the moon from moonStart at rate degrees per day, starting at J2000.
func stationaryModel(lon, moonStart, rate float64) *ephemeris.MeanMotion {
	e := ephemeris.NewMeanMotion()
	for _, b := range ephemeris.Bodies {
		e.Elements[b] = ephemeris.Element{Epoch: lon}
	}
	e.Elements[ephemeris.Moon] = ephemeris.Element{Epoch: moonStart, Rate: rate}
	return e
}

// alignedModel has a new moon at J2000 and a 30 day cycle.
func alignedModel() *ephemeris.MeanMotion {
	e := ephemeris.NewMeanMotion()
	e.Elements[ephemeris.Sun] = ephemeris.Element{Epoch: 0, Rate: 1}
	e.Elements[ephemeris.Moon] = ephemeris.Element{Epoch: 0, Rate: 13}
	return e
}

// stubEphemeris returns fixed longitudes and fixed next occurrences.
type stubEphemeris struct {
	lon  map[ephemeris.Body]float64
	next map[ephemeris.PhaseKind]ephemeris.Moment
}

func (s stubEphemeris) Longitude(_ ephemeris.Moment, b ephemeris.Body) (float64, error) {
	lon, ok := s.lon[b]
	if !ok {
		return 0, ephemeris.ErrUnknownBody
	}
	return lon, nil
}

func (s stubEphemeris) NextOccurrence(k ephemeris.PhaseKind, _ ephemeris.Moment) (ephemeris.Moment, error) {
	m, ok := s.next[k]
	if !ok {
		return 0, ephemeris.ErrUnknownPhase
	}
	return m, nil
}
