// Package ephemeris provides geocentric ecliptic longitudes of the tracked
// bodies and the moments of the primary lunar phases.
package ephemeris

import (
	"errors"
	"fmt"
	"time"

	"github.com/tartampluch/go-lunar/internal/config"
)

var (
	// ErrUnknownBody is returned for a body outside the tracked set.
	ErrUnknownBody = errors.New("unknown body")
	// ErrUnknownPhase is returned for a phase kind outside the four primary phases.
	ErrUnknownPhase = errors.New("unknown phase kind")
	// ErrDataPath is returned when the ephemeris data files cannot be loaded.
	ErrDataPath = errors.New("ephemeris data path unusable")
	// ErrNoConvergence is returned when a phase search does not settle.
	ErrNoConvergence = errors.New("phase search did not converge")
)

// eventTolerance treats moments this close to an exact phase as the phase itself.
const eventTolerance = time.Second

// Ephemeris is the contract every position source implements.
//
// NextOccurrence is exclusive: it returns the first occurrence strictly after
// m. A moment within one second of an exact phase counts as that phase, so the
// following lunation's occurrence is returned.
type Ephemeris interface {
	// Longitude returns the geocentric ecliptic longitude of b in [0,360).
	Longitude(m Moment, b Body) (float64, error)
	// NextOccurrence returns the next moment the given phase is exact.
	NextOccurrence(kind PhaseKind, m Moment) (Moment, error)
}

// New builds the backend selected in the settings.
// Misconfiguration is fatal for the caller; nothing retries.
func New(backend, path string) (Ephemeris, error) {
	switch backend {
	case config.BackendVSOP87:
		return LoadVSOP87(path)
	case config.BackendMean:
		return NewMeanMotion(), nil
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrInvalidBackend, backend)
	}
}

// Positions returns the longitude of every tracked body at m.
func Positions(e Ephemeris, m Moment) (map[Body]float64, error) {
	out := make(map[Body]float64, len(Bodies))
	for _, b := range Bodies {
		lon, err := e.Longitude(m, b)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", config.ErrEphemQuery, b, err)
		}
		out[b] = lon
	}
	return out, nil
}
