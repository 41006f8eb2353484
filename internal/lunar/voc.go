package lunar

import (
	"errors"
	"fmt"
	"time"

	"github.com/tartampluch/go-lunar/internal/config"
	"github.com/tartampluch/go-lunar/internal/ephemeris"
)

var (
	// ErrVoidNotFound is returned when no transition happens within the search horizon.
	ErrVoidNotFound = errors.New("void of course not found within horizon")
	// ErrInconsistentVoid is returned when the resolved end precedes the start.
	ErrInconsistentVoid = errors.New("void of course ends before it starts")
)

// VoidOfCourse is the window from the moon's separation from its last aspect
// in a sign to its ingress into the next sign. No aspect is in orb during
// [Start, End).
type VoidOfCourse struct {
	Start ephemeris.Moment
	End   ephemeris.Moment

	// Ingress is the sign the moon enters at End.
	Ingress Sign
}

// Duration is the length of the window.
func (v VoidOfCourse) Duration() time.Duration {
	return v.End.Sub(v.Start)
}

// Resolver scans forward in time for void-of-course windows.
type Resolver struct {
	Ephemeris ephemeris.Ephemeris
	Detector  Detector
	Step      time.Duration
	Precision time.Duration
	Horizon   time.Duration
}

// NewResolver returns a resolver with the default scan parameters.
func NewResolver(e ephemeris.Ephemeris) *Resolver {
	return &Resolver{
		Ephemeris: e,
		Detector:  Detector{Ephemeris: e},
		Step:      config.VoidScanStep,
		Precision: config.VoidPrecision,
		Horizon:   config.VoidHorizon,
	}
}

// Resolve returns the void-of-course window that ends at the moon's next
// sign ingress after m. The window starts when the last aspect formed in the
// current sign separates; a moon already void at m yields Start == m, and an
// aspect lasting through the ingress yields an empty window at End.
func (r *Resolver) Resolve(m ephemeris.Moment) (VoidOfCourse, error) {
	sign, err := r.moonSign(m)
	if err != nil {
		return VoidOfCourse{}, err
	}
	end, err := r.firstTrue(m, func(t ephemeris.Moment) (bool, error) {
		s, err := r.moonSign(t)
		return s != sign, err
	})
	if err != nil {
		return VoidOfCourse{}, fmt.Errorf("sign ingress: %w", err)
	}
	ingress, err := r.moonSign(end)
	if err != nil {
		return VoidOfCourse{}, err
	}

	start, err := r.lastSeparation(m, end)
	if err != nil {
		return VoidOfCourse{}, fmt.Errorf("void start: %w", err)
	}
	v := VoidOfCourse{Start: start, End: end, Ingress: ingress}
	if v.End.Before(v.Start) {
		return v, ErrInconsistentVoid
	}
	return v, nil
}

// lastSeparation scans [from,to) backward from to and returns the moment the
// latest aspect leaves its orb, or from when none is in orb. Aspects last
// several hours at lunar speed, so the Step sampling cannot skip one.
func (r *Resolver) lastSeparation(from, to ephemeris.Moment) (ephemeris.Moment, error) {
	void := func(t ephemeris.Moment) (bool, error) {
		aspects, err := r.Detector.At(t)
		return len(aspects) == 0, err
	}

	hi := to
	for t := to.Add(-r.Precision); ; t = t.Add(-r.Step) {
		if t.Before(from) {
			t = from
		}
		ok, err := void(t)
		if err != nil {
			return 0, err
		}
		if !ok {
			return r.bisect(t, hi, void)
		}
		if !t.After(from) {
			return from, nil
		}
		hi = t
	}
}

func (r *Resolver) moonSign(t ephemeris.Moment) (Sign, error) {
	lon, err := r.Ephemeris.Longitude(t, ephemeris.Moon)
	if err != nil {
		return 0, err
	}
	return SignOf(lon), nil
}

// firstTrue finds the earliest moment at or after from where pred holds,
// sampling every Step and refining by bisection down to Precision.
func (r *Resolver) firstTrue(from ephemeris.Moment, pred func(ephemeris.Moment) (bool, error)) (ephemeris.Moment, error) {
	ok, err := pred(from)
	if err != nil || ok {
		return from, err
	}

	limit := from.Add(r.Horizon)
	prev := from
	for t := from.Add(r.Step); !t.After(limit); t = t.Add(r.Step) {
		ok, err := pred(t)
		if err != nil {
			return 0, err
		}
		if ok {
			return r.bisect(prev, t, pred)
		}
		prev = t
	}
	return 0, ErrVoidNotFound
}

// bisect narrows [lo,hi], pred(lo) false and pred(hi) true, to Precision.
func (r *Resolver) bisect(lo, hi ephemeris.Moment, pred func(ephemeris.Moment) (bool, error)) (ephemeris.Moment, error) {
	for hi.Sub(lo) > r.Precision {
		mid := lo + (hi-lo)/2
		ok, err := pred(mid)
		if err != nil {
			return 0, err
		}
		if ok {
			hi = mid
		} else {
			lo = mid
		}
	}
	return hi, nil
}
