package lunar

import (
	"fmt"
	"time"

	"github.com/tartampluch/go-lunar/internal/ephemeris"
)

// Day is everything computed for one reference moment.
type Day struct {
	Reference ephemeris.Moment
	Record    PhaseRecord
	PhaseKind ephemeris.PhaseKind
	PhaseTime ephemeris.Moment

	// EventRecord classifies the moon at PhaseTime.
	EventRecord PhaseRecord

	Aspects []Aspect
	Void    VoidOfCourse
	Next    NextEvent
}

// Engine runs the classifier, detector, resolver and forecaster in sequence.
// It holds no state between calls.
type Engine struct {
	Classifier Classifier
	Detector   Detector
	Resolver   *Resolver
	Forecaster Forecaster
}

// NewEngine wires every component on the same ephemeris.
func NewEngine(e ephemeris.Ephemeris, loc *time.Location) *Engine {
	return &Engine{
		Classifier: Classifier{Ephemeris: e},
		Detector:   Detector{Ephemeris: e},
		Resolver:   NewResolver(e),
		Forecaster: Forecaster{Ephemeris: e, Location: loc},
	}
}

// Day computes the record for ref.
func (en *Engine) Day(ref ephemeris.Moment) (Day, error) {
	d := Day{Reference: ref}
	var err error

	if d.Record, err = en.Classifier.At(ref); err != nil {
		return Day{}, fmt.Errorf("phase: %w", err)
	}
	if d.PhaseKind, d.PhaseTime, err = PhaseEvent(en.Classifier.Ephemeris, d.Record, ref); err != nil {
		return Day{}, fmt.Errorf("phase time: %w", err)
	}
	if d.EventRecord, err = en.Classifier.At(d.PhaseTime); err != nil {
		return Day{}, fmt.Errorf("phase time: %w", err)
	}
	if d.Aspects, err = en.Detector.At(ref); err != nil {
		return Day{}, fmt.Errorf("aspects: %w", err)
	}
	if d.Void, err = en.Resolver.Resolve(ref); err != nil {
		return Day{}, fmt.Errorf("void of course: %w", err)
	}
	if d.Next, err = en.Forecaster.Next(ref); err != nil {
		return Day{}, fmt.Errorf("next event: %w", err)
	}
	return d, nil
}
