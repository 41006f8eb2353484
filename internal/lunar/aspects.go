package lunar

import (
	"math"

	"github.com/tartampluch/go-lunar/internal/ephemeris"
)

// AspectKind is a recognized angle with its orb.
type AspectKind struct {
	Name   string
	Symbol string
	Angle  float64
	Orb    float64
}

// AspectKinds is the recognized aspect table.
var AspectKinds = []AspectKind{
	{Name: "conjunction", Symbol: "☌", Angle: 0, Orb: 5},
	{Name: "sextile", Symbol: "⚹", Angle: 60, Orb: 4},
	{Name: "square", Symbol: "□", Angle: 90, Orb: 3},
	{Name: "trine", Symbol: "△", Angle: 120, Orb: 4},
	{Name: "opposition", Symbol: "☍", Angle: 180, Orb: 5},
}

// Aspect is one active relationship between the moon and a body.
// Deviation is the signed distance from the exact angle, in degrees.
type Aspect struct {
	Kind      AspectKind
	Body      ephemeris.Body
	Deviation float64
}

// DetectAspects lists the aspects the moon forms given every body's longitude.
// Results follow the body order of ephemeris.AspectBodies, then the kind
// order; every matching kind is kept even if orbs were to overlap.
// The orb boundary is inclusive.
func DetectAspects(positions map[ephemeris.Body]float64, kinds []AspectKind) []Aspect {
	moon, ok := positions[ephemeris.Moon]
	if !ok {
		return nil
	}
	var out []Aspect
	for _, b := range ephemeris.AspectBodies {
		lon, ok := positions[b]
		if !ok {
			continue
		}
		diff := ephemeris.Separation(moon, lon)
		for _, k := range kinds {
			if dev := diff - k.Angle; math.Abs(dev) <= k.Orb {
				out = append(out, Aspect{Kind: k, Body: b, Deviation: dev})
			}
		}
	}
	return out
}

// Detector evaluates aspects against an ephemeris.
type Detector struct {
	Ephemeris ephemeris.Ephemeris

	// Kinds defaults to AspectKinds.
	Kinds []AspectKind
}

// At returns the aspects active at m.
func (d Detector) At(m ephemeris.Moment) ([]Aspect, error) {
	pos, err := ephemeris.Positions(d.Ephemeris, m)
	if err != nil {
		return nil, err
	}
	kinds := d.Kinds
	if kinds == nil {
		kinds = AspectKinds
	}
	return DetectAspects(pos, kinds), nil
}
