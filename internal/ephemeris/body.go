package ephemeris

import "fmt"

// Body identifies a tracked celestial body.
type Body int

const (
	Sun Body = iota
	Moon
	Mercury
	Venus
	Mars
	Jupiter
	Saturn
	Uranus
	Neptune
	Pluto
)

// Bodies lists every tracked body in iteration order.
var Bodies = []Body{Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn, Uranus, Neptune, Pluto}

// AspectBodies lists the non-lunar bodies in the order aspects are reported.
var AspectBodies = []Body{Sun, Mercury, Venus, Mars, Jupiter, Saturn, Uranus, Neptune, Pluto}

var bodyNames = [...]string{"sun", "moon", "mercury", "venus", "mars", "jupiter", "saturn", "uranus", "neptune", "pluto"}

// Valid reports whether b is one of the tracked bodies.
func (b Body) Valid() bool {
	return b >= Sun && b <= Pluto
}

// String returns the lowercase identifier used in locale keys.
func (b Body) String() string {
	if !b.Valid() {
		return fmt.Sprintf("body(%d)", int(b))
	}
	return bodyNames[b]
}

// PhaseKind is one of the four primary lunar phases.
type PhaseKind int

const (
	NewMoon PhaseKind = iota
	FirstQuarter
	FullMoon
	LastQuarter
)

// PhaseKinds lists the primary phases in cycle order.
var PhaseKinds = []PhaseKind{NewMoon, FirstQuarter, FullMoon, LastQuarter}

// Angle returns the sun-moon elongation at which the phase is exact.
func (k PhaseKind) Angle() float64 {
	return float64(k) * 90
}

func (k PhaseKind) String() string {
	switch k {
	case NewMoon:
		return "new"
	case FirstQuarter:
		return "first_quarter"
	case FullMoon:
		return "full"
	case LastQuarter:
		return "last_quarter"
	default:
		return fmt.Sprintf("phase(%d)", int(k))
	}
}

// KindNearest returns the primary phase whose exact angle is closest to the elongation.
func KindNearest(elongation float64) PhaseKind {
	q := int(Normalize(elongation)/90+0.5) % len(PhaseKinds)
	return PhaseKinds[q]
}
