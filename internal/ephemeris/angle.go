package ephemeris

import "math"

// Normalize maps any angle in degrees to [0,360).
func Normalize(deg float64) float64 {
	r := math.Mod(deg, 360)
	if r < 0 {
		r += 360
	}
	// math.Mod can return 360 after the addition for tiny negative inputs.
	if r >= 360 {
		r -= 360
	}
	return r
}

// Separation returns the unsigned angular distance between two longitudes, in [0,180].
func Separation(a, b float64) float64 {
	return math.Abs(Normalize(a-b+180) - 180)
}

// Elongation returns the moon-minus-sun angle in [0,360).
func Elongation(sun, moon float64) float64 {
	return Normalize(moon - sun)
}
