package ephemeris

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-lunar/internal/config"
)

// The sun and moon series need no data files and can be checked directly.
func TestSunMoonSeries_NewMoon(t *testing.T) {
	// New moon of 2024-01-11 11:57 UTC.
	m := MomentOf(time.Date(2024, 1, 11, 11, 57, 0, 0, time.UTC))
	sep := Separation(sunLongitude(float64(m)), moonLongitude(float64(m)))
	assert.Less(t, sep, 0.5)
}

func TestSunMoonSeries_SunNearEquinox(t *testing.T) {
	// March equinox 2024-03-20 03:06 UTC: the sun crosses 0 degrees.
	m := MomentOf(time.Date(2024, 3, 20, 3, 6, 0, 0, time.UTC))
	assert.Less(t, Separation(sunLongitude(float64(m)), 0), 0.05)
}

func TestNextInSeries(t *testing.T) {
	ref := MomentOf(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	newMoon, err := nextInSeries(phaseSeries[NewMoon], ref)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Date(2024, 1, 11, 11, 57, 0, 0, time.UTC), newMoon.Time(), 10*time.Minute)

	full, err := nextInSeries(phaseSeries[FullMoon], ref)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Date(2024, 1, 25, 17, 54, 0, 0, time.UTC), full.Time(), 10*time.Minute)

	// Exclusive boundary: starting at the event yields the February new moon.
	next, err := nextInSeries(phaseSeries[NewMoon], newMoon)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Date(2024, 2, 9, 22, 59, 0, 0, time.UTC), next.Time(), 10*time.Minute)
}

// TestVSOP87_Planets runs only when VSOP87B files are available.
func TestVSOP87_Planets(t *testing.T) {
	dir := os.Getenv(config.EnvVSOP87)
	if dir == "" {
		t.Skip("VSOP87 not set")
	}
	e, err := LoadVSOP87(dir)
	require.NoError(t, err)

	m := MomentOf(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	for _, b := range Bodies {
		lon, err := e.Longitude(m, b)
		require.NoError(t, err, b.String())
		assert.GreaterOrEqual(t, lon, 0.0)
		assert.Less(t, lon, 360.0)
	}

	// Mercury never strays more than 28 degrees from the sun.
	sun, _ := e.Longitude(m, Sun)
	mercury, _ := e.Longitude(m, Mercury)
	assert.LessOrEqual(t, Separation(sun, mercury), 28.5)

	_, err = e.Longitude(m, Body(99))
	assert.ErrorIs(t, err, ErrUnknownBody)
}
