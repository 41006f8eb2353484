package lunar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-lunar/internal/ephemeris"
	"github.com/tartampluch/go-lunar/internal/lunar"
)

// The moon moves half a degree per hour in these models.
const moonRate = 12

func TestResolver_StartsAfterAspectFormingLater(t *testing.T) {
	// Moon at 10, everything else at 200: the opposition is in orb between
	// 15 and 25 degrees, then the moon enters Taurus at 30.
	r := lunar.NewResolver(stationaryModel(200, 10, moonRate))

	v, err := r.Resolve(ephemeris.J2000)
	require.NoError(t, err)
	assert.WithinDuration(t, ephemeris.J2000.Add(30*time.Hour).Time(), v.Start.Time(), 2*time.Minute)
	assert.WithinDuration(t, ephemeris.J2000.Add(40*time.Hour).Time(), v.End.Time(), 2*time.Minute)
	assert.Equal(t, lunar.Taurus, v.Ingress)
}

func TestResolver_StartsAtReferenceWhenAlreadyVoid(t *testing.T) {
	// Moon from 10 to 30 against bodies at 160: separation 150 to 130, no aspect.
	r := lunar.NewResolver(stationaryModel(160, 10, moonRate))

	v, err := r.Resolve(ephemeris.J2000)
	require.NoError(t, err)
	assert.Equal(t, ephemeris.J2000, v.Start)
	assert.WithinDuration(t, ephemeris.J2000.Add(40*time.Hour).Time(), v.End.Time(), 2*time.Minute)
}

func TestResolver_WaitsForLastAspectToSeparate(t *testing.T) {
	// Moon at 16 opposes every body at 200 until it reaches 25.
	r := lunar.NewResolver(stationaryModel(200, 16, moonRate))

	v, err := r.Resolve(ephemeris.J2000)
	require.NoError(t, err)
	assert.WithinDuration(t, ephemeris.J2000.Add(18*time.Hour).Time(), v.Start.Time(), 2*time.Minute)
	assert.WithinDuration(t, ephemeris.J2000.Add(28*time.Hour).Time(), v.End.Time(), 2*time.Minute)
	assert.InDelta(t, (10 * time.Hour).Minutes(), v.Duration().Minutes(), 3)
}

func TestResolver_AspectThroughIngressIsEmpty(t *testing.T) {
	// Moon at 26 opposes bodies at 210 until 35, past the ingress at 30.
	r := lunar.NewResolver(stationaryModel(210, 26, moonRate))

	v, err := r.Resolve(ephemeris.J2000)
	require.NoError(t, err)
	assert.Equal(t, v.End, v.Start)
	assert.WithinDuration(t, ephemeris.J2000.Add(8*time.Hour).Time(), v.End.Time(), 2*time.Minute)
	assert.Equal(t, lunar.Taurus, v.Ingress)
}

func TestResolver_HorizonExceeded(t *testing.T) {
	r := lunar.NewResolver(stationaryModel(200, 16, moonRate))
	r.Horizon = 6 * time.Hour

	_, err := r.Resolve(ephemeris.J2000)
	assert.ErrorIs(t, err, lunar.ErrVoidNotFound)
}

func TestResolver_EphemerisErrorPropagates(t *testing.T) {
	t.Run("moon", func(t *testing.T) {
		r := lunar.NewResolver(stubEphemeris{lon: map[ephemeris.Body]float64{ephemeris.Sun: 0}})

		_, err := r.Resolve(ephemeris.J2000)
		assert.ErrorIs(t, err, ephemeris.ErrUnknownBody)
	})

	t.Run("aspect body", func(t *testing.T) {
		e := stationaryModel(200, 10, moonRate)
		delete(e.Elements, ephemeris.Mars)
		r := lunar.NewResolver(e)

		_, err := r.Resolve(ephemeris.J2000)
		assert.ErrorIs(t, err, ephemeris.ErrUnknownBody)
	})
}

func TestResolver_WindowsAreAspectFree(t *testing.T) {
	e := ephemeris.NewMeanMotion()
	r := lunar.NewResolver(e)
	start := ephemeris.MomentOf(time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC))

	for day := 0; day < 120; day++ {
		ref := start.Add(time.Duration(day) * 24 * time.Hour)
		v, err := r.Resolve(ref)
		require.NoError(t, err, "day %d", day)
		require.False(t, v.Start.Before(ref), "day %d", day)
		require.False(t, v.End.Before(v.Start), "day %d", day)

		for m := v.Start; m.Before(v.End); m = m.Add(10 * time.Minute) {
			aspects, err := r.Detector.At(m)
			require.NoError(t, err)
			require.Empty(t, aspects, "day %d at %s", day, m.Time())
		}

		// Unless the window is clamped to the reference, an aspect was in
		// orb just before it opened.
		if v.Start.After(ref) {
			aspects, err := r.Detector.At(v.Start.Add(-2 * time.Minute))
			require.NoError(t, err)
			assert.NotEmpty(t, aspects, "day %d", day)
		}
	}
}
