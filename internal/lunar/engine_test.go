package lunar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-lunar/internal/ephemeris"
	"github.com/tartampluch/go-lunar/internal/lunar"
)

func TestEngine_Day(t *testing.T) {
	// Moon at 10, sun and planets at 200: a waxing moon 10 degrees short of full.
	en := lunar.NewEngine(stationaryModel(200, 10, moonRate), time.UTC)
	ref := ephemeris.J2000

	d, err := en.Day(ref)
	require.NoError(t, err)

	assert.Equal(t, ref, d.Reference)
	assert.Equal(t, lunar.FullMoon, d.Record.Phase)
	assert.Equal(t, 99, d.Record.Illumination)
	assert.Equal(t, lunar.Aries, d.Record.Sign)
	assert.Empty(t, d.Aspects)

	assert.Equal(t, ephemeris.FullMoon, d.PhaseKind)
	assert.WithinDuration(t, ref.Add(20*time.Hour).Time(), d.PhaseTime.Time(), time.Second)
	assert.Equal(t, lunar.FullMoon, d.EventRecord.Phase)
	assert.Equal(t, 100, d.EventRecord.Illumination)

	// The opposition between 15 and 25 degrees comes first.
	assert.WithinDuration(t, ref.Add(30*time.Hour).Time(), d.Void.Start.Time(), 2*time.Minute)
	assert.WithinDuration(t, ref.Add(40*time.Hour).Time(), d.Void.End.Time(), 2*time.Minute)

	assert.Equal(t, ephemeris.FullMoon, d.Next.Kind)
	assert.Equal(t, 1, d.Next.Days)
	assert.Equal(t, lunar.Aries, d.Next.Record.Sign)
}

func TestEngine_DayWrapsErrors(t *testing.T) {
	en := lunar.NewEngine(stubEphemeris{}, time.UTC)

	_, err := en.Day(ephemeris.J2000)
	require.Error(t, err)
	assert.ErrorIs(t, err, ephemeris.ErrUnknownBody)
	assert.Contains(t, err.Error(), "phase")
}
