package lunar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-lunar/internal/ephemeris"
	"github.com/tartampluch/go-lunar/internal/lunar"
)

func TestIllumination_Range(t *testing.T) {
	for a := 0.0; a < 360; a += 0.25 {
		p := lunar.Illumination(a)
		assert.GreaterOrEqual(t, p, 0, "angle %v", a)
		assert.LessOrEqual(t, p, 100, "angle %v", a)
	}
	assert.Equal(t, 0, lunar.Illumination(0))
	assert.Equal(t, 100, lunar.Illumination(180))
	assert.Equal(t, 50, lunar.Illumination(90))
	assert.Equal(t, 50, lunar.Illumination(270))
}

func TestPhaseOf_Boundaries(t *testing.T) {
	tests := []struct {
		angle float64
		want  lunar.Phase
	}{
		{0, lunar.NewMoon},
		{22.4999, lunar.NewMoon},
		{22.5, lunar.WaxingCrescent},
		{67.4999, lunar.WaxingCrescent},
		{67.5, lunar.FirstQuarter},
		{90, lunar.FirstQuarter},
		{112.5, lunar.WaxingGibbous},
		{157.5, lunar.FullMoon},
		{180, lunar.FullMoon},
		{202.5, lunar.WaningGibbous},
		{247.5, lunar.LastQuarter},
		{292.5, lunar.WaningCrescent},
		{337.4999, lunar.WaningCrescent},
		{337.5, lunar.NewMoon},
		{359.9999, lunar.NewMoon},
		{360, lunar.NewMoon},
		{-10, lunar.NewMoon},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, lunar.PhaseOf(tt.angle), "angle %v", tt.angle)
	}
}

func TestPhaseOf_Partition(t *testing.T) {
	counts := make(map[lunar.Phase]int)
	for a := 0.0; a < 360; a += 0.5 {
		p := lunar.PhaseOf(a)
		require.Contains(t, lunar.Phases, p, "angle %v", a)
		counts[p]++
	}
	assert.Len(t, counts, len(lunar.Phases))
	for _, p := range lunar.Phases {
		// Each bin is 45 degrees wide: 90 samples at half-degree spacing.
		assert.Equal(t, 90, counts[p], p.String())
	}
}

func TestSignOf(t *testing.T) {
	assert.Equal(t, lunar.Aries, lunar.SignOf(15))
	assert.Equal(t, lunar.Pisces, lunar.SignOf(359))
	assert.Equal(t, lunar.Taurus, lunar.SignOf(30))
	assert.Equal(t, lunar.Aries, lunar.SignOf(360))

	seen := make(map[lunar.Sign]bool)
	for lon := 0.0; lon < 360; lon++ {
		s := lunar.SignOf(lon)
		assert.Equal(t, int(lon/30), int(s))
		seen[s] = true
	}
	assert.Len(t, seen, 12)
}

func TestClassify_Examples(t *testing.T) {
	rec := lunar.Classify(100, 100)
	assert.Equal(t, lunar.NewMoon, rec.Phase)
	assert.Equal(t, 0, rec.Illumination)
	assert.Equal(t, "New Moon", rec.Phase.String())

	rec = lunar.Classify(10, 190)
	assert.Equal(t, lunar.FullMoon, rec.Phase)
	assert.Equal(t, 100, rec.Illumination)
	assert.Equal(t, lunar.Libra, rec.Sign)

	rec = lunar.Classify(0, 90)
	assert.Equal(t, lunar.FirstQuarter, rec.Phase)
	assert.Equal(t, 50, rec.Illumination)
	assert.Equal(t, lunar.Cancer, rec.Sign)
}

func TestClassifier_At(t *testing.T) {
	e := ephemeris.NewMeanMotion()
	e.Elements[ephemeris.Sun] = ephemeris.Element{Epoch: 40, Rate: 1}
	e.Elements[ephemeris.Moon] = ephemeris.Element{Epoch: 40, Rate: 13}

	rec, err := lunar.Classifier{Ephemeris: e}.At(ephemeris.J2000)
	require.NoError(t, err)
	assert.Equal(t, lunar.NewMoon, rec.Phase)
	assert.Equal(t, lunar.Taurus, rec.Sign)
}

func TestPhaseAndSignKeys(t *testing.T) {
	assert.Equal(t, "new_moon", lunar.NewMoon.Key())
	assert.Equal(t, "waning_crescent", lunar.WaningCrescent.Key())
	assert.Equal(t, "", lunar.Phase(99).Key())
	assert.Equal(t, "pisces", lunar.Pisces.Key())
}

func TestGlyphs(t *testing.T) {
	assert.Equal(t, "🌕", lunar.FullMoon.Emoji())
	assert.Equal(t, "🌙", lunar.Phase(-1).Emoji())
	assert.Equal(t, "♓", lunar.Pisces.Symbol())
	assert.Equal(t, "", lunar.Sign(12).Symbol())
}
