package lunar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-lunar/internal/ephemeris"
	"github.com/tartampluch/go-lunar/internal/lunar"
)

// quietPositions puts every body 30 degrees from the moon, where no aspect applies.
func quietPositions(moon float64) map[ephemeris.Body]float64 {
	pos := map[ephemeris.Body]float64{ephemeris.Moon: moon}
	for _, b := range ephemeris.AspectBodies {
		pos[b] = ephemeris.Normalize(moon + 30)
	}
	return pos
}

func TestDetectAspects_NoneWhenQuiet(t *testing.T) {
	assert.Empty(t, lunar.DetectAspects(quietPositions(123), lunar.AspectKinds))
}

func TestDetectAspects_OrbBoundaryInclusive(t *testing.T) {
	tests := []struct {
		name    string
		moon    float64
		kind    string
		dev     float64
		matches bool
	}{
		{"sextile at +orb", 64, "sextile", 4, true},
		{"sextile at -orb", 56, "sextile", -4, true},
		{"sextile outside", 64.5, "", 0, false},
		{"square at +orb", 93, "square", 3, true},
		{"square at -orb", 87, "square", -3, true},
		{"trine at +orb", 124, "trine", 4, true},
		{"conjunction at orb", 5, "conjunction", 5, true},
		{"opposition at -orb", 175, "opposition", -5, true},
		{"opposition outside", 174.5, "", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := quietPositions(tt.moon)
			pos[ephemeris.Mars] = 0

			got := lunar.DetectAspects(pos, lunar.AspectKinds)
			if !tt.matches {
				assert.Empty(t, got)
				return
			}
			require.Len(t, got, 1)
			assert.Equal(t, ephemeris.Mars, got[0].Body)
			assert.Equal(t, tt.kind, got[0].Kind.Name)
			assert.InDelta(t, tt.dev, got[0].Deviation, 1e-9)
		})
	}
}

func TestDetectAspects_WrapAround(t *testing.T) {
	pos := quietPositions(2)
	pos[ephemeris.Venus] = 358

	got := lunar.DetectAspects(pos, lunar.AspectKinds)
	require.Len(t, got, 1)
	assert.Equal(t, "conjunction", got[0].Kind.Name)
	assert.InDelta(t, 4, got[0].Deviation, 1e-9)
}

func TestDetectAspects_BodyOrder(t *testing.T) {
	pos := quietPositions(100)
	pos[ephemeris.Saturn] = 101 // conjunction, deviation 1
	pos[ephemeris.Sun] = 283    // opposition, deviation -3

	got := lunar.DetectAspects(pos, lunar.AspectKinds)
	require.Len(t, got, 2)
	assert.Equal(t, ephemeris.Sun, got[0].Body, "order follows bodies, not deviation")
	assert.Equal(t, ephemeris.Saturn, got[1].Body)
}

func TestDetectAspects_RecordsEveryMatchingKind(t *testing.T) {
	wide := []lunar.AspectKind{
		{Name: "a", Symbol: "A", Angle: 80, Orb: 15},
		{Name: "b", Symbol: "B", Angle: 90, Orb: 15},
	}
	pos := quietPositions(0)
	pos[ephemeris.Jupiter] = 85

	got := lunar.DetectAspects(pos, wide)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Kind.Name)
	assert.Equal(t, "b", got[1].Kind.Name)
}

func TestDetector_At(t *testing.T) {
	e := stationaryModel(200, 16, 12)
	got, err := lunar.Detector{Ephemeris: e}.At(ephemeris.J2000)
	require.NoError(t, err)

	// Every non-lunar body sits at 200: an opposition each (moon at 16).
	require.Len(t, got, len(ephemeris.AspectBodies))
	for i, a := range got {
		assert.Equal(t, ephemeris.AspectBodies[i], a.Body)
		assert.Equal(t, "opposition", a.Kind.Name)
		assert.InDelta(t, -4, a.Deviation, 1e-9)
	}
}
