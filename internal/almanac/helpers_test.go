package almanac_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-lunar/internal/advice"
	"github.com/tartampluch/go-lunar/internal/almanac"
	"github.com/tartampluch/go-lunar/internal/ephemeris"
	"github.com/tartampluch/go-lunar/internal/locale"
	"github.com/tartampluch/go-lunar/internal/lunar"
	"github.com/tartampluch/go-lunar/internal/metrics"
)

// -----------------------------------------------------------------------------
// Mocks
// -----------------------------------------------------------------------------

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

var errBroken = errors.New("ephemeris offline")

// brokenEphemeris fails every query.
type brokenEphemeris struct{}

func (brokenEphemeris) Longitude(ephemeris.Moment, ephemeris.Body) (float64, error) {
	return 0, errBroken
}

func (brokenEphemeris) NextOccurrence(ephemeris.PhaseKind, ephemeris.Moment) (ephemeris.Moment, error) {
	return 0, errBroken
}

// degradedProvider always answers from a fixed list and reports degradation.
type degradedProvider struct{}

func (degradedProvider) Name() string { return "degraded" }

func (degradedProvider) Advise(context.Context, advice.Request) advice.Advice {
	return advice.Advice{Lines: []string{"a", "b", "c"}, Degraded: true}
}

// Describe names each period after its span and reports every one degraded.
func (degradedProvider) Describe(_ context.Context, req advice.PeriodRequest) advice.Descriptions {
	out := advice.Descriptions{Text: make(map[int]string, len(req.Periods)), Degraded: len(req.Periods)}
	for _, p := range req.Periods {
		out.Text[p.ID] = p.Name + " " + p.Span
	}
	return out
}

// -----------------------------------------------------------------------------
// Fixtures
// -----------------------------------------------------------------------------

// testLocation is a fixed UTC+2 zone so tests do not depend on tzdata.
var testLocation = time.FixedZone("EET", 2*3600)

func newTranslator(t *testing.T) *locale.Translator {
	t.Helper()
	tr, err := locale.New("ru")
	require.NoError(t, err)
	return tr
}

func newGenerator(t *testing.T, e ephemeris.Ephemeris) *almanac.Generator {
	t.Helper()
	return &almanac.Generator{
		Clock:         MockClock{CurrentTime: time.Date(2024, 2, 10, 9, 0, 0, 0, time.UTC)},
		Engine:        lunar.NewEngine(e, testLocation),
		Advisor:       advice.NewFallback("ru"),
		Translator:    newTranslator(t),
		Tables:        almanac.Tables{},
		Location:      testLocation,
		ReferenceHour: 12,
		Metrics:       metrics.New(),
	}
}

// buildFebruary computes February 2024 on the mean-motion model.
func buildFebruary(t *testing.T) (*almanac.Generator, *almanac.Month) {
	t.Helper()
	g := newGenerator(t, ephemeris.NewMeanMotion())
	m, err := g.Build(context.Background(), 2024, time.February)
	require.NoError(t, err)
	return g, m
}
