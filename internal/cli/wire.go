package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tartampluch/go-lunar/internal/advice"
	"github.com/tartampluch/go-lunar/internal/almanac"
	"github.com/tartampluch/go-lunar/internal/config"
	"github.com/tartampluch/go-lunar/internal/credentials"
	"github.com/tartampluch/go-lunar/internal/ephemeris"
	"github.com/tartampluch/go-lunar/internal/locale"
	"github.com/tartampluch/go-lunar/internal/lunar"
	"github.com/tartampluch/go-lunar/internal/metrics"
)

// newGenerator wires the computation pipeline from settings. reg may be nil.
func newGenerator(ctx context.Context, s config.Settings, reg *metrics.Registry) (*almanac.Generator, error) {
	if err := s.ValidateEphemeris(); err != nil {
		return nil, err
	}
	eph, err := ephemeris.New(s.Ephemeris.Backend, s.Ephemeris.Path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrEphemLoad, err)
	}
	slog.Info(config.MsgEphemLoaded,
		config.LogKeyComponent, config.CompEphemeris,
		config.LogKeyBackend, s.Ephemeris.Backend,
		config.LogKeyPath, s.Ephemeris.Path,
	)

	tr, err := locale.New(s.Language)
	if err != nil {
		return nil, err
	}

	tables, err := almanac.LoadTables(s.FavorableFile)
	if err != nil {
		return nil, err
	}

	loc := s.TimeZone()
	provider := advice.NewProvider(ctx, advice.Options{
		APIKey:   credentials.Resolve(s.Gemini.APIKey),
		Model:    s.Gemini.Model,
		Timeout:  s.Gemini.Timeout,
		Language: s.Language,
		Prompts:  tr,
	})

	return &almanac.Generator{
		Clock:         almanac.RealClock{},
		Engine:        lunar.NewEngine(eph, loc),
		Advisor:       provider,
		Translator:    tr,
		Tables:        tables,
		Location:      loc,
		ReferenceHour: s.ReferenceHour,
		Metrics:       reg,
	}, nil
}
