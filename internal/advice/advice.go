// Package advice produces the three short advisory lines carried by each
// almanac day, either from a text-generation service or from built-in tables.
package advice

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/tartampluch/go-lunar/internal/config"
	"github.com/tartampluch/go-lunar/internal/lunar"
)

// Request describes the day advice is asked for.
type Request struct {
	// Date is the civil date in the almanac location.
	Date   time.Time
	Record lunar.PhaseRecord
}

// Advice is the provider's answer.
type Advice struct {
	Lines []string

	// Degraded is set when generated text was unavailable or too short and
	// the table filled in.
	Degraded bool
}

// Provider is implemented by every advisory source.
// Advise and Describe never fail: a provider that cannot answer falls back
// internally.
type Provider interface {
	Advise(ctx context.Context, req Request) Advice
	Describe(ctx context.Context, req PeriodRequest) Descriptions
	Name() string
}

// Fallback selects advice from a per-phase table.
type Fallback struct {
	Table Table

	// Periods holds one description per phase; "%s" receives the month.
	Periods PeriodTable

	// Default is used for phases missing from Table or Periods.
	Default lunar.Phase
	Count   int
}

// NewFallback returns the table provider for lang.
func NewFallback(lang string) *Fallback {
	return &Fallback{
		Table:   TableFor(lang),
		Periods: PeriodTableFor(lang),
		Default: lunar.NewMoon,
		Count:   config.AdviceCount,
	}
}

// Name implements Provider.
func (f *Fallback) Name() string { return "fallback" }

// Advise implements Provider. The selection is seeded by the date, so a
// rerun for the same month yields the same advice.
func (f *Fallback) Advise(_ context.Context, req Request) Advice {
	return Advice{Lines: f.pick(req, nil, f.Count)}
}

// pick draws up to n distinct entries not present in exclude.
func (f *Fallback) pick(req Request, exclude []string, n int) []string {
	entries, ok := f.Table[req.Record.Phase]
	if !ok || len(entries) == 0 {
		entries = f.Table[f.Default]
	}

	pool := make([]string, 0, len(entries))
	for _, e := range entries {
		if !slices.Contains(exclude, e) && !slices.Contains(pool, e) {
			pool = append(pool, e)
		}
	}
	if len(pool) < n {
		slog.Warn(config.MsgTableSmall,
			config.LogKeyComponent, config.CompAdvice,
			config.LogKeyPhase, req.Record.Phase.Key(),
			config.LogKeyGot, len(pool),
			config.LogKeyWant, n,
		)
		n = len(pool)
	}

	y, m, d := req.Date.Date()
	seed := uint64(y)*10000 + uint64(m)*100 + uint64(d)
	r := rand.New(rand.NewPCG(seed, uint64(req.Record.Phase)))
	r.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	return pool[:n]
}
