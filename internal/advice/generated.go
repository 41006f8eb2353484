package advice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"github.com/tartampluch/go-lunar/internal/config"
	"github.com/tartampluch/go-lunar/internal/lunar"
)

// ErrEmptyResponse is returned when the service answers with no usable line.
var ErrEmptyResponse = errors.New("empty advisory response")

// TextGenerator is a text-generation backend.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Prompter renders the request texts sent to the generator.
type Prompter interface {
	AdvicePrompt(date string, rec lunar.PhaseRecord) string
	PeriodPrompt(month, periods string) string
	PeriodRetryPrompt(periods string) string
}

// Generated asks a TextGenerator for advice and falls back to a table when
// the service fails, answers short, or the breaker is open.
type Generated struct {
	gen      TextGenerator
	prompts  Prompter
	fallback *Fallback
	breaker  *gobreaker.CircuitBreaker
	timeout  time.Duration
}

// NewGenerated wraps gen in a circuit breaker. A timeout of zero disables the
// per-request deadline.
func NewGenerated(gen TextGenerator, prompts Prompter, fallback *Fallback, timeout time.Duration) *Generated {
	st := gobreaker.Settings{
		Name:        "advice",
		MaxRequests: 1,
		Timeout:     config.BreakerOpenPeriod,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= config.BreakerMaxFailure
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn(config.MsgBreakerState,
				config.LogKeyComponent, config.CompAdvice,
				config.LogKeyFrom, from.String(),
				config.LogKeyTo, to.String(),
			)
		},
	}
	return &Generated{
		gen:      gen,
		prompts:  prompts,
		fallback: fallback,
		breaker:  gobreaker.NewCircuitBreaker(st),
		timeout:  timeout,
	}
}

// Name implements Provider.
func (g *Generated) Name() string { return "generated" }

// Advise implements Provider.
func (g *Generated) Advise(ctx context.Context, req Request) Advice {
	date := req.Date.Format(config.DateFormatKey)
	lines, err := g.generate(ctx, g.prompts.AdvicePrompt(date, req.Record))
	if err != nil {
		slog.Warn(config.MsgAdviceFallback,
			config.LogKeyComponent, config.CompAdvice,
			config.LogKeyDate, date,
			config.LogKeyError, err,
		)
		out := g.fallback.Advise(ctx, req)
		out.Degraded = true
		return out
	}

	want := g.fallback.Count
	if len(lines) >= want {
		return Advice{Lines: lines[:want]}
	}

	slog.Warn(config.MsgAdviceShort,
		config.LogKeyComponent, config.CompAdvice,
		config.LogKeyDate, date,
		config.LogKeyGot, len(lines),
		config.LogKeyWant, want,
	)
	lines = append(lines, g.fallback.pick(req, lines, want-len(lines))...)
	return Advice{Lines: lines, Degraded: true}
}

func (g *Generated) generate(ctx context.Context, prompt string) ([]string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	res, err := g.breaker.Execute(func() (interface{}, error) {
		text, err := g.gen.Generate(ctx, prompt)
		if err != nil {
			return nil, err
		}
		lines := ParseLines(text, g.fallback.Count)
		if len(lines) == 0 {
			return nil, ErrEmptyResponse
		}
		return lines, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrAdviceClient, err)
	}
	return res.([]string), nil
}

var numbering = regexp.MustCompile(`^\s*(?:\d+[.)]|[` + regexp.QuoteMeta(config.AdviceBulletChars) + `])\s*`)

// ParseLines keeps the first n non-empty lines of text with list numbering
// and bullets removed.
func ParseLines(text string, n int) []string {
	var out []string
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(numbering.ReplaceAllString(strings.TrimSpace(raw), ""))
		if line == "" {
			continue
		}
		out = append(out, line)
		if len(out) == n {
			break
		}
	}
	return out
}
