package advice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/tartampluch/go-lunar/internal/config"
	"github.com/tartampluch/go-lunar/internal/lunar"
)

// ErrMalformedResponse is returned when a period answer holds no JSON object.
var ErrMalformedResponse = errors.New("malformed period response")

// Period is a run of consecutive days sharing one phase.
type Period struct {
	ID    int
	Phase lunar.Phase

	// Name, Span and Signs are already localized.
	Name  string
	Span  string
	Signs []string
}

// PeriodRequest asks for one description per period of a month.
type PeriodRequest struct {
	Month time.Time

	// Title names the month ("февраль 2024"); MonthIn is the month in the
	// form used after a preposition ("феврале").
	Title   string
	MonthIn string
	Periods []Period
}

// Descriptions maps period IDs to their text.
type Descriptions struct {
	Text map[int]string

	// Degraded counts periods the table filled in after a service failure.
	Degraded int
}

// JSONGenerator is implemented by backends that can constrain the answer to
// the period schema.
type JSONGenerator interface {
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}

// Describe implements Provider from the per-phase period texts.
func (f *Fallback) Describe(_ context.Context, req PeriodRequest) Descriptions {
	out := Descriptions{Text: make(map[int]string, len(req.Periods))}
	for _, p := range req.Periods {
		text, ok := f.Periods[p.Phase]
		if !ok {
			text = f.Periods[f.Default]
		}
		if text == "" {
			continue
		}
		out.Text[p.ID] = fmt.Sprintf(text, req.MonthIn)
	}
	return out
}

// Describe implements Provider. Periods the first answer misses are asked for
// again, up to config.PeriodRetries times; the rest come from the table.
func (g *Generated) Describe(ctx context.Context, req PeriodRequest) Descriptions {
	out := Descriptions{Text: make(map[int]string, len(req.Periods))}
	month := req.Month.Format(config.DateFormatMonth)

	missing := req.Periods
	prompt := g.prompts.PeriodPrompt(req.Title, periodList(missing))
	for round := 0; len(missing) > 0 && round <= config.PeriodRetries; round++ {
		if round > 0 {
			prompt = g.prompts.PeriodRetryPrompt(periodList(missing))
		}
		got, err := g.describe(ctx, prompt)
		if err != nil {
			slog.Warn(config.MsgPeriodFailed,
				config.LogKeyComponent, config.CompAdvice,
				config.LogKeyMonth, month,
				config.LogKeyError, err,
			)
			break
		}
		missing = slices.DeleteFunc(slices.Clone(missing), func(p Period) bool {
			text := strings.TrimSpace(got[p.ID])
			if text == "" {
				return false
			}
			out.Text[p.ID] = text
			return true
		})
	}

	if len(missing) == 0 {
		return out
	}
	slog.Warn(config.MsgPeriodFallback,
		config.LogKeyComponent, config.CompAdvice,
		config.LogKeyMonth, month,
		config.LogKeyGot, len(req.Periods)-len(missing),
		config.LogKeyWant, len(req.Periods),
	)
	rest := req
	rest.Periods = missing
	for id, text := range g.fallback.Describe(ctx, rest).Text {
		out.Text[id] = text
	}
	out.Degraded = len(missing)
	return out
}

func (g *Generated) describe(ctx context.Context, prompt string) (map[int]string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	res, err := g.breaker.Execute(func() (interface{}, error) {
		var (
			text string
			err  error
		)
		if jg, ok := g.gen.(JSONGenerator); ok {
			text, err = jg.GenerateJSON(ctx, prompt)
		} else {
			text, err = g.gen.Generate(ctx, prompt)
		}
		if err != nil {
			return nil, err
		}
		return ParseSegments(text)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrAdviceClient, err)
	}
	return res.(map[int]string), nil
}

type segments struct {
	Segments []struct {
		ID   int    `json:"id"`
		Desc string `json:"desc"`
	} `json:"segments"`
}

var jsonObject = regexp.MustCompile(`(?s)\{.*\}`)

// ParseSegments reads a {"segments":[{"id":1,"desc":"..."}]} answer. Text
// around the object is ignored. Entries without an ID or text are dropped.
func ParseSegments(text string) (map[int]string, error) {
	var s segments
	if err := json.Unmarshal([]byte(text), &s); err != nil {
		raw := jsonObject.FindString(text)
		if raw == "" {
			return nil, ErrMalformedResponse
		}
		if err := json.Unmarshal([]byte(raw), &s); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
		}
	}

	out := make(map[int]string, len(s.Segments))
	for _, seg := range s.Segments {
		if desc := strings.TrimSpace(seg.Desc); seg.ID > 0 && desc != "" {
			out[seg.ID] = desc
		}
	}
	if len(out) == 0 {
		return nil, ErrEmptyResponse
	}
	return out, nil
}

// periodList renders one compact JSON line per period for the prompt.
func periodList(periods []Period) string {
	var b strings.Builder
	for i, p := range periods {
		if i > 0 {
			b.WriteByte('\n')
		}
		line, _ := json.Marshal(struct {
			ID    int    `json:"id"`
			Span  string `json:"span"`
			Phase string `json:"phase"`
			Signs string `json:"signs"`
		}{p.ID, p.Span, p.Name, strings.Join(p.Signs, ", ")})
		b.WriteString("- ")
		b.Write(line)
	}
	return b.String()
}
