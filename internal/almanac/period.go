package almanac

import (
	"context"
	"fmt"
	"time"

	"github.com/tartampluch/go-lunar/internal/advice"
	"github.com/tartampluch/go-lunar/internal/lunar"
)

// PhaseGroup is a run of consecutive days of a month sharing one phase.
// First and Last index Month.Days.
type PhaseGroup struct {
	ID    int
	Phase lunar.Phase
	First int
	Last  int

	// Signs the moon visits during the run, in zodiac order.
	Signs []lunar.Sign
}

// PhaseGroups splits the month into phase runs. IDs start at 1.
func (m *Month) PhaseGroups() []PhaseGroup {
	var groups []PhaseGroup
	for i := 0; i < len(m.Days); {
		phase := m.Days[i].Astro.Record.Phase
		j := i
		for j+1 < len(m.Days) && m.Days[j+1].Astro.Record.Phase == phase {
			j++
		}

		seen := make(map[lunar.Sign]bool)
		for _, d := range m.Days[i : j+1] {
			seen[d.Astro.Record.Sign] = true
		}
		var signs []lunar.Sign
		for _, s := range lunar.Signs {
			if seen[s] {
				signs = append(signs, s)
			}
		}

		groups = append(groups, PhaseGroup{ID: len(groups) + 1, Phase: phase, First: i, Last: j, Signs: signs})
		i = j + 1
	}
	return groups
}

// describe fills every entry's LongDesc with the description of its phase run.
func (g *Generator) describe(ctx context.Context, m *Month) {
	groups := m.PhaseGroups()
	if len(groups) == 0 {
		return
	}

	tr := g.Translator
	req := advice.PeriodRequest{
		Month:   time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, m.Location),
		Title:   fmt.Sprintf("%s %d", tr.Month(m.Month), m.Year),
		MonthIn: tr.MonthIn(m.Month),
	}
	for _, gr := range groups {
		signs := make([]string, 0, len(gr.Signs))
		for _, s := range gr.Signs {
			signs = append(signs, tr.Sign(s))
		}
		req.Periods = append(req.Periods, advice.Period{
			ID:    gr.ID,
			Phase: gr.Phase,
			Name:  tr.Phase(gr.Phase),
			Span:  tr.Span(m.Days[gr.First].Date, m.Days[gr.Last].Date),
			Signs: signs,
		})
	}

	d := g.Advisor.Describe(ctx, req)
	for _, gr := range groups {
		for i := gr.First; i <= gr.Last; i++ {
			m.Days[i].Entry.LongDesc = d.Text[gr.ID]
		}
	}
	m.DegradedPeriods = d.Degraded
	for range d.Degraded {
		g.Metrics.AdviceFallback()
	}
}
