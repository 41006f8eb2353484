// Package metrics exposes Prometheus collectors for almanac generation.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result labels for generation runs.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// Registry holds the collectors on a private prometheus registry.
// A nil *Registry is valid and records nothing.
type Registry struct {
	reg *prometheus.Registry

	Generations      *prometheus.CounterVec
	GenerationTime   prometheus.Histogram
	AdviceFallbacks  prometheus.Counter
	AlmanacDays      prometheus.Gauge
	LastGenerationTS prometheus.Gauge
}

// New creates the collectors and registers them with the Go runtime collectors.
func New() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),

		Generations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lunar_generations_total",
				Help: "Total number of almanac generation runs by result",
			},
			[]string{"result"},
		),

		GenerationTime: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "lunar_generation_duration_seconds",
				Help:    "Duration of a full month generation in seconds",
				Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
			},
		),

		AdviceFallbacks: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "lunar_advice_fallbacks_total",
				Help: "Days whose generated advice was replaced or padded from the built-in table",
			},
		),

		AlmanacDays: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "lunar_almanac_days",
				Help: "Number of days in the currently published almanac",
			},
		),

		LastGenerationTS: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "lunar_last_generation_timestamp_seconds",
				Help: "Unix time of the last successful generation",
			},
		),
	}

	r.reg.MustRegister(
		r.Generations,
		r.GenerationTime,
		r.AdviceFallbacks,
		r.AlmanacDays,
		r.LastGenerationTS,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// ObserveGeneration records one run.
func (r *Registry) ObserveGeneration(d time.Duration, days int, err error) {
	if r == nil {
		return
	}
	r.GenerationTime.Observe(d.Seconds())
	if err != nil {
		r.Generations.WithLabelValues(ResultError).Inc()
		return
	}
	r.Generations.WithLabelValues(ResultSuccess).Inc()
	r.AlmanacDays.Set(float64(days))
	r.LastGenerationTS.SetToCurrentTime()
}

// AdviceFallback records a degraded advisory answer.
func (r *Registry) AdviceFallback() {
	if r == nil {
		return
	}
	r.AdviceFallbacks.Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}
