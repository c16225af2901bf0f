package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Diet agrupa las métricas del motor de dietas.
// Implementa diet.Metrics.
type Diet struct {
	registry *prometheus.Registry

	draftAttempts *prometheus.CounterVec
	draftDuration *prometheus.HistogramVec
	assemblies    *prometheus.CounterVec
}

// New registra las métricas en un registry propio (evita colisiones entre tests).
func New() *Diet {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Diet{
		registry: reg,
		draftAttempts: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "diet_draft_attempts_total",
				Help: "LLM draft attempts by route variant, model and outcome",
			},
			[]string{"variant", "model", "outcome"},
		),
		draftDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "diet_draft_duration_seconds",
				Help:    "LLM draft latency by route variant",
				Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40},
			},
			[]string{"variant"},
		),
		assemblies: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "diet_proposals_assembled_total",
				Help: "Diet proposal assemblies by outcome",
			},
			[]string{"outcome"},
		),
	}
}

func (d *Diet) DraftAttempt(variant, model, outcome string, took time.Duration) {
	d.draftAttempts.WithLabelValues(variant, model, outcome).Inc()
	d.draftDuration.WithLabelValues(variant).Observe(took.Seconds())
}

func (d *Diet) Assembly(outcome string) {
	d.assemblies.WithLabelValues(outcome).Inc()
}

// Registry expone el registry (tests / collectors extra).
func (d *Diet) Registry() *prometheus.Registry {
	return d.registry
}

// Handler sirve /metrics para este registry.
func (d *Diet) Handler() http.Handler {
	return promhttp.HandlerFor(d.registry, promhttp.HandlerOpts{})
}
