package observability

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/dynoslide/pkg/domain"
)

// Metrics holds the generation collectors on a private registry.
type Metrics struct {
	Registry *prometheus.Registry

	carousels     *prometheus.CounterVec
	slides        *prometheus.CounterVec
	warnings      prometheus.Counter
	inFlight      prometheus.Gauge
	slideDuration prometheus.Histogram
	runDuration   prometheus.Histogram
}

// NewMetrics registers the collectors, plus the Go and process collectors,
// on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		carousels: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dynoslide_carousels_total",
			Help: "Finished carousel generations by outcome.",
		}, []string{"status"}),
		slides: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dynoslide_slides_total",
			Help: "Rendered slides by outcome.",
		}, []string{"status"}),
		warnings: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dynoslide_slide_warnings_total",
			Help: "Soft substitution failures recorded on slides.",
		}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dynoslide_generations_in_flight",
			Help: "Carousels currently generating.",
		}),
		slideDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "dynoslide_slide_duration_seconds",
			Help:    "Time to render one slide.",
			Buckets: prometheus.DefBuckets,
		}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "dynoslide_generation_duration_seconds",
			Help:    "Time to generate a whole carousel.",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		}),
	}
	m.Registry.MustRegister(
		m.carousels, m.slides, m.warnings, m.inFlight, m.slideDuration, m.runDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Hooks records the lifecycle events.
func (m *Metrics) Hooks() domain.GenerationHooks {
	return domain.GenerationHooks{
		OnCarouselStart: func(context.Context, *domain.CarouselEvent) {
			m.inFlight.Inc()
		},
		OnCarouselDone: func(_ context.Context, e *domain.CarouselEvent) {
			m.inFlight.Dec()
			m.carousels.WithLabelValues(string(e.State)).Inc()
			m.runDuration.Observe(e.Duration.Seconds())
		},
		OnSlideDone: func(_ context.Context, e *domain.SlideEvent) {
			m.slides.WithLabelValues(string(e.State)).Inc()
			m.warnings.Add(float64(len(e.Warnings)))
			m.slideDuration.Observe(e.Duration.Seconds())
		},
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
