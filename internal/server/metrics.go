package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors of one server. Each server owns
// its registry so that several servers can coexist in one process.
type Metrics struct {
	registry      *prometheus.Registry
	evaluations   *prometheus.CounterVec
	duration      prometheus.Histogram
	cacheHits     prometheus.Counter
	wsConnections prometheus.Gauge
}

// NewMetrics creates and registers the server collectors
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		evaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "mcalc",
				Name:      "evaluations_total",
				Help:      "Evaluated expressions by outcome (ok, cached or error code).",
			},
			[]string{"result"},
		),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "mcalc",
			Name:      "evaluation_duration_seconds",
			Help:      "Time spent tokenizing, parsing and evaluating one expression.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 8),
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mcalc",
			Name:      "cache_hits_total",
			Help:      "Evaluations answered from the result cache.",
		}),
		wsConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "mcalc",
			Name:      "websocket_connections",
			Help:      "Open WebSocket connections.",
		}),
	}

	m.registry.MustRegister(
		m.evaluations,
		m.duration,
		m.cacheHits,
		m.wsConnections,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Outcome labels besides error codes
const (
	resultOK     = "ok"
	resultCached = "cached"
)

// ObserveEvaluation records one evaluation. result is resultOK,
// resultCached or an error code; d is the time this request spent.
func (m *Metrics) ObserveEvaluation(result string, d time.Duration) {
	m.evaluations.WithLabelValues(result).Inc()
	m.duration.Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
