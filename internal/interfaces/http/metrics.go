package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/sawpanic/cea/internal/domain/sectors"
)

// MetricsRegistry holds all Prometheus metrics for one server instance
type MetricsRegistry struct {
	registry *prometheus.Registry

	// HTTP metrics
	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RateLimited     prometheus.Counter

	// Domain metrics
	AdviceServed   *prometheus.CounterVec
	LearningUsage  *prometheus.GaugeVec
	Refusals       *prometheus.CounterVec
	Rejected       *prometheus.CounterVec
	CompaniesAdded prometheus.Counter
}

// NewMetricsRegistry creates a registry with all CEA metrics plus Go runtime collectors
func NewMetricsRegistry() *MetricsRegistry {
	m := &MetricsRegistry{
		registry: prometheus.NewRegistry(),

		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cea_http_requests_total",
				Help: "Total HTTP requests by route, method and status code",
			},
			[]string{"route", "method", "status"},
		),

		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cea_http_request_duration_seconds",
				Help:    "HTTP request latency by route",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
			},
			[]string{"route"},
		),

		RateLimited: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "cea_http_rate_limited_total",
				Help: "Total API requests rejected by the per-client rate limiter",
			},
		),

		AdviceServed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cea_advice_served_total",
				Help: "Total advice responses by sector",
			},
			[]string{"sector"},
		),

		LearningUsage: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "cea_learning_usage",
				Help: "Learning steps applied per sector since start",
			},
			[]string{"sector"},
		),

		Refusals: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cea_suspicious_refusals_total",
				Help: "Total refused suspicious problems by sector (other for unknown keys)",
			},
			[]string{"sector"},
		),

		Rejected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cea_rejected_requests_total",
				Help: "Total requests rejected with 400 by endpoint and reason",
			},
			[]string{"endpoint", "reason"},
		),

		CompaniesAdded: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "cea_companies_created_total",
				Help: "Total companies registered",
			},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.Requests,
		m.RequestDuration,
		m.RateLimited,
		m.AdviceServed,
		m.LearningUsage,
		m.Refusals,
		m.Rejected,
		m.CompaniesAdded,
	)

	return m
}

// Registry exposes the underlying registry for gathering
func (m *MetricsRegistry) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an HTTP handler for Prometheus metrics
func (m *MetricsRegistry) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one completed HTTP request
func (m *MetricsRegistry) ObserveRequest(route, method string, status int, duration time.Duration) {
	m.Requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(route).Observe(duration.Seconds())
}

// RecordRateLimited counts a throttled request
func (m *MetricsRegistry) RecordRateLimited() {
	m.RateLimited.Inc()
}

// RecordAdvice counts served advice and tracks the sector's learning usage
func (m *MetricsRegistry) RecordAdvice(sector string, usage int) {
	m.AdviceServed.WithLabelValues(sector).Inc()
	m.LearningUsage.WithLabelValues(sector).Set(float64(usage))
}

// RecordRefusal counts a suspicious-input refusal
func (m *MetricsRegistry) RecordRefusal(sector string) {
	m.Refusals.WithLabelValues(sectorLabel(sector)).Inc()
	log.Debug().Str("sector", sector).Msg("Refusal recorded")
}

// RecordRejected counts a 400 response
func (m *MetricsRegistry) RecordRejected(endpoint, reason string) {
	m.Rejected.WithLabelValues(endpoint, reason).Inc()
}

// RecordCompanyCreated counts a registered company. Company sectors are free text, so
// they are not used as a label.
func (m *MetricsRegistry) RecordCompanyCreated(string) {
	m.CompaniesAdded.Inc()
}

// sectorLabel bounds label cardinality to the known sector keys
func sectorLabel(sector string) string {
	for _, key := range sectors.Keys {
		if key == sector {
			return sector
		}
	}
	return "other"
}
