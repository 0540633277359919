package monitoring

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/nutrimate/v1/internal/ports/outbound"
)

const namespace = "nutrimate"

// MetricsCollector owns the Prometheus registry and every collector the
// service exports.
type MetricsCollector struct {
	registry *prometheus.Registry
	logger   *zap.Logger

	// HTTP metrics
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpActiveRequests  prometheus.Gauge

	// Business metrics
	foodQueriesTotal     *prometheus.CounterVec
	foodEvaluationsTotal *prometheus.CounterVec
	predictionsTotal     *prometheus.CounterVec

	// System metrics
	cacheOperations *prometheus.CounterVec
}

// NewMetricsCollector creates the collectors on a fresh registry that also
// carries the Go runtime and process collectors.
func NewMetricsCollector(logger *zap.Logger) *MetricsCollector {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(registry)

	return &MetricsCollector{
		registry: registry,
		logger:   logger,

		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		httpActiveRequests: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "http_active_requests",
				Help:      "Number of in-flight HTTP requests",
			},
		),

		foodQueriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "food_queries_total",
				Help:      "Chat queries by overall verdict",
			},
			[]string{"outcome"},
		),
		foodEvaluationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "food_evaluations_total",
				Help:      "Single food eligibility decisions",
			},
			[]string{"food", "allowed"},
		),
		predictionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "predictions_total",
				Help:      "Meal prediction runs by result",
			},
			[]string{"result"},
		),

		cacheOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_operations_total",
				Help:      "Cache operations by result",
			},
			[]string{"operation", "result"},
		),
	}
}

// Registry exposes the underlying registry
func (m *MetricsCollector) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *MetricsCollector) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		ErrorLog:          zap.NewStdLog(m.logger),
		EnableOpenMetrics: true,
	})
}

// RegisterDB exports connection pool statistics for db
func (m *MetricsCollector) RegisterDB(db *sql.DB, name string) {
	if err := m.registry.Register(collectors.NewDBStatsCollector(db, name)); err != nil {
		m.logger.Warn("Failed to register db stats collector", zap.String("db", name), zap.Error(err))
	}
}

// RecordHTTPRequest records a completed request
func (m *MetricsCollector) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// IncActiveRequests marks a request as started
func (m *MetricsCollector) IncActiveRequests() {
	m.httpActiveRequests.Inc()
}

// DecActiveRequests marks a request as finished
func (m *MetricsCollector) DecActiveRequests() {
	m.httpActiveRequests.Dec()
}

// RecordFoodQuery counts a chat query by outcome (allowed, denied, unknown)
func (m *MetricsCollector) RecordFoodQuery(outcome string) {
	m.foodQueriesTotal.WithLabelValues(outcome).Inc()
}

// RecordFoodEvaluation counts a single food decision
func (m *MetricsCollector) RecordFoodEvaluation(food string, allowed bool) {
	m.foodEvaluationsTotal.WithLabelValues(food, strconv.FormatBool(allowed)).Inc()
}

// RecordPrediction counts a meal prediction run
func (m *MetricsCollector) RecordPrediction(result string) {
	m.predictionsTotal.WithLabelValues(result).Inc()
}

// RecordCacheOperation counts a cache call
func (m *MetricsCollector) RecordCacheOperation(operation, result string) {
	m.cacheOperations.WithLabelValues(operation, result).Inc()
}

var _ outbound.DomainMetrics = (*MetricsCollector)(nil)
