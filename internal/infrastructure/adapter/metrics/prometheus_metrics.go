package metrics

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/port/core"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bookkeeping"

// PrometheusMetrics records workflow, HTTP and database metrics on its own registry
type PrometheusMetrics struct {
	registry           *prometheus.Registry
	handler            http.Handler
	transitions        *prometheus.CounterVec
	transitionDuration *prometheus.HistogramVec
	created            *prometheus.CounterVec
	requestDuration    *prometheus.HistogramVec
	requestTotal       *prometheus.CounterVec
	dbQueryDuration    *prometheus.HistogramVec
}

// NewPrometheusMetrics registers the collectors
func NewPrometheusMetrics() *PrometheusMetrics {
	registry := prometheus.NewRegistry()

	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transitions_total",
		Help:      "Validation transition attempts by action and outcome",
	}, []string{"action", "outcome"})

	transitionDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "transition_duration_seconds",
		Help:      "Duration of validation transitions",
		Buckets:   prometheus.DefBuckets,
	}, []string{"action"})

	created := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transactions_created_total",
		Help:      "Transactions recorded by type",
	}, []string{"type"})

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	dbQueryDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "db_query_duration_seconds",
		Help:    "Duration of database queries",
		Buckets: prometheus.DefBuckets,
	}, []string{"query"})

	registry.MustRegister(
		transitions,
		transitionDuration,
		created,
		requestDuration,
		requestTotal,
		dbQueryDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &PrometheusMetrics{
		registry:           registry,
		handler:            promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		transitions:        transitions,
		transitionDuration: transitionDuration,
		created:            created,
		requestDuration:    requestDuration,
		requestTotal:       requestTotal,
		dbQueryDuration:    dbQueryDuration,
	}
}

// Handler exposes the Prometheus HTTP handler
func (m *PrometheusMetrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Registry returns the underlying registry
func (m *PrometheusMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// RegisterDBStats exports the pool statistics of sqlDB under db_name=name
func (m *PrometheusMetrics) RegisterDBStats(sqlDB *sql.DB, name string) error {
	if m == nil || sqlDB == nil {
		return nil
	}
	return m.registry.Register(collectors.NewDBStatsCollector(sqlDB, name))
}

// ObserveTransition records one transition attempt
func (m *PrometheusMetrics) ObserveTransition(action string, outcome string, duration core.Duration) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(action, outcome).Inc()
	m.transitionDuration.WithLabelValues(action).Observe(duration.Seconds())
}

// IncTransactionsCreated counts a newly recorded transaction
func (m *PrometheusMetrics) IncTransactionsCreated(transactionType string) {
	if m == nil {
		return
	}
	m.created.WithLabelValues(transactionType).Inc()
}

// ObserveHTTPRequest records request metrics
func (m *PrometheusMetrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveDBQuery records database query timing
func (m *PrometheusMetrics) ObserveDBQuery(label string, duration time.Duration) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(label).Observe(duration.Seconds())
}

// NoopMetrics discards every measurement
type NoopMetrics struct{}

// NewNoopMetrics creates metrics that record nothing
func NewNoopMetrics() core.Metrics {
	return NoopMetrics{}
}

// ObserveTransition does nothing
func (NoopMetrics) ObserveTransition(string, string, core.Duration) {}

// IncTransactionsCreated does nothing
func (NoopMetrics) IncTransactionsCreated(string) {}
