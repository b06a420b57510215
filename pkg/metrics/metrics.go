package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор Prometheus коллекторов сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec
	DBConnections   *prometheus.GaugeVec

	OutboxEventsTotal *prometheus.CounterVec
	OutboxPending     *prometheus.GaugeVec
}

// New создает метрики и регистрирует их в prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegisterer создает метрики и регистрирует их в указанном реестре
func NewWithRegisterer(reg prometheus.Registerer, serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"operation"}),

		DBQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Total number of failed database queries",
			ConstLabels: constLabels,
		}, []string{"operation"}),

		DBConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections",
			Help:        "Database connection pool state",
			ConstLabels: constLabels,
		}, []string{"state"}),

		OutboxEventsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "outbox_events_total",
			Help:        "Outbox events processed by the relay",
			ConstLabels: constLabels,
		}, []string{"event_type", "result"}),

		OutboxPending: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "outbox_batch_size",
			Help:        "Number of events picked in the last relay batch",
			ConstLabels: constLabels,
		}, []string{"event_type"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBQueryErrors,
		m.DBConnections,
		m.OutboxEventsTotal,
		m.OutboxPending,
	)

	return m
}

// ObserveOutboxEvent увеличивает счетчик обработанных outbox событий
func (m *Metrics) ObserveOutboxEvent(eventType, result string) {
	if m == nil {
		return
	}
	m.OutboxEventsTotal.WithLabelValues(eventType, result).Inc()
}

// SetOutboxBatch фиксирует размер последней пачки событий
func (m *Metrics) SetOutboxBatch(eventType string, size int) {
	if m == nil {
		return
	}
	m.OutboxPending.WithLabelValues(eventType).Set(float64(size))
}
