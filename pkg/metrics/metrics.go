package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор Prometheus метрик сервиса
type Metrics struct {
	// HTTP метрики
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPRequestsInFlight *prometheus.GaugeVec

	// Метрики базы данных
	DBQueryDuration  *prometheus.HistogramVec
	DBQueryErrors    *prometheus.CounterVec
	DBConnectionsOpen  *prometheus.GaugeVec
	DBConnectionsInUse *prometheus.GaugeVec
	DBConnectionsIdle  *prometheus.GaugeVec
}

// New создает и регистрирует набор метрик в default registry
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "http_requests_total",
				Help:        "Total number of HTTP requests",
				ConstLabels: constLabels,
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "http_request_duration_seconds",
				Help:        "HTTP request duration in seconds",
				Buckets:     prometheus.DefBuckets,
				ConstLabels: constLabels,
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name:        "http_requests_in_flight",
				Help:        "Number of HTTP requests currently being served",
				ConstLabels: constLabels,
			},
			[]string{"method"},
		),
		DBQueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "db_query_duration_seconds",
				Help:        "Database query duration in seconds",
				Buckets:     []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
				ConstLabels: constLabels,
			},
			[]string{"operation"},
		),
		DBQueryErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "db_query_errors_total",
				Help:        "Total number of database query errors",
				ConstLabels: constLabels,
			},
			[]string{"operation"},
		),
		DBConnectionsOpen: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name:        "db_connections_open",
				Help:        "Number of open database connections",
				ConstLabels: constLabels,
			},
			[]string{"db"},
		),
		DBConnectionsInUse: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name:        "db_connections_in_use",
				Help:        "Number of database connections currently in use",
				ConstLabels: constLabels,
			},
			[]string{"db"},
		),
		DBConnectionsIdle: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name:        "db_connections_idle",
				Help:        "Number of idle database connections",
				ConstLabels: constLabels,
			},
			[]string{"db"},
		),
	}
}
