package providers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"visitors/internal/models"
	"visitors/internal/structures"
)

const (
	OpSave = "save"
	OpLoad = "load"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObservePersistenceDuration(op string, duration time.Duration)
	IncStoreResult(op string, result string)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	persistenceDuration *prometheus.HistogramVec
	storeResults        *prometheus.CounterVec
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(op string, duration time.Duration) {
	m.persistenceDuration.WithLabelValues(op).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncStoreResult(op string, result string) {
	m.storeResults.WithLabelValues(op, result).Inc()
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config, sequence *models.Sequence) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	m := &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "visitors_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "visitors_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "visitors_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "visitors_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		persistenceDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "visitors_persistence_duration_seconds",
			Help:    "Duration of record save/load operations in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"}),

		storeResults: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "visitors_store_operations_total",
			Help: "Record store operations by outcome",
		}, []string{"op", "result"}),
	}

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "visitors_last_id",
		Help: "Last visitor id handed out by this process",
	}, func() float64 {
		return float64(sequence.Current())
	})

	return m
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                     {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration)     {}
func (n *noopMetrics) IncCacheHits()                                        {}
func (n *noopMetrics) IncCacheMisses()                                      {}
func (n *noopMetrics) ObservePersistenceDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncStoreResult(_ string, _ string)                    {}
