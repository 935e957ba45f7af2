package estimate

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// NoopMetricsCollector is a no-op implementation of MetricsCollector
type NoopMetricsCollector struct{}

func (n *NoopMetricsCollector) RecordOperationDuration(string, time.Duration) {}
func (n *NoopMetricsCollector) RecordCacheHit(string)                         {}
func (n *NoopMetricsCollector) RecordCacheMiss(string)                        {}
func (n *NoopMetricsCollector) RecordError(string, string)                    {}

// PrometheusMetricsCollector exports estimate metrics. Cache keys are not
// used as labels since every distinct input produces a new one.
type PrometheusMetricsCollector struct {
	duration    *prometheus.HistogramVec
	errors      *prometheus.CounterVec
	cacheHits   prometheus.Counter
	cacheMisses prometheus.Counter
}

func NewPrometheusMetricsCollector(namespace string, registerer prometheus.Registerer) (*PrometheusMetricsCollector, error) {
	m := &PrometheusMetricsCollector{
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "operation_duration_seconds",
				Help:      "Time spent per estimate operation",
				Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
			},
			[]string{"operation"},
		),
		errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "errors_total",
				Help:      "Failures per operation and type",
			},
			[]string{"operation", "type"},
		),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "report_cache_hits_total",
			Help:      "Estimates served from the report cache",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "report_cache_misses_total",
			Help:      "Estimates not found in the report cache",
		}),
	}

	err := errors.Join(
		registerer.Register(m.duration),
		registerer.Register(m.errors),
		registerer.Register(m.cacheHits),
		registerer.Register(m.cacheMisses),
	)
	return m, err
}

func (m *PrometheusMetricsCollector) RecordOperationDuration(operation string, duration time.Duration) {
	m.duration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (m *PrometheusMetricsCollector) RecordCacheHit(string) { m.cacheHits.Inc() }

func (m *PrometheusMetricsCollector) RecordCacheMiss(string) { m.cacheMisses.Inc() }

func (m *PrometheusMetricsCollector) RecordError(operation, errType string) {
	m.errors.WithLabelValues(operation, errType).Inc()
}
