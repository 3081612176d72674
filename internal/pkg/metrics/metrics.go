package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "unirecords"

// Collector is a prometheus.Collector that collects metrics about
// records store mutations. A nil *Collector is valid and records nothing.
type Collector struct {
	created  *prometheus.CounterVec
	rejected *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewCollector returns a new Collector.
func NewCollector() *Collector {
	return &Collector{
		created: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "records_created_total",
				Help:      "The number of records created, by entity.",
			}, []string{"entity"},
		),
		rejected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "records_rejected_total",
				Help:      "The number of create operations rejected, by entity and error kind.",
			}, []string{"entity", "reason"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "records_operation_duration_seconds",
				Help:      "The time taken by records store operations.",
				Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			}, []string{"operation"},
		),
	}
}

// Describe is part of the prometheus.Collector interface.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.created.Describe(ch)
	c.rejected.Describe(ch)
	c.duration.Describe(ch)
}

// Collect is part of the prometheus.Collector interface.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.created.Collect(ch)
	c.rejected.Collect(ch)
	c.duration.Collect(ch)
}

// RecordCreated counts a successful create.
func (c *Collector) RecordCreated(entity string) {
	if c == nil {
		return
	}
	c.created.WithLabelValues(entity).Inc()
}

// RecordRejected counts a failed create.
func (c *Collector) RecordRejected(entity, reason string) {
	if c == nil {
		return
	}
	c.rejected.WithLabelValues(entity, reason).Inc()
}

// ObserveDuration records how long an operation took.
func (c *Collector) ObserveDuration(operation string, d time.Duration) {
	if c == nil {
		return
	}
	c.duration.WithLabelValues(operation).Observe(d.Seconds())
}
