package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds all Prometheus metrics for the application.
// A nil *Collector is valid and records nothing.
type Collector struct {
	// Registry for this collector instance
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Persistence metrics
	GatewayLoads *prometheus.CounterVec
	GatewaySaves *prometheus.CounterVec

	// State metrics
	SnapshotApplies  *prometheus.CounterVec
	SaveQueueDropped prometheus.Counter
}

// NewCollector creates a new metrics collector with the given namespace.
// Each collector owns its registry so tests can create as many as they need.
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	httpRequests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	gatewayLoads := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gateway_loads_total",
			Help:      "Total number of document loads by source",
		},
		[]string{"source"},
	)

	gatewaySaves := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gateway_saves_total",
			Help:      "Total number of document writes by target and outcome",
		},
		[]string{"target", "status"},
	)

	snapshotApplies := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_applies_total",
			Help:      "Total number of snapshots applied in memory",
		},
		[]string{"operation"},
	)

	saveQueueDropped := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "save_queue_dropped_total",
			Help:      "Total number of pending snapshots superseded before being saved",
		},
	)

	registry.MustRegister(
		httpRequests,
		httpDuration,
		gatewayLoads,
		gatewaySaves,
		snapshotApplies,
		saveQueueDropped,
	)

	return &Collector{
		registry:         registry,
		HTTPRequests:     httpRequests,
		HTTPDuration:     httpDuration,
		GatewayLoads:     gatewayLoads,
		GatewaySaves:     gatewaySaves,
		SnapshotApplies:  snapshotApplies,
		SaveQueueDropped: saveQueueDropped,
	}
}

// Registry exposes the underlying registry
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the collector's registry in the Prometheus exposition format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// RecordLoad counts a document load by its source
func (c *Collector) RecordLoad(source string) {
	if c == nil {
		return
	}
	c.GatewayLoads.WithLabelValues(source).Inc()
}

// RecordSave counts a write to the cache or the remote store
func (c *Collector) RecordSave(target string, err error) {
	if c == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	c.GatewaySaves.WithLabelValues(target, status).Inc()
}

// RecordApply counts a snapshot applied by an operation
func (c *Collector) RecordApply(operation string) {
	if c == nil {
		return
	}
	c.SnapshotApplies.WithLabelValues(operation).Inc()
}

// RecordDroppedSave counts a pending snapshot replaced by a newer one
func (c *Collector) RecordDroppedSave() {
	if c == nil {
		return
	}
	c.SaveQueueDropped.Inc()
}

// RecordHTTPRequest records one served request
func (c *Collector) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	if c == nil {
		return
	}
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
