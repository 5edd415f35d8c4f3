// Package metrics collects Prometheus metrics for one CLI invocation and can dump them
// to a node-exporter textfile.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "solagent"

// Metrics holds all Prometheus metrics for the application.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	RPCRequests      *prometheus.CounterVec
	RPCLatency       *prometheus.HistogramVec
	HTTPRequests     *prometheus.CounterVec
	HTTPLatency      *prometheus.HistogramVec
	PriceCacheHits   prometheus.Counter
	PriceCacheMisses prometheus.Counter
	TokenLookups     *prometheus.CounterVec
	CommandDuration  *prometheus.HistogramVec
}

// New creates a Metrics instance registered on its own registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RPCRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rpc",
			Name:      "requests_total",
			Help:      "JSON-RPC requests by method and outcome",
		}, []string{"method", "outcome"}),
		RPCLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "rpc",
			Name:      "request_duration_seconds",
			Help:      "JSON-RPC request latency by method",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "jupiter",
			Name:      "requests_total",
			Help:      "Price and quote API requests by endpoint and outcome",
		}, []string{"endpoint", "outcome"}),
		HTTPLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "jupiter",
			Name:      "request_duration_seconds",
			Help:      "Price and quote API latency by endpoint",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
		PriceCacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "price",
			Name:      "cache_hits_total",
			Help:      "Prices served from the in-process cache",
		}),
		PriceCacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "price",
			Name:      "cache_misses_total",
			Help:      "Prices that had to be fetched",
		}),
		TokenLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "balance",
			Name:      "token_lookups_total",
			Help:      "Per-token balance lookups by outcome",
		}, []string{"outcome"}),
		CommandDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "cli",
			Name:      "command_duration_seconds",
			Help:      "Wall time of CLI commands",
			Buckets:   prometheus.DefBuckets,
		}, []string{"command"}),
	}

	m.registry.MustRegister(
		m.RPCRequests,
		m.RPCLatency,
		m.HTTPRequests,
		m.HTTPLatency,
		m.PriceCacheHits,
		m.PriceCacheMisses,
		m.TokenLookups,
		m.CommandDuration,
	)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveRPC records one JSON-RPC call.
func (m *Metrics) ObserveRPC(method, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.RPCRequests.WithLabelValues(method, outcome).Inc()
	m.RPCLatency.WithLabelValues(method).Observe(elapsed.Seconds())
}

// ObserveHTTP records one price or quote request.
func (m *Metrics) ObserveHTTP(endpoint, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(endpoint, outcome).Inc()
	m.HTTPLatency.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// PriceCache records a cache hit or miss.
func (m *Metrics) PriceCache(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.PriceCacheHits.Inc()
		return
	}
	m.PriceCacheMisses.Inc()
}

// TokenLookup records the outcome of a per-token balance query.
func (m *Metrics) TokenLookup(ok bool) {
	if m == nil {
		return
	}
	outcome := "ok"
	if !ok {
		outcome = "error"
	}
	m.TokenLookups.WithLabelValues(outcome).Inc()
}

// ObserveCommand records the duration of a CLI command.
func (m *Metrics) ObserveCommand(command string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.CommandDuration.WithLabelValues(command).Observe(elapsed.Seconds())
}

// WriteTextfile writes all metrics in the Prometheus text format, suitable for the
// node-exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", path, err)
	}
	return nil
}
