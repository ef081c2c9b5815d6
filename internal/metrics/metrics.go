// Package metrics exposes Prometheus instrumentation for the ledger server.
package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/chamaa/internal/models"
)

const namespace = "chamaa"

// Outcome labels for ledger operations.
const (
	OutcomeOK         = "ok"
	OutcomeValidation = "validation"
	OutcomeNotFound   = "not_found"
	OutcomeConflict   = "conflict"
	OutcomeStore      = "store_failure"
	OutcomeUnknown    = "error"
)

// Metrics holds every collector on a private registry so tests can create
// as many instances as they like.
type Metrics struct {
	registry *prometheus.Registry

	rpcRequests  *prometheus.CounterVec
	rpcDuration  *prometheus.HistogramVec
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	operations   *prometheus.CounterVec
}

// New creates and registers the ledger collectors along with the Go runtime
// and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		rpcRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "Connect RPCs handled, by procedure and code.",
		}, []string{"procedure", "code"}),
		rpcDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "Connect RPC latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ledger_operations_total",
			Help:      "Ledger write operations, by operation and outcome.",
		}, []string{"operation", "outcome"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.rpcRequests,
		m.rpcDuration,
		m.httpRequests,
		m.httpDuration,
		m.operations,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRPC records one finished RPC.
func (m *Metrics) ObserveRPC(procedure, code string, elapsed time.Duration) {
	m.rpcRequests.WithLabelValues(procedure, code).Inc()
	m.rpcDuration.WithLabelValues(procedure).Observe(elapsed.Seconds())
}

// ObserveHTTP records one finished HTTP request. route should be the
// matched mux pattern, not the raw path.
func (m *Metrics) ObserveHTTP(method, route, status string, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, route, status).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveOperation records the outcome of a ledger write.
func (m *Metrics) ObserveOperation(operation string, err error) {
	m.operations.WithLabelValues(operation, Outcome(err)).Inc()
}

// Outcome maps a ledger error to its outcome label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, models.ErrValidation):
		return OutcomeValidation
	case errors.Is(err, models.ErrNotFound):
		return OutcomeNotFound
	case errors.Is(err, models.ErrConflict):
		return OutcomeConflict
	case errors.Is(err, models.ErrStore):
		return OutcomeStore
	default:
		return OutcomeUnknown
	}
}
