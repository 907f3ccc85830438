package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the process-wide Prometheus collectors.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	ledgerFallbacks *prometheus.CounterVec
	tradeEvents     *prometheus.CounterVec
}

func New(serviceName string) *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "mintmymoment",
			Name:        "http_requests_total",
			Help:        "HTTP requests by route and status.",
			ConstLabels: prometheus.Labels{"service": serviceName},
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   "mintmymoment",
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency by route.",
			ConstLabels: prometheus.Labels{"service": serviceName},
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		ledgerFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "mintmymoment",
			Name:        "ledger_fallback_total",
			Help:        "Gateway calls served by the fixture backend instead of the remote ledger.",
			ConstLabels: prometheus.Labels{"service": serviceName},
		}, []string{"operation"}),
		tradeEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "mintmymoment",
			Name:        "trade_events_total",
			Help:        "Trade events published by operation.",
			ConstLabels: prometheus.Labels{"service": serviceName},
		}, []string{"operation"}),
	}

	registry.MustRegister(m.httpRequests, m.httpDuration, m.ledgerFallbacks, m.tradeEvents)
	return m
}

func (m *Metrics) ObserveHTTPRequest(method, route, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, status).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveLedgerFallback plugs into the gateway's OnFallback hook.
func (m *Metrics) ObserveLedgerFallback(operation string) {
	if m == nil {
		return
	}
	m.ledgerFallbacks.WithLabelValues(operation).Inc()
}

func (m *Metrics) ObserveTradeEvent(operation string) {
	if m == nil {
		return
	}
	m.tradeEvents.WithLabelValues(operation).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
