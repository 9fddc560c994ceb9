// Package metrics holds the Prometheus collectors of the frontend.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	// Route guard outcomes by route template and decision
	GuardDecisions *prometheus.CounterVec

	// HTTP requests served by this process
	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Calls made to the REST API
	APICalls   *prometheus.CounterVec
	APILatency *prometheus.HistogramVec

	// Auth form posts turned away by the rate limiter
	RateLimited prometheus.Counter

	gatherer prometheus.Gatherer
}

func New(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		GuardDecisions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "logichain_guard_decisions_total",
				Help: "Route guard decisions",
			},
			[]string{"route", "decision"},
		),
		Requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "logichain_http_requests_total",
				Help: "HTTP requests served",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "logichain_http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		APICalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "logichain_api_calls_total",
				Help: "Calls to the REST API",
			},
			[]string{"method", "route", "status"},
		),
		APILatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "logichain_api_call_duration_seconds",
				Help:    "REST API call latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		RateLimited: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "logichain_auth_rate_limited_total",
				Help: "Auth form posts rejected by the rate limiter",
			},
		),
		gatherer: reg,
	}
}

// NewRegistry creates a registry with the Go and process collectors and
// the frontend's own metrics.
func NewRegistry() (*prometheus.Registry, *Metrics) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return reg, New(reg)
}

// ObserveAPI matches apiclient.Observer. Status 0 means the call never got
// an answer.
func (m *Metrics) ObserveAPI(method, route string, status int, elapsed time.Duration) {
	m.APICalls.WithLabelValues(method, route, statusLabel(status)).Inc()
	m.APILatency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.Requests.WithLabelValues(method, route, statusLabel(status)).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func statusLabel(status int) string {
	if status == 0 {
		return "error"
	}
	return strconv.Itoa(status)
}
