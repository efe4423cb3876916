package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "hrops"

// Metrics holds the collectors exported on /metrics. All methods are safe on a nil receiver.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests      *prometheus.CounterVec
	HTTPDuration      *prometheus.HistogramVec
	ClockEvents       *prometheus.CounterVec
	LeaveRequests     *prometheus.CounterVec
	VerificationCodes *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route pattern and status code.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		ClockEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "attendance_clock_events_total",
			Help:      "Successful clock-in and clock-out operations.",
		}, []string{"event"}),
		LeaveRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "leave_requests_total",
			Help:      "Leave request transitions by resulting status.",
		}, []string{"status"}),
		VerificationCodes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_verification_codes_total",
			Help:      "Verification codes issued by outcome.",
		}, []string{"outcome"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequests,
		m.HTTPDuration,
		m.ClockEvents,
		m.LeaveRequests,
		m.VerificationCodes,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveRequest(method, route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, status).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(seconds)
}

func (m *Metrics) ClockIn() {
	if m == nil {
		return
	}
	m.ClockEvents.WithLabelValues("clock_in").Inc()
}

func (m *Metrics) ClockOut() {
	if m == nil {
		return
	}
	m.ClockEvents.WithLabelValues("clock_out").Inc()
}

func (m *Metrics) LeaveRequest(status string) {
	if m == nil {
		return
	}
	m.LeaveRequests.WithLabelValues(status).Inc()
}

func (m *Metrics) VerificationCode(outcome string) {
	if m == nil {
		return
	}
	m.VerificationCodes.WithLabelValues(outcome).Inc()
}
