// Package metrics holds the Prometheus instruments of the web service.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"eatery-frontend/web-svc/internal/domain"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "eatery"

type Metrics struct {
	registry *prometheus.Registry

	RequestDuration  *prometheus.HistogramVec
	RequestTotal     *prometheus.CounterVec
	RequestInFlight  prometheus.Gauge
	UpstreamRequests *prometheus.CounterVec
	Notifications    *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		RequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		RequestInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served.",
		}),
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "requests_total",
			Help:      "Calls to the restaurant API by operation and result.",
		}, []string{"operation", "result"}),
		Notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Notifications shown to users by operation and kind.",
		}, []string{"operation", "kind"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.RequestDuration,
		m.RequestTotal,
		m.RequestInFlight,
		m.UpstreamRequests,
		m.Notifications,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveUpstream(operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.UpstreamRequests.WithLabelValues(operation, result).Inc()
}

func (m *Metrics) Notify(_ context.Context, notification domain.Notification) {
	m.Notifications.WithLabelValues(notification.Operation, string(notification.Kind)).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware records every request under its route template so ids in the
// path do not blow up label cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		m.RequestInFlight.Inc()
		defer m.RequestInFlight.Dec()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := "unmatched"
		if current := mux.CurrentRoute(r); current != nil {
			if template, err := current.GetPathTemplate(); err == nil {
				route = template
			}
		}
		status := strconv.Itoa(rec.status)
		m.RequestDuration.WithLabelValues(r.Method, route, status).Observe(time.Since(start).Seconds())
		m.RequestTotal.WithLabelValues(r.Method, route, status).Inc()
	})
}
