// Package telemetry keeps HTTP and assistant metrics in a private Prometheus
// registry and serves them on /metrics.
package telemetry

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is safe for concurrent use. The zero value is not usable; call New.
type Metrics struct {
	registry *prometheus.Registry
	duration *prometheus.HistogramVec
	active   prometheus.Gauge
	outcomes *prometheus.CounterVec
}

// New registers the HTTP, assistant, Go runtime and process collectors on a
// fresh registry, so several instances can live in one test binary.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_server_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status_code"}),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "http_server_active_requests",
			Help: "Number of in-flight HTTP requests.",
		}),
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "assistant_outcomes_total",
			Help: "Simulated assistant results by operation and outcome.",
		}, []string{"operation", "outcome"}),
	}
	m.registry.MustRegister(
		m.duration,
		m.active,
		m.outcomes,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// RecordOutcome counts one simulated result for an assistant operation.
func (m *Metrics) RecordOutcome(operation, outcome string) {
	m.outcomes.WithLabelValues(operation, outcome).Inc()
}

// Middleware records request duration by method, route pattern and status.
// It must run below the error-handling logger so the status is final.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			m.active.Inc()
			start := time.Now()
			err := next(c)
			elapsed := time.Since(start).Seconds()
			m.active.Dec()

			status := c.Response().Status
			if err != nil && !c.Response().Committed {
				status = http.StatusInternalServerError
				var he *echo.HTTPError
				if errors.As(err, &he) {
					status = he.Code
				}
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			m.duration.WithLabelValues(c.Request().Method, route, strconv.Itoa(status)).Observe(elapsed)
			return err
		}
	}
}

// Handler serves /metrics.
func (m *Metrics) Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		Registry: m.registry,
	}))
}
