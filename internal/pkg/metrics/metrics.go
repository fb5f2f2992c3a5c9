package metrics

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTPRequestsTotal counts handled requests by method, route and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backoffice_http_requests_total",
			Help: "Total HTTP requests processed, by method, route and status code.",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration observes request latency per route
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "backoffice_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds, by route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	// LoginAttemptsTotal counts login outcomes. Failures are not broken
	// down further to keep the metric as enumeration-safe as the endpoint.
	LoginAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backoffice_login_attempts_total",
			Help: "Total login attempts, by outcome (success/failure).",
		},
		[]string{"outcome"},
	)
)

// RecordLogin increments the login counter
func RecordLogin(success bool) {
	outcome := "failure"
	if success {
		outcome = "success"
	}
	LoginAttemptsTotal.WithLabelValues(outcome).Inc()
}

// Middleware records request counts and latency for every handled request
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		route := c.Path()
		timer := prometheus.NewTimer(HTTPRequestDuration.WithLabelValues(route))
		err := c.Next()
		timer.ObserveDuration()

		status := c.Response().StatusCode()
		if err != nil {
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
		}
		HTTPRequestsTotal.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		return err
	}
}

// Handler returns the prometheus scrape handler mounted via the fiber
// adaptor.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
