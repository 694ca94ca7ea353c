// Package middleware provides Echo middleware for the HTTP API.
package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/donaldgifford/ebay-seller-metrics/internal/metrics"
)

const unmatchedRoute = "unmatched"

// probeGauges maps probe routes to their 0/1 gauge. Probes and /metrics are
// kept out of the request histograms.
var probeGauges = map[string]prometheus.Gauge{
	"/healthz": metrics.HealthzUp,
	"/readyz":  metrics.ReadyzUp,
}

// Metrics returns Echo middleware that records request duration and status,
// labelled by route template so path parameters do not explode
// cardinality. Unmatched routes share one label.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			route := routeLabel(c)
			start := time.Now()

			err := next(c)

			status := c.Response().Status
			if gauge, ok := probeGauges[route]; ok {
				gauge.Set(probeValue(status))
				return err
			}
			if route == "/metrics" {
				return err
			}

			labels := []string{c.Request().Method, route, strconv.Itoa(status)}
			metrics.HTTPRequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
			metrics.HTTPRequestsTotal.WithLabelValues(labels...).Inc()

			return err
		}
	}
}

func routeLabel(c echo.Context) string {
	switch p := c.Path(); p {
	case "", "/*":
		return unmatchedRoute
	default:
		return p
	}
}

func probeValue(status int) float64 {
	if status >= 200 && status < 300 {
		return 1
	}
	return 0
}
