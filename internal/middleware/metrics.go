package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"inventory-service/prometheus"

	"github.com/labstack/echo/v4"
)

// MetricsMiddleware records a request counter and a latency observation for
// every request, labeled by method, route template and status. The scrape
// endpoint itself is skipped so the collector does not meter its own scrapes.
func MetricsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.Path() == "/metrics" {
			return next(c)
		}

		start := time.Now()
		err := next(c)
		duration := time.Since(start).Seconds()

		status := c.Response().Status
		if err != nil && !c.Response().Committed {
			// The error handler has not written the response yet; label
			// with the status it is about to write.
			status = http.StatusInternalServerError
			var he *echo.HTTPError
			if errors.As(err, &he) {
				status = he.Code
			}
		}

		method := c.Request().Method
		path := c.Path()
		label := strconv.Itoa(status)
		prometheus.HttpRequestsTotal.WithLabelValues(method, path, label).Inc()
		prometheus.HttpRequestDuration.WithLabelValues(method, path, label).Observe(duration)

		return err
	}
}
