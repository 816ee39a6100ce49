package middleware

import (
    "strconv"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/prometheus/client_golang/prometheus"
    "github.com/prometheus/client_golang/prometheus/promauto"
)

var (
    httpRequestsTotal = promauto.NewCounterVec(
        prometheus.CounterOpts{
            Name: "canteen_http_requests_total",
            Help: "Total HTTP requests by method, route and status code.",
        },
        []string{"method", "route", "status"},
    )
    httpRequestDuration = promauto.NewHistogramVec(
        prometheus.HistogramOpts{
            Name:    "canteen_http_request_duration_seconds",
            Help:    "HTTP request latency by method and route.",
            Buckets: prometheus.DefBuckets,
        },
        []string{"method", "route"},
    )
)

// Metrics records a counter and latency histogram for every request.  The
// route label uses the registered path template, not the raw URL, to keep
// cardinality bounded.
func Metrics() echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            start := time.Now()
            err := next(c)

            route := c.Path()
            if route == "" {
                route = "unmatched"
            }
            method := c.Request().Method
            status := c.Response().Status
            if err != nil {
                if he, ok := err.(*echo.HTTPError); ok {
                    status = he.Code
                }
            }

            httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
            httpRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
            return err
        }
    }
}
