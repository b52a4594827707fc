// Package metrics holds the Prometheus collectors of the service and the echo
// middleware that feeds the HTTP ones.
package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal tracks total HTTP requests
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vendorhub_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// RequestDuration tracks HTTP request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vendorhub_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// PortionTransitions counts applied portion status changes by target status.
	PortionTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vendorhub_portion_transitions_total",
			Help: "Total number of applied portion status transitions",
		},
		[]string{"status"},
	)

	// OrderPromotions counts orders promoted to Ready for Pickup.
	OrderPromotions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vendorhub_order_promotions_total",
			Help: "Total number of orders promoted to Ready for Pickup",
		},
	)

	// OrderStatusChanges counts aggregate status changes by target status and source.
	OrderStatusChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vendorhub_order_status_changes_total",
			Help: "Total number of order status changes",
		},
		[]string{"status", "source"},
	)

	// UpdateRetries counts re-reads after a lost optimistic write.
	UpdateRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vendorhub_order_update_retries_total",
			Help: "Total number of order update retries after a stale version",
		},
		[]string{"operation"},
	)

	// UpdateConflicts counts updates that ran out of attempts.
	UpdateConflicts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vendorhub_order_update_conflicts_total",
			Help: "Total number of order updates that exhausted their attempts",
		},
		[]string{"operation"},
	)

	// StoreTimeouts counts store calls that exceeded their deadline.
	StoreTimeouts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vendorhub_order_store_timeouts_total",
			Help: "Total number of order store calls that timed out",
		},
		[]string{"operation"},
	)

	// OrdersCommitted counts order documents written by committed transactions.
	OrdersCommitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vendorhub_orders_committed_total",
			Help: "Total number of order documents written by committed transactions",
		},
	)
)

// EchoMiddleware records request count and latency per route template.
func EchoMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				// let the error handler write the status before it is read
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			status := strconv.Itoa(c.Response().Status)

			RequestsTotal.WithLabelValues(c.Request().Method, route, status).Inc()
			RequestDuration.WithLabelValues(c.Request().Method, route).Observe(time.Since(start).Seconds())
			return nil
		}
	}
}
