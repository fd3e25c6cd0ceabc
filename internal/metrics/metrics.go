// Package metrics holds the process-wide Prometheus collectors.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "alumni_http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "alumni_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	SequenceAllocations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "alumni_sequence_allocations_total",
		Help: "Human-readable IDs issued per counter.",
	}, []string{"counter"})

	AssistantTurns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "alumni_assistant_turns_total",
		Help: "Assistant turns by outcome.",
	}, []string{"outcome"})

	OrphanedReferences = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "alumni_orphaned_references_total",
		Help: "Records left pointing at a deleted alumni or event.",
	}, []string{"kind"})
)

// Middleware records request counts and latency per matched route.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}
		route := c.Route().Path
		HTTPRequests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		HTTPDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		return err
	}
}
