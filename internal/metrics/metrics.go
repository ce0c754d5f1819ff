package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "daycare",
		Name:      "http_requests_total",
		Help:      "HTTP requests by route and status code.",
	}, []string{"method", "route", "code"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "daycare",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	// RecordsWritten counts successful record mutations, labelled by record
	// kind (attendance, child_attendance, mood, ...) and operation.
	RecordsWritten = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "daycare",
		Name:      "records_written_total",
		Help:      "Record mutations by kind and operation.",
	}, []string{"kind", "op"})

	// RecordsScanned counts records read by statistics scans.
	RecordsScanned = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "daycare",
		Name:      "stats_records_scanned_total",
		Help:      "Records visited while computing statistics.",
	}, []string{"kind"})

	QueueEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "daycare",
		Name:      "queue_events_total",
		Help:      "Queue messages by type and outcome.",
	}, []string{"type", "outcome"})
)

// GinMiddleware records request count and latency per matched route.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		HTTPDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
