// Package metrics exposes Prometheus instrumentation for the HTTP layer
// and a few business counters.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mycare_http_requests_total",
			Help: "Total HTTP requests by method, path and status.",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mycare_http_request_duration_seconds",
			Help:    "HTTP request latency by method and path.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// HealthLogsAppended counts accepted health log entries.
	HealthLogsAppended = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mycare_health_logs_appended_total",
			Help: "Health log entries appended.",
		},
	)

	// AdvisorRequests counts advisor calls by operation and outcome
	// ("ok" or "fallback").
	AdvisorRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mycare_advisor_requests_total",
			Help: "Advisor requests by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)

	// ScenarioSearches counts knowledge base searches by language.
	ScenarioSearches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mycare_scenario_searches_total",
			Help: "First-aid catalog searches by language.",
		},
		[]string{"language"},
	)
)

// Middleware records request counts and latency per route. The route
// template is used as the path label so ids do not explode cardinality.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		httpRequestsTotal.WithLabelValues(
			c.Request.Method, path, strconv.Itoa(c.Writer.Status()),
		).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, path).
			Observe(time.Since(start).Seconds())
	}
}

// Handler serves the Prometheus scrape endpoint.
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
