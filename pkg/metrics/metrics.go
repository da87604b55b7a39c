package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "qrmenu",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "qrmenu",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "qrmenu",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "route"},
	)

	menuViews = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "qrmenu",
			Subsystem: "public",
			Name:      "menu_views_total",
			Help:      "Public menu views by cache outcome.",
		},
		[]string{"cache"},
	)

	feedbackSubmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "qrmenu",
			Subsystem: "feedback",
			Name:      "submitted_total",
			Help:      "Customer feedback submissions by derived state.",
		},
		[]string{"state"},
	)

	subscriptionsExpired = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "qrmenu",
			Subsystem: "subscription",
			Name:      "expired_total",
			Help:      "Subscriptions moved to EXPIRED by the expiry job.",
		},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		menuViews,
		feedbackSubmitted,
		subscriptionsExpired,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Middleware records request metrics labelled by the matched route template.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}
		start := time.Now()
		httpInFlight.Inc()
		defer httpInFlight.Dec()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

func RecordMenuView(cacheHit bool) {
	outcome := "miss"
	if cacheHit {
		outcome = "hit"
	}
	menuViews.WithLabelValues(outcome).Inc()
}

func RecordFeedback(state string) {
	feedbackSubmitted.WithLabelValues(state).Inc()
}

func RecordExpired(n int) {
	subscriptionsExpired.Add(float64(n))
}
