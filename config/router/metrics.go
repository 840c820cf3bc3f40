package router

import (
	"net/http"
	"strconv"
	"time"

	"github.com/akeren/seam-landing/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const unmatchedRoute = "unmatched"

// httpMetrics is nil when METRICS_ENABLED=false; every method tolerates that.
type httpMetrics struct {
	requests  *prometheus.CounterVec
	latency   *prometheus.HistogramVec
	throttled *prometheus.CounterVec
}

func metricsEnabled() bool {
	return utils.GetEnvBool("METRICS_ENABLED", true)
}

func newHTTPMetrics(reg prometheus.Registerer) *httpMetrics {
	m := &httpMetrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP requests by route template and status.",
			},
			[]string{"method", "route", "status"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency by route template.",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"method", "route"},
		),
		throttled: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_throttled_total",
				Help: "Requests answered with 429, by route and by which limiter refused them.",
			},
			[]string{"route", "limiter"},
		),
	}

	reg.MustRegister(m.requests, m.latency, m.throttled)
	return m
}

func (m *httpMetrics) observe(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = unmatchedRoute
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *httpMetrics) observeThrottled(route, limiter string) {
	if m == nil {
		return
	}
	m.throttled.WithLabelValues(route, limiter).Inc()
}

// RegisterCollectors exposes domain collectors on /metrics. It is a no-op
// when metrics are disabled; the collectors keep counting regardless.
func (routerService *RouterService) RegisterCollectors(collectors ...prometheus.Collector) {
	if routerService.metricsRegistry == nil {
		return
	}
	for _, c := range collectors {
		if err := routerService.metricsRegistry.Register(c); err != nil {
			routerService.logger.Warn("Failed to register metrics collector", "error", err)
		}
	}
}

func (routerService *RouterService) mountMetrics() {
	if !metricsEnabled() {
		routerService.logger.Info("Metrics disabled (METRICS_ENABLED=false)")
		return
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewGoCollector())
	reg.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
	routerService.metricsRegistry = reg
	routerService.httpMetrics = newHTTPMetrics(reg)

	routerService.engine.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		routerService.httpMetrics.observe(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	})

	routerService.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	// No CORS preflight answer for scrapers.
	routerService.engine.OPTIONS("/metrics", func(c *gin.Context) {
		c.AbortWithStatus(http.StatusNoContent)
	})

	routerService.logger.Info("Metrics endpoint mounted", "path", "/metrics")
}
