package handler

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

// Metrics holds all Prometheus collectors for the Contentify backend.
var Metrics = struct {
	UploadsTotal     prometheus.Counter
	WatchEventsTotal prometheus.Counter
	TogglesTotal     *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge
	RecCacheHits     prometheus.Counter
	RecCacheMisses   prometheus.Counter
	DBPoolActive     prometheus.GaugeFunc
	DBPoolIdle       prometheus.GaugeFunc
}{}

// InitMetrics registers all Prometheus metrics. Call once at startup.
func InitMetrics(pool *pgxpool.Pool) {
	Metrics.UploadsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "contentify_video_uploads_total",
			Help: "Total videos published.",
		},
	)

	Metrics.WatchEventsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "contentify_watch_events_total",
			Help: "Total watch-progress updates received.",
		},
	)

	Metrics.TogglesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contentify_toggles_total",
			Help: "Total like/subscription toggles, by kind and direction.",
		},
		[]string{"kind", "direction"},
	)

	Metrics.RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "contentify_api_request_duration_seconds",
			Help:    "HTTP request duration in seconds, by endpoint and method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	Metrics.RequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "contentify_requests_in_flight",
			Help: "Number of HTTP requests currently being served.",
		},
	)

	Metrics.RecCacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "contentify_recommendation_cache_hits_total",
			Help: "Total recommendation cache hits.",
		},
	)

	Metrics.RecCacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "contentify_recommendation_cache_misses_total",
			Help: "Total recommendation cache misses.",
		},
	)

	// DB pool gauges read live stats from pgxpool
	if pool != nil {
		Metrics.DBPoolActive = prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "contentify_db_connection_pool_active",
				Help: "Number of active database connections.",
			},
			func() float64 {
				return float64(pool.Stat().AcquiredConns())
			},
		)

		Metrics.DBPoolIdle = prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "contentify_db_connection_pool_idle",
				Help: "Number of idle database connections.",
			},
			func() float64 {
				return float64(pool.Stat().IdleConns())
			},
		)

		prometheus.MustRegister(Metrics.DBPoolActive)
		prometheus.MustRegister(Metrics.DBPoolIdle)
	}

	prometheus.MustRegister(
		Metrics.UploadsTotal,
		Metrics.WatchEventsTotal,
		Metrics.TogglesTotal,
		Metrics.RequestDuration,
		Metrics.RequestsInFlight,
		Metrics.RecCacheHits,
		Metrics.RecCacheMisses,
	)
}

// MetricsMiddleware records request duration and in-flight count for Prometheus.
func MetricsMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		// Don't instrument the /metrics endpoint itself
		if c.Path() == "/metrics" {
			return c.Next()
		}

		// Copy path and method into owned strings BEFORE c.Next() — Fiber
		// returns slices backed by the fasthttp buffer which can be reused
		// or overwritten by handlers (especially fasthttpadaptor).
		path := string([]byte(c.Path()))
		method := string([]byte(c.Method()))
		endpoint := sanitizeEndpoint(path)

		Metrics.RequestsInFlight.Inc()
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())

		Metrics.RequestDuration.WithLabelValues(endpoint, method, status).Observe(duration)
		Metrics.RequestsInFlight.Dec()

		return err
	}
}

// sanitizeEndpoint normalizes paths to avoid cardinality explosion.
func sanitizeEndpoint(path string) string {
	switch {
	case strings.HasPrefix(path, "/video/watch-progress/"):
		return "/video/watch-progress/:videoId"
	case strings.HasPrefix(path, "/like/like-video/"):
		return "/like/like-video/:videoId"
	case strings.HasPrefix(path, "/subscription/toggle-subscribe/"):
		return "/subscription/toggle-subscribe/:channelId"
	case strings.HasPrefix(path, "/user/channel/"):
		return "/user/channel/:channelId"
	case strings.HasPrefix(path, "/video/") && strings.Count(path, "/") == 2:
		return "/video/:videoId"
	default:
		return path
	}
}

// MetricsHandler serves the Prometheus /metrics endpoint via Fiber.
func MetricsHandler() fiber.Handler {
	httpHandler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c fiber.Ctx) error {
		httpHandler(c.RequestCtx())
		return nil
	}
}
