// Package metrics registra métricas Prometheus del front web.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BackendRequests cuenta llamadas al backend por método, ruta y resultado.
	BackendRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pawcare_web_backend_requests_total",
		Help: "Total number of backend API calls by method, route and outcome",
	}, []string{"method", "route", "outcome"})

	// BackendLatency registra la latencia de llamadas al backend.
	BackendLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pawcare_web_backend_request_duration_seconds",
		Help:    "Backend API call latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// ActiveSessions es el número de sesiones de navegador vivas en este proceso.
	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pawcare_web_active_sessions",
		Help: "Number of live browser sessions held in memory",
	})

	// RedisErrors cuenta errores del store de sesiones (redis.Nil no cuenta).
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pawcare_web_redis_errors_total",
		Help: "Total number of Redis command errors",
	}, []string{"command"})

	// HTTPRequests cuenta requests del navegador por método, ruta chi y status.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pawcare_web_http_requests_total",
		Help: "Total number of browser-facing HTTP requests",
	}, []string{"method", "route", "status"})
)

// Outcome clasifica un status HTTP (0 = error de transporte).
func Outcome(status int) string {
	switch {
	case status == 0:
		return "transport_error"
	case status == 401:
		return "unauthorized"
	case status >= 200 && status < 300:
		return "ok"
	default:
		return strconv.Itoa(status/100) + "xx"
	}
}

// ObserveBackend registra una llamada terminada.
func ObserveBackend(method, route string, status int, start time.Time) {
	BackendRequests.WithLabelValues(method, route, Outcome(status)).Inc()
	BackendLatency.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
}
