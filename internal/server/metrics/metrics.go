// Package metrics exposes prometheus metrics for the file manager.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filegate_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "filegate_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	operationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filegate_operations_total",
			Help: "File operations by outcome",
		},
		[]string{"op", "result"},
	)

	loginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filegate_logins_total",
			Help: "Login attempts by outcome",
		},
		[]string{"result"},
	)

	treeBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "filegate_tree_build_duration_seconds",
			Help:    "Time to project a folder into a file tree",
			Buckets: prometheus.DefBuckets,
		},
	)

	eventSubscribers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "filegate_event_subscribers",
			Help: "Connected audit event stream subscribers",
		},
	)
)

func Handler() http.Handler {
	return promhttp.Handler()
}

func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordOperation counts one file operation; result is "ok" or an error kind.
func RecordOperation(op, result string) {
	operationsTotal.WithLabelValues(op, result).Inc()
}

func RecordLogin(result string) {
	loginsTotal.WithLabelValues(result).Inc()
}

func RecordTreeBuild(duration time.Duration) {
	treeBuildDuration.Observe(duration.Seconds())
}

func SetEventSubscribers(count int) {
	eventSubscribers.Set(float64(count))
}
