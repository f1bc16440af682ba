package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	// Blogs
	BlogOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blog_operations_total",
			Help: "Successful blog mutations",
		},
		[]string{"op"}, // create|update|delete
	)

	// Auth
	AuthFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_failures_total",
			Help: "Rejected logins and token checks",
		},
		[]string{"reason"}, // bad_credentials|token_missing|token_invalid|forbidden
	)

	// password hashing pool
	WorkerQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_queue_depth",
			Help: "Current worker queue depth",
		},
	)

	initOnce sync.Once
)

// /metrics endpoint'i için handler
var Handler = promhttp.Handler

// Init registers the collectors with the default registry. Safe to call more than once.
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestsTotal)
		prometheus.MustRegister(BlogOperations)
		prometheus.MustRegister(AuthFailures)
		prometheus.MustRegister(WorkerQueueDepth)
	})
}
