package telemetry

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var once sync.Once

// Broker-wide counters and gauges covering job lifecycle events.
var (
	JobsCreated             = prometheus.NewCounter(prometheus.CounterOpts{Name: "broker_jobs_created_total", Help: "Total jobs created"})
	JobsPatched             = prometheus.NewCounter(prometheus.CounterOpts{Name: "broker_jobs_patched_total", Help: "Total successful PATCH applications"})
	PatchPreconditionFailed = prometheus.NewCounter(prometheus.CounterOpts{Name: "broker_patch_precondition_failed_total", Help: "PATCH requests rejected for a stale If-Match"})
	ValidationFailures      = prometheus.NewCounter(prometheus.CounterOpts{Name: "broker_validation_failures_total", Help: "Create or patch requests rejected by the schema validator"})
	LogAppends              = prometheus.NewCounter(prometheus.CounterOpts{Name: "broker_log_appends_total", Help: "Total log chunks appended"})
	QueryRequests           = prometheus.NewCounter(prometheus.CounterOpts{Name: "broker_query_requests_total", Help: "Total filtered list requests"})
	JobsGauge               = prometheus.NewGauge(prometheus.GaugeOpts{Name: "broker_jobs_total", Help: "Current number of jobs held in the store"})
)

// Handler exposes the /metrics HTTP handler with a singleton registry.
func Handler() http.Handler {
	once.Do(func() {
		prometheus.MustRegister(
			JobsCreated,
			JobsPatched,
			PatchPreconditionFailed,
			ValidationFailures,
			LogAppends,
			QueryRequests,
			JobsGauge,
		)
	})
	return promhttp.Handler()
}
