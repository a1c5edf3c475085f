package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	metricPrefix = "rentd_"

	resultSuccess = "success"
	resultError   = "error"

	// Assignment outcomes as exposed on the assignments counter.
	AssignmentFull    = "full"
	AssignmentPartial = "partial"
	AssignmentFailed  = "failed"
)

var (
	registerOnce sync.Once

	storeRequests *prometheus.CounterVec
	storeLatency  *prometheus.HistogramVec

	availabilityQueries prometheus.Counter
	devicesAvailable    prometheus.Gauge

	assignmentsTotal *prometheus.CounterVec
	assignedDevices  *prometheus.CounterVec
)

// Init registers all collectors. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		storeRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "store_requests_total",
				Help: "External store requests by operation and result",
			},
			[]string{"operation", "result"},
		)
		storeLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "store_request_seconds",
				Help:    "External store request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		)

		availabilityQueries = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "availability_queries_total",
				Help: "Availability queries served",
			},
		)
		devicesAvailable = prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: metricPrefix + "devices_available",
				Help: "Devices free in the most recent availability query",
			},
		)

		assignmentsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "assignments_total",
				Help: "Assignment batches by location kind and outcome",
			},
			[]string{"kind", "outcome"},
		)
		assignedDevices = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "assigned_devices_total",
				Help: "Per-device assignment writes by result",
			},
			[]string{"result"},
		)

		prometheus.MustRegister(
			storeRequests,
			storeLatency,
			availabilityQueries,
			devicesAvailable,
			assignmentsTotal,
			assignedDevices,
		)
	})
}

// ObserveStoreRequest records one external store call.
func ObserveStoreRequest(operation string, elapsed time.Duration, err error) {
	if storeRequests == nil {
		return
	}
	result := resultSuccess
	if err != nil {
		result = resultError
	}
	storeRequests.WithLabelValues(operation, result).Inc()
	storeLatency.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// RecordAvailabilityQuery records one availability query and its result size.
func RecordAvailabilityQuery(available int) {
	if availabilityQueries == nil {
		return
	}
	availabilityQueries.Inc()
	devicesAvailable.Set(float64(available))
}

// RecordAssignment records an assignment batch outcome.
func RecordAssignment(kind, outcome string, succeeded, failed int) {
	if assignmentsTotal == nil {
		return
	}
	assignmentsTotal.WithLabelValues(kind, outcome).Inc()
	assignedDevices.WithLabelValues(resultSuccess).Add(float64(succeeded))
	assignedDevices.WithLabelValues(resultError).Add(float64(failed))
}

// Handler exposes the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
