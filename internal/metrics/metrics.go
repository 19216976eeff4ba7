package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeSuccess = "success"
	outcomeError   = "error"
)

var (
	apiRequestsTotal     *prometheus.CounterVec
	apiRequestDuration   *prometheus.HistogramVec
	directoryLookupTotal *prometheus.CounterVec

	metricsOnce sync.Once
)

// Init registers the azops collectors with the default registry. It is safe
// to call repeatedly; the Record functions call it themselves.
func Init() {
	metricsOnce.Do(func() {
		apiRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "azops_api_requests_total",
				Help: "Total number of Azure management API operations issued",
			},
			[]string{"operation", "outcome"},
		)

		apiRequestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "azops_api_request_duration_seconds",
				Help:    "Duration of Azure management API operations in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"operation"},
		)

		directoryLookupTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "azops_directory_lookups_total",
				Help: "Total number of tenant and principal directory lookups",
			},
			[]string{"kind", "outcome"},
		)
	})
}

func outcome(err error) string {
	if err != nil {
		return outcomeError
	}
	return outcomeSuccess
}

// RecordRequest records one management API operation started at start
func RecordRequest(operation string, start time.Time, err error) {
	Init()
	apiRequestsTotal.WithLabelValues(operation, outcome(err)).Inc()
	apiRequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// RecordLookup records one directory lookup of the given kind ("tenant", "principal")
func RecordLookup(kind string, err error) {
	Init()
	directoryLookupTotal.WithLabelValues(kind, outcome(err)).Inc()
}

// WriteTextfile writes every metric of the default gatherer to path in the
// text exposition format used by the node exporter textfile collector.
func WriteTextfile(path string) error {
	Init()
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}

// RequestsTotal returns the request counter for testing.
func RequestsTotal() *prometheus.CounterVec {
	Init()
	return apiRequestsTotal
}

// LookupsTotal returns the directory lookup counter for testing.
func LookupsTotal() *prometheus.CounterVec {
	Init()
	return directoryLookupTotal
}
