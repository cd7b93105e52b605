// Package metrics defines Prometheus metrics for outbound PartsLogic API calls.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "partslogic"

// StatusError labels calls that failed before a response arrived.
const StatusError = "error"

// Recorder records API call counts and latencies.
type Recorder struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// New registers the API metrics on reg.
func New(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)

	return &Recorder{
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_requests_total",
			Help:      "Total number of PartsLogic API requests.",
		}, []string{"path", "status"}),

		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "api_request_duration_seconds",
			Help:      "Duration of PartsLogic API requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"path"}),
	}
}

// Observe records one call to path. A status of zero means no response
// was received.
func (r *Recorder) Observe(path string, status int, elapsed time.Duration) {
	if r == nil {
		return
	}

	label := StatusError
	if status > 0 {
		label = strconv.Itoa(status)
	}

	r.RequestsTotal.WithLabelValues(path, label).Inc()
	r.RequestDuration.WithLabelValues(path).Observe(elapsed.Seconds())
}
